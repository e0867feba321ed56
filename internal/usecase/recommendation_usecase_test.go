package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"seedble/internal/domain/team"
	"seedble/internal/repository"

	"github.com/google/uuid"
)

type mockUserSkillRepo struct {
	byUser  map[uuid.UUID][]repository.UserSkill
	upserts [][]repository.UserSkillUpsert
	err     error
}

func (m *mockUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byUser[userID], nil
}

func (m *mockUserSkillRepo) FindByUserIDs(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]repository.UserSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uuid.UUID][]repository.UserSkill, len(userIDs))
	for _, id := range userIDs {
		if items, ok := m.byUser[id]; ok {
			out[id] = items
		}
	}
	return out, nil
}

func (m *mockUserSkillRepo) UpsertMany(_ context.Context, _ uuid.UUID, entries []repository.UserSkillUpsert, _ time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.upserts = append(m.upserts, entries)
	return nil
}

func (m *mockUserSkillRepo) CountByUserID(context.Context, uuid.UUID) (int, error) { return 0, nil }

type mockRecommendationCache struct {
	gets, sets  int
	invalidated int
}

func (m *mockRecommendationCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.gets++
	return false, nil
}

func (m *mockRecommendationCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.sets++
	return nil
}

func (m *mockRecommendationCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.invalidated++
	return nil
}

func userSkillRow(userID uuid.UUID, name string, level int) repository.UserSkill {
	return repository.UserSkill{
		ID:        uuid.New(),
		UserID:    userID,
		SkillID:   uuid.New(),
		SkillName: name,
		Level:     level,
		Interest:  3,
	}
}

func TestRecommendationUsecase_RecommendTeam_RanksAndAggregates(t *testing.T) {
	strong := uuid.New()
	weak := uuid.New()

	users := mockUserRepo{profiles: map[uuid.UUID]repository.Profile{
		strong: {ID: strong, FullName: "Strong", Role: "engineer"},
		weak:   {ID: weak, FullName: "Weak", Role: "engineer"},
	}}
	skills := &mockUserSkillRepo{byUser: map[uuid.UUID][]repository.UserSkill{
		strong: {userSkillRow(strong, "Go", 5), userSkillRow(strong, "SQL", 4)},
		weak:   {userSkillRow(weak, "Go", 2)},
	}}

	uc := NewRecommendationUsecase(users, skills, nil, nil, team.DefaultTeamSize, time.Minute, nil)

	rec, err := uc.RecommendTeam(context.Background(), RecommendTeamInput{
		RequiredSkills: []string{"Go", "SQL"},
		TeamSize:       2,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec.Team) != 2 {
		t.Fatalf("expected 2 members, got %d", len(rec.Team))
	}
	if rec.Team[0].UserID != strong {
		t.Fatalf("expected the stronger candidate first")
	}
	if rec.Team[0].CompatibilityPct <= rec.Team[1].CompatibilityPct {
		t.Fatalf("expected descending compatibility: %d then %d",
			rec.Team[0].CompatibilityPct, rec.Team[1].CompatibilityPct)
	}
	if rec.SkillsCoverage == 0 || rec.SuccessPrediction == 0 {
		t.Fatalf("expected non-zero aggregates, got coverage=%d success=%d",
			rec.SkillsCoverage, rec.SuccessPrediction)
	}
	if len(rec.Narrative.Reasoning) == 0 {
		t.Fatalf("expected a template narrative")
	}
}

func TestRecommendationUsecase_RecommendTeam_NoRequiredSkills(t *testing.T) {
	uc := NewRecommendationUsecase(mockUserRepo{}, &mockUserSkillRepo{}, nil, nil, team.DefaultTeamSize, time.Minute, nil)

	_, err := uc.RecommendTeam(context.Background(), RecommendTeamInput{RequiredSkills: []string{" ", ""}})
	if !errors.Is(err, ErrNoRequiredSkills) {
		t.Fatalf("expected ErrNoRequiredSkills, got %v", err)
	}
}

func TestRecommendationUsecase_RecommendTeam_WritesCache(t *testing.T) {
	userID := uuid.New()
	users := mockUserRepo{profiles: map[uuid.UUID]repository.Profile{
		userID: {ID: userID, FullName: "Only"},
	}}
	skills := &mockUserSkillRepo{byUser: map[uuid.UUID][]repository.UserSkill{
		userID: {userSkillRow(userID, "Go", 4)},
	}}
	cache := &mockRecommendationCache{}

	uc := NewRecommendationUsecase(users, skills, cache, nil, team.DefaultTeamSize, time.Minute, nil)

	if _, err := uc.RecommendTeam(context.Background(), RecommendTeamInput{RequiredSkills: []string{"Go"}}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.gets != 1 || cache.sets != 1 {
		t.Fatalf("expected one cache read and one write, got gets=%d sets=%d", cache.gets, cache.sets)
	}
}

func TestRecommendationUsecase_InvalidateAll(t *testing.T) {
	cache := &mockRecommendationCache{}
	uc := NewRecommendationUsecase(mockUserRepo{}, &mockUserSkillRepo{}, cache, nil, team.DefaultTeamSize, time.Minute, nil)

	uc.InvalidateAll(context.Background())
	if cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidated)
	}
}

type fixedNarrator struct {
	narrative team.Narrative
	err       error
}

func (f fixedNarrator) Generate(context.Context, team.Recommendation, []string) (team.Narrative, error) {
	return f.narrative, f.err
}

func TestRecommendationUsecase_NarratorFailureFallsBackToTemplate(t *testing.T) {
	userID := uuid.New()
	users := mockUserRepo{profiles: map[uuid.UUID]repository.Profile{
		userID: {ID: userID, FullName: "Only"},
	}}
	skills := &mockUserSkillRepo{byUser: map[uuid.UUID][]repository.UserSkill{
		userID: {userSkillRow(userID, "Go", 4)},
	}}

	uc := NewRecommendationUsecase(users, skills, nil, fixedNarrator{err: errors.New("unreachable")}, team.DefaultTeamSize, time.Minute, nil)

	rec, err := uc.RecommendTeam(context.Background(), RecommendTeamInput{RequiredSkills: []string{"Go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec.Narrative.Reasoning) == 0 {
		t.Fatalf("expected template narrative when the narrator fails")
	}
}

func TestRecommendationUsecase_NarratorOverridesNarrativeOnly(t *testing.T) {
	userID := uuid.New()
	users := mockUserRepo{profiles: map[uuid.UUID]repository.Profile{
		userID: {ID: userID, FullName: "Only"},
	}}
	skills := &mockUserSkillRepo{byUser: map[uuid.UUID][]repository.UserSkill{
		userID: {userSkillRow(userID, "Go", 4)},
	}}
	custom := team.Narrative{Reasoning: []string{"external prose"}}

	uc := NewRecommendationUsecase(users, skills, nil, fixedNarrator{narrative: custom}, team.DefaultTeamSize, time.Minute, nil)

	rec, err := uc.RecommendTeam(context.Background(), RecommendTeamInput{RequiredSkills: []string{"Go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec.Narrative.Reasoning) != 1 || rec.Narrative.Reasoning[0] != "external prose" {
		t.Fatalf("expected narrator prose, got %v", rec.Narrative.Reasoning)
	}
	if len(rec.Team) != 1 {
		t.Fatalf("narrator must not change team selection")
	}
}
