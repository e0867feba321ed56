package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"seedble/internal/repository"

	"github.com/google/uuid"
)

type mockAssessmentRepo struct {
	byID      map[uuid.UUID]*repository.Assessment
	completed map[uuid.UUID]int
	err       error
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{
		byID:      make(map[uuid.UUID]*repository.Assessment),
		completed: make(map[uuid.UUID]int),
	}
}

func (m *mockAssessmentRepo) Create(_ context.Context, userID uuid.UUID, assessmentType string) (*repository.Assessment, error) {
	if m.err != nil {
		return nil, m.err
	}
	a := &repository.Assessment{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      assessmentType,
		Status:    "in_progress",
		CreatedAt: time.Now().UTC(),
	}
	m.byID[a.ID] = a
	return a, nil
}

func (m *mockAssessmentRepo) Complete(_ context.Context, id uuid.UUID, skillsEvaluated int, _ *int, completedAt time.Time) error {
	a, ok := m.byID[id]
	if !ok || a.Status != "in_progress" {
		return repository.ErrAssessmentNotFound
	}
	a.Status = "completed"
	a.SkillsEvaluated = skillsEvaluated
	a.CompletedAt = &completedAt
	m.completed[id] = skillsEvaluated
	return nil
}

func (m *mockAssessmentRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]repository.Assessment, error) {
	out := make([]repository.Assessment, 0)
	for _, a := range m.byID {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAssessmentRepo) CountCompletedByUserID(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateAll(context.Context) { c.calls++ }

func TestAssessmentUsecase_StartAssessment_InvalidType(t *testing.T) {
	uc := NewAssessmentUsecase(newMockAssessmentRepo(), &mockUserSkillRepo{}, nil, nil)

	_, err := uc.StartAssessment(context.Background(), uuid.New(), "annual")
	if !errors.Is(err, ErrInvalidAssessmentType) {
		t.Fatalf("expected ErrInvalidAssessmentType, got %v", err)
	}
}

func TestAssessmentUsecase_SubmitAssessment_Success(t *testing.T) {
	assessments := newMockAssessmentRepo()
	userSkills := &mockUserSkillRepo{byUser: map[uuid.UUID][]repository.UserSkill{}}
	invalidator := &countingInvalidator{}
	uc := NewAssessmentUsecase(assessments, userSkills, invalidator, nil)

	userID := uuid.New()
	started, err := uc.StartAssessment(context.Background(), userID, "quick")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	item, err := uc.SubmitAssessment(context.Background(), userID, SubmitAssessmentInput{
		AssessmentID: started.ID,
		Entries: []AssessmentEntry{
			{SkillID: uuid.New(), Level: 4, Interest: 5, IsPriority: true},
			{SkillID: uuid.New(), Level: 2, Interest: 3},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if item.Status != "completed" {
		t.Fatalf("expected completed, got %s", item.Status)
	}
	if item.SkillsEvaluated != 2 {
		t.Fatalf("expected 2 skills evaluated, got %d", item.SkillsEvaluated)
	}
	if len(userSkills.upserts) != 1 || len(userSkills.upserts[0]) != 2 {
		t.Fatalf("expected one upsert batch of 2 entries, got %v", userSkills.upserts)
	}
	if invalidator.calls != 1 {
		t.Fatalf("expected recommendation cache invalidation, got %d", invalidator.calls)
	}
}

func TestAssessmentUsecase_SubmitAssessment_RatingOutOfRange(t *testing.T) {
	uc := NewAssessmentUsecase(newMockAssessmentRepo(), &mockUserSkillRepo{}, nil, nil)

	for _, level := range []int{0, 6, -1} {
		_, err := uc.SubmitAssessment(context.Background(), uuid.New(), SubmitAssessmentInput{
			AssessmentID: uuid.New(),
			Entries:      []AssessmentEntry{{SkillID: uuid.New(), Level: level, Interest: 3}},
		})
		if !errors.Is(err, ErrInvalidSkillRating) {
			t.Fatalf("level %d: expected ErrInvalidSkillRating, got %v", level, err)
		}
	}
}

func TestAssessmentUsecase_SubmitAssessment_NoEntries(t *testing.T) {
	uc := NewAssessmentUsecase(newMockAssessmentRepo(), &mockUserSkillRepo{}, nil, nil)

	_, err := uc.SubmitAssessment(context.Background(), uuid.New(), SubmitAssessmentInput{AssessmentID: uuid.New()})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAssessmentUsecase_SubmitAssessment_AlreadyCompleted(t *testing.T) {
	assessments := newMockAssessmentRepo()
	uc := NewAssessmentUsecase(assessments, &mockUserSkillRepo{}, nil, nil)

	userID := uuid.New()
	started, err := uc.StartAssessment(context.Background(), userID, "complete")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	in := SubmitAssessmentInput{
		AssessmentID: started.ID,
		Entries:      []AssessmentEntry{{SkillID: uuid.New(), Level: 3, Interest: 3}},
	}
	if _, err := uc.SubmitAssessment(context.Background(), userID, in); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := uc.SubmitAssessment(context.Background(), userID, in); !errors.Is(err, ErrAssessmentNotFound) {
		t.Fatalf("expected ErrAssessmentNotFound on resubmit, got %v", err)
	}
}
