package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"seedble/internal/domain/scoring"
	"seedble/internal/domain/team"
	"seedble/internal/infrastructure/narrative"
	"seedble/internal/repository"

	"github.com/google/uuid"
)

var ErrNoRequiredSkills = errors.New("no required skills given")

type RecommendTeamInput struct {
	RequiredSkills []string
	TeamSize       int
}

type RecommendationUsecase interface {
	RecommendTeam(ctx context.Context, in RecommendTeamInput) (team.Recommendation, error)
	InvalidateAll(ctx context.Context)
}

type Recommendation struct {
	users           repository.UserRepository
	userSkills      repository.UserSkillRepository
	cache           RecommendationCache
	narrator        narrative.Client
	defaultTeamSize int
	cacheTTL        time.Duration
	logger          *log.Logger
}

func NewRecommendationUsecase(users repository.UserRepository, userSkills repository.UserSkillRepository, cache RecommendationCache, narrator narrative.Client, defaultTeamSize int, cacheTTL time.Duration, logger *log.Logger) *Recommendation {
	return &Recommendation{
		users:           users,
		userSkills:      userSkills,
		cache:           cache,
		narrator:        narrator,
		defaultTeamSize: defaultTeamSize,
		cacheTTL:        cacheTTL,
		logger:          logger,
	}
}

// RecommendTeam scores every candidate against the required skills and
// returns the top teamSize of them with aggregate metrics and a narrative.
// Results are cached per normalized requirement set; the same inputs always
// produce the same team regardless of cache state.
func (u *Recommendation) RecommendTeam(ctx context.Context, in RecommendTeamInput) (team.Recommendation, error) {
	required := make([]string, 0, len(in.RequiredSkills))
	for _, s := range in.RequiredSkills {
		if strings.TrimSpace(s) != "" {
			required = append(required, s)
		}
	}
	if len(required) == 0 {
		return team.Recommendation{}, ErrNoRequiredSkills
	}

	size := in.TeamSize
	if size <= 0 {
		size = u.defaultTeamSize
	}

	key := RecommendationCacheKey(required, size)
	if u.cache != nil {
		var cached team.Recommendation
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	candidates, err := u.loadCandidates(ctx)
	if err != nil {
		return team.Recommendation{}, ErrInternal
	}

	rec := team.Recommend(candidates, required, size)

	if u.narrator != nil {
		if n, err := u.narrator.Generate(ctx, rec, required); err == nil {
			rec.Narrative = n
		} else if u.logger != nil {
			u.logger.Printf("[Recommendation] narrative generation failed, using template: %v", err)
		}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, rec, u.cacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Recommendation] cache write failed key=%s err=%v", key, err)
		}
	}

	return rec, nil
}

// InvalidateAll drops every cached recommendation. Called after skill data
// changes so stale teams are never served.
func (u *Recommendation) InvalidateAll(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, "recommendation:*"); err != nil && u.logger != nil {
		u.logger.Printf("[Recommendation] cache invalidation failed: %v", err)
	}
}

func (u *Recommendation) loadCandidates(ctx context.Context) ([]team.Candidate, error) {
	profiles, err := u.users.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	skillsByUser, err := u.userSkills.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]team.Candidate, 0, len(profiles))
	for _, p := range profiles {
		entries := make([]scoring.Entry, 0, len(skillsByUser[p.ID]))
		for _, us := range skillsByUser[p.ID] {
			entries = append(entries, scoring.Entry{
				SkillName:  us.SkillName,
				Level:      us.Level,
				Interest:   us.Interest,
				IsPriority: us.IsPriority,
			})
		}
		out = append(out, team.Candidate{
			ID:          p.ID,
			DisplayName: p.FullName,
			Role:        p.Role,
			Entries:     entries,
		})
	}
	return out, nil
}
