package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"seedble/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrInvalidAssessmentType = errors.New("invalid assessment type")
	ErrInvalidSkillRating    = errors.New("invalid skill rating")
)

var assessmentTypes = map[string]struct{}{
	"complete":      {},
	"quick":         {},
	"role-specific": {},
}

type AssessmentEntry struct {
	SkillID    uuid.UUID
	Level      int
	Interest   int
	IsPriority bool
}

type SubmitAssessmentInput struct {
	AssessmentID   uuid.UUID
	Entries        []AssessmentEntry
	CompletionTime *int
}

type AssessmentItem struct {
	ID              uuid.UUID
	Type            string
	Status          string
	SkillsEvaluated int
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// RecommendationInvalidator drops cached team recommendations after an
// assessment changes the skill data they were computed from.
type RecommendationInvalidator interface {
	InvalidateAll(ctx context.Context)
}

type AssessmentUsecase interface {
	StartAssessment(ctx context.Context, userID uuid.UUID, assessmentType string) (AssessmentItem, error)
	SubmitAssessment(ctx context.Context, userID uuid.UUID, in SubmitAssessmentInput) (AssessmentItem, error)
	ListAssessments(ctx context.Context, userID uuid.UUID) ([]AssessmentItem, error)
}

type Assessment struct {
	assessments repository.AssessmentRepository
	userSkills  repository.UserSkillRepository
	invalidator RecommendationInvalidator
	logger      *log.Logger
}

func NewAssessmentUsecase(assessments repository.AssessmentRepository, userSkills repository.UserSkillRepository, invalidator RecommendationInvalidator, logger *log.Logger) *Assessment {
	return &Assessment{assessments: assessments, userSkills: userSkills, invalidator: invalidator, logger: logger}
}

func (u *Assessment) StartAssessment(ctx context.Context, userID uuid.UUID, assessmentType string) (AssessmentItem, error) {
	if userID == uuid.Nil {
		return AssessmentItem{}, ErrInvalidInput
	}
	if _, ok := assessmentTypes[assessmentType]; !ok {
		return AssessmentItem{}, ErrInvalidAssessmentType
	}

	created, err := u.assessments.Create(ctx, userID, assessmentType)
	if err != nil {
		if isForeignKeyViolation(err) {
			return AssessmentItem{}, ErrInvalidInput
		}
		return AssessmentItem{}, ErrInternal
	}
	return toAssessmentItem(*created), nil
}

// SubmitAssessment writes every rated skill with upsert semantics, so
// re-assessing a skill replaces the previous level instead of duplicating
// the row, then closes the assessment.
func (u *Assessment) SubmitAssessment(ctx context.Context, userID uuid.UUID, in SubmitAssessmentInput) (AssessmentItem, error) {
	if userID == uuid.Nil || in.AssessmentID == uuid.Nil {
		return AssessmentItem{}, ErrInvalidInput
	}
	if len(in.Entries) == 0 {
		return AssessmentItem{}, ErrInvalidInput
	}
	for _, e := range in.Entries {
		if e.SkillID == uuid.Nil {
			return AssessmentItem{}, ErrInvalidInput
		}
		if e.Level < 1 || e.Level > 5 || e.Interest < 1 || e.Interest > 5 {
			return AssessmentItem{}, ErrInvalidSkillRating
		}
	}

	now := time.Now().UTC()
	upserts := make([]repository.UserSkillUpsert, 0, len(in.Entries))
	for _, e := range in.Entries {
		upserts = append(upserts, repository.UserSkillUpsert{
			SkillID:    e.SkillID,
			Level:      e.Level,
			Interest:   e.Interest,
			IsPriority: e.IsPriority,
		})
	}
	if err := u.userSkills.UpsertMany(ctx, userID, upserts, now); err != nil {
		if isForeignKeyViolation(err) {
			return AssessmentItem{}, ErrSkillNotFound
		}
		return AssessmentItem{}, ErrInternal
	}

	if err := u.assessments.Complete(ctx, in.AssessmentID, len(in.Entries), in.CompletionTime, now); err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return AssessmentItem{}, ErrAssessmentNotFound
		}
		return AssessmentItem{}, ErrInternal
	}

	if u.invalidator != nil {
		u.invalidator.InvalidateAll(ctx)
	}
	if u.logger != nil {
		u.logger.Printf("[Assessment] completed user=%s assessment=%s skills=%d", userID, in.AssessmentID, len(in.Entries))
	}

	completed := now
	return AssessmentItem{
		ID:              in.AssessmentID,
		Status:          "completed",
		SkillsEvaluated: len(in.Entries),
		CompletedAt:     &completed,
	}, nil
}

func (u *Assessment) ListAssessments(ctx context.Context, userID uuid.UUID) ([]AssessmentItem, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.assessments.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]AssessmentItem, 0, len(items))
	for _, it := range items {
		out = append(out, toAssessmentItem(it))
	}
	return out, nil
}

func toAssessmentItem(a repository.Assessment) AssessmentItem {
	return AssessmentItem{
		ID:              a.ID,
		Type:            a.Type,
		Status:          a.Status,
		SkillsEvaluated: a.SkillsEvaluated,
		CreatedAt:       a.CreatedAt,
		CompletedAt:     a.CompletedAt,
	}
}
