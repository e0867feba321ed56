package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"seedble/internal/domain/review"
	"seedble/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewSelf         = errors.New("reviewer and reviewee must differ")
	ErrReviewNotReviewer  = fmt.Errorf("%w: not the assigned reviewer", ErrForbidden)
	ErrReviewTransition   = errors.New("review is not in a state that allows this operation")
	ErrReviewEmptyRatings = errors.New("review submission has no skill ratings")
	ErrReviewBadRating    = errors.New("invalid skill rating")
)

type AssignReviewInput struct {
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID
	ProjectID  uuid.UUID
}

type SubmitReviewInput struct {
	ReviewID uuid.UUID
	Ratings  []review.SkillRating
	Feedback string
}

type ReviewItem struct {
	ID            uuid.UUID
	ReviewerID    uuid.UUID
	RevieweeID    uuid.UUID
	ProjectID     uuid.UUID
	Status        review.Status
	Scores        *review.Scores
	Overall       *float64
	Feedback      string
	FlagReason    string
	FlagSuggested bool
	CreatedAt     time.Time
	CompletedAt   *time.Time
	ValidatedAt   *time.Time
}

type ReviewUsecase interface {
	AssignReview(ctx context.Context, in AssignReviewInput) (ReviewItem, error)
	StartReview(ctx context.Context, reviewerID, reviewID uuid.UUID) error
	SubmitReview(ctx context.Context, reviewerID uuid.UUID, in SubmitReviewInput) (ReviewItem, error)
	ValidateReview(ctx context.Context, reviewID uuid.UUID) error
	FlagReview(ctx context.Context, reviewID uuid.UUID, reason string) error
	ListAssigned(ctx context.Context, reviewerID uuid.UUID) ([]ReviewItem, error)
	ListReceived(ctx context.Context, revieweeID uuid.UUID) ([]ReviewItem, error)
}

type Review struct {
	reviews  repository.PeerReviewRepository
	users    repository.UserRepository
	projects repository.ProjectRepository
	policy   review.VariancePolicy
	notifier Notifier
	logger   *log.Logger
}

func NewReviewUsecase(reviews repository.PeerReviewRepository, users repository.UserRepository, projects repository.ProjectRepository, policy review.VariancePolicy, notifier Notifier, logger *log.Logger) *Review {
	return &Review{reviews: reviews, users: users, projects: projects, policy: policy, notifier: notifier, logger: logger}
}

func (u *Review) AssignReview(ctx context.Context, in AssignReviewInput) (ReviewItem, error) {
	if in.ReviewerID == uuid.Nil || in.RevieweeID == uuid.Nil || in.ProjectID == uuid.Nil {
		return ReviewItem{}, ErrInvalidInput
	}
	if in.ReviewerID == in.RevieweeID {
		return ReviewItem{}, ErrReviewSelf
	}

	for _, id := range []uuid.UUID{in.ReviewerID, in.RevieweeID} {
		exists, err := u.users.ExistsByID(ctx, id)
		if err != nil {
			return ReviewItem{}, ErrInternal
		}
		if !exists {
			return ReviewItem{}, ErrInvalidInput
		}
	}
	exists, err := u.projects.ExistsByID(ctx, in.ProjectID)
	if err != nil {
		return ReviewItem{}, ErrInternal
	}
	if !exists {
		return ReviewItem{}, ErrProjectNotFound
	}

	created, err := u.reviews.Create(ctx, in.ReviewerID, in.RevieweeID, in.ProjectID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ReviewItem{}, ErrInvalidInput
		}
		return ReviewItem{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.ReviewAssigned(created.ID, created.ReviewerID, created.RevieweeID, created.ProjectID)
	}
	if u.logger != nil {
		u.logger.Printf("[Review] assigned id=%s reviewer=%s reviewee=%s", created.ID, created.ReviewerID, created.RevieweeID)
	}

	return toReviewItem(*created, false), nil
}

func (u *Review) StartReview(ctx context.Context, reviewerID, reviewID uuid.UUID) error {
	current, err := u.loadOwned(ctx, reviewerID, reviewID)
	if err != nil {
		return err
	}
	if err := review.Transition(current.Status, review.StatusInProgress); err != nil {
		return ErrReviewTransition
	}
	if err := u.reviews.SetStatus(ctx, reviewID, current.Status, review.StatusInProgress); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewTransition
		}
		return ErrInternal
	}
	return nil
}

// SubmitReview aggregates the tagged ratings into category scores, stores
// them with the individual ratings in one transaction and completes the
// review. Submitting straight from pending is allowed.
func (u *Review) SubmitReview(ctx context.Context, reviewerID uuid.UUID, in SubmitReviewInput) (ReviewItem, error) {
	current, err := u.loadOwned(ctx, reviewerID, in.ReviewID)
	if err != nil {
		return ReviewItem{}, err
	}
	if err := review.Transition(current.Status, review.StatusCompleted); err != nil {
		return ReviewItem{}, ErrReviewTransition
	}

	scores, err := review.ComputeScores(in.Ratings)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNoRatings):
			return ReviewItem{}, ErrReviewEmptyRatings
		case errors.Is(err, review.ErrRatingOutOfRange), errors.Is(err, review.ErrInvalidCategory):
			return ReviewItem{}, ErrReviewBadRating
		default:
			return ReviewItem{}, ErrInternal
		}
	}

	now := time.Now().UTC()
	err = u.reviews.CompleteTx(ctx, in.ReviewID, scores, in.Feedback, in.Ratings, false, "", now)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ReviewItem{}, ErrReviewTransition
		}
		return ReviewItem{}, ErrInternal
	}

	flagSuggested := u.policy.ShouldFlag(scores)
	if flagSuggested && u.logger != nil {
		u.logger.Printf("[Review] high score variance id=%s spread=%.2f", in.ReviewID, scores.Spread())
	}

	updated, err := u.reviews.FindByID(ctx, in.ReviewID)
	if err != nil {
		return ReviewItem{}, ErrInternal
	}
	return toReviewItem(*updated, flagSuggested), nil
}

func (u *Review) ValidateReview(ctx context.Context, reviewID uuid.UUID) error {
	if reviewID == uuid.Nil {
		return ErrInvalidInput
	}
	current, err := u.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return ErrInternal
	}
	if err := review.Transition(current.Status, review.StatusValidated); err != nil {
		return ErrReviewTransition
	}
	if err := u.reviews.Validate(ctx, reviewID, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewTransition
		}
		return ErrInternal
	}
	return nil
}

func (u *Review) FlagReview(ctx context.Context, reviewID uuid.UUID, reason string) error {
	if reviewID == uuid.Nil || reason == "" {
		return ErrInvalidInput
	}
	current, err := u.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return ErrInternal
	}
	if err := review.Transition(current.Status, review.StatusFlagged); err != nil {
		return ErrReviewTransition
	}
	if err := u.reviews.Flag(ctx, reviewID, reason); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewTransition
		}
		return ErrInternal
	}
	return nil
}

func (u *Review) ListAssigned(ctx context.Context, reviewerID uuid.UUID) ([]ReviewItem, error) {
	if reviewerID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.reviews.ListByReviewerID(ctx, reviewerID)
	if err != nil {
		return nil, ErrInternal
	}
	return toReviewItems(items), nil
}

func (u *Review) ListReceived(ctx context.Context, revieweeID uuid.UUID) ([]ReviewItem, error) {
	if revieweeID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.reviews.ListByRevieweeID(ctx, revieweeID)
	if err != nil {
		return nil, ErrInternal
	}
	return toReviewItems(items), nil
}

func (u *Review) loadOwned(ctx context.Context, reviewerID, reviewID uuid.UUID) (*repository.PeerReview, error) {
	if reviewerID == uuid.Nil || reviewID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	current, err := u.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, ErrInternal
	}
	if current.ReviewerID != reviewerID {
		return nil, ErrReviewNotReviewer
	}
	return current, nil
}

func toReviewItems(items []repository.PeerReview) []ReviewItem {
	out := make([]ReviewItem, 0, len(items))
	for _, it := range items {
		out = append(out, toReviewItem(it, false))
	}
	return out
}

func toReviewItem(pr repository.PeerReview, flagSuggested bool) ReviewItem {
	return ReviewItem{
		ID:            pr.ID,
		ReviewerID:    pr.ReviewerID,
		RevieweeID:    pr.RevieweeID,
		ProjectID:     pr.ProjectID,
		Status:        pr.Status,
		Scores:        pr.Scores,
		Overall:       pr.Overall,
		Feedback:      pr.Feedback,
		FlagReason:    pr.FlagReason,
		FlagSuggested: flagSuggested,
		CreatedAt:     pr.CreatedAt,
		CompletedAt:   pr.CompletedAt,
		ValidatedAt:   pr.ValidatedAt,
	}
}
