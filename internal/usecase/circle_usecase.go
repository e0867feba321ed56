package usecase

import (
	"context"
	"time"

	"seedble/internal/repository"

	"github.com/google/uuid"
)

type CircleItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Icon        string
	Color       string
	MemberCount int
	CreatedAt   time.Time
}

type CircleUsecase interface {
	ListCircles(ctx context.Context) ([]CircleItem, error)
	JoinCircle(ctx context.Context, circleID, userID uuid.UUID) error
	LeaveCircle(ctx context.Context, circleID, userID uuid.UUID) error
}

type Circle struct {
	circles repository.KnowledgeCircleRepository
}

func NewCircleUsecase(circles repository.KnowledgeCircleRepository) *Circle {
	return &Circle{circles: circles}
}

func (u *Circle) ListCircles(ctx context.Context) ([]CircleItem, error) {
	items, err := u.circles.ListWithMemberCounts(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]CircleItem, 0, len(items))
	for _, it := range items {
		out = append(out, CircleItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Category:    it.Category,
			Icon:        it.Icon,
			Color:       it.Color,
			MemberCount: it.MemberCount,
			CreatedAt:   it.CreatedAt,
		})
	}
	return out, nil
}

func (u *Circle) JoinCircle(ctx context.Context, circleID, userID uuid.UUID) error {
	if circleID == uuid.Nil || userID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.circles.Join(ctx, circleID, userID); err != nil {
		if isForeignKeyViolation(err) {
			return ErrInvalidInput
		}
		return ErrInternal
	}
	return nil
}

func (u *Circle) LeaveCircle(ctx context.Context, circleID, userID uuid.UUID) error {
	if circleID == uuid.Nil || userID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.circles.Leave(ctx, circleID, userID); err != nil {
		return ErrInternal
	}
	return nil
}
