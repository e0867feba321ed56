package usecase

import (
	"context"
	"errors"
	"math"

	"seedble/internal/repository"

	"github.com/google/uuid"
)

var ErrStatsUserNotFound = errors.New("user not found")

// UserStats is the dashboard summary for one profile.
type UserStats struct {
	UserID               uuid.UUID
	SkillsTracked        int
	AssessmentsCompleted int
	ProjectMemberships   int
	PendingReviews       int
	AverageReviewScore   float64
	ReviewsReceived      int
}

type StatsUsecase interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (UserStats, error)
}

type Stats struct {
	users       repository.UserRepository
	userSkills  repository.UserSkillRepository
	assessments repository.AssessmentRepository
	projects    repository.ProjectRepository
	reviews     repository.PeerReviewRepository
}

func NewStatsUsecase(users repository.UserRepository, userSkills repository.UserSkillRepository, assessments repository.AssessmentRepository, projects repository.ProjectRepository, reviews repository.PeerReviewRepository) *Stats {
	return &Stats{users: users, userSkills: userSkills, assessments: assessments, projects: projects, reviews: reviews}
}

func (u *Stats) GetUserStats(ctx context.Context, userID uuid.UUID) (UserStats, error) {
	if userID == uuid.Nil {
		return UserStats{}, ErrInvalidInput
	}

	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return UserStats{}, ErrInternal
	}
	if !exists {
		return UserStats{}, ErrStatsUserNotFound
	}

	stats := UserStats{UserID: userID}

	if stats.SkillsTracked, err = u.userSkills.CountByUserID(ctx, userID); err != nil {
		return UserStats{}, ErrInternal
	}
	if stats.AssessmentsCompleted, err = u.assessments.CountCompletedByUserID(ctx, userID); err != nil {
		return UserStats{}, ErrInternal
	}
	if stats.ProjectMemberships, err = u.projects.CountMembershipsByUserID(ctx, userID); err != nil {
		return UserStats{}, ErrInternal
	}
	if stats.PendingReviews, err = u.reviews.CountPendingByReviewerID(ctx, userID); err != nil {
		return UserStats{}, ErrInternal
	}

	scores, err := u.reviews.ListCompletedScoresByRevieweeID(ctx, userID)
	if err != nil {
		return UserStats{}, ErrInternal
	}
	stats.ReviewsReceived = len(scores)
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		// Two decimals is plenty for a dashboard figure.
		stats.AverageReviewScore = math.Round(sum/float64(len(scores))*100) / 100
	}

	return stats, nil
}
