package dto

import (
	"time"

	"github.com/google/uuid"
)

type CircleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserStatsResponse struct {
	UserID               uuid.UUID `json:"user_id"`
	SkillsTracked        int       `json:"skills_tracked"`
	AssessmentsCompleted int       `json:"assessments_completed"`
	ProjectMemberships   int       `json:"project_memberships"`
	PendingReviews       int       `json:"pending_reviews"`
	AverageReviewScore   float64   `json:"average_review_score"`
	ReviewsReceived      int       `json:"reviews_received"`
}
