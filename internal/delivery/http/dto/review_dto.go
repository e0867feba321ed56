package dto

import (
	"time"

	"github.com/google/uuid"
)

type AssignReviewRequest struct {
	ReviewerID uuid.UUID `json:"reviewer_id"`
	RevieweeID uuid.UUID `json:"reviewee_id"`
	ProjectID  uuid.UUID `json:"project_id"`
}

type SkillRatingRequest struct {
	SkillID  uuid.UUID `json:"skill_id"`
	Category string    `json:"category"`
	Score    int       `json:"score"`
	Feedback string    `json:"feedback,omitempty"`
}

type SubmitReviewRequest struct {
	Ratings  []SkillRatingRequest `json:"ratings"`
	Feedback string               `json:"feedback,omitempty"`
}

type FlagReviewRequest struct {
	Reason string `json:"reason"`
}

type ReviewScoresResponse struct {
	Technical  float64 `json:"technical"`
	Soft       float64 `json:"soft"`
	Process    float64 `json:"process"`
	Innovation float64 `json:"innovation"`
	Overall    float64 `json:"overall"`
}

type ReviewResponse struct {
	ID            uuid.UUID             `json:"id"`
	ReviewerID    uuid.UUID             `json:"reviewer_id"`
	RevieweeID    uuid.UUID             `json:"reviewee_id"`
	ProjectID     uuid.UUID             `json:"project_id"`
	Status        string                `json:"status"`
	Scores        *ReviewScoresResponse `json:"scores,omitempty"`
	Feedback      string                `json:"feedback,omitempty"`
	FlagReason    string                `json:"flag_reason,omitempty"`
	FlagSuggested bool                  `json:"flag_suggested,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
	ValidatedAt   *time.Time            `json:"validated_at,omitempty"`
}
