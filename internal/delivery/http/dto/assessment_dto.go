package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartAssessmentRequest struct {
	Type string `json:"type"`
}

type AssessmentEntryRequest struct {
	SkillID    uuid.UUID `json:"skill_id"`
	Level      int       `json:"level"`
	Interest   int       `json:"interest"`
	IsPriority bool      `json:"is_priority"`
}

type SubmitAssessmentRequest struct {
	Entries        []AssessmentEntryRequest `json:"entries"`
	CompletionTime *int                     `json:"completion_time,omitempty"`
}

type AssessmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	Type            string     `json:"type,omitempty"`
	Status          string     `json:"status"`
	SkillsEvaluated int        `json:"skills_evaluated"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type UserSkillResponse struct {
	SkillID      uuid.UUID `json:"skill_id"`
	SkillName    string    `json:"skill_name"`
	Category     string    `json:"category"`
	Level        int       `json:"level"`
	Interest     int       `json:"interest"`
	IsPriority   bool      `json:"is_priority"`
	LastAssessed time.Time `json:"last_assessed"`
}
