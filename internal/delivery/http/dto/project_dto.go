package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	RequiredSkills []string    `json:"required_skills"`
	StartDate      time.Time   `json:"start_date"`
	EndDate        *time.Time  `json:"end_date,omitempty"`
	MemberIDs      []uuid.UUID `json:"member_ids,omitempty"`
}

type AddProjectMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role,omitempty"`
}

type ProjectMemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type ProjectResponse struct {
	ID             uuid.UUID               `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description,omitempty"`
	RequiredSkills []string                `json:"required_skills"`
	StartDate      time.Time               `json:"start_date"`
	EndDate        *time.Time              `json:"end_date,omitempty"`
	Status         string                  `json:"status"`
	CreatedBy      uuid.UUID               `json:"created_by"`
	CreatedAt      time.Time               `json:"created_at"`
	Members        []ProjectMemberResponse `json:"members,omitempty"`
}
