package dto

import "github.com/google/uuid"

type RecommendTeamRequest struct {
	RequiredSkills []string `json:"required_skills"`
	TeamSize       int      `json:"team_size,omitempty"`
}

type TeamMemberResponse struct {
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	Role             string    `json:"role,omitempty"`
	SkillMatchPct    int       `json:"skill_match_pct"`
	AverageLevel     float64   `json:"average_level"`
	CompatibilityPct int       `json:"compatibility_pct"`
	MatchingSkills   []string  `json:"matching_skills"`
}

type NarrativeResponse struct {
	Reasoning   []string `json:"reasoning"`
	Risks       []string `json:"risks"`
	Suggestions []string `json:"suggestions"`
}

type RecommendationResponse struct {
	Team              []TeamMemberResponse `json:"team"`
	SkillsCoverage    int                  `json:"skills_coverage"`
	SuccessPrediction int                  `json:"success_prediction"`
	Narrative         NarrativeResponse    `json:"narrative"`
}
