package handler

import (
	"errors"

	"seedble/internal/delivery/http/dto"
	"seedble/internal/delivery/http/middleware"
	"seedble/internal/domain/team"
	"seedble/internal/pkg/response"
	"seedble/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/recommendations/team", h.RecommendTeam)
}

func (h *RecommendationHandler) RecommendTeam(c fiber.Ctx) error {
	var req dto.RecommendTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.uc.RecommendTeam(c.Context(), usecase.RecommendTeamInput{
		RequiredSkills: req.RequiredSkills,
		TeamSize:       req.TeamSize,
	})
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toRecommendationResponse(rec))
}

func toRecommendationResponse(rec team.Recommendation) dto.RecommendationResponse {
	out := dto.RecommendationResponse{
		Team:              make([]dto.TeamMemberResponse, 0, len(rec.Team)),
		SkillsCoverage:    rec.SkillsCoverage,
		SuccessPrediction: rec.SuccessPrediction,
		Narrative: dto.NarrativeResponse{
			Reasoning:   rec.Narrative.Reasoning,
			Risks:       rec.Narrative.Risks,
			Suggestions: rec.Narrative.Suggestions,
		},
	}
	for _, m := range rec.Team {
		out.Team = append(out.Team, dto.TeamMemberResponse{
			UserID:           m.UserID,
			Name:             m.DisplayName,
			Role:             m.Role,
			SkillMatchPct:    m.SkillMatchPct,
			AverageLevel:     m.AverageLevel,
			CompatibilityPct: m.CompatibilityPct,
			MatchingSkills:   m.MatchingSkills,
		})
	}
	return out
}

func mapRecommendationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoRequiredSkills):
		return middleware.NewAppError(fiber.StatusBadRequest, "No required skills given", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
