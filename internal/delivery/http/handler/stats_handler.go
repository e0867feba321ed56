package handler

import (
	"errors"

	"seedble/internal/delivery/http/dto"
	"seedble/internal/delivery/http/middleware"
	"seedble/internal/pkg/response"
	"seedble/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type StatsHandler struct {
	uc usecase.StatsUsecase
}

func NewStatsHandler(uc usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me/stats", h.MyStats)
	r.Get("/users/:user_id/stats", h.UserStats)
}

func (h *StatsHandler) MyStats(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.respond(c, userID)
}

func (h *StatsHandler) UserStats(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return h.respond(c, userID)
}

func (h *StatsHandler) respond(c fiber.Ctx, userID uuid.UUID) error {
	stats, err := h.uc.GetUserStats(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		case errors.Is(err, usecase.ErrStatsUserNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UserStatsResponse{
		UserID:               stats.UserID,
		SkillsTracked:        stats.SkillsTracked,
		AssessmentsCompleted: stats.AssessmentsCompleted,
		ProjectMemberships:   stats.ProjectMemberships,
		PendingReviews:       stats.PendingReviews,
		AverageReviewScore:   stats.AverageReviewScore,
		ReviewsReceived:      stats.ReviewsReceived,
	})
}
