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

type CircleHandler struct {
	uc usecase.CircleUsecase
}

func NewCircleHandler(uc usecase.CircleUsecase) *CircleHandler {
	return &CircleHandler{uc: uc}
}

func (h *CircleHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/circles")
	grp.Get("/", h.ListCircles)
	grp.Post("/:circle_id/join", h.JoinCircle)
	grp.Post("/:circle_id/leave", h.LeaveCircle)
}

func (h *CircleHandler) ListCircles(c fiber.Ctx) error {
	items, err := h.uc.ListCircles(c.Context())
	if err != nil {
		return mapCircleUsecaseError(err)
	}

	out := make([]dto.CircleResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.CircleResponse{
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
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CircleHandler) JoinCircle(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	circleID, err := uuid.Parse(c.Params("circle_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.JoinCircle(c.Context(), circleID, userID); err != nil {
		return mapCircleUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CircleHandler) LeaveCircle(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	circleID, err := uuid.Parse(c.Params("circle_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.LeaveCircle(c.Context(), circleID, userID); err != nil {
		return mapCircleUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapCircleUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
