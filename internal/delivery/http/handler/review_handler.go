package handler

import (
	"errors"

	"seedble/internal/delivery/http/dto"
	"seedble/internal/delivery/http/middleware"
	"seedble/internal/domain/review"
	"seedble/internal/pkg/response"
	"seedble/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/reviews")
	grp.Post("/", h.AssignReview)
	grp.Get("/assigned", h.ListAssigned)
	grp.Get("/received", h.ListReceived)
	grp.Post("/:review_id/start", h.StartReview)
	grp.Post("/:review_id/submit", h.SubmitReview)
	grp.Post("/:review_id/validate", h.ValidateReview)
	grp.Post("/:review_id/flag", h.FlagReview)
}

func (h *ReviewHandler) AssignReview(c fiber.Ctx) error {
	var req dto.AssignReviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.AssignReview(c.Context(), usecase.AssignReviewInput{
		ReviewerID: req.ReviewerID,
		RevieweeID: req.RevieweeID,
		ProjectID:  req.ProjectID,
	})
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, toReviewResponse(item))
}

func (h *ReviewHandler) StartReview(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	reviewID, err := uuid.Parse(c.Params("review_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.StartReview(c.Context(), userID, reviewID); err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ReviewHandler) SubmitReview(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	reviewID, err := uuid.Parse(c.Params("review_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SubmitReviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.SubmitReviewInput{
		ReviewID: reviewID,
		Feedback: req.Feedback,
		Ratings:  make([]review.SkillRating, 0, len(req.Ratings)),
	}
	for _, rt := range req.Ratings {
		in.Ratings = append(in.Ratings, review.SkillRating{
			SkillID:  rt.SkillID,
			Category: review.Category(rt.Category),
			Score:    rt.Score,
			Feedback: rt.Feedback,
		})
	}

	item, err := h.uc.SubmitReview(c.Context(), userID, in)
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toReviewResponse(item))
}

func (h *ReviewHandler) ValidateReview(c fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("review_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.ValidateReview(c.Context(), reviewID); err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ReviewHandler) FlagReview(c fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("review_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.FlagReviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.FlagReview(c.Context(), reviewID, req.Reason); err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ReviewHandler) ListAssigned(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListAssigned(c.Context(), userID)
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toReviewResponses(items))
}

func (h *ReviewHandler) ListReceived(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListReceived(c.Context(), userID)
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toReviewResponses(items))
}

func toReviewResponses(items []usecase.ReviewItem) []dto.ReviewResponse {
	out := make([]dto.ReviewResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toReviewResponse(it))
	}
	return out
}

func toReviewResponse(item usecase.ReviewItem) dto.ReviewResponse {
	out := dto.ReviewResponse{
		ID:            item.ID,
		ReviewerID:    item.ReviewerID,
		RevieweeID:    item.RevieweeID,
		ProjectID:     item.ProjectID,
		Status:        string(item.Status),
		Feedback:      item.Feedback,
		FlagReason:    item.FlagReason,
		FlagSuggested: item.FlagSuggested,
		CreatedAt:     item.CreatedAt,
		CompletedAt:   item.CompletedAt,
		ValidatedAt:   item.ValidatedAt,
	}
	if item.Scores != nil {
		out.Scores = &dto.ReviewScoresResponse{
			Technical:  item.Scores.Technical,
			Soft:       item.Scores.Soft,
			Process:    item.Scores.Process,
			Innovation: item.Scores.Innovation,
			Overall:    item.Scores.Overall(),
		}
	}
	return out
}

func mapReviewUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrReviewSelf),
		errors.Is(err, usecase.ErrReviewEmptyRatings),
		errors.Is(err, usecase.ErrReviewBadRating):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrReviewNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Review not found", nil, err)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrReviewNotReviewer):
		return middleware.NewAppError(fiber.StatusForbidden, "Not the assigned reviewer", nil, err)
	case errors.Is(err, usecase.ErrReviewTransition):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
