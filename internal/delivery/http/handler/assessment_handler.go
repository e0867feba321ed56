package handler

import (
	"errors"

	"seedble/internal/delivery/http/dto"
	"seedble/internal/delivery/http/middleware"
	"seedble/internal/pkg/response"
	"seedble/internal/repository"
	"seedble/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AssessmentHandler struct {
	uc         usecase.AssessmentUsecase
	userSkills repository.UserSkillRepository
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase, userSkills repository.UserSkillRepository) *AssessmentHandler {
	return &AssessmentHandler{uc: uc, userSkills: userSkills}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/assessments")
	grp.Post("/", h.StartAssessment)
	grp.Post("/:assessment_id/submit", h.SubmitAssessment)
	grp.Get("/", h.ListAssessments)

	r.Get("/me/skills", h.ListMySkills)
}

func (h *AssessmentHandler) StartAssessment(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.StartAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.StartAssessment(c.Context(), userID, req.Type)
	if err != nil {
		return mapAssessmentUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, toAssessmentResponse(item))
}

func (h *AssessmentHandler) SubmitAssessment(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	assessmentID, err := uuid.Parse(c.Params("assessment_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SubmitAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.SubmitAssessmentInput{
		AssessmentID:   assessmentID,
		CompletionTime: req.CompletionTime,
		Entries:        make([]usecase.AssessmentEntry, 0, len(req.Entries)),
	}
	for _, e := range req.Entries {
		in.Entries = append(in.Entries, usecase.AssessmentEntry{
			SkillID:    e.SkillID,
			Level:      e.Level,
			Interest:   e.Interest,
			IsPriority: e.IsPriority,
		})
	}

	item, err := h.uc.SubmitAssessment(c.Context(), userID, in)
	if err != nil {
		return mapAssessmentUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toAssessmentResponse(item))
}

func (h *AssessmentHandler) ListAssessments(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListAssessments(c.Context(), userID)
	if err != nil {
		return mapAssessmentUsecaseError(err)
	}

	out := make([]dto.AssessmentResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toAssessmentResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AssessmentHandler) ListMySkills(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.userSkills.FindByUserID(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.UserSkillResponse{
			SkillID:      it.SkillID,
			SkillName:    it.SkillName,
			Category:     string(it.Category),
			Level:        it.Level,
			Interest:     it.Interest,
			IsPriority:   it.IsPriority,
			LastAssessed: it.LastAssessed,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func toAssessmentResponse(item usecase.AssessmentItem) dto.AssessmentResponse {
	return dto.AssessmentResponse{
		ID:              item.ID,
		Type:            item.Type,
		Status:          item.Status,
		SkillsEvaluated: item.SkillsEvaluated,
		CreatedAt:       item.CreatedAt,
		CompletedAt:     item.CompletedAt,
	}
}

func mapAssessmentUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidAssessmentType),
		errors.Is(err, usecase.ErrInvalidSkillRating),
		errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Assessment not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown skill", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
