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

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/projects")
	grp.Post("/", h.CreateProject)
	grp.Get("/", h.ListProjects)
	grp.Get("/:project_id", h.GetProject)
	grp.Post("/:project_id/members", h.AddMember)
}

func (h *ProjectHandler) CreateProject(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.CreateProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.CreateProject(c.Context(), userID, usecase.CreateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		MemberIDs:      req.MemberIDs,
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, toProjectResponse(item))
}

func (h *ProjectHandler) ListProjects(c fiber.Ctx) error {
	items, err := h.uc.ListActiveProjects(c.Context())
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	out := make([]dto.ProjectResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toProjectResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProjectHandler) GetProject(c fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.GetProject(c.Context(), projectID)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toProjectResponse(item))
}

func (h *ProjectHandler) AddMember(c fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.AddProjectMemberRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.AddMember(c.Context(), projectID, req.UserID, req.Role); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toProjectResponse(item usecase.ProjectItem) dto.ProjectResponse {
	out := dto.ProjectResponse{
		ID:             item.ID,
		Name:           item.Name,
		Description:    item.Description,
		RequiredSkills: item.RequiredSkills,
		StartDate:      item.StartDate,
		EndDate:        item.EndDate,
		Status:         item.Status,
		CreatedBy:      item.CreatedBy,
		CreatedAt:      item.CreatedAt,
	}
	for _, m := range item.Members {
		out.Members = append(out.Members, dto.ProjectMemberResponse{
			UserID:   m.UserID,
			FullName: m.FullName,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return out
}

func mapProjectUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
