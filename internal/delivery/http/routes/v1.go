package routes

import (
	"seedble/internal/config"
	"seedble/internal/delivery/http/handler"
	"seedble/internal/delivery/http/middleware"
	"seedble/internal/domain/review"
	"seedble/internal/pkg/jwt"
	"seedble/internal/repository"
	"seedble/internal/usecase"
	"seedble/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func newJWTService(cfg config.Config) jwt.Service {
	return jwt.NewHMACService(cfg.Auth.TokenSecret)
}

func RegisterV1(r fiber.Router, reg *Registry) {
	if r == nil || reg == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(newJWTService(reg.Cfg))

	userRepo := repository.NewPostgresUserRepository(reg.DB)
	skillRepo := repository.NewPostgresSkillRepository(reg.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(reg.DB)
	assessmentRepo := repository.NewPostgresAssessmentRepository(reg.DB)
	projectRepo := repository.NewPostgresProjectRepository(reg.DB)
	reviewRepo := repository.NewPostgresPeerReviewRepository(reg.DB)
	circleRepo := repository.NewPostgresKnowledgeCircleRepository(reg.DB)

	var notifier usecase.Notifier
	if reg.Hub != nil {
		notifier = ws.NewHubNotifier(reg.Hub)
	}

	recommendationUC := usecase.NewRecommendationUsecase(
		userRepo, userSkillRepo, reg.Cache, reg.Narrator,
		reg.Cfg.Recommendation.DefaultTeamSize, reg.Cfg.Recommendation.CacheTTL, reg.Logger,
	)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	assessmentUC := usecase.NewAssessmentUsecase(assessmentRepo, userSkillRepo, recommendationUC, reg.Logger)
	projectUC := usecase.NewProjectUsecase(projectRepo, userRepo, notifier, reg.Logger)
	reviewUC := usecase.NewReviewUsecase(
		reviewRepo, userRepo, projectRepo,
		review.VariancePolicy{Threshold: reg.Cfg.Review.FlagVarianceThreshold},
		notifier, reg.Logger,
	)
	circleUC := usecase.NewCircleUsecase(circleRepo)
	statsUC := usecase.NewStatsUsecase(userRepo, userSkillRepo, assessmentRepo, projectRepo, reviewRepo)

	skillHandler := handler.NewSkillHandler(skillUC)
	assessmentHandler := handler.NewAssessmentHandler(assessmentUC, userSkillRepo)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUC)
	projectHandler := handler.NewProjectHandler(projectUC)
	reviewHandler := handler.NewReviewHandler(reviewUC)
	circleHandler := handler.NewCircleHandler(circleUC)
	statsHandler := handler.NewStatsHandler(statsUC)

	protected := r.Group("", authMw.Middleware())

	skillHandler.RegisterRoutes(protected)
	assessmentHandler.RegisterRoutes(protected)
	recommendationHandler.RegisterRoutes(protected)
	projectHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)
	circleHandler.RegisterRoutes(protected)
	statsHandler.RegisterRoutes(protected)
}
