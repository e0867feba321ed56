package routes

import (
	"log"

	"seedble/internal/config"
	"seedble/internal/database"
	"seedble/internal/delivery/http/handler"
	"seedble/internal/delivery/http/middleware"
	"seedble/internal/infrastructure/cache"
	"seedble/internal/infrastructure/narrative"
	"seedble/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds everything route registration needs; handlers and usecases
// are built inside Register so the wiring lives in one place.
type Registry struct {
	Cfg      config.Config
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Narrator narrative.Client
	Logger   *log.Logger
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	healthHandler := handler.NewHealthHandler(r.DB, r.Cache)
	healthHandler.RegisterRoutes(app)

	if r.Hub != nil {
		ws.RegisterRoutes(app, r.Hub, middleware.NewAuthMiddleware(newJWTService(r.Cfg)))
	}

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r)
}
