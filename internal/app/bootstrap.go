package app

import (
	"fmt"
	"strings"

	"seedble/internal/config"
	"seedble/internal/delivery/http/middleware"
	"seedble/internal/delivery/http/routes"
	"seedble/internal/infrastructure/narrative"
	"seedble/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	errMw := middleware.NewErrorMiddleware()
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	hub := ws.NewHub(c.Logger)
	go hub.Run()

	reg := &routes.Registry{
		Cfg:      c.Config,
		DB:       c.DB,
		Cache:    c.Cache,
		Hub:      hub,
		Narrator: narrative.NewClient(c.Config.Narrative.BaseURL, c.Config.Narrative.Timeout, c.Logger),
		Logger:   c.Logger,
	}
	reg.Register(f)

	return &App{Fiber: f, Hub: hub}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
