package app

import (
	"fmt"
	"strings"

	"jobrank/internal/config"
	"jobrank/internal/delivery/http/handler"
	"jobrank/internal/delivery/http/middleware"
	"jobrank/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Get("/health", func(fc fiber.Ctx) error {
		return response.Success(fc, fiber.StatusOK, response.MessageOK, nil)
	})

	api := app.Group("/api/v1")
	handler.NewRecommendationHandler(c.Recommendation).RegisterRoutes(api)
	handler.NewAssistantHandler(c.Assistant).RegisterRoutes(api)
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
