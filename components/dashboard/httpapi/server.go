package httpapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// NewApp builds a fiber app with the dashboard middleware, error envelope and routes.
func NewApp(cfg Config, logger *slog.Logger) (*fiber.App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName:               "delivery-dashboard",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger),
	})
	app.Use(RequestID(), AccessLog(logger))
	cfg.Router = app
	if err := Register(cfg); err != nil {
		return nil, err
	}
	return app, nil
}
