package gorouter

import (
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
)

// NewFiberServer builds a go-router Fiber adapter with the dashboard routes mounted.
func NewFiberServer(cfg Config[*fiber.App]) (router.Server[*fiber.App], error) {
	server := router.NewFiberAdapter()
	cfg.Router = server.Router()
	if err := Register(cfg); err != nil {
		return nil, err
	}
	return server, nil
}
