package dashboard

import (
	"fmt"

	core "github.com/goliatone/go-delivery-dashboard/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Data re-export for convenience.
type Data = core.Data

// Controller re-export for convenience.
type Controller = core.Controller

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// DefaultData returns the built-in sample data.
func DefaultData() Data {
	return core.DefaultData()
}

// LoadData reads a data document from disk.
func LoadData(path string) (Data, error) {
	return core.LoadData(path)
}

// New builds a service and a controller backed by the embedded templates.
func New(opts Options) (*Service, *Controller, error) {
	renderer, err := core.NewTemplateRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("dashboard: template renderer: %w", err)
	}
	svc := core.NewService(opts)
	controller := core.NewController(core.ControllerOptions{
		Service:  svc,
		Renderer: renderer,
	})
	return svc, controller, nil
}
