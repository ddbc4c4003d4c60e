package dashboard

import (
	"context"
	"errors"
	"io"
)

const (
	defaultTemplate = "dashboard.html"
	pageContainer   = "w-full max-w-6xl mx-auto p-4 space-y-4"
)

// ViewBuilder is the service contract the controller renders from.
type ViewBuilder interface {
	Build(ctx context.Context, viewer ViewerContext) (View, error)
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service  ViewBuilder
	Renderer Renderer
	Template string
}

// Controller turns a built View into HTML or a JSON-ready payload.
type Controller struct {
	service  ViewBuilder
	renderer Renderer
	template string
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	tpl := opts.Template
	if tpl == "" {
		tpl = defaultTemplate
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: tpl,
	}
}

// RenderTemplate builds the view for the viewer and writes the HTML page to out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dashboard: template renderer not configured")
	}
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return err
	}
	if _, err := c.renderer.Render(c.template, payload, out); err != nil {
		return errRender(err, c.template)
	}
	return nil
}

// LayoutPayload returns the template payload for the viewer.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	if c.service == nil {
		return nil, errors.New("dashboard: service not configured")
	}
	view, err := c.service.Build(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return viewPayload(view), nil
}

func viewPayload(view View) map[string]any {
	areas := make([]map[string]any, 0, len(view.Areas))
	for _, area := range view.Areas {
		widgets := make([]map[string]any, 0, len(area.Widgets))
		for _, w := range area.Widgets {
			widgets = append(widgets, map[string]any{
				"id":    w.ID,
				"code":  w.Code,
				"kind":  w.Kind,
				"title": w.Title,
				"data":  w.Data,
				"error": w.Error,
			})
		}
		areas = append(areas, map[string]any{
			"code":    area.Code,
			"name":    area.Name,
			"grid":    area.Grid,
			"widgets": widgets,
		})
	}
	return map[string]any{
		"title":           view.Title,
		"theme":           view.Theme,
		"css_variables":   view.CSSVariables,
		"scripts":         view.Scripts,
		"container_class": pageContainer,
		"areas":           areas,
	}
}
