package httpapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
	"github.com/goliatone/go-delivery-dashboard/components/dashboard/queries"
)

// ViewerResolver converts a fiber context into a dashboard.ViewerContext.
type ViewerResolver func(*fiber.Ctx) dashboard.ViewerContext

// PageController renders the dashboard page and its JSON payload.
type PageController interface {
	RenderTemplate(ctx context.Context, viewer dashboard.ViewerContext, out io.Writer) error
	LayoutPayload(ctx context.Context, viewer dashboard.ViewerContext) (map[string]any, error)
}

// Config wires fiber routes with the dashboard controller and queries.
type Config struct {
	Router         fiber.Router
	Controller     PageController
	Widget         gocommand.Querier[queries.WidgetInput, dashboard.Widget]
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML   string
	Layout string
	Widget string
	Health string
}

// Register mounts the dashboard routes.
func Register(cfg Config) error {
	if cfg.Router == nil {
		return errors.New("httpapi: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("httpapi: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	resolver := cfg.ViewerResolver
	if resolver == nil {
		resolver = defaultViewerResolver
	}

	var group fiber.Router = cfg.Router
	if base := strings.TrimRight(cfg.BasePath, "/"); base != "" {
		group = cfg.Router.Group(base)
	}

	group.Get(routes.Health, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	group.Get(routes.HTML, func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(c.UserContext(), resolver(c), &buf); err != nil {
			return err
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	group.Get(routes.Layout, func(c *fiber.Ctx) error {
		payload, err := cfg.Controller.LayoutPayload(c.UserContext(), resolver(c))
		if err != nil {
			return err
		}
		return c.Status(http.StatusOK).JSON(payload)
	})

	if cfg.Widget != nil {
		group.Get(routes.Widget, func(c *fiber.Ctx) error {
			widget, err := cfg.Widget.Query(c.UserContext(), queries.WidgetInput{
				Viewer: resolver(c),
				Code:   c.Params("code"),
			})
			if err != nil {
				return err
			}
			return c.Status(http.StatusOK).JSON(widget)
		})
	}
	return nil
}

func defaultViewerResolver(c *fiber.Ctx) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := c.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	viewer.Locale = inferLocale(c)
	return viewer
}

func inferLocale(c *fiber.Ctx) string {
	if locale, ok := c.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(c.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
		if lang := ParseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

// ParseAcceptLanguage returns the first concrete language tag of an
// Accept-Language header, lowercased. Wildcards are skipped.
func ParseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" && token != "*" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Layout == "" {
		routes.Layout = "/dashboard/_layout"
	}
	if routes.Widget == "" {
		routes.Widget = "/dashboard/widgets/:code"
	}
	if routes.Health == "" {
		routes.Health = "/healthz"
	}
	return routes
}
