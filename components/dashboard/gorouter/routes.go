package gorouter

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"

	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
	"github.com/goliatone/go-delivery-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-delivery-dashboard/components/dashboard/queries"
)

const requestIDHeader = "X-Request-ID"

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard controller and widget query.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     httpapi.PageController
	Widget         gocommand.Querier[queries.WidgetInput, dashboard.Widget]
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         httpapi.RouteConfig
}

// Register mounts the dashboard routes on a go-router router. Paths and
// payloads match httpapi.Register.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	resolver := cfg.ViewerResolver
	if resolver == nil {
		resolver = defaultViewerResolver
	}

	group := cfg.Router
	if base := strings.TrimRight(cfg.BasePath, "/"); base != "" {
		group = cfg.Router.Group(base)
	}

	group.Get(routes.Health, router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), resolver(ctx), &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.LayoutPayload(ctx.Context(), resolver(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.Widget != nil {
		group.Get(routes.Widget, router.WrapHandler(func(ctx router.Context) error {
			widget, err := cfg.Widget.Query(ctx.Context(), queries.WidgetInput{
				Viewer: resolver(ctx),
				Code:   ctx.Param("code"),
			})
			if err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, widget)
		}))
	}
	return nil
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return httpapi.ParseAcceptLanguage(ctx.Header("Accept-Language"))
}

func respondError(ctx router.Context, err error) error {
	status, body := httpapi.Envelope(err, ctx.Header(requestIDHeader))
	return ctx.JSON(status, body)
}

func defaultRouteConfig(routes httpapi.RouteConfig) httpapi.RouteConfig {
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
