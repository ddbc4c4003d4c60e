package dashboard

import (
	"context"
	"log/slog"

	"github.com/ettle/strcase"
)

const titleKey = "dashboard.title"

// Options configures the dashboard Service. Every collaborator is optional;
// NewService fills in the built-in defaults.
type Options struct {
	// Data overrides the built-in sample data. Nil means DefaultData().
	Data       *Data
	Providers  ProviderRegistry
	Areas      []WidgetAreaDefinition
	Cache      RenderCache
	Theme      string
	AssetsHost string
	Palette    Palette
	Authorizer Authorizer
	Translator TranslationService
	Telemetry  Telemetry
	Logger     *slog.Logger
}

// Service assembles the dashboard view from data, widget definitions and providers.
type Service struct {
	opts Options
	data Data
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Authorizer == nil {
		opts.Authorizer = allowAllAuthorizer{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if len(opts.Areas) == 0 {
		opts.Areas = DefaultAreaDefinitions()
	}
	if opts.Theme == "" {
		opts.Theme = defaultChartTheme
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette()
	}
	if opts.Cache == nil {
		opts.Cache = NewChartCache(defaultCacheTTL)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	data := DefaultData()
	if opts.Data != nil {
		data = opts.Data.Clone()
	}
	svc := &Service{opts: opts, data: data}
	svc.warnOnClampedScore()
	return svc
}

// Data returns a copy of the data the service renders.
func (s *Service) Data() Data {
	return s.data.Clone()
}

// Definitions lists the widgets known to the registry.
func (s *Service) Definitions() []WidgetDefinition {
	return s.opts.Providers.Definitions()
}

// Build resolves every area and widget for the viewer. Provider failures are
// recorded on the widget and do not abort the build.
func (s *Service) Build(ctx context.Context, viewer ViewerContext) (View, error) {
	view := View{
		Title:        s.title(ctx, viewer),
		Theme:        s.opts.Theme,
		CSSVariables: s.opts.Palette.CSSVariablesInline(),
		Areas:        make([]Area, 0, len(s.opts.Areas)),
	}
	seen := map[string]bool{}
	for _, areaDef := range s.opts.Areas {
		area := Area{
			Code:    areaDef.Code,
			Name:    areaDef.Name,
			Grid:    areaDef.Grid,
			Widgets: make([]Widget, 0, len(areaDef.Widgets)),
		}
		for _, code := range areaDef.Widgets {
			def, ok := s.opts.Providers.Definition(code)
			if !ok {
				s.opts.Logger.Warn("dashboard: area references unknown widget", "area", areaDef.Code, "widget", code)
				continue
			}
			if !s.opts.Authorizer.CanViewWidget(ctx, viewer, def) {
				continue
			}
			widget, err := s.renderWidget(ctx, viewer, def)
			if err != nil {
				s.opts.Logger.Error("dashboard: widget provider failed", "widget", code, "error", err)
				s.recordTelemetry(ctx, EventWidgetFailed, map[string]any{
					"code":  code,
					"error": err.Error(),
				})
				widget.Error = err.Error()
			}
			area.Widgets = append(area.Widgets, widget)
			view.Scripts = appendScripts(view.Scripts, seen, widget)
		}
		view.Areas = append(view.Areas, area)
	}
	s.recordTelemetry(ctx, EventDashboardBuilt, map[string]any{
		"viewer": viewer.UserID,
		"areas":  len(view.Areas),
	})
	return view, nil
}

// Widget renders a single widget by code.
func (s *Service) Widget(ctx context.Context, viewer ViewerContext, code string) (Widget, error) {
	def, ok := s.opts.Providers.Definition(code)
	if !ok || !s.opts.Authorizer.CanViewWidget(ctx, viewer, def) {
		return Widget{}, ErrWidgetNotFound(code)
	}
	widget, err := s.renderWidget(ctx, viewer, def)
	if err != nil {
		s.recordTelemetry(ctx, EventWidgetFailed, map[string]any{
			"code":  code,
			"error": err.Error(),
		})
		return Widget{}, errRender(err, code)
	}
	return widget, nil
}

func (s *Service) renderWidget(ctx context.Context, viewer ViewerContext, def WidgetDefinition) (Widget, error) {
	widget := Widget{
		ID:    widgetDOMID(def.Code),
		Code:  def.Code,
		Kind:  def.Kind,
		Title: translateOrFallback(ctx, s.opts.Translator, widgetTitleKey(def.Code), viewer.Locale, def.NameForLocale(viewer.Locale), nil),
	}
	provider, ok := s.opts.Providers.Provider(def.Code)
	if !ok || provider == nil {
		return widget, nil
	}
	data, err := provider.Fetch(ctx, WidgetContext{
		Definition: def,
		Viewer:     viewer,
		Data:       s.data.Clone(),
		Translator: s.opts.Translator,
		Theme:      s.opts.Theme,
		AssetsHost: s.opts.AssetsHost,
		Cache:      s.opts.Cache,
	})
	if err != nil {
		return widget, err
	}
	widget.Data = data
	s.recordTelemetry(ctx, EventWidgetRendered, map[string]any{"code": def.Code})
	return widget, nil
}

func (s *Service) title(ctx context.Context, viewer ViewerContext) string {
	title := s.data.Title
	if title == "" || title == defaultTitle {
		return translateOrFallback(ctx, s.opts.Translator, titleKey, viewer.Locale, defaultTitle, nil)
	}
	return title
}

func (s *Service) warnOnClampedScore() {
	score := s.data.OnTimeScore
	clamped := ClampScore(score)
	if score == clamped {
		return
	}
	s.opts.Logger.Warn("dashboard: on-time score out of range, clamping", "score", score, "clamped", clamped)
	s.recordTelemetry(context.Background(), EventScoreClamped, map[string]any{
		"score":   score,
		"clamped": clamped,
	})
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func appendScripts(scripts []string, seen map[string]bool, widget Widget) []string {
	snippet, ok := widget.Data[dataKeyChart].(ChartSnippet)
	if !ok {
		return scripts
	}
	for _, asset := range snippet.Assets {
		if seen[asset] {
			continue
		}
		seen[asset] = true
		scripts = append(scripts, asset)
	}
	return scripts
}

func widgetDOMID(code string) string {
	return "widget-" + strcase.ToKebab(code)
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanViewWidget(context.Context, ViewerContext, WidgetDefinition) bool {
	return true
}
