package dashboard

import "context"

// Provider fetches data required to render a widget.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch calls f(ctx, meta).
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// WidgetContext contains the metadata needed by providers.
type WidgetContext struct {
	Definition WidgetDefinition
	Viewer     ViewerContext
	Data       Data
	Translator TranslationService
	// Chart rendering defaults supplied by the service. Provider options win.
	Theme      string
	AssetsHost string
	Cache      RenderCache
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any

// Payload keys shared by providers and templates.
const (
	dataKeyCards     = "cards"
	dataKeyCells     = "cells"
	dataKeyChart     = "chart"
	dataKeyChartType = "chart_type"
	dataKeyGrid      = "grid"
	dataKeyPoints    = "points"
	dataKeySlices    = "slices"
	dataKeyScore     = "score"
	dataKeyTheme     = "theme"
)
