package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubViewBuilder struct {
	view View
	err  error
}

func (s *stubViewBuilder) Build(ctx context.Context, viewer ViewerContext) (View, error) {
	return s.view, s.err
}

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func TestControllerRenderTemplate(t *testing.T) {
	service := &stubViewBuilder{
		view: View{
			Title: "Deliveries",
			Theme: "white",
			Areas: []Area{{
				Code: AreaCharts,
				Widgets: []Widget{{
					ID:    "widget-gauge",
					Code:  WidgetOnTimeGauge,
					Kind:  KindChart,
					Title: "Gauge",
					Data:  WidgetData{dataKeyScore: 85},
				}},
			}},
		},
	}
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{Service: service, Renderer: renderer})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), ViewerContext{UserID: "user-1"}, &buf))

	assert.Equal(t, "dashboard.html", renderer.lastTemplate)
	assert.Equal(t, "<html></html>", buf.String())
	assert.Equal(t, "Deliveries", renderer.lastPayload["title"])
	assert.Equal(t, pageContainer, renderer.lastPayload["container_class"])

	areas, ok := renderer.lastPayload["areas"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, areas, 1)
	widgets, ok := areas[0]["widgets"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, widgets, 1)
	assert.Equal(t, "widget-gauge", widgets[0]["id"])
	assert.Equal(t, KindChart, widgets[0]["kind"])
}

func TestControllerPropagatesBuildError(t *testing.T) {
	controller := NewController(ControllerOptions{
		Service:  &stubViewBuilder{err: errors.New("boom")},
		Renderer: &stubRenderer{},
	})
	_, err := controller.LayoutPayload(context.Background(), ViewerContext{})
	require.Error(t, err)

	err = controller.RenderTemplate(context.Background(), ViewerContext{}, io.Discard)
	require.Error(t, err)
}

func TestControllerRequiresCollaborators(t *testing.T) {
	controller := NewController(ControllerOptions{})
	assert.Error(t, controller.RenderTemplate(context.Background(), ViewerContext{}, io.Discard))
	_, err := controller.LayoutPayload(context.Background(), ViewerContext{})
	assert.Error(t, err)
}

func TestControllerWrapsRendererFailure(t *testing.T) {
	controller := NewController(ControllerOptions{
		Service:  &stubViewBuilder{},
		Renderer: &stubRenderer{err: errors.New("template exploded")},
		Template: "custom.html",
	})
	err := controller.RenderTemplate(context.Background(), ViewerContext{}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom.html")
}

func TestControllerRendersEmbeddedTemplate(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	svc := NewService(Options{Cache: NewChartCache(0)})
	controller := NewController(ControllerOptions{Service: svc, Renderer: renderer})

	var first, second bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), ViewerContext{Locale: "en"}, &first))
	require.NoError(t, controller.RenderTemplate(context.Background(), ViewerContext{Locale: "en"}, &second))

	html := first.String()
	assert.Contains(t, html, "Delivery Performance Dashboard")
	assert.Contains(t, html, `id="metric-order-processing-time"`)
	assert.Contains(t, html, `data-lucide="clock"`)
	for _, metric := range DefaultMetrics() {
		assert.Contains(t, html, metric.Title)
		assert.Contains(t, html, metric.Value)
		assert.Contains(t, html, metric.Description)
	}
	for _, cell := range ScorecardCells() {
		assert.Contains(t, html, cell.Label)
		assert.Contains(t, html, cell.Value)
	}
	assert.Contains(t, html, `<div class="p-4 bg-blue-50 rounded-lg">`)
	assert.Contains(t, html, "echarts.init")
	assert.NotContains(t, html, "This widget is unavailable.")
	for _, code := range []string{WidgetDeliveryRate, WidgetDeliveryStatus, WidgetOnTimeGauge} {
		assert.Contains(t, html, chartID(code))
	}
	assert.Contains(t, html, "--delivery-navy: #1e3a8a;")
	assert.Equal(t, first.String(), second.String())
}

func TestControllerRendersUnavailableMetricsWidget(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	reg := NewRegistry()
	require.NoError(t, reg.RegisterProvider(WidgetMetrics, ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, errors.New("metrics backend down")
	})))
	svc := newTestService(Options{Providers: reg})
	controller := NewController(ControllerOptions{Service: svc, Renderer: renderer})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), ViewerContext{}, &buf))

	html := buf.String()
	assert.Contains(t, html, `id="`+widgetDOMID(WidgetMetrics)+`" class="rounded-lg border bg-white p-4 shadow-sm" data-widget-error="true"`)
	assert.Contains(t, html, "This widget is unavailable.")
	assert.NotContains(t, html, `id="metric-order-processing-time"`)
	assert.Contains(t, html, "Shipment Delay Rate")
}
