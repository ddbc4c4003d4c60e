package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
	"github.com/goliatone/go-delivery-dashboard/components/dashboard/queries"
	pkgdashboard "github.com/goliatone/go-delivery-dashboard/pkg/dashboard"
)

type stubController struct {
	lastViewer dashboard.ViewerContext
	err        error
}

func (s *stubController) RenderTemplate(_ context.Context, viewer dashboard.ViewerContext, out io.Writer) error {
	s.lastViewer = viewer
	if s.err != nil {
		return s.err
	}
	_, err := out.Write([]byte("<html>dashboard</html>"))
	return err
}

func (s *stubController) LayoutPayload(_ context.Context, viewer dashboard.ViewerContext) (map[string]any, error) {
	s.lastViewer = viewer
	if s.err != nil {
		return nil, s.err
	}
	return map[string]any{"title": "Delivery Performance Dashboard"}, nil
}

func serviceConfig() Config {
	svc := dashboard.NewService(dashboard.Options{Cache: dashboard.NewChartCache(0)})
	return Config{
		Controller: &stubController{},
		Widget:     queries.NewWidgetQuery(svc),
	}
}

func TestHealthz(t *testing.T) {
	app, err := NewApp(serviceConfig(), nil)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestDashboardHTML(t *testing.T) {
	controller := &stubController{}
	cfg := serviceConfig()
	cfg.Controller = controller
	app, err := NewApp(cfg, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept-Language", "es-MX,es;q=0.9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, "<html>dashboard</html>", string(body))
	assert.Equal(t, "es-mx", controller.lastViewer.Locale)
}

func TestDashboardLayoutJSON(t *testing.T) {
	app, err := NewApp(serviceConfig(), nil)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/_layout?locale=ES", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Delivery Performance Dashboard", payload["title"])
}

func TestWidgetJSON(t *testing.T) {
	app, err := NewApp(serviceConfig(), nil)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/widgets/"+dashboard.WidgetOnTimeGauge, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var widget struct {
		Code string         `json:"code"`
		Kind string         `json:"kind"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&widget))
	assert.Equal(t, dashboard.WidgetOnTimeGauge, widget.Code)
	assert.Equal(t, dashboard.KindChart, widget.Kind)
	assert.EqualValues(t, 85, widget.Data["score"])
}

func TestUnknownWidgetReturnsEnvelope(t *testing.T) {
	app, err := NewApp(serviceConfig(), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/widgets/delivery.widget.unknown", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))

	var envelope struct {
		Error struct {
			Category  string `json:"category"`
			TextCode  string `json:"text_code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "not_found", envelope.Error.Category)
	assert.Equal(t, dashboard.TextCodeWidgetNotFound, envelope.Error.TextCode)
	assert.Equal(t, "req-123", envelope.Error.RequestID)
}

func TestControllerFailureReturns500(t *testing.T) {
	cfg := serviceConfig()
	cfg.Controller = &stubController{err: errors.New("template exploded")}
	app, err := NewApp(cfg, nil)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestUnknownRouteReturns404Envelope(t *testing.T) {
	app, err := NewApp(serviceConfig(), nil)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBasePath(t *testing.T) {
	cfg := serviceConfig()
	cfg.BasePath = "/ops/"
	app, err := NewApp(cfg, nil)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ops/dashboard/_layout", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterRequiresRouterAndController(t *testing.T) {
	assert.Error(t, Register(Config{}))
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"en-US,en;q=0.9": "en-us",
		" ;q=1, fr":      "fr",
		"*":              "",
	}
	for header, want := range cases {
		assert.Equal(t, want, ParseAcceptLanguage(header), header)
	}
}

func TestDashboardHTMLRendersEmbeddedPage(t *testing.T) {
	svc, controller, err := pkgdashboard.New(pkgdashboard.Options{Cache: dashboard.NewChartCache(0)})
	require.NoError(t, err)
	app, err := NewApp(Config{Controller: controller, Widget: queries.NewWidgetQuery(svc)}, nil)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	for _, metric := range dashboard.DefaultMetrics() {
		assert.Contains(t, body, metric.Title)
		assert.Contains(t, body, metric.Value)
		assert.Contains(t, body, metric.Description)
	}
	for _, cell := range dashboard.ScorecardCells() {
		assert.Contains(t, body, cell.Label)
		assert.Contains(t, body, cell.Value)
	}
	for _, id := range []string{
		"chart_delivery_widget_delivery_rate",
		"chart_delivery_widget_delivery_status",
		"chart_delivery_widget_on_time_gauge",
	} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, "echarts.init")
}
