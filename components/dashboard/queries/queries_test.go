package queries

import (
	"context"
	"testing"

	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
)

type stubViewService struct {
	calls int
}

func (s *stubViewService) Build(context.Context, dashboard.ViewerContext) (dashboard.View, error) {
	s.calls++
	return dashboard.View{Title: "Delivery"}, nil
}

type stubWidgetService struct {
	calls    int
	lastCode string
}

func (s *stubWidgetService) Widget(_ context.Context, _ dashboard.ViewerContext, code string) (dashboard.Widget, error) {
	s.calls++
	s.lastCode = code
	return dashboard.Widget{Code: code}, nil
}

func TestLayoutQuery(t *testing.T) {
	service := &stubViewService{}
	query := NewLayoutQuery(service)
	view, err := query.Query(context.Background(), dashboard.ViewerContext{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if view.Title != "Delivery" {
		t.Fatalf("unexpected view title %q", view.Title)
	}
}

func TestWidgetQuery(t *testing.T) {
	service := &stubWidgetService{}
	query := NewWidgetQuery(service)
	widget, err := query.Query(context.Background(), WidgetInput{Code: dashboard.WidgetOnTimeGauge})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 || service.lastCode != dashboard.WidgetOnTimeGauge {
		t.Fatalf("expected one call for the gauge, got %d (%s)", service.calls, service.lastCode)
	}
	if widget.Code != dashboard.WidgetOnTimeGauge {
		t.Fatalf("unexpected widget %q", widget.Code)
	}
}

func TestWidgetQueryRequiresCode(t *testing.T) {
	service := &stubWidgetService{}
	query := NewWidgetQuery(service)
	if _, err := query.Query(context.Background(), WidgetInput{}); err == nil {
		t.Fatalf("expected error for empty code")
	}
	if service.calls != 0 {
		t.Fatalf("service should not be called")
	}
}

func TestQueriesAgainstService(t *testing.T) {
	svc := dashboard.NewService(dashboard.Options{Cache: dashboard.NewChartCache(0)})
	view, err := NewLayoutQuery(svc).Query(context.Background(), dashboard.ViewerContext{})
	if err != nil {
		t.Fatalf("layout query: %v", err)
	}
	if len(view.Areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(view.Areas))
	}
	widget, err := NewWidgetQuery(svc).Query(context.Background(), WidgetInput{Code: dashboard.WidgetScorecard})
	if err != nil {
		t.Fatalf("widget query: %v", err)
	}
	if widget.Kind != dashboard.KindScorecard {
		t.Fatalf("unexpected kind %q", widget.Kind)
	}
}
