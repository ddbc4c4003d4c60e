package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
)

// WidgetInput identifies a single widget request for a viewer.
type WidgetInput struct {
	Viewer dashboard.ViewerContext
	Code   string
}

type widgetService interface {
	Widget(ctx context.Context, viewer dashboard.ViewerContext, code string) (dashboard.Widget, error)
}

// WidgetQuery renders one widget by code.
type WidgetQuery struct {
	service widgetService
}

// NewWidgetQuery builds the query.
func NewWidgetQuery(service widgetService) *WidgetQuery {
	return &WidgetQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, dashboard.Widget] = (*WidgetQuery)(nil)

// Query renders the requested widget.
func (q *WidgetQuery) Query(ctx context.Context, input WidgetInput) (dashboard.Widget, error) {
	if input.Code == "" {
		return dashboard.Widget{}, errors.New("widget query requires a code")
	}
	return q.service.Widget(ctx, input.Viewer, input.Code)
}
