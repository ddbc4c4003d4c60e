package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
)

type viewService interface {
	Build(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.View, error)
}

// LayoutQuery executes read-only dashboard resolution.
type LayoutQuery struct {
	service viewService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service viewService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.View] = (*LayoutQuery)(nil)

// Query builds the dashboard view for the viewer.
func (q *LayoutQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.View, error) {
	return q.service.Build(ctx, viewer)
}
