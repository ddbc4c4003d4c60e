package dashboard

import (
	"context"

	"github.com/ettle/strcase"
)

const metricIconClass = "h-6 w-6 text-blue-600"

var defaultProviders = map[string]Provider{
	WidgetMetrics:        ProviderFunc(metricsProvider),
	WidgetScorecard:      ProviderFunc(scorecardProvider),
	WidgetDeliveryRate:   NewEChartsProvider(ChartBar),
	WidgetDeliveryStatus: NewEChartsProvider(ChartPie),
	WidgetOnTimeGauge:    NewEChartsProvider(ChartGauge),
}

// MetricCard is the template-ready form of a Metric.
type MetricCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Icon        string `json:"icon"`
	IconClass   string `json:"icon_class"`
	Description string `json:"description"`
}

func metricsProvider(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cards := make([]MetricCard, len(meta.Data.Metrics))
	for i, metric := range meta.Data.Metrics {
		cards[i] = MetricCard{
			ID:          metricCardID(metric.Title),
			Title:       metric.Title,
			Value:       metric.Value,
			Icon:        string(metric.Icon),
			IconClass:   metricIconClass,
			Description: metric.Description,
		}
	}
	return WidgetData{
		dataKeyCards: cards,
		dataKeyGrid:  metricsGrid,
	}, nil
}

// scorecardProvider ignores the data document; the cells are fixed.
func scorecardProvider(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cells := ScorecardCells()
	for i := range cells {
		cells[i].Label = translateOrFallback(ctx, meta.Translator, "dashboard.scorecard."+strcase.ToSnake(cells[i].Label), meta.Viewer.Locale, cells[i].Label, nil)
	}
	return WidgetData{dataKeyCells: cells}, nil
}

func metricCardID(title string) string {
	slug := strcase.ToKebab(title)
	if slug == "" {
		return "metric"
	}
	return "metric-" + slug
}
