package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricCardID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "metric-order-processing-time", metricCardID("Order Processing Time"))
	assert.Equal(t, "metric-avg-delivery-time", metricCardID("Avg Delivery Time"))
	assert.Equal(t, "metric", metricCardID(""))
}

func TestMetricsProviderPreservesOrder(t *testing.T) {
	t.Parallel()
	data, err := metricsProvider(context.Background(), WidgetContext{Data: DefaultData()})
	require.NoError(t, err)

	cards := data[dataKeyCards].([]MetricCard)
	require.Len(t, cards, 4)
	titles := make([]string, len(cards))
	for i, card := range cards {
		titles[i] = card.Title
		assert.Equal(t, metricIconClass, card.IconClass)
	}
	assert.Equal(t, []string{"Order Processing Time", "Order Accuracy Rate", "Back Order Rate", "Avg Delivery Time"}, titles)
	assert.Equal(t, "trending-up", cards[1].Icon)
}

func TestScorecardProviderIgnoresData(t *testing.T) {
	t.Parallel()
	data, err := scorecardProvider(context.Background(), WidgetContext{Data: Data{}})
	require.NoError(t, err)
	assert.Equal(t, ScorecardCells(), data[dataKeyCells])
}
