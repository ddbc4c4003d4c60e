package dashboard

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogTelemetryRecordsSortedAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	telemetry := NewSlogTelemetry(logger, slog.LevelDebug)

	telemetry.Record(context.Background(), EventWidgetRendered, map[string]any{
		"zeta": 1,
		"code": WidgetOnTimeGauge,
	})

	line := strings.TrimSpace(buf.String())
	assert.Equal(t, `level=DEBUG msg="dashboard telemetry" event=dashboard.widget.rendered code=delivery.widget.on_time_gauge zeta=1`, line)
}

func TestSlogTelemetryRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	NewSlogTelemetry(logger, slog.LevelDebug).Record(context.Background(), EventDashboardBuilt, nil)
	assert.Empty(t, buf.String())
}

func TestNormalizeTelemetry(t *testing.T) {
	assert.IsType(t, noopTelemetry{}, normalizeTelemetry(nil))
	sink := NewSlogTelemetry(nil, slog.LevelDebug)
	assert.Same(t, sink, normalizeTelemetry(sink))
}
