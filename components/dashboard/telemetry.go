package dashboard

import (
	"context"
	"log/slog"
	"sort"
)

// Telemetry events emitted by the service.
const (
	EventDashboardBuilt = "dashboard.built"
	EventWidgetRendered = "dashboard.widget.rendered"
	EventWidgetFailed   = "dashboard.widget.failed"
	EventScoreClamped   = "dashboard.score.clamped"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// SlogTelemetry writes telemetry events as debug-level structured log lines.
type SlogTelemetry struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogTelemetry builds a slog-backed telemetry sink. A nil logger uses slog.Default.
func NewSlogTelemetry(logger *slog.Logger, level slog.Level) *SlogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTelemetry{logger: logger, level: level}
}

// Record logs the event with its payload keys in sorted order.
func (t *SlogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys)+1)
	attrs = append(attrs, slog.String("event", event))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, payload[key]))
	}
	t.logger.LogAttrs(ctx, t.level, "dashboard telemetry", attrs...)
}
