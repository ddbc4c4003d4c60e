package commands

import (
	"context"

	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
)

// Events recorded by the commands in this package.
const (
	EventRender          = "dashboard.render"
	EventDocumentInit    = "dashboard.document.init"
	EventDocumentValid   = "dashboard.document.valid"
	EventDocumentInvalid = "dashboard.document.invalid"
)

// Telemetry is the same sink the dashboard service records to, so a single
// dashboard.SlogTelemetry can serve both.
type Telemetry = dashboard.Telemetry

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
