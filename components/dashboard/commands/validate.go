package commands

import (
	"context"
	"errors"
	"io"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
)

// ValidateDocumentInput points at a data document on disk or in a reader.
// Reader wins when both are set.
type ValidateDocumentInput struct {
	Path   string
	Reader io.Reader
}

// ValidateDocumentCommand decodes a data document and runs every validation rule.
type ValidateDocumentCommand struct {
	telemetry Telemetry
}

// NewValidateDocumentCommand creates the command.
func NewValidateDocumentCommand(telemetry Telemetry) *ValidateDocumentCommand {
	return &ValidateDocumentCommand{telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ValidateDocumentInput] = (*ValidateDocumentCommand)(nil)

// Execute returns a go-errors validation error when the document is invalid.
func (c *ValidateDocumentCommand) Execute(ctx context.Context, msg ValidateDocumentInput) error {
	var (
		doc *dashboard.Document
		err error
	)
	switch {
	case msg.Reader != nil:
		doc, err = dashboard.DecodeDocument(msg.Reader)
	case msg.Path != "":
		doc, err = dashboard.ReadDocument(msg.Path)
	default:
		return errors.New("validate command requires a path or reader")
	}
	if err != nil {
		c.telemetry.Record(ctx, EventDocumentInvalid, map[string]any{
			"path":  msg.Path,
			"error": err.Error(),
		})
		return err
	}
	data := doc.Data()
	c.telemetry.Record(ctx, EventDocumentValid, map[string]any{
		"path":            msg.Path,
		"metrics":         len(data.Metrics),
		"delivery_rates":  len(data.DeliveryRates),
		"delivery_status": len(data.DeliveryStatus),
	})
	return nil
}
