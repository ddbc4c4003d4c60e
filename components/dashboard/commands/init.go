package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
)

// InitDocumentInput writes a data document to Path. Data defaults to the
// built-in sample data.
type InitDocumentInput struct {
	Path      string
	Overwrite bool
	Data      *dashboard.Data
}

// InitDocumentCommand scaffolds a data document operators can edit.
type InitDocumentCommand struct {
	telemetry Telemetry
}

// NewInitDocumentCommand creates the command.
func NewInitDocumentCommand(telemetry Telemetry) *InitDocumentCommand {
	return &InitDocumentCommand{telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[InitDocumentInput] = (*InitDocumentCommand)(nil)

// Execute writes the document, refusing to replace an existing file unless Overwrite is set.
func (c *InitDocumentCommand) Execute(ctx context.Context, msg InitDocumentInput) error {
	if msg.Path == "" {
		return errors.New("init command requires a path")
	}
	if _, err := os.Stat(msg.Path); err == nil && !msg.Overwrite {
		return fmt.Errorf("init: %s already exists (use --overwrite to replace)", msg.Path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("init: stat %s: %w", msg.Path, err)
	}

	data := dashboard.DefaultData()
	if msg.Data != nil {
		data = msg.Data.Clone()
	}
	if err := dashboard.ValidateData(data); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(msg.Path), 0o755); err != nil {
		return fmt.Errorf("init: mkdir %s: %w", filepath.Dir(msg.Path), err)
	}
	file, err := os.Create(msg.Path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("init: create %s: %w", msg.Path, err)
	}
	defer file.Close()
	if err := dashboard.WriteDocument(file, dashboard.NewDocument(data)); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventDocumentInit, map[string]any{"path": msg.Path})
	return nil
}
