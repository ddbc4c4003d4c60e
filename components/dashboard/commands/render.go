package commands

import (
	"context"
	"errors"
	"io"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-delivery-dashboard/components/dashboard"
)

// RenderDashboardInput renders the dashboard page for a viewer into Out.
type RenderDashboardInput struct {
	Viewer dashboard.ViewerContext
	Out    io.Writer
}

type templateRenderer interface {
	RenderTemplate(ctx context.Context, viewer dashboard.ViewerContext, out io.Writer) error
}

// RenderDashboardCommand writes a static HTML rendition of the dashboard.
type RenderDashboardCommand struct {
	controller templateRenderer
	telemetry  Telemetry
}

// NewRenderDashboardCommand creates the command.
func NewRenderDashboardCommand(controller templateRenderer, telemetry Telemetry) *RenderDashboardCommand {
	return &RenderDashboardCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RenderDashboardInput] = (*RenderDashboardCommand)(nil)

// Execute renders the page.
func (c *RenderDashboardCommand) Execute(ctx context.Context, msg RenderDashboardInput) error {
	if c.controller == nil {
		return errors.New("render command requires controller")
	}
	if msg.Out == nil {
		return errors.New("render command requires an output writer")
	}
	counter := &countingWriter{w: msg.Out}
	if err := c.controller.RenderTemplate(ctx, msg.Viewer, counter); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventRender, map[string]any{
		"viewer": msg.Viewer.UserID,
		"bytes":  counter.n,
	})
	return nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
