package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	core "github.com/goliatone/go-delivery-dashboard/components/dashboard"
	"github.com/goliatone/go-delivery-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-delivery-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-delivery-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-delivery-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-delivery-dashboard/pkg/dashboard"
)

const shutdownTimeout = 10 * time.Second

// renderFlags are shared by every command that builds the dashboard.
type renderFlags struct {
	Data       string        `type:"path" env:"DELIVERY_DASHBOARD_DATA" help:"Data document (YAML/JSON). Built-in sample data when empty."`
	Theme      string        `default:"white" env:"DELIVERY_DASHBOARD_THEME" help:"go-echarts theme name."`
	AssetsHost string        `name:"assets-host" env:"DELIVERY_DASHBOARD_ECHARTS_CDN" help:"Host serving echarts.min.js and theme scripts."`
	CacheTTL   time.Duration `name:"cache-ttl" default:"5m" env:"DELIVERY_DASHBOARD_CACHE_TTL" help:"Chart render cache TTL (0 disables)."`
}

func (f renderFlags) build(logger *slog.Logger) (*dashboard.Service, *dashboard.Controller, error) {
	data := dashboard.DefaultData()
	if f.Data != "" {
		loaded, err := dashboard.LoadData(f.Data)
		if err != nil {
			return nil, nil, err
		}
		data = loaded
		logger.Info("deliveryctl: loaded data document", "path", f.Data)
	}
	return dashboard.New(dashboard.Options{
		Data:       &data,
		Theme:      f.Theme,
		AssetsHost: f.AssetsHost,
		Cache:      core.NewChartCache(f.CacheTTL),
		Telemetry:  core.NewSlogTelemetry(logger, slog.LevelDebug),
		Logger:     logger,
	})
}

type serveCmd struct {
	renderFlags
	Addr      string `default:":8080" env:"DELIVERY_DASHBOARD_ADDR" help:"Listen address."`
	BasePath  string `name:"base-path" env:"DELIVERY_DASHBOARD_BASE_PATH" help:"Prefix for every dashboard route."`
	Transport string `enum:"fiber,gorouter" default:"fiber" env:"DELIVERY_DASHBOARD_TRANSPORT" help:"HTTP stack: fiber (with request id and access log middleware) or gorouter."`
}

// httpServer is the part of fiber.App and the go-router server that serve needs.
type httpServer struct {
	listen   func(addr string) error
	shutdown func(ctx context.Context) error
}

func (cmd *serveCmd) Run(ctx context.Context, logger *slog.Logger) error {
	svc, controller, err := cmd.build(logger)
	if err != nil {
		return err
	}
	server, err := cmd.server(svc, controller, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("deliveryctl: listening", "addr", cmd.Addr, "base_path", cmd.BasePath, "transport", cmd.Transport)
		errCh <- server.listen(cmd.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("deliveryctl: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.shutdown(shutdownCtx)
}

func (cmd *serveCmd) server(svc *dashboard.Service, controller *dashboard.Controller, logger *slog.Logger) (httpServer, error) {
	widget := queries.NewWidgetQuery(svc)
	if cmd.Transport == "gorouter" {
		server, err := gorouter.NewFiberServer(gorouter.Config[*fiber.App]{
			Controller: controller,
			Widget:     widget,
			BasePath:   cmd.BasePath,
		})
		if err != nil {
			return httpServer{}, err
		}
		return httpServer{listen: server.Serve, shutdown: server.Shutdown}, nil
	}
	app, err := httpapi.NewApp(httpapi.Config{
		Controller: controller,
		Widget:     widget,
		BasePath:   cmd.BasePath,
	}, logger)
	if err != nil {
		return httpServer{}, err
	}
	return httpServer{listen: app.Listen, shutdown: app.ShutdownWithContext}, nil
}

type renderCmd struct {
	renderFlags
	Out    string `short:"o" default:"-" help:"Output file ('-' for stdout)."`
	Locale string `env:"DELIVERY_DASHBOARD_LOCALE" help:"Viewer locale used for localized titles."`
}

func (cmd *renderCmd) Run(ctx context.Context, logger *slog.Logger) error {
	_, controller, err := cmd.build(logger)
	if err != nil {
		return err
	}
	out, closeFn, err := openOutput(cmd.Out)
	if err != nil {
		return err
	}
	defer closeFn()

	render := commands.NewRenderDashboardCommand(controller, core.NewSlogTelemetry(logger, slog.LevelDebug))
	if err := render.Execute(ctx, commands.RenderDashboardInput{
		Viewer: core.ViewerContext{Locale: cmd.Locale},
		Out:    out,
	}); err != nil {
		return err
	}
	if cmd.Out != "-" {
		logger.Info("deliveryctl: rendered dashboard", "path", cmd.Out)
	}
	return nil
}

type validateCmd struct {
	File string `arg:"" type:"existingfile" help:"Data document to validate."`
}

func (cmd *validateCmd) Run(ctx context.Context, logger *slog.Logger) error {
	validate := commands.NewValidateDocumentCommand(core.NewSlogTelemetry(logger, slog.LevelDebug))
	if err := validate.Execute(ctx, commands.ValidateDocumentInput{Path: cmd.File}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ %s is a valid data document\n", cmd.File)
	return nil
}

type initCmd struct {
	File      string `arg:"" type:"path" help:"Where to write the data document."`
	Overwrite bool   `help:"Replace an existing file."`
}

func (cmd *initCmd) Run(ctx context.Context, logger *slog.Logger) error {
	initDoc := commands.NewInitDocumentCommand(core.NewSlogTelemetry(logger, slog.LevelDebug))
	if err := initDoc.Execute(ctx, commands.InitDocumentInput{
		Path:      cmd.File,
		Overwrite: cmd.Overwrite,
	}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote %s\n", cmd.File)
	return nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("deliveryctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return nil, nil, fmt.Errorf("deliveryctl: create %s: %w", path, err)
	}
	return file, func() {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			slog.Default().Warn("deliveryctl: close output", "path", path, "error", err)
		}
	}, nil
}
