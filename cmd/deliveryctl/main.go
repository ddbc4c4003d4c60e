package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type cli struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"DELIVERY_DASHBOARD_LOG_LEVEL" help:"Minimum log level."`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" env:"DELIVERY_DASHBOARD_LOG_FORMAT" help:"Log output format."`

	Serve    serveCmd    `cmd:"" help:"Serve the delivery dashboard over HTTP."`
	Render   renderCmd   `cmd:"" help:"Render the dashboard to a static HTML file."`
	Validate validateCmd `cmd:"" help:"Validate a dashboard data document."`
	Init     initCmd     `cmd:"" help:"Write a data document seeded with the built-in sample data."`
}

func main() {
	envErr := godotenv.Load()

	var c cli
	ctx := kong.Parse(&c,
		kong.Name("deliveryctl"),
		kong.Description("Delivery performance dashboard server and tooling."),
		kong.UsageOnError(),
	)

	logger := newLogger(c.LogLevel, c.LogFormat)
	slog.SetDefault(logger)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("deliveryctl: could not load .env", "error", envErr)
	}

	ctx.BindTo(context.Background(), (*context.Context)(nil))
	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
