// Package main is the entry point for the matchrelay binary.
//
// The relay receives TBA webhook notifications, renders them as Slack
// messages, and forwards them to the production or test team channel.
// `relay serve` runs the HTTP service; `relay ping` pushes a synthetic ping
// notification through the same pipeline to smoke-test the configuration
// without waiting for a real upstream event.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"matchrelay/internal/config"
	"matchrelay/internal/feed"
	"matchrelay/internal/render"
	"matchrelay/internal/slack"
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay TBA match notifications to Slack",
	Long: `matchrelay receives event notifications from The Blue Alliance webhook
feed, verifies their HMAC, renders a human-readable Slack message per
notification kind, and posts it to the configured production or test
incoming-webhook URL.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pingCmd)
}

// app is the wired relay pipeline shared by the serve and ping commands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	handler *feed.Handler
}

// buildApp loads configuration and wires the render → route → deliver
// pipeline. Configuration problems (including a missing destination path)
// fail here, before any request is served.
func buildApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)

	loc, err := cfg.Feed.Location()
	if err != nil {
		return nil, fmt.Errorf("resolving timezone: %w", err)
	}

	renderer := render.New(cfg.Feed.OwnTeam, loc)
	destinations := slack.NewDestinations(cfg.Slack)
	client := slack.NewClient(cfg.Slack, logger)
	handler := feed.NewHandler(renderer, destinations, client, cfg.Feed.Secret, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
	}, nil
}

// newLogger builds the process-wide structured logger.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
