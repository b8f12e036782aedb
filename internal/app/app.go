package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/dontpanic/internal/applog"
	"github.com/five82/dontpanic/internal/appmsg"
	"github.com/five82/dontpanic/internal/companion"
	"github.com/five82/dontpanic/internal/config"
	"github.com/five82/dontpanic/internal/prefs"
	"github.com/five82/dontpanic/internal/resource"
	"github.com/five82/dontpanic/internal/state"
	"github.com/five82/dontpanic/internal/ui"
)

// inboxCapacity bounds inbound messages waiting for the loop.
const inboxCapacity = 16

// Options configure the dontpanic application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/dontpanic/config.toml
	PrefsPath  string // empty uses default ~/.config/dontpanic/prefs.toml
}

// Run boots the watchface until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logFile, err := applog.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unavailable, using defaults", "error", err)
	}

	bridge, err := newBridge(cfg.Companion)
	if err != nil {
		return fmt.Errorf("init companion client: %w", err)
	}

	resources := resource.NewRegistry()
	resources.Override(resource.Output, cfg.Animation.Resource)

	store := &state.Store{}
	store.SetLink(fmt.Sprint(bridge))

	inbox := appmsg.NewInbox(ctx, inboxCapacity)
	outbox := appmsg.NewOutbox(ctx, bridge)

	// Start background receiver
	companion.StartReceiver(ctx, bridge, inbox, store, pollInterval(cfg.Companion), logger)

	logger.Info("dontpanic starting",
		slog.String("link", store.Snapshot().Link),
		slog.String("animation", resources.Source(resource.Output)),
		slog.Int("refresh_minutes", cfg.Weather.RefreshMinutes),
	)

	uiOpts := ui.Options{
		Context:   ctx,
		Config:    &cfg,
		Logger:    logger,
		Store:     store,
		Resources: resources,
		Outbox:    outbox,
		Inbox:     inbox,
		Use24h:    userPrefs.Clock24h,
		ThemeName: userPrefs.Theme,
	}
	err = ui.Run(uiOpts)
	logger.Info("dontpanic stopped")
	return err
}

// newBridge selects the companion link for the configured mode.
func newBridge(c config.Companion) (companion.Bridge, error) {
	switch c.Mode {
	case config.ModeHTTP:
		client, err := companion.NewClient(c.URL)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return companion.NewStatic(c.Temperature, c.Conditions), nil
	}
}

func pollInterval(c config.Companion) time.Duration {
	if c.PollSeconds <= 0 {
		return companion.DefaultPollInterval
	}
	return time.Duration(c.PollSeconds) * time.Second
}
