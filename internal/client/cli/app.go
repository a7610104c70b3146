// Package cli is the interactive REPL client for the gallery.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/olegsm/imagewall/internal/client/api"
	"github.com/olegsm/imagewall/internal/client/cache"
	"github.com/olegsm/imagewall/internal/client/config"
	"github.com/olegsm/imagewall/internal/client/feed"
	"github.com/olegsm/imagewall/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	api     *api.Client
	feed    *feed.Feed
	watcher *feed.Watcher
	reader  *bufio.Reader

	loggedIn bool
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

	store, _, err := cache.OpenSQLite(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	client := api.New(cfg.ServerEndpointAddr, logger)
	f := feed.New(client, client, store, logger, cfg.PageLimit)
	w := feed.NewWatcher(f, cfg.RefreshInterval, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		api:     client,
		feed:    f,
		watcher: w,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) status() string {
	if a.loggedIn {
		return "online"
	}
	return "guest"
}

// Run primes the view from cache, starts the background refresh and hands
// control to the REPL. The watcher is stopped on teardown.
func (a *App) Run(ctx context.Context) error {

	if err := a.feed.Load(ctx, false, false); err != nil {
		a.logger.Warn(ctx, "initial load", "error", err)
	}

	if err := a.watcher.Start(); err != nil {
		return fmt.Errorf("starting background refresh: %w", err)
	}
	defer a.watcher.Stop()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}
