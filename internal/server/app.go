// Package server initializes and runs the gallery server: storage, services,
// the resource locator chain and the HTTP endpoint, with graceful shutdown
// on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olegsm/imagewall/internal/logging"
	"github.com/olegsm/imagewall/internal/server/config"
	"github.com/olegsm/imagewall/internal/server/db"
	"github.com/olegsm/imagewall/internal/server/httpapi"
	"github.com/olegsm/imagewall/internal/server/resource"
	"github.com/olegsm/imagewall/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  db.RepositoryManager
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewDefault()

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	gallery := services.NewGalleryService(rm.Entries())
	users := services.NewUserService(rm.Users(), nil, []byte(c.SecretKey), c.AccessTokenValidityDuration)

	locator, err := newLocator(c, logger)
	if err != nil {
		return nil, fmt.Errorf("resource locator init error: %w", err)
	}

	srv := httpapi.NewServer(c.EndpointAddr, logger, gallery, users, locator, []byte(c.SecretKey))

	return &App{config: c, logger: logger, repos: rm, server: srv}, nil
}

func newLocator(c *config.Config, logger logging.Logger) (*resource.Locator, error) {

	ctx := context.Background()
	providers := make([]resource.Provider, 0, 2)

	primary, err := resource.NewS3Provider(ctx, resource.S3Options{
		Name:         "primary",
		BaseEndpoint: c.PrimaryEndpoint,
		Region:       c.StorageRegion,
		AccessKey:    c.StorageUser,
		SecretKey:    c.StoragePassword,
		Bucket:       c.StorageBucket,
	})
	if err != nil {
		return nil, err
	}
	providers = append(providers, primary)

	if c.FallbackEndpoint != "" {
		fallback, err := resource.NewS3Provider(ctx, resource.S3Options{
			Name:         "fallback",
			BaseEndpoint: c.FallbackEndpoint,
			Region:       c.StorageRegion,
			AccessKey:    c.StorageUser,
			SecretKey:    c.StoragePassword,
			Bucket:       c.StorageBucket,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, fallback)
	}

	return resource.NewLocator(logger, providers...), nil
}

func (app *App) Run(ctx context.Context) {

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	if err := app.repos.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, "running migrations", "error", err)
		return
	}

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}

	if err := app.repos.Close(); err != nil {
		app.logger.Warn(ctx, "closing db", "error", err)
	}
}
