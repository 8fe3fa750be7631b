package app

import (
	"context"
	"errors"

	"github.com/bassista/rpi_configurator/internal/cache"
	"github.com/bassista/rpi_configurator/internal/config"
	"github.com/bassista/rpi_configurator/internal/configuration"
	"github.com/bassista/rpi_configurator/internal/report"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config   *config.Config
	Cache    cache.AppStore
	Reporter report.Reporter

	BaseCtx context.Context
	Cancel  context.CancelFunc

	persistDone <-chan struct{}
}

func New(cfg *config.Config, store cache.AppStore, reporter report.Reporter) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if store == nil {
		return nil, errors.New("cache store is nil")
	}
	if reporter == nil {
		reporter = report.Nop
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:   cfg,
		Cache:    store,
		Reporter: reporter,
		BaseCtx:  ctx,
		Cancel:   cancel,
	}, nil
}

// NewFromConfig loads the service monitor configuration named by cfg and wires the app around it.
func NewFromConfig(cfg *config.Config, reporter report.Reporter, opts ...configuration.Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	opts = append(opts, configuration.WithReporter(reporter))
	services, err := configuration.NewServiceMonitorConfiguration(cfg.Data.FilePath, opts...)
	if err != nil {
		return nil, err
	}
	return New(cfg, cache.NewStore(services), reporter)
}

// StartPersistence starts the background flush of unsaved edits.
func (a *App) StartPersistence() {
	a.persistDone = cache.StartPersistenceScheduler(a.BaseCtx, a.Cache, a.Config.Data.PersistInterval)
}

// Shutdown cancels the base context and waits for the final flush.
func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
	if a.persistDone != nil {
		<-a.persistDone
	}
}
