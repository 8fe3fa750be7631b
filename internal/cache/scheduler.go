package cache

import (
	"context"
	"time"

	"github.com/bassista/rpi_configurator/internal/logger"
)

// StartPersistenceScheduler runs a goroutine that periodically saves a dirty store.
// A non-positive interval disables the periodic save; the final flush on ctx.Done
// still happens. The returned channel is closed once shutdown has completed.
func StartPersistenceScheduler(ctx context.Context, store PersistableStore, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	log := logger.WithComponent("persist")

	var tick <-chan time.Time
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		tick = ticker.C
		log.Debugf("starting persistence scheduler with interval: %v", interval)
	} else {
		log.Debug("periodic persistence disabled, flushing on shutdown only")
	}

	go func() {
		defer close(done)
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-ctx.Done():
				log.Debug("persistence scheduler received context cancellation, performing final flush")
				flush(store)
				log.Info("persistence scheduler stopped after final flush")
				return
			case <-tick:
				log.Trace("persistence scheduler tick, checking if dirty")
				flush(store)
			}
		}
	}()
	return done
}

// flush saves the store if it has unsaved changes.
func flush(store PersistableStore) {
	log := logger.WithComponent("persist")
	if !store.IsDirty() {
		log.Trace("configuration is clean, skipping flush")
		return
	}

	if err := store.Save(); err != nil {
		log.Errorf("persist error: failed to save: %v", err)
		return
	}
	log.Info("service configuration persisted to disk")
}
