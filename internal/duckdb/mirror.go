package duckdb

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// Source is a provider whose data can be re-sampled, such as the mock generator.
type Source interface {
	model.Provider
	model.Regenerator
}

// Mirror serves reads from a Store that is seeded from a Source. Regenerate
// re-samples the source and re-seeds the store.
type Mirror struct {
	*Store
	source Source
}

var _ model.Regenerator = (*Mirror)(nil)

// NewMirror wraps store so that it mirrors source.
func NewMirror(store *Store, source Source) *Mirror {
	return &Mirror{Store: store, source: source}
}

// Regenerate re-samples the source and replaces the store's contents.
func (m *Mirror) Regenerate(ctx context.Context) error {
	if err := m.source.Regenerate(ctx); err != nil {
		return err
	}
	return m.Seed(ctx, m.source)
}

// RefresherConfig holds configuration for the background refresher.
type RefresherConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Refresher periodically regenerates a Mirror.
type Refresher struct {
	mirror   *Mirror
	interval time.Duration
	logger   *slog.Logger
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewRefresher starts a refresher for m. Returns nil when the interval is
// zero or negative (disabled).
func NewRefresher(m *Mirror, conf RefresherConfig) *Refresher {
	if conf.Interval <= 0 {
		return nil
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}

	r := &Refresher{
		mirror:   m,
		interval: conf.Interval,
		logger:   conf.Logger,
		done:     make(chan struct{}),
	}

	r.wg.Add(1)
	go r.tickLoop()
	return r
}

func (r *Refresher) tickLoop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh()
		case <-r.done:
			return
		}
	}
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()

	if err := r.mirror.Regenerate(ctx); err != nil {
		r.logger.Error("duckdb: refresh failed", "error", err)
		return
	}
	r.logger.Debug("duckdb: refreshed mirror")
}

// Stop signals the refresher to stop and waits for it to finish.
func (r *Refresher) Stop() {
	if r == nil {
		return
	}
	r.stopOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
}
