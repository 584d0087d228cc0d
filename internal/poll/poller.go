// Package poll runs the periodic fetch-and-persist cycle that keeps the
// store current with the upstream admin API.
package poll

import (
	"context"
	"time"

	"github.com/feedpulse/feedpulse/internal/duckdb"
	"github.com/feedpulse/feedpulse/internal/fetch"
	"github.com/feedpulse/feedpulse/internal/logging"
	"github.com/feedpulse/feedpulse/internal/metrics"
	"github.com/feedpulse/feedpulse/internal/model"
)

// Poller periodically pulls snapshots and activity series and writes them
// to the store. One bad cycle never stops the loop.
type Poller struct {
	client      *fetch.Client
	store       *duckdb.Store
	interval    time.Duration
	historyDays int
	log         *logging.Logger
}

// Config holds poller tunables. Zero values fall back to defaults.
type Config struct {
	Interval    time.Duration
	HistoryDays int
}

// New creates a poller. A nil logger falls back to a no-op logger.
func New(client *fetch.Client, store *duckdb.Store, conf Config, log *logging.Logger) *Poller {
	if log == nil {
		log = logging.Nop()
	}
	interval := conf.Interval
	if interval <= 0 {
		interval = model.DefaultPollInterval
	}
	historyDays := conf.HistoryDays
	if historyDays <= 0 {
		historyDays = model.DefaultHistoryDays
	}
	return &Poller{
		client:      client,
		store:       store,
		interval:    interval,
		historyDays: historyDays,
		log:         log,
	}
}

// Run polls immediately and then on every interval tick until the context
// is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Once runs a single poll cycle, used at startup and in tests.
func (p *Poller) Once(ctx context.Context) {
	p.poll(ctx)
}

func (p *Poller) poll(ctx context.Context) {
	ok := true

	snaps, err := p.client.Suppliers(ctx)
	if err != nil {
		ok = false
		metrics.FetchErrorsTotal.WithLabelValues("suppliers").Inc()
		p.log.Warnw("supplier fetch failed", "err", err)
	} else {
		metrics.SuppliersTracked.Set(float64(len(snaps)))
		if err := p.store.ReplaceSuppliers(snaps, time.Now()); err != nil {
			ok = false
			p.log.Errorw("persisting suppliers failed", "err", err)
		}
	}

	allActivity, fetchErrs := p.client.AllActivity(ctx, p.historyDays)
	for metric, err := range fetchErrs {
		ok = false
		metrics.FetchErrorsTotal.WithLabelValues("activity/" + metric).Inc()
		p.log.Warnw("activity fetch failed", "metric", metric, "err", err)
	}
	for metric, points := range allActivity {
		if err := p.store.UpsertActivity(metric, points); err != nil {
			ok = false
			p.log.Errorw("persisting activity failed", "metric", metric, "err", err)
		}
	}

	status := "ok"
	if !ok {
		status = "error"
	}
	metrics.PollsTotal.WithLabelValues(status).Inc()
}
