package rates

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/exemptledger/internal/domain"
)

// Warmer refreshes a cached rate table.
type Warmer interface {
	Refresh(ctx context.Context) (*domain.RateTable, error)
}

// RefresherConfig configures a Refresher.
type RefresherConfig struct {
	Source   Warmer
	Logger   zerolog.Logger
	Interval time.Duration // polling interval
}

// Refresher keeps the rate cache warm on a fixed interval.
type Refresher struct {
	source   Warmer
	logger   zerolog.Logger
	interval time.Duration
}

// NewRefresher creates a new Refresher.
func NewRefresher(cfg RefresherConfig) *Refresher {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}

	return &Refresher{
		source:   cfg.Source,
		logger:   cfg.Logger,
		interval: cfg.Interval,
	}
}

// Start refreshes immediately and then on every tick until ctx is done.
func (r *Refresher) Start(ctx context.Context) error {
	r.logger.Info().Dur("interval", r.interval).Msg("rate refresher started")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("rate refresher shutting down")
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	table, err := r.source.Refresh(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("rate refresh failed")
		return
	}

	r.logger.Debug().
		Int("rates", len(table.Rates)).
		Time("fetched_at", table.FetchedAt).
		Msg("rates refreshed")
}
