package rates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/infrastructure/metrics"
	"github.com/iho/exemptledger/internal/usecase"
)

const cacheKey = "rates:table"

// CachedSource serves rates from a cache, falling through to the wrapped
// source on a miss.
type CachedSource struct {
	name    string
	source  usecase.RateSource
	cache   usecase.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewCachedSource creates a new CachedSource. name labels fetch metrics.
func NewCachedSource(
	name string,
	source usecase.RateSource,
	cache usecase.Cache,
	ttl time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *CachedSource {
	return &CachedSource{
		name:    name,
		source:  source,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

// FetchRates returns the cached table when present.
func (s *CachedSource) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	if data, err := s.cache.Get(ctx, cacheKey); err == nil {
		var table domain.RateTable
		if err := json.Unmarshal(data, &table); err == nil {
			s.metrics.RateCache(true)
			return &table, nil
		}
		s.logger.Warn().Msg("discarding undecodable cached rate table")
	}

	s.metrics.RateCache(false)
	return s.Refresh(ctx)
}

// Refresh fetches from the source and overwrites the cache. A cache write
// failure is logged; the fresh table is still returned.
func (s *CachedSource) Refresh(ctx context.Context) (*domain.RateTable, error) {
	table, err := s.source.FetchRates(ctx)
	s.metrics.RateFetched(s.name, err)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(table)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, data, s.ttl); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache rate table")
	}

	return table, nil
}
