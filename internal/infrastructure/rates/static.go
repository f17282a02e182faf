// Package rates provides exchange-rate sources for the income ledger.
package rates

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
)

// SourceStatic and SourceTCMB name the sources in config and metrics.
const (
	SourceStatic = "static"
	SourceTCMB   = "tcmb"
)

var currencyNames = map[domain.Currency]string{
	domain.CurrencyUSD: "ABD Doları",
	domain.CurrencyEUR: "Euro",
	domain.CurrencyGBP: "İngiliz Sterlini",
}

// StaticSource serves a fixed rate table. Used in development and when no
// feed is configured.
type StaticSource struct {
	now func() time.Time
}

// NewStaticSource creates a new StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{now: time.Now}
}

// FetchRates returns the fixed table stamped with the current time.
func (s *StaticSource) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	return &domain.RateTable{
		Rates: []domain.ExchangeRate{
			staticRate(domain.CurrencyUSD, "34.1250", "34.2150"),
			staticRate(domain.CurrencyEUR, "37.0520", "37.1580"),
			staticRate(domain.CurrencyGBP, "43.2180", "43.3450"),
		},
		FetchedAt: s.now().UTC(),
	}, nil
}

func staticRate(code domain.Currency, buying, selling string) domain.ExchangeRate {
	return domain.ExchangeRate{
		Code:    code,
		Name:    currencyNames[code],
		Buying:  decimal.RequireFromString(buying),
		Selling: decimal.RequireFromString(selling),
	}
}
