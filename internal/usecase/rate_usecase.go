package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
)

// RateUseCase serves the current exchange-rate table.
type RateUseCase struct {
	source RateSource
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(source RateSource) *RateUseCase {
	return &RateUseCase{source: source}
}

// Rates returns the current rate table.
func (uc *RateUseCase) Rates(ctx context.Context) (*domain.RateTable, error) {
	table, err := uc.source.FetchRates(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	return table, nil
}

// BuyingRate returns the buying rate for one currency.
func (uc *RateUseCase) BuyingRate(ctx context.Context, code domain.Currency) (decimal.Decimal, error) {
	table, err := uc.Rates(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	rate, ok := table.Find(code)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrRateNotFound, code)
	}
	return rate.Buying, nil
}
