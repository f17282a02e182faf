package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a currency's buying and selling rate in domestic currency.
type ExchangeRate struct {
	Code    Currency        `json:"code"`
	Name    string          `json:"name"`
	Buying  decimal.Decimal `json:"buying"`
	Selling decimal.Decimal `json:"selling"`
}

// RateTable is a snapshot of rates fetched together.
type RateTable struct {
	Rates     []ExchangeRate `json:"rates"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// Find returns the rate for a currency code.
func (t *RateTable) Find(code Currency) (ExchangeRate, bool) {
	for _, r := range t.Rates {
		if r.Code == code {
			return r, true
		}
	}
	return ExchangeRate{}, false
}
