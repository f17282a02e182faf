package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a foreign currency income can be received in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP}

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

// DateLayout is the calendar date format used for income dates.
const DateLayout = "2006-01-02"

// IncomeEntry is one recorded foreign-income receipt. Entries are immutable
// once created.
type IncomeEntry struct {
	ID            string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Currency      Currency
	ExchangeRate  decimal.Decimal
	DomesticValue decimal.Decimal
	CreatedAt     time.Time
}

// MonthKey returns the YYYY-MM bucket the entry falls into.
func (e *IncomeEntry) MonthKey() string {
	return e.Date.Format("2006-01")
}

// NewIncomeEntry is a candidate entry before the ledger assigns its identity.
type NewIncomeEntry struct {
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Currency     Currency
	ExchangeRate decimal.Decimal
}

// Validate checks the candidate against the entry-creation contract.
func (n *NewIncomeEntry) Validate() error {
	if n.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	if !n.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidEntry, n.Amount)
	}
	if !n.Currency.IsValid() {
		return fmt.Errorf("%w: unsupported currency %q", ErrInvalidEntry, n.Currency)
	}
	if !n.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive, got %s", ErrInvalidEntry, n.ExchangeRate)
	}
	return nil
}

// DomesticValue converts the candidate amount at its captured rate.
func (n *NewIncomeEntry) DomesticValue() decimal.Decimal {
	return n.Amount.Mul(n.ExchangeRate)
}

// ParseDate parses a YYYY-MM-DD income date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD: %v", ErrInvalidEntry, err)
	}
	return t, nil
}

// TruncateDate drops the time of day, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
