package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/usecase"
)

// CreateProfileRequest represents a request to create the caller's profile.
type CreateProfileRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	NationalID    string `json:"national_id"`
	TaxOffice     string `json:"tax_office"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	IncomeSource  string `json:"income_source,omitempty"`
	CompanyStatus string `json:"company_status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProfileRequest) ToUseCaseInput(userID string) usecase.CreateProfileInput {
	return usecase.CreateProfileInput{
		UserID:        userID,
		FirstName:     strings.TrimSpace(r.FirstName),
		LastName:      strings.TrimSpace(r.LastName),
		NationalID:    strings.TrimSpace(r.NationalID),
		TaxOffice:     strings.TrimSpace(r.TaxOffice),
		Address:       strings.TrimSpace(r.Address),
		Phone:         strings.TrimSpace(r.Phone),
		Email:         strings.TrimSpace(r.Email),
		IncomeSource:  domain.IncomeSource(r.IncomeSource),
		CompanyStatus: domain.CompanyStatus(r.CompanyStatus),
	}
}

// AddIncomeRequest represents a request to record an income entry. Amounts
// are decimal strings. An empty exchange rate resolves the current buying
// rate.
type AddIncomeRequest struct {
	Date         string `json:"date"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	ExchangeRate string `json:"exchange_rate,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddIncomeRequest) ToUseCaseInput(userID string) (usecase.AddIncomeInput, error) {
	date, err := domain.ParseDate(strings.TrimSpace(r.Date))
	if err != nil {
		return usecase.AddIncomeInput{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return usecase.AddIncomeInput{}, fmt.Errorf("%w: invalid amount %q", domain.ErrInvalidEntry, r.Amount)
	}

	currency, err := domain.ParseCurrency(r.Currency)
	if err != nil {
		return usecase.AddIncomeInput{}, fmt.Errorf("%w: %w", domain.ErrInvalidEntry, err)
	}

	rate := decimal.Zero
	if s := strings.TrimSpace(r.ExchangeRate); s != "" {
		rate, err = decimal.NewFromString(s)
		if err != nil {
			return usecase.AddIncomeInput{}, fmt.Errorf("%w: invalid exchange rate %q", domain.ErrInvalidEntry, r.ExchangeRate)
		}
		if !rate.IsPositive() {
			return usecase.AddIncomeInput{}, fmt.Errorf("%w: exchange rate must be positive, got %s", domain.ErrInvalidEntry, rate)
		}
	}

	return usecase.AddIncomeInput{
		UserID:       userID,
		Date:         date,
		Description:  strings.TrimSpace(r.Description),
		Amount:       amount,
		Currency:     currency,
		ExchangeRate: rate,
	}, nil
}
