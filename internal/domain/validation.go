package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidNationalID  = errors.New("invalid national identifier")
	ErrDescriptionTooLong = errors.New("description too long")
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxIncomeAmount      = "1000000000" // 1 billion
	NationalIDLength     = 11
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nationalIDRegex = regexp.MustCompile(`^[1-9][0-9]{10}$`)
)

// ParseCurrency normalises and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %s is not supported", ErrInvalidCurrency, code)
	}
	return c, nil
}

// ValidateIncome runs the input checks that sit in front of the ledger:
// description length and an upper bound on the amount.
func ValidateIncome(n NewIncomeEntry) error {
	if utf8.RuneCountInString(n.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: %w: exceeds %d characters", ErrInvalidEntry, ErrDescriptionTooLong, MaxDescriptionLength)
	}

	maxAmount := decimal.RequireFromString(MaxIncomeAmount)
	if n.Amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: %w: maximum amount is %s", ErrInvalidEntry, ErrAmountTooLarge, MaxIncomeAmount)
	}

	return n.Validate()
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateNationalID checks an 11-digit national identifier.
func ValidateNationalID(id string) error {
	if !nationalIDRegex.MatchString(strings.TrimSpace(id)) {
		return fmt.Errorf("%w: must be %d digits", ErrInvalidNationalID, NationalIDLength)
	}
	return nil
}

// ValidateProfile checks the fields collected by the signup wizard.
func ValidateProfile(p *Profile) error {
	required := []struct {
		field, value string
	}{
		{"first name", p.FirstName},
		{"last name", p.LastName},
		{"tax office", p.TaxOffice},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidProfile, r.field)
		}
	}

	if err := ValidateNationalID(p.NationalID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if err := ValidateEmail(p.Email); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if !p.IncomeSource.IsValid() {
		return fmt.Errorf("%w: unknown income source %q", ErrInvalidProfile, p.IncomeSource)
	}

	if !p.CompanyStatus.IsValid() {
		return fmt.Errorf("%w: unknown company status %q", ErrInvalidProfile, p.CompanyStatus)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
