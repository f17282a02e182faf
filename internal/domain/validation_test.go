package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validCandidate() NewIncomeEntry {
	return NewIncomeEntry{
		Date:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Description:  "Stripe ödeme",
		Amount:       decimal.NewFromInt(500),
		Currency:     CurrencyUSD,
		ExchangeRate: decimal.RequireFromString("34.12"),
	}
}

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	c, err := ParseCurrency(" eur ")
	if err != nil {
		t.Fatalf("expected lowercase code to parse, got %v", err)
	}
	if c != CurrencyEUR {
		t.Fatalf("expected EUR, got %s", c)
	}

	if _, err := ParseCurrency("JPY"); !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestValidateIncome(t *testing.T) {
	t.Parallel()

	t.Run("valid entry", func(t *testing.T) {
		if err := ValidateIncome(validCandidate()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("description too long", func(t *testing.T) {
		c := validCandidate()
		c.Description = strings.Repeat("ş", MaxDescriptionLength+1)
		err := ValidateIncome(c)
		if !errors.Is(err, ErrInvalidEntry) || !errors.Is(err, ErrDescriptionTooLong) {
			t.Fatalf("expected ErrDescriptionTooLong wrapped in ErrInvalidEntry, got %v", err)
		}
	})

	t.Run("multibyte description at limit", func(t *testing.T) {
		c := validCandidate()
		c.Description = strings.Repeat("ş", MaxDescriptionLength)
		if err := ValidateIncome(c); err != nil {
			t.Fatalf("expected rune count to be used, got %v", err)
		}
	})

	t.Run("amount too large", func(t *testing.T) {
		c := validCandidate()
		c.Amount = decimal.RequireFromString(MaxIncomeAmount).Add(decimal.NewFromInt(1))
		err := ValidateIncome(c)
		if !errors.Is(err, ErrAmountTooLarge) {
			t.Fatalf("expected ErrAmountTooLarge, got %v", err)
		}
	})

	t.Run("falls through to entry contract", func(t *testing.T) {
		c := validCandidate()
		c.ExchangeRate = decimal.Zero
		if err := ValidateIncome(c); !errors.Is(err, ErrInvalidEntry) {
			t.Fatalf("expected ErrInvalidEntry, got %v", err)
		}
	})
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail("USER@example.com"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}

	if err := ValidateEmail("invalid-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestValidateNationalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"eleven digits", "12345678901", true},
		{"surrounding space", " 12345678901 ", true},
		{"leading zero", "02345678901", false},
		{"too short", "1234567890", false},
		{"letters", "1234567890a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNationalID(tt.id)
			if tt.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidNationalID) {
				t.Fatalf("expected ErrInvalidNationalID, got %v", err)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	t.Parallel()

	base := func() *Profile {
		return &Profile{
			FirstName:     "Ayşe",
			LastName:      "Yılmaz",
			NationalID:    "12345678901",
			TaxOffice:     "Kadıköy",
			Email:         "ayse@example.com",
			IncomeSource:  IncomeSourceSaaS,
			CompanyStatus: CompanyStatusIndividual,
		}
	}

	if err := ValidateProfile(base()); err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}

	cases := map[string]func(p *Profile){
		"missing first name":   func(p *Profile) { p.FirstName = " " },
		"missing tax office":   func(p *Profile) { p.TaxOffice = "" },
		"bad national id":      func(p *Profile) { p.NationalID = "123" },
		"bad email":            func(p *Profile) { p.Email = "nope" },
		"unknown source":       func(p *Profile) { p.IncomeSource = "lottery" },
		"unknown company form": func(p *Profile) { p.CompanyStatus = "corp" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := base()
			mutate(p)
			if err := ValidateProfile(p); !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}

func TestValidateProfile_ReportsFirstMissingField(t *testing.T) {
	t.Parallel()

	p := &Profile{NationalID: "12345678901", Email: "ayse@example.com"}
	for i := 0; i < 20; i++ {
		err := ValidateProfile(p)
		if err == nil || err.Error() != "invalid profile: first name is required" {
			t.Fatalf("run %d: expected first name to be reported, got %v", i, err)
		}
	}

	p.FirstName = "Ayşe"
	if err := ValidateProfile(p); err == nil || err.Error() != "invalid profile: last name is required" {
		t.Fatalf("expected last name to be reported, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Fatalf("expected defaults 50/0, got %d/%d", limit, offset)
	}

	limit, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Fatalf("expected limit capped at 1000, got %d", limit)
	}
}
