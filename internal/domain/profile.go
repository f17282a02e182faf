package domain

import "time"

// IncomeSource is the category of a user's foreign income.
type IncomeSource string

const (
	IncomeSourceFreelance  IncomeSource = "freelance"
	IncomeSourceSaaS       IncomeSource = "saas"
	IncomeSourceEcommerce  IncomeSource = "ecommerce"
	IncomeSourceConsulting IncomeSource = "consulting"
	IncomeSourceOther      IncomeSource = "other"
)

var incomeSourceLabels = map[IncomeSource]string{
	IncomeSourceFreelance:  "Freelance (Upwork, Fiverr vb.)",
	IncomeSourceSaaS:       "SaaS Ürünü",
	IncomeSourceEcommerce:  "E-ticaret / Dropshipping",
	IncomeSourceConsulting: "Danışmanlık",
	IncomeSourceOther:      "Diğer",
}

// IsValid checks if the source is a known category. Empty is allowed.
func (s IncomeSource) IsValid() bool {
	if s == "" {
		return true
	}
	_, ok := incomeSourceLabels[s]
	return ok
}

// Label returns the display label, with a generic fallback when unset.
func (s IncomeSource) Label() string {
	if l, ok := incomeSourceLabels[s]; ok {
		return l
	}
	return "Dijital platformlar (Stripe, PayPal vb.)"
}

// CompanyStatus is the legal form the user operates under.
type CompanyStatus string

const (
	CompanyStatusIndividual CompanyStatus = "individual"
	CompanyStatusLimited    CompanyStatus = "limited"
	CompanyStatusNone       CompanyStatus = "none"
)

// IsValid checks if the status is known. Empty is allowed.
func (c CompanyStatus) IsValid() bool {
	switch c {
	case "", CompanyStatusIndividual, CompanyStatusLimited, CompanyStatusNone:
		return true
	}
	return false
}

// Label returns the display label.
func (c CompanyStatus) Label() string {
	switch c {
	case CompanyStatusIndividual:
		return "Şahıs Şirketi"
	case CompanyStatusLimited:
		return "Limited Şirket"
	default:
		return "Şahıs"
	}
}

// Profile holds a user's identity and tax-registration fields.
type Profile struct {
	UserID        string
	FirstName     string
	LastName      string
	NationalID    string
	TaxOffice     string
	Address       string
	Phone         string
	Email         string
	IncomeSource  IncomeSource
	CompanyStatus CompanyStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName joins first and last name.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
