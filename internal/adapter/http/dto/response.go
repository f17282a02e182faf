package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/ledger"
	"github.com/iho/exemptledger/internal/usecase"
)

// ProfileResponse represents a profile in API responses.
type ProfileResponse struct {
	UserID             string    `json:"user_id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	NationalID         string    `json:"national_id"`
	TaxOffice          string    `json:"tax_office"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	IncomeSource       string    `json:"income_source"`
	IncomeSourceLabel  string    `json:"income_source_label"`
	CompanyStatus      string    `json:"company_status"`
	CompanyStatusLabel string    `json:"company_status_label"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProfileFromDomain converts a domain profile to response.
func ProfileFromDomain(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		UserID:             p.UserID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		NationalID:         p.NationalID,
		TaxOffice:          p.TaxOffice,
		Address:            p.Address,
		Phone:              p.Phone,
		Email:              p.Email,
		IncomeSource:       string(p.IncomeSource),
		IncomeSourceLabel:  p.IncomeSource.Label(),
		CompanyStatus:      string(p.CompanyStatus),
		CompanyStatusLabel: p.CompanyStatus.Label(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// IncomeEntryResponse represents an income entry in API responses.
type IncomeEntryResponse struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	ExchangeRate  string    `json:"exchange_rate"`
	DomesticValue string    `json:"domestic_value"`
	CreatedAt     time.Time `json:"created_at"`
}

// IncomeEntryFromDomain converts a domain entry to response.
func IncomeEntryFromDomain(e *domain.IncomeEntry) *IncomeEntryResponse {
	return &IncomeEntryResponse{
		ID:            e.ID,
		Date:          e.Date.Format(domain.DateLayout),
		Description:   e.Description,
		Amount:        e.Amount.String(),
		Currency:      string(e.Currency),
		ExchangeRate:  e.ExchangeRate.String(),
		DomesticValue: e.DomesticValue.StringFixed(2),
		CreatedAt:     e.CreatedAt,
	}
}

// IncomeEntriesFromDomain converts domain entries to responses.
func IncomeEntriesFromDomain(entries []*domain.IncomeEntry) []*IncomeEntryResponse {
	result := make([]*IncomeEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = IncomeEntryFromDomain(e)
	}
	return result
}

// ListIncomeResponse represents a list of entries, newest first.
type ListIncomeResponse struct {
	Entries []*IncomeEntryResponse `json:"entries"`
	Total   int                    `json:"total"`
}

// SummaryResponse represents the exemption summary.
type SummaryResponse struct {
	Total               string `json:"total"`
	Limit               string `json:"limit"`
	ApproachingBoundary string `json:"approaching_boundary"`
	Headroom            string `json:"headroom"`
	Status              string `json:"status"`
	UsagePercent        string `json:"usage_percent"`
	EntryCount          int    `json:"entry_count"`
}

// SummaryFromLedger converts a ledger summary to response.
func SummaryFromLedger(s ledger.Summary) *SummaryResponse {
	return &SummaryResponse{
		Total:               s.Total.StringFixed(2),
		Limit:               s.Limit.StringFixed(2),
		ApproachingBoundary: s.ApproachingBoundary.StringFixed(2),
		Headroom:            s.Headroom.StringFixed(2),
		Status:              string(s.Status),
		UsagePercent:        s.UsagePercent.StringFixed(2),
		EntryCount:          s.EntryCount,
	}
}

// MonthlyBucketResponse represents one month of the breakdown.
type MonthlyBucketResponse struct {
	Month            string            `json:"month"`
	DomesticTotal    string            `json:"domestic_total"`
	AmountByCurrency map[string]string `json:"amount_by_currency"`
	Count            int               `json:"count"`
}

// MonthlyFromLedger converts monthly buckets to responses.
func MonthlyFromLedger(buckets []ledger.MonthlyBucket) []*MonthlyBucketResponse {
	result := make([]*MonthlyBucketResponse, len(buckets))
	for i, b := range buckets {
		amounts := make(map[string]string, len(b.AmountByCurrency))
		for c, a := range b.AmountByCurrency {
			amounts[string(c)] = a.String()
		}
		result[i] = &MonthlyBucketResponse{
			Month:            b.Month,
			DomesticTotal:    b.DomesticTotal.StringFixed(2),
			AmountByCurrency: amounts,
			Count:            b.Count,
		}
	}
	return result
}

// CurrencyShareResponse is one currency's slice of the domestic total.
type CurrencyShareResponse struct {
	Currency      string `json:"currency"`
	DomesticValue string `json:"domestic_value"`
}

// CurrenciesFromDistribution converts a distribution to responses in the
// supported-currency display order. Currencies with no income are omitted.
func CurrenciesFromDistribution(dist map[domain.Currency]decimal.Decimal) []*CurrencyShareResponse {
	result := make([]*CurrencyShareResponse, 0, len(dist))
	for _, c := range domain.Currencies {
		v, ok := dist[c]
		if !ok {
			continue
		}
		result = append(result, &CurrencyShareResponse{
			Currency:      string(c),
			DomesticValue: v.StringFixed(2),
		})
	}
	return result
}

// RateResponse represents an exchange rate.
type RateResponse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Buying  string `json:"buying"`
	Selling string `json:"selling"`
}

// RatesResponse represents the rate table.
type RatesResponse struct {
	Rates     []*RateResponse `json:"rates"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// RatesFromDomain converts a rate table to response, sorted by code.
func RatesFromDomain(t *domain.RateTable) *RatesResponse {
	rates := make([]*RateResponse, len(t.Rates))
	for i, r := range t.Rates {
		rates[i] = &RateResponse{
			Code:    string(r.Code),
			Name:    r.Name,
			Buying:  r.Buying.String(),
			Selling: r.Selling.String(),
		}
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Code < rates[j].Code })
	return &RatesResponse{Rates: rates, FetchedAt: t.FetchedAt}
}

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationFromDomain converts a domain notification to response.
func NotificationFromDomain(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Severity:  string(n.Severity),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// ListNotificationsResponse represents a page of notifications.
type ListNotificationsResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Unread        int                     `json:"unread"`
}

// NotificationsFromList converts a use case page to response.
func NotificationsFromList(l *usecase.NotificationList) *ListNotificationsResponse {
	items := make([]*NotificationResponse, len(l.Notifications))
	for i, n := range l.Notifications {
		items[i] = NotificationFromDomain(n)
	}
	return &ListNotificationsResponse{Notifications: items, Unread: l.Unread}
}

// ClearNotificationsResponse reports how many notifications were removed.
type ClearNotificationsResponse struct {
	Deleted int64 `json:"deleted"`
}

// TaskResponse represents a compliance task.
type TaskResponse struct {
	ID            string  `json:"id"`
	Text          string  `json:"text"`
	Details       string  `json:"details"`
	Completed     bool    `json:"completed"`
	CompletedDate *string `json:"completed_date,omitempty"`
}

// TaskFromDomain converts a domain task to response.
func TaskFromDomain(t *domain.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Details:   t.Details,
		Completed: t.Completed,
	}
	if t.CompletedDate != nil {
		d := t.CompletedDate.Format(domain.DateLayout)
		resp.CompletedDate = &d
	}
	return resp
}

// TasksFromDomain converts domain tasks to responses.
func TasksFromDomain(tasks []*domain.Task) []*TaskResponse {
	result := make([]*TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = TaskFromDomain(t)
	}
	return result
}

// DeadlineResponse represents a tax calendar item.
type DeadlineResponse struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	DaysLeft    int    `json:"days_left"`
}

// DeadlinesFromDomain converts calendar items to responses.
func DeadlinesFromDomain(items []domain.TaxDeadline) []*DeadlineResponse {
	result := make([]*DeadlineResponse, len(items))
	for i, d := range items {
		result[i] = &DeadlineResponse{
			Date:        d.Date.Format(domain.DateLayout),
			Title:       d.Title,
			Description: d.Description,
			Type:        string(d.Type),
			DaysLeft:    d.DaysLeft,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
