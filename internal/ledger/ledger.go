// Package ledger holds the exemption ledger: the income entries of one user
// session, their running domestic total and the threshold classification
// that drives limit warnings.
package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
)

// NotificationSink receives the warning and info events the ledger raises.
// Notify is called after the ledger lock is released.
type NotificationSink interface {
	Notify(n domain.Notification)
}

// SinkFunc adapts a function to NotificationSink.
type SinkFunc func(n domain.Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n domain.Notification) { f(n) }

// IDGenerator generates unique entry IDs.
type IDGenerator interface {
	Generate() string
}

type ulidGenerator struct{}

func (ulidGenerator) Generate() string { return ulid.Make().String() }

// Config for Ledger.
type Config struct {
	Policy      domain.ThresholdPolicy
	Sink        NotificationSink
	IDGenerator IDGenerator
	Now         func() time.Time
	// EdgeTriggered only notifies when the status differs from the status
	// after the previous add. Off by default: every add re-classifies and
	// notifies, so an exceeded ledger warns on each new entry.
	EdgeTriggered bool
}

// Ledger owns an ordered collection of immutable income entries.
type Ledger struct {
	mu sync.Mutex

	policy        domain.ThresholdPolicy
	sink          NotificationSink
	idGen         IDGenerator
	now           func() time.Time
	edgeTriggered bool

	entries    []domain.IncomeEntry // insertion order, oldest first
	total      decimal.Decimal
	lastStatus domain.ThresholdStatus
}

// New creates an empty Ledger.
func New(cfg Config) (*Ledger, error) {
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}
	if cfg.Sink == nil {
		cfg.Sink = SinkFunc(func(domain.Notification) {})
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = ulidGenerator{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Ledger{
		policy:        cfg.Policy,
		sink:          cfg.Sink,
		idGen:         cfg.IDGenerator,
		now:           cfg.Now,
		edgeTriggered: cfg.EdgeTriggered,
		total:         decimal.Zero,
		lastStatus:    domain.ThresholdNormal,
	}, nil
}

// Restore replaces the ledger contents with previously stored entries, given
// oldest first. No notifications are raised. Entries that break the
// creation contract or the domestic value invariant are rejected and the
// ledger is left as it was.
func (l *Ledger) Restore(entries []*domain.IncomeEntry) error {
	restored := make([]domain.IncomeEntry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	total := decimal.Zero

	for _, e := range entries {
		if err := checkStored(e); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", domain.ErrCorruptEntry, e.ID)
		}
		seen[e.ID] = struct{}{}
		restored = append(restored, *e)
		total = total.Add(e.DomesticValue)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = restored
	l.total = total
	l.lastStatus = l.policy.Classify(total)

	return nil
}

func checkStored(e *domain.IncomeEntry) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("%w: entry without id", domain.ErrCorruptEntry)
	}
	candidate := domain.NewIncomeEntry{
		Date:         e.Date,
		Description:  e.Description,
		Amount:       e.Amount,
		Currency:     e.Currency,
		ExchangeRate: e.ExchangeRate,
	}
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("%w: entry %s: %v", domain.ErrCorruptEntry, e.ID, err)
	}
	if !e.DomesticValue.Equal(candidate.DomesticValue()) {
		return fmt.Errorf("%w: entry %s domestic value %s does not match %s x %s",
			domain.ErrCorruptEntry, e.ID, e.DomesticValue, e.Amount, e.ExchangeRate)
	}
	return nil
}

// AddEntry validates the candidate, records it as the newest entry and
// evaluates the threshold. At most one notification is raised per call;
// exceeded takes precedence over approaching.
func (l *Ledger) AddEntry(candidate domain.NewIncomeEntry) (*domain.IncomeEntry, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()

	entry := domain.IncomeEntry{
		ID:            l.idGen.Generate(),
		Date:          domain.TruncateDate(candidate.Date),
		Description:   candidate.Description,
		Amount:        candidate.Amount,
		Currency:      candidate.Currency,
		ExchangeRate:  candidate.ExchangeRate,
		DomesticValue: candidate.DomesticValue(),
		CreatedAt:     l.now().UTC(),
	}

	l.entries = append(l.entries, entry)
	l.total = l.total.Add(entry.DomesticValue)

	status := l.policy.Classify(l.total)
	notify := status != domain.ThresholdNormal && (!l.edgeTriggered || status != l.lastStatus)
	alert := thresholdAlert(l.policy, status, l.total)
	l.lastStatus = status

	l.mu.Unlock()

	if notify {
		l.sink.Notify(alert)
	}

	return &entry, nil
}

// Entries returns all entries, newest first by insertion order.
func (l *Ledger) Entries() []*domain.IncomeEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.IncomeEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		out = append(out, &e)
	}
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// TotalDomesticValue returns the sum of all entries' domestic values.
func (l *Ledger) TotalDomesticValue() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// RemainingHeadroom returns limit minus total; negative once exceeded.
func (l *Ledger) RemainingHeadroom() decimal.Decimal {
	return l.policy.Headroom(l.TotalDomesticValue())
}

// Status classifies the current total.
func (l *Ledger) Status() domain.ThresholdStatus {
	return l.policy.Classify(l.TotalDomesticValue())
}

// Policy returns the configured threshold policy.
func (l *Ledger) Policy() domain.ThresholdPolicy {
	return l.policy
}

// MonthlyBucket aggregates the entries dated in one calendar month.
type MonthlyBucket struct {
	Month            string // YYYY-MM
	DomesticTotal    decimal.Decimal
	AmountByCurrency map[domain.Currency]decimal.Decimal
	Count            int
}

// MonthlyBreakdown groups entries by the year-month of their date, in
// ascending key order.
func (l *Ledger) MonthlyBreakdown() []MonthlyBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	buckets := make(map[string]*MonthlyBucket)
	for i := range l.entries {
		e := &l.entries[i]
		key := e.MonthKey()

		b, ok := buckets[key]
		if !ok {
			b = &MonthlyBucket{
				Month:            key,
				DomesticTotal:    decimal.Zero,
				AmountByCurrency: make(map[domain.Currency]decimal.Decimal),
			}
			buckets[key] = b
		}

		b.DomesticTotal = b.DomesticTotal.Add(e.DomesticValue)
		b.AmountByCurrency[e.Currency] = b.AmountByCurrency[e.Currency].Add(e.Amount)
		b.Count++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}

// CurrencyDistribution sums domestic value per currency.
func (l *Ledger) CurrencyDistribution() map[domain.Currency]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[domain.Currency]decimal.Decimal)
	for i := range l.entries {
		e := &l.entries[i]
		out[e.Currency] = out[e.Currency].Add(e.DomesticValue)
	}
	return out
}

// Summary is the ledger's read model for dashboards and exports.
type Summary struct {
	Total               decimal.Decimal
	Limit               decimal.Decimal
	ApproachingBoundary decimal.Decimal
	Headroom            decimal.Decimal
	Status              domain.ThresholdStatus
	UsagePercent        decimal.Decimal // capped at 100
	EntryCount          int
}

var hundred = decimal.NewFromInt(100)

// Summary returns totals, headroom and status in one consistent read.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	total := l.total
	count := len(l.entries)
	l.mu.Unlock()

	usage := total.Div(l.policy.Limit).Mul(hundred).Round(2)
	if usage.GreaterThan(hundred) {
		usage = hundred
	}

	return Summary{
		Total:               total,
		Limit:               l.policy.Limit,
		ApproachingBoundary: l.policy.ApproachingBoundary(),
		Headroom:            l.policy.Headroom(total),
		Status:              l.policy.Classify(total),
		UsagePercent:        usage,
		EntryCount:          count,
	}
}
