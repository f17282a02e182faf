package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/infrastructure/metrics"
	"github.com/iho/exemptledger/internal/ledger"
	"github.com/iho/exemptledger/internal/money"
)

// TitleIncomeRecorded is the title of the notification sent after an add.
const TitleIncomeRecorded = "Gelir Eklendi"

// IncomeConfig holds the threshold settings every ledger is built with.
type IncomeConfig struct {
	Policy        domain.ThresholdPolicy
	EdgeTriggered bool
}

// IncomeUseCase records income entries and serves the ledger projections.
type IncomeUseCase struct {
	incomeRepo IncomeRepository
	rates      RateSource
	notifier   Notifier
	retrier    Retrier
	idGen      IDGenerator
	cfg        IncomeConfig
	metrics    *metrics.Metrics
	locks      *userLocks
	now        func() time.Time
}

// NewIncomeUseCase creates a new IncomeUseCase.
func NewIncomeUseCase(
	incomeRepo IncomeRepository,
	rates RateSource,
	notifier Notifier,
	retrier Retrier,
	idGen IDGenerator,
	cfg IncomeConfig,
	m *metrics.Metrics,
) *IncomeUseCase {
	return &IncomeUseCase{
		incomeRepo: incomeRepo,
		rates:      rates,
		notifier:   notifier,
		retrier:    retrier,
		idGen:      idGen,
		cfg:        cfg,
		metrics:    m,
		locks:      newUserLocks(),
		now:        time.Now,
	}
}

// AddIncomeInput represents input for recording an income entry.
type AddIncomeInput struct {
	UserID       string
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Currency     domain.Currency
	ExchangeRate decimal.Decimal // zero resolves the current buying rate
}

// AddIncome records an entry for the user. Threshold notifications raised
// by the ledger are delivered only after the entry is stored.
func (uc *IncomeUseCase) AddIncome(ctx context.Context, input AddIncomeInput) (*domain.IncomeEntry, error) {
	candidate := domain.NewIncomeEntry{
		Date:         input.Date,
		Description:  input.Description,
		Amount:       input.Amount,
		Currency:     input.Currency,
		ExchangeRate: input.ExchangeRate,
	}

	if candidate.ExchangeRate.IsZero() && candidate.Currency.IsValid() {
		rate, err := uc.buyingRate(ctx, candidate.Currency)
		if err != nil {
			uc.metrics.IncomeFailed("rate")
			return nil, err
		}
		candidate.ExchangeRate = rate
	}

	if err := domain.ValidateIncome(candidate); err != nil {
		uc.metrics.IncomeFailed("validation")
		return nil, err
	}

	unlock := uc.locks.Lock(input.UserID)
	defer unlock()

	var pending []domain.Notification
	l, err := uc.load(ctx, input.UserID, ledger.SinkFunc(func(n domain.Notification) {
		pending = append(pending, n)
	}))
	if err != nil {
		uc.metrics.IncomeFailed("storage")
		return nil, err
	}

	entry, err := l.AddEntry(candidate)
	if err != nil {
		uc.metrics.IncomeFailed("validation")
		return nil, err
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.incomeRepo.Create(ctx, input.UserID, entry)
	})
	if err != nil {
		uc.metrics.IncomeFailed("storage")
		return nil, fmt.Errorf("store income entry: %w", err)
	}

	uc.metrics.ObserveIncome(entry, l.Status())

	// The entry is stored; its notifications must outlive the request.
	notifyCtx := context.WithoutCancel(ctx)
	for _, n := range pending {
		n.UserID = input.UserID
		uc.notifier.Notify(notifyCtx, n)
	}
	uc.notifier.Notify(notifyCtx, domain.Notification{
		UserID: input.UserID,
		Title:  TitleIncomeRecorded,
		Message: fmt.Sprintf("%s %s = %s TL kaydedildi",
			entry.Amount.String(), entry.Currency, money.Fixed2(entry.DomesticValue)),
		Severity: domain.SeveritySuccess,
	})

	return entry, nil
}

// ListIncome returns the user's entries, newest first.
func (uc *IncomeUseCase) ListIncome(ctx context.Context, userID string) ([]*domain.IncomeEntry, error) {
	l, err := uc.load(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return l.Entries(), nil
}

// Summary returns totals, headroom and threshold status.
func (uc *IncomeUseCase) Summary(ctx context.Context, userID string) (ledger.Summary, error) {
	l, err := uc.load(ctx, userID, nil)
	if err != nil {
		return ledger.Summary{}, err
	}
	return l.Summary(), nil
}

// MonthlyBreakdown returns per-month aggregates in ascending month order.
func (uc *IncomeUseCase) MonthlyBreakdown(ctx context.Context, userID string) ([]ledger.MonthlyBucket, error) {
	l, err := uc.load(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return l.MonthlyBreakdown(), nil
}

// CurrencyDistribution returns domestic value per currency.
func (uc *IncomeUseCase) CurrencyDistribution(ctx context.Context, userID string) (map[domain.Currency]decimal.Decimal, error) {
	l, err := uc.load(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return l.CurrencyDistribution(), nil
}

// Ledger returns a read-only snapshot ledger for the user.
func (uc *IncomeUseCase) Ledger(ctx context.Context, userID string) (*ledger.Ledger, error) {
	return uc.load(ctx, userID, nil)
}

func (uc *IncomeUseCase) load(ctx context.Context, userID string, sink ledger.NotificationSink) (*ledger.Ledger, error) {
	l, err := ledger.New(ledger.Config{
		Policy:        uc.cfg.Policy,
		Sink:          sink,
		IDGenerator:   uc.idGen,
		Now:           uc.now,
		EdgeTriggered: uc.cfg.EdgeTriggered,
	})
	if err != nil {
		return nil, err
	}

	entries, err := uc.incomeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load income entries: %w", err)
	}

	if err := l.Restore(entries); err != nil {
		return nil, fmt.Errorf("restore ledger for %s: %w", userID, err)
	}

	return l, nil
}

func (uc *IncomeUseCase) buyingRate(ctx context.Context, code domain.Currency) (decimal.Decimal, error) {
	return NewRateUseCase(uc.rates).BuyingRate(ctx, code)
}
