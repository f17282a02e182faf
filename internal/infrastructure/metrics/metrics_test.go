package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
)

func TestNewWithRegistererRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegisterer(registry)

	if m.IncomeRecorded == nil || m.NotificationsEmitted == nil || m.RateFetches == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ProfileCreated()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestObserveIncome(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	entry := &domain.IncomeEntry{
		ID:            "e1",
		Date:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Currency:      domain.CurrencyUSD,
		DomesticValue: decimal.NewFromInt(17060),
	}

	m.ObserveIncome(entry, domain.ThresholdNormal)
	m.ObserveIncome(entry, domain.ThresholdExceeded)

	if got := testutil.ToFloat64(m.IncomeRecorded.WithLabelValues("USD")); got != 2 {
		t.Fatalf("expected 2 USD entries, got %v", got)
	}
	if got := testutil.ToFloat64(m.ThresholdStatus.WithLabelValues("exceeded")); got != 1 {
		t.Fatalf("expected 1 exceeded evaluation, got %v", got)
	}
}

func TestRateCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RateFetched("tcmb", nil)
	m.RateFetched("tcmb", errors.New("timeout"))
	m.RateCache(true)
	m.RateCache(false)
	m.RateCache(false)

	if got := testutil.ToFloat64(m.RateFetches.WithLabelValues("tcmb", "error")); got != 1 {
		t.Fatalf("expected 1 failed fetch, got %v", got)
	}
	if got := testutil.ToFloat64(m.RateCacheLookup.WithLabelValues("miss")); got != 2 {
		t.Fatalf("expected 2 cache misses, got %v", got)
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics

	m.ObserveIncome(&domain.IncomeEntry{}, domain.ThresholdNormal)
	m.IncomeFailed("validation")
	m.NotificationDelivered(domain.SeverityInfo)
	m.NotificationFailed()
	m.ProfileCreated()
	m.TaskCompleted()
	m.RateFetched("static", nil)
	m.RateCache(true)
	m.ExportGenerated("csv")
	m.AuthFailed("missing")
	m.RateLimited()
}
