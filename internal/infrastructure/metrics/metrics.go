package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/exemptledger/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Income metrics
	IncomeRecorded      *prometheus.CounterVec
	IncomeDomesticValue prometheus.Histogram
	IncomeErrors        *prometheus.CounterVec
	ThresholdStatus     *prometheus.CounterVec

	// Notification metrics
	NotificationsEmitted *prometheus.CounterVec
	NotificationFailures prometheus.Counter

	// Profile and task metrics
	ProfilesCreated prometheus.Counter
	TasksCompleted  prometheus.Counter

	// Rate metrics
	RateFetches     *prometheus.CounterVec
	RateCacheLookup *prometheus.CounterVec

	// Export metrics
	ExportsGenerated *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// Income metrics
		IncomeRecorded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exemptledger_income_recorded_total",
				Help: "Total income entries recorded by currency",
			},
			[]string{"currency"},
		),
		IncomeDomesticValue: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "exemptledger_income_domestic_value",
			Help:    "Domestic value of recorded income entries",
			Buckets: []float64{100, 1000, 5000, 10000, 25000, 50000, 100000},
		}),
		IncomeErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exemptledger_income_errors_total",
				Help: "Total failed income additions by type",
			},
			[]string{"error_type"},
		),
		ThresholdStatus: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exemptledger_threshold_evaluations_total",
				Help: "Threshold classifications after each add",
			},
			[]string{"status"},
		),

		// Notification metrics
		NotificationsEmitted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exemptledger_notifications_total",
				Help: "Total notifications delivered by severity",
			},
			[]string{"severity"},
		),
		NotificationFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "exemptledger_notification_failures_total",
			Help: "Total notifications that could not be stored",
		}),

		// Profile and task metrics
		ProfilesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "exemptledger_profiles_created_total",
			Help: "Total number of profiles created",
		}),
		TasksCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "exemptledger_tasks_completed_total",
			Help: "Total number of tasks marked completed",
		}),

		// Rate metrics
		RateFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exemptledger_rate_fetches_total",
				Help: "Exchange rate fetches by source and result",
			},
			[]string{"source", "result"},
		),
		RateCacheLookup: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exemptledger_rate_cache_lookups_total",
				Help: "Exchange rate cache lookups by result",
			},
			[]string{"result"},
		),

		// Export metrics
		ExportsGenerated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exemptledger_exports_total",
				Help: "Generated exports by kind",
			},
			[]string{"kind"},
		),

		// Authentication metrics
		AuthFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exemptledger_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: f.NewCounter(prometheus.CounterOpts{
			Name: "exemptledger_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// ObserveIncome records a persisted entry and the resulting status.
func (m *Metrics) ObserveIncome(e *domain.IncomeEntry, status domain.ThresholdStatus) {
	if m == nil {
		return
	}
	m.IncomeRecorded.WithLabelValues(string(e.Currency)).Inc()
	m.IncomeDomesticValue.Observe(e.DomesticValue.InexactFloat64())
	m.ThresholdStatus.WithLabelValues(string(status)).Inc()
}

// IncomeFailed counts a failed add by error type.
func (m *Metrics) IncomeFailed(errorType string) {
	if m == nil {
		return
	}
	m.IncomeErrors.WithLabelValues(errorType).Inc()
}

// NotificationDelivered counts a stored notification.
func (m *Metrics) NotificationDelivered(severity domain.Severity) {
	if m == nil {
		return
	}
	m.NotificationsEmitted.WithLabelValues(string(severity)).Inc()
}

// NotificationFailed counts a notification that could not be stored.
func (m *Metrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}

// ProfileCreated counts a new profile.
func (m *Metrics) ProfileCreated() {
	if m == nil {
		return
	}
	m.ProfilesCreated.Inc()
}

// TaskCompleted counts a task marked completed.
func (m *Metrics) TaskCompleted() {
	if m == nil {
		return
	}
	m.TasksCompleted.Inc()
}

// RateFetched counts a rate source call.
func (m *Metrics) RateFetched(source string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.RateFetches.WithLabelValues(source, result).Inc()
}

// RateCache counts a cache hit or miss.
func (m *Metrics) RateCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.RateCacheLookup.WithLabelValues(result).Inc()
}

// ExportGenerated counts a generated export.
func (m *Metrics) ExportGenerated(kind string) {
	if m == nil {
		return
	}
	m.ExportsGenerated.WithLabelValues(kind).Inc()
}

// AuthFailed counts a rejected request by reason.
func (m *Metrics) AuthFailed(reason string) {
	if m == nil {
		return
	}
	m.AuthFailures.WithLabelValues(reason).Inc()
}

// RateLimited counts a request rejected by the rate limiter.
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.RateLimitHits.Inc()
}
