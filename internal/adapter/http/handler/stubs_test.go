package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/adapter/http/middleware"
	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/export"
	"github.com/iho/exemptledger/internal/ledger"
	"github.com/iho/exemptledger/internal/usecase"
)

// asUser attaches the authenticated user id the way the auth middleware does.
func asUser(r *http.Request, id string) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), id))
}

// withURLParam sets a chi route param on r.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type profileServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateProfileInput) (*domain.Profile, error)
	getFn    func(ctx context.Context, userID string) (*domain.Profile, error)
}

func (s *profileServiceStub) CreateProfile(ctx context.Context, input usecase.CreateProfileInput) (*domain.Profile, error) {
	return s.createFn(ctx, input)
}

func (s *profileServiceStub) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.getFn(ctx, userID)
}

type incomeServiceStub struct {
	addFn        func(ctx context.Context, input usecase.AddIncomeInput) (*domain.IncomeEntry, error)
	listFn       func(ctx context.Context, userID string) ([]*domain.IncomeEntry, error)
	summaryFn    func(ctx context.Context, userID string) (ledger.Summary, error)
	monthlyFn    func(ctx context.Context, userID string) ([]ledger.MonthlyBucket, error)
	currenciesFn func(ctx context.Context, userID string) (map[domain.Currency]decimal.Decimal, error)
}

func (s *incomeServiceStub) AddIncome(ctx context.Context, input usecase.AddIncomeInput) (*domain.IncomeEntry, error) {
	return s.addFn(ctx, input)
}

func (s *incomeServiceStub) ListIncome(ctx context.Context, userID string) ([]*domain.IncomeEntry, error) {
	return s.listFn(ctx, userID)
}

func (s *incomeServiceStub) Summary(ctx context.Context, userID string) (ledger.Summary, error) {
	return s.summaryFn(ctx, userID)
}

func (s *incomeServiceStub) MonthlyBreakdown(ctx context.Context, userID string) ([]ledger.MonthlyBucket, error) {
	return s.monthlyFn(ctx, userID)
}

func (s *incomeServiceStub) CurrencyDistribution(ctx context.Context, userID string) (map[domain.Currency]decimal.Decimal, error) {
	return s.currenciesFn(ctx, userID)
}

type exportServiceStub struct {
	exportFn   func(ctx context.Context, userID, kind string) (*export.File, error)
	petitionFn func(ctx context.Context, userID, petitionType string) (*export.File, error)
}

func (s *exportServiceStub) Export(ctx context.Context, userID, kind string) (*export.File, error) {
	return s.exportFn(ctx, userID, kind)
}

func (s *exportServiceStub) Petition(ctx context.Context, userID, petitionType string) (*export.File, error) {
	return s.petitionFn(ctx, userID, petitionType)
}

type rateServiceStub struct {
	ratesFn func(ctx context.Context) (*domain.RateTable, error)
}

func (s *rateServiceStub) Rates(ctx context.Context) (*domain.RateTable, error) {
	return s.ratesFn(ctx)
}

type notificationServiceStub struct {
	listFn     func(ctx context.Context, input usecase.ListNotificationsInput) (*usecase.NotificationList, error)
	markReadFn func(ctx context.Context, userID, id string) error
	clearFn    func(ctx context.Context, userID string) (int64, error)
}

func (s *notificationServiceStub) ListNotifications(ctx context.Context, input usecase.ListNotificationsInput) (*usecase.NotificationList, error) {
	return s.listFn(ctx, input)
}

func (s *notificationServiceStub) MarkRead(ctx context.Context, userID, id string) error {
	return s.markReadFn(ctx, userID, id)
}

func (s *notificationServiceStub) ClearNotifications(ctx context.Context, userID string) (int64, error) {
	return s.clearFn(ctx, userID)
}

type taskServiceStub struct {
	listFn     func(ctx context.Context, userID string) ([]*domain.Task, error)
	toggleFn   func(ctx context.Context, userID, taskID string) (*domain.Task, error)
	calendarFn func() []domain.TaxDeadline
}

func (s *taskServiceStub) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.listFn(ctx, userID)
}

func (s *taskServiceStub) ToggleTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.toggleFn(ctx, userID, taskID)
}

func (s *taskServiceStub) Calendar() []domain.TaxDeadline {
	return s.calendarFn()
}
