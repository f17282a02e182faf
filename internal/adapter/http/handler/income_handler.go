package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/adapter/http/dto"
	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/ledger"
	"github.com/iho/exemptledger/internal/usecase"
)

// IncomeService defines the behavior needed by IncomeHandler.
type IncomeService interface {
	AddIncome(ctx context.Context, input usecase.AddIncomeInput) (*domain.IncomeEntry, error)
	ListIncome(ctx context.Context, userID string) ([]*domain.IncomeEntry, error)
	Summary(ctx context.Context, userID string) (ledger.Summary, error)
	MonthlyBreakdown(ctx context.Context, userID string) ([]ledger.MonthlyBucket, error)
	CurrencyDistribution(ctx context.Context, userID string) (map[domain.Currency]decimal.Decimal, error)
}

// IncomeHandler handles income-related HTTP requests.
type IncomeHandler struct {
	incomeUC IncomeService
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeUC IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeUC: incomeUC}
}

// Add records an income entry.
func (h *IncomeHandler) Add(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.AddIncomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(uid)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid income entry", err.Error())
		return
	}

	entry, err := h.incomeUC.AddIncome(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to add income", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IncomeEntryFromDomain(entry))
}

// List lists the caller's entries, newest first.
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	entries, err := h.incomeUC.ListIncome(r.Context(), uid)
	if err != nil {
		writeDomainError(w, "failed to list income", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListIncomeResponse{
		Entries: dto.IncomeEntriesFromDomain(entries),
		Total:   len(entries),
	})
}

// Summary returns total, headroom and threshold status.
func (h *IncomeHandler) Summary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	summary, err := h.incomeUC.Summary(r.Context(), uid)
	if err != nil {
		writeDomainError(w, "failed to get summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromLedger(summary))
}

// Monthly returns the per-month breakdown.
func (h *IncomeHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	buckets, err := h.incomeUC.MonthlyBreakdown(r.Context(), uid)
	if err != nil {
		writeDomainError(w, "failed to get monthly breakdown", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"months": dto.MonthlyFromLedger(buckets)})
}

// Currencies returns the domestic value per currency.
func (h *IncomeHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	dist, err := h.incomeUC.CurrencyDistribution(r.Context(), uid)
	if err != nil {
		writeDomainError(w, "failed to get currency distribution", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"currencies": dto.CurrenciesFromDistribution(dist)})
}
