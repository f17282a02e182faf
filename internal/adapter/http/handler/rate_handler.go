package handler

import (
	"context"
	"net/http"

	"github.com/iho/exemptledger/internal/adapter/http/dto"
	"github.com/iho/exemptledger/internal/domain"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	Rates(ctx context.Context) (*domain.RateTable, error)
}

// RateHandler serves the exchange rate table.
type RateHandler struct {
	rateUC RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC RateService) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// List returns the current rates.
func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	table, err := h.rateUC.Rates(r.Context())
	if err != nil {
		writeDomainError(w, "failed to fetch exchange rates", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RatesFromDomain(table))
}
