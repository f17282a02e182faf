package handler

import (
	"context"
	"net/http"

	"github.com/iho/exemptledger/internal/export"
)

// DefaultExportKind is used when the kind query parameter is absent.
const DefaultExportKind = "spreadsheet"

// ExportService defines the behavior needed by ExportHandler.
type ExportService interface {
	Export(ctx context.Context, userID, kind string) (*export.File, error)
	Petition(ctx context.Context, userID, petitionType string) (*export.File, error)
}

// ExportHandler serves report downloads and petitions.
type ExportHandler struct {
	exportUC ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportUC ExportService) *ExportHandler {
	return &ExportHandler{exportUC: exportUC}
}

// Export downloads the income report. ?kind=spreadsheet|csv|document
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = DefaultExportKind
	}

	f, err := h.exportUC.Export(r.Context(), uid, kind)
	if err != nil {
		writeDomainError(w, "failed to export income", err)
		return
	}

	writeFile(w, f)
}

// Petition downloads a petition. ?type=income_declaration|exception_request
func (h *ExportHandler) Petition(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	f, err := h.exportUC.Petition(r.Context(), uid, r.URL.Query().Get("type"))
	if err != nil {
		writeDomainError(w, "failed to generate petition", err)
		return
	}

	writeFile(w, f)
}
