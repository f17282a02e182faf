// Package export renders an income report as a downloadable file. The
// numbers come from the ledger; nothing here computes totals.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
)

// Kind selects the output format.
type Kind string

const (
	KindSpreadsheet Kind = "spreadsheet"
	KindCSV         Kind = "csv"
	KindDocument    Kind = "document"
)

// ParseKind accepts the kind names and their file extensions.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spreadsheet", "xlsx", "excel":
		return KindSpreadsheet, nil
	case "csv":
		return KindCSV, nil
	case "document", "petition", "txt":
		return KindDocument, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExportKind, s)
}

// PetitionType selects the petition subject.
type PetitionType string

const (
	PetitionIncomeDeclaration PetitionType = "income_declaration"
	PetitionExemptionRequest  PetitionType = "exception_request"
)

// ParsePetitionType defaults to the income declaration.
func ParsePetitionType(s string) (PetitionType, error) {
	switch PetitionType(s) {
	case "", PetitionIncomeDeclaration:
		return PetitionIncomeDeclaration, nil
	case PetitionExemptionRequest:
		return PetitionExemptionRequest, nil
	}
	return "", fmt.Errorf("%w: petition type %q", domain.ErrUnsupportedExportKind, s)
}

// Report is everything a formatter needs.
type Report struct {
	Entries      []*domain.IncomeEntry // newest first
	Total        decimal.Decimal
	Limit        decimal.Decimal
	Headroom     decimal.Decimal
	Profile      *domain.Profile // required for documents
	PetitionType PetitionType
	GeneratedAt  time.Time
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"

	reportBaseName = "sinir-saas-gelir-raporu"
)

// Format renders r as kind.
func Format(r *Report, kind Kind) (*File, error) {
	switch kind {
	case KindSpreadsheet:
		return Spreadsheet(r)
	case KindCSV:
		return CSV(r)
	case KindDocument:
		return Petition(r)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExportKind, kind)
}

func reportName(r *Report, ext string) string {
	return fmt.Sprintf("%s-%s.%s", reportBaseName, r.GeneratedAt.Format(domain.DateLayout), ext)
}

var headers = []string{"Tarih", "Açıklama", "Miktar", "Para Birimi", "Kur", "TL Değeri"}
