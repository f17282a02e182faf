package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/money"
)

const (
	SheetEntries = "Gelirler"
	SheetSummary = "Özet"
)

// Spreadsheet renders an xlsx workbook with an entries sheet and a summary
// sheet.
func Spreadsheet(r *Report) (*File, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetEntries); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetEntries, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, e := range r.Entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			e.Date.Format(domain.DateLayout),
			sanitizeCell(e.Description),
			e.Amount.InexactFloat64(),
			string(e.Currency),
			e.ExchangeRate.InexactFloat64(),
			e.DomesticValue.StringFixed(2),
		}
		if err := f.SetSheetRow(SheetEntries, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %s: %w", e.ID, err)
		}
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("add summary sheet: %w", err)
	}

	summary := [][]any{
		{"Özet", "Değer"},
		{"Toplam Gelir Sayısı", len(r.Entries)},
		{"Toplam TL", r.Total.StringFixed(2)},
		{"İstisna Limiti", money.TL(r.Limit)},
		{"Kalan Limit", money.TL(r.Headroom)},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return &File{
		Name:        reportName(r, "xlsx"),
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}
