package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/iho/exemptledger/internal/domain"
)

const utf8BOM = "\uFEFF"

// CSV renders the entries with a UTF-8 byte order mark so spreadsheet
// tools detect the encoding.
func CSV(r *Report) (*File, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range r.Entries {
		if err := w.Write(entryRecord(e)); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", e.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return &File{
		Name:        reportName(r, "csv"),
		ContentType: ContentTypeCSV,
		Data:        buf.Bytes(),
	}, nil
}

func entryRecord(e *domain.IncomeEntry) []string {
	return []string{
		e.Date.Format(domain.DateLayout),
		sanitizeCell(e.Description),
		e.Amount.String(),
		string(e.Currency),
		e.ExchangeRate.String(),
		e.DomesticValue.StringFixed(2),
	}
}

// sanitizeCell quotes text that spreadsheet tools would evaluate as a
// formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
