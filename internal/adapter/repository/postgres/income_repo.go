package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/exemptledger/internal/domain"
)

// IncomeRepository implements usecase.IncomeRepository. Rows carry a
// serial seq so entries come back in insertion order.
type IncomeRepository struct {
	db querier
}

// NewIncomeRepository creates a new IncomeRepository.
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return newIncomeRepository(pool)
}

func newIncomeRepository(db querier) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// Create appends an entry for the user.
func (r *IncomeRepository) Create(ctx context.Context, userID string, e *domain.IncomeEntry) error {
	query := `
		INSERT INTO income_entries (
			id, user_id, entry_date, description, amount, currency,
			exchange_rate, domestic_value, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		e.ID,
		userID,
		e.Date,
		e.Description,
		decimalToNumeric(e.Amount),
		string(e.Currency),
		decimalToNumeric(e.ExchangeRate),
		decimalToNumeric(e.DomesticValue),
		e.CreatedAt,
	)

	return err
}

// ListByUser returns the user's entries oldest first.
func (r *IncomeRepository) ListByUser(ctx context.Context, userID string) ([]*domain.IncomeEntry, error) {
	query := `
		SELECT id, entry_date, description, amount::text, currency,
			exchange_rate::text, domestic_value::text, created_at
		FROM income_entries
		WHERE user_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.IncomeEntry
	for rows.Next() {
		var (
			e                      domain.IncomeEntry
			currency               string
			amount, rate, domestic string
		)
		if err := rows.Scan(
			&e.ID,
			&e.Date,
			&e.Description,
			&amount,
			&currency,
			&rate,
			&domestic,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		if e.Amount, err = parseDecimal("amount", amount); err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		if e.ExchangeRate, err = parseDecimal("exchange_rate", rate); err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		if e.DomesticValue, err = parseDecimal("domestic_value", domestic); err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		e.Currency = domain.Currency(currency)
		e.Date = domain.TruncateDate(e.Date)

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
