package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/usecase"
)

// ProfileRepository implements usecase.ProfileRepository.
type ProfileRepository struct {
	db querier
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return newProfileRepository(pool)
}

func newProfileRepository(db querier) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateTx inserts a profile inside tx.
func (r *ProfileRepository) CreateTx(ctx context.Context, tx usecase.Transaction, p *domain.Profile) error {
	query := `
		INSERT INTO user_profiles (
			user_id, first_name, last_name, national_id, tax_office, address,
			phone, email, income_source, company_status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		p.UserID,
		p.FirstName,
		p.LastName,
		p.NationalID,
		p.TaxOffice,
		p.Address,
		p.Phone,
		p.Email,
		string(p.IncomeSource),
		string(p.CompanyStatus),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrProfileExists
	}

	return err
}

// GetByUserID retrieves a profile.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT user_id, first_name, last_name, national_id, tax_office, address,
			phone, email, income_source, company_status, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var (
		p             domain.Profile
		incomeSource  string
		companyStatus string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.NationalID,
		&p.TaxOffice,
		&p.Address,
		&p.Phone,
		&p.Email,
		&incomeSource,
		&companyStatus,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	p.IncomeSource = domain.IncomeSource(incomeSource)
	p.CompanyStatus = domain.CompanyStatus(companyStatus)

	return &p, nil
}
