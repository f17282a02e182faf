package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/export"
	"github.com/iho/exemptledger/internal/infrastructure/metrics"
)

// ExportUseCase renders reports and petitions from a user's ledger.
type ExportUseCase struct {
	ledgers     LedgerLoader
	profileRepo ProfileRepository
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(ledgers LedgerLoader, profileRepo ProfileRepository, m *metrics.Metrics) *ExportUseCase {
	return &ExportUseCase{
		ledgers:     ledgers,
		profileRepo: profileRepo,
		metrics:     m,
		now:         time.Now,
	}
}

// Export renders the user's income report in the requested kind. The
// document kind produces an income declaration petition.
func (uc *ExportUseCase) Export(ctx context.Context, userID, kind string) (*export.File, error) {
	k, err := export.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, userID, k, export.PetitionIncomeDeclaration)
}

// Petition renders a petition of the given type.
func (uc *ExportUseCase) Petition(ctx context.Context, userID, petitionType string) (*export.File, error) {
	typ, err := export.ParsePetitionType(petitionType)
	if err != nil {
		return nil, err
	}
	return uc.render(ctx, userID, export.KindDocument, typ)
}

func (uc *ExportUseCase) render(ctx context.Context, userID string, kind export.Kind, typ export.PetitionType) (*export.File, error) {
	l, err := uc.ledgers.Ledger(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := l.Summary()
	report := &export.Report{
		Entries:      l.Entries(),
		Total:        summary.Total,
		Limit:        summary.Limit,
		Headroom:     summary.Headroom,
		PetitionType: typ,
		GeneratedAt:  uc.now(),
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		report.Profile = profile
	case errors.Is(err, domain.ErrProfileNotFound) && kind != export.KindDocument:
	default:
		return nil, err
	}

	file, err := export.Format(report, kind)
	if err != nil {
		return nil, err
	}

	uc.metrics.ExportGenerated(string(kind))
	return file, nil
}
