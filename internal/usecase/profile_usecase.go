package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/infrastructure/metrics"
)

const (
	TitleWelcome   = "Hoş Geldiniz!"
	MessageWelcome = "SınırSaaS platformuna hoş geldiniz. Gelir takibinizi başlatın."
)

// ProfileUseCase handles profile registration.
type ProfileUseCase struct {
	txManager   TransactionManager
	profileRepo ProfileRepository
	taskRepo    TaskRepository
	idGen       IDGenerator
	notifier    Notifier
	metrics     *metrics.Metrics
}

// NewProfileUseCase creates a new ProfileUseCase.
func NewProfileUseCase(
	txManager TransactionManager,
	profileRepo ProfileRepository,
	taskRepo TaskRepository,
	idGen IDGenerator,
	notifier Notifier,
	m *metrics.Metrics,
) *ProfileUseCase {
	return &ProfileUseCase{
		txManager:   txManager,
		profileRepo: profileRepo,
		taskRepo:    taskRepo,
		idGen:       idGen,
		notifier:    notifier,
		metrics:     m,
	}
}

// CreateProfileInput represents input for creating a profile.
type CreateProfileInput struct {
	UserID        string
	FirstName     string
	LastName      string
	NationalID    string
	TaxOffice     string
	Address       string
	Phone         string
	Email         string
	IncomeSource  domain.IncomeSource
	CompanyStatus domain.CompanyStatus
}

// CreateProfile stores the profile and seeds the default tasks in one
// transaction, then sends the welcome notification.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.Profile, error) {
	now := time.Now().UTC()

	profile := &domain.Profile{
		UserID:        input.UserID,
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		NationalID:    strings.TrimSpace(input.NationalID),
		TaxOffice:     strings.TrimSpace(input.TaxOffice),
		Address:       input.Address,
		Phone:         input.Phone,
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		IncomeSource:  input.IncomeSource,
		CompanyStatus: input.CompanyStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := domain.ValidateProfile(profile); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.profileRepo.CreateTx(ctx, tx, profile); err != nil {
		return nil, err
	}

	defaults := domain.DefaultTasks()
	tasks := make([]*domain.Task, 0, len(defaults))
	for i := range defaults {
		t := defaults[i]
		t.ID = uc.idGen.Generate()
		t.UserID = profile.UserID
		t.CreatedAt = now
		tasks = append(tasks, &t)
	}

	if err := uc.taskRepo.CreateBatchTx(ctx, tx, tasks); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.metrics.ProfileCreated()
	uc.notifier.Notify(context.WithoutCancel(ctx), domain.Notification{
		UserID:   profile.UserID,
		Title:    TitleWelcome,
		Message:  MessageWelcome,
		Severity: domain.SeverityInfo,
	})

	return profile, nil
}

// GetProfile retrieves the user's profile.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}
