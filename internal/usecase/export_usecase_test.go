package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/export"
	"github.com/iho/exemptledger/internal/ledger"
	"github.com/iho/exemptledger/internal/usecase"
	"github.com/iho/exemptledger/internal/usecase/mocks"
)

func restoredLedger(t *testing.T, entries ...*domain.IncomeEntry) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(ledger.Config{Policy: testPolicy()})
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	if err := l.Restore(entries); err != nil {
		t.Fatalf("restore: %v", err)
	}
	return l
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		UserID:     "user-1",
		FirstName:  "Ayşe",
		LastName:   "Yılmaz",
		NationalID: "12345678901",
		TaxOffice:  "Kadıköy",
		Email:      "ayse@example.com",
	}
}

func TestExportUseCase_Export(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		profile    *domain.Profile
		profileErr error
		wantSuffix string
		errorType  error
	}{
		{name: "csv without profile", kind: "csv", profileErr: domain.ErrProfileNotFound, wantSuffix: ".csv"},
		{name: "spreadsheet", kind: "xlsx", profile: testProfile(), wantSuffix: ".xlsx"},
		{name: "document", kind: "document", profile: testProfile(), wantSuffix: ".txt"},
		{name: "document needs profile", kind: "document", profileErr: domain.ErrProfileNotFound, errorType: domain.ErrProfileNotFound},
		{name: "profile lookup fails", kind: "csv", profileErr: errors.New("db down"), errorType: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := mocks.NewMockLedgerLoader(ctrl)
			profiles := mocks.NewMockProfileRepository(ctrl)

			loader.EXPECT().Ledger(gomock.Any(), "user-1").Return(restoredLedger(t, storedEntry("e1", 1000)), nil)
			profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(tt.profile, tt.profileErr)

			uc := usecase.NewExportUseCase(loader, profiles, nil)
			file, err := uc.Export(context.Background(), "user-1", tt.kind)

			if tt.errorType != nil {
				if err == nil || (!errors.Is(err, tt.errorType) && err.Error() != tt.errorType.Error()) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasSuffix(file.Name, tt.wantSuffix) {
				t.Errorf("expected %s file, got %s", tt.wantSuffix, file.Name)
			}
			if len(file.Data) == 0 {
				t.Error("expected file content")
			}
		})
	}
}

func TestExportUseCase_Export_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecase.NewExportUseCase(mocks.NewMockLedgerLoader(ctrl), mocks.NewMockProfileRepository(ctrl), nil)

	if _, err := uc.Export(context.Background(), "user-1", "pdf"); !errors.Is(err, domain.ErrUnsupportedExportKind) {
		t.Errorf("expected ErrUnsupportedExportKind, got %v", err)
	}
}

func TestExportUseCase_Petition(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockLedgerLoader(ctrl)
	profiles := mocks.NewMockProfileRepository(ctrl)

	l := restoredLedger(t, storedEntry("e1", 28175), storedEntry("e2", 32825))
	loader.EXPECT().Ledger(gomock.Any(), "user-1").Return(l, nil)
	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(testProfile(), nil)

	uc := usecase.NewExportUseCase(loader, profiles, nil)
	file, err := uc.Petition(context.Background(), "user-1", string(export.PetitionExemptionRequest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(file.Data)
	if !strings.Contains(text, "Toplam Gelir: 61.000 TL") {
		t.Errorf("petition missing total:\n%s", text)
	}
	if !strings.Contains(text, "KONU: Gelir Vergisi İstisnası Talebi") {
		t.Errorf("petition missing subject:\n%s", text)
	}
	if l.TotalDomesticValue().Cmp(decimal.NewFromInt(61000)) != 0 {
		t.Errorf("ledger changed by export")
	}
}

func TestExportUseCase_Petition_UnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecase.NewExportUseCase(mocks.NewMockLedgerLoader(ctrl), mocks.NewMockProfileRepository(ctrl), nil)

	if _, err := uc.Petition(context.Background(), "user-1", "complaint"); !errors.Is(err, domain.ErrUnsupportedExportKind) {
		t.Errorf("expected ErrUnsupportedExportKind, got %v", err)
	}
}
