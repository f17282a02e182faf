package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
)

func beginTx(t *testing.T, pool pgxmock.PgxPoolIface) *Tx {
	t.Helper()
	pool.ExpectBeginTx(readCommitted)
	tx, err := newTxManagerWithPool(pool, readCommitted).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	return tx.(*Tx)
}

func TestProfileRepositoryCreateTx(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &domain.Profile{
		UserID: "user-1", FirstName: "Ayşe", LastName: "Yılmaz", NationalID: "12345678901",
		TaxOffice: "Kadıköy", Email: "ayse@example.com", IncomeSource: domain.IncomeSourceSaaS,
		CompanyStatus: domain.CompanyStatusLimited, CreatedAt: now, UpdatedAt: now,
	}

	pool.ExpectExec("INSERT INTO user_profiles").
		WithArgs("user-1", "Ayşe", "Yılmaz", "12345678901", "Kadıköy", "", "", "ayse@example.com", "saas", "limited", now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := newProfileRepository(pool).CreateTx(context.Background(), tx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpectations(t, pool)
}

func TestProfileRepositoryCreateTxDuplicate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	pool.ExpectExec("INSERT INTO user_profiles").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	err := newProfileRepository(pool).CreateTx(context.Background(), tx, &domain.Profile{UserID: "user-1"})
	if !errors.Is(err, domain.ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
}

func TestProfileRepositoryGetByUserID(t *testing.T) {
	pool := newMockPool(t)
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	pool.ExpectQuery("SELECT (.+) FROM user_profiles").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"user_id", "first_name", "last_name", "national_id", "tax_office", "address",
			"phone", "email", "income_source", "company_status", "created_at", "updated_at",
		}).AddRow("user-1", "Ayşe", "Yılmaz", "12345678901", "Kadıköy", "Moda", "0555", "ayse@example.com", "freelance", "none", now, now))

	p, err := newProfileRepository(pool).GetByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.IncomeSource != domain.IncomeSourceFreelance || p.CompanyStatus != domain.CompanyStatusNone {
		t.Fatalf("unexpected enums: %+v", p)
	}
	if p.Address != "Moda" {
		t.Fatalf("unexpected address: %q", p.Address)
	}
	assertExpectations(t, pool)
}

func TestProfileRepositoryGetByUserIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("SELECT (.+) FROM user_profiles").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := newProfileRepository(pool).GetByUserID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestIncomeRepositoryCreate(t *testing.T) {
	pool := newMockPool(t)
	e := &domain.IncomeEntry{
		ID:            "entry-1",
		Date:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Description:   "Upwork",
		Amount:        decimal.RequireFromString("500"),
		Currency:      domain.CurrencyUSD,
		ExchangeRate:  decimal.RequireFromString("34.12"),
		DomesticValue: decimal.RequireFromString("17060"),
		CreatedAt:     time.Now().UTC(),
	}

	pool.ExpectExec("INSERT INTO income_entries").
		WithArgs("entry-1", "user-1", e.Date, "Upwork", pgxmock.AnyArg(), "USD", pgxmock.AnyArg(), pgxmock.AnyArg(), e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := newIncomeRepository(pool).Create(context.Background(), "user-1", e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpectations(t, pool)
}

func TestIncomeRepositoryListByUser(t *testing.T) {
	pool := newMockPool(t)
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	pool.ExpectQuery("SELECT (.+) FROM income_entries (.+) ORDER BY seq").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "entry_date", "description", "amount", "currency", "exchange_rate", "domestic_value", "created_at",
		}).
			AddRow("e1", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "Upwork", "500", "USD", "34.12", "17060.0000", created).
			AddRow("e2", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), "Stripe", "1000.5", "EUR", "37.0520", "37070.526", created))

	entries, err := newIncomeRepository(pool).ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "e1" || entries[1].ID != "e2" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if !entries[1].DomesticValue.Equal(entries[1].Amount.Mul(entries[1].ExchangeRate)) {
		t.Fatalf("domestic value lost precision: %s", entries[1].DomesticValue)
	}
	if entries[1].Currency != domain.CurrencyEUR {
		t.Fatalf("unexpected currency: %s", entries[1].Currency)
	}
	assertExpectations(t, pool)
}

func TestIncomeRepositoryListByUserBadNumeric(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("SELECT (.+) FROM income_entries").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "entry_date", "description", "amount", "currency", "exchange_rate", "domestic_value", "created_at",
		}).AddRow("e1", time.Now(), "", "NaN?", "USD", "1", "1", time.Now()))

	if _, err := newIncomeRepository(pool).ListByUser(context.Background(), "user-1"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNotificationRepositoryListAndCount(t *testing.T) {
	pool := newMockPool(t)
	now := time.Now().UTC()

	pool.ExpectQuery("SELECT (.+) FROM notifications").
		WithArgs("user-1", 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "message", "severity", "read", "created_at"}).
			AddRow("n2", "user-1", "Gelir Eklendi", "ok", "success", false, now).
			AddRow("n1", "user-1", "Hoş Geldiniz!", "hi", "info", true, now.Add(-time.Hour)))
	pool.ExpectQuery("SELECT COUNT").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	repo := newNotificationRepository(pool)
	items, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Severity != domain.SeveritySuccess || !items[1].Read {
		t.Fatalf("unexpected notifications: %+v", items)
	}

	count, err := repo.CountUnread(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 unread, got %d", count)
	}
	assertExpectations(t, pool)
}

func TestNotificationRepositoryMarkRead(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectExec("UPDATE notifications").
		WithArgs("user-1", "n1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectExec("UPDATE notifications").
		WithArgs("user-1", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := newNotificationRepository(pool)
	if err := repo.MarkRead(context.Background(), "user-1", "n1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.MarkRead(context.Background(), "user-1", "missing"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestNotificationRepositoryDeleteByUser(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectExec("DELETE FROM notifications").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := newNotificationRepository(pool).DeleteByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 deleted, got %d", n)
	}
}

func TestTaskRepositoryCreateBatchTx(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	now := time.Now().UTC()

	tasks := []*domain.Task{
		{ID: "t1", UserID: "user-1", Text: "a", CreatedAt: now},
		{ID: "t2", UserID: "user-1", Text: "b", CreatedAt: now},
	}
	for _, task := range tasks {
		pool.ExpectExec("INSERT INTO tasks").
			WithArgs(task.ID, "user-1", task.Text, "", false, (*time.Time)(nil), now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	if err := newTaskRepository(pool).CreateBatchTx(context.Background(), tx, tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpectations(t, pool)
}

func TestTaskRepositoryGetByID(t *testing.T) {
	pool := newMockPool(t)
	done := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	pool.ExpectQuery("SELECT (.+) FROM tasks WHERE user_id = \\$1 AND id = \\$2").
		WithArgs("user-1", "t1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "text", "details", "completed", "completed_date", "created_at"}).
			AddRow("t1", "user-1", "a", "d", true, &done, done))
	pool.ExpectQuery("SELECT (.+) FROM tasks").
		WithArgs("user-1", "missing").
		WillReturnError(pgx.ErrNoRows)

	repo := newTaskRepository(pool)
	task, err := repo.GetByID(context.Background(), "user-1", "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.Completed || task.CompletedDate == nil || !task.CompletedDate.Equal(domain.TruncateDate(done)) {
		t.Fatalf("unexpected task: %+v", task)
	}

	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	assertExpectations(t, pool)
}

func TestTaskRepositoryListByUser(t *testing.T) {
	pool := newMockPool(t)
	now := time.Now().UTC()

	pool.ExpectQuery("SELECT (.+) FROM tasks WHERE user_id = \\$1 ORDER BY").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "text", "details", "completed", "completed_date", "created_at"}).
			AddRow("t1", "user-1", "a", "", false, nil, now).
			AddRow("t2", "user-1", "b", "", false, nil, now))

	tasks, err := newTaskRepository(pool).ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 || tasks[0].CompletedDate != nil {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestTaskRepositoryUpdateCompletionNotFound(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectExec("UPDATE tasks").
		WithArgs("user-1", "t9", true, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	d := time.Now()
	err := newTaskRepository(pool).UpdateCompletion(context.Background(), &domain.Task{ID: "t9", UserID: "user-1", Completed: true, CompletedDate: &d})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
