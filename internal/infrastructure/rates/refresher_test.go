package rates

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/exemptledger/internal/domain"
)

type stubWarmer struct {
	calls atomic.Int32
	err   error
}

func (w *stubWarmer) Refresh(ctx context.Context) (*domain.RateTable, error) {
	w.calls.Add(1)
	if w.err != nil {
		return nil, w.err
	}
	return &domain.RateTable{}, nil
}

func TestRefresherRefreshesOnStartAndTick(t *testing.T) {
	w := &stubWarmer{}
	r := NewRefresher(RefresherConfig{Source: w, Logger: zerolog.Nop(), Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Start(ctx)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancel")
	}

	if w.calls.Load() < 2 {
		t.Fatalf("expected initial refresh plus at least one tick, got %d", w.calls.Load())
	}
}

func TestRefresherKeepsRunningAfterFailure(t *testing.T) {
	w := &stubWarmer{err: errors.New("feed down")}
	r := NewRefresher(RefresherConfig{Source: w, Logger: zerolog.Nop(), Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := r.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if w.calls.Load() < 2 {
		t.Fatalf("expected refresher to keep trying, got %d calls", w.calls.Load())
	}
}

func TestNewRefresherDefaultsInterval(t *testing.T) {
	r := NewRefresher(RefresherConfig{Source: &stubWarmer{}})
	if r.interval != time.Hour {
		t.Fatalf("expected default interval of 1h, got %v", r.interval)
	}
}
