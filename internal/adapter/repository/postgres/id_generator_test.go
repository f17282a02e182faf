package postgres

import (
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestULIDGenerator_Monotonic(t *testing.T) {
	gen := NewULIDGenerator()
	fixed := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	gen.now = func() time.Time { return fixed }

	prev := gen.Generate()
	for i := 0; i < 100; i++ {
		next := gen.Generate()
		if next <= prev {
			t.Fatalf("expected %s > %s", next, prev)
		}
		prev = next
	}

	id, err := ulid.Parse(prev)
	if err != nil {
		t.Fatalf("generated id does not parse: %v", err)
	}
	if got := ulid.Time(id.Time()); !got.Equal(fixed) {
		t.Fatalf("expected timestamp %s, got %s", fixed, got)
	}
}

func TestULIDGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewULIDGenerator()

	const workers, perWorker = 8, 200
	ids := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- gen.Generate()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, workers*perWorker)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
