package analyzer

import (
	"context"
	"sync"
	"testing"
)

func TestTrackerTick(t *testing.T) {
	var mu sync.Mutex
	var seen []string

	tracker := NewTracker(func(current, total int, path string) {
		mu.Lock()
		seen = append(seen, path)
		mu.Unlock()
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
	})

	tracker.Add(2)
	tracker.Tick("a.go")
	tracker.Tick("b.go")

	if tracker.Current() != 2 {
		t.Errorf("Current() = %d, want 2", tracker.Current())
	}
	if len(seen) != 2 || seen[0] != "a.go" {
		t.Errorf("unexpected callback paths: %v", seen)
	}
}

func TestTrackerSetTotal(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Add(5)
	tracker.SetTotal(12)
	if tracker.Total() != 12 {
		t.Errorf("Total() = %d, want 12", tracker.Total())
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Add(64)

	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Tick("file.go")
		}()
	}
	wg.Wait()

	if tracker.Current() != 64 {
		t.Errorf("Current() = %d, want 64", tracker.Current())
	}
}

func TestTrackerNilCallback(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Add(1)
	tracker.Tick("file.go")
}

func TestTrackerContext(t *testing.T) {
	tracker := NewTracker(nil)
	ctx := WithTracker(context.Background(), tracker)

	if got := TrackerFromContext(ctx); got != tracker {
		t.Error("expected the attached tracker back")
	}
	if got := TrackerFromContext(context.Background()); got != nil {
		t.Error("expected nil for bare context")
	}
}
