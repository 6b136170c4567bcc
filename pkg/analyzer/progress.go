package analyzer

import (
	"context"
	"sync/atomic"
)

// ProgressFunc receives progress updates: current completed count, total
// expected count, and the path of the item that just finished.
type ProgressFunc func(current, total int, path string)

// Tracker counts completed work items across goroutines. All methods are
// safe for concurrent use.
type Tracker struct {
	total    atomic.Int64
	current  atomic.Int64
	callback ProgressFunc
}

// NewTracker returns a tracker that invokes callback on every Tick.
// A nil callback disables reporting but still counts.
func NewTracker(callback ProgressFunc) *Tracker {
	return &Tracker{callback: callback}
}

// Add grows the expected total by n. Detectors call this once they know
// how many files survived filtering.
func (t *Tracker) Add(n int) {
	t.total.Add(int64(n))
}

// SetTotal replaces the expected total.
func (t *Tracker) SetTotal(n int) {
	t.total.Store(int64(n))
}

// Tick records one completed item and reports it.
func (t *Tracker) Tick(path string) {
	current := int(t.current.Add(1))
	if t.callback != nil {
		t.callback(current, int(t.total.Load()), path)
	}
}

// Current returns the number of completed items.
func (t *Tracker) Current() int {
	return int(t.current.Load())
}

// Total returns the expected total.
func (t *Tracker) Total() int {
	return int(t.total.Load())
}

type trackerKey struct{}

// WithTracker attaches a tracker to the context so the file-processing
// layer can report progress without threading it through every call.
func WithTracker(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, trackerKey{}, t)
}

// TrackerFromContext returns the tracker attached to ctx, or nil.
func TrackerFromContext(ctx context.Context) *Tracker {
	if t, ok := ctx.Value(trackerKey{}).(*Tracker); ok {
		return t
	}
	return nil
}
