// Package loading tracks in-flight operations across every store so the UI
// can show a single global activity indicator. Membership is all that
// matters; the tracker knows nothing about progress.
package loading

import "sync"

// Tracker is a process-wide registry of in-flight operation identifiers.
// Duplicates are permitted: n Starts of the same id need n Stops before the
// tracker goes idle again. The zero value is ready to use.
type Tracker struct {
	mu  sync.Mutex
	ops []string
}

// Start registers an operation as in flight.
func (t *Tracker) Start(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ops = append(t.ops, id)
}

// Stop removes the first registration matching id. Stopping an id that was
// never started is a no-op.
func (t *Tracker) Stop(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, op := range t.ops {
		if op == id {
			t.ops = append(t.ops[:i], t.ops[i+1:]...)
			return
		}
	}
}

// Active reports whether anything is in flight.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ops) > 0
}

// Count returns the number of outstanding registrations.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ops)
}
