// Package alerts collects user-facing errors for transient display,
// decoupled from whichever store produced them. The center has no expiry
// logic; the notification view removes entries when it dismisses them.
package alerts

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Alert is one surfaced error: a fresh unique id, one or more display
// messages, and the time it was raised.
type Alert struct {
	ID       string
	Messages []string
	At       time.Time
}

// Center holds surfaced alerts ordered oldest first.
type Center struct {
	mu      sync.Mutex
	entries []Alert
	now     func() time.Time
}

// NewCenter returns an empty Center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Add appends a new alert and returns it. Ids are never reused.
func (c *Center) Add(messages ...string) Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := Alert{
		ID:       uuid.NewString(),
		Messages: append([]string(nil), messages...),
		At:       c.now(),
	}
	c.entries = append(c.entries, entry)
	return entry
}

// Remove filters out the alert with the given id.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.entries {
		if e.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// List returns a snapshot of the current alerts, oldest first.
func (c *Center) List() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return nil
	}
	dup := make([]Alert, len(c.entries))
	copy(dup, c.entries)
	return dup
}

// Len returns the number of live alerts.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
