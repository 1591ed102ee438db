package alerts

import (
	"testing"
	"time"
)

func TestCenter_AddRemoveRoundTrip(t *testing.T) {
	c := NewCenter()

	before := c.Len()
	entry := c.Add("Credenciales inválidas")
	if c.Len() != before+1 {
		t.Fatalf("Len() = %d after Add, want %d", c.Len(), before+1)
	}
	if entry.ID == "" {
		t.Fatal("Add returned an empty id")
	}
	if entry.At.IsZero() {
		t.Fatal("Add returned a zero timestamp")
	}

	c.Remove(entry.ID)
	if c.Len() != before {
		t.Fatalf("Len() = %d after Remove, want %d", c.Len(), before)
	}
}

func TestCenter_IdsNeverReused(t *testing.T) {
	c := NewCenter()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		entry := c.Add("mensaje")
		if seen[entry.ID] {
			t.Fatalf("id %q reused", entry.ID)
		}
		seen[entry.ID] = true
		c.Remove(entry.ID)
	}
}

func TestCenter_OrderedOldestFirst(t *testing.T) {
	c := NewCenter()
	now := time.Now()
	c.now = func() time.Time { now = now.Add(time.Second); return now }

	first := c.Add("uno")
	second := c.Add("dos")

	list := c.List()
	if len(list) != 2 {
		t.Fatalf("List() len = %d, want 2", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatal("List() not ordered oldest first")
	}
	if !list[0].At.Before(list[1].At) {
		t.Fatal("timestamps not increasing")
	}
}

func TestCenter_ListIsSnapshot(t *testing.T) {
	c := NewCenter()
	c.Add("uno")

	list := c.List()
	list[0].Messages = append(list[0].Messages, "mutado")

	if got := c.List()[0].Messages; len(got) != 1 {
		t.Fatalf("stored messages mutated through snapshot: %v", got)
	}
}
