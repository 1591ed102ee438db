package loading

import "testing"

func TestTracker_DuplicateStartsNeedMatchingStops(t *testing.T) {
	var tr Tracker

	tr.Start("products/fetch#1")
	tr.Start("products/fetch#1")
	tr.Stop("products/fetch#1")

	if !tr.Active() {
		t.Fatal("Active() = false after 2 starts and 1 stop, want true")
	}
	if tr.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", tr.Count())
	}

	tr.Stop("products/fetch#1")
	if tr.Active() {
		t.Fatal("Active() = true after matching stops, want false")
	}
}

func TestTracker_StopUnknownIsNoop(t *testing.T) {
	var tr Tracker

	tr.Stop("never-started")
	if tr.Active() || tr.Count() != 0 {
		t.Fatalf("tracker mutated by stopping unknown id: count=%d", tr.Count())
	}
}

func TestTracker_InterleavedIdsCommute(t *testing.T) {
	var a, b Tracker

	a.Start("x")
	a.Start("y")
	a.Stop("x")
	a.Stop("y")

	b.Start("y")
	b.Start("x")
	b.Stop("y")
	b.Stop("x")

	if a.Active() || b.Active() {
		t.Fatal("ordering of start/stop across ids should not affect idleness")
	}
}
