package steering

import "testing"

func TestBehaviorSet(t *testing.T) {
	var b Behavior

	b = b.Add(Seek).Add(Separation)
	if !b.Has(Seek) || !b.Has(Separation) {
		t.Fatal("added behaviors missing from set")
	}
	if b.Has(Arrive) {
		t.Fatal("set contains behavior that was never added")
	}

	b = b.Remove(Seek)
	if b.Has(Seek) {
		t.Fatal("removed behavior still present")
	}
	if !b.Has(Separation) {
		t.Fatal("remove clobbered unrelated behavior")
	}

	// Removing twice is a no-op, not a toggle.
	b = b.Remove(Seek)
	if b.Has(Seek) {
		t.Fatal("double remove re-added behavior")
	}
}

func TestBehaviorNames(t *testing.T) {
	b := WallAvoidance | Pursuit
	names := b.Names()
	if len(names) != 2 {
		t.Fatalf("Names() = %v, want two entries", names)
	}
}
