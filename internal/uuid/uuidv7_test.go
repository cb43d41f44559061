package uuid

import "testing"

func TestNew(t *testing.T) {
	id := New()
	if !IsValid(id) {
		t.Fatalf("generated id %q is not a valid UUID", id)
	}

	// Version nibble should be 7.
	if id[14] != '7' {
		t.Errorf("expected UUIDv7, got version %c in %s", id[14], id)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate UUID generated: %s", id)
		}
		seen[id] = true
	}
}
