package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

func TestParseColumnKey(t *testing.T) {
	tests := []struct {
		input    string
		expected ColumnKey
		hasError bool
	}{
		{"amount", ColumnKey("amount"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseColumnKey(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestComputeFingerprintDeterministic(t *testing.T) {
	a := ComputeFingerprint("orders.csv", 42, []string{"id", "amount", "status"})
	b := ComputeFingerprint("orders.csv", 42, []string{"status", "amount", "id"})
	if a != b {
		t.Errorf("expected fingerprint to be order-independent over column names, got %s vs %s", a, b)
	}

	c := ComputeFingerprint("orders.csv", 43, []string{"id", "amount", "status"})
	if a == c {
		t.Error("expected different seeds to produce different fingerprints")
	}
}
