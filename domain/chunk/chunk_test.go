package chunk

import "testing"

func TestBatchRowsAndColumn(t *testing.T) {
	b := NewBatch(
		[]string{"id", "amount"},
		map[string][]Value{
			"id":     {StringValue("1"), StringValue("2")},
			"amount": {StringValue("10.5"), NullValue()},
		},
	)

	if b.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", b.Rows())
	}
	amounts := b.Column("amount")
	if len(amounts) != 2 {
		t.Fatalf("expected 2 amount values, got %d", len(amounts))
	}
	if !amounts[1].Null {
		t.Error("expected second amount value to be null")
	}
}

func TestValueAsString(t *testing.T) {
	if got := StringValue("hello").AsString(); got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
	if got := NullValue().AsString(); got != "" {
		t.Errorf("expected empty string for null value, got %q", got)
	}
	if got := (Value{Raw: []byte("bytes")}).AsString(); got != "bytes" {
		t.Errorf("expected bytes, got %q", got)
	}
	if got := (Value{Raw: 42}).AsString(); got != "42" {
		t.Errorf("expected 42, got %q", got)
	}
}
