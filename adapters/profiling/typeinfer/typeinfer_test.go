package typeinfer

import (
	"testing"

	"dataprofiler/domain/profiling"
)

func TestClassifyValueCascade(t *testing.T) {
	cases := map[string]profiling.InferredType{
		"true":       profiling.TypeBoolean,
		"Yes":        profiling.TypeBoolean,
		"42":         profiling.TypeInteger,
		"3.14":       profiling.TypeFloat,
		"2024-01-15": profiling.TypeDate,
		"hello":      profiling.TypeString,
	}
	for input, want := range cases {
		if got := ClassifyValue(input); got != want {
			t.Errorf("ClassifyValue(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestReconcileArgmax(t *testing.T) {
	tally := Tally{
		profiling.TypeInteger: 95,
		profiling.TypeString:  5,
	}
	inf := Reconcile(tally, 100, nil, nil)
	if inf.InferredType != profiling.TypeInteger {
		t.Fatalf("expected integer, got %s", inf.InferredType)
	}
	if inf.Confidence != 0.95 {
		t.Errorf("expected confidence 0.95, got %f", inf.Confidence)
	}
	if len(inf.Conflicts) != 1 || inf.Conflicts[0].Type != profiling.TypeString {
		t.Errorf("expected one string conflict, got %+v", inf.Conflicts)
	}
}

func TestReconcileDeclaredType(t *testing.T) {
	declared := profiling.TypeFloat
	tally := Tally{profiling.TypeFloat: 90, profiling.TypeString: 10}
	inf := Reconcile(tally, 100, &declared, nil)
	if !inf.IsKnown || inf.Confidence != 1.0 || inf.InferredType != profiling.TypeFloat {
		t.Fatalf("expected declared float with confidence 1.0, got %+v", inf)
	}
}

func TestReconcileEmptyTally(t *testing.T) {
	inf := Reconcile(Tally{}, 0, nil, nil)
	if inf.InferredType != profiling.TypeEmpty || inf.Confidence != 0.0 || inf.IsKnown {
		t.Fatalf("expected empty/0.0/unknown, got %+v", inf)
	}
}

func TestReconcileEmptyTallyWithDeclaredType(t *testing.T) {
	declared := profiling.TypeFloat
	inf := Reconcile(Tally{}, 0, &declared, nil)
	if inf.InferredType != profiling.TypeEmpty {
		t.Fatalf("expected inferred type empty even with a declared type, got %+v", inf)
	}
	if inf.Confidence != 1.0 || !inf.IsKnown {
		t.Fatalf("expected confidence 1.0 and is_known true when declared type is present, got %+v", inf)
	}
	if inf.DeclaredType == nil || *inf.DeclaredType != profiling.TypeFloat {
		t.Fatalf("expected declared type preserved on empty tally, got %+v", inf)
	}
}
