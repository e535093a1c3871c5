package semantic

import (
	"context"
	"testing"

	"dataprofiler/domain/profiling"
)

func TestTagBinaryFlagShortCircuits(t *testing.T) {
	col := ColumnEvidence{Name: "is_active", Inferred: profiling.TypeString, Cardinality: 2.0 / 100}
	info, _ := Tag(context.Background(), col, []string{"yes", "no"})
	if info.PrimaryTag != "schema:Boolean" {
		t.Fatalf("expected schema:Boolean, got %s", info.PrimaryTag)
	}
}

func TestTagEmailDetection(t *testing.T) {
	samples := make([]string, 100)
	for i := range samples {
		samples[i] = "user@example.com"
	}
	col := ColumnEvidence{
		Name:         "contact",
		Inferred:     profiling.TypeString,
		Cardinality:  0.9,
		SampleValues: samples,
	}
	_, pattern := Tag(context.Background(), col, UniqueSortedValues(samples))
	if pattern.SemanticType != "email" {
		t.Fatalf("expected email pattern detected, got %q", pattern.SemanticType)
	}
	if !pattern.PIIDetected {
		t.Error("expected PII detected for email-shaped contact column")
	}
}

func TestTagUnlikelyPIINameSuppressesFlag(t *testing.T) {
	samples := []string{"5551234567", "5559876543", "5550001111"}
	col := ColumnEvidence{Name: "id", Inferred: profiling.TypeInteger, Cardinality: 1.0, SampleValues: samples}
	_, pattern := Tag(context.Background(), col, UniqueSortedValues(samples))
	if pattern.PIIDetected {
		t.Error("expected id column to be excluded from PII via unlikely-PII name list")
	}
}

func TestTagFinanceOverridesSchemaOrg(t *testing.T) {
	minVal := 0.0
	maxVal := 9999.0
	col := ColumnEvidence{
		Name:        "total_amount",
		Inferred:    profiling.TypeFloat,
		Cardinality: 0.8,
		Min:         &minVal,
		Max:         &maxVal,
	}
	info, _ := Tag(context.Background(), col, nil)
	if info.TaxonomySource != "finance" {
		t.Fatalf("expected finance taxonomy to win for amount column, got %s (%s)", info.PrimaryTag, info.TaxonomySource)
	}
}
