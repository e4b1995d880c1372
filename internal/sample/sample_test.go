package sample

import "testing"

func TestRecords(t *testing.T) {
	recs := Records()
	if len(recs) != 10 {
		t.Fatalf("got %d records, want 10", len(recs))
	}
	for i, r := range recs {
		if err := r.Validate(); err != nil {
			t.Errorf("record %d invalid: %v", i, err)
		}
	}
	// Callers may mutate their copy freely.
	recs[0].Category = "changed"
	if Records()[0].Category != "Comida" {
		t.Error("Records must return a fresh copy")
	}
}
