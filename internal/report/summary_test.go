package report

import (
	"errors"
	"math"
	"testing"

	"github.com/Skufu/cardiorisk/internal/patient"
	"github.com/Skufu/cardiorisk/internal/risk"
)

func TestBuild(t *testing.T) {
	in := patient.Defaults()
	a := risk.Assess(1, 72.345, in)

	table, err := Build(in, a)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(table.Rows) != 16 {
		t.Fatalf("expected 16 rows, got %d", len(table.Rows))
	}

	want := map[string]string{
		"Age":             "52",
		"Gender":          "Female",
		"Fasting BS":      "No",
		"ST Depression":   "1.0",
		"Prediction":      "Heart Disease",
		"Probability (%)": "72.3",
		"Risk Level":      "HIGH",
	}
	for _, row := range table.Rows {
		if v, ok := want[row.Field]; ok && v != row.Value {
			t.Errorf("%s: expected %q, got %q", row.Field, v, row.Value)
		}
	}

	if table.Rows[0].Field != "Age" || table.Rows[15].Field != "Risk Level" {
		t.Fatalf("unexpected row order: %+v", table.Rows)
	}
}

func TestBuildRejectsBadProbability(t *testing.T) {
	for _, p := range []float64{math.NaN(), -1, 100.5, math.Inf(1)} {
		_, err := Build(patient.Defaults(), risk.Assessment{Probability: p})
		if !errors.Is(err, ErrProbability) {
			t.Errorf("p=%v: expected ErrProbability, got %v", p, err)
		}
	}
}

func TestFormatProbability(t *testing.T) {
	if got := FormatProbability(29.96); got != "30.0" {
		t.Fatalf("expected 30.0, got %s", got)
	}
}
