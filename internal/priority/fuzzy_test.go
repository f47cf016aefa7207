package priority

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluateScaleEdges(t *testing.T) {
	if m := Evaluate(0); !almostEqual(m.Low, 1) || !almostEqual(m.Medium, 0) || !almostEqual(m.High, 0) {
		t.Errorf("Evaluate(0) = %+v, expected fully low", m)
	}
	if m := Evaluate(100); !almostEqual(m.High, 1) || !almostEqual(m.Low, 0) || !almostEqual(m.Medium, 0) {
		t.Errorf("Evaluate(100) = %+v, expected fully high", m)
	}
	// Scores are unbounded above; the high shoulder must not drop off.
	if m := Evaluate(250); !almostEqual(m.High, 1) {
		t.Errorf("Evaluate(250).High = %v, expected 1", m.High)
	}
}

func TestEvaluatePlateaus(t *testing.T) {
	if m := Evaluate(20); !almostEqual(m.Low, 1) {
		t.Errorf("Evaluate(20).Low = %v, expected 1", m.Low)
	}
	if m := Evaluate(60); !almostEqual(m.Medium, 1) {
		t.Errorf("Evaluate(60).Medium = %v, expected 1", m.Medium)
	}
	if m := Evaluate(90); !almostEqual(m.High, 1) {
		t.Errorf("Evaluate(90).High = %v, expected 1", m.High)
	}
}

// A score on the low/medium overlap belongs to both classes at once;
// degrees are independent, not normalized.
func TestEvaluateOverlap(t *testing.T) {
	m := Evaluate(45)
	if !almostEqual(m.Low, 0.25) {
		t.Errorf("Evaluate(45).Low = %v, expected 0.25", m.Low)
	}
	if !almostEqual(m.Medium, (45.0-40.0)/15.0) {
		t.Errorf("Evaluate(45).Medium = %v, expected %v", m.Medium, (45.0-40.0)/15.0)
	}
	if m.Low <= 0 || m.Low >= 1 {
		t.Errorf("Evaluate(45).Low = %v, expected strictly between 0 and 1", m.Low)
	}
}

func TestEvaluateRamps(t *testing.T) {
	tests := []struct {
		score int
		field string
		want  float64
	}{
		{50, "low", 0},                       // low ramp bottoms out at 50
		{50, "medium", (50.0 - 40.0) / 15.0}, // medium rising edge
		{75, "medium", 1},
		{80, "high", (80.0 - 70.0) / 15.0},
		{80, "medium", (85.0 - 80.0) / 15.0}, // medium/high overlap
	}

	for _, tt := range tests {
		m := Evaluate(tt.score)
		var got float64
		switch tt.field {
		case "low":
			got = m.Low
		case "medium":
			got = m.Medium
		case "high":
			got = m.High
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("Evaluate(%d).%s = %v, expected %v", tt.score, tt.field, got, tt.want)
		}
	}
}

func TestLabelPrecedence(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, ImportanceLow},
		{25, ImportanceLow},
		{45, ImportanceLow},    // neither medium nor low clear 0.5; low wins by default
		{60, ImportanceMedium},
		{80, ImportanceHigh},   // high 0.66 beats medium 0.33
		{100, ImportanceHigh},
	}

	for _, tt := range tests {
		if got := Evaluate(tt.score).Label(); got != tt.want {
			t.Errorf("Label for score %d = %s, expected %s", tt.score, got, tt.want)
		}
	}
}
