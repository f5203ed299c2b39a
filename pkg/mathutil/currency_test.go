package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down", 1.234, 1.23},
		{"Round up", 1.235, 1.24},
		{"Negative value", -1.236, -1.24},
		{"Already exact", 100.50, 100.50},
		{"Zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Round(tt.input); result != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEffectiveMonthlyRate(t *testing.T) {
	tests := []struct {
		name          string
		annualPercent float64
		expected      float64
	}{
		{
			name:          "8 percent effective annual",
			annualPercent: 8.0,
			expected:      math.Pow(1.08, 1.0/12.0) - 1,
		},
		{
			name:          "6 percent effective annual",
			annualPercent: 6.0,
			expected:      math.Pow(1.06, 1.0/12.0) - 1,
		},
		{
			name:          "Zero rate",
			annualPercent: 0.0,
			expected:      0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EffectiveMonthlyRate(tt.annualPercent)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("EffectiveMonthlyRate(%v) = %v, expected %v",
					tt.annualPercent, result, tt.expected)
			}
		})
	}
}

func TestEffectiveMonthlyRateCompoundsToAnnual(t *testing.T) {
	// Twelve months of monthly compounding must reproduce the annual rate.
	monthly := EffectiveMonthlyRate(8.0)
	annual := math.Pow(1+monthly, 12) - 1
	if math.Abs(annual-0.08) > 1e-12 {
		t.Errorf("compounded annual rate = %v, expected 0.08", annual)
	}
}

func TestToleranceHelpers(t *testing.T) {
	if !IsZero(0.005) {
		t.Error("IsZero(0.005) = false, expected true")
	}
	if IsZero(0.02) {
		t.Error("IsZero(0.02) = true, expected false")
	}
	if !IsPositive(0.02) {
		t.Error("IsPositive(0.02) = false, expected true")
	}
	if !WithinTolerance(100.004, 100.0, 0.01) {
		t.Error("WithinTolerance(100.004, 100.0, 0.01) = false, expected true")
	}
	if Max(3, 7) != 7 || Min(3, 7) != 3 {
		t.Error("Min/Max returned unexpected values")
	}
}
