package derive

import (
	"strings"
	"testing"

	"vitaldeck/catalog"
	"vitaldeck/generator"
)

func summary(id, name, unit string, last, avg float64) generator.Summary {
	return generator.Summary{
		Metric:    catalog.Metric{ID: id, Name: name, Unit: unit},
		LastValue: last,
		AvgValue:  avg,
	}
}

func TestAlertsThresholds(t *testing.T) {
	tests := []struct {
		name      string
		last, avg float64
		want      bool
	}{
		{"well above", 140, 100, true},
		{"well below", 60, 100, true},
		{"exactly at high bound", 130, 100, false},
		{"just above high bound", 130.1, 100, true},
		{"exactly at low bound", 70, 100, false},
		{"just below low bound", 69.9, 100, true},
		{"normal", 100, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Alerts([]generator.Summary{summary("steps", "Steps", "steps", tt.last, tt.avg)}, nil)
			if (len(got) == 1) != tt.want {
				t.Errorf("alert fired = %v, want %v", len(got) == 1, tt.want)
			}
		})
	}
}

func TestAlertsDeterministicIDs(t *testing.T) {
	summaries := []generator.Summary{summary("blood_glucose", "Blood Glucose", "mg/dL", 165, 100)}

	first := Alerts(summaries, nil)
	second := Alerts(summaries, nil)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one alert per derivation, got %d and %d", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Errorf("ids differ across derivations: %q vs %q", first[0].ID, second[0].ID)
	}
	if first[0].ID != "anomaly_blood_glucose" {
		t.Errorf("unexpected alert id %q", first[0].ID)
	}
}

func TestAlertsDismissal(t *testing.T) {
	summaries := []generator.Summary{
		summary("blood_glucose", "Blood Glucose", "mg/dL", 165, 100),
		summary("blood_pressure", "Blood Pressure", "mmHg", 140, 105),
	}

	got := Alerts(summaries, []string{"anomaly_blood_glucose"})
	if len(got) != 1 {
		t.Fatalf("expected one surviving alert, got %d", len(got))
	}
	if got[0].ID != "anomaly_blood_pressure" {
		t.Errorf("wrong alert survived dismissal: %q", got[0].ID)
	}
}

func TestAnomalyMessages(t *testing.T) {
	tests := []struct {
		name    string
		m       generator.Summary
		contain string
	}{
		{
			name:    "glucose wording",
			m:       summary("blood_glucose", "Blood Glucose", "mg/dL", 165, 100),
			contain: "blood glucose is 165 mg/dL",
		},
		{
			name:    "blood pressure wording",
			m:       summary("blood_pressure", "Blood Pressure", "mmHg", 140, 105),
			contain: "blood pressure has been elevated",
		},
		{
			name:    "generic higher",
			m:       summary("resting_hr", "Resting HR", "bpm", 90, 65),
			contain: "higher than expected",
		},
		{
			name:    "generic lower",
			m:       summary("hrv", "HR Variability", "ms", 20, 45),
			contain: "lower than expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Alerts([]generator.Summary{tt.m}, nil)
			if len(got) != 1 {
				t.Fatalf("expected one alert, got %d", len(got))
			}
			if !strings.Contains(got[0].Message, tt.contain) {
				t.Errorf("message %q does not contain %q", got[0].Message, tt.contain)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{165, "165"},
		{7.5, "7.5"},
		{120.0, "120"},
		{0.1, "0.1"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
