package generator

import (
	"math"
	"testing"
	"time"

	"vitaldeck/catalog"
)

func TestGenerateLength(t *testing.T) {
	tests := []struct {
		name     string
		metricID string
		days     int
	}{
		{"thirty days", "steps", 30},
		{"one day", "weight", 1},
		{"zero days", "resting_hr", 0},
		{"unknown metric", "nonexistent", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Generate(tt.metricID, tt.days)
			if len(points) != tt.days+1 {
				t.Errorf("expected %d points, got %d", tt.days+1, len(points))
			}
		})
	}
}

func TestGenerateGlucoseAnomaly(t *testing.T) {
	points := Generate("blood_glucose", 30)
	last := points[len(points)-1]
	if last.Value != 165 {
		t.Errorf("expected today's glucose pinned to 165, got %v", last.Value)
	}
}

func TestGenerateBloodPressureSpike(t *testing.T) {
	points := Generate("blood_pressure", 30)
	// The last 3 days carry a +20 offset over a 120 ± 5 baseline
	for _, p := range points[len(points)-3:] {
		if p.Value < 130 {
			t.Errorf("expected elevated blood pressure in recent readings, got %v", p.Value)
		}
	}
}

func TestGenerateSleepDip(t *testing.T) {
	points := Generate("sleep_duration", 30)
	// Offsets 6-9 days back carry a -3 offset over a 7.5 ± 0.5 baseline
	n := len(points)
	for i := n - 10; i < n-6; i++ {
		if points[i].Value > 6 {
			t.Errorf("expected sleep dip at offset %d, got %v", n-1-i, points[i].Value)
		}
	}
}

func TestGenerateRounding(t *testing.T) {
	for _, p := range Generate("steps", 30) {
		if math.Round(p.Value*10)/10 != p.Value {
			t.Errorf("value %v not rounded to one decimal", p.Value)
		}
	}
}

func TestGenerateTimestamps(t *testing.T) {
	points := Generate("weight", 7)
	var prev time.Time
	for i, p := range points {
		ts, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			t.Fatalf("point %d has invalid timestamp %q: %v", i, p.Timestamp, err)
		}
		if i > 0 && !ts.After(prev) {
			t.Errorf("timestamps not ascending at point %d", i)
		}
		prev = ts
	}
}

func TestSummarize(t *testing.T) {
	metric := catalog.Metric{ID: "test", Name: "Test", Unit: "u"}

	tests := []struct {
		name      string
		points    []DataPoint
		wantLast  float64
		wantAvg   float64
		wantTrend Trend
	}{
		{
			name:      "rising",
			points:    []DataPoint{{Value: 10}, {Value: 20}, {Value: 30}},
			wantLast:  30,
			wantAvg:   20,
			wantTrend: TrendUp,
		},
		{
			name:      "falling",
			points:    []DataPoint{{Value: 30}, {Value: 10}},
			wantLast:  10,
			wantAvg:   20,
			wantTrend: TrendDown,
		},
		{
			name:      "flat",
			points:    []DataPoint{{Value: 15}, {Value: 15}},
			wantLast:  15,
			wantAvg:   15,
			wantTrend: TrendNeutral,
		},
		{
			name:      "single point",
			points:    []DataPoint{{Value: 42}},
			wantLast:  42,
			wantAvg:   42,
			wantTrend: TrendNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(metric, tt.points)
			if s.LastValue != tt.wantLast {
				t.Errorf("LastValue = %v, want %v", s.LastValue, tt.wantLast)
			}
			if s.AvgValue != tt.wantAvg {
				t.Errorf("AvgValue = %v, want %v", s.AvgValue, tt.wantAvg)
			}
			if s.Trend != tt.wantTrend {
				t.Errorf("Trend = %v, want %v", s.Trend, tt.wantTrend)
			}
		})
	}
}

func TestBuildAllCoversCatalog(t *testing.T) {
	summaries := BuildAll(30)
	if len(summaries) != len(catalog.Metrics) {
		t.Fatalf("expected %d summaries, got %d", len(catalog.Metrics), len(summaries))
	}
	for i, s := range summaries {
		if s.ID != catalog.Metrics[i].ID {
			t.Errorf("summary %d: id %q does not follow catalog order", i, s.ID)
		}
		if len(s.Data) == 0 {
			t.Errorf("summary %q has no data", s.ID)
		}
	}
}

func TestFind(t *testing.T) {
	summaries := BuildAll(7)

	if m, ok := Find(summaries, "blood_glucose"); !ok || m.ID != "blood_glucose" {
		t.Errorf("Find(blood_glucose) = %v, %v", m.ID, ok)
	}
	if _, ok := Find(summaries, "nope"); ok {
		t.Error("expected Find to miss on unknown id")
	}
}
