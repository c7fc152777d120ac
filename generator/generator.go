package generator

import (
	"math"
	"math/rand/v2"
	"time"

	"vitaldeck/catalog"
)

// DataPoint is one reading in a metric's time series
type DataPoint struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Trend describes the direction of the last reading relative to the one before it
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// Summary is the materialized view of a metric's current status: catalog
// metadata plus the generated series and its derived last/average/trend.
// Built once at startup and immutable thereafter.
type Summary struct {
	catalog.Metric
	Data      []DataPoint `json:"data"`
	LastValue float64     `json:"lastValue"`
	AvgValue  float64     `json:"avgValue"`
	Trend     Trend       `json:"trend"`
}

// baseline holds the per-metric base value and variance for synthesis
type baseline struct {
	base     float64
	variance float64
}

var baselines = map[string]baseline{
	"steps":          {base: 8000, variance: 2000},
	"blood_glucose":  {base: 100, variance: 15},
	"blood_pressure": {base: 120, variance: 10},
	"sleep_duration": {base: 7.5, variance: 1},
	"weight":         {base: 75, variance: 0.5},
	"resting_hr":     {base: 65, variance: 8},
}

// Generate produces days+1 synthetic readings for the given metric id, one
// per day ending today. Values are base ± uniform noise rounded to one
// decimal. Three metrics carry injected anomalies at fixed day offsets so the
// alert engine always has visible material: a recent blood-pressure spike, a
// sleep dip 6-9 days back, and a glucose reading pinned to 165 today.
func Generate(metricID string, days int) []DataPoint {
	bl, ok := baselines[metricID]
	if !ok {
		bl = baseline{base: 50, variance: 10}
	}

	now := time.Now()
	points := make([]DataPoint, 0, days+1)

	for i := days; i >= 0; i-- {
		val := bl.base + (rand.Float64()-0.5)*bl.variance

		switch {
		case metricID == "blood_pressure" && i < 3:
			val += 20
		case metricID == "sleep_duration" && i > 5 && i < 10:
			val -= 3
		case metricID == "blood_glucose" && i == 0:
			val = 165
		}

		points = append(points, DataPoint{
			Timestamp: now.AddDate(0, 0, -i).Format(time.RFC3339),
			Value:     math.Round(val*10) / 10,
		})
	}
	return points
}

// Summarize derives the summary view from a metric and its series. The series
// must be non-empty and chronologically ordered; trend compares the last two
// points.
func Summarize(m catalog.Metric, points []DataPoint) Summary {
	last := points[len(points)-1].Value

	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	avg := sum / float64(len(points))

	trend := TrendNeutral
	if len(points) > 1 {
		prev := points[len(points)-2].Value
		if last > prev {
			trend = TrendUp
		} else if last < prev {
			trend = TrendDown
		}
	}

	return Summary{
		Metric:    m,
		Data:      points,
		LastValue: last,
		AvgValue:  avg,
		Trend:     trend,
	}
}

// BuildAll generates and summarizes a series for every catalog metric
func BuildAll(days int) []Summary {
	summaries := make([]Summary, 0, len(catalog.Metrics))
	for _, m := range catalog.Metrics {
		summaries = append(summaries, Summarize(m, Generate(m.ID, days)))
	}
	return summaries
}

// Find returns the summary for the given metric id, if present
func Find(summaries []Summary, id string) (Summary, bool) {
	for _, s := range summaries {
		if s.ID == id {
			return s, true
		}
	}
	return Summary{}, false
}
