package derive

import (
	"fmt"

	"vitaldeck/catalog"
	"vitaldeck/generator"
)

// Suggestion proposes adding one metric to the focus set
type Suggestion struct {
	MetricID string `json:"id"`
	Reason   string `json:"reason"`
}

const maxSuggestions = 2

// Suggestions recommends up to two metrics worth focusing on: metrics with an
// unusual recent reading relative to their trailing week, habitually tracked
// clinical metrics, and a contextual glucose nudge. rnd supplies the
// randomness for the habit branch so callers can pin it in tests.
func Suggestions(summaries []generator.Summary, focusIDs []string, rnd func() float64) []Suggestion {
	focused := make(map[string]bool, len(focusIDs))
	for _, id := range focusIDs {
		focused[id] = true
	}

	out := []Suggestion{}
	for _, m := range summaries {
		if focused[m.ID] {
			continue
		}

		last := m.LastValue
		avg := trailingAverage(m.Data, 7)
		if last > avg*1.25 || last < avg*0.75 {
			shape := "drop"
			if m.Trend == generator.TrendUp {
				shape = "spike"
			}
			out = append(out, Suggestion{
				MetricID: m.ID,
				Reason:   fmt.Sprintf("AI detected unusual pattern (%s in %s)", shape, m.Name),
			})
			continue
		}

		if m.Frequency == catalog.FrequencyDaily && m.Category == catalog.CategoryClinical && rnd() > 0.8 {
			out = append(out, Suggestion{MetricID: m.ID, Reason: "You usually track this clinical metric"})
		}

		if m.ID == "blood_glucose" {
			out = append(out, Suggestion{MetricID: m.ID, Reason: "Suggested based on your health goals"})
		}
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// trailingAverage mirrors the dashboard's rolling window: the sum of the last
// n points divided by n, regardless of how many points were actually present.
func trailingAverage(points []generator.DataPoint, n int) float64 {
	start := len(points) - n
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, p := range points[start:] {
		sum += p.Value
	}
	return sum / float64(n)
}
