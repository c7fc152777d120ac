// Package derive holds the pure derivation engines: alerts, discussion
// points, focus suggestions and reading interpretations. Everything here is
// recomputed from scratch on demand; nothing is stored.
package derive

import (
	"fmt"
	"strconv"

	"vitaldeck/generator"
)

// AlertKind classifies an alert. Only anomaly alerts exist today.
type AlertKind string

const (
	AlertAnomaly AlertKind = "anomaly"
)

// Alert is a transient, derivable notice. Its id is deterministic (kind plus
// metric id) so the same condition maps to the same alert across
// recomputations and a dismissal keeps suppressing it.
type Alert struct {
	ID       string    `json:"id"`
	Kind     AlertKind `json:"type"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	MetricID string    `json:"metricId,omitempty"`
}

// anomaly thresholds relative to the rolling average
const (
	anomalyHighRatio = 1.3
	anomalyLowRatio  = 0.7
)

// Alerts derives the anomaly alerts for the given summaries, skipping any
// whose id appears in the dismissed set. Order follows the summaries, which
// follow catalog order.
func Alerts(summaries []generator.Summary, dismissedIDs []string) []Alert {
	dismissed := make(map[string]bool, len(dismissedIDs))
	for _, id := range dismissedIDs {
		dismissed[id] = true
	}

	alerts := []Alert{}
	for _, m := range summaries {
		alertID := "anomaly_" + m.ID
		if dismissed[alertID] {
			continue
		}

		last, avg := m.LastValue, m.AvgValue
		if last <= avg*anomalyHighRatio && last >= avg*anomalyLowRatio {
			continue
		}

		alerts = append(alerts, Alert{
			ID:       alertID,
			Kind:     AlertAnomaly,
			Title:    m.Name,
			Message:  anomalyMessage(m),
			MetricID: m.ID,
		})
	}
	return alerts
}

// anomalyMessage builds the user-facing text: metric-specific wording for
// glucose and blood pressure, a generic higher/lower template otherwise.
func anomalyMessage(m generator.Summary) string {
	last := FormatValue(m.LastValue)
	avg := fmt.Sprintf("%.0f", m.AvgValue)

	switch m.ID {
	case "blood_glucose":
		return fmt.Sprintf("Your blood glucose is %s %s — higher than your usual average of ~%s. This could be worth looking into.", last, m.Unit, avg)
	case "blood_pressure":
		return fmt.Sprintf("Your blood pressure has been elevated the last few days, reading %s %s vs your usual ~%s.", last, m.Unit, avg)
	}

	direction := "lower"
	if m.LastValue > m.AvgValue {
		direction = "higher"
	}
	return fmt.Sprintf("Your %s is %s than expected — %s %s vs your usual ~%s.", m.Name, direction, last, m.Unit, avg)
}

// FormatValue renders a reading without trailing zeros (165 not 165.0)
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
