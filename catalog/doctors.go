package catalog

import "fmt"

// VisitType is the closed set of doctor specialties a visit can be prepared for
type VisitType string

const (
	VisitGP              VisitType = "GP"
	VisitCardiologist    VisitType = "Cardiologist"
	VisitEndocrinologist VisitType = "Endocrinologist"
	VisitSleepSpecialist VisitType = "Sleep Specialist"
)

// VisitTypes lists every specialty in display order
var VisitTypes = []VisitType{VisitGP, VisitCardiologist, VisitEndocrinologist, VisitSleepSpecialist}

// ParseVisitType validates a raw specialty string against the closed set
func ParseVisitType(raw string) (VisitType, error) {
	for _, t := range VisitTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown visit type %q", raw)
}

// VisitTips holds the preparation tip shown for each specialty
var VisitTips = map[VisitType]string{
	VisitGP:              "Focus on general wellness trends. Discuss your overall energy levels, weight consistency, and any recent anomalies in basic vitals.",
	VisitCardiologist:    "Prioritize Heart Rate Variability and Resting Heart Rate. Be prepared to discuss your aerobic activity levels and any spikes in Blood Pressure.",
	VisitEndocrinologist: "Focus heavily on Blood Glucose stability and Nutrition logs. Discuss how your diet correlates with your energy and glucose readings.",
	VisitSleepSpecialist: "Provide details on your sleep hygiene. Use the Quality and Duration trends to discuss patterns of wakefulness or restlessness.",
}
