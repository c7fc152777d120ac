package derive

import (
	"fmt"

	"vitaldeck/catalog"
	"vitaldeck/generator"
	"vitaldeck/state"
)

// DiscussionPoint is one checklist line item prepared for a clinician visit
type DiscussionPoint struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// DiscussionPoints derives the doctor-visit checklist. Saved observations
// always come first in their stored order (newest first); specialty rules
// follow. Rules are independent and additive, ids are fixed literals per rule
// so re-deriving is idempotent, and a missing metric summary simply skips the
// rule. The switch over VisitType is exhaustive: adding a specialty without a
// branch is a compile-visible gap, not a silent no-op.
func DiscussionPoints(visit catalog.VisitType, observations []state.SavedObservation, summaries []generator.Summary) []DiscussionPoint {
	points := []DiscussionPoint{}

	for _, obs := range observations {
		points = append(points, DiscussionPoint{
			ID:   obs.ID,
			Text: fmt.Sprintf("Discuss %s spike (%s%s): %s", obs.MetricName, FormatValue(obs.Value), obs.Unit, obs.UserNote),
		})
	}

	switch visit {
	case catalog.VisitEndocrinologist:
		if glucose, ok := generator.Find(summaries, "blood_glucose"); ok {
			if glucose.LastValue > 140 {
				points = append(points, DiscussionPoint{
					ID:   "gluc_high",
					Text: fmt.Sprintf("Your blood sugar was a bit high recently at %s. Discuss if this is linked to meals.", FormatValue(glucose.LastValue)),
				})
			} else {
				points = append(points, DiscussionPoint{
					ID:   "gluc_ok",
					Text: "Your sugar levels look stable. Ask your doctor if your current targets are still right for you.",
				})
			}
		}
		points = append(points, DiscussionPoint{
			ID:   "endo_diet",
			Text: "Talk about how your daily meals are affecting your energy levels throughout the day.",
		})

	case catalog.VisitCardiologist:
		if hrv, ok := generator.Find(summaries, "hrv"); ok && hrv.LastValue < hrv.AvgValue*0.85 {
			points = append(points, DiscussionPoint{
				ID:   "hrv_low",
				Text: "Your heart variability is lower than your usual average. This might mean your body needs more rest.",
			})
		}
		if bp, ok := generator.Find(summaries, "blood_pressure"); ok && bp.LastValue > 130 {
			points = append(points, DiscussionPoint{
				ID:   "bp_high",
				Text: fmt.Sprintf("Your blood pressure reading of %s is higher than normal. Ask about stress management.", FormatValue(bp.LastValue)),
			})
		}

	case catalog.VisitGP:
		points = append(points,
			DiscussionPoint{ID: "gp_general", Text: "Review your general activity levels and how your sleep has been feeling lately."},
			DiscussionPoint{ID: "gp_weight", Text: "Discuss any recent changes in your weight and if they match your wellness goals."},
		)

	case catalog.VisitSleepSpecialist:
		// No specialty rule; saved observations only.
	}

	return points
}
