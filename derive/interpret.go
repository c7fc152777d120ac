package derive

import "vitaldeck/generator"

// Interpretation captions a reading relative to its rolling average. Used as
// the stored interpretation when a reading is saved to the journal.
func Interpretation(m generator.Summary) string {
	diff := (m.LastValue - m.AvgValue) / m.AvgValue * 100
	switch {
	case diff > 15:
		return "Higher than your usual average"
	case diff < -15:
		return "Lower than your usual average"
	default:
		return "Looking stable and consistent"
	}
}
