package state

import "vitaldeck/catalog"

// Reduce applies one event to the state and returns the next state. It is a
// pure function: the input state is never mutated, so callers can hold
// snapshots safely and the transition logic is testable without a store.
func Reduce(s AppState, e Event) AppState {
	switch ev := e.(type) {
	case SetView:
		s.View = ev.View

	case SetDisplayMode:
		s.DisplayMode = ev.Mode

	case SetPersona:
		persona := ev.Persona
		s.Persona = &persona
		preset := catalog.OnboardingPresets[persona.InitialPreset]
		focus := make([]string, len(preset))
		copy(focus, preset)
		s.FocusMetricIDs = focus

	case ToggleFocus:
		s.FocusMetricIDs = toggle(s.FocusMetricIDs, ev.MetricID)

	case DismissAlert:
		if !contains(s.DismissedAlertIDs, ev.AlertID) {
			s.DismissedAlertIDs = appendCopy(s.DismissedAlertIDs, ev.AlertID)
		}

	case SetVisitType:
		s.DoctorVisitType = ev.Visit

	case ToggleStarredPoint:
		s.StarredDiscussionIDs = toggle(s.StarredDiscussionIDs, ev.PointID)

	case SaveObservation:
		s.SavedObservations = prependObservation(s.SavedObservations, ev.Observation)

	case AppendChatMessage:
		history := make([]ChatMessage, 0, len(s.ChatHistory)+1)
		history = append(history, s.ChatHistory...)
		s.ChatHistory = append(history, ev.Message)

	case OpenChat:
		s.IsChatOpen = true

	case CloseChat:
		s = resetConversation(s)
		s.IsChatOpen = false

	case NewChat:
		s = resetConversation(s)

	case StartInvestigation:
		s.FocusedAnomalyMetricID = ev.MetricID
		s.InvestigationState = InvestigationActive
		s.IsChatOpen = true
		opening := make([]ChatMessage, len(ev.Opening))
		copy(opening, ev.Opening)
		s.ChatHistory = opening

	case ConcludeInvestigation:
		s.InvestigationState = InvestigationConcluding
		s.InvestigationSummary = ev.Summary

	case FinishInvestigation:
		if ev.Decision == DecisionDoctor && ev.Observation != nil {
			s.SavedObservations = prependObservation(s.SavedObservations, *ev.Observation)
			s.DisplayMode = ModeDoctor
		}
		s = resetConversation(s)
		s.IsChatOpen = false

	case SaveCustomTemplate:
		templates := make([]catalog.Template, 0, len(s.CustomTemplates)+1)
		templates = append(templates, s.CustomTemplates...)
		s.CustomTemplates = append(templates, ev.Template)
	}

	return s
}

// resetConversation clears every conversation field. Partial investigation
// progress is not recoverable once the panel is left.
func resetConversation(s AppState) AppState {
	s.InvestigationState = InvestigationNone
	s.FocusedAnomalyMetricID = ""
	s.InvestigationSummary = ""
	s.ChatHistory = []ChatMessage{}
	return s
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendCopy(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

// toggle removes id if present, appends it otherwise
func toggle(ids []string, id string) []string {
	if contains(ids, id) {
		out := make([]string, 0, len(ids)-1)
		for _, v := range ids {
			if v != id {
				out = append(out, v)
			}
		}
		return out
	}
	return appendCopy(ids, id)
}

// prependObservation keeps the journal newest-first
func prependObservation(obs []SavedObservation, o SavedObservation) []SavedObservation {
	out := make([]SavedObservation, 0, len(obs)+1)
	out = append(out, o)
	return append(out, obs...)
}
