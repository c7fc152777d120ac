package state

import "vitaldeck/catalog"

// Event is one state transition. The set is closed: every event type lives in
// this file and Reduce handles all of them exhaustively.
type Event interface {
	isEvent()
}

// SetView switches the active full-screen view
type SetView struct {
	View View
}

// SetDisplayMode switches the active dashboard tab
type SetDisplayMode struct {
	Mode DisplayMode
}

// SetPersona selects a persona and re-seeds the focus set from its preset
type SetPersona struct {
	Persona catalog.Persona
}

// ToggleFocus adds the metric to the focus set, or removes it if present
type ToggleFocus struct {
	MetricID string
}

// DismissAlert records an alert id as dismissed. The dismissed set only
// grows; there is no un-dismiss.
type DismissAlert struct {
	AlertID string
}

// SetVisitType selects the doctor-visit specialty
type SetVisitType struct {
	Visit catalog.VisitType
}

// ToggleStarredPoint stars a discussion point id, or unstars it if starred
type ToggleStarredPoint struct {
	PointID string
}

// SaveObservation prepends a journal entry (newest first)
type SaveObservation struct {
	Observation SavedObservation
}

// AppendChatMessage appends one transcript entry
type AppendChatMessage struct {
	Message ChatMessage
}

// OpenChat opens the conversation panel
type OpenChat struct{}

// CloseChat closes the panel and discards any in-progress investigation
type CloseChat struct{}

// NewChat empties the transcript and discards any in-progress investigation
type NewChat struct{}

// StartInvestigation binds a focused metric, opens the panel and replaces the
// transcript with the given opening turns
type StartInvestigation struct {
	MetricID string
	Opening  []ChatMessage
}

// ConcludeInvestigation stores the generated summary and moves to concluding
type ConcludeInvestigation struct {
	Summary string
}

// Decision is how a concluded investigation is resolved
type Decision string

const (
	DecisionTrack  Decision = "track"
	DecisionDoctor Decision = "doctor"
)

// FinishInvestigation resolves a concluded investigation. For the doctor
// decision the caller materializes the observation; the reducer appends it
// and switches to the doctor view. Either way all conversation state resets.
type FinishInvestigation struct {
	Decision    Decision
	Observation *SavedObservation
}

// SaveCustomTemplate appends a user-created analysis template
type SaveCustomTemplate struct {
	Template catalog.Template
}

func (SetView) isEvent()               {}
func (SetDisplayMode) isEvent()        {}
func (SetPersona) isEvent()            {}
func (ToggleFocus) isEvent()           {}
func (DismissAlert) isEvent()          {}
func (SetVisitType) isEvent()          {}
func (ToggleStarredPoint) isEvent()    {}
func (SaveObservation) isEvent()       {}
func (AppendChatMessage) isEvent()     {}
func (OpenChat) isEvent()              {}
func (CloseChat) isEvent()             {}
func (NewChat) isEvent()               {}
func (StartInvestigation) isEvent()    {}
func (ConcludeInvestigation) isEvent() {}
func (FinishInvestigation) isEvent()   {}
func (SaveCustomTemplate) isEvent()    {}
