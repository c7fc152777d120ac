package state

import "vitaldeck/catalog"

// View identifies the active full-screen view
type View string

const (
	ViewOnboarding View = "onboarding"
	ViewHome       View = "home"
	ViewLibrary    View = "library"
	ViewBaseline   View = "baseline"
)

// DisplayMode identifies the active dashboard tab
type DisplayMode string

const (
	ModePersonal DisplayMode = "personal"
	ModeAnalysis DisplayMode = "analysis"
	ModeDoctor   DisplayMode = "doctor"
)

// InterfaceMode distinguishes the adaptive interface from the study baseline
type InterfaceMode string

const (
	InterfaceAdaptive InterfaceMode = "adaptive"
	InterfaceBaseline InterfaceMode = "baseline"
)

// InvestigationState is the anomaly-investigation machine state.
// Transitions cycle none -> active -> concluding -> none; no other edges.
type InvestigationState string

const (
	InvestigationNone       InvestigationState = "none"
	InvestigationActive     InvestigationState = "active"
	InvestigationConcluding InvestigationState = "concluding"
)

// Role tags a transcript entry
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one transcript entry
type ChatMessage struct {
	Role         Role   `json:"role"`
	Text         string `json:"text"`
	IsQuickReply bool   `json:"isQuickReply,omitempty"`
}

// SavedObservation is a durable journal entry snapshotting one metric reading.
// Immutable once created; never deleted in-app.
type SavedObservation struct {
	ID                   string  `json:"id"`
	Timestamp            int64   `json:"timestamp"`
	MetricID             string  `json:"metricId"`
	MetricName           string  `json:"metricName"`
	Value                float64 `json:"value"`
	Unit                 string  `json:"unit"`
	Interpretation       string  `json:"interpretation"`
	ClinicalSignificance string  `json:"clinicalSignificance"`
	UserNote             string  `json:"userNote"`
}

// DoctorNote is a free-text note attached to a visit specialty
type DoctorNote struct {
	ID         string            `json:"id"`
	Timestamp  int64             `json:"timestamp"`
	DoctorType catalog.VisitType `json:"doctorType"`
	Content    string            `json:"content"`
}

// AppState is the single root aggregate owned by the running session. The
// whole aggregate is serialized to the blob store after every mutation and
// rehydrated verbatim at startup; a stored blob from an older shape is
// trusted as-is.
type AppState struct {
	View                   View               `json:"view"`
	DisplayMode            DisplayMode        `json:"displayMode"`
	Persona                *catalog.Persona   `json:"persona"`
	FocusMetricIDs         []string           `json:"focusMetricIds"`
	DismissedAlertIDs      []string           `json:"dismissedAlertIds"`
	InterfaceMode          InterfaceMode      `json:"interfaceMode"`
	StarredDiscussionIDs   []string           `json:"starredDiscussionIds"`
	DoctorVisitType        catalog.VisitType  `json:"doctorVisitType"`
	ActiveSearchQuery      string             `json:"activeSearchQuery"`
	QueriedMetricIDs       []string           `json:"queriedMetricIds"`
	SavedObservations      []SavedObservation `json:"savedObservations"`
	DoctorNotes            []DoctorNote       `json:"doctorNotes"`
	FocusedAnomalyMetricID string             `json:"focusedAnomalyMetricId"`
	ChatHistory            []ChatMessage      `json:"chatHistory"`
	InvestigationState     InvestigationState `json:"investigationState"`
	InvestigationSummary   string             `json:"investigationSummary"`
	IsChatOpen             bool               `json:"isChatOpen"`
	CustomTemplates        []catalog.Template `json:"customTemplates"`
}

// Default constructs the onboarding state for the first persona's preset
func Default() AppState {
	persona := catalog.Personas[0]
	preset := catalog.OnboardingPresets[persona.InitialPreset]

	focus := make([]string, len(preset))
	copy(focus, preset)

	return AppState{
		View:                 ViewHome,
		DisplayMode:          ModePersonal,
		Persona:              &persona,
		FocusMetricIDs:       focus,
		DismissedAlertIDs:    []string{},
		InterfaceMode:        InterfaceAdaptive,
		StarredDiscussionIDs: []string{},
		DoctorVisitType:      catalog.VisitGP,
		QueriedMetricIDs:     []string{},
		SavedObservations:    []SavedObservation{},
		DoctorNotes:          []DoctorNote{},
		ChatHistory:          []ChatMessage{},
		InvestigationState:   InvestigationNone,
		CustomTemplates:      []catalog.Template{},
	}
}
