// Package research keeps the append-only interaction log used for study
// analysis: every dispatched state event becomes one record, persisted
// wholesale to the blob store and optionally mirrored to Postgres.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"vitaldeck/blobstore"
	"vitaldeck/database"
	"vitaldeck/state"
)

// Record is one logged interaction
type Record struct {
	Timestamp     int64                  `json:"timestamp"`
	Event         string                 `json:"event"`
	Payload       map[string]interface{} `json:"payload"`
	ViewMode      string                 `json:"viewMode"`
	InterfaceMode string                 `json:"interfaceMode"`
}

// Recorder accumulates records in memory and rewrites the whole log blob on
// every append. Mirroring to Postgres is best-effort and never blocks the
// dashboard.
type Recorder struct {
	blobs blobstore.Store
	repo  *database.ResearchRepository // nil when no DB is configured
	log   zerolog.Logger
	now   func() int64

	mu      sync.Mutex
	records []Record
}

// NewRecorder loads any existing log blob so appends continue the array
func NewRecorder(ctx context.Context, blobs blobstore.Store, repo *database.ResearchRepository, log zerolog.Logger, now func() int64) (*Recorder, error) {
	var records []Record
	err := blobs.Get(ctx, blobstore.KeyResearchLogs, &records)
	if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return nil, fmt.Errorf("failed to load research log: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return &Recorder{blobs: blobs, repo: repo, log: log, now: now, records: records}, nil
}

// Attach subscribes the recorder to every store dispatch
func (r *Recorder) Attach(store *state.Store) (unsubscribe func()) {
	return store.Subscribe(func(next state.AppState, e state.Event) {
		name, payload := describe(e)
		r.Append(name, payload, string(next.DisplayMode), string(next.InterfaceMode))
	})
}

// Append records one event and rewrites the log blob
func (r *Recorder) Append(event string, payload map[string]interface{}, viewMode, interfaceMode string) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	rec := Record{
		Timestamp:     r.now(),
		Event:         event,
		Payload:       payload,
		ViewMode:      viewMode,
		InterfaceMode: interfaceMode,
	}

	r.mu.Lock()
	r.records = append(r.records, rec)
	snapshot := make([]Record, len(r.records))
	copy(snapshot, r.records)
	r.mu.Unlock()

	if err := r.blobs.Set(context.Background(), blobstore.KeyResearchLogs, snapshot); err != nil {
		r.log.Error().Err(err).Msg("failed to persist research log")
	}

	if r.repo != nil {
		payloadJSON, _ := json.Marshal(rec.Payload)
		err := r.repo.Insert(&database.ResearchEvent{
			Timestamp:     rec.Timestamp,
			Event:         rec.Event,
			Payload:       string(payloadJSON),
			ViewMode:      rec.ViewMode,
			InterfaceMode: rec.InterfaceMode,
		})
		if err != nil {
			r.log.Warn().Err(err).Msg("failed to mirror research event to database")
		}
	}
}

// Export renders the full log as indented JSON with a timestamped filename
func (r *Recorder) Export() (filename string, data []byte, err error) {
	r.mu.Lock()
	snapshot := make([]Record, len(r.records))
	copy(snapshot, r.records)
	r.mu.Unlock()

	data, err = json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal research log: %w", err)
	}
	return fmt.Sprintf("research_logs_%d.json", r.now()), data, nil
}

// Clear drops all records and deletes the log blob
func (r *Recorder) Clear() error {
	r.mu.Lock()
	r.records = []Record{}
	r.mu.Unlock()
	return r.blobs.Delete(context.Background(), blobstore.KeyResearchLogs)
}

// describe maps a state event to its log name and payload
func describe(e state.Event) (string, map[string]interface{}) {
	switch ev := e.(type) {
	case state.SetView:
		return "set_view", map[string]interface{}{"view": ev.View}
	case state.SetDisplayMode:
		return "set_display_mode", map[string]interface{}{"mode": ev.Mode}
	case state.SetPersona:
		return "set_persona", map[string]interface{}{"personaId": ev.Persona.ID}
	case state.ToggleFocus:
		return "toggle_focus", map[string]interface{}{"metricId": ev.MetricID}
	case state.DismissAlert:
		return "dismiss_alert", map[string]interface{}{"alertId": ev.AlertID}
	case state.SetVisitType:
		return "set_visit_type", map[string]interface{}{"visitType": ev.Visit}
	case state.ToggleStarredPoint:
		return "star_discussion_point", map[string]interface{}{"pointId": ev.PointID}
	case state.SaveObservation:
		return "save_observation", map[string]interface{}{"metricId": ev.Observation.MetricID}
	case state.AppendChatMessage:
		return "chat_message", map[string]interface{}{"role": ev.Message.Role}
	case state.OpenChat:
		return "open_chat", nil
	case state.CloseChat:
		return "close_chat", nil
	case state.NewChat:
		return "new_chat", nil
	case state.StartInvestigation:
		return "start_investigation", map[string]interface{}{"metricId": ev.MetricID}
	case state.ConcludeInvestigation:
		return "conclude_investigation", nil
	case state.FinishInvestigation:
		return "finish_investigation", map[string]interface{}{"decision": ev.Decision}
	case state.SaveCustomTemplate:
		return "custom_cluster_created", map[string]interface{}{"name": ev.Template.Name}
	default:
		return "unknown_event", nil
	}
}
