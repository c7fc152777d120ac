package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"vitaldeck/catalog"
	"vitaldeck/derive"
	"vitaldeck/generator"
	"vitaldeck/state"
)

func (s *Server) handleGetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.State())
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var body struct {
		View state.View `json:"view"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Dispatch(state.SetView{View: body.View}))
}

func (s *Server) handleSetDisplayMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode state.DisplayMode `json:"mode"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Dispatch(state.SetDisplayMode{Mode: body.Mode}))
}

func (s *Server) handleSetPersona(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PersonaID string `json:"personaId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	for _, p := range catalog.Personas {
		if p.ID == body.PersonaID {
			writeJSON(w, http.StatusOK, s.store.Dispatch(state.SetPersona{Persona: p}))
			return
		}
	}
	s.respondWithError(w, http.StatusNotFound, "unknown persona", nil)
}

func (s *Server) handleGetMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.summaries)
}

func (s *Server) handleGetMetric(w http.ResponseWriter, r *http.Request) {
	m, ok := generator.Find(s.summaries, r.PathValue("id"))
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "unknown metric", nil)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleToggleFocus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := catalog.MetricByID(id); !ok {
		s.respondWithError(w, http.StatusNotFound, "unknown metric", nil)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Dispatch(state.ToggleFocus{MetricID: id}))
}

// handleSaveObservation saves a metric reading to the journal. The stored
// interpretation is derived from the reading; the clinical-significance label
// depends on which screen the save came from.
func (s *Server) handleSaveObservation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Source string `json:"source"`
	}
	// Body is optional; an empty source means a focus-card save
	_ = decodeJSON(r, &body)

	m, ok := generator.Find(s.summaries, r.PathValue("id"))
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "unknown metric", nil)
		return
	}

	significance := "Manually flagged."
	if body.Source == "analysis" {
		significance = "Saved from Analysis."
	}

	obs := state.SavedObservation{
		ID:                   uuid.NewString(),
		Timestamp:            time.Now().UnixMilli(),
		MetricID:             m.ID,
		MetricName:           m.Name,
		Value:                m.LastValue,
		Unit:                 m.Unit,
		Interpretation:       derive.Interpretation(m),
		ClinicalSignificance: significance,
	}
	writeJSON(w, http.StatusCreated, s.store.Dispatch(state.SaveObservation{Observation: obs}))
}

func (s *Server) handleGetObservations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.State().SavedObservations)
}

func (s *Server) handleGetSuggestions(w http.ResponseWriter, _ *http.Request) {
	st := s.store.State()
	writeJSON(w, http.StatusOK, derive.Suggestions(s.summaries, st.FocusMetricIDs, s.rnd))
}
