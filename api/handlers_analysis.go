package api

import (
	"net/http"

	"vitaldeck/catalog"
	"vitaldeck/conversation"
)

// handleGetTemplates returns the system templates followed by the user's
// custom ones
func (s *Server) handleGetTemplates(w http.ResponseWriter, _ *http.Request) {
	st := s.store.State()
	templates := make([]catalog.Template, 0, len(catalog.SystemTemplates)+len(st.CustomTemplates))
	templates = append(templates, catalog.SystemTemplates...)
	templates = append(templates, st.CustomTemplates...)
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string   `json:"name"`
		MetricIDs []string `json:"metricIds"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	t, err := s.controller.SaveManualTemplate(body.Name, body.MetricIDs)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid template", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// handleSuggestTemplate asks the assistant to assemble a metric group for a
// free-text goal. A nil suggestion is reported as unavailable rather than an
// error so the client can fall back to manual grouping.
func (s *Server) handleSuggestTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Goal string `json:"goal"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	suggestion := s.controller.SuggestCluster(r.Context(), body.Goal)
	if suggestion == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"available": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"available": true, "suggestion": suggestion})
}

func (s *Server) handleSaveSuggestedTemplate(w http.ResponseWriter, r *http.Request) {
	var body conversation.ClusterSuggestion
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if body.Title == "" || len(body.MetricIDs) == 0 {
		s.respondWithError(w, http.StatusBadRequest, "suggestion needs a title and metrics", nil)
		return
	}
	writeJSON(w, http.StatusCreated, s.controller.SaveSuggestedTemplate(body))
}
