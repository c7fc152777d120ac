package api

import (
	"net/http"
	"strings"

	"vitaldeck/derive"
	"vitaldeck/state"
)

func (s *Server) handleGetAlerts(w http.ResponseWriter, _ *http.Request) {
	st := s.store.State()
	writeJSON(w, http.StatusOK, derive.Alerts(s.summaries, st.DismissedAlertIDs))
}

func (s *Server) handleDismissAlert(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Dispatch(state.DismissAlert{AlertID: r.PathValue("id")}))
}

// handleInvestigateAlert opens the assistant panel and starts an anomaly
// investigation for the alert's metric. The alert is not dismissed; it stays
// derivable until the user dismisses it.
func (s *Server) handleInvestigateAlert(w http.ResponseWriter, r *http.Request) {
	metricID := strings.TrimPrefix(r.PathValue("id"), "anomaly_")

	s.controller.Open()
	if err := s.controller.Start(metricID); err != nil {
		s.respondWithError(w, http.StatusNotFound, "unknown metric for alert", err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.State())
}
