package api

import (
	"fmt"
	"net/http"
)

// handleExportResearch downloads the interaction log as a JSON attachment
func (s *Server) handleExportResearch(w http.ResponseWriter, _ *http.Request) {
	filename, data, err := s.recorder.Export()
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "failed to export research log", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleClearResearch(w http.ResponseWriter, _ *http.Request) {
	if err := s.recorder.Clear(); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "failed to clear research log", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
