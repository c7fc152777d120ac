package api

import (
	"errors"
	"net/http"

	"vitaldeck/conversation"
	"vitaldeck/state"
)

// chatSnapshot pairs the transcript with the controller's transient flags,
// which live outside the persisted state
type chatSnapshot struct {
	State       state.AppState `json:"state"`
	Busy        bool           `json:"busy"`
	DemoPlaying bool           `json:"demoPlaying"`
}

func (s *Server) chatState() chatSnapshot {
	return chatSnapshot{
		State:       s.store.State(),
		Busy:        s.controller.Busy(),
		DemoPlaying: s.controller.DemoPlaying(),
	}
}

func (s *Server) handleOpenChat(w http.ResponseWriter, _ *http.Request) {
	s.controller.Open()
	writeJSON(w, http.StatusOK, s.chatState())
}

func (s *Server) handleCloseChat(w http.ResponseWriter, _ *http.Request) {
	s.controller.Close()
	writeJSON(w, http.StatusOK, s.chatState())
}

func (s *Server) handleNewChat(w http.ResponseWriter, _ *http.Request) {
	s.controller.NewChat()
	writeJSON(w, http.StatusOK, s.chatState())
}

func (s *Server) handleSendChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := s.controller.Send(r.Context(), body.Message); err != nil {
		if errors.Is(err, conversation.ErrBusy) {
			s.respondWithError(w, http.StatusConflict, "assistant is busy", nil)
			return
		}
		s.respondWithError(w, http.StatusInternalServerError, "failed to send message", err)
		return
	}
	writeJSON(w, http.StatusOK, s.chatState())
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Summarize(r.Context()); err != nil {
		if errors.Is(err, conversation.ErrBusy) {
			s.respondWithError(w, http.StatusConflict, "assistant is busy", nil)
			return
		}
		s.respondWithError(w, http.StatusBadRequest, "no active investigation", err)
		return
	}
	writeJSON(w, http.StatusOK, s.chatState())
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Decision state.Decision `json:"decision"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if body.Decision != state.DecisionTrack && body.Decision != state.DecisionDoctor {
		s.respondWithError(w, http.StatusBadRequest, "unknown decision", nil)
		return
	}
	if err := s.controller.Finish(body.Decision); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "no concluded investigation", err)
		return
	}
	writeJSON(w, http.StatusOK, s.chatState())
}

func (s *Server) handlePlayDemo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MetricID string `json:"metricId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if body.MetricID == "" {
		body.MetricID = "blood_glucose"
	}
	s.controller.Open()
	if err := s.controller.PlayDemo(body.MetricID); err != nil {
		s.respondWithError(w, http.StatusNotFound, "unknown metric", err)
		return
	}
	writeJSON(w, http.StatusOK, s.chatState())
}
