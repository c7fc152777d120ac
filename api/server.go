// Package api exposes the dashboard state, derivation engines and
// conversation flow to the presentation layer over HTTP, SSE and WebSocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"vitaldeck/conversation"
	"vitaldeck/generator"
	"vitaldeck/realtime"
	"vitaldeck/research"
	"vitaldeck/state"
)

// Server handles HTTP API requests
type Server struct {
	store      *state.Store
	summaries  []generator.Summary
	controller *conversation.Controller
	recorder   *research.Recorder
	broker     *realtime.Broker
	log        zerolog.Logger

	// rnd feeds the suggestion engine's habit branch
	rnd func() float64

	httpServer *http.Server
}

// NewServer creates a new API server instance
func NewServer(store *state.Store, summaries []generator.Summary, controller *conversation.Controller, recorder *research.Recorder, broker *realtime.Broker, log zerolog.Logger) *Server {
	return &Server{
		store:      store,
		summaries:  summaries,
		controller: controller,
		recorder:   recorder,
		broker:     broker,
		log:        log,
		rnd:        rand.Float64,
	}
}

// Routes builds the request multiplexer
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /api/events", s.broker) // SSE endpoint

	// Root state
	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("POST /api/state/view", s.handleSetView)
	mux.HandleFunc("POST /api/state/display-mode", s.handleSetDisplayMode)
	mux.HandleFunc("POST /api/state/persona", s.handleSetPersona)

	// Metrics and journal
	mux.HandleFunc("GET /api/metrics", s.handleGetMetrics)
	mux.HandleFunc("GET /api/metrics/{id}", s.handleGetMetric)
	mux.HandleFunc("POST /api/metrics/{id}/focus", s.handleToggleFocus)
	mux.HandleFunc("POST /api/metrics/{id}/observations", s.handleSaveObservation)
	mux.HandleFunc("GET /api/observations", s.handleGetObservations)

	// Alerts and suggestions
	mux.HandleFunc("GET /api/alerts", s.handleGetAlerts)
	mux.HandleFunc("POST /api/alerts/{id}/dismiss", s.handleDismissAlert)
	mux.HandleFunc("POST /api/alerts/{id}/investigate", s.handleInvestigateAlert)
	mux.HandleFunc("GET /api/suggestions", s.handleGetSuggestions)

	// Doctor-visit preparation
	mux.HandleFunc("GET /api/doctor/summary", s.handleGetDoctorSummary)
	mux.HandleFunc("POST /api/doctor/visit-type", s.handleSetVisitType)
	mux.HandleFunc("POST /api/doctor/points/{id}/star", s.handleStarPoint)

	// Analysis templates
	mux.HandleFunc("GET /api/templates", s.handleGetTemplates)
	mux.HandleFunc("POST /api/templates", s.handleCreateTemplate)
	mux.HandleFunc("POST /api/templates/suggest", s.handleSuggestTemplate)
	mux.HandleFunc("POST /api/templates/suggested", s.handleSaveSuggestedTemplate)

	// Conversation
	mux.HandleFunc("POST /api/chat/open", s.handleOpenChat)
	mux.HandleFunc("POST /api/chat/close", s.handleCloseChat)
	mux.HandleFunc("POST /api/chat/new", s.handleNewChat)
	mux.HandleFunc("POST /api/chat/send", s.handleSendChat)
	mux.HandleFunc("POST /api/chat/summarize", s.handleSummarize)
	mux.HandleFunc("POST /api/chat/finish", s.handleFinish)
	mux.HandleFunc("POST /api/chat/demo", s.handlePlayDemo)
	mux.HandleFunc("GET /api/chat/ws", s.handleChatWS)

	// Research log
	mux.HandleFunc("GET /api/research/export", s.handleExportResearch)
	mux.HandleFunc("DELETE /api/research", s.handleClearResearch)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info().Int("port", port).Msg("🌐 API server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
