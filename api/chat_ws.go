package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"vitaldeck/conversation"
	"vitaldeck/state"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is a local single-user tool; cross-origin pages are fine
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// wsCommand is one inbound client frame
type wsCommand struct {
	Type     string         `json:"type"`
	Message  string         `json:"message,omitempty"`
	MetricID string         `json:"metricId,omitempty"`
	Decision state.Decision `json:"decision,omitempty"`
}

// wsFrame is one outbound server frame
type wsFrame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// outbox is the outbound frame queue for one websocket session. Store
// subscribers send from whatever goroutine is dispatching, which can outlive
// the session's read loop by a beat even after unsubscribing, so send and
// close are serialized behind a mutex and a send after close is a quiet drop,
// never a panic.
type outbox struct {
	mu     sync.Mutex
	closed bool
	ch     chan wsFrame
}

func newOutbox(size int) *outbox {
	return &outbox{ch: make(chan wsFrame, size)}
}

// send queues a frame, dropping it when the box is closed or full. A slow
// client misses frames; the next dispatch resyncs it.
func (o *outbox) send(f wsFrame) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	select {
	case o.ch <- f:
	default:
	}
}

func (o *outbox) close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.closed {
		o.closed = true
		close(o.ch)
	}
}

// handleChatWS runs a bidirectional conversation session. Inbound frames are
// controller commands; every store dispatch that touches the transcript pushes
// a fresh snapshot back. Writes go through the outbox owned by a single writer
// goroutine, since gorilla connections allow one writer at a time.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s.log.Info().Str("remote", r.RemoteAddr).Msg("💬 chat websocket connected")

	out := newOutbox(16)
	done := make(chan struct{})

	unsubscribe := s.store.Subscribe(func(_ state.AppState, e state.Event) {
		switch e.(type) {
		case state.AppendChatMessage, state.OpenChat, state.CloseChat, state.NewChat,
			state.StartInvestigation, state.ConcludeInvestigation, state.FinishInvestigation:
			out.send(wsFrame{Type: "chat", Payload: s.chatState()})
		}
	})

	go func() {
		defer close(done)
		for frame := range out.ch {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}()

	out.send(wsFrame{Type: "chat", Payload: s.chatState()})

readLoop:
	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Err(err).Msg("chat websocket read ended")
			}
			break
		}
		if frame, ok := s.runChatCommand(r.Context(), cmd); ok {
			out.send(frame)
		}
		select {
		case <-done:
			break readLoop
		default:
		}
	}

	unsubscribe()
	out.close()
	<-done
	s.log.Info().Str("remote", r.RemoteAddr).Msg("chat websocket disconnected")
}

// runChatCommand executes one inbound frame. It only returns a frame for
// errors and unknown commands; successful commands surface through the store
// subscription.
func (s *Server) runChatCommand(ctx context.Context, cmd wsCommand) (wsFrame, bool) {
	var err error
	switch cmd.Type {
	case "open":
		s.controller.Open()
	case "close":
		s.controller.Close()
	case "new":
		s.controller.NewChat()
	case "send":
		err = s.controller.Send(ctx, cmd.Message)
	case "investigate":
		err = s.controller.Start(cmd.MetricID)
	case "summarize":
		err = s.controller.Summarize(ctx)
	case "finish":
		err = s.controller.Finish(cmd.Decision)
	case "demo":
		metricID := cmd.MetricID
		if metricID == "" {
			metricID = "blood_glucose"
		}
		err = s.controller.PlayDemo(metricID)
	default:
		return wsFrame{Type: "error", Error: "unknown command: " + cmd.Type}, true
	}

	if err != nil {
		if errors.Is(err, conversation.ErrBusy) {
			return wsFrame{Type: "error", Error: "assistant is busy"}, true
		}
		return wsFrame{Type: "error", Error: err.Error()}, true
	}
	return wsFrame{}, false
}
