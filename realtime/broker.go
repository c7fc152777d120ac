// Package realtime fans application events out to dashboard clients over
// Server-Sent Events.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Event names broadcast to clients
const (
	EventState       = "state"
	EventChatMessage = "chat_message"
	EventAlert       = "alert"
)

// envelope wraps a broadcast payload with its event name
type envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Broker handles SSE clients and broadcasting
type Broker struct {
	clients    map[chan []byte]bool
	register   chan chan []byte
	unregister chan chan []byte
	broadcast  chan []byte
	done       chan struct{}
	log        zerolog.Logger
}

// NewBroker creates a new SSE broker
func NewBroker(log zerolog.Logger) *Broker {
	return &Broker{
		clients:    make(map[chan []byte]bool),
		register:   make(chan chan []byte),
		unregister: make(chan chan []byte),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run pumps registrations and broadcasts until ctx is cancelled
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range b.clients {
				close(client)
			}
			b.clients = make(map[chan []byte]bool)
			close(b.done)
			return

		case client := <-b.register:
			b.clients[client] = true
			b.log.Debug().Int("total", len(b.clients)).Msg("SSE client connected")

		case client := <-b.unregister:
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client)
				b.log.Debug().Int("total", len(b.clients)).Msg("SSE client disconnected")
			}

		case msg := <-b.broadcast:
			for client := range b.clients {
				select {
				case client <- msg:
				default:
					// Skip slow clients rather than blocking the pump
				}
			}
		}
	}
}

// ServeHTTP handles the SSE endpoint
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// The pump stops draining register/unregister once Run returns, so every
	// send there also watches done or the handler leaks on shutdown
	clientChan := make(chan []byte, 16)
	select {
	case b.register <- clientChan:
	case <-b.done:
		return
	}

	notify := r.Context().Done()
	for {
		select {
		case <-notify:
			select {
			case b.unregister <- clientChan:
			case <-b.done:
			}
			return
		case msg, open := <-clientChan:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// Broadcast sends an event to all connected clients, dropping it if the
// broadcast buffer is full.
func (b *Broker) Broadcast(event string, payload interface{}) {
	jsonBytes, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		b.log.Error().Err(err).Str("event", event).Msg("failed to marshal broadcast")
		return
	}

	select {
	case b.broadcast <- jsonBytes:
	default:
	}
}
