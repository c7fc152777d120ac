package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestBrokerBroadcastReachesClient(t *testing.T) {
	broker := NewBroker(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go broker.Run(ctx)

	srv := httptest.NewServer(broker)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	// Give the client time to register before broadcasting
	time.Sleep(50 * time.Millisecond)
	broker.Broadcast(EventState, map[string]string{"view": "home"})

	reader := bufio.NewReader(resp.Body)
	lineCh := make(chan string, 1)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if strings.HasPrefix(line, "data: ") {
				lineCh <- strings.TrimSpace(strings.TrimPrefix(line, "data: "))
				return
			}
		}
	}()

	select {
	case line := <-lineCh:
		var env envelope
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			t.Fatalf("frame not valid JSON: %v", err)
		}
		if env.Event != EventState {
			t.Errorf("event = %q", env.Event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
	}
}

func TestBrokerClientExitDuringShutdown(t *testing.T) {
	broker := NewBroker(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go broker.Run(ctx)

	reqCtx, reqCancel := context.WithCancel(context.Background())
	defer reqCancel()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(reqCtx)
	rec := httptest.NewRecorder()

	handlerDone := make(chan struct{})
	go func() {
		broker.ServeHTTP(rec, req)
		close(handlerDone)
	}()

	// Let the client register, then stop the broker and drop the client at
	// the same time; the handler must return either way
	time.Sleep(20 * time.Millisecond)
	cancel()
	reqCancel()

	select {
	case <-handlerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("handler still blocked after shutdown")
	}
}

func TestBrokerRegisterAfterShutdown(t *testing.T) {
	broker := NewBroker(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go broker.Run(ctx)
	cancel()

	// Wait for the pump to finish shutting down
	time.Sleep(20 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handlerDone := make(chan struct{})
	go func() {
		broker.ServeHTTP(rec, req)
		close(handlerDone)
	}()

	select {
	case <-handlerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("registration blocked against a stopped broker")
	}
}

func TestBrokerBroadcastWithoutClients(t *testing.T) {
	broker := NewBroker(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go broker.Run(ctx)

	// Must not block or panic with nobody listening
	for i := 0; i < 10; i++ {
		broker.Broadcast(EventAlert, i)
	}
}
