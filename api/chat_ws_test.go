package api

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"vitaldeck/state"
)

func dialChat(t *testing.T, srvURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srvURL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame wsFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

func TestChatWSInitialSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dialChat(t, srv.URL)

	frame := readFrame(t, conn)
	if frame.Type != "chat" {
		t.Errorf("first frame type = %q", frame.Type)
	}
}

func TestChatWSSendPushesSnapshot(t *testing.T) {
	srv, store := newTestServer(t)
	conn := dialChat(t, srv.URL)

	readFrame(t, conn) // initial snapshot

	if err := conn.WriteJSON(wsCommand{Type: "send", Message: "hello"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != "chat" {
		t.Fatalf("frame type = %q", frame.Type)
	}
	if history := store.State().ChatHistory; len(history) != 1 || history[0].Text != "hello" {
		t.Errorf("transcript: %+v", history)
	}
}

func TestChatWSUnknownCommand(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dialChat(t, srv.URL)

	readFrame(t, conn)

	if err := conn.WriteJSON(wsCommand{Type: "teleport"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != "error" || !strings.Contains(frame.Error, "teleport") {
		t.Errorf("frame = %+v", frame)
	}
}

// Disconnecting sessions race against dispatches from other goroutines (a
// playing demo, other clients). The session's outbox must absorb late
// subscriber sends instead of panicking on a closed channel.
func TestChatWSDisconnectWhileDispatching(t *testing.T) {
	srv, store := newTestServer(t)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				store.Dispatch(state.AppendChatMessage{Message: state.ChatMessage{Role: state.RoleUser, Text: "x"}})
			}
		}
	}()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	for i := 0; i < 50; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		conn.Close()
	}

	close(stop)
	wg.Wait()
}

func TestChatWSFinishWithoutInvestigation(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dialChat(t, srv.URL)

	readFrame(t, conn)

	if err := conn.WriteJSON(wsCommand{Type: "finish", Decision: state.DecisionTrack}); err != nil {
		t.Fatalf("write: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != "error" {
		t.Errorf("frame = %+v", frame)
	}
}
