package research

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"vitaldeck/blobstore"
	"vitaldeck/state"
)

type memStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return blobstore.ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (m *memStore) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memStore) Close() error { return nil }

func newTestRecorder(t *testing.T, blobs blobstore.Store) *Recorder {
	t.Helper()
	rec, err := NewRecorder(context.Background(), blobs, nil, zerolog.Nop(), func() int64 { return 42 })
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	return rec
}

func TestRecorderAppendPersists(t *testing.T) {
	blobs := newMemStore()
	rec := newTestRecorder(t, blobs)

	rec.Append("dismiss_alert", map[string]interface{}{"alertId": "anomaly_blood_glucose"}, "personal", "adaptive")
	rec.Append("open_chat", nil, "personal", "adaptive")

	var stored []Record
	if err := blobs.Get(context.Background(), blobstore.KeyResearchLogs, &stored); err != nil {
		t.Fatalf("stored log missing: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 records, got %d", len(stored))
	}
	if stored[0].Event != "dismiss_alert" || stored[0].Timestamp != 42 {
		t.Errorf("first record: %+v", stored[0])
	}
	if stored[1].Payload == nil {
		t.Errorf("nil payload should be stored as an empty object")
	}
}

func TestRecorderContinuesExistingLog(t *testing.T) {
	blobs := newMemStore()
	first := newTestRecorder(t, blobs)
	first.Append("set_view", nil, "personal", "adaptive")

	second := newTestRecorder(t, blobs)
	second.Append("open_chat", nil, "personal", "adaptive")

	var stored []Record
	if err := blobs.Get(context.Background(), blobstore.KeyResearchLogs, &stored); err != nil {
		t.Fatalf("stored log missing: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("restarted recorder truncated the log: %d records", len(stored))
	}
}

func TestRecorderAttachDescribesEvents(t *testing.T) {
	blobs := newMemStore()
	rec := newTestRecorder(t, blobs)

	store := state.NewStore(state.Default(), zerolog.Nop())
	rec.Attach(store)

	store.Dispatch(state.DismissAlert{AlertID: "anomaly_blood_glucose"})
	store.Dispatch(state.OpenChat{})

	_, data, err := rec.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Event != "dismiss_alert" {
		t.Errorf("event name = %q", records[0].Event)
	}
	if records[0].Payload["alertId"] != "anomaly_blood_glucose" {
		t.Errorf("payload = %+v", records[0].Payload)
	}
	if records[0].ViewMode != "personal" || records[0].InterfaceMode != "adaptive" {
		t.Errorf("modes not captured: %+v", records[0])
	}
}

func TestRecorderExportFilename(t *testing.T) {
	rec := newTestRecorder(t, newMemStore())
	filename, _, err := rec.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(filename, "research_logs_") || !strings.HasSuffix(filename, ".json") {
		t.Errorf("filename = %q", filename)
	}
}

func TestRecorderClear(t *testing.T) {
	blobs := newMemStore()
	rec := newTestRecorder(t, blobs)
	rec.Append("set_view", nil, "personal", "adaptive")

	if err := rec.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	var stored []Record
	if err := blobs.Get(context.Background(), blobstore.KeyResearchLogs, &stored); err == nil {
		t.Errorf("log blob survived clear: %+v", stored)
	}

	_, data, err := rec.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("export after clear = %s", data)
	}
}
