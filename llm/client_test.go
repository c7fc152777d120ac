package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func candidateResponse(text string) string {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestGenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidateResponse("Stay hydrated. Not medical advice")))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model")
	reply, err := client.GenerateText(context.Background(), "be brief", "how am I doing?")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}

	if reply != "Stay hydrated. Not medical advice" {
		t.Errorf("reply = %q", reply)
	}
	if gotPath != "/v1beta/models/test-model:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotBody.SystemInstruction == nil || gotBody.SystemInstruction.Parts[0].Text != "be brief" {
		t.Errorf("system instruction not carried: %+v", gotBody.SystemInstruction)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "how am I doing?" {
		t.Errorf("contents not carried: %+v", gotBody.Contents)
	}
}

func TestGenerateTextOmitsEmptySystemInstruction(t *testing.T) {
	var gotBody generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(candidateResponse("ok")))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "m")
	if _, err := client.GenerateText(context.Background(), "", "hi"); err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if gotBody.SystemInstruction != nil {
		t.Errorf("empty system instruction was sent: %+v", gotBody.SystemInstruction)
	}
}

func TestGenerateTextAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "m")
	_, err := client.GenerateText(context.Background(), "", "hi")
	if err == nil {
		t.Fatal("expected an error for a 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestGenerateTextNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "m")
	if _, err := client.GenerateText(context.Background(), "", "hi"); err == nil {
		t.Fatal("expected an error when no candidates are returned")
	}
}

func TestGenerateJSON(t *testing.T) {
	type result struct {
		Title string   `json:"title"`
		IDs   []string `json:"ids"`
	}

	var gotCfg *generationConfig
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotCfg = req.GenerationConfig
		_, _ = w.Write([]byte(candidateResponse(`{"title":"Heart","ids":["hrv"]}`)))
	}))
	defer srv.Close()

	schema, err := SchemaFor(&result{})
	if err != nil {
		t.Fatalf("SchemaFor: %v", err)
	}

	client := NewClient(srv.URL, "k", "m")
	var out result
	if err := client.GenerateJSON(context.Background(), "", "group these", schema, &out); err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}

	if out.Title != "Heart" || len(out.IDs) != 1 {
		t.Errorf("unexpected result: %+v", out)
	}
	if gotCfg == nil || gotCfg.ResponseMIMEType != "application/json" {
		t.Errorf("structured request missing generation config: %+v", gotCfg)
	}
	if len(gotCfg.ResponseJSONSchema) == 0 {
		t.Error("schema not carried in the request")
	}
}

func TestGenerateJSONMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(candidateResponse("not json at all")))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "m")
	var out struct{}
	if err := client.GenerateJSON(context.Background(), "", "x", nil, &out); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSchemaForDropsVersionMarker(t *testing.T) {
	schema, err := SchemaFor(&struct {
		Name string `json:"name"`
	}{})
	if err != nil {
		t.Fatalf("SchemaFor: %v", err)
	}
	if strings.Contains(string(schema), "$schema") {
		t.Errorf("schema still carries the $schema marker: %s", schema)
	}
}
