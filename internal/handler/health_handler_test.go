package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	h.Health(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q, want %q", contentType, "application/json")
	}

	env := parseEnvelope(t, w)
	if env.Success != true {
		t.Error("success = false, want true")
	}
	if env.Message != nil {
		t.Errorf("message = %v, want null", *env.Message)
	}

	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is not an object: %T", env.Data)
	}
	if data["status"] != "UP" {
		t.Errorf("data.status = %v, want %q", data["status"], "UP")
	}
}

// envelopeのmessageキーがnullとして明示的に出力されることを検証する。
func TestHealthHandler_MessageKeyPresent(t *testing.T) {
	h := NewHealthHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	h.Health(w, req)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	msg, ok := raw["message"]
	if !ok {
		t.Fatal("message key is absent from envelope")
	}
	if string(msg) != "null" {
		t.Errorf("message = %s, want null", msg)
	}
}
