package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"taskchat/internal/interpreter"
	"taskchat/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ctx := t.Context()
	proj, err := s.CreateProject(ctx, "Website", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := s.CreateColumn(ctx, proj.ID, "To Do", 0); err != nil {
		t.Fatalf("create column: %v", err)
	}
	if _, err := s.CreateColumn(ctx, proj.ID, "Done", 1); err != nil {
		t.Fatalf("create column: %v", err)
	}

	return New(interpreter.New(s, nil), nil)
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler(nil)

	w := postChat(t, h, `{"message": "Create task called Fix bug in To Do"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Action    string `json:"action"`
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Action != "create" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.SessionID != "default" {
		t.Errorf("expected default session, got %q", resp.SessionID)
	}
	if !strings.Contains(resp.Message, "Fix bug") {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestChatRequiresMessage(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler(nil)

	for _, body := range []string{`{}`, `{"message": "   "}`, `not json`} {
		if w := postChat(t, h, body); w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestHistoryAndClear(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler(nil)

	postChat(t, h, `{"message": "help", "session_id": "s1"}`)
	postChat(t, h, `{"message": "Show all tasks", "session_id": "s1"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history?session_id=s1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var hist struct {
		SessionID string        `json:"session_id"`
		Messages  []ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(hist.Messages) != 4 {
		t.Fatalf("expected 4 transcript entries, got %d", len(hist.Messages))
	}
	if hist.Messages[0].Role != "user" || hist.Messages[1].Role != "assistant" {
		t.Errorf("unexpected roles: %+v", hist.Messages[:2])
	}

	req = httptest.NewRequest(http.MethodPost, "/api/chat/clear", strings.NewReader(`{"session_id": "s1"}`))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/chat/history?session_id=s1", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	json.Unmarshal(w.Body.Bytes(), &hist)
	if len(hist.Messages) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(hist.Messages))
	}
}

func TestHistoryCapped(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler(nil)

	for i := 0; i < 15; i++ {
		postChat(t, h, `{"message": "help", "session_id": "cap"}`)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history?session_id=cap", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var hist struct {
		Messages []ChatMessage `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &hist)
	if len(hist.Messages) != historyLimit {
		t.Errorf("expected history capped at %d, got %d", historyLimit, len(hist.Messages))
	}
}

func TestSessionsIsolated(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler(nil)

	postChat(t, h, `{"message": "help", "session_id": "a"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history?session_id=b", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var hist struct {
		Messages []ChatMessage `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &hist)
	if len(hist.Messages) != 0 {
		t.Errorf("session b should be empty, got %d", len(hist.Messages))
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
