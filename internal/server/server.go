// Package server exposes the chat interpreter over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"taskchat/internal/interpreter"
)

// historyLimit caps the per-session transcript.
const historyLimit = 20

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Server routes chat requests to the interpreter and keeps in-memory
// per-session transcripts. History resets on restart.
type Server struct {
	interp *interpreter.Interpreter
	log    *zap.Logger

	mu       sync.Mutex
	sessions map[string][]ChatMessage
}

// New builds a server around an interpreter. A nil logger disables
// logging.
func New(interp *interpreter.Interpreter, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		interp:   interp,
		log:      log,
		sessions: map[string][]ChatMessage{},
	}
}

// Handler returns the full HTTP handler with CORS applied.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/clear", s.handleClear)
	mux.HandleFunc("GET /api/chat/history", s.handleHistory)
	mux.HandleFunc("GET /health", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.logRequests(mux))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("handler panic", zap.Any("panic", rec))
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"success": false,
					"message": "An error occurred processing your request",
				})
			}
		}()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	interpreter.Result
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}

	result := s.interp.Process(r.Context(), req.Message)

	s.mu.Lock()
	history := append(s.sessions[req.SessionID],
		ChatMessage{Role: "user", Content: req.Message},
		ChatMessage{Role: "assistant", Content: result.Message})
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	s.sessions[req.SessionID] = history
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, chatResponse{Result: *result, SessionID: req.SessionID})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.SessionID == "" {
		req.SessionID = "default"
	}

	s.mu.Lock()
	delete(s.sessions, req.SessionID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Conversation history cleared",
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = "default"
	}

	s.mu.Lock()
	history := append([]ChatMessage(nil), s.sessions[sessionID]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   history,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
