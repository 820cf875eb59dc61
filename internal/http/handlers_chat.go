package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Respuesta string `json:"respuesta"`
}

// chatErrorBody is the only error shape the chat endpoint ever returns.
// Upstream failure detail stays in the logs.
var chatErrorBody = map[string]string{"error": "Error en la API"}

// handleChat proxies a user message to the language model. Every
// failure, from a malformed body to an upstream error, collapses into
// the same 500 response so no provider detail leaks to the client.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Chat request body invalid", "error", err)
		writeJSON(w, http.StatusInternalServerError, chatErrorBody)
		return
	}

	if s.completer == nil {
		slog.ErrorContext(r.Context(), "Chat endpoint called without a configured completer")
		writeJSON(w, http.StatusInternalServerError, chatErrorBody)
		return
	}

	answer, err := s.completer.Complete(r.Context(), strings.TrimSpace(req.Message))
	if err != nil {
		slog.ErrorContext(r.Context(), "Chat completion failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, chatErrorBody)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Respuesta: answer})
}
