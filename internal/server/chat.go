package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/yourusername/chatbot-tui/internal/protocol"
)

const maxMessageSize = 16 << 10

// Replier produces a reply for one user message
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// EchoReplier answers without any model; used when no API key is configured
type EchoReplier struct{}

func (EchoReplier) Reply(ctx context.Context, message string) (string, error) {
	return "You said: " + strings.TrimSpace(message), nil
}

// handleChat serves POST /chat: {"message"} -> {"reply"}
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxMessageSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body")
		return
	}
	if len(data) > maxMessageSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Message is too long")
		return
	}

	req, err := protocol.DecodeChatRequest(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := s.replier.Reply(r.Context(), req.Message)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Reply generation failed")
		writeError(w, http.StatusBadGateway, "Failed to get a reply")
		return
	}

	writeJSON(w, http.StatusOK, protocol.ChatResponse{Reply: reply})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, protocol.ErrorResponse{Error: msg})
}
