package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/medassist-ai/rag-chatbot/internal/middleware"
	"github.com/medassist-ai/rag-chatbot/internal/model"
	"github.com/medassist-ai/rag-chatbot/internal/responder"
	"github.com/medassist-ai/rag-chatbot/pkg/logger"
	"github.com/medassist-ai/rag-chatbot/pkg/metrics"
)

// ChatHandler handles the chat endpoints.
type ChatHandler struct {
	responder *responder.Responder
	logger    *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(res *responder.Responder, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		responder: res,
		logger:    log,
	}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(ctx)

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := strings.TrimSpace(req.Question)
	if err := middleware.ValidateQuestion(question); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("chat question received",
		zap.String("session_id", sessionID),
		zap.Int("question_len", len(question)),
	)

	answer := h.responder.Respond(ctx, sessionID, question)

	writeJSON(w, http.StatusOK, model.ChatResponse{
		Success: true,
		Answer:  answer,
	})
}

// ChatStream handles POST /api/chat/stream. Each model fragment is written
// as an SSE data event as soon as it arrives; the stream ends with [DONE],
// or with a single [ERROR] event in place of further fragments.
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(ctx)

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := strings.TrimSpace(req.Question)
	if err := middleware.ValidateQuestion(question); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	err := h.responder.RespondStream(ctx, sessionID, question, func(fragment string) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return sendSSEData(w, flusher, fragment)
	})

	var streamErr *responder.StreamError
	switch {
	case errors.As(err, &streamErr):
		sendSSEData(w, flusher, "[ERROR] "+streamErr.Answer)
	case err != nil:
		// Client disconnected mid-stream; nothing more to write.
		h.logger.Info("stream aborted",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	default:
		sendSSEData(w, flusher, "[DONE]")
	}
}

// sendSSEData writes one SSE data event. Multi-line payloads become multiple
// data: lines within the same event, per the SSE framing rules.
func sendSSEData(w http.ResponseWriter, flusher http.Flusher, payload string) error {
	for _, line := range strings.Split(payload, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "\n"); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
