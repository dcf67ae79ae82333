package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/medassist-ai/rag-chatbot/internal/memory"
	"github.com/medassist-ai/rag-chatbot/internal/middleware"
	"github.com/medassist-ai/rag-chatbot/internal/model"
	"github.com/medassist-ai/rag-chatbot/pkg/logger"
)

// HistoryHandler serves a session's transcript and clears it.
type HistoryHandler struct {
	memory *memory.Memory
	logger *logger.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(mem *memory.Memory, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		memory: mem,
		logger: log,
	}
}

// History handles GET /api/history.
func (h *HistoryHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(ctx)

	messages := h.memory.GetHistory(ctx, sessionID)
	if messages == nil {
		messages = []model.ConversationTurn{}
	}

	writeJSON(w, http.StatusOK, model.HistoryResponse{
		Success:  true,
		Messages: messages,
	})
}

// Clear handles POST /api/clear.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(ctx)

	if err := h.memory.Clear(ctx, sessionID); err != nil {
		h.logger.Error("failed to clear session",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to clear conversation history")
		return
	}

	h.logger.Info("conversation history cleared", zap.String("session_id", sessionID))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Conversation history cleared",
	})
}
