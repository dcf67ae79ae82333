package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/medassist-ai/rag-chatbot/internal/middleware"
	"github.com/medassist-ai/rag-chatbot/internal/model"
	"github.com/medassist-ai/rag-chatbot/internal/store"
	"github.com/medassist-ai/rag-chatbot/pkg/logger"
)

// FeedbackHandler handles reaction upserts and the admin listings.
type FeedbackHandler struct {
	store  *store.Store
	logger *logger.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(st *store.Store, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		store:  st,
		logger: log,
	}
}

// React handles POST /api/reaction. A request with an empty reaction value
// deletes any stored reaction for the message; otherwise the reaction is
// upserted, one row per (session, message).
func (h *FeedbackHandler) React(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(ctx)

	var req model.ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessageID(req.MessageID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateReaction(req.Reaction); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Reaction == "" {
		if err := h.store.DeleteReaction(ctx, sessionID, req.MessageID); err != nil {
			h.logger.Error("failed to delete reaction", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to remove reaction")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	err := h.store.UpsertReaction(ctx, model.Reaction{
		SessionID:      sessionID,
		MessageID:      req.MessageID,
		Reaction:       model.ReactionValue(req.Reaction),
		MessageContent: req.MessageContent,
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		h.logger.Error("failed to save reaction", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save reaction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListFeedback handles GET /api/feedback (admin).
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	reactions, err := h.store.ListReactions(r.Context(), parseLimit(r, 100))
	if err != nil {
		h.logger.Error("failed to list reactions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list feedback")
		return
	}
	if reactions == nil {
		reactions = []model.Reaction{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"feedback": reactions,
	})
}

// ListVisits handles GET /api/visits (admin).
func (h *FeedbackHandler) ListVisits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visits, err := h.store.ListVisits(ctx, parseLimit(r, 100))
	if err != nil {
		h.logger.Error("failed to list visits", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list visits")
		return
	}
	if visits == nil {
		visits = []model.Visit{}
	}

	counts, err := h.store.VisitCounts(ctx)
	if err != nil {
		h.logger.Error("failed to count visits", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to count visits")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"visits":  visits,
		"counts":  counts,
	})
}

func parseLimit(r *http.Request, fallback int) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 1000 {
			return parsed
		}
	}
	return fallback
}
