package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/medassist-ai/rag-chatbot/internal/middleware"
	"github.com/medassist-ai/rag-chatbot/internal/model"
	"github.com/medassist-ai/rag-chatbot/internal/store"
	"github.com/medassist-ai/rag-chatbot/pkg/logger"
	"github.com/medassist-ai/rag-chatbot/pkg/metrics"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Medical Assistant</title></head>
<body>
<h1>Medical Assistant API</h1>
<p>POST /api/chat with {"question": "..."} to ask a question.</p>
</body>
</html>
`

// RootHandler serves the landing page and records visit analytics.
type RootHandler struct {
	store  *store.Store
	logger *logger.Logger
}

// NewRootHandler creates a new root handler.
func NewRootHandler(st *store.Store, log *logger.Logger) *RootHandler {
	return &RootHandler{
		store:  st,
		logger: log,
	}
}

// Index handles GET /. Visit recording is fire-and-forget: it runs on its
// own context and can never delay or fail the page response.
func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	visit := model.Visit{
		SessionID: middleware.GetSessionID(r.Context()),
		VisitedAt: time.Now().UTC().Format(time.RFC3339Nano),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.store.AppendVisit(ctx, visit); err != nil {
			h.logger.Warn("failed to record visit", zap.Error(err))
			return
		}
		metrics.VisitsTotal.Inc()
	}()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexPage))
}
