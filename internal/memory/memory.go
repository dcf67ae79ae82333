// Package memory manages per-session conversation history. The durable store
// is the source of truth; the in-process cache is a performance accelerant
// and a fallback when the store is unreachable.
package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medassist-ai/rag-chatbot/internal/model"
	"github.com/medassist-ai/rag-chatbot/pkg/logger"
	"github.com/medassist-ai/rag-chatbot/pkg/metrics"
)

// TurnStore is the slice of the durable store the memory layer needs.
type TurnStore interface {
	AppendTurn(ctx context.Context, turn model.ConversationTurn) error
	ListTurns(ctx context.Context, sessionID string, limit int) ([]model.ConversationTurn, error)
	DeleteTurns(ctx context.Context, sessionID string) error
}

// DefaultMaxHistory is the default number of user+assistant pairs kept in
// the per-session cache.
const DefaultMaxHistory = 10

// Memory is the single authority for reading and writing a session's
// transcript. The cache holds at most 2*maxHistory turns per session
// (one pair per exchange), evicting oldest first.
type Memory struct {
	store      TurnStore
	logger     *logger.Logger
	maxHistory int
	cache      *sessionCache
}

// New creates a Memory backed by the given durable store. maxHistory <= 0
// falls back to DefaultMaxHistory.
func New(store TurnStore, maxHistory int, log *logger.Logger) *Memory {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	if log == nil {
		log = logger.Global()
	}
	return &Memory{
		store:      store,
		logger:     log,
		maxHistory: maxHistory,
		cache:      newSessionCache(),
	}
}

// AddMessage records one turn: durable store first, then the cache. Store
// failures are downgraded to warnings so the caller still gets an answer
// even when history can't be saved. The store write happens outside the
// cache lock so slow I/O never serializes unrelated sessions.
func (m *Memory) AddMessage(ctx context.Context, sessionID string, role model.Role, content string) {
	turn := model.ConversationTurn{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := m.store.AppendTurn(ctx, turn); err != nil {
		m.logger.Warn("failed to persist turn",
			zap.String("session_id", sessionID),
			zap.String("role", string(role)),
			zap.Error(err),
		)
	}

	m.cache.append(sessionID, turn, 2*m.maxHistory)
	metrics.TurnsTotal.WithLabelValues(string(role)).Inc()
}

// GetHistory returns the session's transcript in chronological order. The
// durable store is preferred even when the cache is warm, so edits made out
// of process are always reflected; the cache serves only when the store is
// empty or unreachable.
func (m *Memory) GetHistory(ctx context.Context, sessionID string) []model.ConversationTurn {
	turns, err := m.store.ListTurns(ctx, sessionID, 0)
	if err != nil {
		m.logger.Warn("failed to read history from store, using cache",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return m.cache.snapshot(sessionID)
	}
	if len(turns) > 0 {
		return turns
	}
	return m.cache.snapshot(sessionID)
}

// FormattedTranscript renders the last maxTurns user+assistant exchanges as
// "Human: ..." / "Assistant: ..." lines for prompt injection. This is a soft
// context window: individual turns are spliced verbatim, however long.
func (m *Memory) FormattedTranscript(ctx context.Context, sessionID string, maxTurns int) string {
	history := m.GetHistory(ctx, sessionID)
	if len(history) == 0 {
		return ""
	}

	keep := maxTurns * 2
	if keep > 0 && len(history) > keep {
		history = history[len(history)-keep:]
	}

	lines := make([]string, 0, len(history))
	for _, turn := range history {
		speaker := "Assistant"
		if turn.Role == model.RoleUser {
			speaker = "Human"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, turn.Content))
	}
	return strings.Join(lines, "\n")
}

// Clear drops the session from the cache and deletes its durable turns.
// Idempotent.
func (m *Memory) Clear(ctx context.Context, sessionID string) error {
	m.cache.drop(sessionID)

	if err := m.store.DeleteTurns(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session %s: %w", sessionID, err)
	}
	return nil
}
