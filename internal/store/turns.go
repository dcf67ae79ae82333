package store

import (
	"context"
	"fmt"

	"github.com/medassist-ai/rag-chatbot/internal/model"
)

// AppendTurn records one immutable conversation turn.
func (s *Store) AppendTurn(ctx context.Context, turn model.ConversationTurn) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO conversations (session_id, role, content, timestamp)
VALUES (?, ?, ?, ?)
`, turn.SessionID, string(turn.Role), turn.Content, turn.Timestamp)
	if err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

// ListTurns returns a session's turns in creation order. A positive limit
// caps the result to the earliest N turns; conversation truncation keeps
// old context, unlike the feedback and visit listings which surface newest
// rows first.
func (s *Store) ListTurns(ctx context.Context, sessionID string, limit int) ([]model.ConversationTurn, error) {
	query := `
SELECT session_id, role, content, timestamp
FROM conversations
WHERE session_id = ?
ORDER BY id ASC
`
	args := []any{sessionID}
	if limit > 0 {
		query += "LIMIT ?\n"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []model.ConversationTurn
	for rows.Next() {
		var t model.ConversationTurn
		var role string
		if err := rows.Scan(&t.SessionID, &role, &t.Content, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Role = model.Role(role)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list turns rows: %w", err)
	}
	return turns, nil
}

// DeleteTurns removes all turns for a session. No-op when none exist.
func (s *Store) DeleteTurns(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete turns: %w", err)
	}
	return nil
}
