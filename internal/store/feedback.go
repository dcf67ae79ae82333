package store

import (
	"context"
	"fmt"

	"github.com/medassist-ai/rag-chatbot/internal/model"
)

// UpsertReaction inserts or replaces the reaction for (session_id, message_id).
func (s *Store) UpsertReaction(ctx context.Context, r model.Reaction) error {
	if len(r.MessageContent) > model.MaxReactionContentLen {
		r.MessageContent = r.MessageContent[:model.MaxReactionContentLen]
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO reactions (session_id, message_id, reaction, message_content, timestamp)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (session_id, message_id) DO UPDATE SET
    reaction = excluded.reaction,
    message_content = excluded.message_content,
    timestamp = excluded.timestamp
`, r.SessionID, r.MessageID, string(r.Reaction), r.MessageContent, r.Timestamp)
	if err != nil {
		return fmt.Errorf("upsert reaction: %w", err)
	}
	return nil
}

// DeleteReaction removes the reaction for (session_id, message_id), if any.
func (s *Store) DeleteReaction(ctx context.Context, sessionID, messageID string) error {
	_, err := s.db.ExecContext(ctx, `
DELETE FROM reactions WHERE session_id = ? AND message_id = ?
`, sessionID, messageID)
	if err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	return nil
}

// ListReactions returns the most recent reactions, newest first.
func (s *Store) ListReactions(ctx context.Context, limit int) ([]model.Reaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, message_id, reaction, message_content, timestamp
FROM reactions
ORDER BY id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	defer rows.Close()

	var reactions []model.Reaction
	for rows.Next() {
		var r model.Reaction
		var value string
		if err := rows.Scan(&r.SessionID, &r.MessageID, &value, &r.MessageContent, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		r.Reaction = model.ReactionValue(value)
		reactions = append(reactions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reactions rows: %w", err)
	}
	return reactions, nil
}

// AppendVisit records one page-load event.
func (s *Store) AppendVisit(ctx context.Context, v model.Visit) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO visits (session_id, visited_at, user_agent, referrer)
VALUES (?, ?, ?, ?)
`, v.SessionID, v.VisitedAt, v.UserAgent, v.Referrer)
	if err != nil {
		return fmt.Errorf("append visit: %w", err)
	}
	return nil
}

// ListVisits returns the most recent visits, newest first.
func (s *Store) ListVisits(ctx context.Context, limit int) ([]model.Visit, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, visited_at, user_agent, referrer
FROM visits
ORDER BY id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []model.Visit
	for rows.Next() {
		var v model.Visit
		if err := rows.Scan(&v.SessionID, &v.VisitedAt, &v.UserAgent, &v.Referrer); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list visits rows: %w", err)
	}
	return visits, nil
}

// VisitCounts returns total visit rows and the number of distinct sessions.
func (s *Store) VisitCounts(ctx context.Context) (model.VisitCounts, error) {
	var counts model.VisitCounts
	row := s.db.QueryRowContext(ctx, `
SELECT COUNT(*), COUNT(DISTINCT session_id) FROM visits
`)
	if err := row.Scan(&counts.Total, &counts.Unique); err != nil {
		return model.VisitCounts{}, fmt.Errorf("visit counts: %w", err)
	}
	return counts, nil
}
