package model

// ReactionValue is a user feedback reaction on an assistant message.
type ReactionValue string

const (
	ReactionLike    ReactionValue = "like"
	ReactionDislike ReactionValue = "dislike"
)

// MaxReactionContentLen caps the message snapshot stored with a reaction.
const MaxReactionContentLen = 2000

// Reaction is user feedback on a single assistant message. Unique per
// (session_id, message_id); a repeat write overwrites the previous value.
type Reaction struct {
	SessionID      string        `json:"session_id"`
	MessageID      string        `json:"message_id"`
	Reaction       ReactionValue `json:"reaction"`
	MessageContent string        `json:"message_content,omitempty"`
	Timestamp      string        `json:"timestamp"`
}

// ReactionRequest is the body of POST /api/reaction. An empty Reaction
// deletes any stored reaction for the message.
type ReactionRequest struct {
	MessageID      string `json:"message_id"`
	Reaction       string `json:"reaction,omitempty"`
	MessageContent string `json:"message_content,omitempty"`
}

// Visit is one append-only page-load analytics record.
type Visit struct {
	SessionID string `json:"session_id"`
	VisitedAt string `json:"visited_at"`
	UserAgent string `json:"user_agent,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
}

// VisitCounts summarizes recorded visits.
type VisitCounts struct {
	Total  int `json:"total"`
	Unique int `json:"unique"`
}
