package model

// Role represents the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is a single immutable message in a session's transcript.
// Timestamp is an ISO-8601 string, matching the on-disk representation.
type ConversationTurn struct {
	SessionID string `json:"session_id,omitempty"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatRequest is the body of POST /api/chat and POST /api/chat/stream.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the body returned by POST /api/chat.
type ChatResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HistoryResponse is the body returned by GET /api/history.
type HistoryResponse struct {
	Success  bool               `json:"success"`
	Messages []ConversationTurn `json:"messages"`
}
