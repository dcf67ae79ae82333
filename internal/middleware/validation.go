package middleware

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxQuestionLen bounds inbound questions (~100KB).
const MaxQuestionLen = 100000

// ValidateQuestion validates an inbound chat question.
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("please provide a question")
	}
	if len(question) > MaxQuestionLen {
		return errors.New("question exceeds maximum length")
	}
	if !utf8.ValidString(question) {
		return errors.New("question must be valid UTF-8")
	}
	return nil
}

// ValidateReaction validates a feedback reaction value. Empty is allowed:
// it signals deletion.
func ValidateReaction(reaction string) error {
	switch reaction {
	case "", "like", "dislike":
		return nil
	default:
		return errors.New("reaction must be 'like' or 'dislike'")
	}
}

// ValidateMessageID validates a client-assigned message identifier.
func ValidateMessageID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("message_id is required")
	}
	if len(id) > 128 {
		return errors.New("message_id exceeds maximum length")
	}
	return nil
}
