package responder

import (
	"fmt"
	"strings"

	"github.com/medassist-ai/rag-chatbot/internal/retrieval"
)

// Short prompt keeps time-to-first-token down.
const systemInstruction = "You are a medical information assistant. Use the retrieved context below to answer. " +
	"Be concise and accurate. If context is not relevant, use general knowledge. " +
	"If you don't know, say so. Remind users to consult healthcare professionals for medical advice."

// systemPrompt splices the retrieved passages into the system instruction.
func systemPrompt(passages []retrieval.Passage) string {
	if len(passages) == 0 {
		return systemInstruction
	}
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	return systemInstruction + "\n\nContext:\n" + strings.Join(texts, "\n\n")
}

// augmentQuery prefixes the question with the session transcript so the
// model sees recent context. The raw question is used when there is none.
func augmentQuery(transcript, question string) string {
	if transcript == "" {
		return question
	}
	return fmt.Sprintf("Previous conversation:\n%s\n\nCurrent question: %s", transcript, question)
}

// errorAnswer turns an upstream failure into a conversational reply. The
// message is surfaced verbatim, which is fine for an internal tool.
func errorAnswer(err error) string {
	return fmt.Sprintf("Sorry, I encountered an error: %v", err)
}
