// Package responder orchestrates one retrieval call and one generation call
// per user turn, composing conversation memory and the answer post-processor
// around an opaque retriever and chat-completion client.
package responder

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/medassist-ai/rag-chatbot/internal/llm"
	"github.com/medassist-ai/rag-chatbot/internal/memory"
	"github.com/medassist-ai/rag-chatbot/internal/model"
	"github.com/medassist-ai/rag-chatbot/internal/retrieval"
	"github.com/medassist-ai/rag-chatbot/internal/textproc"
	"github.com/medassist-ai/rag-chatbot/pkg/logger"
	"github.com/medassist-ai/rag-chatbot/pkg/metrics"
)

// Config tunes the responder.
type Config struct {
	// Model is the chat model (or Azure deployment) name.
	Model string
	// TopK is the retrieval breadth; smaller favors latency over recall.
	TopK int
	// MaxTurns is the transcript window in user+assistant exchanges.
	MaxTurns int
	// CallTimeout bounds each external retrieval/generation call.
	CallTimeout time.Duration
}

// Responder answers questions with retrieval-augmented generation.
type Responder struct {
	memory    *memory.Memory
	retriever retrieval.Retriever
	llm       llm.Client
	logger    *logger.Logger
	cfg       Config
}

// New creates a Responder. All collaborators are injected; there is no lazy
// global initialization.
func New(mem *memory.Memory, ret retrieval.Retriever, client llm.Client, cfg Config, log *logger.Logger) *Responder {
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 2
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 60 * time.Second
	}
	if log == nil {
		log = logger.Global()
	}
	return &Responder{
		memory:    mem,
		retriever: ret,
		llm:       client,
		logger:    log,
		cfg:       cfg,
	}
}

// Respond answers a question synchronously. Upstream failures become a
// conversational error answer, recorded as the assistant turn and returned
// normally; the chat surface never sees a transport-level failure.
func (r *Responder) Respond(ctx context.Context, sessionID, question string) string {
	r.memory.AddMessage(ctx, sessionID, model.RoleUser, question)

	answer, err := r.generate(ctx, sessionID, question)
	if err != nil {
		r.logger.Error("answer generation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		answer = errorAnswer(err)
	}

	r.memory.AddMessage(ctx, sessionID, model.RoleAssistant, answer)
	return answer
}

func (r *Responder) generate(ctx context.Context, sessionID, question string) (string, error) {
	transcript := r.memory.FormattedTranscript(ctx, sessionID, r.cfg.MaxTurns)
	query := augmentQuery(transcript, question)

	passages, err := r.retrieve(ctx, query)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	resp, err := r.llm.Complete(callCtx, &llm.CompletionRequest{
		Model:  r.cfg.Model,
		System: systemPrompt(passages),
		Messages: []llm.ChatMessage{
			{Role: "user", Content: query},
		},
	})
	if err != nil {
		return "", err
	}

	metrics.RecordLLMTokens(resp.Model, resp.TokensIn, resp.TokensOut)

	return textproc.Clean(resp.Content), nil
}

// StreamError reports an upstream failure during a streamed answer. Answer
// is the conversational error text that was persisted as the assistant turn;
// the transport decides how to frame it for the client.
type StreamError struct {
	Answer string
	Err    error
}

func (e *StreamError) Error() string { return e.Answer }

func (e *StreamError) Unwrap() error { return e.Err }

// RespondStream answers a question with incremental delivery: each fragment
// is handed to forward before the next is requested from the model, while
// also being accumulated. The full post-processor runs once over the
// accumulated text after the stream is exhausted, and only then is the
// assistant turn persisted.
//
// On upstream failure the remaining fragments are abandoned, the error text
// is persisted as the assistant turn, and a *StreamError carries it back so
// the caller can forward a single error-kind fragment. If ctx is cancelled
// (client disconnect) nothing is committed and ctx.Err() is returned.
func (r *Responder) RespondStream(ctx context.Context, sessionID, question string, forward func(fragment string) error) error {
	r.memory.AddMessage(ctx, sessionID, model.RoleUser, question)

	var fragments []string
	err := r.stream(ctx, sessionID, question, func(fragment string) error {
		fragments = append(fragments, fragment)
		return forward(fragment)
	})

	if err != nil {
		if ctx.Err() != nil {
			// Client disconnected: release the producer and commit nothing;
			// the partial answer is discarded.
			r.logger.Info("stream cancelled by client",
				zap.String("session_id", sessionID),
				zap.Int("fragments_discarded", len(fragments)),
			)
			return ctx.Err()
		}

		r.logger.Error("stream generation failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		answer := errorAnswer(err)
		r.memory.AddMessage(ctx, sessionID, model.RoleAssistant, answer)
		return &StreamError{Answer: answer, Err: err}
	}

	answer := textproc.CleanFragments(fragments)
	r.memory.AddMessage(ctx, sessionID, model.RoleAssistant, answer)
	return nil
}

func (r *Responder) stream(ctx context.Context, sessionID, question string, emit func(string) error) error {
	transcript := r.memory.FormattedTranscript(ctx, sessionID, r.cfg.MaxTurns)
	query := augmentQuery(transcript, question)

	passages, err := r.retrieve(ctx, query)
	if err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	start := time.Now()
	resp, err := r.llm.CompleteStream(callCtx, &llm.CompletionRequest{
		Model:  r.cfg.Model,
		System: systemPrompt(passages),
		Messages: []llm.ChatMessage{
			{Role: "user", Content: query},
		},
	}, func(fragment string, _ int) error {
		return emit(fragment)
	})
	if err != nil {
		metrics.RecordLLMStream(r.cfg.Model, "error", time.Since(start).Seconds(), 0, 0)
		return err
	}

	metrics.RecordLLMStream(resp.Model, "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)
	return nil
}

// retrieve runs the retrieval call under the configured timeout, retrying
// once when the call itself timed out but the request is still alive.
func (r *Responder) retrieve(ctx context.Context, query string) ([]retrieval.Passage, error) {
	passages, err := r.retrieveOnce(ctx, query)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		r.logger.Warn("retrieval timed out, retrying once", zap.Error(err))
		passages, err = r.retrieveOnce(ctx, query)
	}
	return passages, err
}

func (r *Responder) retrieveOnce(ctx context.Context, query string) ([]retrieval.Passage, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	start := time.Now()
	passages, err := r.retriever.Retrieve(callCtx, query, r.cfg.TopK)
	metrics.RecordRetrieval(time.Since(start).Seconds(), err == nil)
	return passages, err
}
