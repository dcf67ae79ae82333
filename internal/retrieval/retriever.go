// Package retrieval maps query text to the top-k most relevant passages from
// a pre-populated vector index. Index construction and ingestion are out of
// scope; this package only reads.
package retrieval

import "context"

// Passage is one retrieved context snippet with its relevance score.
type Passage struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Embedder turns text into a vector in the same space the index was built in.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever returns the top-k passages for a query, most relevant first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Passage, error)
}
