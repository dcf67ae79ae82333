package retrieval

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGVectorRetriever reads a pre-built pgvector index over the passages table.
type PGVectorRetriever struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

// NewPGVectorRetriever connects to the index database and verifies the
// passages table is reachable.
func NewPGVectorRetriever(ctx context.Context, databaseURL string, embedder Embedder) (*PGVectorRetriever, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect index database: %w", err)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM passages`).Scan(&count); err != nil {
		pool.Close()
		return nil, fmt.Errorf("passages table not available (index must be built first): %w", err)
	}

	return &PGVectorRetriever{pool: pool, embedder: embedder}, nil
}

// Retrieve embeds the query and returns the k nearest passages by cosine
// distance, most relevant first.
func (r *PGVectorRetriever) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	if k <= 0 {
		k = 1
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, content, 1 - (embedding <=> $1::vector) AS score
FROM passages
ORDER BY embedding <=> $1::vector
LIMIT $2`,
		vectorLiteral(vector), k,
	)
	if err != nil {
		return nil, fmt.Errorf("query passages: %w", err)
	}
	defer rows.Close()

	passages := make([]Passage, 0, k)
	for rows.Next() {
		var p Passage
		if err := rows.Scan(&p.ID, &p.Text, &p.Score); err != nil {
			return nil, fmt.Errorf("scan passage: %w", err)
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passages: %w", err)
	}
	return passages, nil
}

// Ping verifies the index database is reachable.
func (r *PGVectorRetriever) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the connection pool.
func (r *PGVectorRetriever) Close() {
	r.pool.Close()
}

// vectorLiteral renders a pgvector input literal: "[0.1,0.2,...]".
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
