package database

import (
	"context"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// Embedder converts text into an embedding vector. Implementations live
// in the service package (Gemini, OpenAI).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore is the embedding-similarity index the retrieval pipeline
// runs against. Search returns candidates ordered by descending
// relevance score; a store that has never been added to returns an
// empty result, not an error.
type VectorStore interface {
	// Add indexes the given chunks and returns how many were added.
	// Every call appends; duplicate content is a caller concern.
	Add(ctx context.Context, chunks []types.Chunk) (int, error)

	// Search returns up to k candidates for the query, best first.
	Search(ctx context.Context, query string, k int) ([]types.RetrievalCandidate, error)

	// ListSources aggregates the indexed chunks per source document.
	ListSources(ctx context.Context) ([]types.IndexedSource, error)

	// Clear removes every indexed chunk.
	Clear(ctx context.Context) error
}
