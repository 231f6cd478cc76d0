package database

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// MemoryStore is an in-memory vector index using brute-force cosine
// similarity. Embedding computation is delegated to the injected
// Embedder; the index itself is initialized lazily on the first Add.
// Nothing is persisted across process restarts.
type MemoryStore struct {
	mu         sync.RWMutex
	embedder   Embedder
	chunks     []types.Chunk
	embeddings [][]float32
}

func NewMemoryStore(embedder Embedder) *MemoryStore {
	return &MemoryStore{embedder: embedder}
}

func (s *MemoryStore) Add(ctx context.Context, chunks []types.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	// Embed outside the lock; searches keep running against the
	// current index and never observe a partial append.
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	s.mu.Lock()
	s.chunks = append(s.chunks, chunks...)
	s.embeddings = append(s.embeddings, embeddings...)
	s.mu.Unlock()

	return len(chunks), nil
}

func (s *MemoryStore) Search(ctx context.Context, query string, k int) ([]types.RetrievalCandidate, error) {
	s.mu.RLock()
	empty := len(s.chunks) == 0
	s.mu.RUnlock()
	if empty {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]types.RetrievalCandidate, 0, len(s.chunks))
	for i := range s.chunks {
		distance := 1 - cosineSimilarity(queryVec, s.embeddings[i])
		candidates = append(candidates, types.RetrievalCandidate{
			Chunk:          s.chunks[i],
			RelevanceScore: relevanceFromDistance(float64(distance)),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RelevanceScore > candidates[j].RelevanceScore
	})

	if k > 0 && k < len(candidates) {
		candidates = candidates[:k]
	}
	return candidates, nil
}

func (s *MemoryStore) ListSources(ctx context.Context) ([]types.IndexedSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregateSources(s.chunks), nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	s.embeddings = nil
	return nil
}

// relevanceFromDistance converts a raw distance into a relevance score,
// clamped to [0,1].
func relevanceFromDistance(distance float64) float64 {
	score := 1 - distance
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// aggregateSources folds chunks into one summary entry per source,
// keeping the earliest indexing time seen.
func aggregateSources(chunks []types.Chunk) []types.IndexedSource {
	byName := make(map[string]*types.IndexedSource)
	var order []string
	for _, chunk := range chunks {
		name := chunk.Metadata.Source
		entry, ok := byName[name]
		if !ok {
			entry = &types.IndexedSource{
				Name:           name,
				Type:           chunk.Metadata.Type,
				FirstIndexedAt: chunk.Metadata.CreatedAt,
			}
			byName[name] = entry
			order = append(order, name)
		}
		entry.ChunkCount++
		if chunk.Metadata.CreatedAt.Before(entry.FirstIndexedAt) {
			entry.FirstIndexedAt = chunk.Metadata.CreatedAt
		}
	}

	sources := make([]types.IndexedSource, 0, len(order))
	for _, name := range order {
		sources = append(sources, *byName[name])
	}
	return sources
}
