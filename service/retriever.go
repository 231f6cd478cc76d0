package service

import (
	"context"
	"sort"
	"strings"

	"github.com/adityapawar327/ongc-assistant-be/database"
	"github.com/adityapawar327/ongc-assistant-be/types"
)

// overfetchFactor controls how many extra semantic candidates are
// pulled before the lexical filter and rerank narrow them down.
const overfetchFactor = 3

// ResolveK maps a context window setting to the number of chunks
// retrieved for it.
func ResolveK(window types.ContextWindow) int {
	switch window {
	case types.ContextWindowShort:
		return 4
	case types.ContextWindowHigh:
		return 15
	default:
		return 8
	}
}

// Retriever combines semantic search with a lexical precision filter.
// Pure vector similarity can surface semantically adjacent but
// keyword-irrelevant passages; the term filter guards against that,
// with a fallback so an overly strict filter never destroys recall.
type Retriever struct {
	store database.VectorStore
}

func NewRetriever(store database.VectorStore) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns at most ResolveK(window) candidates for the
// question, reranked by lexical term overlap.
func (r *Retriever) Retrieve(ctx context.Context, question string, window types.ContextWindow) ([]types.RetrievalCandidate, error) {
	k := ResolveK(window)

	candidates, err := r.store.Search(ctx, question, k*overfetchFactor)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	terms := queryTerms(question)
	filtered := make([]types.RetrievalCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		content := strings.ToLower(candidate.Chunk.Content)
		for _, term := range terms {
			if strings.Contains(content, term) {
				filtered = append(filtered, candidate)
				break
			}
		}
	}
	if len(filtered) == 0 {
		filtered = candidates
	}

	reranked := Rerank(filtered, question)
	if len(reranked) > k {
		reranked = reranked[:k]
	}
	return reranked, nil
}

// Rerank orders candidates by the number of distinct query terms found
// in their content, breaking near-equal embedding scores with literal
// term presence. Ties keep their prior relative order.
func Rerank(candidates []types.RetrievalCandidate, question string) []types.RetrievalCandidate {
	terms := queryTerms(question)

	reranked := make([]types.RetrievalCandidate, len(candidates))
	copy(reranked, candidates)
	for i := range reranked {
		content := strings.ToLower(reranked[i].Chunk.Content)
		score := 0
		for _, term := range terms {
			if strings.Contains(content, term) {
				score++
			}
		}
		reranked[i].LexicalScore = score
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].LexicalScore > reranked[j].LexicalScore
	})
	return reranked
}

// queryTerms lowercases and whitespace-splits the question, dropping
// duplicate terms. Matching stays raw substring containment, no
// stemming.
func queryTerms(question string) []string {
	fields := strings.Fields(strings.ToLower(question))
	seen := make(map[string]bool, len(fields))
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if !seen[field] {
			seen[field] = true
			terms = append(terms, field)
		}
	}
	return terms
}
