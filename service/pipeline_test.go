package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityapawar327/ongc-assistant-be/database"
	"github.com/adityapawar327/ongc-assistant-be/types"
)

// bagEmbedder produces deterministic term-count vectors so the whole
// ingest-then-query pipeline can run against the real in-memory index.
type bagEmbedder struct {
	vocab []string
}

func (b bagEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	vector := make([]float32, len(b.vocab))
	for i, word := range b.vocab {
		vector[i] = float32(strings.Count(lower, word))
	}
	return vector, nil
}

func (b bagEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := b.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vector
	}
	return out, nil
}

func TestIngestThenQueryRoundTrip(t *testing.T) {
	ctx := context.Background()
	embedder := bagEmbedder{vocab: []string{"safety", "policy", "hard", "hats", "cafeteria", "menu"}}
	store := database.NewMemoryStore(embedder)

	chunker := NewChunker(DefaultChunkingConfig)
	files := NewFileService(t.TempDir(), NewDocumentExtractor(), chunker, store)

	added, err := files.IngestDocuments(ctx, []types.Document{
		{
			Content:  "Safety policy requires hard hats on site.",
			Metadata: types.DocumentMetadata{Source: "policy.txt", Type: types.DocumentTypeText},
		},
		{
			Content:  "The cafeteria menu changes weekly.",
			Metadata: types.DocumentMetadata{Source: "canteen.txt", Type: types.DocumentTypeText},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	ai := &fakeAI{answer: "Hard hats are required on site."}
	rag := NewRAGService(ai, store, NewKnowledgeService(), NewConversationStore())

	result, err := rag.Query(ctx, types.QueryRequest{
		Question:      "hard hats",
		AccuracyMode:  types.AccuracyBalanced,
		ContextWindow: types.ContextWindowHigh,
	})
	require.NoError(t, err)

	assert.True(t, result.HasContext)
	assert.GreaterOrEqual(t, result.Confidence, 50)
	require.Len(t, result.Sources, 1, "lexical filter should keep only the matching chunk")
	assert.Equal(t, "policy.txt", result.Sources[0].Metadata.Source)
	assert.Contains(t, result.Sources[0].Content, "hard hats")

	sources, err := files.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "policy.txt", sources[0].Name)
	assert.Equal(t, 1, sources[0].ChunkCount)

	require.NoError(t, files.ClearAll(ctx))
	cleared, err := files.ListSources(ctx)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}
