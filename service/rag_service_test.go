package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// fakeAI returns a canned answer and counts how often it was invoked.
type fakeAI struct {
	answer    string
	fragments []string
	err       error
	calls     int
}

func (f *fakeAI) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeAI) GenerateStream(ctx context.Context, prompt string, cfg GenerationConfig, handler types.StreamHandler) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	for _, fragment := range f.fragments {
		handler(fragment)
	}
	return nil
}

func newTestRAGService(ai AIService, store *fakeVectorStore) (*RAGService, *ConversationStore) {
	conversations := NewConversationStore()
	return NewRAGService(ai, store, NewKnowledgeService(), conversations), conversations
}

func TestQueryEmptyQuestion(t *testing.T) {
	rag, _ := newTestRAGService(&fakeAI{}, &fakeVectorStore{})

	_, err := rag.Query(context.Background(), types.QueryRequest{Question: "   "})

	assert.ErrorIs(t, err, types.ErrEmptyQuestion)
}

func TestQueryStrictWithoutDocumentsSkipsModel(t *testing.T) {
	ai := &fakeAI{answer: "should never be used"}
	rag, _ := newTestRAGService(ai, &fakeVectorStore{})

	result, err := rag.Query(context.Background(), types.QueryRequest{
		Question:     "What is the drilling schedule?",
		AccuracyMode: types.AccuracyStrict,
	})

	require.NoError(t, err)
	assert.Equal(t, NoDocumentsAnswer, result.Answer)
	assert.Empty(t, result.Sources)
	assert.False(t, result.HasContext)
	assert.Equal(t, 0, result.Confidence)
	assert.Equal(t, 0, ai.calls, "strict mode with no documents must not call the model")
}

func TestQueryAnswersWithSources(t *testing.T) {
	store := &fakeVectorStore{candidates: []types.RetrievalCandidate{
		candidate("All workers must wear hard hats on site. Violations are reported.", 0.9),
	}}
	ai := &fakeAI{answer: "Hard hats are mandatory on site."}
	rag, conversations := newTestRAGService(ai, store)

	result, err := rag.Query(context.Background(), types.QueryRequest{
		Question:     "hard hats",
		AccuracyMode: types.AccuracyBalanced,
	})

	require.NoError(t, err)
	assert.Equal(t, "Hard hats are mandatory on site.", result.Answer)
	assert.True(t, result.HasContext)
	assert.GreaterOrEqual(t, result.Confidence, 50)

	require.Len(t, result.Sources, 1)
	assert.Equal(t, 1, result.Sources[0].ID)
	assert.Equal(t, "doc.txt", result.Sources[0].Metadata.Source)
	assert.Equal(t, "All workers must wear hard hats on site", result.Sources[0].Preview)

	history := conversations.Get("default")
	require.Len(t, history, 2)
	assert.Equal(t, types.RoleUser, history[0].Role)
	assert.Equal(t, "hard hats", history[0].Content)
	assert.Equal(t, types.RoleAssistant, history[1].Role)
}

func TestQueryAuthErrorMapping(t *testing.T) {
	store := &fakeVectorStore{candidates: []types.RetrievalCandidate{
		candidate("relevant helmet text", 0.9),
	}}
	ai := &fakeAI{err: errors.New("request failed with status 401")}
	rag, conversations := newTestRAGService(ai, store)

	_, err := rag.Query(context.Background(), types.QueryRequest{Question: "helmet"})

	assert.ErrorIs(t, err, types.ErrModelAuth)
	assert.Contains(t, err.Error(), ".env")
	assert.Empty(t, conversations.Get("default"), "failed queries must not touch history")
}

func TestQueryGenericModelFailure(t *testing.T) {
	store := &fakeVectorStore{candidates: []types.RetrievalCandidate{
		candidate("relevant helmet text", 0.9),
	}}
	ai := &fakeAI{err: errors.New("connection reset by peer")}
	rag, _ := newTestRAGService(ai, store)

	_, err := rag.Query(context.Background(), types.QueryRequest{Question: "helmet"})

	assert.ErrorIs(t, err, types.ErrModelFailure)
}

func TestQueryRetrievalFailureDegradesToNoContext(t *testing.T) {
	store := &fakeVectorStore{searchErr: errors.New("store unavailable")}
	ai := &fakeAI{answer: "general answer"}
	rag, _ := newTestRAGService(ai, store)

	result, err := rag.Query(context.Background(), types.QueryRequest{
		Question:     "helmet rules",
		AccuracyMode: types.AccuracyBalanced,
	})

	require.NoError(t, err)
	assert.Equal(t, "general answer", result.Answer)
	assert.False(t, result.HasContext)
	assert.Equal(t, 0, result.Confidence)
}

func TestStreamQueryDeliversFragmentsInOrder(t *testing.T) {
	store := &fakeVectorStore{candidates: []types.RetrievalCandidate{
		candidate("helmet safety passage", 0.9),
	}}
	ai := &fakeAI{fragments: []string{"Hard ", "hats ", "required."}}
	rag, conversations := newTestRAGService(ai, store)

	var received []string
	sources, err := rag.StreamQuery(context.Background(), "helmet", func(fragment string) {
		received = append(received, fragment)
	}, types.LanguageEnglish, types.AccuracyBalanced, types.ContextWindowMedium)

	require.NoError(t, err)
	assert.Equal(t, []string{"Hard ", "hats ", "required."}, received)
	require.Len(t, sources, 1)
	assert.Equal(t, "doc.txt", sources[0].Metadata.Source)

	assert.Empty(t, conversations.Get("default"), "streaming must not update history")
}

func TestStreamQueryEmptyQuestion(t *testing.T) {
	rag, _ := newTestRAGService(&fakeAI{}, &fakeVectorStore{})

	_, err := rag.StreamQuery(context.Background(), "", func(string) {}, types.LanguageEnglish, types.AccuracyBalanced, types.ContextWindowMedium)

	assert.ErrorIs(t, err, types.ErrEmptyQuestion)
}

func TestStreamQueryModelError(t *testing.T) {
	store := &fakeVectorStore{candidates: []types.RetrievalCandidate{
		candidate("helmet passage", 0.9),
	}}
	ai := &fakeAI{err: errors.New("PERMISSION_DENIED: bad key")}
	rag, _ := newTestRAGService(ai, store)

	_, err := rag.StreamQuery(context.Background(), "helmet", func(string) {}, types.LanguageEnglish, types.AccuracyBalanced, types.ContextWindowMedium)

	assert.ErrorIs(t, err, types.ErrModelAuth)
}

func TestClearHistory(t *testing.T) {
	store := &fakeVectorStore{candidates: []types.RetrievalCandidate{
		candidate("helmet passage", 0.9),
	}}
	ai := &fakeAI{answer: "answer"}
	rag, conversations := newTestRAGService(ai, store)

	_, err := rag.Query(context.Background(), types.QueryRequest{
		Question:       "helmet",
		ConversationID: "c1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, conversations.Get("c1"))

	rag.ClearHistory("c1")

	assert.Empty(t, conversations.Get("c1"))
}

func TestEnrichSourcesTruncatesContent(t *testing.T) {
	long := strings.Repeat("a", 400) + ". And more."
	sources := enrichSources([]types.RetrievalCandidate{candidate(long, 0.9)})

	require.Len(t, sources, 1)
	assert.Len(t, []rune(sources[0].Content), sourcePreviewLength+3)
	assert.True(t, strings.HasSuffix(sources[0].Content, "..."))
	assert.Equal(t, strings.Repeat("a", 400), sources[0].Preview)
}
