package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityapawar327/ongc-assistant-be/service"
	"github.com/adityapawar327/ongc-assistant-be/types"
)

type stubAI struct {
	answer string
}

func (s *stubAI) Generate(ctx context.Context, prompt string, cfg service.GenerationConfig) (string, error) {
	return s.answer, nil
}

func (s *stubAI) GenerateStream(ctx context.Context, prompt string, cfg service.GenerationConfig, handler types.StreamHandler) error {
	handler(s.answer)
	return nil
}

type stubStore struct {
	candidates []types.RetrievalCandidate
}

func (s *stubStore) Add(ctx context.Context, chunks []types.Chunk) (int, error) {
	return len(chunks), nil
}

func (s *stubStore) Search(ctx context.Context, query string, k int) ([]types.RetrievalCandidate, error) {
	return s.candidates, nil
}

func (s *stubStore) ListSources(ctx context.Context) ([]types.IndexedSource, error) {
	return nil, nil
}

func (s *stubStore) Clear(ctx context.Context) error {
	return nil
}

func newTestRouter(ai *stubAI, store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rag := service.NewRAGService(ai, store, service.NewKnowledgeService(), service.NewConversationStore())
	chat := NewChatHandler(rag)

	router := gin.New()
	router.POST("/chat/query", chat.HandleQuery)
	router.POST("/chat/stream", chat.HandleStream)
	router.POST("/chat/history/clear", chat.HandleClearHistory)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleQuerySuccess(t *testing.T) {
	store := &stubStore{candidates: []types.RetrievalCandidate{{
		Chunk: types.Chunk{
			Content:  "Hard hats are mandatory on every site.",
			Metadata: types.ChunkMetadata{DocumentMetadata: types.DocumentMetadata{Source: "safety.txt", Type: types.DocumentTypeText}},
		},
		RelevanceScore: 0.9,
	}}}
	router := newTestRouter(&stubAI{answer: "Hard hats are required."}, store)

	rec := postJSON(t, router, "/chat/query", types.QueryRequest{Question: "hard hats"})

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.QueryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Hard hats are required.", result.Answer)
	assert.True(t, result.HasContext)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "safety.txt", result.Sources[0].Metadata.Source)
}

func TestHandleQueryEmptyQuestion(t *testing.T) {
	router := newTestRouter(&stubAI{}, &stubStore{})

	rec := postJSON(t, router, "/chat/query", types.QueryRequest{Question: "  "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStreamEmitsFramesAndDone(t *testing.T) {
	store := &stubStore{candidates: []types.RetrievalCandidate{{
		Chunk: types.Chunk{
			Content:  "helmet passage",
			Metadata: types.ChunkMetadata{DocumentMetadata: types.DocumentMetadata{Source: "safety.txt"}},
		},
	}}}
	router := newTestRouter(&stubAI{answer: "streamed answer"}, store)

	rec := postJSON(t, router, "/chat/stream", types.StreamRequest{Question: "helmet"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, body, `"type":"chunk"`)
	assert.Contains(t, body, "streamed answer")
	assert.Contains(t, body, `"type":"sources"`)
	assert.Contains(t, body, "[DONE]")
}

func TestHandleClearHistoryRequiresID(t *testing.T) {
	router := newTestRouter(&stubAI{}, &stubStore{})

	rec := postJSON(t, router, "/chat/history/clear", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/chat/history/clear", map[string]string{"conversation_id": "c1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}
