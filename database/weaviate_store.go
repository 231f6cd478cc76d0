package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/adityapawar327/ongc-assistant-be/config"
	"github.com/adityapawar327/ongc-assistant-be/types"
)

const BATCH_SIZE = 200

// listSourcesLimit caps the object scan used to aggregate per-source
// stats. Indexes larger than this report a truncated listing.
const listSourcesLimit = 10000

var (
	CHUNK_CLASS        = "DocumentChunk"
	CHUNK_CLASS_OBJECT = &models.Class{
		Class: CHUNK_CLASS,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "docType", DataType: []string{"text"}},
			{Name: "sheetName", DataType: []string{"text"}},
			{Name: "pageCount", DataType: []string{"int"}},
			{Name: "rowCount", DataType: []string{"int"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
			{Name: "chunkCount", DataType: []string{"int"}},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		VectorIndexType: "hnsw",
	}
)

// WeaviateStore is a VectorStore backed by a Weaviate instance with a
// text2vec module, so chunk vectorization happens server-side.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientConfig := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientConfig.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
		clientConfig.Headers = map[string]string{
			"X-Weaviate-Api-Key":     cfg.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	CHUNK_CLASS_OBJECT.Vectorizer = cfg.Text2Vec
	CHUNK_CLASS_OBJECT.ModuleConfig = cfg.ModuleConfig

	client, err := weaviate.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	store := &WeaviateStore{client: client}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *WeaviateStore) ensureSchema(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %v", err)
	}
	for _, class := range schema.Classes {
		if class.Class == CHUNK_CLASS {
			return nil
		}
	}
	if err := s.client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(ctx); err != nil {
		return fmt.Errorf("failed to create %s class: %v", CHUNK_CLASS, err)
	}
	return nil
}

func (s *WeaviateStore) Add(ctx context.Context, chunks []types.Chunk) (int, error) {
	total := len(chunks)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(&models.Object{
				Class:      CHUNK_CLASS,
				Properties: chunkProperties(chunks[j]),
			})
		}
		if _, err := batcher.Do(ctx); err != nil {
			return i, fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
	}
	return total, nil
}

func (s *WeaviateStore) Search(ctx context.Context, query string, k int) ([]types.RetrievalCandidate, error) {
	nearText := s.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	result, err := s.client.GraphQL().Get().
		WithClassName(CHUNK_CLASS).
		WithFields(chunkFields()...).
		WithNearText(nearText).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}

	var candidates []types.RetrievalCandidate
	data, ok := result.Data["Get"].(map[string]interface{})[CHUNK_CLASS].([]interface{})
	if !ok {
		return nil, nil
	}
	for _, item := range data {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		candidate := types.RetrievalCandidate{Chunk: parseChunk(obj)}
		if additional, ok := obj["_additional"].(map[string]interface{}); ok {
			if distance, ok := additional["distance"].(float64); ok {
				candidate.RelevanceScore = relevanceFromDistance(distance)
			}
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func (s *WeaviateStore) ListSources(ctx context.Context) ([]types.IndexedSource, error) {
	result, err := s.client.GraphQL().Get().
		WithClassName(CHUNK_CLASS).
		WithFields(chunkFields()...).
		WithLimit(listSourcesLimit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %v", err)
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("failed to list sources: %v", result.Errors[0].Message)
	}

	var chunks []types.Chunk
	if data, ok := result.Data["Get"].(map[string]interface{})[CHUNK_CLASS].([]interface{}); ok {
		for _, item := range data {
			if obj, ok := item.(map[string]interface{}); ok {
				chunks = append(chunks, parseChunk(obj))
			}
		}
	}
	return aggregateSources(chunks), nil
}

// Clear drops the chunk class and recreates it empty.
func (s *WeaviateStore) Clear(ctx context.Context) error {
	if err := s.client.Schema().ClassDeleter().WithClassName(CHUNK_CLASS).Do(ctx); err != nil {
		return fmt.Errorf("failed to delete %s class: %v", CHUNK_CLASS, err)
	}
	if err := s.client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(ctx); err != nil {
		return fmt.Errorf("failed to create %s class: %v", CHUNK_CLASS, err)
	}
	return nil
}

func chunkProperties(chunk types.Chunk) map[string]interface{} {
	return map[string]interface{}{
		"content":    chunk.Content,
		"source":     chunk.Metadata.Source,
		"docType":    string(chunk.Metadata.Type),
		"sheetName":  chunk.Metadata.SheetName,
		"pageCount":  chunk.Metadata.PageCount,
		"rowCount":   chunk.Metadata.RowCount,
		"chunkIndex": chunk.Metadata.ChunkIndex,
		"chunkCount": chunk.Metadata.ChunkCount,
		"createdAt":  chunk.Metadata.CreatedAt.Unix(),
	}
}

func chunkFields() []graphql.Field {
	return []graphql.Field{
		{Name: "content"},
		{Name: "source"},
		{Name: "docType"},
		{Name: "sheetName"},
		{Name: "pageCount"},
		{Name: "rowCount"},
		{Name: "chunkIndex"},
		{Name: "chunkCount"},
		{Name: "createdAt"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "id"}}},
	}
}

func parseChunk(obj map[string]interface{}) types.Chunk {
	chunk := types.Chunk{}
	chunk.Content, _ = obj["content"].(string)
	chunk.Metadata.Source, _ = obj["source"].(string)
	if docType, ok := obj["docType"].(string); ok {
		chunk.Metadata.Type = types.DocumentType(docType)
	}
	chunk.Metadata.SheetName, _ = obj["sheetName"].(string)
	chunk.Metadata.PageCount = parseInt(obj["pageCount"])
	chunk.Metadata.RowCount = parseInt(obj["rowCount"])
	chunk.Metadata.ChunkIndex = parseInt(obj["chunkIndex"])
	chunk.Metadata.ChunkCount = parseInt(obj["chunkCount"])
	if createdAt, ok := obj["createdAt"].(float64); ok {
		chunk.Metadata.CreatedAt = time.Unix(int64(createdAt), 0)
	}
	return chunk
}

func parseInt(v interface{}) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}
