package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// GeminiService generates answers through the Gemini API. Multiple API
// keys may be supplied; on a failed call the service rotates to the
// next key and retries once.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	modelName  string
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:    apiKeys,
		currentKey: 0,
		modelName:  modelName,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		return err
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) model(cfg GenerationConfig) *genai.GenerativeModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(cfg.Temperature)
	model.SetTopK(cfg.TopK)
	model.SetTopP(cfg.TopP)
	model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	return model
}

func (s *GeminiService) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	resp, err := s.model(cfg).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if rotateErr := s.rotateAPIKey(); rotateErr != nil {
			return "", err
		}
		resp, err = s.model(cfg).GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
	}

	content := collectText(resp)
	if content == "" {
		return "", errors.New("no response generated")
	}
	return content, nil
}

func (s *GeminiService) GenerateStream(ctx context.Context, prompt string, cfg GenerationConfig, handler types.StreamHandler) error {
	iter := s.model(cfg).GenerateContentStream(ctx, genai.Text(prompt))

	delivered := false
	retried := false
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			// Restarting a stream replays it from the beginning, so a
			// key rotation is only safe before any fragment reached
			// the handler.
			if !restartableStream(delivered, retried) {
				return err
			}
			if rotateErr := s.rotateAPIKey(); rotateErr != nil {
				return err
			}
			retried = true
			iter = s.model(cfg).GenerateContentStream(ctx, genai.Text(prompt))
			continue
		}

		if text := collectText(resp); text != "" {
			delivered = true
			handler(text)
		}
	}
	return nil
}

// restartableStream reports whether a failed stream may be restarted
// with the next API key: once, and only while no output has been
// delivered yet.
func restartableStream(delivered, retried bool) bool {
	return !delivered && !retried
}

func collectText(resp *genai.GenerateContentResponse) string {
	content := ""
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	return content
}

// GeminiEmbedder computes embedding vectors with the Gemini embedding
// model, for use by the in-memory vector index.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbedder(apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("no API key provided")
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiEmbedder{client: client, model: model}, nil
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := e.client.EmbeddingModel(e.model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if res.Embedding == nil {
		return nil, errors.New("no embedding returned")
	}
	return res.Embedding.Values, nil
}

func (e *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	model := e.client.EmbeddingModel(e.model)
	batch := model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, err
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(res.Embeddings))
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, embedding := range res.Embeddings {
		vectors[i] = embedding.Values
	}
	return vectors, nil
}
