package service

import (
	"context"
	"log"
	"strings"

	"github.com/adityapawar327/ongc-assistant-be/database"
	"github.com/adityapawar327/ongc-assistant-be/types"
)

// sourcePreviewLength caps the chunk excerpt returned with each source.
const sourcePreviewLength = 300

// RAGService orchestrates a query end to end: retrieve, assemble
// context, build the prompt, call the model, and package the answer
// with sources and a confidence score.
type RAGService struct {
	ai            AIService
	retriever     *Retriever
	prompts       *PromptBuilder
	knowledge     *KnowledgeService
	conversations *ConversationStore
}

func NewRAGService(ai AIService, store database.VectorStore, knowledge *KnowledgeService, conversations *ConversationStore) *RAGService {
	return &RAGService{
		ai:            ai,
		retriever:     NewRetriever(store),
		prompts:       NewPromptBuilder(knowledge),
		knowledge:     knowledge,
		conversations: conversations,
	}
}

// preparedQuery is the shared state both the single-shot and streaming
// paths build before invoking the model.
type preparedQuery struct {
	candidates []types.RetrievalCandidate
	prompt     string
	config     GenerationConfig
}

// prepare runs retrieval and prompt construction. Retrieval failures
// degrade to the empty-context path instead of failing the query.
func (s *RAGService) prepare(ctx context.Context, question string, history []types.Message, language types.Language, mode types.AccuracyMode, window types.ContextWindow) preparedQuery {
	candidates, err := s.retriever.Retrieve(ctx, question, window)
	if err != nil {
		log.Printf("retrieval failed, continuing without context: %v", err)
		candidates = nil
	}

	contextBlock := BuildContext(candidates)
	if mode != types.AccuracyStrict || len(candidates) == 0 {
		contextBlock += s.knowledge.Lookup(question)
	}

	return preparedQuery{
		candidates: candidates,
		prompt:     s.prompts.Build(question, contextBlock, history, language, mode, window),
		config:     GenerationConfigFor(mode, window),
	}
}

// Query answers a single question, updating the conversation history
// on success. In strict mode with nothing retrieved it short-circuits
// with the fixed no-documents answer and never calls the model.
func (s *RAGService) Query(ctx context.Context, req types.QueryRequest) (*types.QueryResult, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, types.ErrEmptyQuestion
	}
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = "default"
	}

	history := s.conversations.Get(conversationID)
	prepared := s.prepare(ctx, req.Question, history, req.Language, req.AccuracyMode, req.ContextWindow)

	if req.AccuracyMode == types.AccuracyStrict && len(prepared.candidates) == 0 {
		return &types.QueryResult{
			Answer:     NoDocumentsAnswer,
			Sources:    []types.Source{},
			HasContext: false,
			Confidence: 0,
		}, nil
	}

	answer, err := s.ai.Generate(ctx, prepared.prompt, prepared.config)
	if err != nil {
		return nil, classifyModelError(err)
	}

	s.conversations.Append(conversationID,
		types.Message{Role: types.RoleUser, Content: req.Question},
		types.Message{Role: types.RoleAssistant, Content: answer},
	)

	return &types.QueryResult{
		Answer:     answer,
		Sources:    enrichSources(prepared.candidates),
		HasContext: len(prepared.candidates) > 0,
		Confidence: Confidence(prepared.candidates, req.Question),
	}, nil
}

// StreamQuery runs the same retrieval and prompt path but delivers the
// answer as incremental fragments to onChunk, in arrival order, before
// returning the enriched source list. Streaming deliberately leaves
// the conversation history untouched.
func (s *RAGService) StreamQuery(ctx context.Context, question string, onChunk types.StreamHandler, language types.Language, mode types.AccuracyMode, window types.ContextWindow) ([]types.Source, error) {
	if strings.TrimSpace(question) == "" {
		return nil, types.ErrEmptyQuestion
	}

	prepared := s.prepare(ctx, question, nil, language, mode, window)

	if err := s.ai.GenerateStream(ctx, prepared.prompt, prepared.config, onChunk); err != nil {
		return nil, classifyModelError(err)
	}
	return enrichSources(prepared.candidates), nil
}

// ClearHistory drops the stored turns for one conversation.
func (s *RAGService) ClearHistory(conversationID string) {
	s.conversations.Clear(conversationID)
}

// enrichSources converts candidates into the source descriptors
// exposed to callers: a bounded content excerpt plus a first-sentence
// preview.
func enrichSources(candidates []types.RetrievalCandidate) []types.Source {
	sources := make([]types.Source, 0, len(candidates))
	for i, candidate := range candidates {
		sources = append(sources, types.Source{
			ID:      i + 1,
			Content: truncateRunes(candidate.Chunk.Content, sourcePreviewLength),
			Preview: firstSentence(candidate.Chunk.Content),
			Metadata: types.SourceMetadata{
				Source:    candidate.Chunk.Metadata.Source,
				Type:      candidate.Chunk.Metadata.Type,
				PageCount: candidate.Chunk.Metadata.PageCount,
				Relevance: "high",
			},
		})
	}
	return sources
}

func firstSentence(content string) string {
	if idx := strings.IndexAny(content, ".!?"); idx > 0 {
		if sentence := strings.TrimSpace(content[:idx]); sentence != "" {
			return sentence
		}
	}
	return truncateRunes(content, 100)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
