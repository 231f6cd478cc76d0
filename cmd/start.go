/*
Copyright © 2025 adityapawar327
*/
package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/adityapawar327/ongc-assistant-be/config"
	"github.com/adityapawar327/ongc-assistant-be/database"
	"github.com/adityapawar327/ongc-assistant-be/handler"
	"github.com/adityapawar327/ongc-assistant-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the assistant server",
	Long:  `Starts the HTTP and WebSocket server that answers questions over the indexed documents`,
	Run: func(cmd *cobra.Command, args []string) {

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		store, err := newVectorStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize vector store: %v", err)
		}

		aiService, err := newAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI service: %v", err)
		}

		// Initialize services
		chunker := service.NewChunker(cfg.Chunking)
		extractor := service.NewDocumentExtractor()
		knowledge := service.NewKnowledgeService()
		conversations := service.NewConversationStore()

		ragService := service.NewRAGService(aiService, store, knowledge, conversations)
		fileService := service.NewFileService(cfg.UploadDir, extractor, chunker, store)
		wsService := service.NewWebSocketService(ragService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(ragService)
		uploadHandler := handler.NewUploadHandler(fileService)
		documentHandler := handler.NewDocumentHandler(fileService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/chat/query", chatHandler.HandleQuery)
			apiV1.POST("/chat/stream", chatHandler.HandleStream)
			apiV1.POST("/chat/history/clear", chatHandler.HandleClearHistory)
			apiV1.POST("/documents/upload", uploadHandler.HandleUpload)
			apiV1.GET("/documents", documentHandler.HandleList)
			apiV1.POST("/documents/clear", documentHandler.HandleClear)
			apiV1.GET("/documents/file", documentHandler.HandleServe)
		}

		router.GET("/ws/chat", gin.WrapF(wsService.HandleChat))
		router.GET("/health", gin.WrapH(wsService.Health()))

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}

// newVectorStore builds the configured vector store. The in-memory
// store embeds chunks itself, so it also needs an embedder.
func newVectorStore(cfg *config.Config) (database.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "weaviate":
		return database.NewWeaviateStore(cfg.VectorStore.Weaviate)
	case "memory":
		embedder, err := newEmbedder(cfg)
		if err != nil {
			return nil, err
		}
		return database.NewMemoryStore(embedder), nil
	default:
		return nil, fmt.Errorf("unknown vector store type: %s", cfg.VectorStore.Type)
	}
}

func newEmbedder(cfg *config.Config) (database.Embedder, error) {
	switch cfg.AIProvider {
	case "openai":
		return service.NewOpenAIEmbedder(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.Embedding.Model), nil
	default:
		return service.NewGeminiEmbedder(firstKey(cfg.GoogleAPIKey), cfg.Embedding.Model)
	}
}

func newAIService(cfg *config.Config) (service.AIService, error) {
	switch cfg.AIProvider {
	case "openai":
		return service.NewOpenAIService(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	default:
		return service.NewGeminiService(splitKeys(cfg.GoogleAPIKey), cfg.Model)
	}
}

// splitKeys supports comma-separated API keys so generation can rotate
// keys when one is exhausted.
func splitKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func firstKey(raw string) string {
	keys := splitKeys(raw)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
