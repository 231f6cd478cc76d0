package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

type Config struct {
	Port         string               `mapstructure:"port"`
	UploadDir    string               `mapstructure:"upload_dir"`
	AIProvider   string               `mapstructure:"ai_provider"` // gemini | openai
	Model        string               `mapstructure:"model"`
	GoogleAPIKey string               `mapstructure:"GOOGLE_API_KEY"`
	Embedding    EmbeddingConfig      `mapstructure:"embedding"`
	Chunking     types.ChunkingConfig `mapstructure:"chunking"`
	OpenAI       OpenAIConfig         `mapstructure:"openai"`
	VectorStore  VectorStoreConfig    `mapstructure:"vector_store"`
}

type EmbeddingConfig struct {
	Model string `mapstructure:"model"`
}

type OpenAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"OPENAI_API_KEY"`
}

type VectorStoreConfig struct {
	Type     string              `mapstructure:"type"` // memory | weaviate
	Weaviate WeaviateStoreConfig `mapstructure:"weaviate"`
}

type WeaviateStoreConfig struct {
	Host         string       `mapstructure:"host"`
	APIKey       string       `mapstructure:"WEAVIATE_APIKEY"`
	Text2Vec     string       `mapstructure:"text2vec"`
	ModuleConfig ModuleConfig `mapstructure:"module_config"`
}

type ModuleConfig map[string]interface{}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("port", "5000")
	v.SetDefault("upload_dir", "data/documents")
	v.SetDefault("ai_provider", "gemini")
	v.SetDefault("model", "gemini-2.0-flash-exp")
	v.SetDefault("embedding.model", "embedding-001")
	v.SetDefault("chunking.chunk_size", 1000)
	v.SetDefault("chunking.chunk_overlap", 200)
	v.SetDefault("vector_store.type", "memory")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("GOOGLE_API_KEY")
	v.BindEnv("openai.OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("vector_store.weaviate.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
