package config

import (
	"os"
	"sync"
)

var (
	openAIOnce   sync.Once
	openAIConfig *OpenAIConfig
)

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	BaseURL        string
}

func GetOpenAIConfig() *OpenAIConfig {
	openAIOnce.Do(func() {
		loadEnv()

		openAIConfig = &OpenAIConfig{
			APIKey:         os.Getenv("OPENAI_API_KEY"),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			BaseURL:        os.Getenv("OPENAI_BASE_URL"),
		}
	})
	return openAIConfig
}
