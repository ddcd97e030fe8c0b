// Package ai builds the AI service adapters from configuration.
package ai

import (
	"os"
	"time"

	"github.com/docsage/docsage/internal/adapters/driven/embedding/hf"
	"github.com/docsage/docsage/internal/adapters/driven/llm/openai"
	"github.com/docsage/docsage/internal/core/ports/driven"
)

// Config reads settings by dotted key. The file config store satisfies
// it.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetDuration(key string) time.Duration
}

// NewEmbeddingService builds the embedding service from config and
// environment. The HF_TOKEN environment variable takes precedence over
// the embedding.token config key. Returns (nil, nil) when no token is
// configured: embeddings are simply unavailable, not broken.
func NewEmbeddingService(cfg Config) (driven.EmbeddingService, error) {
	token := os.Getenv("HF_TOKEN")
	if token == "" {
		token = cfg.GetString("embedding.token")
	}
	if token == "" {
		return nil, nil
	}

	return hf.NewEmbeddingService(hf.Config{
		Token:      token,
		BaseURL:    cfg.GetString("embedding.base_url"),
		Model:      cfg.GetString("embedding.model"),
		Dimensions: cfg.GetInt("embedding.dimensions"),
		Timeout:    cfg.GetDuration("embedding.timeout"),
	})
}

// NewGenerationService builds the generation service from config and
// environment. GROQ_API_KEY and OPENAI_API_KEY take precedence over
// the llm.api_key config key. Returns (nil, nil) when no key is
// configured.
func NewGenerationService(cfg Config) (driven.GenerationService, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		apiKey = cfg.GetString("llm.api_key")
	}
	if apiKey == "" {
		return nil, nil
	}

	return openai.NewGenerationService(openai.Config{
		APIKey:  apiKey,
		BaseURL: cfg.GetString("llm.base_url"),
		Model:   cfg.GetString("llm.model"),
		Timeout: cfg.GetDuration("llm.timeout"),
	})
}
