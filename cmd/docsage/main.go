package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/docsage/docsage/internal/adapters/driven/ai"
	configfile "github.com/docsage/docsage/internal/adapters/driven/config/file"
	"github.com/docsage/docsage/internal/adapters/driven/extractor"
	"github.com/docsage/docsage/internal/adapters/driven/objectstore/local"
	"github.com/docsage/docsage/internal/adapters/driven/storage/sqlite"
	"github.com/docsage/docsage/internal/adapters/driving/cli"
	"github.com/docsage/docsage/internal/chunker"
	"github.com/docsage/docsage/internal/core/ports/driven"
	"github.com/docsage/docsage/internal/core/services"
	"github.com/docsage/docsage/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		logger.Warn("Prompt store unavailable, using built-in prompts: %v", err)
		prompts = nil
	}

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	objects, err := local.NewStore(cfg.GetString("storage.uploads_dir"))
	if err != nil {
		return fmt.Errorf("opening upload store: %w", err)
	}

	registry := buildExtractors(cfg)

	ch, err := buildChunker(cfg)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	embedder, err := ai.NewEmbeddingService(cfg)
	if err != nil {
		logger.Warn("Embedding service disabled: %v", err)
		embedder = nil
	}
	if embedder == nil {
		logger.Debug("No HuggingFace token; ingestion and chat disabled")
	}

	generator, err := ai.NewGenerationService(cfg)
	if err != nil {
		logger.Warn("Generation service disabled: %v", err)
		generator = nil
	}
	if generator == nil {
		logger.Debug("No generation API key; chat disabled")
	}

	svcs := cli.Services{}

	docs := services.NewDocumentService(store.DocumentStore())
	svcs.Documents = docs

	if embedder != nil {
		svcs.Ingestor = services.NewIngestionPipeline(
			store.DocumentStore(), objects, registry, embedder, ch,
			services.WithEmbedBatchSize(cfg.GetInt("embedding.batch_size")),
		)

		if generator != nil {
			chat := services.NewChatService(embedder, store.VectorSearcher(), generator,
				services.WithTopK(cfg.GetInt("chat.top_k")))
			if prompts != nil {
				chat.SetPromptStore(prompts)
			}
			svcs.Chat = chat
		}
	}

	// Conversations work without a generator; they just get the
	// default title instead of a suggested one.
	convs := services.NewConversationService(store.ConversationStore(), generator)
	if prompts != nil {
		convs.SetPromptStore(prompts)
	}
	svcs.ConversationManager = convs

	cli.SetServices(svcs)
	return cli.Execute()
}

// buildExtractors always registers the plain text extractor; the
// extraction sidecar for PDF and DOCX is added when configured.
func buildExtractors(cfg *configfile.ConfigStore) *extractor.Registry {
	extractors := []driven.TextExtractor{extractor.NewPlainText()}

	baseURL := cfg.GetString("extraction.base_url")
	if baseURL == "" {
		baseURL = os.Getenv("DOCSAGE_EXTRACTION_URL")
	}
	if baseURL != "" {
		svc, err := extractor.NewService(extractor.ServiceConfig{
			BaseURL: baseURL,
			Timeout: cfg.GetDuration("extraction.timeout"),
		})
		if err != nil {
			logger.Warn("Extraction service disabled: %v", err)
		} else {
			extractors = append(extractors, svc)
		}
	}

	return extractor.NewRegistry(extractors...)
}

func buildChunker(cfg *configfile.ConfigStore) (*chunker.Chunker, error) {
	var opts []chunker.Option
	if v := cfg.GetInt("chunking.size"); v > 0 {
		opts = append(opts, chunker.WithSize(v))
	}
	if _, ok := cfg.Get("chunking.overlap"); ok {
		opts = append(opts, chunker.WithOverlap(cfg.GetInt("chunking.overlap")))
	}
	return chunker.New(opts...)
}

