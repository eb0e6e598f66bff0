package cli

import (
	"fmt"
	"time"

	"newsbrief/config"
	"newsbrief/internal/adapter/embedding"
	"newsbrief/internal/adapter/generate"
	"newsbrief/internal/adapter/store"
	"newsbrief/internal/evidence"
	"newsbrief/internal/port"
	"newsbrief/internal/prompt"
	"newsbrief/internal/usecase"
)

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "ollama":
		return embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL, cfg.Embedding.Dimension), nil
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

// newGenerator builds a generation client. maxTokens <= 0 falls back
// to the configured cap; the web UI passes a per-run value.
func newGenerator(cfg *config.Config, maxTokens int) port.Generator {
	if maxTokens <= 0 {
		maxTokens = cfg.Generate.MaxTokens
	}
	return generate.NewOllamaClient(
		cfg.Generate.BaseURL,
		cfg.Generate.Model,
		maxTokens,
		time.Duration(cfg.Generate.TimeoutSeconds)*time.Second,
		cfg.Generate.UseChat,
	)
}

// newSummarizer wires the full RAG pipeline from config.
func newSummarizer(cfg *config.Config) (*usecase.SummarizeUseCase, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	articles, err := store.NewArticleStore(dataDir())
	if err != nil {
		return nil, err
	}
	prompts, err := prompt.NewBuilder()
	if err != nil {
		return nil, err
	}

	return usecase.NewSummarizeUseCase(
		usecase.NewQueryUseCase(embedder, indexPath()),
		evidence.NewAssembler(articles),
		prompts,
		newGenerator(cfg, 0),
	), nil
}
