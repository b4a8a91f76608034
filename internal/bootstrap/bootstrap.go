package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/madewithnestle/ai-chatbot/internal/config"
	"github.com/madewithnestle/ai-chatbot/internal/core/usecase"
	"github.com/madewithnestle/ai-chatbot/internal/infrastructure/embedding/ollama"
	"github.com/madewithnestle/ai-chatbot/internal/infrastructure/graph"
	openaillm "github.com/madewithnestle/ai-chatbot/internal/infrastructure/llm/openai"
	"github.com/madewithnestle/ai-chatbot/internal/infrastructure/resilience"
	"github.com/madewithnestle/ai-chatbot/internal/infrastructure/search/duckduckgo"
	"github.com/madewithnestle/ai-chatbot/internal/observability/logging"
	"github.com/madewithnestle/ai-chatbot/internal/observability/metrics"
)

const serviceName = "nestle-chatbot"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.ServerMetrics

	Knowledge *usecase.KnowledgeService
	ChatUC    *usecase.ChatUseCase
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	serverMetrics := metrics.NewServerMetrics(serviceName)
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	store := graph.NewSnapshotStore(cfg.GraphDir)
	builder := graph.NewBuilder(store, logger)

	embedder := ollama.New(cfg.OllamaURL, cfg.OllamaEmbedModel)
	if err := embedder.Ping(ctx); err != nil {
		// Serving continues; ranking degrades to the keyword fallback.
		logger.Warn("embedding_backend_unavailable", "error", err)
	}

	knowledge := usecase.NewKnowledgeService(store, builder, embedder, logger)
	ranker := usecase.NewRanker(embedder)
	composer := usecase.NewComposer(ranker, usecase.ComposerConfig{
		TopK:              cfg.RetrievalTopK,
		NeighborLimit:     cfg.NeighborLimit,
		DescriptionLimit:  cfg.DescriptionLimit,
		NeighborDescLimit: cfg.NeighborDescLimit,
	}, logger)

	searchClient := duckduckgo.New(
		cfg.SearchBaseURL,
		cfg.SearchUserAgent,
		time.Duration(cfg.SearchTimeoutSeconds)*time.Second,
		executor,
	)
	gathererCfg := usecase.DefaultGathererConfig()
	gathererCfg.MaxResults = cfg.MaxSearchResults
	gathererCfg.SiteQueriesPerSecond = cfg.SearchPacePerSecond
	gatherer := usecase.NewGatherer(searchClient, gathererCfg, logger)

	generator := openaillm.New(openaillm.Config{
		APIKey:          cfg.OpenAIAPIKey,
		Model:           cfg.OpenAIModel,
		AzureEndpoint:   cfg.AzureOpenAIEndpoint,
		AzureDeployment: cfg.AzureOpenAIDeployment,
	}, executor)
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("openai_api_key_missing", "action", "answers will use the local fallback")
	}

	chatUC := usecase.NewChatUseCase(
		knowledge,
		composer,
		gatherer,
		generator,
		serverMetrics.ChatObserver(serviceName),
		logger,
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   serverMetrics,
		Knowledge: knowledge,
		ChatUC:    chatUC,
	}, nil
}
