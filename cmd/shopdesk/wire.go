package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/shopdesk/internal/adapters/driven/ai"
	"github.com/custodia-labs/shopdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shopdesk/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/shopdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shopdesk/internal/adapters/driven/vectorstore/local"
	"github.com/custodia-labs/shopdesk/internal/adapters/driven/vectorstore/tiered"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/services"
	"github.com/custodia-labs/shopdesk/internal/logger"
	"github.com/custodia-labs/shopdesk/internal/normalisers"
	"github.com/custodia-labs/shopdesk/internal/postprocessors"
)

// buildServices wires the driven adapters into the core services from the
// current settings. AI providers and the remote vector store are contacted
// here, so commands that only read configuration never call it.
func buildServices(ctx context.Context, settingsService *services.SettingsService) (*cli.Services, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := settingsService.Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	metrics := prometheus.New()

	aiResult := ai.Init(settings, metrics)

	store, seeder := tiered.Build(settings.VectorStore, settings.Embedding.Dimensions, tiered.WithMetrics(metrics))
	store.Connect(ctx)

	synthesizer := services.NewSynthesizer(aiResult.LLMService, metrics, settings.Retrieval.MaxTokens)
	if prompts, err := file.NewPromptStore("", services.DefaultPrompts()); err != nil {
		logger.Warn("using built-in prompts: %v", err)
	} else {
		synthesizer.SetPrompts(prompts)
	}

	retrieval := services.NewRetrievalService(
		aiResult.EmbeddingService, store, synthesizer, metrics, settings.Retrieval.TopK)

	ingest, err := buildIngest(settings, aiResult, store, seeder)
	if err != nil {
		aiResult.Close()
		return nil, err
	}

	now := time.Now()
	orders := services.NewOrderService(memory.NewOrderStore(memory.SampleOrders(now)...))
	returns := services.NewReturnService(memory.NewReturnStore(memory.SampleReturns(now)...))
	inventory := services.NewInventoryService(memory.NewProductStore(memory.SampleProducts()...))

	assistant := services.NewAssistant(nil,
		services.NewRAGTool(retrieval),
		orders.Handler(),
		returns.Handler(),
		inventory.Handler(),
	)

	return &cli.Services{
		Retrieval: retrieval,
		Assistant: assistant,
		Ingest:    ingest,
		Orders:    orders,
		Returns:   returns,
		Metrics:   metrics.Handler(),
		Close:     aiResult.Close,
	}, nil
}

func buildIngest(
	settings *domain.AppSettings,
	aiResult *ai.InitResult,
	store *tiered.Store,
	seeder *local.Store,
) (*services.IngestService, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	pipeline, err := registry.BuildPipeline(domain.PipelineConfigFor(settings.Chunking))
	if err != nil {
		return nil, fmt.Errorf("failed to build chunking pipeline: %w", err)
	}
	logger.Debug("chunking stages: %s", strings.Join(pipeline.Stages(), " -> "))

	var opts []services.IngestOption
	if seeder != nil {
		opts = append(opts, services.WithSeeder(seeder))
	}

	return services.NewIngestService(
		normalisers.NewDefaultRegistry(),
		pipeline,
		aiResult.EmbeddingService,
		store,
		normalisers.MIMETypeForPath,
		opts...,
	), nil
}
