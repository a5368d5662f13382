// Package ai builds the embedding and LLM services named in settings.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/shopdesk/internal/adapters/driven/embedding/fallback"
	ollamaembed "github.com/custodia-labs/shopdesk/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/shopdesk/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/shopdesk/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/shopdesk/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/shopdesk/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// pingTimeout bounds the startup reachability check of each provider.
const pingTimeout = 5 * time.Second

// InitResult holds the services the rest of the application runs on.
type InitResult struct {
	// EmbeddingService is never nil. Without a reachable provider it
	// produces hash vectors only.
	EmbeddingService *fallback.EmbeddingService

	// LLMService is nil without a reachable provider; answers then come
	// from the top passage.
	LLMService driven.LLMService

	// Warnings explains each provider that was skipped.
	Warnings []string
}

// Close closes whichever services were created.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init never fails: a provider that is misconfigured or unreachable is
// dropped, logged and listed in Warnings.
func Init(settings *domain.AppSettings, metrics driven.RetrievalMetrics) *InitResult {
	result := &InitResult{}
	warn := func(err error) {
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			logger.Warn("%v", err)
		}
	}

	primary, err := CreateAndValidateEmbeddingService(&settings.Embedding)
	warn(err)
	result.EmbeddingService = fallback.NewEmbeddingService(primary, settings.Embedding.Dimensions, fallback.WithMetrics(metrics))

	result.LLMService, err = CreateAndValidateLLMService(&settings.LLM)
	warn(err)

	logger.Debug("embedding model: %s, llm configured: %t", result.EmbeddingService.ModelName(), result.LLMService != nil)
	return result
}

// CreateAndValidateEmbeddingService returns a pinged embedding service, or
// nil with no error when no provider is set. Errors wrap
// domain.ErrEmbeddingUnavailable.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, misconfigured(domain.ErrEmbeddingUnavailable, "embedding.provider", err)
	}
	if svc == nil {
		return nil, nil
	}
	if err := reachable(svc); err != nil {
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService is CreateAndValidateEmbeddingService for the
// LLM. Errors wrap domain.ErrLLMUnavailable.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, misconfigured(domain.ErrLLMUnavailable, "llm.provider", err)
	}
	if svc == nil {
		return nil, nil
	}
	if err := reachable(svc); err != nil {
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

func misconfigured(sentinel error, key string, err error) error {
	return fmt.Errorf("%w: %w. Run 'shopdesk config set %s' to fix", sentinel, err, key)
}

// reachable pings svc and closes it on failure.
func reachable(svc interface {
	Ping(context.Context) error
	Close() error
}) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return errors.Join(err, svc.Close())
	}
	return nil
}

var embeddingProviders = map[domain.AIProvider]func(*domain.EmbeddingSettings, string) (driven.EmbeddingService, error){
	domain.AIProviderOllama: func(s *domain.EmbeddingSettings, model string) (driven.EmbeddingService, error) {
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    s.BaseURL,
			Model:      model,
			Dimensions: s.Dimensions,
		}), nil
	},
	domain.AIProviderOpenAI: func(s *domain.EmbeddingSettings, model string) (driven.EmbeddingService, error) {
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     s.APIKey,
			BaseURL:    s.BaseURL,
			Model:      model,
			Dimensions: s.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil
	},
}

var llmProviders = map[domain.AIProvider]func(*domain.LLMSettings, string) (driven.LLMService, error){
	domain.AIProviderOllama: func(s *domain.LLMSettings, model string) (driven.LLMService, error) {
		return ollamallm.NewLLMService(ollamallm.LLMConfig{BaseURL: s.BaseURL, Model: model}), nil
	},
	domain.AIProviderOpenAI: func(s *domain.LLMSettings, model string) (driven.LLMService, error) {
		svc, err := openaillm.NewLLMService(openaillm.LLMConfig{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: model})
		if err != nil {
			return nil, err
		}
		return svc, nil
	},
	domain.AIProviderAnthropic: func(s *domain.LLMSettings, model string) (driven.LLMService, error) {
		svc, err := anthropicllm.NewLLMService(anthropicllm.Config{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: model})
		if err != nil {
			return nil, err
		}
		return svc, nil
	},
}

// CreateEmbeddingService builds, without contacting it, the embedding
// service settings name. It returns nil, nil when no provider is set.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || settings.Provider == "" {
		return nil, nil
	}
	if settings.Provider == domain.AIProviderAnthropic {
		return nil, errors.New("anthropic does not support embeddings, use ollama or openai")
	}

	build, ok := embeddingProviders[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
	return build(settings, modelOrDefault(settings.Model, domain.DefaultEmbeddingModels()[settings.Provider]))
}

// CreateLLMService builds, without contacting it, the LLM service settings
// name. It returns nil, nil when no provider is set.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || settings.Provider == "" {
		return nil, nil
	}

	build, ok := llmProviders[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	return build(settings, modelOrDefault(settings.Model, domain.DefaultLLMModels()[settings.Provider]))
}

func modelOrDefault(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}
