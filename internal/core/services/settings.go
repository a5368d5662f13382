package services

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedAPIKey    = "embedding.api_key"
	keyEmbedDims      = "embedding.dimensions"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyStoreURI       = "vector_store.uri"
	keyStoreToken     = "vector_store.token"
	keyStoreColl      = "vector_store.collection"
	keyStoreLocalPath = "vector_store.local_path"
	keyStoreTimeout   = "vector_store.timeout_seconds"
	keyStoreRPS       = "vector_store.requests_per_second"
	keyTopK           = "retrieval.top_k"
	keyMaxTokens      = "retrieval.max_tokens"
	keyChunkMax       = "chunking.max_words"
	keyChunkMin       = "chunking.min_words"
	keyChunkOverlap   = "chunking.overlap"
)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvMilvusURI        = "MILVUS_URI"
	EnvMilvusToken      = "MILVUS_TOKEN"
	EnvMilvusCollection = "MILVUS_COLLECTION_NAME"
	EnvDefaultProvider  = "DEFAULT_PROVIDER"
	EnvDefaultModel     = "DEFAULT_MODEL"
	EnvOpenAIKey        = "OPENAI_API_KEY"
	EnvAnthropicKey     = "ANTHROPIC_API_KEY"
	EnvLocalStore       = "SHOPDESK_LOCAL_STORE"
)

// settingKind says how a string value is parsed by Set.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindSecret
)

var settingKinds = map[string]settingKind{
	keyEmbedProvider:  kindString,
	keyEmbedModel:     kindString,
	keyEmbedBaseURL:   kindString,
	keyEmbedAPIKey:    kindSecret,
	keyEmbedDims:      kindInt,
	keyLLMProvider:    kindString,
	keyLLMModel:       kindString,
	keyLLMBaseURL:     kindString,
	keyLLMAPIKey:      kindSecret,
	keyStoreURI:       kindString,
	keyStoreToken:     kindSecret,
	keyStoreColl:      kindString,
	keyStoreLocalPath: kindString,
	keyStoreTimeout:   kindInt,
	keyStoreRPS:       kindFloat,
	keyTopK:           kindInt,
	keyMaxTokens:      kindInt,
	keyChunkMax:       kindInt,
	keyChunkMin:       kindInt,
	keyChunkOverlap:   kindInt,
}

// applySetting writes a parsed value into the field bound to key.
func applySetting(s *domain.AppSettings, key, v string, n int, f float64) {
	switch key {
	case keyEmbedProvider:
		s.Embedding.Provider = domain.AIProvider(v)
	case keyEmbedModel:
		s.Embedding.Model = v
	case keyEmbedBaseURL:
		s.Embedding.BaseURL = v
	case keyEmbedAPIKey:
		s.Embedding.APIKey = v
	case keyEmbedDims:
		s.Embedding.Dimensions = n
	case keyLLMProvider:
		s.LLM.Provider = domain.AIProvider(v)
	case keyLLMModel:
		s.LLM.Model = v
	case keyLLMBaseURL:
		s.LLM.BaseURL = v
	case keyLLMAPIKey:
		s.LLM.APIKey = v
	case keyStoreURI:
		s.VectorStore.URI = v
	case keyStoreToken:
		s.VectorStore.Token = v
	case keyStoreColl:
		s.VectorStore.Collection = v
	case keyStoreLocalPath:
		s.VectorStore.LocalPath = v
	case keyStoreTimeout:
		s.VectorStore.TimeoutSeconds = n
	case keyStoreRPS:
		s.VectorStore.RequestsPerSecond = f
	case keyTopK:
		s.Retrieval.TopK = n
	case keyMaxTokens:
		s.Retrieval.MaxTokens = n
	case keyChunkMax:
		s.Chunking.MaxWords = n
	case keyChunkMin:
		s.Chunking.MinWords = n
	case keyChunkOverlap:
		s.Chunking.Overlap = n
	}
}

// SettingKeys returns every settable key in sorted order.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsSecretKey reports whether key holds a credential that should not be echoed.
func IsSecretKey(key string) bool {
	return settingKinds[key] == kindSecret
}

// SettingsService manages application settings.
// Effective settings layer the environment over the config store over defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
		getenv:      os.Getenv,
	}
}

// SetEnvLookup replaces the environment lookup, for tests.
func (s *SettingsService) SetEnvLookup(getenv func(string) string) {
	if getenv != nil {
		s.getenv = getenv
	}
}

// Get returns the effective settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	s.applyEnv(settings)
	return settings, nil
}

// Set validates and stores a single key. The environment is not consulted,
// so a stored value stays valid when the override is removed.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	value = strings.TrimSpace(value)
	var (
		stored any = value
		n      int
		f      float64
		err    error
	)
	switch kind {
	case kindInt:
		if n, err = strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case kindFloat:
		if f, err = strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		stored = f
	}

	candidate := s.stored()
	applySetting(candidate, key, value, n, f)
	if key == keyEmbedProvider || key == keyLLMProvider {
		fillDefaultModels(candidate)
	}
	if err := s.Validate(candidate); err != nil {
		return err
	}

	return s.configStore.Set(key, stored)
}

// Unset removes a stored key. The resulting settings are validated first,
// since a default can conflict with other stored values.
func (s *SettingsService) Unset(key string) error {
	if _, ok := settingKinds[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	candidate := settingsFrom(withoutKey{ConfigStore: s.configStore, key: key})
	if err := s.Validate(candidate); err != nil {
		return err
	}
	return s.configStore.Unset(key)
}

// StoredKeys lists the known keys present in the config store. Unknown keys
// from a hand-edited file are left out.
func (s *SettingsService) StoredKeys() []string {
	var keys []string
	for _, k := range s.configStore.Keys() {
		if _, ok := settingKinds[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Validate checks settings against their struct constraints.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// stored reads defaults overlaid with the config store.
func (s *SettingsService) stored() *domain.AppSettings {
	return settingsFrom(s.configStore)
}

func settingsFrom(store driven.ConfigStore) *domain.AppSettings {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:   domain.AIProvider(getString(store, keyEmbedProvider, string(d.Embedding.Provider))),
			Model:      getString(store, keyEmbedModel, d.Embedding.Model),
			BaseURL:    store.GetString(keyEmbedBaseURL),
			APIKey:     store.GetString(keyEmbedAPIKey),
			Dimensions: getInt(store, keyEmbedDims, d.Embedding.Dimensions),
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProvider(getString(store, keyLLMProvider, string(d.LLM.Provider))),
			Model:    getString(store, keyLLMModel, d.LLM.Model),
			BaseURL:  store.GetString(keyLLMBaseURL),
			APIKey:   store.GetString(keyLLMAPIKey),
		},
		VectorStore: domain.VectorStoreSettings{
			URI:               store.GetString(keyStoreURI),
			Token:             store.GetString(keyStoreToken),
			Collection:        getString(store, keyStoreColl, d.VectorStore.Collection),
			LocalPath:         getString(store, keyStoreLocalPath, d.VectorStore.LocalPath),
			TimeoutSeconds:    getInt(store, keyStoreTimeout, d.VectorStore.TimeoutSeconds),
			RequestsPerSecond: getFloat(store, keyStoreRPS, d.VectorStore.RequestsPerSecond),
		},
		Retrieval: domain.RetrievalSettings{
			TopK:      getInt(store, keyTopK, d.Retrieval.TopK),
			MaxTokens: getInt(store, keyMaxTokens, d.Retrieval.MaxTokens),
		},
		Chunking: domain.ChunkingSettings{
			MaxWords: getInt(store, keyChunkMax, d.Chunking.MaxWords),
			MinWords: getInt(store, keyChunkMin, d.Chunking.MinWords),
			Overlap:  getInt(store, keyChunkOverlap, d.Chunking.Overlap),
		},
	}

	fillDefaultModels(settings)
	return settings
}

// applyEnv overlays environment overrides. A bare OPENAI_API_KEY selects
// OpenAI generation when no LLM provider is configured.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if v := s.getenv(EnvMilvusURI); v != "" {
		settings.VectorStore.URI = v
	}
	if v := s.getenv(EnvMilvusToken); v != "" {
		settings.VectorStore.Token = v
	}
	if v := s.getenv(EnvMilvusCollection); v != "" {
		settings.VectorStore.Collection = v
	}
	if v := s.getenv(EnvLocalStore); v != "" {
		settings.VectorStore.LocalPath = v
	}

	openAIKey := s.getenv(EnvOpenAIKey)
	if v := strings.ToLower(s.getenv(EnvDefaultProvider)); v != "" {
		if settings.LLM.Provider != domain.AIProvider(v) {
			settings.LLM.Model = ""
		}
		settings.LLM.Provider = domain.AIProvider(v)
	} else if settings.LLM.Provider == "" && openAIKey != "" {
		settings.LLM.Provider = domain.AIProviderOpenAI
	}
	if v := s.getenv(EnvDefaultModel); v != "" {
		settings.LLM.Model = v
	}

	if settings.LLM.APIKey == "" {
		switch settings.LLM.Provider {
		case domain.AIProviderOpenAI:
			settings.LLM.APIKey = openAIKey
		case domain.AIProviderAnthropic:
			settings.LLM.APIKey = s.getenv(EnvAnthropicKey)
		}
	}
	if settings.Embedding.APIKey == "" && settings.Embedding.Provider == domain.AIProviderOpenAI {
		settings.Embedding.APIKey = openAIKey
	}

	fillDefaultModels(settings)
}

// fillDefaultModels sets the provider default model where none is chosen.
func fillDefaultModels(settings *domain.AppSettings) {
	if settings.Embedding.Model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Provider]
	}
	if settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}
}

func getString(store driven.ConfigStore, key, defaultVal string) string {
	if val := store.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(store driven.ConfigStore, key string, defaultVal int) int {
	if val := store.GetInt(key); val != 0 {
		return val
	}
	return defaultVal
}

func getFloat(store driven.ConfigStore, key string, defaultVal float64) float64 {
	if val, ok := store.GetFloat(key); ok {
		return val
	}
	return defaultVal
}

// withoutKey hides one key of a config store from reads.
type withoutKey struct {
	driven.ConfigStore
	key string
}

func (w withoutKey) Get(key string) (any, bool) {
	if key == w.key {
		return nil, false
	}
	return w.ConfigStore.Get(key)
}

func (w withoutKey) GetString(key string) string {
	if key == w.key {
		return ""
	}
	return w.ConfigStore.GetString(key)
}

func (w withoutKey) GetInt(key string) int {
	if key == w.key {
		return 0
	}
	return w.ConfigStore.GetInt(key)
}

func (w withoutKey) GetFloat(key string) (float64, bool) {
	if key == w.key {
		return 0, false
	}
	return w.ConfigStore.GetFloat(key)
}
