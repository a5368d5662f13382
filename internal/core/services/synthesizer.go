package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Synthesis prompts and canned replies.
const (
	NoResultsMessage = "I couldn't find any relevant information for your query. " +
		"Please contact customer service for assistance."

	SystemPrompt = "You are a helpful customer service assistant. Use the provided context to answer " +
		"the user's question accurately and concisely. If the context doesn't contain relevant " +
		"information, say so clearly."

	UserPromptTemplate = "Question: %s\n\nContext:\n%s\n\nPlease provide a helpful answer based on the context above."

	FallbackPrefix = "Based on our documentation: "

	// DefaultAnswerTokens caps the generated answer length.
	DefaultAnswerTokens = 300
)

// Synthesizer turns ranked passages into an answer.
// Without a working LLM it answers with the top passage.
type Synthesizer struct {
	llm       driven.LLMService
	metrics   driven.RetrievalMetrics
	prompts   driven.PromptStore
	maxTokens int
}

// NewSynthesizer creates a synthesizer. llm may be nil.
func NewSynthesizer(llm driven.LLMService, m driven.RetrievalMetrics, maxTokens int) *Synthesizer {
	if maxTokens <= 0 {
		maxTokens = DefaultAnswerTokens
	}
	return &Synthesizer{
		llm:       llm,
		metrics:   orNop(m),
		maxTokens: maxTokens,
	}
}

// SetPrompts sets the store customised synthesis prompts are read from.
// Without one, SystemPrompt and UserPromptTemplate are used.
func (s *Synthesizer) SetPrompts(prompts driven.PromptStore) {
	s.prompts = prompts
}

// Synthesize answers query from results. It never fails.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, results []domain.SearchResult) string {
	if len(results) == 0 {
		return NoResultsMessage
	}

	if s.llm == nil {
		s.metrics.SynthesisFallback()
		logger.Debug("no LLM configured, answering from top passage")
		return FallbackPrefix + results[0].Text
	}

	answer, err := s.chat(ctx, s.messages(query, results))
	if err == nil && strings.TrimSpace(answer) != "" {
		return answer
	}

	s.metrics.SynthesisFallback()
	if err != nil {
		logger.Warn("LLM %s failed, answering from top passage: %v", s.llm.ModelName(), err)
	} else {
		logger.Warn("LLM %s returned an empty answer, answering from top passage", s.llm.ModelName())
	}
	return FallbackPrefix + results[0].Text
}

// chat calls the LLM, turning a panic in the provider into an error.
func (s *Synthesizer) chat(ctx context.Context, messages []driven.ChatMessage) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			answer, err = "", fmt.Errorf("%w: panic: %v", domain.ErrLLMUnavailable, r)
		}
	}()
	return s.llm.Chat(ctx, messages, driven.ChatOptions{MaxTokens: s.maxTokens})
}

// DefaultPrompts returns the built-in prompts keyed by prompt name, for
// seeding an editable prompt store.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptSynthesisSystem: SystemPrompt,
		driven.PromptSynthesisUser:   UserPromptTemplate,
	}
}

func (s *Synthesizer) messages(query string, results []domain.SearchResult) []driven.ChatMessage {
	if s.prompts == nil {
		return BuildMessages(query, results)
	}
	return buildMessages(
		s.loadPrompt(driven.PromptSynthesisSystem, SystemPrompt, 0),
		s.loadPrompt(driven.PromptSynthesisUser, UserPromptTemplate, 2),
		query, results,
	)
}

// loadPrompt returns the stored prompt when it is non-empty and has exactly
// verbs %s placeholders and no other formatting verbs, else fallback.
func (s *Synthesizer) loadPrompt(name, fallback string, verbs int) string {
	prompt, err := s.prompts.Load(name)
	switch {
	case err != nil:
		logger.Debug("prompt %s unavailable, using built-in: %v", name, err)
		return fallback
	case strings.TrimSpace(prompt) == "":
		logger.Debug("prompt %s is empty, using built-in", name)
		return fallback
	case strings.Count(prompt, "%s") != verbs || strings.Count(prompt, "%") != verbs:
		logger.Warn("prompt %s needs exactly %d %%s placeholders, using built-in", name, verbs)
		return fallback
	}
	return prompt
}

// BuildMessages builds the system and user messages for a query.
// Passages are numbered from 1 in ranking order.
func BuildMessages(query string, results []domain.SearchResult) []driven.ChatMessage {
	return buildMessages(SystemPrompt, UserPromptTemplate, query, results)
}

func buildMessages(system, template, query string, results []domain.SearchResult) []driven.ChatMessage {
	docs := make([]string, len(results))
	for i, r := range results {
		docs[i] = fmt.Sprintf("Document %d: %s", i+1, r.Text)
	}

	return []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system},
		{Role: driven.RoleUser, Content: fmt.Sprintf(template, query, strings.Join(docs, "\n\n"))},
	}
}
