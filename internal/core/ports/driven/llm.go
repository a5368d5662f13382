package driven

import "context"

// Message roles understood by every LLMService.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LLMService writes answers from retrieved context. Any error it returns
// is answered by falling back to the best passage, so implementations
// should fail fast rather than retry.
type LLMService interface {
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)
	ModelName() string

	// Ping fails when the configured model cannot serve requests.
	Ping(ctx context.Context) error

	Close() error
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatOptions bounds a single completion. Zero values leave the provider
// default in place.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}
