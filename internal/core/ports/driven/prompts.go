package driven

// Prompt names used with PromptStore.
const (
	// PromptSynthesisSystem is the system message sent with every synthesis request.
	PromptSynthesisSystem = "synthesis_system"

	// PromptSynthesisUser is the user message template. It takes the question
	// and the numbered context block, in that order, as %s placeholders.
	PromptSynthesisUser = "synthesis_user"
)

// PromptStore loads user-edited prompt templates. Callers keep their own
// built-in prompts and use them whenever Load fails.
type PromptStore interface {
	// Load returns the named prompt, or domain.ErrNotFound when the user has
	// none.
	Load(name string) (string, error)
}
