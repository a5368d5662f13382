package driving

import "github.com/custodia-labs/shopdesk/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults, then config file, then environment.
	Get() (*domain.AppSettings, error)

	// Set stores a single dot-notation key after validating the result.
	Set(key, value string) error

	// Unset removes a stored key so its default or environment value applies again.
	Unset(key string) error

	// StoredKeys lists the keys held in the config store.
	StoredKeys() []string

	// Validate checks settings against their constraints.
	Validate(settings *domain.AppSettings) error
}
