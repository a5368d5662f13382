package driven

// ConfigStore persists flat dot-notation settings such as "vector_store.uri".
// Numbers may be held as int, int64 or float64 depending on the backing
// format; GetInt and GetFloat accept all three.
type ConfigStore interface {
	Get(key string) (any, bool)

	// GetString returns "" for missing keys and non-string values.
	GetString(key string) string

	// GetInt returns 0 for missing keys and non-numeric values.
	GetInt(key string) int

	// GetFloat reports false for missing keys and non-numeric values.
	GetFloat(key string) (float64, bool)

	// Set stores value under key and persists it before returning.
	Set(key string, value any) error

	// Unset removes key. Removing a missing key is not an error.
	Unset(key string) error

	// Keys lists stored keys in sorted order.
	Keys() []string

	// Path locates the backing file, or ":memory:".
	Path() string
}
