package file

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// DirName is the config directory created under the user's home.
const DirName = ".shopdesk"

// configFile is the settings file inside the config directory.
const configFile = "config.toml"

// ConfigStore keeps settings in config.toml. The section part of a key maps
// to a TOML table, so "vector_store.uri" is written as uri under
// [vector_store]. Every change rewrites the whole file.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// DefaultDir returns ~/.shopdesk.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// NewConfigStore opens dir/config.toml, creating dir when needed.
// An empty dir means DefaultDir. A missing file is an empty store.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	s := &ConfigStore{
		path:   filepath.Join(dir, configFile),
		values: make(map[string]any),
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var tables map[string]any
	if err := toml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	flatten(s.values, "", tables)
	return s, nil
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt truncates floats; TOML decodes integers as int64.
func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	f, ok := number(v)
	if !ok {
		return 0
	}
	return int(f)
}

func (s *ConfigStore) GetFloat(key string) (float64, bool) {
	v, _ := s.Get(key)
	return number(v)
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.write()
}

func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.write()
}

func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

func (s *ConfigStore) Path() string { return s.path }

// write saves the file with owner-only permissions since it can hold API
// keys. Caller holds the lock.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(nest(s.values))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// flatten copies tables into dst under dot-joined keys.
func flatten(dst map[string]any, prefix string, tables map[string]any) {
	for k, v := range tables {
		if prefix != "" {
			k = prefix + "." + k
		}
		if inner, ok := v.(map[string]any); ok {
			flatten(dst, k, inner)
			continue
		}
		dst[k] = v
	}
}

// nest is the inverse of flatten.
func nest(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range flat {
		parts := strings.Split(k, ".")
		table := out
		for _, p := range parts[:len(parts)-1] {
			inner, ok := table[p].(map[string]any)
			if !ok {
				inner = make(map[string]any)
				table[p] = inner
			}
			table = inner
		}
		table[parts[len(parts)-1]] = v
	}
	return out
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
