package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore reads prompt overrides from <dir>/<name>.txt. A file is
// re-read when its modification time changes, so edits reach a running
// server without a restart.
//
// On first use the directory is seeded with the given defaults and a
// README. Files that already exist are left alone.
type PromptStore struct {
	dir      string
	defaults map[string]string
	seedOnce sync.Once

	mu    sync.Mutex
	cache map[string]cachedPrompt
}

type cachedPrompt struct {
	text    string
	modTime time.Time
}

// NewPromptStore creates a prompt store rooted at dir, or
// ~/.shopdesk/prompts when dir is empty.
func NewPromptStore(dir string, defaults map[string]string) (*PromptStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(base, "prompts")
	}

	return &PromptStore{
		dir:      dir,
		defaults: defaults,
		cache:    make(map[string]cachedPrompt),
	}, nil
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string { return s.dir }

// Load returns the trimmed contents of name's file, or domain.ErrNotFound
// when there is none.
func (s *PromptStore) Load(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", fmt.Errorf("%w: prompt name %q", domain.ErrInvalidInput, name)
	}
	s.seedOnce.Do(s.seed)

	path := filepath.Join(s.dir, name+".txt")
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("prompt %s: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[name]; ok && c.modTime.Equal(info.ModTime()) {
		return c.text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", name, err)
	}
	text := strings.TrimSpace(string(data))
	s.cache[name] = cachedPrompt{text: text, modTime: info.ModTime()}
	return text, nil
}

// seed writes defaults and the README. Failures only mean there is nothing
// to edit, so they are logged rather than returned.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		logger.Warn("prompts: create %s: %v", s.dir, err)
		return
	}

	files := map[string]string{"README.md": promptReadme}
	for name, text := range s.defaults {
		files[name+".txt"] = text + "\n"
	}

	for name, content := range files {
		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			logger.Warn("prompts: create %s: %v", path, err)
			continue
		}
		_, werr := f.WriteString(content)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			logger.Warn("prompts: write %s: %v", path, werr)
		}
	}
}

const promptReadme = `# shopdesk prompts

These files change how answers are written from retrieved passages.

- synthesis_system.txt is the system message sent with every question.
- synthesis_user.txt wraps the question and the passages. It needs exactly
  two %s placeholders: the question first, then the numbered passages.

A file that is empty or has the wrong placeholders is ignored and the
built-in prompt is used. Delete a file to restore the built-in text on the
next run. Edits apply to running servers as soon as the file is saved.
`
