// Package transcript provides the scrolling chat history component.
package transcript

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/styles"
)

// Role identifies who wrote a transcript entry.
type Role int

const (
	RoleCustomer Role = iota
	RoleAssistant
	RoleError
)

// Source is a passage cited under an answer.
type Source struct {
	Name  string
	Score float64
}

// Entry is one turn of the conversation.
type Entry struct {
	Role    Role
	Text    string
	Label   string
	Sources []Source
}

// Transcript renders the conversation in a scrollable viewport.
type Transcript struct {
	viewport viewport.Model
	styles   *styles.Styles
	entries  []Entry
}

// New creates an empty transcript.
func New(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Transcript{
		viewport: viewport.New(80, 20),
		styles:   s,
	}
}

// Add appends an entry and scrolls to the bottom.
func (t *Transcript) Add(e Entry) {
	t.entries = append(t.entries, e)
	t.refresh()
	t.viewport.GotoBottom()
}

// Entries returns the conversation so far.
func (t *Transcript) Entries() []Entry {
	return t.entries
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// SetSize resizes the viewport and re-wraps the entries.
func (t *Transcript) SetSize(width, height int) {
	t.viewport.Width = width
	t.viewport.Height = max(height, 1)
	t.refresh()
}

// Update forwards scrolling keys to the viewport.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the visible part of the transcript.
func (t *Transcript) View() string {
	return t.viewport.View()
}

func (t *Transcript) refresh() {
	if len(t.entries) == 0 {
		t.viewport.SetContent(t.styles.Muted.Render("Ask a question to get started."))
		return
	}

	blocks := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		blocks = append(blocks, t.render(e))
	}
	t.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

func (t *Transcript) render(e Entry) string {
	width := max(t.viewport.Width-2, 10)
	body := t.styles.Normal.Width(width).Render(e.Text)

	var header string
	switch e.Role {
	case RoleCustomer:
		header = t.styles.Customer.Render("You")
	case RoleError:
		header = t.styles.Error.Render("Error")
		body = t.styles.Error.Width(width).Render(e.Text)
	default:
		header = t.styles.Assistant.Render("Assistant")
	}
	if e.Label != "" {
		header += t.styles.Muted.Render(" [" + e.Label + "]")
	}

	lines := []string{header, body}
	if len(e.Sources) > 0 {
		cited := make([]string, len(e.Sources))
		for i, src := range e.Sources {
			cited[i] = fmt.Sprintf("%s (%.2f)", src.Name, src.Score)
		}
		lines = append(lines, t.styles.Muted.Width(width).Render("Sources: "+strings.Join(cited, ", ")))
	}
	return strings.Join(lines, "\n")
}
