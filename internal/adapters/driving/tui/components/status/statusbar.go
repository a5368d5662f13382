// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/styles"
)

// State represents the current chat state for display.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateError    State = "error"
)

// Bar displays the chat state, answer mode, vector store state and key hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	state      State
	message    string
	mode       string
	storeState string
	activeTier string
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, mode and store.
func (s *Bar) renderLeft() string {
	var state string
	switch s.state {
	case StateThinking:
		state = s.styles.Muted.Render("Thinking...")
	case StateError:
		state = s.styles.Error.Render("Error")
		if s.message != "" {
			state = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
	default:
		state = s.styles.Muted.Render("Ready")
	}

	parts := []string{state}
	if s.mode != "" {
		parts = append(parts, s.styles.Normal.Render("mode: "+s.mode))
	}
	if s.storeState != "" {
		parts = append(parts, s.renderStore())
	}
	return strings.Join(parts, s.styles.Muted.Render(" | "))
}

func (s *Bar) renderStore() string {
	label := fmt.Sprintf("store: %s", s.storeState)
	if s.activeTier != "" {
		label += " (" + s.activeTier + ")"
	}

	return s.styles.Store(s.storeState).Render(label)
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetMode sets the answer mode label.
func (s *Bar) SetMode(mode string) {
	s.mode = mode
}

// SetStore sets the vector store state and active tier.
func (s *Bar) SetStore(state, tier string) {
	s.storeState = state
	s.activeTier = tier
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
