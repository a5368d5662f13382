// Package styles holds the lipgloss styles of the chat TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// Palette names the colours the chat screen is drawn with. Each colour
// adapts to light and dark terminal backgrounds.
type Palette struct {
	Brand     lipgloss.AdaptiveColor
	Customer  lipgloss.AdaptiveColor
	Assistant lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Faint     lipgloss.AdaptiveColor
	Good      lipgloss.AdaptiveColor
	Degraded  lipgloss.AdaptiveColor
	Bad       lipgloss.AdaptiveColor
	Frame     lipgloss.AdaptiveColor
	Bar       lipgloss.AdaptiveColor
}

// ShopPalette is the default palette.
func ShopPalette() Palette {
	return Palette{
		Brand:     lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"},
		Customer:  lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"},
		Assistant: lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"},
		Text:      lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"},
		Faint:     lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Good:      lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"},
		Degraded:  lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FACC15"},
		Bad:       lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
		Frame:     lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"},
		Bar:       lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#111827"},
	}
}

// Styles are the rendered styles shared by the TUI components.
type Styles struct {
	palette Palette

	Title      lipgloss.Style
	Customer   lipgloss.Style
	Assistant  lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
}

// NewStyles builds styles from p.
func NewStyles(p Palette) *Styles {
	text := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		palette:    p,
		Title:      text(p.Brand).Bold(true),
		Customer:   text(p.Customer).Bold(true),
		Assistant:  text(p.Assistant).Bold(true),
		Normal:     text(p.Text),
		Muted:      text(p.Faint),
		Error:      text(p.Bad),
		Success:    text(p.Good),
		Warning:    text(p.Degraded),
		InputField: lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Frame).Padding(0, 1),
		StatusBar:  text(p.Faint).Background(p.Bar).Padding(0, 1),
	}
}

// DefaultStyles returns styles for ShopPalette.
func DefaultStyles() *Styles {
	return NewStyles(ShopPalette())
}

// Palette returns the colours these styles were built from.
func (s *Styles) Palette() Palette {
	return s.palette
}

// Store picks the style for a vector store state label.
func (s *Styles) Store(state string) lipgloss.Style {
	switch state {
	case domain.StateConnected.String():
		return s.Success
	case domain.StateDegraded.String():
		return s.Warning
	default:
		return s.Muted
	}
}
