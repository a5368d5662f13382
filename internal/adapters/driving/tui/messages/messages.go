// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// Mode selects which service answers the customer.
type Mode int

const (
	// ModeAsk answers from the knowledge base only.
	ModeAsk Mode = iota
	// ModeAssist routes the query to the matching tool.
	ModeAssist
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAsk:
		return "ask"
	case ModeAssist:
		return "assist"
	default:
		return "unknown"
	}
}

// QuerySubmitted is sent when the customer presses enter.
type QuerySubmitted struct {
	Query string
	Mode  Mode
}

// AnswerReceived carries a knowledge-base envelope back to the model.
type AnswerReceived struct {
	Response domain.QueryResponse
}

// ToolAnswerReceived carries a routed tool envelope back to the model.
type ToolAnswerReceived struct {
	Route    domain.Route
	Response domain.ToolResponse
}

// StatsLoaded carries the vector store state shown in the status bar.
type StatsLoaded struct {
	Stats domain.StoreStats
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
