package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/services"
)

// chromeHeight is the number of rows used by the header, input and status bar.
const chromeHeight = 6

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.ChatInput
	transcript *transcript.Transcript
	statusBar  *status.Bar

	// mode selects knowledge-base or routed answers.
	mode messages.Mode

	// pending is true while a query is in flight.
	pending bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		input:      input.NewChatInput(s),
		transcript: transcript.New(s),
		statusBar:  status.NewBar(s, km),
		mode:       messages.ModeAsk,
	}
	a.statusBar.SetMode(a.mode.String())

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("shopdesk"),
		a.input.Init(),
		a.loadStats(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.QuerySubmitted:
		return a, a.runQuery(msg)

	case messages.AnswerReceived:
		a.finishQuery()
		a.addAnswer(msg.Response)
		return a, a.loadStats()

	case messages.ToolAnswerReceived:
		a.finishQuery()
		a.addToolAnswer(msg.Route, msg.Response)
		return a, a.loadStats()

	case messages.StatsLoaded:
		a.statusBar.SetStore(msg.Stats.State, msg.Stats.ActiveTier)
		return a, nil

	case messages.ErrorOccurred:
		a.finishQuery()
		a.setError(msg.Err)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(key, a.keymap.Send):
		query := strings.TrimSpace(a.input.Value())
		if query == "" || a.pending {
			return a, nil
		}
		a.input.Reset()
		a.pending = true
		a.err = nil
		a.statusBar.Clear()
		a.statusBar.SetState(status.StateThinking)
		a.transcript.Add(transcript.Entry{Role: transcript.RoleCustomer, Text: query})
		submitted := messages.QuerySubmitted{Query: query, Mode: a.mode}
		return a, func() tea.Msg { return submitted }

	case keymap.Matches(key, a.keymap.Mode):
		a.toggleMode()
		return a, nil

	case keymap.Matches(key, a.keymap.ScrollUp), keymap.Matches(key, a.keymap.ScrollDown):
		var cmd tea.Cmd
		a.transcript, cmd = a.transcript.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// toggleMode switches between ask and assist when an assistant is wired.
func (a *App) toggleMode() {
	if a.ports.Assistant == nil {
		return
	}
	if a.mode == messages.ModeAsk {
		a.mode = messages.ModeAssist
	} else {
		a.mode = messages.ModeAsk
	}
	a.statusBar.SetMode(a.mode.String())
}

// runQuery answers a submitted query off the update loop.
func (a *App) runQuery(msg messages.QuerySubmitted) tea.Cmd {
	ctx := a.ctx
	retrieval := a.ports.Retrieval
	assistant := a.ports.Assistant

	return func() tea.Msg {
		if msg.Mode == messages.ModeAssist {
			if assistant == nil {
				return messages.ErrorOccurred{Err: errors.New("assist mode is not available")}
			}
			return messages.ToolAnswerReceived{
				Route:    assistant.Route(msg.Query),
				Response: assistant.Assist(ctx, msg.Query, nil),
			}
		}
		return messages.AnswerReceived{Response: retrieval.ProcessQuery(ctx, msg.Query, nil)}
	}
}

func (a *App) loadStats() tea.Cmd {
	ctx := a.ctx
	retrieval := a.ports.Retrieval
	return func() tea.Msg {
		return messages.StatsLoaded{Stats: retrieval.Stats(ctx)}
	}
}

func (a *App) finishQuery() {
	a.pending = false
	a.statusBar.SetState(status.StateReady)
}

func (a *App) addAnswer(resp domain.QueryResponse) {
	if !resp.OK() {
		a.setError(errors.New(resp.Error))
		return
	}
	a.transcript.Add(transcript.Entry{
		Role:    transcript.RoleAssistant,
		Text:    resp.Answer,
		Sources: citedSources(resp.Sources),
	})
}

func (a *App) addToolAnswer(route domain.Route, resp domain.ToolResponse) {
	if !resp.OK() {
		a.setError(errors.New(resp.Error))
		return
	}

	entry := transcript.Entry{
		Role:  transcript.RoleAssistant,
		Text:  services.FormatResponse(resp),
		Label: route.Tool,
	}
	if sources, ok := resp.Data.([]domain.Source); ok {
		entry.Sources = citedSources(sources)
	}
	a.transcript.Add(entry)
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
	a.transcript.Add(transcript.Entry{Role: transcript.RoleError, Text: err.Error()})
}

func citedSources(sources []domain.Source) []transcript.Source {
	cited := make([]transcript.Source, 0, len(sources))
	for _, src := range sources {
		name := src.ID
		if fn, ok := src.Metadata[domain.MetaFilename].(string); ok && fn != "" {
			name = fn
		}
		cited = append(cited, transcript.Source{Name: name, Score: src.SimilarityScore})
	}
	return cited
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.styles.Title.Render("shopdesk") + a.styles.Muted.Render("  customer support assistant")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		a.transcript.View(),
		a.input.View(),
		a.statusBar.View(),
	)
}

// Mode returns the current answer mode.
func (a *App) Mode() messages.Mode {
	return a.mode
}

// Pending reports whether a query is in flight.
func (a *App) Pending() bool {
	return a.pending
}

// Transcript returns the conversation so far.
func (a *App) Transcript() []transcript.Entry {
	return a.transcript.Entries()
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and resizes the components.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)
	a.transcript.SetSize(width, height-chromeHeight)
}

// Run starts the chat in the alternate screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}
