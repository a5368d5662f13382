package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

func successRetrieval() *MockRetrievalService {
	return &MockRetrievalService{Response: domain.QueryResponse{
		Status: domain.StatusSuccess,
		Answer: "Returns are accepted within 30 days.",
		Sources: []domain.Source{{
			ID:              "1",
			Metadata:        map[string]any{domain.MetaFilename: "return_policy.pdf"},
			SimilarityScore: 0.85,
		}},
	}}
}

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func typeText(app *App, text string) {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// submit types a query, presses enter and runs the resulting commands.
func submit(t *testing.T, app *App, query string) {
	t.Helper()
	typeText(app, query)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	submitted := cmd()

	_, cmd = app.Update(submitted)
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingRetrievalService)
	assert.NoError(t, (&Ports{Retrieval: &MockRetrievalService{}}).Validate())
}

func TestNewApp(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app, err := NewApp(&Ports{Retrieval: &MockRetrievalService{}})

		require.NoError(t, err)
		assert.Equal(t, messages.ModeAsk, app.Mode())
		assert.False(t, app.Ready())
	})

	t.Run("invalid ports", func(t *testing.T) {
		app, err := NewApp(&Ports{})

		assert.ErrorIs(t, err, ErrMissingRetrievalService)
		assert.Nil(t, app)
	})
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t, &Ports{Retrieval: &MockRetrievalService{}})

	assert.NotNil(t, app.Init())
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app, err := NewApp(&Ports{Retrieval: &MockRetrievalService{}})
	require.NoError(t, err)

	assert.Equal(t, "Loading...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Retrieval: &MockRetrievalService{}})
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "shopdesk")
}

func TestApp_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		app := newTestApp(t, &Ports{Retrieval: &MockRetrievalService{}})

		_, cmd := app.Update(msg)

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestApp_AskShowsAnswerAndSources(t *testing.T) {
	retrieval := successRetrieval()
	app := newTestApp(t, &Ports{Retrieval: retrieval})

	submit(t, app, "return policy?")

	assert.Equal(t, []string{"return policy?"}, retrieval.Queries)
	assert.False(t, app.Pending())

	entries := app.Transcript()
	require.Len(t, entries, 2)
	assert.Equal(t, transcript.RoleCustomer, entries[0].Role)
	assert.Equal(t, "Returns are accepted within 30 days.", entries[1].Text)
	require.Len(t, entries[1].Sources, 1)
	assert.Equal(t, "return_policy.pdf", entries[1].Sources[0].Name)
	assert.Contains(t, app.View(), "Sources: return_policy.pdf (0.85)")
}

func TestApp_EmptyInputIgnored(t *testing.T) {
	app := newTestApp(t, &Ports{Retrieval: &MockRetrievalService{}})
	typeText(app, "   ")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, app.Transcript())
}

func TestApp_EnvelopeErrorShown(t *testing.T) {
	retrieval := &MockRetrievalService{Response: domain.QueryResponse{
		Status: domain.StatusError,
		Error:  "vector store unavailable",
	}}
	app := newTestApp(t, &Ports{Retrieval: retrieval})

	submit(t, app, "shipping?")

	require.Error(t, app.Err())
	assert.Equal(t, "vector store unavailable", app.Err().Error())
	entries := app.Transcript()
	assert.Equal(t, transcript.RoleError, entries[len(entries)-1].Role)
}

func TestApp_ModeToggle(t *testing.T) {
	t.Run("without assistant stays in ask", func(t *testing.T) {
		app := newTestApp(t, &Ports{Retrieval: &MockRetrievalService{}})

		app.Update(tea.KeyMsg{Type: tea.KeyTab})

		assert.Equal(t, messages.ModeAsk, app.Mode())
	})

	t.Run("with assistant switches to assist", func(t *testing.T) {
		app := newTestApp(t, &Ports{Retrieval: &MockRetrievalService{}, Assistant: &MockAssistantService{}})

		app.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, messages.ModeAssist, app.Mode())
		assert.Contains(t, app.View(), "mode: assist")

		app.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, messages.ModeAsk, app.Mode())
	})
}

func TestApp_AssistShowsToolLabel(t *testing.T) {
	assistant := &MockAssistantService{Response: domain.SuccessResponse(domain.ToolOrder, "",
		domain.GuidanceMessage{Message: "I can help you track orders."})}
	app := newTestApp(t, &Ports{Retrieval: &MockRetrievalService{}, Assistant: assistant})
	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	submit(t, app, "where is my order")

	entries := app.Transcript()
	require.Len(t, entries, 2)
	assert.Equal(t, "I can help you track orders.", entries[1].Text)
	assert.Equal(t, domain.ToolOrder, entries[1].Label)
}

func TestApp_StatsLoaded(t *testing.T) {
	app := newTestApp(t, &Ports{Retrieval: &MockRetrievalService{}})

	app.Update(messages.StatsLoaded{Stats: domain.StoreStats{State: "CONNECTED", ActiveTier: domain.TierRemote}})

	assert.Contains(t, app.View(), "store: CONNECTED (remote)")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, &Ports{Retrieval: &MockRetrievalService{}})

	app.Update(messages.ErrorOccurred{Err: errors.New("assist mode is not available")})

	assert.EqualError(t, app.Err(), "assist mode is not available")
	assert.Equal(t, status.StateError, app.statusBar.State())
}
