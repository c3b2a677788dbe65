package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/yourusername/chatbot-tui/internal/client/conversation"
	"github.com/yourusername/chatbot-tui/internal/client/dispatch"
)

// Options configures the chat view
type Options struct {
	Endpoint string
	Markdown bool // render bot replies with glamour
	Logger   zerolog.Logger
}

// Model is the Bubble Tea model for the chat screen
type Model struct {
	store      *conversation.Store
	dispatcher *dispatch.Dispatcher

	// ctx is cancelled when the view goes away so an in-flight request stops
	ctx    context.Context
	cancel context.CancelFunc

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	useMarkdown bool
	markdown    *glamour.TermRenderer

	endpoint string
	width    int
	height   int
	logger   zerolog.Logger
}

// NewModel creates the chat model around a dispatcher and its store
func NewModel(d *dispatch.Dispatcher, opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 0 // drafts are unbounded
	ti.Prompt = "› "
	ti.PromptStyle = highlightStyle
	ti.Focus()

	m := Model{
		store:       d.Store(),
		dispatcher:  d,
		ctx:         ctx,
		cancel:      cancel,
		input:       ti,
		viewport:    viewport.New(76, 10),
		spinner:     newSpinner(),
		useMarkdown: opts.Markdown,
		endpoint:    opts.Endpoint,
		width:       80,
		height:      24,
		logger:      opts.Logger,
	}
	m.input.SetValue(m.store.Draft())
	m.layout()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.updateChat(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case settledMsg:
		m.dispatcher.Settle(msg.outcome)
		m.input.SetValue(m.store.Draft())
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once nothing is in flight
		if !m.store.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// BannerVisible reports whether the cold-start banner is still shown
func (m Model) BannerVisible() bool {
	return m.store.BannerVisible()
}

// View renders the current view
func (m Model) View() string {
	return m.viewChat()
}

// newSpinner returns a spinner with its own tick chain. Ticks from an older
// spinner are ignored by the new one.
func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return sp
}

// Shutdown abandons any in-flight request. Its settlement, if it ever
// arrives, is dropped.
func (m *Model) Shutdown() {
	m.dispatcher.Close()
	if m.cancel != nil {
		m.cancel()
	}
}
