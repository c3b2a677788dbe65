package ui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/chatbot-tui/internal/client/conversation"
	"github.com/yourusername/chatbot-tui/internal/client/dispatch"
)

type stubSender struct {
	mu       sync.Mutex
	reply    string
	err      error
	messages []string
}

func (s *stubSender) Send(ctx context.Context, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return s.reply, s.err
}

func (s *stubSender) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func newTestModel(t *testing.T, sender dispatch.Sender, opts Options) Model {
	t.Helper()
	d := dispatch.New(conversation.NewStore(), sender)
	if opts.Endpoint == "" {
		opts.Endpoint = "http://localhost:8080/chat"
	}
	m := NewModel(d, opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: key})
	return updated.(Model), cmd
}

func plainView(m Model) string {
	return ansi.Strip(m.View())
}

// collect runs cmd and any batched children, returning the produced messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle runs the send command and feeds its result back into the model
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		if s, ok := msg.(settledMsg); ok {
			updated, _ := m.Update(s)
			return updated.(Model)
		}
	}
	t.Fatal("command produced no settledMsg")
	return m
}

func TestTypingUpdatesDraft(t *testing.T) {
	m := newTestModel(t, &stubSender{}, Options{})

	m = typeText(m, "Hel")
	m = typeText(m, "lo")

	assert.Equal(t, "Hello", m.store.Draft())
	assert.Equal(t, "Hello", m.input.Value())
}

func TestLongDraftIsNotTruncated(t *testing.T) {
	sender := &stubSender{reply: "ok"}
	m := newTestModel(t, sender, Options{})
	long := strings.Repeat("a", 2500)

	m = typeText(m, long)
	assert.Equal(t, long, m.store.Draft())

	m, cmd := press(m, tea.KeyEnter)
	settle(t, m, cmd)
	require.Equal(t, 1, sender.calls())
	assert.Equal(t, long, sender.messages[0])
}

func TestEnterWithBlankDraftDoesNothing(t *testing.T) {
	for _, draft := range []string{"", "  ", "   "} {
		sender := &stubSender{reply: "unused"}
		m := newTestModel(t, sender, Options{})
		m = typeText(m, draft)

		m, cmd := press(m, tea.KeyEnter)

		assert.Nil(t, cmd)
		assert.Equal(t, 0, m.store.Len())
		assert.False(t, m.store.Pending())
		assert.Equal(t, 0, sender.calls())
	}
}

func TestSubmitRoundTrip(t *testing.T) {
	sender := &stubSender{reply: "Hi there"}
	m := newTestModel(t, sender, Options{})
	m = typeText(m, "Hello")

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	// Echoed and pending before the request runs
	assert.Equal(t, 0, sender.calls())
	assert.True(t, m.store.Pending())
	require.Equal(t, 1, m.store.Len())
	view := plainView(m)
	assert.Contains(t, view, "Hello")
	assert.Contains(t, view, "Bot is thinking...")
	assert.Contains(t, view, "Sending...")

	m = settle(t, m, cmd)

	msgs := m.store.Transcript()
	require.Len(t, msgs, 2)
	assert.Equal(t, conversation.RoleUser, msgs[0].Role)
	assert.Equal(t, "Hello", msgs[0].Content)
	assert.Equal(t, conversation.RoleBot, msgs[1].Role)
	assert.Equal(t, "Hi there", msgs[1].Content)
	assert.False(t, m.store.Pending())
	assert.Equal(t, "", m.store.Draft())
	assert.Equal(t, "", m.input.Value())

	view = plainView(m)
	assert.Contains(t, view, "Hi there")
	assert.Contains(t, view, "[ Send ]")
	assert.NotContains(t, view, "Bot is thinking...")
}

func TestEnterWhilePendingIsIgnored(t *testing.T) {
	sender := &stubSender{reply: "ok"}
	m := newTestModel(t, sender, Options{})
	m = typeText(m, "first")

	m, first := press(m, tea.KeyEnter)
	require.NotNil(t, first)

	m = typeText(m, " more")
	m, second := press(m, tea.KeyEnter)
	assert.Nil(t, second)
	assert.Equal(t, 1, m.store.Len())

	m = settle(t, m, first)
	assert.Equal(t, 1, sender.calls())
	assert.Equal(t, 2, m.store.Len())
	// Text typed while waiting is cleared on settlement
	assert.Equal(t, "", m.store.Draft())
}

func TestFailureShowsNotice(t *testing.T) {
	sender := &stubSender{err: errors.New("dial tcp: connection refused")}
	m := newTestModel(t, sender, Options{})
	m = typeText(m, "Ping")

	m, cmd := press(m, tea.KeyEnter)
	m = settle(t, m, cmd)

	last, ok := m.store.Last()
	require.True(t, ok)
	assert.Equal(t, conversation.RoleBot, last.Role)
	assert.Equal(t, dispatch.FailureNotice, last.Content)
	assert.False(t, m.store.Pending())

	view := plainView(m)
	assert.Contains(t, view, "Unable to reach the chatbot")
	assert.NotContains(t, view, "connection refused")
}

func TestEscDismissesBannerForGood(t *testing.T) {
	m := newTestModel(t, &stubSender{}, Options{})
	require.True(t, m.store.BannerVisible())
	assert.Contains(t, plainView(m), "Cold starts")
	heightWithBanner := m.viewport.Height

	m, _ = press(m, tea.KeyEsc)
	assert.False(t, m.store.BannerVisible())
	assert.NotContains(t, plainView(m), "Cold starts")
	assert.Greater(t, m.viewport.Height, heightWithBanner)

	m, _ = press(m, tea.KeyEsc)
	assert.False(t, m.store.BannerVisible())
}

func TestCtrlCQuitsAndDropsLateReply(t *testing.T) {
	sender := &stubSender{reply: "too late"}
	m := newTestModel(t, sender, Options{})
	m = typeText(m, "Hello")

	m, sendCmd := press(m, tea.KeyEnter)
	require.NotNil(t, sendCmd)

	m, quitCmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, quitCmd)
	assert.IsType(t, tea.QuitMsg{}, quitCmd())
	assert.Error(t, m.ctx.Err())

	m = settle(t, m, sendCmd)
	assert.Equal(t, 1, m.store.Len())
}

func TestSpinnerStopsWhenIdle(t *testing.T) {
	m := newTestModel(t, &stubSender{}, Options{})

	_, cmd := m.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestStaleSpinnerTicksAreIgnored(t *testing.T) {
	m := newTestModel(t, &stubSender{reply: "ok"}, Options{})

	m = typeText(m, "first")
	m, cmd := press(m, tea.KeyEnter)
	var stale spinner.TickMsg
	for _, msg := range collect(cmd) {
		switch msg := msg.(type) {
		case spinner.TickMsg:
			stale = msg
		case settledMsg:
			updated, _ := m.Update(msg)
			m = updated.(Model)
		}
	}
	require.NotZero(t, stale.ID)

	m = typeText(m, "second")
	m, cmd = press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.True(t, m.store.Pending())

	_, staleCmd := m.Update(stale)
	assert.Nil(t, staleCmd)

	_, freshCmd := m.Update(m.spinner.Tick())
	assert.NotNil(t, freshCmd)
}

func TestEmptyTranscriptPlaceholder(t *testing.T) {
	m := newTestModel(t, &stubSender{}, Options{})
	assert.Contains(t, plainView(m), "Say hello to start the conversation.")
	assert.Contains(t, plainView(m), "http://localhost:8080/chat")
}

func TestMarkdownRepliesAreRendered(t *testing.T) {
	sender := &stubSender{reply: "this is **bold** text"}
	m := newTestModel(t, sender, Options{Markdown: true})
	require.NotNil(t, m.markdown)

	m = typeText(m, "Hello")
	m, cmd := press(m, tea.KeyEnter)
	m = settle(t, m, cmd)

	transcript := ansi.Strip(m.renderTranscript(m.viewport.Width))
	assert.Contains(t, transcript, "bold")
	assert.False(t, strings.Contains(transcript, "**bold**"))

	// The stored message keeps the raw reply
	last, _ := m.store.Last()
	assert.Equal(t, "this is **bold** text", last.Content)
}

func TestMarkdownKeepsLiteralHTML(t *testing.T) {
	for _, reply := range []string{"Use <div> tags", "close with </p>", "<!-- note --> done"} {
		sender := &stubSender{reply: reply}
		m := newTestModel(t, sender, Options{Markdown: true})

		m = typeText(m, "Hello")
		m, cmd := press(m, tea.KeyEnter)
		m = settle(t, m, cmd)

		assert.Equal(t, reply, m.renderBotContent(reply))
		assert.Contains(t, ansi.Strip(m.renderTranscript(m.viewport.Width)), reply)
	}
}

func TestPlainRepliesByDefault(t *testing.T) {
	sender := &stubSender{reply: "2*3*4 is 24"}
	m := newTestModel(t, sender, Options{})
	assert.Nil(t, m.markdown)

	m = typeText(m, "math")
	m, cmd := press(m, tea.KeyEnter)
	m = settle(t, m, cmd)

	assert.Contains(t, ansi.Strip(m.renderTranscript(m.viewport.Width)), "2*3*4 is 24")
}
