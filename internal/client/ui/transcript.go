package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/chatbot-tui/internal/client/conversation"
)

// rawHTML matches anything glamour would treat as an HTML tag or comment
var rawHTML = regexp.MustCompile(`<[A-Za-z/!?]`)

func newMarkdownRenderer(wrap int) *glamour.TermRenderer {
	if wrap < 10 {
		wrap = 10
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderTranscript lays out messages oldest first: user on the right, bot on the left
func (m Model) renderTranscript(width int) string {
	msgs := m.store.Transcript()
	if len(msgs) == 0 {
		return emptyStateStyle.Width(width).Render("Say hello to start the conversation.")
	}

	maxBubble := width * 3 / 4
	if maxBubble < 10 {
		maxBubble = width
	}

	lines := make([]string, 0, len(msgs)*2)
	for _, msg := range msgs {
		switch msg.Role {
		case conversation.RoleUser:
			bubble := renderBubble(userBubbleStyle, msg.Content, maxBubble)
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		default:
			bubble := renderBubble(botBubbleStyle, m.renderBotContent(msg.Content), maxBubble)
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Left, bubble))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// renderBotContent renders markdown when enabled, falling back to plain text.
// Replies containing HTML stay plain because glamour strips tags.
func (m Model) renderBotContent(content string) string {
	if m.markdown == nil || strings.TrimSpace(content) == "" || rawHTML.MatchString(content) {
		return content
	}
	out, err := m.markdown.Render(content)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Markdown render failed")
		return content
	}
	return strings.Trim(out, "\n")
}

// renderBubble wraps long content at maxWidth columns; short content keeps its width
func renderBubble(style lipgloss.Style, content string, maxWidth int) string {
	if lipgloss.Width(content)+style.GetHorizontalPadding() > maxWidth {
		style = style.Width(maxWidth)
	}
	return style.Render(content)
}
