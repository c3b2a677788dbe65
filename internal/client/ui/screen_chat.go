package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const bannerText = "⚠️ This chatbot is hosted on a free tier. Cold starts may cause a 30-50 second delay if the service is inactive."

// updateChat handles key presses on the chat screen
func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Shutdown()
		return m, tea.Quit

	case "esc":
		if m.store.BannerVisible() {
			m.store.DismissBanner()
			m.layout()
		}
		return m, nil

	case "enter":
		return m.submit()

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetDraft(m.input.Value())
	return m, cmd
}

// submit hands the draft to the dispatcher. A rejected draft (blank, or a
// request already in flight) does nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, ok := m.dispatcher.Submit()
	if !ok {
		return m, nil
	}

	m.refreshTranscript()
	m.spinner = newSpinner()
	return m, tea.Batch(
		sendCmd(m.ctx, m.dispatcher, req),
		m.spinner.Tick,
	)
}

// layout sizes the widgets for the current terminal and banner state
func (m *Model) layout() {
	innerWidth := m.width - 4 // border + padding
	if innerWidth < 20 {
		innerWidth = 20
	}

	// title, transcript border, thinking line, input box, status bar
	chrome := 1 + 2 + 1 + 3 + 1
	if m.store.BannerVisible() {
		chrome += lipgloss.Height(m.renderBanner())
	}

	vpHeight := m.height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = innerWidth
	m.viewport.Height = vpHeight
	m.input.Width = innerWidth - lipgloss.Width(m.input.Prompt) - 1

	m.markdown = nil
	if m.useMarkdown {
		m.markdown = newMarkdownRenderer(innerWidth - 4)
	}

	m.refreshTranscript()
}

// refreshTranscript re-renders the messages and scrolls to the newest one
func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript(m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) renderBanner() string {
	text := bannerText + "  " + mutedStyle.Render("[esc ✖]")
	return bannerStyle.Width(m.width - 2).Render(text)
}

// viewChat renders the chat screen
func (m Model) viewChat() string {
	sections := []string{titleStyle.Render("💬 Chatbot")}

	if m.store.BannerVisible() {
		sections = append(sections, m.renderBanner())
	}

	sections = append(sections, transcriptBoxStyle.Render(m.viewport.View()))

	thinking := ""
	if m.store.Pending() {
		thinking = m.spinner.View() + " " + thinkingStyle.Render("🤖 Bot is thinking...")
	}
	sections = append(sections, thinking)

	sections = append(sections,
		inputBoxStyle.Width(m.width-2).Render(m.input.View()),
		m.renderStatusBar(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar shows the send control and key hints
func (m Model) renderStatusBar() string {
	send := highlightStyle.Render("[ Send ]")
	if m.store.Pending() {
		send = disabledStyle.Render("[ Sending... ]")
	}

	hints := mutedStyle.Render("ENTER send  •  PGUP/PGDN scroll  •  ")
	if m.store.BannerVisible() {
		hints += mutedStyle.Render("ESC dismiss  •  ")
	}
	hints += mutedStyle.Render("CTRL+C quit  •  ") + mutedStyle.Render(m.endpoint)

	return send + "  " + hints
}
