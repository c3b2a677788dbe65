package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/chatbot-tui/internal/client/dispatch"
)

// settledMsg carries a finished chat request back to the update loop
type settledMsg struct {
	outcome dispatch.Outcome
}

// sendCmd performs the network call off the update loop.
// The store is only touched again when settledMsg is handled.
func sendCmd(ctx context.Context, d *dispatch.Dispatcher, req dispatch.Request) tea.Cmd {
	return func() tea.Msg {
		return settledMsg{outcome: d.Send(ctx, req)}
	}
}
