package tui

import (
	"context"

	"chatlist/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
)

// actionMsg carries the outcome of a gateway effect back onto the update loop.
type actionMsg struct {
	action roster.Action
}

// effect runs fn off the update loop and delivers its action as an actionMsg.
// No deadline is imposed; results arriving after the screen changed are still applied
// to the roster, which outlives the screen.
func effect(fn func(ctx context.Context) roster.Action) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{action: fn(context.Background())}
	}
}
