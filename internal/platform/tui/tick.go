// Package tui provides the Bubble Tea integration for brickhole.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickhole/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick after the frame
// interval. The model re-arms it after every tick it wants to continue.
func tickCmd(tickRate int) tea.Cmd {
	interval := core.NewScheduler(tickRate).Interval()
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
