// Package tui provides the Bubble Tea integration for the idler. It runs
// the fixed-timestep session loop, maps keys to player intents, and renders
// the character sheet; all simulation happens in the sim package.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// given interval in milliseconds.
func tickCmd(tickMS int) tea.Cmd {
	if tickMS <= 0 {
		tickMS = 100
	}
	return tea.Tick(time.Duration(tickMS)*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
