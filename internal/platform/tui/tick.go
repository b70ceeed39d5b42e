// Package tui provides the Bubble Tea front end for the playground.
// It owns the command input, feedback toast, status pills, history view
// and the frame loop that drives scene animation.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reality-controller/internal/playground"
)

// TickMsg is sent to advance the scene animation by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// applyMsg fires once the processing delay of a submitted command is over.
type applyMsg struct {
	command string
}

// expireMsg delivers a playground expiry back to the event loop.
type expireMsg struct {
	expiry playground.Expiry
}

// hideFeedbackMsg hides the toast if it still belongs to generation gen.
type hideFeedbackMsg struct {
	gen uint64
}

func applyCmd(delay time.Duration, command string) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return applyMsg{command: command}
	})
}

func expireCmd(e playground.Expiry) tea.Cmd {
	return tea.Tick(e.After, func(time.Time) tea.Msg {
		return expireMsg{expiry: e}
	})
}

func hideFeedbackCmd(after time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return hideFeedbackMsg{gen: gen}
	})
}
