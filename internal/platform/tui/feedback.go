package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// FeedbackKind selects the toast styling.
type FeedbackKind int

const (
	FeedbackProcessing FeedbackKind = iota
	FeedbackSuccess
	FeedbackError
)

// Feedback is the toast shown after a command is submitted. Every show
// bumps the generation so a hide scheduled for an older toast is ignored.
type Feedback struct {
	Kind    FeedbackKind
	Message string
	Visible bool
	gen     uint64
}

// Processing shows the toast for a command that is about to be applied.
func (f *Feedback) Processing(command string) uint64 {
	return f.show(FeedbackProcessing, fmt.Sprintf("Processing: %q", command))
}

// Executed shows the confirmation for an applied command.
func (f *Feedback) Executed(command string) uint64 {
	return f.show(FeedbackSuccess, fmt.Sprintf("Command executed: %q", command))
}

// Error shows a failure message, e.g. a screenshot that could not be saved.
func (f *Feedback) Error(msg string) uint64 {
	return f.show(FeedbackError, msg)
}

// Info shows a neutral success message.
func (f *Feedback) Info(msg string) uint64 {
	return f.show(FeedbackSuccess, msg)
}

func (f *Feedback) show(kind FeedbackKind, msg string) uint64 {
	f.gen++
	f.Kind = kind
	f.Message = msg
	f.Visible = true
	return f.gen
}

// Hide hides the toast if gen is still current and reports whether it did.
func (f *Feedback) Hide(gen uint64) bool {
	if gen != f.gen {
		return false
	}
	f.Visible = false
	return true
}

// Generation returns the current toast generation.
func (f Feedback) Generation() uint64 {
	return f.gen
}

var feedbackStyles = map[FeedbackKind]lipgloss.Style{
	FeedbackProcessing: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3b82f6")).
		Foreground(lipgloss.Color("#93c5fd")).
		Padding(0, 1),
	FeedbackSuccess: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#22c55e")).
		Foreground(lipgloss.Color("#86efac")).
		Padding(0, 1),
	FeedbackError: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#a855f7")).
		Foreground(lipgloss.Color("#d8b4fe")).
		Padding(0, 1),
}

var feedbackIcons = map[FeedbackKind]string{
	FeedbackProcessing: "⚡",
	FeedbackSuccess:    "✓",
	FeedbackError:      "✦",
}

// View renders the toast, or an empty string when hidden.
func (f Feedback) View() string {
	if !f.Visible {
		return ""
	}
	return feedbackStyles[f.Kind].Render(feedbackIcons[f.Kind] + " " + f.Message)
}
