package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reality-controller/internal/storage"
)

// History layout constants
const (
	maxHistory     = 100 // Max journal entries to load
	historyMinRows = 3
)

// historyView shows the journal of the current session.
type historyView struct {
	table   table.Model
	entries []storage.Entry
	counts  map[string]int
	err     error
}

func newHistoryView(width, height int) historyView {
	return historyView{table: newHistoryTable(width, height)}
}

// newHistoryTable creates a table sized to the terminal.
func newHistoryTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Time", Width: 10},
		{Title: "Command", Width: 30},
		{Title: "Rule", Width: 12},
	}

	// Give the command column whatever is left
	tableWidth := width - 8
	if extra := tableWidth - 5 - 10 - 12 - 8; extra > columns[2].Width {
		columns[2].Width = min(extra, 60)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-9, historyMinRows)), // Room for title, counts and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the session journal and the overall rule counts.
func (h *historyView) load(store *storage.Store, sessionID string) {
	h.entries, h.counts, h.err = nil, nil, nil
	if store == nil {
		h.updateRows()
		return
	}

	entries, err := store.SessionHistory(sessionID, maxHistory)
	if err != nil {
		h.err = err
		h.updateRows()
		return
	}
	h.entries = entries

	counts, err := store.RuleCounts()
	if err != nil {
		h.err = err
	}
	h.counts = counts
	h.updateRows()
}

func (h *historyView) updateRows() {
	rows := make([]table.Row, len(h.entries))
	for i, e := range h.entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(h.entries)-i),
			e.CreatedAt.Local().Format("15:04:05"),
			e.Command,
			e.Rule,
		}
	}
	h.table.SetRows(rows)
	h.table.GotoTop()
}

// countsLine summarizes how often each rule fired, most used first.
func (h historyView) countsLine() string {
	if len(h.counts) == 0 {
		return ""
	}
	rules := make([]string, 0, len(h.counts))
	for r := range h.counts {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool {
		if h.counts[rules[i]] != h.counts[rules[j]] {
			return h.counts[rules[i]] > h.counts[rules[j]]
		}
		return rules[i] < rules[j]
	})

	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = fmt.Sprintf("%s %d", r, h.counts[r])
	}
	return "All sessions: " + strings.Join(parts, " · ")
}

// View renders the table or an empty message.
func (h historyView) View(width int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("COMMAND HISTORY", width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	switch {
	case h.err != nil:
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Padding(1, 2).
			Render("Journal unavailable: " + h.err.Error())
	case len(h.entries) == 0:
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No commands recorded yet.\nType one to bend reality!")
	default:
		content = h.table.View()
	}
	b.WriteString(centerText(tableStyle.Render(content), width))

	if line := h.countsLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(centerText(line, width)))
	}

	return b.String()
}
