package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reality-controller/internal/config"
	"github.com/vovakirdan/reality-controller/internal/playground"
	"github.com/vovakirdan/reality-controller/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(Options{
		Config:        config.DefaultConfig(),
		Seed:          1,
		Store:         store,
		SessionID:     "test-session",
		ScreenshotDir: filepath.Join(t.TempDir(), "shots"),
		Width:         100,
		Height:        30,
	})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestSubmitProcessesThenApplies(t *testing.T) {
	m := newTestModel(t, nil)

	m = typeText(t, m, "  turn off gravity  ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit should schedule the apply")
	}
	if m.Processing() != "turn off gravity" {
		t.Errorf("Processing() = %q, want trimmed command", m.Processing())
	}
	if m.Input() != "" {
		t.Errorf("input not cleared: %q", m.Input())
	}
	fb := m.Feedback()
	if !fb.Visible || fb.Kind != FeedbackProcessing || fb.Message != `Processing: "turn off gravity"` {
		t.Errorf("feedback = %+v, want processing toast", fb)
	}

	// Typing is ignored while processing
	m = typeText(t, m, "x")
	if m.Input() != "" {
		t.Errorf("input accepted text while processing: %q", m.Input())
	}

	m, _ = update(t, m, applyMsg{command: "turn off gravity"})
	if m.Processing() != "" {
		t.Error("processing not cleared after apply")
	}
	st := m.Playground().State()
	if st.Gravity || !st.Floating {
		t.Errorf("state after apply = %v", st)
	}
	fb = m.Feedback()
	if fb.Kind != FeedbackSuccess || fb.Message != `Command executed: "turn off gravity"` {
		t.Errorf("feedback = %+v, want executed toast", fb)
	}
}

func TestBlankSubmitIgnored(t *testing.T) {
	m := newTestModel(t, nil)

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank submit should not schedule anything")
	}
	if m.Processing() != "" || m.Feedback().Visible {
		t.Error("blank submit changed state")
	}
}

func TestFeedbackHideGeneration(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, applyMsg{command: "spin"})
	first := m.Feedback().Generation()

	m, _ = update(t, m, applyMsg{command: "spin"})
	second := m.Feedback().Generation()

	// Stale hide is a no-op
	m, _ = update(t, m, hideFeedbackMsg{gen: first})
	if !m.Feedback().Visible {
		t.Error("stale hide removed the newer toast")
	}

	m, _ = update(t, m, hideFeedbackMsg{gen: second})
	if m.Feedback().Visible {
		t.Error("current hide did not remove the toast")
	}
}

func TestExpireMsgClearsExplosion(t *testing.T) {
	m := newTestModel(t, nil)

	res := m.Playground().Execute("explode")
	if len(res.Expiries) != 1 {
		t.Fatalf("explode returned %d expiries", len(res.Expiries))
	}
	m, _ = update(t, m, expireMsg{expiry: res.Expiries[0]})
	if m.Playground().State().Exploded {
		t.Error("explosion not cleared by expireMsg")
	}
}

func TestApplySchedulesExpiries(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(t, m, applyMsg{command: "make it rain"})
	if cmd == nil {
		t.Fatal("apply should return commands")
	}
	if !m.Playground().State().Raining {
		t.Error("rain did not start")
	}
}

func TestTabCyclesSuggestions(t *testing.T) {
	m := newTestModel(t, nil)
	sugg := config.DefaultConfig().Suggestions

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Input() != sugg[0] {
		t.Errorf("first tab = %q, want %q", m.Input(), sugg[0])
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Input() != sugg[1] {
		t.Errorf("second tab = %q, want %q", m.Input(), sugg[1])
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Input() != sugg[len(sugg)-1] {
		t.Errorf("shift+tab wrap = %q, want %q", m.Input(), sugg[len(sugg)-1])
	}
}

func TestQIsTypedNotQuit(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.IsQuitting() {
		t.Error("q should not quit")
	}
	if m.Input() != "q" {
		t.Errorf("input = %q, want q", m.Input())
	}
	_ = cmd

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestPasteFirstLine(t *testing.T) {
	m := newTestModel(t, nil)

	m = typeText(t, m, "make ")
	m, _ = update(t, m, pasteMsg{text: "it rain\r\nsecond line"})
	if m.Input() != "make it rain" {
		t.Errorf("input after paste = %q", m.Input())
	}
}

func TestJournalAndHistory(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m, _ = update(t, m, applyMsg{command: "explode"})
	m, _ = update(t, m, applyMsg{command: "hello there"})

	entries, err := store.SessionHistory("test-session", 10)
	if err != nil {
		t.Fatalf("SessionHistory() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("journal has %d entries, want 2", len(entries))
	}
	if entries[0].Rule != "none" || entries[1].Rule != string(playground.RuleExplode) {
		t.Errorf("journal rules = %q, %q", entries[0].Rule, entries[1].Rule)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	view := m.View()
	if !strings.Contains(view, "COMMAND HISTORY") || !strings.Contains(view, "hello there") {
		t.Errorf("history view missing content:\n%s", view)
	}

	// esc closes history instead of quitting
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsQuitting() {
		t.Error("esc in history should close it, not quit")
	}
	if strings.Contains(m.View(), "COMMAND HISTORY") {
		t.Error("history still shown after esc")
	}
}

func TestViewShowsIndicators(t *testing.T) {
	m := newTestModel(t, nil)

	view := m.View()
	if !strings.Contains(view, "Gravity: OFF") {
		t.Errorf("view missing gravity pill:\n%s", view)
	}
	if !strings.Contains(view, "Reality Controller") {
		t.Error("view missing title")
	}

	m, _ = update(t, m, applyMsg{command: "spin everything"})
	if !strings.Contains(m.View(), "Spinning: ON") {
		t.Error("view missing spinning pill")
	}
}

func TestTickAdvancesScene(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.scene.Frame() != 1 {
		t.Errorf("scene frame = %d, want 1", m.scene.Frame())
	}
}

func TestResetCommandRewindsScene(t *testing.T) {
	m := newTestModel(t, nil)

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	m, _ = update(t, m, applyMsg{command: "spin"})
	if m.scene.Frame() != 5 {
		t.Fatalf("scene frame = %d, want 5 before reset", m.scene.Frame())
	}

	m, _ = update(t, m, applyMsg{command: "reset everything"})
	if m.scene.Frame() != 0 {
		t.Errorf("scene frame = %d after reset, want 0", m.scene.Frame())
	}
	if m.Playground().State() != playground.DefaultState() {
		t.Errorf("state = %v, want defaults", m.Playground().State())
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 40-headerHeight-footerHeight {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}

	// Tiny terminals keep a minimum scene
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 5, Height: 5})
	if m.screen.Width() != minSceneW || m.screen.Height() != minSceneH {
		t.Errorf("screen = %dx%d, want minimum", m.screen.Width(), m.screen.Height())
	}
}
