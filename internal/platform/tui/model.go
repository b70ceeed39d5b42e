package tui

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reality-controller/internal/config"
	"github.com/vovakirdan/reality-controller/internal/core"
	"github.com/vovakirdan/reality-controller/internal/playground"
	"github.com/vovakirdan/reality-controller/internal/scene"
	"github.com/vovakirdan/reality-controller/internal/storage"
)

// Layout constants
const (
	headerHeight = 3 // Title, indicators and toast
	footerHeight = 5 // Input box, suggestions and help
	minSceneW    = 20
	minSceneH    = 6
	commandLimit = 200
)

// Options configures a playground session.
type Options struct {
	Config        config.Config
	Seed          int64
	Store         *storage.Store // Optional journal
	SessionID     string
	Logger        *log.Logger
	ScreenshotDir string
	Width         int
	Height        int
}

// pasteMsg carries clipboard contents into the input.
type pasteMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model for the playground screen.
type Model struct {
	cfg       config.Config
	pg        *playground.Playground
	scene     *scene.Scene
	screen    *core.Screen
	input     textinput.Model
	help      help.Model
	keys      KeyMap
	history   historyView
	feedback  Feedback
	store     *storage.Store
	sessionID string
	logger    *log.Logger
	shotDir   string

	suggestions []string
	suggestIdx  int    // -1 until Tab is pressed
	processing  string // Command waiting for its processing delay
	showHistory bool
	width       int
	height      int
	quitting    bool
}

// NewModel creates the playground model.
func NewModel(opts Options) (Model, error) {
	// Use time-based seed if not specified
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(config.Dir(), "screenshots")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		rc := core.DefaultConfig()
		opts.Width, opts.Height = rc.ScreenW, rc.ScreenH
	}

	pgOpts, err := opts.Config.PlaygroundOptions(opts.Seed)
	if err != nil {
		return Model{}, err
	}
	pg := playground.New(pgOpts)

	sc := scene.New(pg.Shapes(), scene.Options{
		FPS:      opts.Config.UI.FPS,
		PxPerCol: opts.Config.UI.PxPerCol,
		PxPerRow: opts.Config.UI.PxPerRow,
	})

	ti := textinput.New()
	ti.Placeholder = "Type your command... (e.g., 'turn off gravity')"
	ti.Prompt = "❯ "
	ti.CharLimit = commandLimit
	ti.Focus()

	h := help.New()
	h.ShowAll = false

	m := Model{
		cfg:         opts.Config,
		pg:          pg,
		scene:       sc,
		input:       ti,
		help:        h,
		keys:        DefaultKeyMap(),
		store:       opts.Store,
		sessionID:   opts.SessionID,
		logger:      opts.Logger,
		shotDir:     opts.ScreenshotDir,
		suggestions: append([]string(nil), opts.Config.Suggestions...),
		suggestIdx:  -1,
	}
	m.resize(opts.Width, opts.Height)
	return m, nil
}

// Init starts the frame loop and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.cfg.UI.FPS), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.scene.Step(m.pg.Snapshot())
		return m, tickCmd(m.cfg.UI.FPS)

	case applyMsg:
		return m.apply(msg.command)

	case expireMsg:
		if m.pg.Expire(msg.expiry) {
			m.logger.Debug("effect expired", "effect", msg.expiry.Effect, "generation", msg.expiry.Generation)
		}
		return m, nil

	case hideFeedbackMsg:
		m.feedback.Hide(msg.gen)
		return m, nil

	case pasteMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard read failed", "err", msg.err)
			return m, m.showFeedback(m.feedback.Error("Clipboard unavailable"))
		}
		m.paste(msg.text)
		return m, nil
	}

	var cmd tea.Cmd
	if m.processing == "" {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.showHistory = true
		m.history.load(m.store, m.sessionID)
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		return m, m.saveScreenshot()

	case key.Matches(msg, m.keys.Paste):
		return m, readClipboard

	case key.Matches(msg, m.keys.NextSuggest):
		m.cycleSuggestion(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevSuggest):
		m.cycleSuggestion(-1)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	// Everything else is typing; the input is disabled while processing
	if m.processing != "" {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleHistoryKey processes input while the history table is open.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.History), msg.String() == "esc":
		m.showHistory = false
		return m, nil
	}

	var cmd tea.Cmd
	m.history.table, cmd = m.history.table.Update(msg)
	return m, cmd
}

// submit starts processing the typed command. Blank input is ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.processing != "" {
		return m, nil
	}
	command := strings.TrimSpace(m.input.Value())
	if command == "" {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.suggestIdx = -1
	m.processing = command
	m.feedback.Processing(command)

	return m, applyCmd(m.cfg.ProcessingDelay(), command)
}

// apply runs a command through the playground once processing is over.
func (m Model) apply(command string) (tea.Model, tea.Cmd) {
	res := m.pg.Execute(command)
	m.processing = ""
	m.journal(res)

	if res.Rule == playground.RuleReset {
		m.logger.Debug("scene reset", "frames", m.scene.Frame())
		m.scene.Reset()
	}

	cmds := make([]tea.Cmd, 0, len(res.Expiries)+2)
	for _, e := range res.Expiries {
		cmds = append(cmds, expireCmd(e))
	}
	cmds = append(cmds, m.showFeedback(m.feedback.Executed(command)))
	cmds = append(cmds, m.input.Focus())

	return m, tea.Batch(cmds...)
}

// journal logs the command and records it in the store, best effort.
func (m Model) journal(res playground.Result) {
	m.logger.Info("command executed", "command", res.Command, "rule", res.Rule, "state", res.Snapshot.State)

	if m.store == nil || m.sessionID == "" {
		return
	}
	if _, err := m.store.Record(m.sessionID, res.Command, res.Rule.String()); err != nil {
		m.logger.Warn("journal write failed", "err", err)
	}
}

// showFeedback schedules the hide of toast generation gen.
func (m Model) showFeedback(gen uint64) tea.Cmd {
	return hideFeedbackCmd(m.cfg.FeedbackVisible(), gen)
}

// cycleSuggestion copies the next (or previous) suggestion into the input.
func (m *Model) cycleSuggestion(dir int) {
	if len(m.suggestions) == 0 || m.processing != "" {
		return
	}
	n := len(m.suggestions)
	if m.suggestIdx < 0 && dir < 0 {
		m.suggestIdx = n - 1
	} else {
		m.suggestIdx = ((m.suggestIdx+dir)%n + n) % n
	}
	m.input.SetValue(m.suggestions[m.suggestIdx])
	m.input.CursorEnd()
}

// paste appends the first line of clipboard text to the input.
func (m *Model) paste(text string) {
	if m.processing != "" {
		return
	}
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	m.input.SetValue(m.input.Value() + line)
	m.input.CursorEnd()
}

func readClipboard() tea.Msg {
	text, err := clipboard.ReadAll()
	return pasteMsg{text: text, err: err}
}

// saveScreenshot renders the current frame and writes it to disk.
func (m *Model) saveScreenshot() tea.Cmd {
	m.scene.Render(m.screen, m.pg.Snapshot())

	shot, err := SaveScreenshot(m.shotDir, m.screen, time.Now())
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return m.showFeedback(m.feedback.Error("Screenshot failed"))
	}
	m.logger.Info("screenshot saved", "text", shot.Text, "png", shot.PNG)
	return m.showFeedback(m.feedback.Info("Saved " + filepath.Base(shot.PNG)))
}

// resize fits the scene buffer and widgets to the terminal.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	sceneW := max(width, minSceneW)
	sceneH := max(height-headerHeight-footerHeight, minSceneH)
	if m.screen == nil {
		m.screen = core.NewScreen(sceneW, sceneH)
	} else {
		m.screen.Resize(sceneW, sceneH)
	}

	m.input.Width = max(width-8, 10)
	m.help.Width = width
	m.history = newHistoryView(width, height)
	if m.showHistory {
		m.history.load(m.store, m.sessionID)
	}
}

// Playground exposes the underlying playground, mainly for tests.
func (m Model) Playground() *playground.Playground {
	return m.pg
}

// Feedback returns the current toast.
func (m Model) Feedback() Feedback {
	return m.feedback
}

// Processing returns the command awaiting its delay, if any.
func (m Model) Processing() string {
	return m.processing
}

// Input returns the current input text.
func (m Model) Input() string {
	return m.input.Value()
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHistory {
		return m.history.View(m.width) + "\n\n" + m.helpView()
	}

	snap := m.pg.Snapshot()
	m.scene.Render(m.screen, snap)

	var b strings.Builder
	b.WriteString(m.headerView(snap.State))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.inputView())
	b.WriteString("\n")
	b.WriteString(m.suggestionsView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00ffff")).
			Padding(0, 1)

	inputBusyStyle = inputBoxStyle.
			BorderForeground(lipgloss.Color("240"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	chipActiveStyle = chipStyle.
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#00ffff"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// headerView renders the title and pills on the left and the toast on the right.
func (m Model) headerView(st playground.State) string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("⌘ "+m.cfg.UI.Title),
		renderIndicators(playground.Indicators(st)),
	)
	toast := m.feedback.View()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(toast)
	row := left
	if toast != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", max(gap, 1)), toast)
	}
	return lipgloss.NewStyle().Height(headerHeight).MaxHeight(headerHeight).Render(row)
}

func (m Model) inputView() string {
	style := inputBoxStyle
	view := m.input.View()
	if m.processing != "" {
		style = inputBusyStyle
		view = dimStyle.Render("… " + m.processing)
	}
	return style.Width(max(m.width-2, 10)).Render(view)
}

func (m Model) suggestionsView() string {
	chips := make([]string, 0, len(m.suggestions)+1)
	chips = append(chips, dimStyle.Render("Try:"))
	for i, s := range m.suggestions {
		if i == m.suggestIdx {
			chips = append(chips, chipActiveStyle.Render(s))
		} else {
			chips = append(chips, chipStyle.Render(s))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(chips, " "))
}

func (m Model) helpView() string {
	return dimStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
