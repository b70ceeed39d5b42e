package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reality-controller/internal/config"
	"github.com/vovakirdan/reality-controller/internal/core"
	"github.com/vovakirdan/reality-controller/internal/platform/tui"
	"github.com/vovakirdan/reality-controller/internal/storage"
)

var flagNoJournal bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive playground",
	Long: `Open the playground in the terminal.

Controls:
  Enter      - Run the typed command
  Tab        - Cycle through suggested commands
  Ctrl+V     - Paste from the clipboard
  Ctrl+S     - Save a text + PNG screenshot to ~/.reality/screenshots
  Ctrl+R     - Toggle the command history
  F1         - Show all keys
  Esc/Ctrl+C - Quit

Try:
  turn off gravity, turn on gravity, spin everything, explode,
  make it rain, change colors to purple, reset

Logs are written to ~/.reality/reality.log while the playground is open.

Examples:
  reality play
  reality play --seed 42
  reality play --config ./my-reality.yaml --fps 60`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record commands in the journal")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	// Get terminal size
	rc := core.DefaultConfig()
	width, height := rc.ScreenW, rc.ScreenH
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	sessionID := uuid.New().String()
	logger.Info("session started", "session", sessionID, "seed", flagSeed, "size", fmt.Sprintf("%dx%d", width, height))

	// Open journal storage
	var store *storage.Store
	if !flagNoJournal {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", err)
			logger.Warn("journal unavailable", "err", err)
			// Continue without storage - the playground still works
			store = nil
		}
	}

	runErr := tui.Run(tui.Options{
		Config:    cfg,
		Seed:      flagSeed,
		Store:     store,
		SessionID: sessionID,
		Logger:    logger,
		Width:     width,
		Height:    height,
	})

	// Close store before returning
	if store != nil {
		store.Close()
	}
	logger.Info("session ended", "session", sessionID)

	if runErr != nil {
		return fmt.Errorf("running playground: %w", runErr)
	}
	return nil
}

// openLogFile opens ~/.reality/reality.log for appending.
func openLogFile() (*os.File, error) {
	dir := config.Dir()
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "reality.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
