// reality is a terminal playground where typed phrases bend the rules of a
// small scene: gravity, spin, explosions, rain and color schemes.
//
// Usage:
//
//	reality play               - Open the interactive playground
//	reality run <commands...>  - Apply commands headlessly and print the result
//	reality rules              - List the command rules in priority order
//	reality colors [scheme]    - Show palettes and per-shape colors
//	reality history            - Show the command journal
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.reality/config.yaml)
//	--seed <value>      - Set RNG seed for reproducible effects
//	--fps <rate>        - Override the animation frame rate
//	--db <path>         - Set journal path (default: ~/.reality/journal.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reality-controller/internal/config"
	"github.com/vovakirdan/reality-controller/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reality",
	Short: "Reality Controller - bend a tiny world with plain words",
	Long: `Reality Controller is a terminal playground. Type phrases like
"turn off gravity" or "make it rain" and watch the scene react.

Available commands:
  play     - Open the interactive playground
  run      - Apply commands without a UI and print the final state
  rules    - Show which phrases trigger which effect
  colors   - Show the color palettes
  history  - Show previously typed commands

Examples:
  reality play
  reality run "turn on gravity" "explode" --wait
  reality run --script commands.txt --format yaml
  reality colors purple
  reality history --limit 50`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Animation frame rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to command journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(colorsCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.UI.FPS = flagFPS
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
	}
	return cfg, nil
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "reality",
		Level:           level,
	}), nil
}
