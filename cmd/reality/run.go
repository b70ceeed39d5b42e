package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/reality-controller/internal/playground"
	"github.com/vovakirdan/reality-controller/internal/storage"
)

var (
	flagScript string
	flagWait   bool
	flagFormat string
	flagRecord bool
)

var runCmd = &cobra.Command{
	Use:   "run [commands...]",
	Short: "Apply commands without a UI",
	Long: `Apply commands in order and print the resulting playground state.

Commands come from the arguments, then from --script (one per line, '#'
starts a comment, '-' reads stdin). With no arguments and no script, lines
are read from piped stdin.

Timed effects (explode, rain) expire in the background. Without --wait the
state is printed right after the last command; with --wait the command
blocks until every effect has expired.

Examples:
  reality run "turn off gravity" "spin everything"
  reality run explode --wait
  reality run --script demo.txt --format yaml
  echo "make it rain" | reality run --seed 7`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagScript, "script", "", "File with one command per line ('-' for stdin)")
	runCmd.Flags().BoolVar(&flagWait, "wait", false, "Wait for timed effects to expire before printing")
	runCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or yaml")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the commands in the journal")
}

// runReport is the yaml output of the run command.
type runReport struct {
	Commands []commandReport     `yaml:"commands"`
	Snapshot playground.Snapshot `yaml:"snapshot"`
	Pending  int                 `yaml:"pending"` // Effects still waiting to expire
}

type commandReport struct {
	Command string `yaml:"command"`
	Rule    string `yaml:"rule"`
	Matched bool   `yaml:"matched"`
}

func runRun(cmd *cobra.Command, args []string) error {
	if flagFormat != "text" && flagFormat != "yaml" {
		return fmt.Errorf("unknown --format %q (want text or yaml)", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	commands, err := collectCommands(args, flagScript, os.Stdin)
	if err != nil {
		return err
	}
	if len(commands) == 0 {
		return fmt.Errorf("no commands given")
	}

	opts, err := cfg.PlaygroundOptions(flagSeed)
	if err != nil {
		return err
	}
	pg := playground.New(opts)

	var store *storage.Store
	sessionID := uuid.New().String()
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("journal unavailable", "err", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rt := playground.NewRuntime(pg, logger)
	rt.OnChange(func(snap playground.Snapshot) {
		logger.Debug("state changed", "state", snap.State, "drops", len(snap.Drops))
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loopDone := make(chan error, 1)
	go func() { loopDone <- rt.Run(runCtx) }()

	report, err := applyCommands(ctx, rt, commands, func(res playground.Result) {
		if store == nil {
			return
		}
		if _, err := store.Record(sessionID, res.Command, res.Rule.String()); err != nil {
			logger.Warn("journal write failed", "err", err)
		}
	})
	if err != nil {
		return err
	}

	if flagWait {
		logger.Debug("waiting for effects")
		if err := rt.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for effects: %w", err)
		}
	}

	snap, err := rt.Snapshot(ctx)
	if err != nil {
		return err
	}
	report.Snapshot = snap
	if report.Pending, err = rt.Pending(ctx); err != nil {
		return err
	}

	cancel()
	<-loopDone

	out := cmd.OutOrStdout()
	if flagFormat == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(report)
	}
	printReport(out, report, pg.Shapes())
	return nil
}

// applyCommands submits each command in order.
func applyCommands(ctx context.Context, rt *playground.Runtime, commands []string, onResult func(playground.Result)) (runReport, error) {
	var report runReport
	for _, c := range commands {
		res, err := rt.Submit(ctx, c)
		if err != nil {
			return report, fmt.Errorf("submitting %q: %w", c, err)
		}
		if onResult != nil {
			onResult(res)
		}
		report.Commands = append(report.Commands, commandReport{
			Command: res.Command,
			Rule:    res.Rule.String(),
			Matched: res.Matched(),
		})
	}
	return report, nil
}

// collectCommands gathers commands from args, then the script, then piped stdin.
func collectCommands(args []string, script string, stdin *os.File) ([]string, error) {
	var commands []string
	for _, a := range args {
		if c := strings.TrimSpace(a); c != "" {
			commands = append(commands, c)
		}
	}

	switch {
	case script == "-":
		lines, err := readScript(stdin)
		if err != nil {
			return nil, err
		}
		commands = append(commands, lines...)

	case script != "":
		f, err := os.Open(script)
		if err != nil {
			return nil, fmt.Errorf("cannot open script: %w", err)
		}
		defer f.Close()
		lines, err := readScript(f)
		if err != nil {
			return nil, err
		}
		commands = append(commands, lines...)

	case len(commands) == 0 && stdin != nil && !term.IsTerminal(int(stdin.Fd())):
		lines, err := readScript(stdin)
		if err != nil {
			return nil, err
		}
		commands = append(commands, lines...)
	}

	return commands, nil
}

// readScript returns the non-empty, non-comment lines of r.
func readScript(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return lines, nil
}

// printReport writes the text form of a run.
func printReport(w io.Writer, report runReport, shapes []playground.Shape) {
	for _, c := range report.Commands {
		fmt.Fprintf(w, "  %-12s %s\n", "["+c.Rule+"]", c.Command)
	}
	fmt.Fprintln(w)

	snap := report.Snapshot
	st := snap.State
	fmt.Fprintln(w, "State:")
	fmt.Fprintf(w, "  gravity   %t\n", st.Gravity)
	fmt.Fprintf(w, "  floating  %t\n", st.Floating)
	fmt.Fprintf(w, "  spinning  %t\n", st.Spinning)
	fmt.Fprintf(w, "  exploded  %t\n", st.Exploded)
	fmt.Fprintf(w, "  raining   %t\n", st.Raining)
	fmt.Fprintf(w, "  scheme    %s\n", st.ColorScheme)

	labels := make([]string, 0, 3)
	for _, ind := range playground.Indicators(st) {
		labels = append(labels, ind.Label)
	}
	fmt.Fprintf(w, "  status    %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(w, "  classes   %s\n", strings.Join(playground.ShapeClasses(st), " "))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shapes:")
	for _, s := range shapes {
		line := fmt.Sprintf("  %-2s %-8s %-2s %s", s.ID, s.Kind, s.Size, snap.Colors[s.ID])
		if v, ok := snap.Displacements[s.ID]; ok {
			line += fmt.Sprintf("  scattered (%+.0f, %+.0f)px", v.X, v.Y)
		}
		fmt.Fprintln(w, line)
	}

	if len(snap.Drops) > 0 {
		xs := make([]float64, len(snap.Drops))
		for i, d := range snap.Drops {
			xs[i] = d.X
		}
		sort.Float64s(xs)
		fmt.Fprintf(w, "\nRain: %d drops between x=%.0f%% and x=%.0f%%\n", len(xs), xs[0], xs[len(xs)-1])
	}

	if report.Pending > 0 {
		fmt.Fprintf(w, "\n%d effect(s) still pending; use --wait to let them expire\n", report.Pending)
	}
}
