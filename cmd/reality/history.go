package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reality-controller/internal/storage"
)

var (
	flagLimit   int
	flagSession string
	flagClear   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the command journal",
	Long: `Display recently typed commands, how often each rule fired and the
sessions they came from. Only commands are journaled; the playground always
starts fresh.

Examples:
  reality history
  reality history --limit 50
  reality history --session 6f1c...
  reality history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of commands to show")
	historyCmd.Flags().StringVar(&flagSession, "session", "", "Only show commands from this session")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole journal")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Journal cleared.")
		return nil
	}

	var entries []storage.Entry
	if flagSession != "" {
		entries, err = store.SessionHistory(flagSession, flagLimit)
	} else {
		entries, err = store.Recent(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving commands: %w", err)
	}

	counts, err := store.RuleCounts()
	if err != nil {
		return fmt.Errorf("retrieving rule counts: %w", err)
	}
	sessions, err := store.Sessions()
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	printHistory(out, entries, counts, sessions)
	return nil
}

func printHistory(w io.Writer, entries []storage.Entry, counts map[string]int, sessions []storage.SessionStats) {
	fmt.Fprintln(w, "Command history")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No commands recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'reality play' and type something!")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-16s  %-8s  %-12s  %s\n", "Date", "Session", "Rule", "Command")
	fmt.Fprintf(w, "  %-16s  %-8s  %-12s  %s\n", "----", "-------", "----", "-------")

	for _, e := range entries {
		fmt.Fprintf(w, "  %-16s  %-8s  %-12s  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), shortID(e.SessionID), e.Rule, e.Command)
	}

	if len(counts) > 0 {
		rules := make([]string, 0, len(counts))
		for r := range counts {
			rules = append(rules, r)
		}
		sort.Slice(rules, func(i, j int) bool {
			if counts[rules[i]] != counts[rules[j]] {
				return counts[rules[i]] > counts[rules[j]]
			}
			return rules[i] < rules[j]
		})

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Rule counts:")
		for _, r := range rules {
			fmt.Fprintf(w, "  %-12s  %d\n", r, counts[r])
		}
	}

	if len(sessions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Sessions: %d\n", len(sessions))
		for _, s := range sessions {
			fmt.Fprintf(w, "  %-8s  %3d commands  %3d matched  last %s\n",
				shortID(s.SessionID), s.Commands, s.Matched, s.LastSeen.Local().Format("2006-01-02 15:04"))
		}
	}
}

// shortID trims a session UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
