package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reality-controller/internal/playground"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the command rules in priority order",
	Long: `Shows the phrases the playground understands. A command is matched
case-insensitively against the rules from top to bottom and only the first
rule that contains one of its keywords fires.`,
	Args: cobra.NoArgs,
	Run:  runRules,
}

func runRules(cmd *cobra.Command, args []string) {
	printRules(cmd.OutOrStdout(), playground.Rules())
}

func printRules(w io.Writer, rules []playground.Rule) {
	fmt.Fprintln(w, "Command rules (first match wins):")
	fmt.Fprintln(w)

	// Calculate column widths
	maxIDLen, maxKwLen := len("Rule"), len("Keywords")
	keywords := make([]string, len(rules))
	for i, r := range rules {
		quoted := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			quoted[j] = fmt.Sprintf("%q", k)
		}
		keywords[i] = strings.Join(quoted, ", ")
		maxIDLen = max(maxIDLen, len(r.ID.String()))
		maxKwLen = max(maxKwLen, len(keywords[i]))
	}

	// Print header
	fmt.Fprintf(w, "  %-3s  %-*s  %-*s  %s\n", "#", maxIDLen, "Rule", maxKwLen, "Keywords", "Effect")
	fmt.Fprintf(w, "  %-3s  %-*s  %-*s  %s\n", "-", maxIDLen, "----", maxKwLen, "--------", "------")

	for i, r := range rules {
		fmt.Fprintf(w, "  %-3d  %-*s  %-*s  %s\n", i+1, maxIDLen, r.ID, maxKwLen, keywords[i], r.Effect)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Color names are checked in order: purple, red, blue, green.")
	fmt.Fprintln(w, "Run 'reality play' to try them.")
}
