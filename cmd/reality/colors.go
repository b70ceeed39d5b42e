package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reality-controller/internal/core"
	"github.com/vovakirdan/reality-controller/internal/playground"
)

var colorsCmd = &cobra.Command{
	Use:   "colors [scheme]",
	Short: "Show palettes and per-shape colors",
	Long: `Without arguments, shows every palette from the active config.
With a scheme name, also shows which color each shape gets: the palette
entry at the shape's numeric id modulo the palette length.

Examples:
  reality colors
  reality colors purple`,
	Args: cobra.MaximumNArgs(1),
	RunE: runColors,
}

func runColors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.PlaygroundOptions(1)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		printPalettes(out, opts.Palettes)
		return nil
	}

	scheme := playground.ColorScheme(args[0])
	if !scheme.Valid() {
		return fmt.Errorf("unknown scheme %q (want one of %v)", args[0], playground.Schemes())
	}
	printShapeColors(out, opts.Palettes, opts.Shapes, scheme)
	return nil
}

func swatch(c core.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c))).Render("██")
}

func printPalettes(w io.Writer, palettes playground.Palettes) {
	fmt.Fprintln(w, "Palettes:")
	fmt.Fprintln(w)
	for _, scheme := range playground.Schemes() {
		pal, ok := palettes[scheme]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-8s", scheme)
		for _, c := range pal {
			fmt.Fprintf(w, "  %s %s", swatch(c), c)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'reality colors <scheme>' to see per-shape colors.")
}

func printShapeColors(w io.Writer, palettes playground.Palettes, shapes []playground.Shape, scheme playground.ColorScheme) {
	fmt.Fprintf(w, "Shape colors - %s\n", scheme)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-3s  %-9s  %-4s  %s\n", "ID", "Kind", "Size", "Color")
	fmt.Fprintf(w, "  %-3s  %-9s  %-4s  %s\n", "--", "----", "----", "-----")
	for _, s := range shapes {
		c := palettes.ColorFor(s.ID, scheme)
		fmt.Fprintf(w, "  %-3s  %-9s  %-4s  %s %s\n", s.ID, s.Kind, s.Size, swatch(c), c)
	}
}
