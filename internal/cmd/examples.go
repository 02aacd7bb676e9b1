package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/samples"
	"github.com/DevSymphony/forge/internal/ui"
)

const demoName = "demo"

var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List or print the example scenes",
	Long: `List the example scenes with their suggested requests, or print one.

"demo" prints the optimization showcase game with its before/after metrics.`,
	Example: `  forge examples
  forge examples movement > scene.js
  forge examples demo`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExamples,
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, s := range samples.All() {
			fmt.Fprintf(out, "%-10s %-20s forge suggest -p %q\n", s.Name, s.Title, s.Prompt)
		}
		fmt.Fprintf(out, "%-10s %s\n", demoName, samples.Demo().Title)
		return nil
	}

	if args[0] == demoName {
		demo := samples.Demo()
		fmt.Fprintln(out, ui.TitleWithDesc("DEMO", demo.Title))
		fmt.Fprintln(out, ui.Indent(demo.Summary))
		for _, s := range demo.Scenarios {
			fmt.Fprintln(out, ui.Indent("- "+s))
		}
		fmt.Fprintf(out, "\n%-10s %6s %10s %8s %9s\n", "", "FPS", "Draw calls", "Memory", "Load time")
		for _, row := range []struct {
			label string
			m     samples.Metrics
		}{{"before", demo.Before}, {"after", demo.After}} {
			fmt.Fprintf(out, "%-10s %6d %10d %8s %9s\n", row.label, row.m.FPS, row.m.DrawCalls, row.m.Memory, row.m.LoadTime)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, demo.Code)
		return nil
	}

	s, ok := samples.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown example %q (available: %s, %s)", args[0], strings.Join(samples.Names(), ", "), demoName)
	}
	fmt.Fprintln(out, s.Code)
	return nil
}
