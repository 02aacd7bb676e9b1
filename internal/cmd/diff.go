package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/diff"
	"github.com/DevSymphony/forge/internal/ui"
)

var diffCmd = &cobra.Command{
	Use:   "diff <original> <improved>",
	Short: "Show the line diff between two scenes",
	Long: `Show the difference between two scene files.

The default view compares lines position by position, the way the dashboard's
suggestion panel does. --unified shows a minimal line diff instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

var diffUnified bool

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().BoolVar(&diffUnified, "unified", false, "show a unified diff")
}

func runDiff(cmd *cobra.Command, args []string) error {
	original, err := readSource(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	improved, err := readSource(args[1], cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if diffUnified {
		additions, deletions := diff.Stats(original, improved)
		fmt.Fprint(out, ui.Unified(diff.Unified(original, improved)))
		fmt.Fprintf(out, "\n%d addition(s), %d deletion(s)\n", additions, deletions)
		return nil
	}

	fmt.Fprint(out, ui.DiffLines(diff.Split(original, improved)))
	return nil
}
