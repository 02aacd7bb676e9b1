package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/ui"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report performance anti-patterns in a scene",
	Long: `Scan a Phaser scene for known performance anti-patterns.
Warnings are printed in catalog order; the exit code is 1 when any fire.`,
	Example: `  forge lint -f scene.js
  forge lint -f scene.js --json`,
	RunE: runLint,
}

var (
	lintFile string
	lintJSON bool
)

func init() {
	lintCmd.Flags().StringVarP(&lintFile, "file", "f", "", "scene file to scan (- for stdin)")
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "print the report as JSON")
	_ = lintCmd.MarkFlagRequired("file")
}

func runLint(cmd *cobra.Command, args []string) error {
	code, err := readSource(lintFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	report := a.assistant.Lint(code)
	a.log.LogOperation("lint", fmt.Sprintf("file=%s warnings=%d", lintFile, len(report.Warnings)))

	out := cmd.OutOrStdout()
	if lintJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, ui.Warnings(report))
	}

	if len(report.Warnings) > 0 {
		return &exitError{code: 1}
	}
	return nil
}
