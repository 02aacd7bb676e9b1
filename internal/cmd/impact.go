package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/ui"
)

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Estimate the performance impact of a change",
	Long: `Estimate the CPU, memory and FPS impact of changing one version of a
scene into another. The estimate is a keyword heuristic, not a measurement.`,
	Example: `  forge impact --original old.js --improved new.js
  forge impact --original old.js --improved new.js --explanation "uses a sprite sheet"`,
	RunE: runImpact,
}

var (
	impactOriginal    string
	impactImproved    string
	impactExplanation string
)

func init() {
	rootCmd.AddCommand(impactCmd)

	impactCmd.Flags().StringVar(&impactOriginal, "original", "", "scene before the change")
	impactCmd.Flags().StringVar(&impactImproved, "improved", "", "scene after the change")
	impactCmd.Flags().StringVar(&impactExplanation, "explanation", "", "description of the change")
	_ = impactCmd.MarkFlagRequired("original")
	_ = impactCmd.MarkFlagRequired("improved")
}

func runImpact(cmd *cobra.Command, args []string) error {
	original, err := readSource(impactOriginal, cmd.InOrStdin())
	if err != nil {
		return err
	}
	improved, err := readSource(impactImproved, cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	impact := a.assistant.EstimateImpact(original, improved, impactExplanation)
	a.log.LogOperation("impact", impact.String())

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderImpact(impact))
	return nil
}
