package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/assistant"
	"github.com/DevSymphony/forge/internal/diff"
	"github.com/DevSymphony/forge/internal/ui"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a rewrite of a scene file",
	Long: `Rewrite a Phaser scene for a natural-language request.

The configured text-generation provider is tried first. When it is not
configured or fails, the built-in rule catalog is used. The result is shown
as a diff with an impact estimate and pattern warnings.`,
	Example: `  forge suggest -f scene.js -p "optimize movement"
  forge suggest -f scene.js -p "add preload" --write
  cat scene.js | forge suggest -f - -p "add collision" --unified`,
	RunE: runSuggest,
}

var (
	suggestFile    string
	suggestPrompt  string
	suggestWrite   bool
	suggestUnified bool
	suggestYes     bool
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestFile, "file", "f", "", "scene file to improve (- for stdin)")
	suggestCmd.Flags().StringVarP(&suggestPrompt, "prompt", "p", "", "what to change, e.g. \"optimize movement\"")
	suggestCmd.Flags().BoolVarP(&suggestWrite, "write", "w", false, "write the suggestion back to the file")
	suggestCmd.Flags().BoolVar(&suggestUnified, "unified", false, "show a unified diff instead of a line-by-line one")
	suggestCmd.Flags().BoolVarP(&suggestYes, "yes", "y", false, "do not ask before writing")
	_ = suggestCmd.MarkFlagRequired("file")
	_ = suggestCmd.MarkFlagRequired("prompt")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if suggestWrite && suggestFile == "-" {
		return fmt.Errorf("--write cannot be used with stdin")
	}

	code, err := readSource(suggestFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if a.providerErr != nil {
		fmt.Fprintln(out, ui.Warn(fmt.Sprintf("Text generation disabled: %v", a.providerErr)))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := a.assistant.Suggest(ctx, nil, code, suggestPrompt)
	if err != nil {
		return err
	}

	printSuggestion(out, a.assistant, code, result, suggestUnified)

	if !suggestWrite || !result.Changed {
		return nil
	}
	if !suggestYes {
		confirmed := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Write the suggestion to %s?", suggestFile),
			Default: false,
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil || !confirmed {
			fmt.Fprintln(out, "Skipped writing")
			return nil
		}
	}

	info, err := os.Stat(suggestFile)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", suggestFile, err)
	}
	if err := os.WriteFile(suggestFile, []byte(result.Code), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", suggestFile, err)
	}
	fmt.Fprintln(out, ui.OK(fmt.Sprintf("Wrote %s", suggestFile)))
	return nil
}

// printSuggestion renders a suggest result the way the dashboard lays it out:
// source, explanation, diff, impact, warnings, lesson.
func printSuggestion(out io.Writer, a *assistant.Assistant, original string, result *assistant.Result, unified bool) {
	switch result.Source {
	case assistant.SourceAI:
		fmt.Fprintln(out, ui.TitleWithDesc("AI", fmt.Sprintf("Suggestion from %s", result.Provider)))
	case assistant.SourceRules:
		if result.AIError != "" {
			fmt.Fprintln(out, ui.Warn(fmt.Sprintf("Text generation failed, used the rule catalog: %s", result.AIError)))
		}
		fmt.Fprintln(out, ui.TitleWithDesc("RULE", result.Rule))
	default:
		if result.AIError != "" {
			fmt.Fprintln(out, ui.Warn(fmt.Sprintf("Text generation failed: %s", result.AIError)))
		}
		fmt.Fprintln(out, ui.Warn("No transformation matched the request; the code is unchanged"))
		fmt.Fprintln(out, ui.Indent("Try one of: "+strings.Join(a.Engine().Catalog().Keys(), ", ")))
	}

	if result.Explanation != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, result.Explanation)
	}
	if result.DocLink != "" {
		fmt.Fprintln(out, ui.Indent("Docs: "+result.DocLink))
	}

	if result.Changed {
		fmt.Fprintln(out)
		if unified {
			fmt.Fprint(out, ui.Unified(diff.Unified(original, result.Code)))
		} else {
			fmt.Fprint(out, ui.DiffLines(result.Diff))
		}
	}

	if result.Impact != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.RenderImpact(*result.Impact))
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, ui.Warnings(result.Report))

	if result.Lesson != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.Info(fmt.Sprintf("Lesson: %s (forge lessons --index %d)", result.Lesson.Title, result.LessonIndex)))
	}
}
