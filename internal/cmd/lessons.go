package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/lessons"
	"github.com/DevSymphony/forge/internal/ui"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Browse the learning-assistant lessons",
	Long: `Browse the game-development lessons one card at a time.

Each lesson explains a technique with before/after code, best practices and
links to the Phaser documentation. Use --list for a plain index.`,
	Example: `  forge lessons
  forge lessons --list
  forge lessons --prompt "add collision"`,
	RunE: runLessons,
}

var (
	lessonsList   bool
	lessonsIndex  int
	lessonsPrompt string
)

func init() {
	rootCmd.AddCommand(lessonsCmd)

	lessonsCmd.Flags().BoolVarP(&lessonsList, "list", "l", false, "list lesson titles")
	lessonsCmd.Flags().IntVarP(&lessonsIndex, "index", "i", 0, "lesson to start at")
	lessonsCmd.Flags().StringVarP(&lessonsPrompt, "prompt", "p", "", "start at the lesson matching a request")
}

func runLessons(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if lessonsList {
		for i, l := range lessons.All() {
			fmt.Fprintf(out, "%d. %s\n", i, l.Title)
		}
		return nil
	}

	carousel := lessons.NewCarousel()
	start := lessonsIndex
	if lessonsPrompt != "" {
		start = lessons.MatchPrompt(lessonsPrompt)
	}
	if !carousel.Seek(start) {
		return fmt.Errorf("lesson index %d out of range (0-%d)", start, lessons.Len()-1)
	}

	if !ui.ColorEnabled() {
		renderLesson(out, carousel.Current(), carousel.Index(), lessons.Len())
		return nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	for {
		renderLesson(out, carousel.Current(), carousel.Index(), lessons.Len())

		var items []string
		if carousel.HasNext() {
			items = append(items, "Next")
		}
		if carousel.HasPrev() {
			items = append(items, "Previous")
		}
		items = append(items, "Quit")

		selectPrompt := promptui.Select{
			Label:     "Navigate",
			Items:     items,
			Templates: templates,
			Size:      len(items),
		}

		_, choice, err := selectPrompt.Run()
		if err != nil {
			return nil
		}

		switch choice {
		case "Next":
			carousel.Next()
		case "Previous":
			carousel.Prev()
		default:
			return nil
		}
	}
}

// renderLesson prints one lesson card.
func renderLesson(out io.Writer, l lessons.Lesson, index, total int) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.TitleWithDesc(fmt.Sprintf("%d/%d", index+1, total), l.Title))
	fmt.Fprintln(out)
	fmt.Fprintln(out, l.Explanation)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Before:")
	fmt.Fprintln(out, indentBlock(l.Before))
	fmt.Fprintln(out, "After:")
	fmt.Fprintln(out, indentBlock(l.After))

	if len(l.Practices) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Best practices:")
		for _, p := range l.Practices {
			fmt.Fprintln(out, "  - "+p)
		}
	}
	if len(l.Docs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Documentation:")
		for _, d := range l.Docs {
			fmt.Fprintf(out, "  - %s: %s\n", d.Text, d.URL)
		}
	}
	fmt.Fprintln(out)
}

func indentBlock(code string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
