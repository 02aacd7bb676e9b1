// Package diff renders line differences between an original and a rewritten scene.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies a rendered line.
type Kind string

const (
	Context Kind = "context"
	Removed Kind = "removed"
	Added   Kind = "added"
)

func (k Kind) prefix() string {
	switch k {
	case Removed:
		return "-"
	case Added:
		return "+"
	default:
		return " "
	}
}

// Line is one rendered diff line.
type Line struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// String renders the line with its marker, e.g. "- old".
func (l Line) String() string {
	return l.Kind.prefix() + " " + l.Text
}

// Split compares old and updated position by position. Lines that differ at the
// same index are shown as a removal of the old line followed by an addition
// of the new one; empty lines on either side are omitted.
func Split(old, updated string) []Line {
	oldLines := strings.Split(old, "\n")
	newLines := strings.Split(updated, "\n")
	n := max(len(oldLines), len(newLines))

	out := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		var o, nw string
		if i < len(oldLines) {
			o = oldLines[i]
		}
		if i < len(newLines) {
			nw = newLines[i]
		}

		if o == nw {
			out = append(out, Line{Kind: Context, Text: o})
			continue
		}
		if o != "" {
			out = append(out, Line{Kind: Removed, Text: o})
		}
		if nw != "" {
			out = append(out, Line{Kind: Added, Text: nw})
		}
	}
	return out
}

// Unified returns a line-mode diff where each line carries a "-", "+" or " "
// marker.
func Unified(old, updated string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(terminate(old), terminate(updated))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Stats counts added and removed lines in a line-mode diff.
func Stats(old, updated string) (additions, deletions int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(terminate(old), terminate(updated))
	for _, d := range dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			additions += len(splitLines(d.Text))
		case diffmatchpatch.DiffDelete:
			deletions += len(splitLines(d.Text))
		}
	}
	return additions, deletions
}

// terminate makes the last line comparable with lines that end in "\n".
func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
