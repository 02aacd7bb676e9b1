package ui

import (
	"strings"

	"github.com/DevSymphony/forge/internal/diff"
	"github.com/DevSymphony/forge/internal/rules"
)

// DiffLines renders a split diff, red for removals and green for additions.
func DiffLines(lines []diff.Line) string {
	var sb strings.Builder
	for _, l := range lines {
		switch l.Kind {
		case diff.Removed:
			sb.WriteString(colorize(Red, l.String()))
		case diff.Added:
			sb.WriteString(colorize(Green, l.String()))
		default:
			sb.WriteString(colorize(Gray, l.String()))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Unified colors a unified diff produced by diff.Unified.
func Unified(text string) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "-"):
			sb.WriteString(colorize(Red, body))
		case strings.HasPrefix(body, "+"):
			sb.WriteString(colorize(Green, body))
		default:
			sb.WriteString(body)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Warnings renders a pattern report, one line per warning, colored by priority.
func Warnings(r rules.Report) string {
	if r.Clean {
		return OK(rules.NoIssuesMessage) + "\n"
	}
	var sb strings.Builder
	for _, w := range r.Warnings {
		color := Yellow
		if w.Priority == rules.PriorityHigh {
			color = Red
		}
		sb.WriteString(colorize(color, "["+string(w.Priority)+"]"))
		sb.WriteString(" ")
		sb.WriteString(w.Suggestion)
		sb.WriteByte('\n')
	}
	return sb.String()
}
