// Package ui formats terminal output: status lines, diffs, warnings and
// impact cards. Color is applied only when stdout is a terminal.
package ui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
	Bold   = "\033[1m"
)

// ColorEnabled reports whether output is colored. Tests may override it.
var ColorEnabled = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// colorize applies color only if output is a TTY
func colorize(color, msg string) string {
	if !ColorEnabled() {
		return msg
	}
	return color + msg + Reset
}

func status(color, label, msg string) string {
	return fmt.Sprintf("%s %s", colorize(color, "["+label+"]"), msg)
}

// OK formats a success message with [OK] prefix in green
func OK(msg string) string { return status(Green, "OK", msg) }

// Error formats an error message with [ERROR] prefix in red
func Error(msg string) string { return status(Red, "ERROR", msg) }

// Warn formats a warning message with [WARN] prefix in yellow
func Warn(msg string) string { return status(Yellow, "WARN", msg) }

// Info formats an info message with [INFO] prefix in blue
func Info(msg string) string { return status(Blue, "INFO", msg) }

// TitleWithDesc formats a section title with description
func TitleWithDesc(title, desc string) string {
	prefix := colorize(Bold+Cyan, fmt.Sprintf("[%s]", title))
	if desc == "" {
		return prefix
	}
	return fmt.Sprintf("%s %s", prefix, desc)
}

// PrintOK prints a success message
func PrintOK(msg string) { fmt.Println(OK(msg)) }

// PrintError prints an error message
func PrintError(msg string) { fmt.Println(Error(msg)) }

// PrintWarn prints a warning message
func PrintWarn(msg string) { fmt.Println(Warn(msg)) }

// PrintInfo prints an info message
func PrintInfo(msg string) { fmt.Println(Info(msg)) }

// PrintTitle prints a section title
func PrintTitle(title, desc string) { fmt.Println(TitleWithDesc(title, desc)) }

// Indent returns the message with indentation
func Indent(msg string) string {
	return "     " + msg
}
