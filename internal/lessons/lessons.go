// Package lessons is the learning assistant: short before/after lessons on
// Phaser performance techniques.
package lessons

import (
	"strings"

	"github.com/DevSymphony/forge/internal/util/text"
)

// DocLink points at reference documentation for a lesson.
type DocLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Lesson is one learning-assistant card.
type Lesson struct {
	Title       string    `json:"title"`
	Explanation string    `json:"explanation"`
	Before      string    `json:"beforeCode"`
	After       string    `json:"afterCode"`
	Docs        []DocLink `json:"docs"`
	Practices   []string  `json:"practices"`
}

// All returns a copy of the built-in lessons in carousel order.
func All() []Lesson {
	return append([]Lesson(nil), builtin...)
}

// Len returns the number of built-in lessons.
func Len() int { return len(builtin) }

// Get returns the lesson at i.
func Get(i int) (Lesson, bool) {
	if i < 0 || i >= len(builtin) {
		return Lesson{}, false
	}
	return builtin[i], true
}

// MatchPrompt returns the index of the first lesson whose title contains the
// prompt or is contained in it, ignoring case. It returns 0 when none match.
func MatchPrompt(prompt string) int {
	p := text.Lower(prompt)
	for i, l := range builtin {
		title := text.Lower(l.Title)
		if strings.Contains(title, p) || strings.Contains(p, title) {
			return i
		}
	}
	return 0
}
