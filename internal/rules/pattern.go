package rules

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single evaluation so a pathological user-supplied
// catalog pattern cannot hang a request.
const matchTimeout = 2 * time.Second

// Pattern is a compiled JavaScript-compatible regular expression.
// Catalog patterns rely on lookahead, which the standard library regexp
// package does not support.
type Pattern struct {
	expr   string
	global bool
	re     *regexp2.Regexp
}

// Compile compiles expr with ECMAScript semantics. When global is set,
// replacements rewrite every occurrence instead of the first one.
func Compile(expr string, global bool) (*Pattern, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", expr, err)
	}
	re.MatchTimeout = matchTimeout
	return &Pattern{expr: expr, global: global, re: re}, nil
}

// MustCompile is like Compile but panics on error.
// Useful for the built-in catalog.
func MustCompile(expr string, global bool) *Pattern {
	p, err := Compile(expr, global)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.expr
}

// Global reports whether the pattern rewrites every occurrence.
func (p *Pattern) Global() bool {
	return p.global
}

// MatchString reports whether s contains a match.
// A timeout counts as no match.
func (p *Pattern) MatchString(s string) bool {
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

// Replace rewrites the first match in s, or every match for global patterns.
func (p *Pattern) Replace(s string, rewrite RewriteFunc) (string, error) {
	count := 1
	if p.global {
		count = -1
	}
	return p.re.ReplaceFunc(s, func(m regexp2.Match) string {
		return rewrite(toMatch(m))
	}, -1, count)
}

func toMatch(m regexp2.Match) Match {
	groups := m.Groups()
	out := make([]string, len(groups))
	for i := range groups {
		out[i] = groups[i].String()
	}
	return Match{Groups: out}
}
