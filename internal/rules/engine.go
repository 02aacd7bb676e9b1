// Package rules implements the rule-based fallback for code suggestions:
// prompt-keyed code rewrites, static pattern warnings and a heuristic
// performance-impact estimator.
package rules

import (
	"strings"

	"github.com/DevSymphony/forge/internal/util/text"
)

// Engine evaluates a Catalog. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	catalog    *Catalog
	heuristics []Heuristic
}

// NewEngine creates an engine over catalog. A nil catalog means the built-in one.
func NewEngine(catalog *Catalog) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Engine{catalog: catalog, heuristics: defaultHeuristics}
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// SelectTransformation returns the first rule, in catalog order, whose key
// occurs in the lower-cased prompt.
func (e *Engine) SelectTransformation(prompt string) (TransformationRule, bool) {
	lowered := text.Lower(prompt)
	for _, r := range e.catalog.transforms {
		if strings.Contains(lowered, text.Lower(r.Key)) {
			return r, true
		}
	}
	return TransformationRule{}, false
}

// MatchTransformation applies the first rule whose key matches prompt to code.
// It returns false when no key matches or when the rule's pattern does not
// change the code; a matching prompt does not guarantee a rewrite.
func (e *Engine) MatchTransformation(prompt, code string) (*Transformation, bool) {
	rule, ok := e.SelectTransformation(prompt)
	if !ok {
		return nil, false
	}

	rewritten, err := rule.Pattern.Replace(code, rule.Rewrite)
	if err != nil || rewritten == code {
		return nil, false
	}

	return &Transformation{
		Rule:        rule.Key,
		Code:        rewritten,
		Explanation: rule.Explanation,
		DocLink:     rule.DocLink,
		Impact:      rule.Impact,
	}, true
}

// ScorePatternWarnings evaluates every pattern rule against code in catalog order.
func (e *Engine) ScorePatternWarnings(code string) Report {
	var warnings []Warning
	for _, r := range e.catalog.patterns {
		if !r.Pattern.MatchString(code) {
			continue
		}
		if r.Counter != nil && r.Counter.MatchString(code) {
			continue
		}
		warnings = append(warnings, Warning{
			Rule:       r.Name,
			Priority:   r.Priority,
			Suggestion: r.Suggestion,
		})
	}

	return Report{
		Warnings: warnings,
		Clean:    len(warnings) == 0 && len(e.catalog.patterns) > 0,
	}
}

// EstimateImpact scores the change from original to improved.
// See EstimateImpact at package level.
func (e *Engine) EstimateImpact(original, improved, explanation string) Impact {
	return EstimateUnclamped(e.heuristics, original, improved, explanation).Clamp()
}
