// Package assistant implements the "suggest changes" flow: a text-generation
// rewrite when a provider is available, the rule engine otherwise.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/DevSymphony/forge/internal/diff"
	"github.com/DevSymphony/forge/internal/lessons"
	"github.com/DevSymphony/forge/internal/llm"
	"github.com/DevSymphony/forge/internal/logging"
	"github.com/DevSymphony/forge/internal/rules"
	"github.com/DevSymphony/forge/internal/util/text"
)

// ErrMalformedInput is returned when the code or the prompt is blank.
var ErrMalformedInput = errors.New("malformed input")

// Source tells which path produced a result.
type Source string

const (
	SourceAI    Source = "ai"
	SourceRules Source = "rules"
	SourceNone  Source = "none"
)

// Result is the outcome of Suggest.
type Result struct {
	Code        string        `json:"code"`
	Explanation string        `json:"explanation,omitempty"`
	DocLink     string        `json:"docLink,omitempty"`
	Impact      *rules.Impact `json:"performanceImpact,omitempty"`
	Report      rules.Report  `json:"patterns"`
	Source      Source        `json:"source"`
	Changed     bool          `json:"changed"`

	Rule         string          `json:"rule,omitempty"`
	Provider     string          `json:"provider,omitempty"`
	FullResponse string          `json:"fullResponse,omitempty"`
	AIError      string          `json:"aiError,omitempty"`
	LessonIndex  int             `json:"lessonIndex"`
	Lesson       *lessons.Lesson `json:"lesson,omitempty"`
	Diff         []diff.Line     `json:"diff"`
}

// Warnings renders the pattern report, one line per warning.
func (r *Result) Warnings() []string {
	return r.Report.Lines()
}

// Assistant runs suggestions against a rule engine and an optional provider.
type Assistant struct {
	engine   *rules.Engine
	provider llm.Provider
	log      *logging.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithProvider enables the text-generation path.
func WithProvider(p llm.Provider) Option {
	return func(a *Assistant) { a.provider = p }
}

// WithLogger sets the operational logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *Assistant) { a.log = l }
}

// New creates an assistant. A nil engine uses the built-in catalog.
func New(engine *rules.Engine, opts ...Option) *Assistant {
	if engine == nil {
		engine = rules.NewEngine(nil)
	}
	a := &Assistant{engine: engine}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Engine returns the rule engine.
func (a *Assistant) Engine() *rules.Engine { return a.engine }

// ProviderName returns the configured provider, or "" when running on rules only.
func (a *Assistant) ProviderName() string {
	if a.provider == nil {
		return ""
	}
	return a.provider.Name()
}

// Suggest records code in the session history and proposes a rewrite for prompt.
//
// A provider failure is not an error: the rule engine is tried instead, and
// when no rule applies the result has Source "none" and the code unchanged.
func (a *Assistant) Suggest(ctx context.Context, s *Session, code, prompt string) (*Result, error) {
	switch {
	case text.IsBlank(code):
		return nil, fmt.Errorf("%w: code is empty", ErrMalformedInput)
	case text.IsBlank(prompt):
		return nil, fmt.Errorf("%w: prompt is empty", ErrMalformedInput)
	}

	if s != nil {
		s.Record(code)
	}

	res := &Result{Code: code, Source: SourceNone}

	sug, err := a.suggestAI(ctx, code, prompt)
	if err == nil {
		impact := a.engine.EstimateImpact(code, sug.Code, sug.Raw)
		res.Code = sug.Code
		res.Explanation = sug.Explanation
		res.DocLink = sug.DocLink
		res.Impact = &impact
		res.Source = SourceAI
		res.Provider = a.provider.Name()
		res.FullResponse = sug.Raw
	} else {
		if !errors.Is(err, llm.ErrNoProvider) {
			a.log.LogError(fmt.Errorf("falling back to rules: %w", err))
			res.AIError = err.Error()
		}
		if t, ok := a.engine.MatchTransformation(prompt, code); ok {
			impact := t.Impact
			res.Code = t.Code
			res.Explanation = t.Explanation
			res.DocLink = t.DocLink
			res.Impact = &impact
			res.Source = SourceRules
			res.Rule = t.Rule
		}
	}

	res.Changed = res.Code != code
	res.Report = a.engine.ScorePatternWarnings(res.Code)
	if res.Source != SourceNone {
		res.LessonIndex = lessons.MatchPrompt(prompt)
		if l, ok := lessons.Get(res.LessonIndex); ok {
			res.Lesson = &l
		}
	}
	res.Diff = diff.Split(code, res.Code)

	a.log.LogOperation("suggest", fmt.Sprintf("source=%s rule=%q changed=%t warnings=%d", res.Source, res.Rule, res.Changed, len(res.Report.Warnings)))
	return res, nil
}

func (a *Assistant) suggestAI(ctx context.Context, code, prompt string) (*llm.Suggestion, error) {
	if a.provider == nil {
		return nil, llm.ErrNoProvider
	}
	sug, err := a.provider.Suggest(ctx, code, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.provider.Name(), err)
	}
	return sug, nil
}

// Lint scores pattern warnings for code.
func (a *Assistant) Lint(code string) rules.Report {
	return a.engine.ScorePatternWarnings(code)
}

// EstimateImpact estimates the performance change from original to improved.
func (a *Assistant) EstimateImpact(original, improved, explanation string) rules.Impact {
	return a.engine.EstimateImpact(original, improved, explanation)
}

// Close releases the provider.
func (a *Assistant) Close() error {
	if a.provider == nil {
		return nil
	}
	return a.provider.Close()
}
