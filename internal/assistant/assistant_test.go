package assistant

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/forge/internal/diff"
	"github.com/DevSymphony/forge/internal/llm"
	"github.com/DevSymphony/forge/internal/rules"
)

const scene = `class GameScene extends Phaser.Scene {
    create() {
        this.sprite = this.physics.add.sprite(100, 100, 'player');
        this.sprite.setVelocity(100, 200);
    }
}`

type stubProvider struct {
	sug   *llm.Suggestion
	err   error
	calls int
}

func (p *stubProvider) Suggest(context.Context, string, string) (*llm.Suggestion, error) {
	p.calls++
	return p.sug, p.err
}
func (p *stubProvider) Name() string { return "stub" }
func (p *stubProvider) Close() error { return nil }

func TestSuggest_MalformedInput(t *testing.T) {
	a := New(nil)
	s := NewSession(0)

	_, err := a.Suggest(context.Background(), s, "   ", "optimize movement")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = a.Suggest(context.Background(), s, scene, "\n")
	assert.ErrorIs(t, err, ErrMalformedInput)

	assert.Equal(t, -1, s.State().Position, "nothing is recorded for rejected input")
}

func TestSuggest_RulesWithoutProvider(t *testing.T) {
	a := New(nil)
	s := NewSession(0)

	res, err := a.Suggest(context.Background(), s, scene, "optimize movement")
	require.NoError(t, err)

	assert.Equal(t, SourceRules, res.Source)
	assert.True(t, res.Changed)
	assert.Equal(t, "optimize movement", res.Rule)
	require.NotNil(t, res.Impact)
	assert.Equal(t, rules.Impact{CPU: -15, Memory: 0, FPS: 5}, *res.Impact)
	assert.Contains(t, res.Code, "this.sprite.setVelocityX(100);\nthis.sprite.setVelocityY(200);")
	assert.Empty(t, res.AIError)
	require.NotNil(t, res.Lesson)
	assert.Equal(t, 0, res.LessonIndex)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, scene, cur, "the original code is recorded, not the suggestion")

	assert.Contains(t, res.Diff, diff.Line{Kind: diff.Removed, Text: "        this.sprite.setVelocity(100, 200);"})
}

func TestSuggest_AIPath(t *testing.T) {
	improved := "this.sprite.setVelocityX(1);"
	p := &stubProvider{sug: &llm.Suggestion{
		Code:        improved,
		Explanation: "faster movement",
		DocLink:     "https://phaser.io/docs/x",
		Raw:         "Explanation: faster movement\n```js\n" + improved + "\n```",
	}}
	a := New(nil, WithProvider(p))

	res, err := a.Suggest(context.Background(), NewSession(0), scene, "Object Pooling")
	require.NoError(t, err)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, SourceAI, res.Source)
	assert.Equal(t, "stub", res.Provider)
	assert.Equal(t, improved, res.Code)
	assert.Equal(t, "faster movement", res.Explanation)
	assert.Equal(t, "https://phaser.io/docs/x", res.DocLink)
	require.NotNil(t, res.Impact)
	assert.Equal(t, rules.EstimateImpact(scene, improved, p.sug.Raw), *res.Impact)
	assert.Equal(t, 2, res.LessonIndex)
	assert.Equal(t, "Object Pooling", res.Lesson.Title)
}

func TestSuggest_ProviderFailureFallsBack(t *testing.T) {
	p := &stubProvider{err: fmt.Errorf("%w: status 503", llm.ErrUnavailable)}
	a := New(nil, WithProvider(p))

	res, err := a.Suggest(context.Background(), NewSession(0), scene, "add preload")
	require.NoError(t, err)

	assert.Equal(t, SourceRules, res.Source)
	assert.Equal(t, "add preload", res.Rule)
	assert.Contains(t, res.AIError, "status 503")
	assert.Equal(t, rules.Impact{CPU: 0, Memory: 15, FPS: 10}, *res.Impact)
}

func TestSuggest_NoRuleMatch(t *testing.T) {
	p := &stubProvider{err: llm.ErrUnavailable}
	a := New(nil, WithProvider(p))

	res, err := a.Suggest(context.Background(), NewSession(0), scene, "make it sparkle")
	require.NoError(t, err)

	assert.Equal(t, SourceNone, res.Source)
	assert.False(t, res.Changed)
	assert.Equal(t, scene, res.Code)
	assert.Nil(t, res.Impact)
	assert.Nil(t, res.Lesson)
	assert.Equal(t, "noPreload", res.Report.Warnings[0].Rule, "warnings are scored on the original code")
	for _, l := range res.Diff {
		assert.Equal(t, diff.Context, l.Kind)
	}
}

func TestSuggest_WarningsOnRewrittenCode(t *testing.T) {
	res, err := New(nil).Suggest(context.Background(), nil, scene, "add preload")
	require.NoError(t, err)

	for _, w := range res.Report.Warnings {
		assert.NotEqual(t, "noPreload", w.Rule)
	}
	assert.NotEmpty(t, res.Warnings())
}

func TestAssistant_Helpers(t *testing.T) {
	a := New(nil)
	assert.Empty(t, a.ProviderName())
	assert.NoError(t, a.Close())
	assert.False(t, a.Lint("const b = new Bullet();").Clean)
	assert.Equal(t, rules.Impact{CPU: -5, FPS: 3}, a.EstimateImpact("", "", "efficient"))

	withStub := New(nil, WithProvider(&stubProvider{}))
	assert.Equal(t, "stub", withStub.ProviderName())
}
