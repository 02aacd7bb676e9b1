package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestion(t *testing.T) {
	t.Run("extracts javascript block, explanation and doc link", func(t *testing.T) {
		generated := "Explanation: Split velocity into axes.\n" +
			"See https://phaser.io/docs/3.60.0/Phaser.Physics.Arcade.Body.html) for details.\n" +
			"```javascript\n  this.sprite.setVelocityX(100);\n```"

		s, err := ParseSuggestion(generated)
		require.NoError(t, err)
		assert.Equal(t, "this.sprite.setVelocityX(100);", s.Code)
		assert.Equal(t, "Split velocity into axes.\nSee https://phaser.io/docs/3.60.0/Phaser.Physics.Arcade.Body.html) for details.", s.Explanation)
		assert.Equal(t, "https://phaser.io/docs/3.60.0/Phaser.Physics.Arcade.Body.html", s.DocLink)
		assert.Equal(t, generated, s.Raw)
	})

	t.Run("js and bare fences", func(t *testing.T) {
		s, err := ParseSuggestion("```js\nlet a;\n```")
		require.NoError(t, err)
		assert.Equal(t, "let a;", s.Code)

		s, err = ParseSuggestion("```\nlet b;\n```")
		require.NoError(t, err)
		assert.Equal(t, "let b;", s.Code)
	})

	t.Run("first block wins", func(t *testing.T) {
		s, err := ParseSuggestion("```js\nfirst\n```\n```js\nsecond\n```")
		require.NoError(t, err)
		assert.Equal(t, "first", s.Code)
	})

	t.Run("no block uses raw text", func(t *testing.T) {
		s, err := ParseSuggestion("let c = 3;")
		require.NoError(t, err)
		assert.Equal(t, "let c = 3;", s.Code)
		assert.Equal(t, DefaultExplanation, s.Explanation)
		assert.Empty(t, s.DocLink)
	})

	t.Run("explanation is case-insensitive and stops at a fence", func(t *testing.T) {
		s, err := ParseSuggestion("EXPLANATION: pooled bullets\n```js\nx\n```")
		require.NoError(t, err)
		assert.Equal(t, "pooled bullets", s.Explanation)
	})

	t.Run("blank explanation keeps default", func(t *testing.T) {
		s, err := ParseSuggestion("explanation:   ```js\nx\n```")
		require.NoError(t, err)
		assert.Equal(t, DefaultExplanation, s.Explanation)
	})
}

func TestParseSuggestion_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n\t"} {
		_, err := ParseSuggestion(in)
		assert.ErrorIs(t, err, ErrUnavailable)
	}
}
