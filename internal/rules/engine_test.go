package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const movementScene = `class GameScene extends Phaser.Scene {
    create() {
        this.sprite = this.physics.add.sprite(100, 100, 'player');
        this.sprite.setVelocity(100, 200);
    }
}`

func TestNewEngine_DefaultCatalog(t *testing.T) {
	engine := NewEngine(nil)
	require.NotNil(t, engine.Catalog())
	assert.Equal(t, []string{
		"optimize movement",
		"add collision",
		"optimize rendering",
		"add animation",
		"add preload",
	}, engine.Catalog().Keys())
}

func TestMatchTransformation(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	t.Run("optimize movement splits velocity", func(t *testing.T) {
		result, ok := engine.MatchTransformation("optimize movement", "this.sprite.setVelocity(100, 200)")
		require.True(t, ok)
		assert.Contains(t, result.Code, "setVelocityX(100)")
		assert.Contains(t, result.Code, "setVelocityY(200)")
		assert.Equal(t, Impact{CPU: -15, Memory: 0, FPS: 5}, result.Impact)
		assert.Equal(t, "optimize movement", result.Rule)
		assert.NotEmpty(t, result.DocLink)
	})

	t.Run("prompt matching ignores case", func(t *testing.T) {
		result, ok := engine.MatchTransformation("Please OPTIMIZE Movement!", movementScene)
		require.True(t, ok)
		assert.Equal(t, "optimize movement", result.Rule)
	})

	t.Run("no key matches", func(t *testing.T) {
		result, ok := engine.MatchTransformation("make it pretty", movementScene)
		assert.False(t, ok)
		assert.Nil(t, result)
	})

	t.Run("key matches but pattern does not", func(t *testing.T) {
		result, ok := engine.MatchTransformation("add animation", movementScene)
		assert.False(t, ok)
		assert.Nil(t, result)
	})

	t.Run("catalog order breaks ties between keys", func(t *testing.T) {
		result, ok := engine.MatchTransformation("add collision and optimize movement", movementScene)
		require.True(t, ok)
		assert.Equal(t, "optimize movement", result.Rule)
	})

	t.Run("first rule wins even when it does not apply", func(t *testing.T) {
		// "optimize movement" is selected first; its pattern is absent, so the
		// collision rule is never tried.
		code := "this.sprite = this.physics.add.sprite(1, 2, 'hero');"
		result, ok := engine.MatchTransformation("optimize movement, add collision", code)
		assert.False(t, ok)
		assert.Nil(t, result)
	})

	t.Run("non-global pattern rewrites first occurrence", func(t *testing.T) {
		code := "this.sprite.setVelocity(1, 2);\nthis.sprite.setVelocity(3, 4);"
		result, ok := engine.MatchTransformation("optimize movement", code)
		require.True(t, ok)
		assert.Contains(t, result.Code, "setVelocityX(1)")
		assert.Contains(t, result.Code, "this.sprite.setVelocity(3, 4)")
	})

	t.Run("global pattern rewrites every occurrence", func(t *testing.T) {
		code := "this.add.image(400, 300, 'sky');\nthis.add.image(200, 200, 'diamond');"
		result, ok := engine.MatchTransformation("optimize rendering", code)
		require.True(t, ok)
		assert.Equal(t, 2, strings.Count(result.Code, "const texture = this.textures.get("))
		assert.Contains(t, result.Code, "this.add.sprite(200, 200, 'diamond');")
		assert.Equal(t, Impact{CPU: -10, Memory: -20, FPS: 8}, result.Impact)
	})

	t.Run("add preload inserts method before create", func(t *testing.T) {
		result, ok := engine.MatchTransformation("add preload", movementScene)
		require.True(t, ok)
		assert.Less(t, strings.Index(result.Code, "preload() {"), strings.Index(result.Code, "create() {"))

		result, ok = engine.MatchTransformation("add preload", "create() {")
		require.True(t, ok)
		want := "preload() {\n" +
			"    this.load.image('sky', 'assets/sky.png');\n" +
			"    this.load.image('ground', 'assets/platform.png');\n" +
			"    this.load.spritesheet('player', \n" +
			"        'assets/player.png',\n" +
			"        { frameWidth: 32, frameHeight: 48 }\n" +
			"    );\n" +
			"}\n" +
			"\n" +
			"create() {"
		assert.Equal(t, want, result.Code)
	})

	t.Run("add animation keeps the original statement", func(t *testing.T) {
		code := "this.player = this.physics.add.sprite(100, 450, 'dude');"
		result, ok := engine.MatchTransformation("add animation", code)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(result.Code, "this.player = this.physics.add.sprite(100, 450, 'dude')\n"))
		assert.True(t, strings.HasSuffix(result.Code, "});;"))
		assert.Equal(t, 3, strings.Count(result.Code, "this.anims.create("))
		assert.Contains(t, result.Code, "generateFrameNumbers('dude'")
	})
}

func TestMatchTransformation_Deterministic(t *testing.T) {
	engine := NewEngine(nil)
	first, ok1 := engine.MatchTransformation("optimize movement", movementScene)
	second, ok2 := engine.MatchTransformation("optimize movement", movementScene)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestMatchTransformation_ImpactInRange(t *testing.T) {
	engine := NewEngine(nil)
	for _, rule := range engine.Catalog().Transformations() {
		t.Run(rule.Key, func(t *testing.T) {
			assert.True(t, rule.Impact.InRange(), "impact %s", rule.Impact)
		})
	}
}

func TestScorePatternWarnings(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("missing destroy fires without destroy call", func(t *testing.T) {
		report := engine.ScorePatternWarnings("const foo = new Foo();")
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, "missingDestroy", report.Warnings[0].Rule)
		assert.Equal(t, PriorityHigh, report.Warnings[0].Priority)
		assert.False(t, report.Clean)
	})

	t.Run("destroy call vetoes missing destroy", func(t *testing.T) {
		report := engine.ScorePatternWarnings("const foo = new Foo();\nfoo.destroy();")
		for _, w := range report.Warnings {
			assert.NotEqual(t, "missingDestroy", w.Rule)
		}
		assert.True(t, report.Clean)
		assert.Equal(t, []string{NoIssuesMessage}, report.Lines())
	})

	t.Run("scene without preload", func(t *testing.T) {
		report := engine.ScorePatternWarnings(movementScene)
		require.NotEmpty(t, report.Warnings)
		assert.Equal(t, "noPreload", report.Warnings[0].Rule)
	})

	t.Run("scene with preload first", func(t *testing.T) {
		report := engine.ScorePatternWarnings("class Boot extends Phaser.Scene { preload() {} }")
		assert.True(t, report.Clean)
	})

	t.Run("direct position assignment", func(t *testing.T) {
		report := engine.ScorePatternWarnings("this.player.x = 10;")
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, PriorityMedium, report.Warnings[0].Priority)
		assert.Equal(t, "[medium] "+report.Warnings[0].Suggestion, report.Lines()[0])
	})

	t.Run("warnings keep catalog order", func(t *testing.T) {
		code := `class Level extends Phaser.Scene {
    update() { for (let i = 0; i < 3; i++) { this.enemy.x = i; } }
}
const e = new Enemy();`
		report := engine.ScorePatternWarnings(code)
		var names []string
		for _, w := range report.Warnings {
			names = append(names, w.Rule)
		}
		assert.Equal(t, []string{"noPreload", "directSetXY", "missingDestroy", "updateLoop"}, names)
	})

	t.Run("repeated scans agree", func(t *testing.T) {
		code := "this.player.x = 1; const b = new Bullet();"
		assert.Equal(t, engine.ScorePatternWarnings(code), engine.ScorePatternWarnings(code))
	})
}

func TestScorePatternWarnings_EmptyCatalog(t *testing.T) {
	catalog, err := NewCatalog(nil, nil)
	require.NoError(t, err)

	report := NewEngine(catalog).ScorePatternWarnings("const foo = new Foo();")
	assert.Empty(t, report.Warnings)
	assert.False(t, report.Clean, "an empty catalog must not report a clean scan")
	assert.Empty(t, report.Lines())
}

func TestScorePatternWarnings_DuplicatesAcrossRules(t *testing.T) {
	catalog, err := NewCatalog(nil, []PatternRule{
		{Name: "a", Pattern: MustCompile(`foo`, false), Priority: PriorityHigh, Suggestion: "same"},
		{Name: "b", Pattern: MustCompile(`foo`, false), Priority: PriorityHigh, Suggestion: "same"},
	})
	require.NoError(t, err)

	report := NewEngine(catalog).ScorePatternWarnings("foo")
	assert.Len(t, report.Warnings, 2)
}
