package rules

import "fmt"

// DefaultCatalog returns the built-in Phaser.js catalog.
//
// The impact numbers and messages are hand-tuned constants carried over as-is;
// they are configuration, not derived values.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultTransformations(), defaultPatterns())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

func defaultTransformations() []TransformationRule {
	return []TransformationRule{
		{
			Key:     "optimize movement",
			Pattern: MustCompile(`this\.sprite\.setVelocity\((\d+),\s*(\d+)\)`, false),
			Rewrite: func(m Match) string {
				return fmt.Sprintf("this.sprite.setVelocityX(%s);\nthis.sprite.setVelocityY(%s);", m.Group(1), m.Group(2))
			},
			Explanation: "Split velocity into X and Y components for better control and performance",
			DocLink:     "https://phaser.io/docs/2.6.2/Phaser.Physics.Arcade.Body.html#setVelocity",
			Impact:      Impact{CPU: -15, Memory: 0, FPS: 5},
		},
		{
			Key:     "add collision",
			Pattern: MustCompile(`this\.sprite\s*=\s*this\.physics\.add\.sprite\((\d+),\s*(\d+),\s*['"](.+)['"]\)`, false),
			Rewrite: func(m Match) string {
				return m.Text() + "\nthis.physics.add.collider(this.sprite, this.platforms, this.handleCollision, null, this);"
			},
			Explanation: "Added collision detection between sprite and platforms",
			DocLink:     "https://phaser.io/docs/2.6.2/Phaser.Physics.Arcade.html#collider",
			Impact:      Impact{CPU: 5, Memory: 2, FPS: -2},
		},
		{
			Key:     "optimize rendering",
			Pattern: MustCompile(`this\.add\.image\((\d+),\s*(\d+),\s*['"](.+)['"]\)`, true),
			Rewrite: func(m Match) string {
				x, y, key := m.Group(1), m.Group(2), m.Group(3)
				return fmt.Sprintf(`// Using sprite sheet instead of individual images
const texture = this.textures.get('%s');
if (!texture.frameTotal) {
    this.add.sprite(%s, %s, '%s');
} else {
    %s
}`, key, x, y, key, m.Text())
			},
			Explanation: "Added sprite sheet optimization to improve rendering performance",
			DocLink:     "https://phaser.io/docs/2.6.2/Phaser.GameObjects.Sprite.html",
			Impact:      Impact{CPU: -10, Memory: -20, FPS: 8},
		},
		{
			Key:     "add animation",
			Pattern: MustCompile(`this\.player\s*=\s*this\.physics\.add\.sprite\((\d+),\s*(\d+),\s*['"](.+)['"]\)`, false),
			Rewrite: func(m Match) string {
				key := m.Group(3)
				return fmt.Sprintf(`%s

// Add animations
this.anims.create({
    key: 'left',
    frames: this.anims.generateFrameNumbers('%s', { start: 0, end: 3 }),
    frameRate: 10,
    repeat: -1
});

this.anims.create({
    key: 'turn',
    frames: [ { key: '%s', frame: 4 } ],
    frameRate: 20
});

this.anims.create({
    key: 'right',
    frames: this.anims.generateFrameNumbers('%s', { start: 5, end: 8 }),
    frameRate: 10,
    repeat: -1
});`, m.Text(), key, key, key)
			},
			Explanation: "Added player animations for smoother movement",
			DocLink:     "https://phaser.io/docs/2.6.2/Phaser.Animations.AnimationManager.html#create",
			Impact:      Impact{CPU: 5, Memory: 10, FPS: -3},
		},
		{
			Key:     "add preload",
			Pattern: MustCompile(`create\(\) \{`, false),
			Rewrite: func(m Match) string {
				return `preload() {
    this.load.image('sky', 'assets/sky.png');
    this.load.image('ground', 'assets/platform.png');
    this.load.spritesheet('player', 
        'assets/player.png',
        { frameWidth: 32, frameHeight: 48 }
    );
}

` + m.Text()
			},
			Explanation: "Added asset preloading for better game initialization",
			DocLink:     "https://phaser.io/docs/2.6.2/Phaser.Loader.LoaderPlugin.html",
			Impact:      Impact{CPU: 0, Memory: 15, FPS: 10},
		},
	}
}

func defaultPatterns() []PatternRule {
	return []PatternRule{
		{
			Name:       "noPreload",
			Pattern:    MustCompile(`class\s+\w+\s+extends\s+Phaser\.Scene\s*\{(?![^}]*preload\s*\(\s*\))`, false),
			Suggestion: "Your scene is missing a preload() method. Adding preload will ensure assets are properly loaded.",
			Priority:   PriorityHigh,
		},
		{
			Name:       "directSetXY",
			Pattern:    MustCompile(`\.\w+\.x\s*=|\.\w+\.y\s*=`, true),
			Suggestion: "Consider using setPosition() instead of directly setting x/y properties for better performance.",
			Priority:   PriorityMedium,
		},
		{
			Name:       "missingDestroy",
			Pattern:    MustCompile(`new\s+\w+\(`, true),
			Counter:    MustCompile(`\.destroy\(\)`, false),
			Suggestion: "Game objects are created but might not be destroyed, potentially causing memory leaks.",
			Priority:   PriorityHigh,
		},
		{
			Name:       "updateLoop",
			Pattern:    MustCompile(`update\s*\(\s*\)\s*\{[^}]*for\s*\(`, false),
			Suggestion: "Using loops in the update method can cause performance issues. Consider optimizing.",
			Priority:   PriorityHigh,
		},
	}
}
