package lessons

// builtin is the lesson set shipped with forge, in carousel order.
var builtin = []Lesson{
	{
		Title:       "Velocity Optimization",
		Explanation: "Using setVelocityX() and setVelocityY() separately instead of setVelocity() allows Phaser to optimize internal calculations and reduce CPU overhead. This is especially important for games with many moving objects.",
		Before: `// Before: Using combined velocity
this.sprite.setVelocity(100, 200);
// This requires Phaser to process both components even when only one changes`,
		After: `// After: Using separate velocity components
this.sprite.setVelocityX(100);
this.sprite.setVelocityY(200);
// This allows Phaser to optimize when only one component changes`,
		Docs: []DocLink{
			{Text: "Arcade Physics Velocity", URL: "https://phaser.io/docs/2.6.2/Phaser.Physics.Arcade.Body.html#velocity"},
			{Text: "setVelocityX Method", URL: "https://phaser.io/docs/2.6.2/Phaser.Physics.Arcade.Body.html#setVelocityX"},
		},
		Practices: []string{
			"Update only the velocity components that need changing",
			"Use setVelocity for initial setup, but component methods during gameplay",
			"Combine with delta time for frame-rate independent movement",
		},
	},
	{
		Title:       "Sprite Sheet Optimization",
		Explanation: "Using sprite sheets instead of individual images reduces draw calls to the GPU, decreases memory usage, and improves loading times. This is a critical optimization for games with many visual elements.",
		Before: `// Before: Using multiple individual images
this.add.image(100, 100, 'player1');
this.add.image(200, 100, 'player2');
this.add.image(300, 100, 'player3');
// Each image requires a separate texture and draw call`,
		After: `// After: Using a sprite sheet
this.load.spritesheet('player', 'assets/player_sheet.png', { 
    frameWidth: 64, 
    frameHeight: 64 
});
// Later in create():
this.add.sprite(100, 100, 'player', 0);
this.add.sprite(200, 100, 'player', 1);
this.add.sprite(300, 100, 'player', 2);`,
		Docs: []DocLink{
			{Text: "Using Sprite Sheets", URL: "https://phaser.io/docs/2.6.2/Phaser.GameObjects.Sprite.html"},
			{Text: "Texture Manager", URL: "https://phaser.io/docs/2.6.2/Phaser.Textures.TextureManager.html"},
		},
		Practices: []string{
			"Pack related images into a single sprite sheet",
			"Use texture atlases for irregularly-sized sprites",
			"Keep sprite sheet dimensions to powers of 2 (e.g., 512×512, 1024×1024)",
		},
	},
	{
		Title:       "Object Pooling",
		Explanation: "Object pooling reuses game objects instead of constantly creating and destroying them. This reduces garbage collection pauses and improves performance, especially for frequently spawned objects like bullets or particles.",
		Before: `// Before: Creating new objects every time
function fireBullet() {
    // Creates a new bullet each time
    const bullet = this.physics.add.sprite(player.x, player.y, 'bullet');
    bullet.setVelocity(200, 0);
    
    // Object gets destroyed later
    this.time.delayedCall(2000, () => bullet.destroy());
}`,
		After: `// After: Using object pooling
function createBulletPool() {
    // Create a group for bullets
    this.bullets = this.physics.add.group({
        defaultKey: 'bullet',
        maxSize: 20
    });
}

function fireBullet() {
    // Get a bullet from the pool
    const bullet = this.bullets.get(player.x, player.y);
    
    if (bullet) {
        bullet.setActive(true).setVisible(true);
        bullet.setVelocity(200, 0);
        
        // Return to pool instead of destroying
        this.time.delayedCall(2000, () => {
            bullet.setActive(false).setVisible(false);
        });
    }
}`,
		Docs: []DocLink{
			{Text: "Phaser Group", URL: "https://phaser.io/docs/2.6.2/Phaser.GameObjects.Group.html"},
			{Text: "Object Pooling", URL: "https://phaser.io/examples/v3/view/game-objects/group/get-children"},
		},
		Practices: []string{
			"Pre-allocate pools for frequently created/destroyed objects",
			"Use setActive/setVisible instead of destroy()",
			"Size your pools based on maximum expected simultaneous objects",
		},
	},
	{
		Title:       "Optimized Collision Detection",
		Explanation: "Phaser's collision system can be optimized by using the right collision methods and limiting checks to only what's necessary. This significantly reduces CPU usage in games with complex physics.",
		Before: `// Before: Checking all objects against each other
update() {
    // Inefficient - checks everything against everything else
    this.physics.world.collide();
    
    // Manually checking many sprites
    for (let i = 0; i < this.enemies.length; i++) {
        for (let j = 0; j < this.bullets.length; j++) {
            this.physics.overlap(this.enemies[i], this.bullets[j], this.hitEnemy);
        }
    }
}`,
		After: `// After: Using collision groups and spatial hashing
create() {
    // Set up collision groups
    this.enemies = this.physics.add.group();
    this.bullets = this.physics.add.group();
    
    // Set up collision once
    this.physics.add.overlap(this.enemies, this.bullets, this.hitEnemy, null, this);
}

update() {
    // No need to check collisions manually - Phaser handles it efficiently
}`,
		Docs: []DocLink{
			{Text: "Collision System", URL: "https://phaser.io/docs/2.6.2/Phaser.Physics.Arcade.html#collide"},
			{Text: "Arcade Physics", URL: "https://phaser.io/docs/2.6.2/Phaser.Physics.Arcade.ArcadePhysics.html"},
		},
		Practices: []string{
			"Group similar objects for collision detection",
			"Use colliders in create() instead of update() when possible",
			"Set smaller hitbox areas with setSize() and setOffset()",
		},
	},
	{
		Title:       "Efficient Animation Management",
		Explanation: "Properly managing animations can significantly improve performance. Creating them once and reusing animation keys reduces memory usage and improves sprite rendering speed.",
		Before: `// Before: Creating animations for each sprite
create() {
    this.player1 = this.add.sprite(100, 100, 'player');
    this.player2 = this.add.sprite(200, 100, 'player');
    
    // Inefficiently creating same animations twice
    this.anims.create({
        key: 'player1_run',
        frames: this.anims.generateFrameNumbers('player', { start: 0, end: 3 }),
        frameRate: 10,
        repeat: -1
    });
    
    this.anims.create({
        key: 'player2_run',
        frames: this.anims.generateFrameNumbers('player', { start: 0, end: 3 }),
        frameRate: 10,
        repeat: -1
    });
    
    this.player1.play('player1_run');
    this.player2.play('player2_run');
}`,
		After: `// After: Creating animations once and reusing them
create() {
    // Create animation once
    this.anims.create({
        key: 'run',
        frames: this.anims.generateFrameNumbers('player', { start: 0, end: 3 }),
        frameRate: 10,
        repeat: -1
    });
    
    // Create sprites and reuse the same animation
    this.player1 = this.add.sprite(100, 100, 'player').play('run');
    this.player2 = this.add.sprite(200, 100, 'player').play('run');
}`,
		Docs: []DocLink{
			{Text: "Animation Manager", URL: "https://phaser.io/docs/2.6.2/Phaser.Animations.AnimationManager.html"},
			{Text: "Animation", URL: "https://phaser.io/docs/2.6.2/Phaser.Animations.Animation.html"},
		},
		Practices: []string{
			"Create animations in a central place like a preload function",
			"Reuse animation keys across similar sprites",
			"Use frameRate wisely - higher isn't always better for performance",
		},
	},
}
