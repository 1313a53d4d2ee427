package game

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BulletOwner identifies who fired a bullet. The owner fixes the bullet's
// size, default speed, damage and collision kind at reset time.
type BulletOwner int

const (
	OwnerPlayer BulletOwner = iota
	OwnerEnemy
)

// bulletOwnerConfig holds the per-owner bullet defaults.
type bulletOwnerConfig struct {
	W, H   float64
	Speed  float64
	Damage int
	Color  color.RGBA
}

func bulletConfigFor(owner BulletOwner) bulletOwnerConfig {
	switch owner {
	case OwnerPlayer:
		return bulletOwnerConfig{
			W:      4,
			H:      12,
			Speed:  500,
			Damage: 10,
			Color:  color.RGBA{255, 255, 0, 255},
		}
	case OwnerEnemy:
		return bulletOwnerConfig{
			W:      6,
			H:      10,
			Speed:  250,
			Damage: 10,
			Color:  color.RGBA{255, 80, 80, 255},
		}
	default:
		return bulletConfigFor(OwnerPlayer)
	}
}

// Bullet is a pooled projectile. Velocity is set by the firer.
type Bullet struct {
	entityBase
	motion

	Owner  BulletOwner
	Damage int

	clr              color.RGBA
	canvasW, canvasH float64
}

// reset reinitializes a pooled bullet for reuse.
func (b *Bullet) reset(owner BulletOwner, x, y, vx, vy, canvasW, canvasH float64) {
	cfg := bulletConfigFor(owner)
	b.id = uuid.New() // each logical bullet gets its own identity
	b.X, b.Y = x, y
	b.W, b.H = cfg.W, cfg.H
	b.Owner = owner
	b.Damage = cfg.Damage
	b.Speed = cfg.Speed
	b.VX, b.VY = vx, vy
	b.clr = cfg.Color
	b.canvasW, b.canvasH = canvasW, canvasH
	b.syncBox()
}

// Move integrates position from velocity.
func (b *Bullet) Move(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Update advances the bullet and deactivates it once it is fully outside
// the canvas on any side.
func (b *Bullet) Update(dt float64) {
	if !b.active {
		return
	}
	b.Move(dt)
	b.syncBox()
	if b.X+b.W < 0 || b.X > b.canvasW || b.Y+b.H < 0 || b.Y > b.canvasH {
		b.Deactivate()
	}
}

// Render draws the bullet as a filled rectangle.
func (b *Bullet) Render(dst *ebiten.Image) {
	vector.DrawFilledRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), b.clr, true)
}

// Destroy deactivates the bullet.
func (b *Bullet) Destroy() { b.Deactivate() }

// Kind returns the collision tag matching the bullet's owner.
func (b *Bullet) Kind() CollisionKind {
	if b.Owner == OwnerPlayer {
		return KindPlayerBullet
	}
	return KindEnemyBullet
}

// OnCollision deactivates the bullet on any impact.
func (b *Bullet) OnCollision(other Collidable) {
	b.Deactivate()
}

// BulletPool partitions bullet reuse by owner, with separate retention caps
// for player and enemy fire.
type BulletPool struct {
	cfg    *Config
	player *Pool[*Bullet]
	enemy  *Pool[*Bullet]
}

// NewBulletPool creates the two owner partitions.
func NewBulletPool(cfg *Config) *BulletPool {
	factory := func() *Bullet {
		b := &Bullet{}
		b.entityBase = newEntityBase(0, 0, 0, 0)
		b.active = false
		return b
	}
	return &BulletPool{
		cfg:    cfg,
		player: NewPool(cfg.PlayerBulletPoolSize, factory),
		enemy:  NewPool(cfg.EnemyBulletPoolSize, factory),
	}
}

// Acquire returns an active bullet configured for the owner with the given
// position and velocity.
func (bp *BulletPool) Acquire(owner BulletOwner, x, y, vx, vy float64) *Bullet {
	var b *Bullet
	if owner == OwnerPlayer {
		b = bp.player.Acquire()
	} else {
		b = bp.enemy.Acquire()
	}
	b.reset(owner, x, y, vx, vy, bp.cfg.CanvasWidth, bp.cfg.CanvasHeight)
	return b
}

// Release hands an active bullet back to its owner partition.
func (bp *BulletPool) Release(b *Bullet) {
	if b.Owner == OwnerPlayer {
		bp.player.Release(b)
	} else {
		bp.enemy.Release(b)
	}
}

// retain takes back a bullet the registry already deactivated.
func (bp *BulletPool) retain(b *Bullet) {
	if b.Owner == OwnerPlayer {
		bp.player.retain(b)
	} else {
		bp.enemy.retain(b)
	}
}

// Prewarm eagerly fills both partitions.
func (bp *BulletPool) Prewarm(n int) {
	bp.player.Prewarm(n)
	bp.enemy.Prewarm(n)
}

// Stats returns (player, enemy) partition counters.
func (bp *BulletPool) Stats() (PoolStats, PoolStats) {
	return bp.player.Stats(), bp.enemy.Stats()
}
