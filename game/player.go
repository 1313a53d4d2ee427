package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	minWeaponLevel = 1
	maxWeaponLevel = 3
)

// PlayerAircraft is the player-controlled entity. Position is clamped to
// the canvas, health never exceeds MaxHealth, and the weapon level stays
// within [1, 3] except via ResetWeapon.
type PlayerAircraft struct {
	entityBase
	motion

	Health      int
	MaxHealth   int
	WeaponLevel int

	Invincible      bool
	invincibleLeft  float64 // seconds
	lastFireMs      float64
	hasFired        bool
	contactCooldown float64 // seconds; throttles repeat contact damage

	cfg     *Config
	bullets *BulletPool
	sprite  *ebiten.Image
}

// NewPlayerAircraft creates a player at the given position.
func NewPlayerAircraft(x, y float64, cfg *Config, bullets *BulletPool) *PlayerAircraft {
	p := &PlayerAircraft{
		entityBase:  newEntityBase(x, y, cfg.PlayerWidth, cfg.PlayerHeight),
		Health:      cfg.PlayerMaxHealth,
		MaxHealth:   cfg.PlayerMaxHealth,
		WeaponLevel: minWeaponLevel,
		cfg:         cfg,
		bullets:     bullets,
	}
	p.Speed = cfg.PlayerSpeed
	return p
}

// SetSprite assigns the rasterized sprite; nil keeps the procedural shape.
func (p *PlayerAircraft) SetSprite(img *ebiten.Image) { p.sprite = img }

// SetVelocityFromInput derives velocity from the current input snapshot.
func (p *PlayerAircraft) SetVelocityFromInput(in InputState) {
	var dx, dy float64
	if in.IsPressed("ArrowLeft") || in.IsPressed("A") {
		dx -= 1
	}
	if in.IsPressed("ArrowRight") || in.IsPressed("D") {
		dx += 1
	}
	if in.IsPressed("ArrowUp") || in.IsPressed("W") {
		dy -= 1
	}
	if in.IsPressed("ArrowDown") || in.IsPressed("S") {
		dy += 1
	}
	if dx != 0 && dy != 0 {
		inv := 1 / math.Sqrt2
		dx *= inv
		dy *= inv
	}
	p.VX = dx * p.Speed
	p.VY = dy * p.Speed
}

// Move integrates position and clamps it to the canvas bounds.
func (p *PlayerAircraft) Move(dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.X = math.Max(0, math.Min(p.X, p.cfg.CanvasWidth-p.W))
	p.Y = math.Max(0, math.Min(p.Y, p.cfg.CanvasHeight-p.H))
}

// Update ticks timers and advances position.
func (p *PlayerAircraft) Update(dt float64) {
	if !p.active {
		return
	}
	if p.invincibleLeft > 0 {
		p.invincibleLeft -= dt
		if p.invincibleLeft <= 0 {
			p.invincibleLeft = 0
			p.Invincible = false
		}
	}
	if p.contactCooldown > 0 {
		p.contactCooldown -= dt
	}
	p.Move(dt)
	p.syncBox()
}

// Fire returns the bullets produced by a fire attempt at nowMs, or nil when
// still inside the cooldown window. The number of bullets equals the weapon
// level: one straight shot, then symmetric offsets, then an angled spread.
func (p *PlayerAircraft) Fire(nowMs float64) []*Bullet {
	if p.hasFired && nowMs-p.lastFireMs < p.cfg.FireRateMs {
		return nil
	}
	p.lastFireMs = nowMs
	p.hasFired = true

	cfg := bulletConfigFor(OwnerPlayer)
	cx := p.X + p.W/2 - cfg.W/2
	top := p.Y - cfg.H

	out := make([]*Bullet, 0, p.WeaponLevel)
	switch p.WeaponLevel {
	case 1:
		out = append(out, p.bullets.Acquire(OwnerPlayer, cx, top, 0, -cfg.Speed))
	case 2:
		out = append(out,
			p.bullets.Acquire(OwnerPlayer, cx-8, top, 0, -cfg.Speed),
			p.bullets.Acquire(OwnerPlayer, cx+8, top, 0, -cfg.Speed))
	default:
		out = append(out,
			p.bullets.Acquire(OwnerPlayer, cx, top, 0, -cfg.Speed),
			p.bullets.Acquire(OwnerPlayer, cx-10, top, -cfg.Speed*0.25, -cfg.Speed),
			p.bullets.Acquire(OwnerPlayer, cx+10, top, cfg.Speed*0.25, -cfg.Speed))
	}
	return out
}

// Damage applies damage unless invincible. Non-fatal damage grants the
// configured invincibility window; fatal damage deactivates the player.
func (p *PlayerAircraft) Damage(n int) {
	if !p.active || p.Invincible || n <= 0 {
		return
	}
	p.Health -= n
	if p.Health <= 0 {
		p.Health = 0
		p.Deactivate()
		return
	}
	p.Invincible = true
	p.invincibleLeft = p.cfg.InvincibilityMs / 1000
}

// Heal restores health up to the maximum.
func (p *PlayerAircraft) Heal(n int) {
	if n <= 0 {
		return
	}
	p.Health += n
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// UpgradeWeapon raises the weapon level, capped at 3.
func (p *PlayerAircraft) UpgradeWeapon() {
	if p.WeaponLevel < maxWeaponLevel {
		p.WeaponLevel++
	}
}

// ResetWeapon drops back to the base weapon.
func (p *PlayerAircraft) ResetWeapon() { p.WeaponLevel = minWeaponLevel }

// GrantShield makes the player invincible for the configured shield window.
func (p *PlayerAircraft) GrantShield() {
	p.Invincible = true
	if left := p.cfg.ShieldDurationMs / 1000; left > p.invincibleLeft {
		p.invincibleLeft = left
	}
}

// Kind tags the player for collision filtering.
func (p *PlayerAircraft) Kind() CollisionKind { return KindPlayer }

// OnCollision applies incoming damage from enemy fire and ramming.
func (p *PlayerAircraft) OnCollision(other Collidable) {
	switch o := other.(type) {
	case *Bullet:
		if o.Owner == OwnerEnemy {
			p.Damage(o.Damage)
		}
	case *EnemyAircraft:
		if p.contactCooldown <= 0 {
			p.Damage(p.cfg.EnemyContactDamage)
			p.contactCooldown = 0.5
		}
	}
}

// Render draws the sprite when available, else a procedural triangle.
func (p *PlayerAircraft) Render(dst *ebiten.Image) {
	// Blink while invincible.
	if p.Invincible && int(p.invincibleLeft*10)%2 == 0 {
		return
	}
	if p.sprite != nil {
		op := &ebiten.DrawImageOptions{}
		bounds := p.sprite.Bounds()
		op.GeoM.Scale(p.W/float64(bounds.Dx()), p.H/float64(bounds.Dy()))
		op.GeoM.Translate(p.X, p.Y)
		dst.DrawImage(p.sprite, op)
		return
	}
	// Procedural fallback: fuselage, nose and wing strokes.
	clr := color.RGBA{0, 255, 128, 255}
	vector.DrawFilledRect(dst, float32(p.X+p.W*0.35), float32(p.Y+p.H*0.2), float32(p.W*0.3), float32(p.H*0.8), clr, true)
	vector.DrawFilledCircle(dst, float32(p.X+p.W/2), float32(p.Y+p.H*0.2), float32(p.W*0.18), clr, true)
	vector.StrokeLine(dst, float32(p.X), float32(p.Y+p.H), float32(p.X+p.W/2), float32(p.Y+p.H*0.4), 2, clr, true)
	vector.StrokeLine(dst, float32(p.X+p.W), float32(p.Y+p.H), float32(p.X+p.W/2), float32(p.Y+p.H*0.4), 2, clr, true)
}

// Destroy deactivates the player.
func (p *PlayerAircraft) Destroy() { p.Deactivate() }
