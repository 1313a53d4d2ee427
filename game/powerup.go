package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PowerUpType determines the effect applied when the player collects a
// power-up.
type PowerUpType int

const (
	PowerWeaponUpgrade PowerUpType = iota
	PowerHealth
	PowerShield
)

func (t PowerUpType) String() string {
	switch t {
	case PowerWeaponUpgrade:
		return "weapon"
	case PowerHealth:
		return "health"
	case PowerShield:
		return "shield"
	default:
		return "unknown"
	}
}

const (
	powerUpSize       = 24.0
	powerUpFallSpeed  = 100.0
	powerUpHealAmount = 30
)

// PowerUp drifts down the canvas and deactivates the moment it is applied
// or collides with the player, whichever comes first.
type PowerUp struct {
	entityBase
	motion

	Type    PowerUpType
	applied bool
	cfg     *Config
}

// NewPowerUp creates a drop of the given type at (x, y).
func NewPowerUp(t PowerUpType, x, y float64, cfg *Config) *PowerUp {
	p := &PowerUp{
		entityBase: newEntityBase(x, y, powerUpSize, powerUpSize),
		Type:       t,
		cfg:        cfg,
	}
	p.Speed = powerUpFallSpeed
	p.VY = powerUpFallSpeed
	return p
}

// Move integrates position from velocity.
func (p *PowerUp) Move(dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt
}

// Update drifts the power-up down and deactivates it off-canvas.
func (p *PowerUp) Update(dt float64) {
	if !p.active {
		return
	}
	p.Move(dt)
	p.syncBox()
	if p.Y > p.cfg.CanvasHeight {
		p.Deactivate()
	}
}

// Apply grants the effect to the player. Idempotent: a power-up applies at
// most once, then deactivates.
func (p *PowerUp) Apply(player *PlayerAircraft) {
	if p.applied {
		return
	}
	p.applied = true
	switch p.Type {
	case PowerWeaponUpgrade:
		player.UpgradeWeapon()
	case PowerHealth:
		player.Heal(powerUpHealAmount)
	case PowerShield:
		player.GrantShield()
	}
	p.Deactivate()
}

// Kind tags the power-up for collision filtering.
func (p *PowerUp) Kind() CollisionKind { return KindPowerUp }

// OnCollision applies the effect when touched by the player.
func (p *PowerUp) OnCollision(other Collidable) {
	if player, ok := other.(*PlayerAircraft); ok {
		p.Apply(player)
	}
}

// Render draws a colored capsule with a type marker.
func (p *PowerUp) Render(dst *ebiten.Image) {
	var clr color.RGBA
	switch p.Type {
	case PowerWeaponUpgrade:
		clr = color.RGBA{255, 200, 0, 255}
	case PowerHealth:
		clr = color.RGBA{0, 220, 80, 255}
	case PowerShield:
		clr = color.RGBA{80, 160, 255, 255}
	}
	cx := float32(p.X + p.W/2)
	cy := float32(p.Y + p.H/2)
	vector.DrawFilledCircle(dst, cx, cy, float32(p.W/2), clr, true)
	vector.DrawFilledCircle(dst, cx, cy, float32(p.W/4), color.RGBA{255, 255, 255, 220}, true)
}

// Destroy deactivates the power-up.
func (p *PowerUp) Destroy() { p.Deactivate() }
