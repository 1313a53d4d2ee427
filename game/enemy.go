package game

import (
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EnemyType selects an enemy archetype. The type fixes size, speed,
// health, score value, fire rate and movement pattern at construction.
type EnemyType int

const (
	EnemyBasic EnemyType = iota
	EnemyShooter
	EnemyZigzag
	EnemyBoss
)

func (t EnemyType) String() string {
	switch t {
	case EnemyBasic:
		return "basic"
	case EnemyShooter:
		return "shooter"
	case EnemyZigzag:
		return "zigzag"
	case EnemyBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// EnemyTypeConfig holds the per-type stats.
type EnemyTypeConfig struct {
	W, H         float64
	Speed        float64
	Health       int
	ScoreValue   int
	FireCooldown float64 // seconds between shots; 0 = never fires
	Color        color.RGBA
}

// enemyConfigFor returns the stat block for an enemy type.
func enemyConfigFor(t EnemyType) EnemyTypeConfig {
	switch t {
	case EnemyBasic:
		return EnemyTypeConfig{
			W: 32, H: 32,
			Speed:      120,
			Health:     20,
			ScoreValue: 10,
			Color:      color.RGBA{255, 120, 0, 255},
		}
	case EnemyShooter:
		return EnemyTypeConfig{
			W: 36, H: 36,
			Speed:        80,
			Health:       40,
			ScoreValue:   25,
			FireCooldown: 1.5,
			Color:        color.RGBA{255, 40, 40, 255},
		}
	case EnemyZigzag:
		return EnemyTypeConfig{
			W: 28, H: 28,
			Speed:      150,
			Health:     30,
			ScoreValue: 20,
			Color:      color.RGBA{200, 80, 255, 255},
		}
	case EnemyBoss:
		return EnemyTypeConfig{
			W: 96, H: 72,
			Speed:        60,
			Health:       500,
			ScoreValue:   500,
			FireCooldown: 0.8,
			Color:        color.RGBA{255, 0, 120, 255},
		}
	default:
		return enemyConfigFor(EnemyBasic)
	}
}

// entityWorld is the slice of the registry entities need to spawn others
// mid-update. Additions are deferred by the registry until the pass ends.
type entityWorld interface {
	Add(e Entity)
}

// EnemyAircraft is a pooled hostile entity.
type EnemyAircraft struct {
	entityBase
	motion

	Type       EnemyType
	Health     int
	MaxHealth  int
	ScoreValue int

	fireCooldown float64
	fireTimer    float64
	patternTime  float64
	destroyed    bool

	cfg     *Config
	bullets *BulletPool
	world   entityWorld
	target  *PlayerAircraft

	script       *ScriptRunner
	scriptBroken bool

	logger *log.Logger
	sprite *ebiten.Image
	clr    color.RGBA
}

// reset reinitializes a pooled enemy for reuse.
func (e *EnemyAircraft) reset(t EnemyType, x, y float64, target *PlayerAircraft) {
	tc := enemyConfigFor(t)
	e.id = uuid.New()
	e.X, e.Y = x, y
	e.W, e.H = tc.W, tc.H
	e.Type = t
	e.Health = tc.Health
	e.MaxHealth = tc.Health
	e.ScoreValue = tc.ScoreValue
	e.Speed = tc.Speed
	e.VX, e.VY = 0, tc.Speed
	e.fireCooldown = tc.FireCooldown
	e.fireTimer = 0
	e.patternTime = 0
	e.destroyed = false
	e.scriptBroken = false
	e.target = target
	e.clr = tc.Color
	e.syncBox()
}

// Move integrates position from velocity.
func (e *EnemyAircraft) Move(dt float64) {
	e.X += e.VX * dt
	e.Y += e.VY * dt
}

// Update applies the type's movement pattern, fires when due, and
// deactivates the enemy once it leaves the bottom of the canvas.
func (e *EnemyAircraft) Update(dt float64) {
	if !e.active {
		return
	}
	e.patternTime += dt
	e.fireTimer += dt

	switch e.Type {
	case EnemyBasic, EnemyShooter:
		e.VX = 0
		e.VY = e.Speed
	case EnemyZigzag:
		e.VX = math.Sin(e.patternTime*4) * e.Speed * 0.9
		e.VY = e.Speed
	case EnemyBoss:
		e.updateBossPattern()
	}

	e.Move(dt)
	if e.Type == EnemyBoss {
		// The boss stays on screen horizontally.
		e.X = math.Max(0, math.Min(e.X, e.cfg.CanvasWidth-e.W))
	}
	e.syncBox()

	if e.Y > e.cfg.CanvasHeight {
		e.Deactivate()
		return
	}

	if e.fireCooldown > 0 && e.fireTimer >= e.fireCooldown {
		e.fireTimer = 0
		e.fire()
	}
}

// updateBossPattern runs the scripted movement, falling back to a built-in
// sweep after the first script failure.
func (e *EnemyAircraft) updateBossPattern() {
	if e.script != nil && !e.scriptBroken {
		decision, err := e.script.Execute(bossPatternScript, e.patternContext())
		if err != nil {
			e.scriptBroken = true
			if e.logger != nil {
				e.logger.Warn("boss script failed, using fallback pattern", "err", err)
			}
		} else {
			e.VX = decision.VX
			e.VY = decision.VY
			if decision.Fire && e.fireCooldown > 0 && e.fireTimer >= e.fireCooldown {
				e.fireTimer = 0
				e.fire()
			}
			return
		}
	}
	// Fallback: descend to a hover line, then sweep.
	if e.Y < 60 {
		e.VX = 0
		e.VY = e.Speed
	} else {
		e.VX = math.Sin(e.patternTime) * e.Speed
		e.VY = 0
	}
}

func (e *EnemyAircraft) patternContext() PatternContext {
	ctx := PatternContext{
		X: e.X, Y: e.Y,
		Width: e.W, Height: e.H,
		Health: e.Health, MaxHealth: e.MaxHealth,
		Speed:        e.Speed,
		CanvasWidth:  e.cfg.CanvasWidth,
		CanvasHeight: e.cfg.CanvasHeight,
		Time:         e.patternTime,
	}
	if e.target != nil && e.target.IsActive() {
		ctx.PlayerX = e.target.X + e.target.W/2
		ctx.PlayerY = e.target.Y
		ctx.PlayerActive = true
	}
	return ctx
}

// fire spawns an enemy bullet below the aircraft, aimed at the player when
// one is in play, straight down otherwise.
func (e *EnemyAircraft) fire() {
	if e.bullets == nil || e.world == nil {
		return
	}
	bc := bulletConfigFor(OwnerEnemy)
	bx := e.X + e.W/2 - bc.W/2
	by := e.Y + e.H

	vx, vy := 0.0, bc.Speed
	if e.target != nil && e.target.IsActive() {
		dx := (e.target.X + e.target.W/2) - (bx + bc.W/2)
		dy := (e.target.Y + e.target.H/2) - by
		if dist := math.Hypot(dx, dy); dist > 0 && dy > 0 {
			vx = dx / dist * bc.Speed
			vy = dy / dist * bc.Speed
		}
	}
	e.world.Add(e.bullets.Acquire(OwnerEnemy, bx, by, vx, vy))
}

// Damage lowers health; reaching zero deactivates the enemy exactly once.
func (e *EnemyAircraft) Damage(n int) {
	if !e.active || e.destroyed || n <= 0 {
		return
	}
	e.Health -= n
	if e.Health <= 0 {
		e.Health = 0
		e.destroyed = true
		e.Deactivate()
	}
}

// Destroyed reports whether the enemy was killed (as opposed to leaving
// the canvas).
func (e *EnemyAircraft) Destroyed() bool { return e.destroyed }

// Kind tags the enemy for collision filtering.
func (e *EnemyAircraft) Kind() CollisionKind { return KindEnemy }

// OnCollision takes damage from player bullets and from ramming the player.
func (e *EnemyAircraft) OnCollision(other Collidable) {
	switch o := other.(type) {
	case *Bullet:
		if o.Owner == OwnerPlayer {
			e.Damage(o.Damage)
		}
	case *PlayerAircraft:
		e.Damage(e.cfg.EnemyContactDamage)
	}
}

// Render draws the sprite when available, else a procedural shape.
func (e *EnemyAircraft) Render(dst *ebiten.Image) {
	if e.sprite != nil {
		op := &ebiten.DrawImageOptions{}
		bounds := e.sprite.Bounds()
		op.GeoM.Scale(e.W/float64(bounds.Dx()), e.H/float64(bounds.Dy()))
		op.GeoM.Translate(e.X, e.Y)
		dst.DrawImage(e.sprite, op)
	} else {
		vector.DrawFilledRect(dst, float32(e.X+e.W*0.2), float32(e.Y), float32(e.W*0.6), float32(e.H*0.7), e.clr, true)
		vector.DrawFilledCircle(dst, float32(e.X+e.W/2), float32(e.Y+e.H*0.7), float32(e.W*0.3), e.clr, true)
	}

	if e.Health < e.MaxHealth {
		barW := float32(e.W)
		healthW := barW * float32(e.Health) / float32(e.MaxHealth)
		barY := float32(e.Y) - 6
		vector.DrawFilledRect(dst, float32(e.X), barY, barW, 3, color.RGBA{100, 0, 0, 255}, true)
		vector.DrawFilledRect(dst, float32(e.X), barY, healthW, 3, color.RGBA{0, 255, 0, 255}, true)
	}
}

// Destroy deactivates the enemy.
func (e *EnemyAircraft) Destroy() { e.Deactivate() }

// EnemyPool partitions enemy reuse by type. The boss partition keeps a
// much smaller cap since only a handful ever exist.
type EnemyPool struct {
	cfg    *Config
	logger *log.Logger
	deps   EnemyDeps
	pools  map[EnemyType]*Pool[*EnemyAircraft]
}

// EnemyDeps carries the collaborators wired into every pooled enemy.
type EnemyDeps struct {
	Bullets *BulletPool
	World   entityWorld
	Script  *ScriptRunner
	Sprites *SpriteSet
}

// NewEnemyPool creates per-type partitions sharing one dependency set.
func NewEnemyPool(cfg *Config, deps EnemyDeps, logger *log.Logger) *EnemyPool {
	logger = logger.With("component", "enemy-pool")
	factory := func() *EnemyAircraft {
		e := &EnemyAircraft{
			cfg:     cfg,
			bullets: deps.Bullets,
			world:   deps.World,
			script:  deps.Script,
			logger:  logger,
		}
		e.entityBase = newEntityBase(0, 0, 0, 0)
		e.active = false
		return e
	}
	pools := map[EnemyType]*Pool[*EnemyAircraft]{
		EnemyBasic:   NewPool(cfg.EnemyPoolSize, factory),
		EnemyShooter: NewPool(cfg.EnemyPoolSize, factory),
		EnemyZigzag:  NewPool(cfg.EnemyPoolSize, factory),
		EnemyBoss:    NewPool(cfg.BossPoolSize, factory),
	}
	ep := &EnemyPool{cfg: cfg, logger: logger, pools: pools}
	ep.deps = deps
	return ep
}

// Acquire returns an active enemy of the given type at (x, y).
func (ep *EnemyPool) Acquire(t EnemyType, x, y float64, target *PlayerAircraft) *EnemyAircraft {
	pool, ok := ep.pools[t]
	if !ok {
		pool = ep.pools[EnemyBasic]
		t = EnemyBasic
	}
	e := pool.Acquire()
	e.reset(t, x, y, target)
	if ep.deps.Sprites != nil {
		e.sprite = ep.deps.Sprites.ForEnemy(t)
	}
	return e
}

// Release hands an active enemy back to its type partition. Releasing an
// object of an unknown type is a logged no-op.
func (ep *EnemyPool) Release(e *EnemyAircraft) {
	pool, ok := ep.pools[e.Type]
	if !ok {
		ep.logger.Warn("release of unknown enemy type ignored", "type", e.Type)
		return
	}
	pool.Release(e)
}

// retain takes back an enemy the registry already deactivated.
func (ep *EnemyPool) retain(e *EnemyAircraft) {
	if pool, ok := ep.pools[e.Type]; ok {
		pool.retain(e)
	}
}

// Prewarm eagerly fills the common partitions.
func (ep *EnemyPool) Prewarm(n int) {
	ep.pools[EnemyBasic].Prewarm(n)
	ep.pools[EnemyShooter].Prewarm(n / 2)
	ep.pools[EnemyZigzag].Prewarm(n / 2)
	ep.pools[EnemyBoss].Prewarm(1)
}

// Stats returns the counters for one type partition.
func (ep *EnemyPool) Stats(t EnemyType) PoolStats {
	if pool, ok := ep.pools[t]; ok {
		return pool.Stats()
	}
	return PoolStats{}
}
