package game

import (
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Entity is the minimal contract every simulation object satisfies.
// An entity that has been deactivated is never updated or rendered again
// and is evicted from the registry by the next update pass.
type Entity interface {
	ID() uuid.UUID
	IsActive() bool
	Update(dt float64)
	Render(dst *ebiten.Image)
	Destroy()
}

// Movable is the capability of entities that integrate velocity.
type Movable interface {
	Move(dt float64)
}

// CollisionKind tags an entity for pair-group collision filtering.
type CollisionKind int

const (
	KindPlayer CollisionKind = iota
	KindEnemy
	KindPlayerBullet
	KindEnemyBullet
	KindPowerUp
)

// Collidable is the capability of entities that participate in AABB
// collision checks. OnCollision applies the type-specific side effect
// (damage, pickup, deactivation).
type Collidable interface {
	Entity
	CollisionBox() Rect
	Kind() CollisionKind
	OnCollision(other Collidable)
}

// entityBase carries identity, position, size and liveness shared by all
// entity types.
type entityBase struct {
	id     uuid.UUID
	X, Y   float64
	W, H   float64
	active bool
	pooled bool
	box    Rect
}

func newEntityBase(x, y, w, h float64) entityBase {
	b := entityBase{id: uuid.New(), X: x, Y: y, W: w, H: h, active: true}
	b.syncBox()
	return b
}

func (b *entityBase) ID() uuid.UUID { return b.id }

func (b *entityBase) IsActive() bool { return b.active }

func (b *entityBase) setActive(active bool) { b.active = active }

// Deactivate marks the entity for eviction on the next registry pass.
func (b *entityBase) Deactivate() { b.active = false }

// syncBox recomputes the collision box from the current position.
// Called once per update tick by the owning entity.
func (b *entityBase) syncBox() {
	b.box = Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

func (b *entityBase) CollisionBox() Rect { return b.box }

// motion is the movable capability: velocity plus a scalar base speed.
type motion struct {
	VX, VY float64
	Speed  float64
}

func (b *entityBase) isPooled() bool        { return b.pooled }
func (b *entityBase) setPooled(pooled bool) { b.pooled = pooled }

// Poolable is satisfied by entities that cycle through an object pool.
type Poolable interface {
	IsActive() bool
	setActive(active bool)
	isPooled() bool
	setPooled(pooled bool)
}
