package game

import (
	"github.com/charmbracelet/log"
)

// CollisionEventKind classifies a detected overlap by participant pair.
type CollisionEventKind int

const (
	EventBulletEnemy CollisionEventKind = iota
	EventBulletPlayer
	EventPlayerEnemy
	EventPlayerPowerUp
)

func (k CollisionEventKind) String() string {
	switch k {
	case EventBulletEnemy:
		return "bullet-enemy"
	case EventBulletPlayer:
		return "bullet-player"
	case EventPlayerEnemy:
		return "player-enemy"
	case EventPlayerPowerUp:
		return "player-powerup"
	default:
		return "unknown"
	}
}

// CollisionEvent records one overlap between two collidables.
type CollisionEvent struct {
	Kind CollisionEventKind
	A, B Collidable
}

// CollisionListener observes processed events of one kind.
type CollisionListener func(ev CollisionEvent)

// CheckCollision is the pure AABB test used for every pair. Symmetric, and
// strict: edge-touching rectangles do not collide.
func CheckCollision(a, b Rect) bool { return a.Intersects(b) }

// CollisionEngine detects and dispatches gameplay overlaps once per frame.
// Listener callbacks are isolated so a panicking listener cannot abort the
// processing of subsequent events.
type CollisionEngine struct {
	logger    *log.Logger
	listeners map[CollisionEventKind]map[int]CollisionListener
	nextID    int
}

// NewCollisionEngine creates an engine with no listeners.
func NewCollisionEngine(logger *log.Logger) *CollisionEngine {
	return &CollisionEngine{
		logger:    logger.With("component", "collision"),
		listeners: make(map[CollisionEventKind]map[int]CollisionListener),
	}
}

// AddListener registers a listener for one event kind and returns a handle
// usable with RemoveListener.
func (ce *CollisionEngine) AddListener(kind CollisionEventKind, fn CollisionListener) int {
	if ce.listeners[kind] == nil {
		ce.listeners[kind] = make(map[int]CollisionListener)
	}
	ce.nextID++
	ce.listeners[kind][ce.nextID] = fn
	return ce.nextID
}

// RemoveListener drops a previously registered listener. Unknown handles
// are ignored.
func (ce *CollisionEngine) RemoveListener(kind CollisionEventKind, id int) {
	delete(ce.listeners[kind], id)
}

// ClearListeners resets all registrations.
func (ce *CollisionEngine) ClearListeners() {
	ce.listeners = make(map[CollisionEventKind]map[int]CollisionListener)
}

// CheckAll runs the four pair-type sweeps and returns all events in a fixed
// order: bullet-enemy, bullet-player, player-enemy, player-powerup.
// Inactive participants are filtered on both sides, and bullets are
// filtered by owner so enemy fire is never tested against enemies nor
// player fire against the player.
func (ce *CollisionEngine) CheckAll(player *PlayerAircraft, enemies []*EnemyAircraft, bullets []*Bullet, powerups []*PowerUp) []CollisionEvent {
	events := make([]CollisionEvent, 0, 16)

	for _, b := range bullets {
		if !b.IsActive() || b.Owner != OwnerPlayer {
			continue
		}
		for _, e := range enemies {
			if !e.IsActive() {
				continue
			}
			if CheckCollision(b.CollisionBox(), e.CollisionBox()) {
				events = append(events, CollisionEvent{Kind: EventBulletEnemy, A: b, B: e})
			}
		}
	}

	if player != nil && player.IsActive() {
		for _, b := range bullets {
			if !b.IsActive() || b.Owner != OwnerEnemy {
				continue
			}
			if CheckCollision(b.CollisionBox(), player.CollisionBox()) {
				events = append(events, CollisionEvent{Kind: EventBulletPlayer, A: b, B: player})
			}
		}

		for _, e := range enemies {
			if !e.IsActive() {
				continue
			}
			if CheckCollision(player.CollisionBox(), e.CollisionBox()) {
				events = append(events, CollisionEvent{Kind: EventPlayerEnemy, A: player, B: e})
			}
		}

		for _, pu := range powerups {
			if !pu.IsActive() {
				continue
			}
			if CheckCollision(player.CollisionBox(), pu.CollisionBox()) {
				events = append(events, CollisionEvent{Kind: EventPlayerPowerUp, A: player, B: pu})
			}
		}
	}

	return events
}

// Process dispatches each event to both participants and then to the
// registered listeners for its kind.
func (ce *CollisionEngine) Process(events []CollisionEvent) {
	for _, ev := range events {
		ce.safeOnCollision(ev.A, ev.B)
		ce.safeOnCollision(ev.B, ev.A)
		for _, fn := range ce.listeners[ev.Kind] {
			ce.safeListener(fn, ev)
		}
	}
}

func (ce *CollisionEngine) safeOnCollision(target, other Collidable) {
	defer func() {
		if rec := recover(); rec != nil {
			ce.logger.Error("OnCollision panicked", "panic", rec)
		}
	}()
	target.OnCollision(other)
}

func (ce *CollisionEngine) safeListener(fn CollisionListener, ev CollisionEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			ce.logger.Error("collision listener panicked", "kind", ev.Kind, "panic", rec)
		}
	}()
	fn(ev)
}
