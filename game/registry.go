package game

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Registry is the single source of truth for live simulation objects.
// Entities routinely spawn or kill other entities from inside their own
// Update, so mutations arriving during an update pass are buffered and
// flushed after the pass completes. Iteration order is insertion order.
type Registry struct {
	logger *log.Logger

	entities []Entity
	byID     map[uuid.UUID]Entity

	updating      bool
	pendingAdd    []Entity
	pendingRemove []uuid.UUID

	// onEvict, when set, is invoked for every entity swept out of the
	// registry. The playing state uses it to route pooled entities back
	// to their pools.
	onEvict func(Entity)
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		logger:   logger.With("component", "registry"),
		entities: make([]Entity, 0, 256),
		byID:     make(map[uuid.UUID]Entity, 256),
	}
}

// SetEvictFunc registers a callback fired for each evicted entity.
func (r *Registry) SetEvictFunc(fn func(Entity)) { r.onEvict = fn }

// Add inserts an entity, deferring until after the pass if an update is
// in progress.
func (r *Registry) Add(e Entity) {
	if e == nil {
		return
	}
	if r.updating {
		r.pendingAdd = append(r.pendingAdd, e)
		return
	}
	r.insert(e)
}

// Remove destroys and erases the entity with the given id, deferring if an
// update pass is in progress. Removing an unknown id is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	if r.updating {
		r.pendingRemove = append(r.pendingRemove, id)
		return
	}
	r.erase(id)
}

func (r *Registry) insert(e Entity) {
	if _, ok := r.byID[e.ID()]; ok {
		r.logger.Warn("duplicate entity add ignored", "id", e.ID())
		return
	}
	r.byID[e.ID()] = e
	r.entities = append(r.entities, e)
}

func (r *Registry) erase(id uuid.UUID) {
	e, ok := r.byID[id]
	if !ok {
		return
	}
	e.Destroy()
	delete(r.byID, id)
	for i, cur := range r.entities {
		if cur.ID() == id {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			break
		}
	}
	if r.onEvict != nil {
		r.onEvict(e)
	}
}

// Update advances every active entity by dt, then flushes buffered
// additions and removals, then evicts everything left inactive. After
// Update returns, every entity still present is active.
func (r *Registry) Update(dt float64) {
	r.updating = true
	for _, e := range r.entities {
		if !e.IsActive() {
			continue
		}
		r.safeUpdate(e, dt)
	}
	r.updating = false

	adds := r.pendingAdd
	r.pendingAdd = nil
	for _, e := range adds {
		r.insert(e)
	}
	removes := r.pendingRemove
	r.pendingRemove = nil
	for _, id := range removes {
		r.erase(id)
	}

	r.sweep()
}

// safeUpdate isolates a panicking entity so one bad update cannot halt the
// pass over the rest.
func (r *Registry) safeUpdate(e Entity, dt float64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("entity update panicked, deactivating", "id", e.ID(), "panic", rec)
			e.Destroy()
		}
	}()
	e.Update(dt)
}

func (r *Registry) sweep() {
	kept := r.entities[:0]
	for _, e := range r.entities {
		if e.IsActive() {
			kept = append(kept, e)
			continue
		}
		delete(r.byID, e.ID())
		if r.onEvict != nil {
			r.onEvict(e)
		}
	}
	for i := len(kept); i < len(r.entities); i++ {
		r.entities[i] = nil
	}
	r.entities = kept
}

// Render draws every active entity. Never mutates the registry.
func (r *Registry) Render(dst *ebiten.Image) {
	for _, e := range r.entities {
		if !e.IsActive() {
			continue
		}
		r.safeRender(e, dst)
	}
}

func (r *Registry) safeRender(e Entity, dst *ebiten.Image) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("entity render panicked", "id", e.ID(), "panic", rec)
		}
	}()
	e.Render(dst)
}

// Get returns the entity with the given id, if present.
func (r *Registry) Get(id uuid.UUID) (Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// All returns the entities in insertion order, including any not yet swept.
func (r *Registry) All() []Entity {
	out := make([]Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// Active returns the currently active entities in insertion order.
func (r *Registry) Active() []Entity {
	return r.Find(func(Entity) bool { return true })
}

// ByKind returns the active collidables carrying the given tag, in
// insertion order.
func (r *Registry) ByKind(k CollisionKind) []Collidable {
	out := make([]Collidable, 0, len(r.entities))
	for _, e := range r.entities {
		if !e.IsActive() {
			continue
		}
		if c, ok := e.(Collidable); ok && c.Kind() == k {
			out = append(out, c)
		}
	}
	return out
}

// Find returns active entities matching the predicate, in insertion order.
func (r *Registry) Find(pred func(Entity) bool) []Entity {
	out := make([]Entity, 0, len(r.entities))
	for _, e := range r.entities {
		if e.IsActive() && pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entities currently held, active or not.
func (r *Registry) Len() int { return len(r.entities) }
