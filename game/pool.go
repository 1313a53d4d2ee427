package game

// PoolStats tracks pool bookkeeping counters.
type PoolStats struct {
	Created  int // objects constructed by the factory
	Acquired int // total Acquire calls
	Released int // objects handed back
	Reused   int // Acquire calls served from the free list
}

// ReuseRate returns the fraction of acquisitions served without allocating.
func (s PoolStats) ReuseRate() float64 {
	if s.Acquired == 0 {
		return 0
	}
	return float64(s.Reused) / float64(s.Acquired)
}

// Pool reuses entity instances to avoid allocation churn for high-turnover
// object classes. maxSize is a soft cap on retained memory, not a limit on
// live objects: when the free list is empty a new instance is constructed.
// A pool never blocks and never errors.
type Pool[T Poolable] struct {
	factory func() T
	free    []T
	maxSize int
	stats   PoolStats
}

// NewPool creates a pool with the given retention cap and factory.
// The factory must return an inactive instance.
func NewPool[T Poolable](maxSize int, factory func() T) *Pool[T] {
	return &Pool[T]{
		factory: factory,
		free:    make([]T, 0, maxSize),
		maxSize: maxSize,
	}
}

// Acquire returns a pooled instance if one is available, otherwise a
// freshly constructed one. The returned object is marked active and is
// never an object that was already active.
func (p *Pool[T]) Acquire() T {
	p.stats.Acquired++
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free = p.free[:n-1]
		p.stats.Reused++
		obj.setPooled(false)
		obj.setActive(true)
		return obj
	}
	p.stats.Created++
	obj := p.factory()
	obj.setPooled(false)
	obj.setActive(true)
	return obj
}

// Release marks the object inactive and retains it for reuse if the pool
// is below its cap. Releasing an already-inactive object is a no-op, so a
// double release cannot put the same instance on the free list twice.
func (p *Pool[T]) Release(obj T) {
	if !obj.IsActive() {
		return
	}
	obj.setActive(false)
	p.stats.Released++
	if len(p.free) < p.maxSize {
		obj.setPooled(true)
		p.free = append(p.free, obj)
	}
}

// retain takes back an object the registry already deactivated. It is the
// eviction-path counterpart of Release; the pooled flag guards against the
// same instance landing on the free list twice.
func (p *Pool[T]) retain(obj T) {
	if obj.IsActive() || obj.isPooled() {
		return
	}
	p.stats.Released++
	if len(p.free) < p.maxSize {
		obj.setPooled(true)
		p.free = append(p.free, obj)
	}
}

// Prewarm constructs n inactive instances up front to avoid first-use
// allocation spikes. Retention is still bounded by the pool cap.
func (p *Pool[T]) Prewarm(n int) {
	for i := 0; i < n && len(p.free) < p.maxSize; i++ {
		obj := p.factory()
		obj.setActive(false)
		obj.setPooled(true)
		p.free = append(p.free, obj)
		p.stats.Created++
	}
}

// Available returns the current free-list length.
func (p *Pool[T]) Available() int { return len(p.free) }

// Stats returns a copy of the bookkeeping counters.
func (p *Pool[T]) Stats() PoolStats { return p.stats }
