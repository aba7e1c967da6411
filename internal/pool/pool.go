// Package pool provides a generic reusable-object pool for transient actors
// such as effect carriers and coins.
//
// Unlike sync.Pool the pool owns its objects: it tracks which ones are handed
// out, never drops idle objects behind the caller's back, and runs explicit
// lifecycle hooks. It is not safe for concurrent use; callers run on the
// simulation tick.
package pool

// Hooks customizes the object lifecycle. Only New is required.
type Hooks[T comparable] struct {
	// New constructs a fresh object.
	New func() T
	// OnAcquire activates an object taken from the pool.
	OnAcquire func(T)
	// OnRelease deactivates an object returned to the pool.
	OnRelease func(T)
	// OnDestroy disposes of an object the pool no longer keeps.
	OnDestroy func(T)
}

// Pool hands out objects and takes them back.
// Objects are created on demand; the capacity hint only preallocates bookkeeping.
// When more than maxSize objects are idle, released objects are destroyed instead
// of being kept (maxSize <= 0 means unlimited).
type Pool[T comparable] struct {
	hooks   Hooks[T]
	free    []T
	idle    map[T]struct{}
	active  map[T]struct{}
	maxSize int
	created int
}

// New creates a pool. It panics if hooks.New is nil.
func New[T comparable](hooks Hooks[T], capacityHint, maxSize int) *Pool[T] {
	if hooks.New == nil {
		panic("pool: Hooks.New is required")
	}
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Pool[T]{
		hooks:   hooks,
		free:    make([]T, 0, capacityHint),
		idle:    make(map[T]struct{}, capacityHint),
		active:  make(map[T]struct{}, capacityHint),
		maxSize: maxSize,
	}
}

// Prewarm creates objects until n are idle.
func (p *Pool[T]) Prewarm(n int) {
	for len(p.free) < n {
		obj := p.hooks.New()
		p.created++
		p.free = append(p.free, obj)
		p.idle[obj] = struct{}{}
	}
}

// Acquire returns an idle object, or a new one when none is idle.
func (p *Pool[T]) Acquire() T {
	var obj T
	if n := len(p.free); n > 0 {
		obj = p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		delete(p.idle, obj)
	} else {
		obj = p.hooks.New()
		p.created++
	}
	p.active[obj] = struct{}{}
	if p.hooks.OnAcquire != nil {
		p.hooks.OnAcquire(obj)
	}
	return obj
}

// Release deactivates obj and returns it to the pool.
// Releasing an object that is not currently acquired from this pool is a no-op
// and returns false.
func (p *Pool[T]) Release(obj T) bool {
	if _, ok := p.active[obj]; !ok {
		return false
	}
	delete(p.active, obj)
	if p.hooks.OnRelease != nil {
		p.hooks.OnRelease(obj)
	}
	if p.maxSize > 0 && len(p.free) >= p.maxSize {
		p.destroy(obj)
		return true
	}
	p.free = append(p.free, obj)
	p.idle[obj] = struct{}{}
	return true
}

// IsActive reports whether obj is currently acquired.
func (p *Pool[T]) IsActive(obj T) bool {
	_, ok := p.active[obj]
	return ok
}

// Active calls fn for every acquired object. fn may release the object.
func (p *Pool[T]) Active(fn func(T)) {
	snapshot := make([]T, 0, len(p.active))
	for obj := range p.active {
		snapshot = append(snapshot, obj)
	}
	for _, obj := range snapshot {
		if p.IsActive(obj) {
			fn(obj)
		}
	}
}

// Clear releases every active object and destroys all objects.
func (p *Pool[T]) Clear() {
	for obj := range p.active {
		if p.hooks.OnRelease != nil {
			p.hooks.OnRelease(obj)
		}
		p.destroy(obj)
	}
	clear(p.active)
	for _, obj := range p.free {
		p.destroy(obj)
	}
	p.free = p.free[:0]
	clear(p.idle)
}

func (p *Pool[T]) destroy(obj T) {
	if p.hooks.OnDestroy != nil {
		p.hooks.OnDestroy(obj)
	}
}

// CountActive returns the number of acquired objects.
func (p *Pool[T]) CountActive() int { return len(p.active) }

// CountInactive returns the number of idle objects.
func (p *Pool[T]) CountInactive() int { return len(p.free) }

// CountAll returns the number of objects ever created by the pool.
func (p *Pool[T]) CountAll() int { return p.created }
