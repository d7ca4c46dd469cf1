package binding

import "sync"

// Handle is a non-owning reference to an entry in a HandleRegistry.
// Callbacks hand out and hold handles instead of pointers to their
// owner, so tearing the owner down invalidates every outstanding
// callback in one place.
type Handle uint64

// HandleRegistry stores values behind opaque handles. The zero Handle
// is never issued. Safe for concurrent use.
type HandleRegistry[T any] struct {
	mu      sync.Mutex
	next    Handle
	entries map[Handle]T
}

// NewHandleRegistry returns an empty registry
func NewHandleRegistry[T any]() *HandleRegistry[T] {
	return &HandleRegistry[T]{entries: make(map[Handle]T)}
}

// Register stores value and returns its handle
func (r *HandleRegistry[T]) Register(value T) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.entries[r.next] = value
	return r.next
}

// Get returns the value behind h, if h is still valid
func (r *HandleRegistry[T]) Get(h Handle) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.entries[h]
	return value, ok
}

// Invalidate removes h from the registry and returns its value, if h
// was still valid
func (r *HandleRegistry[T]) Invalidate(h Handle) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.entries[h]
	if ok {
		delete(r.entries, h)
	}
	return value, ok
}

// Each calls fn for every live entry
func (r *HandleRegistry[T]) Each(fn func(Handle, T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for h, value := range r.entries {
		fn(h, value)
	}
}

// Clear invalidates every handle and returns the removed values
func (r *HandleRegistry[T]) Clear() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	values := make([]T, 0, len(r.entries))
	for _, value := range r.entries {
		values = append(values, value)
	}
	r.entries = make(map[Handle]T)
	return values
}

// Len returns the number of live handles
func (r *HandleRegistry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
