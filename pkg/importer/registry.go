package importer

import "sync"

// Registry maps derived tokens to the nodes of one category. It lives for
// one session and never evicts.
//
// Anonymous entries are kept in a list beside the keyed entries so that
// every "Anon." mention stays a distinct node while still belonging to the
// category.
type Registry[T any] struct {
	category string

	mu        sync.Mutex
	entries   map[string]T
	order     []string
	anonymous []T

	onCreate func(category string, entry T)
}

// NewRegistry returns an empty registry for category.
func NewRegistry[T any](category string) *Registry[T] {
	return &Registry[T]{
		category: category,
		entries:  make(map[string]T),
	}
}

// Category returns the registry's category name.
func (r *Registry[T]) Category() string {
	return r.category
}

// ResolveOrCreate returns the entry for key, calling build to construct it
// when the key is new. build runs at most once per key; the second result
// reports whether it ran.
func (r *Registry[T]) ResolveOrCreate(key string, build func() T) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[key]; ok {
		return existing, false
	}

	entry := build()
	r.entries[key] = entry
	r.order = append(r.order, key)
	r.created(entry)
	return entry, true
}

// Get returns the keyed entry for key. Anonymous entries are never found.
func (r *Registry[T]) Get(key string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	return entry, ok
}

// AppendAnonymous builds a new anonymous entry. build receives the 1-based
// position of the entry in the anonymous list.
func (r *Registry[T]) AppendAnonymous(build func(n int) T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := build(len(r.anonymous) + 1)
	r.anonymous = append(r.anonymous, entry)
	r.created(entry)
	return entry
}

// Anonymous returns the anonymous entries in creation order.
func (r *Registry[T]) Anonymous() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]T(nil), r.anonymous...)
}

// Values returns keyed entries in creation order followed by the
// anonymous ones.
func (r *Registry[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]T, 0, len(r.order)+len(r.anonymous))
	for _, key := range r.order {
		values = append(values, r.entries[key])
	}
	return append(values, r.anonymous...)
}

// Len counts keyed and anonymous entries.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries) + len(r.anonymous)
}

func (r *Registry[T]) created(entry T) {
	if r.onCreate != nil {
		r.onCreate(r.category, entry)
	}
}
