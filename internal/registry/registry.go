// internal/registry/registry.go
package registry

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName = errors.New("name already registered")
	ErrNotFound      = errors.New("name not registered")
	ErrLimitExceeded = errors.New("registry limit exceeded")
)

// Namespace tracks which names are taken, and by what kind of entity.
// Several registries may share one namespace so that their names never collide.
type Namespace struct {
	kinds map[string]string
}

func NewNamespace() *Namespace {
	return &Namespace{kinds: make(map[string]string)}
}

// Kind reports the kind of entity registered under name, if any.
func (ns *Namespace) Kind(name string) (string, bool) {
	k, ok := ns.kinds[name]
	return k, ok
}

// Registry maps unique names to entities and remembers insertion order.
// The index handed out by Register is the number of prior insertions.
type Registry[T any] struct {
	kind   string
	ns     *Namespace
	limit  int
	list   []T
	byName map[string]T
}

// New builds a registry for entities of the given kind. A nil namespace gives the
// registry a private one.
func New[T any](kind string, ns *Namespace) *Registry[T] {
	if ns == nil {
		ns = NewNamespace()
	}
	return &Registry[T]{
		kind:   kind,
		ns:     ns,
		byName: make(map[string]T),
	}
}

// WithLimit caps the number of entities the registry accepts. Zero means unlimited.
func (r *Registry[T]) WithLimit(limit int) *Registry[T] {
	r.limit = limit
	return r
}

// Register stores v under name and returns its index.
func (r *Registry[T]) Register(name string, v T) (int, error) {
	if kind, taken := r.ns.Kind(name); taken {
		return -1, fmt.Errorf("%w: %s already exists as a %s", ErrDuplicateName, name, kind)
	}
	if r.limit > 0 && len(r.list) >= r.limit {
		return -1, fmt.Errorf("%w: too many %ss (%d is the limit)", ErrLimitExceeded, r.kind, r.limit)
	}
	idx := len(r.list)
	r.list = append(r.list, v)
	r.byName[name] = v
	r.ns.kinds[name] = r.kind
	return idx, nil
}

func (r *Registry[T]) Lookup(name string) (T, error) {
	v, ok := r.byName[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: unknown %s %s", ErrNotFound, r.kind, name)
	}
	return v, nil
}

func (r *Registry[T]) Exists(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// At returns the entity registered at index i.
func (r *Registry[T]) At(i int) T {
	return r.list[i]
}

func (r *Registry[T]) Len() int {
	return len(r.list)
}

// All returns the entities in insertion order. The slice is a copy.
func (r *Registry[T]) All() []T {
	out := make([]T, len(r.list))
	copy(out, r.list)
	return out
}
