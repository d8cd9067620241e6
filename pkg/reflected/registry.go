package reflected

import (
	"fmt"
	"slices"
	"sync"
)

// Registry indexes entity descriptors by type name. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Descriptor)}
}

// Register adds d under d.TypeName(). Returns ErrDuplicateType when the name
// is taken.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := d.TypeName()
	if _, ok := r.types[name]; ok {
		return fmt.Errorf("register %s: %w", name, ErrDuplicateType)
	}
	r.types[name] = d
	return nil
}

// MustRegister is Register that panics on error, for package-level setup.
func (r *Registry) MustRegister(ds ...Descriptor) *Registry {
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("lookup %s: %w", name, ErrUnknownType)
	}
	return d, nil
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
