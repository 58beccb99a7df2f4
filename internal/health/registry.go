package health

import (
	"fmt"
	"sync"
)

// Registry holds the set of registered probes. Names are unique across both
// kinds. List hands out a snapshot, so an in-flight aggregation never observes
// a partially updated set.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Probe
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Probe)}
}

func (r *Registry) Register(p Probe) error {
	if err := p.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[p.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProbeName, p.Name)
	}
	r.byName[p.Name] = p
	r.order = append(r.order, p.Name)
	return nil
}

func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; !exists {
		return fmt.Errorf("%w: %q", ErrProbeNotFound, name)
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the probes of the given kind in registration order.
func (r *Registry) List(kind Kind) []Probe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Probe, 0, len(r.order))
	for _, name := range r.order {
		p := r.byName[name]
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
