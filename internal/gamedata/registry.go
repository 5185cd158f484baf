package gamedata

import (
	"github.com/samdwyer/rogue1980/internal/rng"
)

// Def is a data-driven definition that can be spawned by weight.
type Def interface {
	Key() string
	Weight() int
	AvailableAt(depth int) bool
}

// Registry holds loaded definitions and provides weighted spawning.
type Registry[T Def] struct {
	defs []T
}

// NewRegistry creates a registry from loaded definitions.
func NewRegistry[T Def](defs []T) *Registry[T] {
	return &Registry[T]{defs: defs}
}

// SpawnRandom selects a definition available at depth using weighted probability.
// Definitions with a higher spawn weight are more likely to be selected.
func (r *Registry[T]) SpawnRandom(src rng.Source, depth int) (*T, bool) {
	total := 0
	for i := range r.defs {
		if r.defs[i].AvailableAt(depth) {
			total += r.defs[i].Weight()
		}
	}
	if total <= 0 {
		return nil, false
	}

	roll := src.Intn(total)

	cumulative := 0
	for i := range r.defs {
		if !r.defs[i].AvailableAt(depth) {
			continue
		}
		cumulative += r.defs[i].Weight()
		if roll < cumulative {
			return &r.defs[i], true
		}
	}
	return nil, false
}

// GetByID returns the definition with the given ID.
func (r *Registry[T]) GetByID(id string) (*T, bool) {
	for i := range r.defs {
		if r.defs[i].Key() == id {
			return &r.defs[i], true
		}
	}
	return nil, false
}

// All returns all definitions.
func (r *Registry[T]) All() []T {
	return r.defs
}

// Count returns the number of definitions in the registry.
func (r *Registry[T]) Count() int {
	return len(r.defs)
}
