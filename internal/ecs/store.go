package ecs

import "fmt"

// Store is a container for one component type.
// Entities are kept in insertion order so iteration is deterministic.
type Store[T any] struct {
	components map[Entity]*T
	entities   []Entity
}

// NewStore creates an empty store for T.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[Entity]*T),
		entities:   make([]Entity, 0, 64),
	}
}

// Set inserts or replaces the component for e and returns a pointer to the stored value.
func (s *Store[T]) Set(e Entity, val T) *T {
	if existing, ok := s.components[e]; ok {
		*existing = val
		return existing
	}
	ptr := &val
	s.components[e] = ptr
	s.entities = append(s.entities, e)
	return ptr
}

// Get returns the component for e.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	val, ok := s.components[e]
	return val, ok
}

// MustGet returns the component for e and panics when it is missing.
func (s *Store[T]) MustGet(e Entity) *T {
	val, ok := s.components[e]
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d has no %T component", e, zero))
	}
	return val
}

// Has reports whether e has this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Remove deletes the component from e.
func (s *Store[T]) Remove(e Entity) {
	if _, ok := s.components[e]; !ok {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
}

// Entities returns a copy of all entities holding this component.
func (s *Store[T]) Entities() []Entity {
	result := make([]Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Count returns the number of entities holding this component.
func (s *Store[T]) Count() int {
	return len(s.entities)
}

// Single returns the only entity holding this component.
// Zero or several holders is a programming error and panics.
func (s *Store[T]) Single() (Entity, *T) {
	if len(s.entities) != 1 {
		var zero T
		panic(fmt.Sprintf("ecs: expected exactly one %T, found %d", zero, len(s.entities)))
	}
	e := s.entities[0]
	return e, s.components[e]
}

func (s *Store[T]) removeEntity(e Entity) {
	s.Remove(e)
}
