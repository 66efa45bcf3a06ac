// Package ecs is the entity-component store the game systems run against.
//
// A World owns entities, one Store per component type, and the parent/child
// ownership tree used for recursive despawn and visibility. It is not safe for
// concurrent use: the game loop goroutine is its only user.
package ecs

import (
	"reflect"
	"slices"

	"github.com/samdwyer/glyphquest/internal/vmath"
)

// Entity is a unique identifier for an entity.
type Entity uint64

// Transform is an entity's position relative to its parent.
type Transform struct {
	Translation vmath.Vec3
}

// Visibility is the per-entity visible flag. An entity is drawn only when it
// and every ancestor are visible.
type Visibility struct {
	Visible bool
}

// Name labels an entity for logs and debug dumps.
type Name string

type entityRemover interface {
	removeEntity(e Entity)
}

// World contains all entities, their components and the ownership tree.
type World struct {
	nextEntity Entity
	alive      map[Entity]struct{}
	parent     map[Entity]Entity
	children   map[Entity][]Entity
	stores     map[reflect.Type]entityRemover
	order      []entityRemover

	Transforms *Store[Transform]
	Visibility *Store[Visibility]
	Names      *Store[Name]
}

// NewWorld creates an empty world.
func NewWorld() *World {
	w := &World{
		nextEntity: 1,
		alive:      make(map[Entity]struct{}),
		parent:     make(map[Entity]Entity),
		children:   make(map[Entity][]Entity),
		stores:     make(map[reflect.Type]entityRemover),
	}
	w.Transforms = GetStore[Transform](w)
	w.Visibility = GetStore[Visibility](w)
	w.Names = GetStore[Name](w)
	return w
}

// GetStore returns the store for component type T, creating it on first use.
// Systems call it once at construction and keep the pointer.
func GetStore[T any](w *World) *Store[T] {
	key := reflect.TypeFor[T]()
	if s, ok := w.stores[key]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.stores[key] = s
	w.order = append(w.order, s)
	return s
}

// Spawn creates a new entity with no components.
func (w *World) Spawn() Entity {
	e := w.nextEntity
	w.nextEntity++
	w.alive[e] = struct{}{}
	return e
}

// SpawnAt creates a visible entity with a transform and a name.
func (w *World) SpawnAt(name string, pos vmath.Vec3) Entity {
	e := w.Spawn()
	w.Transforms.Set(e, Transform{Translation: pos})
	w.Visibility.Set(e, Visibility{Visible: true})
	if name != "" {
		w.Names.Set(e, Name(name))
	}
	return e
}

// Alive reports whether e exists.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.alive)
}

// Roots returns live entities without a parent, oldest first.
func (w *World) Roots() []Entity {
	roots := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		if _, ok := w.parent[e]; !ok {
			roots = append(roots, e)
		}
	}
	slices.Sort(roots)
	return roots
}

// AddChild attaches child under parent, detaching it from any previous parent.
func (w *World) AddChild(parent, child Entity) {
	if !w.Alive(parent) || !w.Alive(child) {
		return
	}
	w.detach(child)
	w.parent[child] = parent
	w.children[parent] = append(w.children[parent], child)
}

// PushChildren attaches every child under parent in order.
func (w *World) PushChildren(parent Entity, children ...Entity) {
	for _, c := range children {
		w.AddChild(parent, c)
	}
}

// Children returns a copy of e's children in attach order.
func (w *World) Children(e Entity) []Entity {
	kids := w.children[e]
	result := make([]Entity, len(kids))
	copy(result, kids)
	return result
}

// Parent returns e's parent.
func (w *World) Parent(e Entity) (Entity, bool) {
	p, ok := w.parent[e]
	return p, ok
}

// Despawn removes e and its components. Its children are detached but kept.
func (w *World) Despawn(e Entity) {
	if !w.Alive(e) {
		return
	}
	w.detach(e)
	for _, c := range w.children[e] {
		delete(w.parent, c)
	}
	delete(w.children, e)
	for _, s := range w.order {
		s.removeEntity(e)
	}
	delete(w.alive, e)
}

// DespawnRecursive removes e and all of its descendants.
func (w *World) DespawnRecursive(e Entity) {
	for _, c := range w.Children(e) {
		w.DespawnRecursive(c)
	}
	w.Despawn(e)
}

// GlobalTranslation returns e's translation accumulated over its ancestors.
func (w *World) GlobalTranslation(e Entity) vmath.Vec3 {
	var pos vmath.Vec3
	for cur, ok := e, true; ok; cur, ok = w.parent[cur] {
		if t, has := w.Transforms.Get(cur); has {
			pos = pos.Add(t.Translation)
		}
	}
	return pos
}

// SetVisibleRecursive sets the visible flag on e and all of its descendants.
func (w *World) SetVisibleRecursive(e Entity, visible bool) {
	if !w.Alive(e) {
		return
	}
	w.Visibility.Set(e, Visibility{Visible: visible})
	for _, c := range w.children[e] {
		w.SetVisibleRecursive(c, visible)
	}
}

// VisibleInHierarchy reports whether e and all of its ancestors are visible.
// Entities without a Visibility component count as visible.
func (w *World) VisibleInHierarchy(e Entity) bool {
	for cur, ok := e, true; ok; cur, ok = w.parent[cur] {
		if v, has := w.Visibility.Get(cur); has && !v.Visible {
			return false
		}
	}
	return true
}

func (w *World) detach(child Entity) {
	p, ok := w.parent[child]
	if !ok {
		return
	}
	siblings := w.children[p]
	for i, s := range siblings {
		if s == child {
			w.children[p] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	delete(w.parent, child)
}
