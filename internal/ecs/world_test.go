package ecs

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/samdwyer/glyphquest/internal/vmath"
)

type tag struct{ label string }

func TestStoreSetGetRemove(t *testing.T) {
	w := NewWorld()
	tags := GetStore[tag](w)

	a := w.Spawn()
	b := w.Spawn()
	tags.Set(a, tag{"a"})
	tags.Set(b, tag{"b"})

	if tags.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", tags.Count())
	}
	got, ok := tags.Get(a)
	if !ok || got.label != "a" {
		t.Errorf("Get(a) = %v, %v", got, ok)
	}

	// Set on an existing entity keeps the same pointer
	ptr := tags.MustGet(b)
	tags.Set(b, tag{"bb"})
	if ptr.label != "bb" {
		t.Errorf("Set should update in place, got %q", ptr.label)
	}

	tags.Remove(a)
	if tags.Has(a) {
		t.Error("Remove(a) left the component in place")
	}
	if ents := tags.Entities(); len(ents) != 1 || ents[0] != b {
		t.Errorf("Entities() = %v, want [%d]", ents, b)
	}
}

func TestGetStoreReturnsSameStore(t *testing.T) {
	w := NewWorld()
	if GetStore[tag](w) != GetStore[tag](w) {
		t.Error("GetStore should return the same store for the same type")
	}
	if GetStore[Transform](w) != w.Transforms {
		t.Error("GetStore[Transform] should return the world's transform store")
	}
}

func TestStoreSinglePanics(t *testing.T) {
	w := NewWorld()
	tags := GetStore[tag](w)

	defer func() {
		if recover() == nil {
			t.Error("Single() on an empty store should panic")
		}
	}()
	tags.Single()
}

func TestDespawnRecursive(t *testing.T) {
	w := NewWorld()
	tags := GetStore[tag](w)

	root := w.SpawnAt("root", vmath.Vec3{})
	child := w.SpawnAt("child", vmath.Vec3{X: 1})
	grandchild := w.SpawnAt("grandchild", vmath.Vec3{X: 2})
	other := w.SpawnAt("other", vmath.Vec3{})
	w.AddChild(root, child)
	w.AddChild(child, grandchild)
	tags.Set(grandchild, tag{"deep"})

	w.DespawnRecursive(root)

	for _, e := range []Entity{root, child, grandchild} {
		if w.Alive(e) {
			t.Errorf("entity %d should be despawned", e)
		}
	}
	if tags.Has(grandchild) {
		t.Error("components of despawned descendants should be removed")
	}
	if !w.Alive(other) {
		t.Error("unrelated entity should survive")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1\n%s", w.Len(), spew.Sdump(w.alive))
	}
}

func TestDespawnDetachesFromParent(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	a := w.Spawn()
	b := w.Spawn()
	w.PushChildren(parent, a, b)

	w.Despawn(a)

	kids := w.Children(parent)
	if len(kids) != 1 || kids[0] != b {
		t.Errorf("Children(parent) = %v, want [%d]", kids, b)
	}
}

func TestAddChildReparents(t *testing.T) {
	w := NewWorld()
	p1 := w.Spawn()
	p2 := w.Spawn()
	c := w.Spawn()

	w.AddChild(p1, c)
	w.AddChild(p2, c)

	if len(w.Children(p1)) != 0 {
		t.Error("child should be removed from its previous parent")
	}
	if p, ok := w.Parent(c); !ok || p != p2 {
		t.Errorf("Parent(c) = %d, %v, want %d", p, ok, p2)
	}
}

func TestGlobalTranslation(t *testing.T) {
	w := NewWorld()
	parent := w.SpawnAt("parent", vmath.Vec3{X: 1, Y: 2, Z: 100})
	child := w.SpawnAt("child", vmath.Vec3{X: -4.5, Y: 2})
	w.AddChild(parent, child)

	got := w.GlobalTranslation(child)
	want := vmath.Vec3{X: -3.5, Y: 4, Z: 100}
	if got != want {
		t.Errorf("GlobalTranslation(child) = %v, want %v", got, want)
	}
}

func TestVisibilityCascade(t *testing.T) {
	w := NewWorld()
	root := w.SpawnAt("map", vmath.Vec3{})
	tiles := []Entity{w.SpawnAt("t0", vmath.Vec3{}), w.SpawnAt("t1", vmath.Vec3{X: 1})}
	w.PushChildren(root, tiles...)

	w.SetVisibleRecursive(root, false)
	for _, tile := range tiles {
		if w.Visibility.MustGet(tile).Visible {
			t.Errorf("tile %d should be hidden", tile)
		}
		if w.VisibleInHierarchy(tile) {
			t.Errorf("tile %d should not be visible in hierarchy", tile)
		}
	}

	w.SetVisibleRecursive(root, true)
	for _, tile := range tiles {
		if !w.VisibleInHierarchy(tile) {
			t.Errorf("tile %d should be visible again", tile)
		}
	}

	// A hidden parent hides children whose own flag is still true
	w.Visibility.Set(root, Visibility{Visible: false})
	if w.VisibleInHierarchy(tiles[0]) {
		t.Error("hidden ancestor should hide descendants")
	}
}

func TestRoots(t *testing.T) {
	w := NewWorld()
	a := w.Spawn()
	b := w.Spawn()
	c := w.Spawn()
	w.AddChild(a, b)

	roots := w.Roots()
	if len(roots) != 2 || roots[0] != a || roots[1] != c {
		t.Errorf("Roots() = %v, want [%d %d]", roots, a, c)
	}
}
