package entity

import (
	"github.com/samdwyer/glyphquest/internal/ascii"
	"github.com/samdwyer/glyphquest/internal/combat"
	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/gamedata"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

const (
	// EnemyZ draws enemies at the map layer; the map is hidden during combat.
	EnemyZ = 100.0

	readoutZ = 100.0
)

// readoutColor is the colour of health readouts.
var readoutColor = gamedata.MustParseHexColor("#CCCCCC")

// Enemy identifies a hostile combatant.
type Enemy struct {
	ID   string
	Name string
}

// SpawnEnemy creates an enemy from def at the origin with a health readout child.
func SpawnEnemy(w *ecs.World, spawner *ascii.Spawner, def *gamedata.EnemyDef) ecs.Entity {
	sprite := spawner.Sprite(int(def.GlyphRune()), def.TCellColor(), vmath.Vec3{Z: EnemyZ})
	w.Names.Set(sprite, ecs.Name(def.Name))
	ecs.GetStore[Enemy](w).Set(sprite, Enemy{ID: def.ID, Name: def.Name})
	ecs.GetStore[combat.Stats](w).Set(sprite, combat.NewStats(def.HP, def.Attack, def.Defense))

	w.AddChild(sprite, spawnReadout(spawner, def.HP))
	return sprite
}

// ReplaceHealthReadout swaps every text readout under owner for one showing health.
// Owners without a readout are left unchanged.
func ReplaceHealthReadout(w *ecs.World, spawner *ascii.Spawner, owner ecs.Entity, health int) bool {
	texts := ecs.GetStore[ascii.Text](w)
	replaced := false
	for _, child := range w.Children(owner) {
		if !texts.Has(child) {
			continue
		}
		w.DespawnRecursive(child)
		w.AddChild(owner, spawnReadout(spawner, health))
		replaced = true
	}
	return replaced
}

// HealthReadout returns the text currently shown under owner.
func HealthReadout(w *ecs.World, owner ecs.Entity) (string, bool) {
	texts := ecs.GetStore[ascii.Text](w)
	for _, child := range w.Children(owner) {
		if t, ok := texts.Get(child); ok {
			return t.Value, true
		}
	}
	return "", false
}

func spawnReadout(spawner *ascii.Spawner, health int) ecs.Entity {
	cell := spawner.CellSize()
	return spawner.Text(combat.HealthText(health), readoutColor, vmath.Vec3{X: -4.5 * cell, Y: 2 * cell, Z: readoutZ})
}
