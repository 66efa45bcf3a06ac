// Package entity spawns the player and enemy aggregates.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/glyphquest/internal/ascii"
	"github.com/samdwyer/glyphquest/internal/combat"
	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/gamedata"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

// PlayerZ draws the avatar above map tiles.
const PlayerZ = 900.0

// Player is the avatar controlled in the overworld.
type Player struct {
	Speed float64 // tiles per second
	// JustMoved is true only on a tick where at least one axis actually changed position.
	JustMoved bool
	Class     string
}

// SpawnPlayer creates the player at grid cell (gridX, gridY) with a dark background glyph child.
func SpawnPlayer(w *ecs.World, spawner *ascii.Spawner, def *gamedata.ClassDef, gridX, gridY int) ecs.Entity {
	cell := spawner.CellSize()
	pos := vmath.Vec3{X: float64(gridX) * cell, Y: -float64(gridY) * cell, Z: PlayerZ}

	player := spawner.Sprite(def.Glyph, def.TCellColor(), pos)
	w.Names.Set(player, ecs.Name("Player"))
	ecs.GetStore[Player](w).Set(player, Player{Speed: def.Speed, Class: def.ID})
	ecs.GetStore[combat.Stats](w).Set(player, combat.NewStats(def.HP, def.Attack, def.Defense))

	background := spawner.Sprite(0, tcell.NewRGBColor(128, 128, 128), vmath.Vec3{Z: -1})
	w.Names.Set(background, ecs.Name("Background"))
	w.AddChild(player, background)

	return player
}
