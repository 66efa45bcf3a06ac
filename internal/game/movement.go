package game

import (
	"time"

	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/entity"
	"github.com/samdwyer/glyphquest/internal/input"
	"github.com/samdwyer/glyphquest/internal/vmath"
	"github.com/samdwyer/glyphquest/internal/world"
)

const (
	// playerBoxScale shrinks the player's collision box so it fits through one-tile gaps.
	playerBoxScale = 0.9
)

// direction returns the held movement direction in world axes (+Y is up).
func direction(in *input.State) vmath.Vec2 {
	var d vmath.Vec2
	if in.Pressed(input.ActionLeft) {
		d.X--
	}
	if in.Pressed(input.ActionRight) {
		d.X++
	}
	if in.Pressed(input.ActionUp) {
		d.Y++
	}
	if in.Pressed(input.ActionDown) {
		d.Y--
	}
	return d
}

// movePlayer moves the player along x and then y, committing each axis only when
// its candidate position overlaps no wall.
func (g *Game) movePlayer(dt time.Duration) {
	players := ecs.GetStore[entity.Player](g.world)
	e, p := players.Single()
	p.JustMoved = false

	dir := direction(g.input)
	if dir.X == 0 && dir.Y == 0 {
		return
	}

	cell := g.spawner.CellSize()
	step := p.Speed * cell * dt.Seconds()
	if step == 0 {
		return
	}
	tf := g.world.Transforms.MustGet(e)

	if dir.X != 0 {
		candidate := tf.Translation
		candidate.X += dir.X * step
		if !g.overlapsAny(ecs.GetStore[world.Collider](g.world).Entities(), candidate) {
			tf.Translation = candidate
			p.JustMoved = true
		}
	}
	if dir.Y != 0 {
		candidate := tf.Translation
		candidate.Y += dir.Y * step
		if !g.overlapsAny(ecs.GetStore[world.Collider](g.world).Entities(), candidate) {
			tf.Translation = candidate
			p.JustMoved = true
		}
	}
}

// overlapsAny reports whether a player box at pos overlaps any of the given tiles.
func (g *Game) overlapsAny(tiles []ecs.Entity, pos vmath.Vec3) bool {
	cell := g.spawner.CellSize()
	playerBox := vmath.Splat(playerBoxScale * cell)
	tileBox := vmath.Splat(cell)
	for _, tile := range tiles {
		if vmath.Overlaps(pos, playerBox, g.world.GlobalTranslation(tile), tileBox) {
			return true
		}
	}
	return false
}
