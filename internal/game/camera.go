package game

import (
	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/entity"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

// Camera is the world point drawn at the centre of the screen.
type Camera struct {
	Position vmath.Vec3
}

// followPlayer centres the camera on the player.
func (g *Game) followPlayer() {
	e, _ := ecs.GetStore[entity.Player](g.world).Single()
	pos := g.world.GlobalTranslation(e)
	g.camera.Position.X = pos.X
	g.camera.Position.Y = pos.Y
}

// pinCamera holds the camera at the origin, where combatants are placed.
func (g *Game) pinCamera() {
	g.camera.Position.X = 0
	g.camera.Position.Y = 0
}

// Camera returns the current camera.
func (g *Game) Camera() Camera {
	return g.camera
}
