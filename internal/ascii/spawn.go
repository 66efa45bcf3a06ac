package ascii

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

// Sprite is a single glyph drawn at its entity's global position.
type Sprite struct {
	Index int
	Rune  rune
	Color tcell.Color
	Alpha float64 // 1 = opaque
	Size  float64 // edge length in world units
}

// Text marks the root of a text readout. Each character is a child Sprite.
type Text struct {
	Value string
}

// Spawner creates glyph entities in a world.
type Spawner struct {
	world    *ecs.World
	cellSize float64
	sprites  *ecs.Store[Sprite]
	texts    *ecs.Store[Text]
}

// NewSpawner creates a spawner for w. cellSize is the world size of one glyph.
func NewSpawner(w *ecs.World, cellSize float64) *Spawner {
	return &Spawner{
		world:    w,
		cellSize: cellSize,
		sprites:  ecs.GetStore[Sprite](w),
		texts:    ecs.GetStore[Text](w),
	}
}

// CellSize returns the world size of one glyph.
func (s *Spawner) CellSize() float64 {
	return s.cellSize
}

// Sprite spawns one glyph. An index outside the sheet is a programming error and panics.
func (s *Spawner) Sprite(index int, color tcell.Color, pos vmath.Vec3) ecs.Entity {
	if index < 0 || index >= GlyphCount {
		panic(fmt.Sprintf("ascii: glyph index %d out of range", index))
	}

	e := s.world.SpawnAt("", pos)
	s.sprites.Set(e, Sprite{
		Index: index,
		Rune:  Rune(index),
		Color: color,
		Alpha: 1,
		Size:  s.cellSize,
	})
	return e
}

// Text spawns a readout whose first character sits at leftCenter.
func (s *Spawner) Text(value string, color tcell.Color, leftCenter vmath.Vec3) ecs.Entity {
	root := s.world.SpawnAt("Text - "+value, leftCenter)
	s.texts.Set(root, Text{Value: value})

	i := 0
	for _, ch := range value {
		index, ok := Index(ch)
		if !ok {
			panic(fmt.Sprintf("ascii: character %q is not on the glyph sheet", ch))
		}
		glyph := s.Sprite(index, color, vmath.Vec3{X: float64(i) * s.cellSize})
		s.world.AddChild(root, glyph)
		i++
	}
	return root
}
