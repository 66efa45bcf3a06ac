// Package world loads the overworld tile map and tags its special tiles.
package world

import "github.com/gdamore/tcell/v2"

const (
	// GlyphWall blocks movement.
	GlyphWall = '#'
	// GlyphEncounter marks tall grass where encounters happen.
	GlyphEncounter = '~'
	// GlyphFloor is plain walkable ground.
	GlyphFloor = '.'

	// TileZ is the draw depth of map tiles.
	TileZ = 100.0
)

// Tile is the grid cell a tile entity was spawned from.
type Tile struct {
	X, Y  int
	Glyph rune
}

// Collider tags a tile that blocks movement.
type Collider struct{}

// EncounterZone tags a tile that can trigger combat.
type EncounterZone struct{}

// MapRoot tags the container entity that owns every tile.
type MapRoot struct{}

// IsCollider reports whether a map character blocks movement.
func IsCollider(ch rune) bool {
	return ch == GlyphWall
}

// IsEncounter reports whether a map character is an encounter zone.
func IsEncounter(ch rune) bool {
	return ch == GlyphEncounter
}

// TileColor returns the glyph colour for a map character.
func TileColor(ch rune) tcell.Color {
	switch ch {
	case GlyphWall:
		return tcell.NewRGBColor(150, 150, 150)
	case GlyphEncounter:
		return tcell.NewRGBColor(90, 200, 90)
	default:
		return tcell.NewRGBColor(230, 230, 230)
	}
}
