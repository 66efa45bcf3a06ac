package world

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphquest/internal/ascii"
	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/telemetry"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

// ErrEmptyMap is returned when a map resource has no characters.
var ErrEmptyMap = errors.New("map has no tiles")

// Grid is a parsed map: one row per line, one rune per column.
// Rows may be ragged; Width is the longest row.
type Grid struct {
	Rows   [][]rune
	Width  int
	Height int
}

// At returns the character at (x, y), or ' ' outside the grid.
func (g *Grid) At(x, y int) rune {
	if y < 0 || y >= len(g.Rows) || x < 0 || x >= len(g.Rows[y]) {
		return ' '
	}
	return g.Rows[y][x]
}

// TileCount returns the number of characters in the grid.
func (g *Grid) TileCount() int {
	n := 0
	for _, row := range g.Rows {
		n += len(row)
	}
	return n
}

// String renders the grid back to map text.
func (g *Grid) String() string {
	var buf []rune
	for _, row := range g.Rows {
		buf = append(buf, row...)
		buf = append(buf, '\n')
	}
	return string(buf)
}

// ParseMap reads a text map. Every character, whitespace included, becomes a tile.
func ParseMap(r io.Reader) (*Grid, error) {
	grid := &Grid{}
	scanner := bufio.NewScanner(r)
	for y := 0; scanner.Scan(); y++ {
		row := []rune(scanner.Text())
		for x, ch := range row {
			if _, ok := ascii.Index(ch); !ok {
				return nil, fmt.Errorf("map character %q at (%d,%d) is not on the glyph sheet", ch, x, y)
			}
		}
		grid.Rows = append(grid.Rows, row)
		if len(row) > grid.Width {
			grid.Width = len(row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	grid.Height = len(grid.Rows)
	if grid.TileCount() == 0 {
		return nil, ErrEmptyMap
	}
	return grid, nil
}

// LoadMapFile reads and parses the map resource at path.
func LoadMapFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map %s: %w", path, err)
	}
	defer f.Close()

	grid, err := ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", path, err)
	}
	return grid, nil
}

// Map is the spawned overworld: a container entity owning every tile in row order.
type Map struct {
	Root   ecs.Entity
	Tiles  []ecs.Entity
	Width  int
	Height int
}

// SpawnMap creates one glyph entity per grid character at (x*cell, -y*cell) and
// parents them all under a single Map container.
func SpawnMap(ctx context.Context, w *ecs.World, spawner *ascii.Spawner, grid *Grid) *Map {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.spawn")
	defer span.End()

	cell := spawner.CellSize()
	colliders := ecs.GetStore[Collider](w)
	encounters := ecs.GetStore[EncounterZone](w)
	tiles := ecs.GetStore[Tile](w)

	m := &Map{
		Tiles:  make([]ecs.Entity, 0, grid.TileCount()),
		Width:  grid.Width,
		Height: grid.Height,
	}

	collidersCount, encounterCount := 0, 0
	for y, row := range grid.Rows {
		for x, ch := range row {
			pos := vmath.Vec3{X: float64(x) * cell, Y: -float64(y) * cell, Z: TileZ}
			e := spawner.Sprite(int(ch), TileColor(ch), pos)
			tiles.Set(e, Tile{X: x, Y: y, Glyph: ch})
			if IsCollider(ch) {
				colliders.Set(e, Collider{})
				collidersCount++
			}
			if IsEncounter(ch) {
				encounters.Set(e, EncounterZone{})
				encounterCount++
			}
			m.Tiles = append(m.Tiles, e)
		}
	}

	m.Root = w.SpawnAt("Map", vmath.Vec3{})
	ecs.GetStore[MapRoot](w).Set(m.Root, MapRoot{})
	w.PushChildren(m.Root, m.Tiles...)

	span.SetAttributes(
		attribute.Int("map.width", grid.Width),
		attribute.Int("map.height", grid.Height),
		attribute.Int("map.tiles", len(m.Tiles)),
		attribute.Int("map.colliders", collidersCount),
		attribute.Int("map.encounter_zones", encounterCount),
	)
	return m
}

// Show makes the map and every tile visible.
func (m *Map) Show(w *ecs.World) {
	w.SetVisibleRecursive(m.Root, true)
}

// Hide hides the map and every tile.
func (m *Map) Hide(w *ecs.World) {
	w.SetVisibleRecursive(m.Root, false)
}
