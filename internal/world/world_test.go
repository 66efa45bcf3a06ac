package world

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samdwyer/glyphquest/internal/ascii"
	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

func newSpawner(t *testing.T, w *ecs.World) *ascii.Spawner {
	t.Helper()
	return ascii.NewSpawner(w, 1.0)
}

func TestParseMapThreeTiles(t *testing.T) {
	grid, err := ParseMap(strings.NewReader("#.~"))
	if err != nil {
		t.Fatalf("ParseMap() error: %v", err)
	}

	w := ecs.NewWorld()
	m := SpawnMap(context.Background(), w, newSpawner(t, w), grid)

	if len(m.Tiles) != 3 {
		t.Fatalf("got %d tiles, want 3", len(m.Tiles))
	}

	colliders := ecs.GetStore[Collider](w)
	encounters := ecs.GetStore[EncounterZone](w)

	tests := []struct {
		index     int
		collider  bool
		encounter bool
	}{
		{0, true, false},
		{1, false, false},
		{2, false, true},
	}
	for _, tt := range tests {
		e := m.Tiles[tt.index]
		if got := colliders.Has(e); got != tt.collider {
			t.Errorf("tile %d collider = %v, want %v", tt.index, got, tt.collider)
		}
		if got := encounters.Has(e); got != tt.encounter {
			t.Errorf("tile %d encounter = %v, want %v", tt.index, got, tt.encounter)
		}
	}
}

func TestSpawnMapPositions(t *testing.T) {
	grid, err := ParseMap(strings.NewReader("##\n.~\n"))
	if err != nil {
		t.Fatalf("ParseMap() error: %v", err)
	}

	w := ecs.NewWorld()
	m := SpawnMap(context.Background(), w, ascii.NewSpawner(w, 0.1), grid)

	// Row 1, column 1 sits one cell right and one cell down
	got := w.GlobalTranslation(m.Tiles[3])
	want := vmath.Vec3{X: 0.1, Y: -0.1, Z: TileZ}
	if !vmath.ApproxEqual(got, want, 1e-9) || got.Z != TileZ {
		t.Errorf("tile (1,1) at %v, want %v", got, want)
	}

	tile := ecs.GetStore[Tile](w).MustGet(m.Tiles[3])
	if tile.X != 1 || tile.Y != 1 || tile.Glyph != '~' {
		t.Errorf("Tile = %+v", tile)
	}

	for _, e := range m.Tiles {
		if p, ok := w.Parent(e); !ok || p != m.Root {
			t.Errorf("tile %d should be a child of the map root", e)
		}
	}
}

func TestParseMapWhitespaceSpawnsTiles(t *testing.T) {
	grid, err := ParseMap(strings.NewReader("# #\r\n"))
	if err != nil {
		t.Fatalf("ParseMap() error: %v", err)
	}
	if grid.TileCount() != 3 {
		t.Errorf("TileCount() = %d, want 3 (space kept, CR dropped)", grid.TileCount())
	}
	if grid.At(1, 0) != ' ' {
		t.Errorf("At(1,0) = %q, want ' '", grid.At(1, 0))
	}
}

func TestParseMapRagged(t *testing.T) {
	grid, err := ParseMap(strings.NewReader("#\n###\n##"))
	if err != nil {
		t.Fatalf("ParseMap() error: %v", err)
	}
	if grid.Width != 3 || grid.Height != 3 {
		t.Errorf("size = %dx%d, want 3x3", grid.Width, grid.Height)
	}
	if grid.TileCount() != 6 {
		t.Errorf("TileCount() = %d, want 6", grid.TileCount())
	}
}

func TestParseMapErrors(t *testing.T) {
	if _, err := ParseMap(strings.NewReader("")); !errors.Is(err, ErrEmptyMap) {
		t.Errorf("empty map error = %v, want ErrEmptyMap", err)
	}
	if _, err := ParseMap(strings.NewReader("#☃#")); err == nil {
		t.Error("character outside the sheet should fail")
	}
}

func TestLoadMapFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.txt")
	if err := os.WriteFile(path, []byte("#####\n#.~.#\n#####\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	grid, err := LoadMapFile(path)
	if err != nil {
		t.Fatalf("LoadMapFile() error: %v", err)
	}
	if grid.Width != 5 || grid.Height != 3 {
		t.Errorf("size = %dx%d, want 5x3", grid.Width, grid.Height)
	}

	if _, err := LoadMapFile(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing map error = %v, want os.ErrNotExist", err)
	}
}

func TestMapShowHide(t *testing.T) {
	grid, _ := ParseMap(strings.NewReader("#.~"))
	w := ecs.NewWorld()
	m := SpawnMap(context.Background(), w, newSpawner(t, w), grid)

	m.Hide(w)
	for _, e := range m.Tiles {
		if w.VisibleInHierarchy(e) {
			t.Fatalf("tile %d visible after Hide", e)
		}
	}
	m.Show(w)
	for _, e := range m.Tiles {
		if !w.VisibleInHierarchy(e) {
			t.Fatalf("tile %d hidden after Show", e)
		}
	}
}

func TestGeneratorReproducibility(t *testing.T) {
	ctx := context.Background()
	g1 := NewGenerator(DefaultWidth, DefaultHeight, 12345).Generate(ctx)
	g2 := NewGenerator(DefaultWidth, DefaultHeight, 12345).Generate(ctx)

	if g1.String() != g2.String() {
		t.Error("same seed should generate the same map")
	}

	g3 := NewGenerator(DefaultWidth, DefaultHeight, 54321).Generate(ctx)
	if g1.String() == g3.String() {
		t.Error("different seeds should generate different maps")
	}
}

func TestGeneratorLayout(t *testing.T) {
	gen := NewGenerator(DefaultWidth, DefaultHeight, 7)
	grid := gen.Generate(context.Background())

	if grid.Width != DefaultWidth || grid.Height != DefaultHeight {
		t.Fatalf("size = %dx%d", grid.Width, grid.Height)
	}
	if gen.RoomCount() < 2 {
		t.Errorf("RoomCount() = %d, want at least 2", gen.RoomCount())
	}

	// Outer border stays solid
	for x := 0; x < grid.Width; x++ {
		if grid.At(x, 0) != GlyphWall || grid.At(x, grid.Height-1) != GlyphWall {
			t.Fatalf("border broken at column %d", x)
		}
	}
	for y := 0; y < grid.Height; y++ {
		if grid.At(0, y) != GlyphWall || grid.At(grid.Width-1, y) != GlyphWall {
			t.Fatalf("border broken at row %d", y)
		}
	}

	if grid.At(2, 2) != GlyphFloor {
		t.Errorf("start cell (2,2) = %q, want floor", grid.At(2, 2))
	}
	if !strings.ContainsRune(grid.String(), GlyphEncounter) {
		t.Error("generated map should contain encounter grass")
	}

	// The text form round-trips through the loader
	parsed, err := ParseMap(strings.NewReader(grid.String()))
	if err != nil {
		t.Fatalf("ParseMap(generated) error: %v", err)
	}
	if parsed.TileCount() != DefaultWidth*DefaultHeight {
		t.Errorf("TileCount() = %d", parsed.TileCount())
	}
}

func TestBundledMap(t *testing.T) {
	grid, err := LoadMapFile(filepath.Join("..", "..", "assets", "map.txt"))
	if err != nil {
		t.Fatalf("LoadMapFile() error: %v", err)
	}
	if ch := grid.At(2, 2); IsCollider(ch) {
		t.Errorf("default start (2,2) is %q, want walkable", ch)
	}
	encounters := 0
	for _, row := range grid.Rows {
		for _, ch := range row {
			if IsEncounter(ch) {
				encounters++
			}
		}
	}
	if encounters == 0 {
		t.Error("bundled map should contain encounter grass")
	}
}
