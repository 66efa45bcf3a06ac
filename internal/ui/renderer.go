package ui

import (
	"cmp"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/glyphquest/internal/ascii"
	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

// backgroundGlyph fills its cell's background instead of drawing a rune.
const backgroundGlyph = 0

var (
	defaultFg   = tcell.ColorWhite
	defaultBg   = tcell.ColorBlack
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
)

// Frame is everything needed to draw one tick.
type Frame struct {
	World     *ecs.World
	Camera    vmath.Vec3 // world point drawn at the centre of the map area
	FadeAlpha float64
	FadeColor tcell.Color
	Status    string
}

// Cell is one composed terminal cell.
type Cell struct {
	Rune rune
	Fg   tcell.Color
	Bg   tcell.Color
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette *Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) (*Renderer, error) {
	palette, err := NewPalette()
	if err != nil {
		return nil, err
	}
	return &Renderer{screen: screen, palette: palette}, nil
}

// Close releases the renderer's blend cache. The screen stays open.
func (r *Renderer) Close() {
	r.palette.Close()
}

// Render draws the frame with a status line on the bottom row.
func (r *Renderer) Render(f Frame) {
	width, height := r.screen.Size()
	r.screen.Clear()

	cells := Compose(f, width, height-1, r.palette)
	for y, row := range cells {
		for x, c := range row {
			r.screen.SetContent(x, y, c.Rune, tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg))
		}
	}
	r.RenderMessage(f.Status, height-1)

	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, statusStyle)
	}
}

type drawable struct {
	pos    vmath.Vec3
	sprite *ascii.Sprite
}

// Compose lays out every sprite visible through its ancestors in a width x height grid,
// lowest Z first, then blends the grid towards the fade colour through p.
func Compose(f Frame, width, height int, p *Palette) [][]Cell {
	if width <= 0 || height <= 0 {
		return nil
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Rune: ' ', Fg: defaultFg, Bg: defaultBg}
		}
	}

	sprites := ecs.GetStore[ascii.Sprite](f.World)
	var items []drawable
	for _, e := range sprites.Entities() {
		if !f.World.VisibleInHierarchy(e) {
			continue
		}
		items = append(items, drawable{pos: f.World.GlobalTranslation(e), sprite: sprites.MustGet(e)})
	}
	slices.SortStableFunc(items, func(a, b drawable) int {
		return cmp.Compare(a.pos.Z, b.pos.Z)
	})

	cx, cy := width/2, height/2
	for _, it := range items {
		size := it.sprite.Size
		if size <= 0 {
			size = 1
		}
		x := cx + int(math.Round((it.pos.X-f.Camera.X)/size))
		y := cy - int(math.Round((it.pos.Y-f.Camera.Y)/size))
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}

		c := &cells[y][x]
		switch {
		case it.sprite.Index == backgroundGlyph:
			c.Bg = it.sprite.Color
		case it.sprite.Rune == ' ':
		default:
			c.Rune = it.sprite.Rune
			c.Fg = it.sprite.Color
		}
	}

	if f.FadeAlpha > 0 {
		for y := range cells {
			for x := range cells[y] {
				c := &cells[y][x]
				c.Fg = p.Blend(c.Fg, f.FadeColor, f.FadeAlpha)
				c.Bg = p.Blend(c.Bg, f.FadeColor, f.FadeAlpha)
			}
		}
	}
	return cells
}

// Blend mixes from towards to by t in [0, 1] in RGB space.
func Blend(from, to tcell.Color, t float64) tcell.Color {
	t = min(max(t, 0), 1)
	return fromColorful(toColorful(from).BlendRgb(toColorful(to), t))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
