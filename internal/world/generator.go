package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphquest/internal/telemetry"
)

const (
	// Default generated map dimensions
	DefaultWidth  = 60
	DefaultHeight = 24

	// BSP parameters
	minRoomSize = 5  // Minimum room dimension
	maxRoomSize = 12 // Maximum room dimension
	minLeafSize = 8  // Minimum BSP leaf size before stopping split

	// The start room always covers (1,1)..(startRoomW,startRoomH) so the
	// default player start at grid (2,2) lands on floor.
	startRoomW = 6
	startRoomH = 4
)

// rect is a rectangular area of the grid.
type rect struct {
	x, y          int
	width, height int
}

func (r rect) center() (int, int) {
	return r.x + r.width/2, r.y + r.height/2
}

// Generator carves overworld maps: walled rooms joined by corridors, with
// patches of encounter grass in every room except the start room.
type Generator struct {
	Width  int
	Height int
	rng    *rand.Rand
	rows   [][]rune
	rooms  []rect
}

// NewGenerator creates a generator. The same seed always yields the same map.
func NewGenerator(width, height int, seed int64) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate builds a map using binary space partitioning.
func (g *Generator) Generate(ctx context.Context) *Grid {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.generate")
	defer span.End()

	startTime := time.Now()

	g.rows = make([][]rune, g.Height)
	for y := range g.rows {
		g.rows[y] = make([]rune, g.Width)
		for x := range g.rows[y] {
			g.rows[y][x] = GlyphWall
		}
	}
	g.rooms = g.rooms[:0]

	start := rect{x: 1, y: 1, width: startRoomW, height: startRoomH}
	g.carve(start, GlyphFloor)
	g.rooms = append(g.rooms, start)

	root := &bspNode{area: rect{x: 1, y: 1, width: g.Width - 2, height: g.Height - 2}}
	g.split(root)
	g.createRooms(root)

	// Chain rooms in creation order so every room is reachable from the start room
	for i := 1; i < len(g.rooms); i++ {
		g.carveCorridor(g.rooms[i-1], g.rooms[i])
	}
	for _, room := range g.rooms[1:] {
		g.plantGrass(room)
	}

	span.SetAttributes(
		attribute.Int("map.width", g.Width),
		attribute.Int("map.height", g.Height),
		attribute.Int("map.room_count", len(g.rooms)),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return &Grid{Rows: g.rows, Width: g.Width, Height: g.Height}
}

// RoomCount returns the number of rooms carved by the last Generate call.
func (g *Generator) RoomCount() int {
	return len(g.rooms)
}

// bspNode is a node in the BSP tree.
type bspNode struct {
	area        rect
	left, right *bspNode
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

func (g *Generator) split(node *bspNode) {
	a := node.area
	canSplitH := a.height >= minLeafSize*2
	canSplitV := a.width >= minLeafSize*2
	if !canSplitH && !canSplitV {
		return
	}

	horizontal := canSplitH && (!canSplitV || a.height > a.width)
	size := a.width
	if horizontal {
		size = a.height
	}
	lo, hi := minLeafSize, size-minLeafSize
	if hi <= lo {
		return
	}
	pos := lo + g.rng.Intn(hi-lo+1)

	if horizontal {
		node.left = &bspNode{area: rect{x: a.x, y: a.y, width: a.width, height: pos}}
		node.right = &bspNode{area: rect{x: a.x, y: a.y + pos, width: a.width, height: a.height - pos}}
	} else {
		node.left = &bspNode{area: rect{x: a.x, y: a.y, width: pos, height: a.height}}
		node.right = &bspNode{area: rect{x: a.x + pos, y: a.y, width: a.width - pos, height: a.height}}
	}
	g.split(node.left)
	g.split(node.right)
}

func (g *Generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	a := node.area
	w := min(minRoomSize+g.rng.Intn(maxRoomSize-minRoomSize+1), a.width-2)
	h := min(minRoomSize+g.rng.Intn(maxRoomSize-minRoomSize+1), a.height-2)
	if w < minRoomSize || h < minRoomSize {
		return
	}
	room := rect{
		x:      a.x + 1 + g.rng.Intn(a.width-w-1),
		y:      a.y + 1 + g.rng.Intn(a.height-h-1),
		width:  w,
		height: h,
	}
	g.carve(room, GlyphFloor)
	g.rooms = append(g.rooms, room)
}

// plantGrass fills a random sub-rectangle of room with encounter tiles.
func (g *Generator) plantGrass(room rect) {
	w := 2 + g.rng.Intn(max(1, room.width-2))
	h := 1 + g.rng.Intn(max(1, room.height-2))
	patch := rect{
		x:      room.x + g.rng.Intn(room.width-w+1),
		y:      room.y + g.rng.Intn(room.height-h+1),
		width:  min(w, room.width),
		height: min(h, room.height),
	}
	start := g.rooms[0]
	for y := patch.y; y < patch.y+patch.height; y++ {
		for x := patch.x; x < patch.x+patch.width; x++ {
			if x >= start.x && x < start.x+start.width && y >= start.y && y < start.y+start.height {
				continue
			}
			g.set(x, y, GlyphEncounter)
		}
	}
}

func (g *Generator) carve(r rect, ch rune) {
	for y := r.y; y < r.y+r.height; y++ {
		for x := r.x; x < r.x+r.width; x++ {
			g.set(x, y, ch)
		}
	}
}

// set writes ch unless (x,y) is on the outer wall.
func (g *Generator) set(x, y int, ch rune) {
	if x > 0 && x < g.Width-1 && y > 0 && y < g.Height-1 {
		g.rows[y][x] = ch
	}
}

func (g *Generator) carveCorridor(a, b rect) {
	x1, y1 := a.center()
	x2, y2 := b.center()

	if g.rng.Intn(2) == 0 {
		g.carveHorizontal(x1, x2, y1)
		g.carveVertical(y1, y2, x2)
	} else {
		g.carveVertical(y1, y2, x1)
		g.carveHorizontal(x1, x2, y2)
	}
}

func (g *Generator) carveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.set(x, y, GlyphFloor)
	}
}

func (g *Generator) carveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.set(x, y, GlyphFloor)
	}
}
