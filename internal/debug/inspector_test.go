package debug

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

func TestSnapshot(t *testing.T) {
	w := ecs.NewWorld()
	root := w.SpawnAt("Map", vmath.Vec3{})
	tile := w.SpawnAt("Tile", vmath.Vec3{X: 1, Z: 100})
	w.AddChild(root, tile)
	w.SpawnAt("Player", vmath.Vec3{X: 2, Y: -2, Z: 900})

	nodes := Snapshot(w)
	if len(nodes) != 2 {
		t.Fatalf("Snapshot() roots = %d, want 2", len(nodes))
	}
	if nodes[0].Name != "Map" || len(nodes[0].Children) != 1 || nodes[0].Children[0].Name != "Tile" {
		t.Errorf("Map node = %+v", nodes[0])
	}
	if nodes[1].Name != "Player" || !nodes[1].Visible || nodes[1].Translation.X != 2 {
		t.Errorf("Player node = %+v", nodes[1])
	}
}

func TestDumpLogsAtDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	w := ecs.NewWorld()
	w.SpawnAt("Player", vmath.Vec3{})

	text := NewInspector(logrus.NewEntry(logger)).Dump(w)

	if !strings.Contains(text, "Player") {
		t.Errorf("Dump() = %q, want it to mention Player", text)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.DebugLevel {
		t.Fatalf("LastEntry() = %v, want a debug entry", entry)
	}
	if entry.Data["entities"] != 1 {
		t.Errorf("entities field = %v, want 1", entry.Data["entities"])
	}
}
