// Package debug dumps the entity tree for inspection while the game runs.
package debug

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/vmath"
)

// Node is one entity in a world snapshot.
type Node struct {
	Entity      ecs.Entity
	Name        string
	Translation vmath.Vec3
	Visible     bool
	Children    []Node
}

// Inspector logs world snapshots.
type Inspector struct {
	log  *logrus.Entry
	dump *spew.ConfigState
}

// NewInspector creates an inspector that writes to log.
func NewInspector(log *logrus.Entry) *Inspector {
	return &Inspector{
		log: log,
		dump: &spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}
}

// Snapshot returns the ownership tree of w, roots in spawn order.
func Snapshot(w *ecs.World) []Node {
	roots := w.Roots()
	nodes := make([]Node, 0, len(roots))
	for _, e := range roots {
		nodes = append(nodes, snapshot(w, e))
	}
	return nodes
}

func snapshot(w *ecs.World, e ecs.Entity) Node {
	n := Node{Entity: e}
	if name, ok := w.Names.Get(e); ok {
		n.Name = string(*name)
	}
	if tf, ok := w.Transforms.Get(e); ok {
		n.Translation = tf.Translation
	}
	if v, ok := w.Visibility.Get(e); ok {
		n.Visible = v.Visible
	}
	for _, child := range w.Children(e) {
		n.Children = append(n.Children, snapshot(w, child))
	}
	return n
}

// Dump logs a snapshot of w at debug level and returns the formatted text.
func (i *Inspector) Dump(w *ecs.World) string {
	text := i.dump.Sdump(Snapshot(w))
	i.log.WithField("entities", w.Len()).Debug("world dump\n" + text)
	return text
}
