// Package collision hosts static obstacles in a resolv grid and answers
// broadphase queries for the shape caster.
package collision

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/solarlune/resolv"

	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
)

const (
	defaultCellSize = 16
	stageMargin     = 64
)

// resolv maps an object to cells over [x, x+w-1], so probes are padded by one
// unit on every side.
const probePadding = 1

// Space is a static obstacle set indexed by a resolv cell grid. World
// coordinates are shifted by origin so everything lands inside the grid.
type Space struct {
	space     *resolv.Space
	origin    geom.Vec
	colliders []*entity.Collider
	objects   map[*entity.Collider]*resolv.Object
}

// NewSpace creates a space covering bounds.
func NewSpace(bounds cp.BB, cellSize int) *Space {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	cols := int(math.Ceil((bounds.R - bounds.L) / float64(cellSize)))
	rows := int(math.Ceil((bounds.T - bounds.B) / float64(cellSize)))
	return &Space{
		space:   resolv.NewSpace(cols*cellSize, rows*cellSize, cellSize, cellSize),
		origin:  geom.Vec{X: bounds.L, Y: bounds.B},
		objects: make(map[*entity.Collider]*resolv.Object),
	}
}

// NewStageSpace creates a space for a stage with a margin around it and adds
// every stage collider.
func NewStageSpace(stage *entity.Stage) *Space {
	w, h := stage.PixelSize()
	bounds := cp.BB{L: -stageMargin, B: -stageMargin, R: w + stageMargin, T: h + stageMargin}
	s := NewSpace(bounds, stage.TileSize)
	for _, c := range stage.Colliders() {
		s.Add(c)
	}
	return s
}

// Add registers a collider.
func (s *Space) Add(c *entity.Collider) {
	bb := c.Shape.Bounds()
	obj := resolv.NewObject(bb.L-s.origin.X, bb.B-s.origin.Y, bb.R-bb.L, bb.T-bb.B, c.Layers...)
	obj.Data = c
	s.space.Add(obj)
	s.objects[c] = obj
	s.colliders = append(s.colliders, c)
}

// Remove unregisters a collider. Unknown colliders are ignored.
func (s *Space) Remove(c *entity.Collider) {
	obj, ok := s.objects[c]
	if !ok {
		return
	}
	s.space.Remove(obj)
	delete(s.objects, c)
	for i, other := range s.colliders {
		if other == c {
			s.colliders = append(s.colliders[:i], s.colliders[i+1:]...)
			break
		}
	}
}

// Colliders returns every registered collider in insertion order.
func (s *Space) Colliders() []*entity.Collider {
	return s.colliders
}

// Query returns the colliders matching filter whose bounds overlap bb,
// ordered by ID.
func (s *Space) Query(bb cp.BB, filter entity.LayerFilter) []*entity.Collider {
	if len(filter) == 0 {
		return nil
	}

	probe := resolv.NewObject(
		bb.L-s.origin.X-probePadding,
		bb.B-s.origin.Y-probePadding,
		bb.R-bb.L+2*probePadding,
		bb.T-bb.B+2*probePadding,
	)
	s.space.Add(probe)
	check := probe.Check(0, 0, filter...)
	s.space.Remove(probe)
	if check == nil {
		return nil
	}

	seen := make(map[*entity.Collider]bool, len(check.Objects))
	var out []*entity.Collider
	for _, obj := range check.Objects {
		c, ok := obj.Data.(*entity.Collider)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		if !overlaps(c.Shape.Bounds(), bb) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func overlaps(a, b cp.BB) bool {
	return a.L <= b.R && b.L <= a.R && a.B <= b.T && b.B <= a.T
}
