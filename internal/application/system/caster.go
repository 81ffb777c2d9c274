package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
)

// SimultaneousHitEpsilon is the distance within which hits count as one contact.
const SimultaneousHitEpsilon = 0.01

// Obstacles is the broadphase queried by a Caster.
type Obstacles interface {
	Query(bb cp.BB, filter entity.LayerFilter) []*entity.Collider
}

// CastStats counts cast calls.
type CastStats struct {
	Casts int
}

// Caster sweeps a convex shape against obstacles matching a fixed filter.
type Caster struct {
	obstacles Obstacles
	filter    entity.LayerFilter
	scratch   []entity.CastHit
	single    [1]entity.CastHit

	Stats CastStats
}

// NewCaster creates a caster. The filter is copied and never changes.
func NewCaster(obstacles Obstacles, filter entity.LayerFilter) *Caster {
	return &Caster{
		obstacles: obstacles,
		filter:    append(entity.LayerFilter(nil), filter...),
	}
}

// Filter returns the layer filter.
func (c *Caster) Filter() entity.LayerFilter {
	return c.filter
}

// Cast sweeps shape along movement and writes the nearest hits into buf,
// sorted by distance. Hits farther than the closest one plus
// SimultaneousHitEpsilon are dropped. It returns the number of hits written.
func (c *Caster) Cast(shape geom.Polygon, movement geom.Vec, buf []entity.CastHit) int {
	if geom.IsNull(movement) || len(buf) == 0 {
		return 0
	}
	c.Stats.Casts++

	length := movement.Length()
	bb := geom.SweptBounds(shape.Bounds(), movement)
	c.scratch = c.scratch[:0]
	for _, col := range c.obstacles.Query(bb, c.filter) {
		t, n, ok := geom.Sweep(shape, movement, col.Shape)
		if !ok {
			continue
		}
		c.scratch = append(c.scratch, entity.CastHit{
			Normal:   n,
			Distance: t * length,
			Collider: col,
		})
	}
	if len(c.scratch) == 0 {
		return 0
	}

	sort.SliceStable(c.scratch, func(i, j int) bool {
		return c.scratch[i].Distance < c.scratch[j].Distance
	})
	limit := c.scratch[0].Distance + SimultaneousHitEpsilon
	n := 0
	for _, h := range c.scratch {
		if h.Distance > limit || n == len(buf) {
			break
		}
		buf[n] = h
		n++
	}
	return n
}

// CastSingle returns the nearest hit along movement.
func (c *Caster) CastSingle(shape geom.Polygon, movement geom.Vec) (entity.CastHit, bool) {
	if c.Cast(shape, movement, c.single[:]) == 0 {
		return entity.CastHit{}, false
	}
	return c.single[0], true
}

// approachCos is the smallest incidence used when backing off from a hit so
// grazing contacts do not pull the shape far back.
const approachCos = 0.05

// safeDistance returns how far the shape can travel along dir before the hit
// while keeping offset away from the surface.
func safeDistance(hit entity.CastHit, dir geom.Vec, offset float64) float64 {
	cos := math.Max(-dir.Dot(hit.Normal), approachCos)
	return math.Max(hit.Distance-offset/cos, 0)
}
