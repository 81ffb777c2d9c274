package entity

import "github.com/younwookim/kinematic/internal/domain/geom"

// EntityID is a unique identifier for an entity
type EntityID uint32

// Layer tags carried by colliders.
const (
	LayerSolid = "solid"
	LayerStep  = "step"
	LayerSlope = "slope"
)

// LayerFilter lists the layers a caster collides with. It is fixed per
// entity once the entity is spawned.
type LayerFilter []string

// DefaultFilter collides with all static geometry.
var DefaultFilter = LayerFilter{LayerSolid}

// Matches reports whether any of layers is in the filter.
func (f LayerFilter) Matches(layers []string) bool {
	for _, want := range f {
		for _, l := range layers {
			if l == want {
				return true
			}
		}
	}
	return false
}

// Collider is a static convex obstacle in world space.
type Collider struct {
	ID     EntityID
	Shape  geom.Polygon
	Layers []string
}
