package entity

import "github.com/younwookim/kinematic/internal/domain/geom"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileStep         // half-height block sitting on the cell floor
	TileSlopeUpRight // 45° ramp rising toward +x
	TileSlopeUpLeft  // 45° ramp rising toward -x
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// Stage represents the current stage's tile data.
// Tiles are stored top row first; the world is y-up with the bottom-left
// corner of the grid at the origin.
type Stage struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   int // pixels from the left edge
	SpawnY   int // pixels from the top edge
}

// GetTile returns the tile at the given tile coordinates
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// PixelSize returns the stage size in world units.
func (s *Stage) PixelSize() (w, h float64) {
	return float64(s.Width * s.TileSize), float64(s.Height * s.TileSize)
}

// WorldSpawn converts the top-left based spawn point to world space.
func (s *Stage) WorldSpawn() geom.Vec {
	_, h := s.PixelSize()
	return geom.Vec{X: float64(s.SpawnX), Y: h - float64(s.SpawnY)}
}

// StepHeight is the height of a TileStep block.
func (s *Stage) StepHeight() float64 {
	return float64(s.TileSize) / 2
}

// Colliders converts the grid to world-space colliders. Horizontal runs of
// walls and steps become a single rectangle so flat floors have no seams.
func (s *Stage) Colliders() []*Collider {
	var out []*Collider
	size := float64(s.TileSize)
	add := func(shape geom.Polygon, layers ...string) {
		out = append(out, &Collider{
			ID:     EntityID(len(out) + 1),
			Shape:  shape,
			Layers: append([]string{LayerSolid}, layers...),
		})
	}

	for ty := 0; ty < s.Height; ty++ {
		y := float64(s.Height-1-ty) * size
		for tx := 0; tx < s.Width; {
			tile := s.Tiles[ty][tx]
			if !tile.Solid {
				tx++
				continue
			}
			x := float64(tx) * size

			switch tile.Type {
			case TileWall, TileStep:
				run := 1
				for tx+run < s.Width {
					next := s.Tiles[ty][tx+run]
					if !next.Solid || next.Type != tile.Type {
						break
					}
					run++
				}
				w := float64(run) * size
				if tile.Type == TileStep {
					add(geom.Rect(x, y, w, s.StepHeight()), LayerStep)
				} else {
					add(geom.Rect(x, y, w, size))
				}
				tx += run
			case TileSlopeUpRight:
				add(geom.SlopeUpRight(x, y, size, size), LayerSlope)
				tx++
			case TileSlopeUpLeft:
				add(geom.SlopeUpLeft(x, y, size, size), LayerSlope)
				tx++
			default:
				tx++
			}
		}
	}
	return out
}
