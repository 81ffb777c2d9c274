package collision

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
)

func createTestSpace() (*Space, *entity.Collider, *entity.Collider) {
	s := NewSpace(cp.BB{L: -100, B: -100, R: 400, T: 400}, 16)
	floor := &entity.Collider{ID: 1, Shape: geom.Rect(0, 0, 200, 16), Layers: []string{entity.LayerSolid}}
	step := &entity.Collider{ID: 2, Shape: geom.Rect(100, 16, 16, 8), Layers: []string{entity.LayerSolid, entity.LayerStep}}
	s.Add(step)
	s.Add(floor)
	return s, floor, step
}

func TestSpace_Query(t *testing.T) {
	s, floor, step := createTestSpace()

	tests := []struct {
		name   string
		bb     cp.BB
		filter entity.LayerFilter
		want   []*entity.Collider
	}{
		{"above everything", cp.BB{L: 0, B: 50, R: 20, T: 70}, entity.DefaultFilter, nil},
		{"touching floor", cp.BB{L: 10, B: 15, R: 20, T: 30}, entity.DefaultFilter, []*entity.Collider{floor}},
		{"over the step sorted by id", cp.BB{L: 95, B: 10, R: 110, T: 30}, entity.DefaultFilter, []*entity.Collider{floor, step}},
		{"step layer only", cp.BB{L: 95, B: 10, R: 110, T: 30}, entity.LayerFilter{entity.LayerStep}, []*entity.Collider{step}},
		{"negative coordinates", cp.BB{L: -50, B: -50, R: 5, T: 1}, entity.DefaultFilter, []*entity.Collider{floor}},
		{"empty filter", cp.BB{L: 10, B: 15, R: 20, T: 30}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Query(tt.bb, tt.filter)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpace_Remove(t *testing.T) {
	s, floor, step := createTestSpace()
	s.Remove(step)

	got := s.Query(cp.BB{L: 95, B: 10, R: 110, T: 30}, entity.DefaultFilter)
	assert.Equal(t, []*entity.Collider{floor}, got)
	assert.Len(t, s.Colliders(), 1)

	s.Remove(step)
	assert.Len(t, s.Colliders(), 1, "removing twice is a no-op")
}

func TestNewStageSpace(t *testing.T) {
	wall := entity.Tile{Type: entity.TileWall, Solid: true}
	empty := entity.Tile{Type: entity.TileEmpty}
	stage := &entity.Stage{
		Width:    3,
		Height:   2,
		TileSize: 16,
		Tiles: [][]entity.Tile{
			{empty, empty, empty},
			{wall, wall, wall},
		},
	}

	s := NewStageSpace(stage)
	require.Len(t, s.Colliders(), 1)

	got := s.Query(cp.BB{L: 20, B: 10, R: 30, T: 20}, entity.DefaultFilter)
	require.Len(t, got, 1)
	assert.Equal(t, 48.0, got[0].Shape.Bounds().R)
}
