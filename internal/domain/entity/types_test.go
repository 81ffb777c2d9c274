package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStage() *Stage {
	wall := Tile{Type: TileWall, Solid: true}
	empty := Tile{Type: TileEmpty}
	step := Tile{Type: TileStep, Solid: true}
	slope := Tile{Type: TileSlopeUpRight, Solid: true}

	tiles := [][]Tile{
		{wall, empty, empty, empty},
		{wall, step, slope, empty},
		{wall, wall, wall, wall},
	}

	return &Stage{
		Width:    4,
		Height:   3,
		TileSize: 16,
		Tiles:    tiles,
		SpawnX:   24,
		SpawnY:   8,
	}
}

func TestStage_GetTile(t *testing.T) {
	stage := createTestStage()

	tests := []struct {
		name      string
		tx, ty    int
		wantType  TileType
		wantSolid bool
	}{
		{"top-left wall", 0, 0, TileWall, true},
		{"top-center empty", 1, 0, TileEmpty, false},
		{"step", 1, 1, TileStep, true},
		{"slope", 2, 1, TileSlopeUpRight, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := stage.GetTile(tt.tx, tt.ty)
			assert.Equal(t, tt.wantType, tile.Type)
			assert.Equal(t, tt.wantSolid, tile.Solid)
		})
	}
}

func TestStage_GetTile_OutOfBounds(t *testing.T) {
	stage := createTestStage()

	outOfBoundsCases := []struct {
		name   string
		tx, ty int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x too large", 10, 0},
		{"y too large", 0, 10},
	}

	for _, tc := range outOfBoundsCases {
		t.Run(tc.name, func(t *testing.T) {
			tile := stage.GetTile(tc.tx, tc.ty)
			assert.Equal(t, TileWall, tile.Type, "out of bounds should be wall")
			assert.True(t, tile.Solid)
		})
	}
}

func TestStage_WorldSpawn(t *testing.T) {
	stage := createTestStage()
	spawn := stage.WorldSpawn()
	assert.Equal(t, 24.0, spawn.X)
	assert.Equal(t, 40.0, spawn.Y, "48px tall stage, 8px from the top")
}

func TestStage_Colliders(t *testing.T) {
	stage := createTestStage()
	colliders := stage.Colliders()

	// left column wall (2 cells), step, slope, merged bottom row
	require.Len(t, colliders, 5)

	ids := map[EntityID]bool{}
	for _, c := range colliders {
		assert.Contains(t, c.Layers, LayerSolid)
		ids[c.ID] = true
	}
	assert.Len(t, ids, 5, "collider ids are unique")

	floor := colliders[4]
	bb := floor.Shape.Bounds()
	assert.Equal(t, 0.0, bb.L)
	assert.Equal(t, 64.0, bb.R, "bottom row merges into one run")
	assert.Equal(t, 0.0, bb.B)
	assert.Equal(t, 16.0, bb.T)

	step := colliders[2]
	assert.Contains(t, step.Layers, LayerStep)
	stepBB := step.Shape.Bounds()
	assert.Equal(t, 16.0, stepBB.B)
	assert.Equal(t, 24.0, stepBB.T, "steps are half a tile tall")

	slope := colliders[3]
	assert.Contains(t, slope.Layers, LayerSlope)
	assert.Len(t, slope.Shape, 3)
}
