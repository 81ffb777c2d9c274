package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinematic/internal/application/system"
	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
	"github.com/younwookim/kinematic/internal/infrastructure/collision"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
)

func createTestResolver(t *testing.T) *Resolver {
	src, err := os.ReadFile(filepath.Join("..", "..", "..", "cmd", "sandbox", "configs", "scripts", "drift.tengo"))
	require.NoError(t, err)
	r, err := NewResolver(src)
	require.NoError(t, err)
	return r
}

func TestResolver_Drift(t *testing.T) {
	r := createTestResolver(t)
	var _ system.CustomResolver = r

	tests := []struct {
		name     string
		grounded bool
		facing   entity.Side
		in       geom.Vec
		want     geom.Vec
	}{
		{"grounded passes through", true, entity.SideRight, geom.Vec{X: 2, Y: -1}, geom.Vec{X: 2, Y: -1}},
		{"airborne drifts right", false, entity.SideRight, geom.Vec{X: 2, Y: -1}, geom.Vec{X: 2.5, Y: -1}},
		{"airborne drifts left", false, entity.SideLeft, geom.Vec{X: 0, Y: 3}, geom.Vec{X: -0.5, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := entity.NewBody(geom.Vec{X: 10, Y: 20}, geom.Rect(-1, 0, 2, 2), entity.CollisionCustom)
			body.Grounded = tt.grounded
			body.Facing = tt.facing

			got := r.Resolve(body, tt.in)
			assert.NoError(t, r.Err())
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestNewResolver_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", "out_x := "},
		{"unknown variable", "out_x := nope\nout_y := 0"},
		{"missing output", "x := vx"},
		{"division by zero in dry run", "out_x := 1 / (facing - facing)\nout_y := 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver([]byte(tt.src))
			assert.Error(t, err)
		})
	}

	_, err := NewResolver([]byte("out_x := vx"))
	assert.ErrorIs(t, err, ErrMissingOutput)
}

func TestResolver_MathModule(t *testing.T) {
	r, err := NewResolver([]byte("math := import(\"math\")\nout_x := math.abs(vx)\nout_y := vy"))
	require.NoError(t, err)

	got := r.Resolve(entity.NewBody(geom.Zero, geom.Rect(0, 0, 1, 1), entity.CollisionCustom), geom.Vec{X: -3, Y: 1})
	assert.Equal(t, geom.Vec{X: 3, Y: 1}, got)
}

func TestResolver_RuntimeError(t *testing.T) {
	r, err := NewResolver([]byte("out_x := vx\nout_y := vy\nif vx > 100 { out_x = 1 / (facing - facing) }"))
	require.NoError(t, err)
	body := entity.NewBody(geom.Zero, geom.Rect(0, 0, 1, 1), entity.CollisionCustom)

	got := r.Resolve(body, geom.Vec{X: 200})
	assert.Equal(t, geom.Zero, got)
	assert.Error(t, r.Err())

	got = r.Resolve(body, geom.Vec{X: 5})
	assert.Equal(t, geom.Vec{X: 5}, got)
	assert.NoError(t, r.Err(), "a successful run clears the error")
}

func TestResolver_Clone(t *testing.T) {
	r := createTestResolver(t)
	c := r.Clone()
	body := entity.NewBody(geom.Zero, geom.Rect(0, 0, 1, 1), entity.CollisionCustom)

	assert.Equal(t, geom.Vec{X: 2.5, Y: 0}, c.Resolve(body, geom.Vec{X: 2}))
	assert.Equal(t, geom.Vec{X: 1.5, Y: 0}, r.Resolve(body, geom.Vec{X: 1}))
}

func TestResolver_DrivesMover(t *testing.T) {
	space := collision.NewSpace(cp.BB{L: -64, B: -64, R: 256, T: 256}, 16)
	space.Add(&entity.Collider{ID: 1, Shape: geom.Rect(40, 0, 16, 100), Layers: []string{entity.LayerSolid}})

	body := entity.NewBody(geom.Vec{X: 20, Y: 10}, geom.Rect(-2, 0, 4, 4), entity.CollisionCustom)
	mover, err := system.NewMover(body, system.NewCaster(space, entity.DefaultFilter), config.DefaultMoverSettings())
	require.NoError(t, err)
	mover.SetCustomResolver(createTestResolver(t))

	mover.AddInstantForce(geom.Vec{X: 5})
	mover.Move(1.0 / 60)
	assert.InDelta(t, 25.5, body.Position.X, 1e-9)

	mover.AddInstantForce(geom.Vec{X: 100})
	mover.Move(1.0 / 60)
	assert.InDelta(t, 37.99, body.Position.X, 1e-9, "the scripted move stops at the wall")
}
