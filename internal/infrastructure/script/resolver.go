// Package script runs tengo scripts as custom collision resolvers.
//
// A script reads the requested velocity and body state from the globals vx,
// vy, px, py, grounded and facing, and writes the velocity to apply into
// out_x and out_y. The result is still cast against the obstacles, so a
// script can bend a move but never push a body through geometry.
package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
)

// ErrMissingOutput is returned for scripts that never assign out_x or out_y.
var ErrMissingOutput = errors.New("script does not set out_x and out_y")

var inputs = []string{"vx", "vy", "px", "py", "grounded", "facing"}

// Resolver adapts a compiled script to system.CustomResolver.
type Resolver struct {
	compiled *tengo.Compiled
	err      error
}

// NewResolver compiles src and checks it with a dry run. Scripts may import
// the tengo math module.
func NewResolver(src []byte) (*Resolver, error) {
	s := tengo.NewScript(src)
	idle := inputValues(entity.NewBody(geom.Zero, nil, entity.CollisionCustom), geom.Zero)
	for _, name := range inputs {
		if err := s.Add(name, idle[name]); err != nil {
			return nil, fmt.Errorf("failed to declare %s: %w", name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile script: %w", err)
	}
	if err := compiled.RunContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run script: %w", err)
	}
	if !compiled.IsDefined("out_x") || !compiled.IsDefined("out_y") {
		return nil, ErrMissingOutput
	}
	return &Resolver{compiled: compiled}, nil
}

// Clone returns an independent resolver sharing the compiled bytecode, for
// use by another body.
func (r *Resolver) Clone() *Resolver {
	return &Resolver{compiled: r.compiled.Clone()}
}

// Resolve runs the script for one move. A failing script, including one
// that faults inside the VM, leaves the body in place and its error is kept
// for Err.
func (r *Resolver) Resolve(body *entity.Body, velocity geom.Vec) geom.Vec {
	values := inputValues(body, velocity)
	for _, name := range inputs {
		if err := r.compiled.Set(name, values[name]); err != nil {
			r.err = err
			return geom.Zero
		}
	}
	if err := r.compiled.RunContext(context.Background()); err != nil {
		r.err = err
		return geom.Zero
	}
	r.err = nil
	return geom.Vec{
		X: r.compiled.Get("out_x").Float(),
		Y: r.compiled.Get("out_y").Float(),
	}
}

// Err returns the error of the last Resolve, if any.
func (r *Resolver) Err() error {
	return r.err
}

func inputValues(body *entity.Body, velocity geom.Vec) map[string]any {
	return map[string]any{
		"vx":       velocity.X,
		"vy":       velocity.Y,
		"px":       body.Position.X,
		"py":       body.Position.Y,
		"grounded": body.Grounded,
		"facing":   int(body.Facing),
	}
}
