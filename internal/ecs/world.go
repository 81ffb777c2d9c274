// Package ecs hosts movers and controllers in a donburi world, drives them
// through the scheduler and forwards their motion events.
package ecs

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/younwookim/kinematic/internal/application/scheduler"
	"github.com/younwookim/kinematic/internal/application/system"
	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
)

// BodySpec describes a body to spawn.
type BodySpec struct {
	Position geom.Vec
	Shape    geom.Polygon
	System   entity.CollisionSystem
	Filter   entity.LayerFilter     // nil collides with entity.DefaultFilter
	Resolver system.CustomResolver // used by entity.CollisionCustom
}

// PlayerSpec describes a controlled body.
type PlayerSpec struct {
	BodySpec
	Attributes *config.Attributes
	Input      system.InputSource
}

// World owns the donburi world, the obstacle set and the scheduler that
// steps every spawned entity.
type World struct {
	ecs       donburi.World
	obstacles system.Obstacles
	sched     *scheduler.Scheduler
	settings  config.MoverSettings
}

// NewWorld creates a world moving bodies through obstacles.
func NewWorld(obstacles system.Obstacles, settings config.MoverSettings) *World {
	return &World{
		ecs:       donburi.NewWorld(),
		obstacles: obstacles,
		sched:     scheduler.New(),
		settings:  settings,
	}
}

// Donburi returns the underlying donburi world.
func (w *World) Donburi() donburi.World { return w.ecs }

// Scheduler returns the scheduler stepping the world.
func (w *World) Scheduler() *scheduler.Scheduler { return w.sched }

// Now returns the simulation time.
func (w *World) Now() float64 { return w.sched.Now() }

// SpawnBody creates an uncontrolled body that only moves by the forces
// applied to its mover.
func (w *World) SpawnBody(spec BodySpec) (donburi.Entity, error) {
	mover, err := w.newMover(spec, w.settings)
	if err != nil {
		return 0, err
	}

	e := w.ecs.Create(Motion, Schedule)
	entry := w.ecs.Entry(e)
	Motion.SetValue(entry, MotionData{Mover: mover})
	w.bind(entry, mover)

	Schedule.SetValue(entry, ScheduleData{
		Physics: w.sched.Register(scheduler.PhasePhysics, mover.Move),
	})
	return e, nil
}

// SpawnPlayer validates spec and creates a controlled body. A spec that
// fails validation creates nothing.
func (w *World) SpawnPlayer(spec PlayerSpec) (donburi.Entity, error) {
	if spec.Attributes == nil {
		return 0, fmt.Errorf("failed to spawn player: %w", system.ErrMissingAttributes)
	}
	mover, err := w.newMover(spec.BodySpec, spec.Attributes.ApplyTo(w.settings))
	if err != nil {
		return 0, err
	}
	ctrl, err := system.NewController(mover, spec.Attributes, spec.Input, w.sched)
	if err != nil {
		return 0, fmt.Errorf("failed to spawn player: %w", err)
	}

	e := w.ecs.Create(Motion, Input, Schedule, PlayerTag)
	entry := w.ecs.Entry(e)
	Motion.SetValue(entry, MotionData{Mover: mover, Controller: ctrl})
	Input.SetValue(entry, InputData{Source: spec.Input})
	w.bind(entry, mover)

	Schedule.SetValue(entry, ScheduleData{
		Update:  w.sched.Register(scheduler.PhaseUpdate, ctrl.Update),
		Physics: w.sched.Register(scheduler.PhasePhysics, mover.Move),
	})
	return e, nil
}

func (w *World) newMover(spec BodySpec, settings config.MoverSettings) (*system.Mover, error) {
	if w.obstacles == nil {
		return nil, fmt.Errorf("failed to spawn body: %w", system.ErrMissingObstacles)
	}
	filter := spec.Filter
	if filter == nil {
		filter = entity.DefaultFilter
	}

	body := entity.NewBody(spec.Position, spec.Shape, spec.System)
	mover, err := system.NewMover(body, system.NewCaster(w.obstacles, filter), settings)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn body: %w", err)
	}
	mover.SetCustomResolver(spec.Resolver)
	return mover, nil
}

func (w *World) bind(entry *donburi.Entry, mover *system.Mover) {
	e := entry.Entity()
	mover.SetNotifier(system.NotifierFunc(func(evt system.Event) {
		MotionEventType.Publish(w.ecs, MotionEvent{Entity: e, Event: evt})
	}))
}

// Destroy releases the scheduler registrations of e and removes it. It
// reports whether e was alive.
func (w *World) Destroy(e donburi.Entity) bool {
	if !w.ecs.Valid(e) {
		return false
	}
	entry := w.ecs.Entry(e)
	if entry.HasComponent(Schedule) {
		handles := Schedule.Get(entry)
		w.sched.Unregister(handles.Update)
		w.sched.Unregister(handles.Physics)
	}
	w.ecs.Remove(e)
	return true
}

// Step advances every entity by dt: controllers first, then movers. Motion
// events published during the step are delivered afterwards.
func (w *World) Step(dt float64) {
	w.sched.Tick(dt)
	MotionEventType.ProcessEvents(w.ecs)
}

// OnMotion subscribes fn to motion events.
func (w *World) OnMotion(fn func(MotionEvent)) {
	MotionEventType.Subscribe(w.ecs, func(_ donburi.World, evt MotionEvent) {
		fn(evt)
	})
}

// Player returns the first controlled entity.
func (w *World) Player() (*donburi.Entry, bool) {
	return PlayerTag.First(w.ecs)
}

// Mover returns the mover of e.
func (w *World) Mover(e donburi.Entity) (*system.Mover, bool) {
	data, ok := w.motion(e)
	if !ok {
		return nil, false
	}
	return data.Mover, true
}

// Controller returns the controller of e. Uncontrolled bodies have none.
func (w *World) Controller(e donburi.Entity) (*system.Controller, bool) {
	data, ok := w.motion(e)
	if !ok || data.Controller == nil {
		return nil, false
	}
	return data.Controller, true
}

func (w *World) motion(e donburi.Entity) (*MotionData, bool) {
	if !w.ecs.Valid(e) {
		return nil, false
	}
	entry := w.ecs.Entry(e)
	if !entry.HasComponent(Motion) {
		return nil, false
	}
	return Motion.Get(entry), true
}

// Bodies returns every spawned body.
func (w *World) Bodies() []*entity.Body {
	var out []*entity.Body
	Motion.Each(w.ecs, func(entry *donburi.Entry) {
		out = append(out, Motion.Get(entry).Mover.Body())
	})
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.ecs.Len()
}
