package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/younwookim/kinematic/internal/application/scheduler"
	"github.com/younwookim/kinematic/internal/application/system"
)

// MotionData binds a body to its mover and, for controlled entities, its
// controller.
type MotionData struct {
	Mover      *system.Mover
	Controller *system.Controller // nil for uncontrolled bodies
}

// InputData holds the input source driving a controller.
type InputData struct {
	Source system.InputSource
}

// ScheduleData holds the scheduler registrations of an entity so they can be
// released when it is destroyed.
type ScheduleData struct {
	Update  scheduler.Handle
	Physics scheduler.Handle
}

var (
	Motion   = donburi.NewComponentType[MotionData]()
	Input    = donburi.NewComponentType[InputData]()
	Schedule = donburi.NewComponentType[ScheduleData]()

	PlayerTag = donburi.NewTag().SetName("Player")
)

// MotionEvent is a motion notification tagged with its entity.
type MotionEvent struct {
	Entity donburi.Entity
	Event  system.Event
}

// MotionEventType carries motion events through the donburi world. Events
// are queued when published and delivered by ProcessEvents.
var MotionEventType = events.NewEventType[MotionEvent]()
