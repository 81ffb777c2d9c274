package system

// Event is a fire-and-forget motion notification for animation and audio.
type Event int

const (
	EventJump Event = iota
	EventWallJump
	EventLanded
	EventLeftGround
	EventWallStuck
	EventSlide
	EventStartMoving
	EventStopMoving
	EventFacingChanged
	EventMoveToReached
	EventMoveToBlocked
)

var eventNames = [...]string{
	EventJump:          "jump",
	EventWallJump:      "wallJump",
	EventLanded:        "landed",
	EventLeftGround:    "leftGround",
	EventWallStuck:     "wallStuck",
	EventSlide:         "slide",
	EventStartMoving:   "startMoving",
	EventStopMoving:    "stopMoving",
	EventFacingChanged: "facingChanged",
	EventMoveToReached: "moveToReached",
	EventMoveToBlocked: "moveToBlocked",
}

func (e Event) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Notifier receives motion events.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(e Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

// EventLog records events in order. Useful for tests and replays.
type EventLog struct {
	Events []Event
}

// Notify appends e.
func (l *EventLog) Notify(e Event) {
	l.Events = append(l.Events, e)
}

// Count returns how many times e was recorded.
func (l *EventLog) Count(e Event) int {
	n := 0
	for _, got := range l.Events {
		if got == e {
			n++
		}
	}
	return n
}

// Reset clears the log.
func (l *EventLog) Reset() {
	l.Events = l.Events[:0]
}
