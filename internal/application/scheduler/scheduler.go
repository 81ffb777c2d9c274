// Package scheduler runs per-tick callbacks in fixed phases and keeps the
// simulation clock.
package scheduler

// Phase orders callbacks within a tick. Update callbacks run before physics.
type Phase int

const (
	PhaseUpdate Phase = iota
	PhasePhysics
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseUpdate:
		return "update"
	case PhasePhysics:
		return "physics"
	default:
		return "unknown"
	}
}

// Callback receives the tick delta in seconds.
type Callback func(dt float64)

// Handle identifies a registration. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle Handle
	cb     Callback
	dead   bool
}

// Scheduler invokes registered callbacks once per tick, phase by phase, in
// registration order.
type Scheduler struct {
	phases  [phaseCount][]entry
	pending [phaseCount][]entry // registered mid-tick
	index   map[Handle]Phase
	next    Handle
	now     float64
	ticks   uint64
	ticking bool
}

// New creates an empty scheduler with the clock at zero.
func New() *Scheduler {
	return &Scheduler{
		index: make(map[Handle]Phase),
		next:  1,
	}
}

// Register adds cb to phase. Callbacks registered during a tick first run on
// the next tick, whatever their phase.
func (s *Scheduler) Register(phase Phase, cb Callback) Handle {
	if phase < 0 || phase >= phaseCount || cb == nil {
		return 0
	}
	h := s.next
	s.next++
	e := entry{handle: h, cb: cb}
	if s.ticking {
		s.pending[phase] = append(s.pending[phase], e)
	} else {
		s.phases[phase] = append(s.phases[phase], e)
	}
	s.index[h] = phase
	return h
}

// Unregister removes a registration. It is safe to call from inside a
// callback; the removed callback does not run again, even later in the same
// tick. It reports whether h was registered.
func (s *Scheduler) Unregister(h Handle) bool {
	phase, ok := s.index[h]
	if !ok {
		return false
	}
	delete(s.index, h)

	for i, e := range s.pending[phase] {
		if e.handle == h {
			s.pending[phase] = append(s.pending[phase][:i], s.pending[phase][i+1:]...)
			return true
		}
	}

	list := s.phases[phase]
	for i := range list {
		if list[i].handle != h {
			continue
		}
		if s.ticking {
			list[i].dead = true
		} else {
			s.phases[phase] = append(list[:i], list[i+1:]...)
		}
		break
	}
	return true
}

// Tick runs every phase and then advances the clock by dt.
func (s *Scheduler) Tick(dt float64) {
	s.ticking = true
	for p := range s.phases {
		for i := range s.phases[p] {
			e := s.phases[p][i]
			if e.dead {
				continue
			}
			e.cb(dt)
		}
	}
	s.ticking = false
	s.compact()

	s.now += dt
	s.ticks++
}

func (s *Scheduler) compact() {
	for p := range s.phases {
		list := s.phases[p][:0]
		for _, e := range s.phases[p] {
			if !e.dead {
				list = append(list, e)
			}
		}
		s.phases[p] = append(list, s.pending[p]...)
		s.pending[p] = nil
	}
}

// Now returns the simulation time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Ticks returns how many ticks have run.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Len returns the number of live callbacks in phase.
func (s *Scheduler) Len(phase Phase) int {
	if phase < 0 || phase >= phaseCount {
		return 0
	}
	n := len(s.pending[phase])
	for _, e := range s.phases[phase] {
		if !e.dead {
			n++
		}
	}
	return n
}
