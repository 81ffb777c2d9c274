package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_PhaseOrder(t *testing.T) {
	s := New()
	var order []string

	s.Register(PhasePhysics, func(float64) { order = append(order, "physics-a") })
	s.Register(PhaseUpdate, func(float64) { order = append(order, "update-a") })
	s.Register(PhaseUpdate, func(float64) { order = append(order, "update-b") })
	s.Register(PhasePhysics, func(float64) { order = append(order, "physics-b") })

	s.Tick(0.1)

	assert.Equal(t, []string{"update-a", "update-b", "physics-a", "physics-b"}, order)
}

func TestScheduler_Clock(t *testing.T) {
	s := New()
	var seen []float64
	s.Register(PhaseUpdate, func(dt float64) { seen = append(seen, s.Now()) })

	s.Tick(0.5)
	s.Tick(0.25)

	assert.Equal(t, []float64{0, 0.5}, seen, "callbacks see the clock before it advances")
	assert.Equal(t, 0.75, s.Now())
	assert.Equal(t, uint64(2), s.Ticks())
}

func TestScheduler_Register(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		cb    Callback
		want  bool
	}{
		{"update", PhaseUpdate, func(float64) {}, true},
		{"physics", PhasePhysics, func(float64) {}, true},
		{"nil callback", PhaseUpdate, nil, false},
		{"unknown phase", Phase(7), func(float64) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			h := s.Register(tt.phase, tt.cb)
			assert.Equal(t, tt.want, h != 0)
		})
	}
}

func TestScheduler_Unregister(t *testing.T) {
	s := New()
	calls := 0
	h := s.Register(PhaseUpdate, func(float64) { calls++ })

	s.Tick(1)
	require.True(t, s.Unregister(h))
	assert.False(t, s.Unregister(h), "second unregister is a no-op")
	s.Tick(1)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len(PhaseUpdate))
}

func TestScheduler_UnregisterDuringTick(t *testing.T) {
	s := New()
	var order []string
	var second Handle

	first := s.Register(PhaseUpdate, func(float64) {
		order = append(order, "first")
		s.Unregister(second)
	})
	second = s.Register(PhaseUpdate, func(float64) { order = append(order, "second") })
	s.Register(PhasePhysics, func(float64) { order = append(order, "physics") })

	s.Tick(1)
	assert.Equal(t, []string{"first", "physics"}, order)
	assert.Equal(t, 1, s.Len(PhaseUpdate))

	t.Run("self removal", func(t *testing.T) {
		order = nil
		var self Handle
		self = s.Register(PhasePhysics, func(float64) {
			order = append(order, "self")
			s.Unregister(self)
		})

		s.Tick(1)
		s.Tick(1)

		assert.Equal(t, []string{"first", "physics", "self", "first", "physics"}, order)
		assert.True(t, s.Unregister(first))
	})
}

func TestScheduler_RegisterDuringTick(t *testing.T) {
	s := New()
	calls := 0
	s.Register(PhaseUpdate, func(float64) {
		if s.Ticks() == 0 {
			s.Register(PhaseUpdate, func(float64) { calls++ })
		}
	})

	s.Tick(1)
	assert.Equal(t, 0, calls, "new callbacks wait for the next tick")

	s.Tick(1)
	assert.Equal(t, 1, calls)
}

func TestScheduler_RegisterLaterPhaseDuringTick(t *testing.T) {
	s := New()
	calls := 0
	var h Handle
	s.Register(PhaseUpdate, func(float64) {
		if s.Ticks() == 0 {
			h = s.Register(PhasePhysics, func(float64) { calls++ })
		}
	})

	s.Tick(1)
	assert.Equal(t, 0, calls, "a physics callback added from update waits for the next tick")
	assert.Equal(t, 1, s.Len(PhasePhysics))

	s.Tick(1)
	assert.Equal(t, 1, calls)

	assert.True(t, s.Unregister(h))
	s.Tick(1)
	assert.Equal(t, 1, calls)
}

func TestScheduler_UnregisterPendingDuringTick(t *testing.T) {
	s := New()
	calls := 0
	s.Register(PhaseUpdate, func(float64) {
		if s.Ticks() == 0 {
			h := s.Register(PhasePhysics, func(float64) { calls++ })
			s.Unregister(h)
		}
	})

	s.Tick(1)
	s.Tick(1)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, s.Len(PhasePhysics))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "update", PhaseUpdate.String())
	assert.Equal(t, "physics", PhasePhysics.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
