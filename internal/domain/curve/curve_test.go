package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRamp() Curve {
	return MustNew(
		Keyframe{Time: 0, Value: 0},
		Keyframe{Time: 0.5, Value: 100},
		Keyframe{Time: 1, Value: 200},
	)
}

func TestCurve_Evaluate(t *testing.T) {
	c := createTestRamp()

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"before start clamps", -1, 0},
		{"start", 0, 0},
		{"first segment midpoint", 0.25, 50},
		{"keyframe", 0.5, 100},
		{"second segment", 0.75, 150},
		{"end", 1, 200},
		{"after end clamps", 3, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.Evaluate(tt.t), 1e-3)
		})
	}
}

func TestCurve_UnsortedKeysAreSorted(t *testing.T) {
	c := MustNew(Keyframe{Time: 1, Value: 10}, Keyframe{Time: 0, Value: 0})
	assert.Equal(t, 1.0, c.Duration())
	assert.Equal(t, 10.0, c.LastValue())
	assert.InDelta(t, 5, c.Evaluate(0.5), 1e-3)
}

func TestCurve_Easing(t *testing.T) {
	c := MustNew(Keyframe{Time: 0, Value: 0}, Keyframe{Time: 1, Value: 1, Ease: "outQuad"})
	// out-quad is ahead of linear in the middle of the segment
	assert.Greater(t, c.Evaluate(0.5), 0.5)
	assert.InDelta(t, 1, c.Evaluate(1), 1e-6)
}

func TestCurve_UnknownEasing(t *testing.T) {
	_, err := New(Keyframe{Time: 0, Value: 0, Ease: "bouncy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bouncy")
}

func TestCurve_EmptyAndConstant(t *testing.T) {
	var empty Curve
	assert.True(t, empty.Empty())
	assert.Equal(t, 0.0, empty.Evaluate(1))
	assert.Equal(t, 0.0, empty.Duration())

	c := Constant(7)
	assert.False(t, c.Empty())
	assert.Equal(t, 7.0, c.Evaluate(-5))
	assert.Equal(t, 7.0, c.Evaluate(5))
}

func TestCurve_TimeOf(t *testing.T) {
	c := createTestRamp()
	assert.Equal(t, 0.0, c.TimeOf(-10))
	assert.InDelta(t, 0.25, c.TimeOf(50), 1e-3)
	assert.InDelta(t, 0.75, c.TimeOf(150), 1e-3)
	assert.Equal(t, 1.0, c.TimeOf(500))
}
