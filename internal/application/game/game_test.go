package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinematic/internal/application/scene"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	updateCalled  int
	drawCalled    int
	onEnterCalled int
	onExitCalled  int
	nextScene     scene.Scene
	updateErr     error
	quitAfter     int // returns scene.ErrQuit on this update when > 0
	lastDT        float64
}

func (m *mockScene) Update(dt float64) (scene.Scene, error) {
	m.updateCalled++
	m.lastDT = dt
	if m.quitAfter > 0 && m.updateCalled >= m.quitAfter {
		return nil, scene.ErrQuit
	}
	return m.nextScene, m.updateErr
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled++
}

func (m *mockScene) OnEnter() {
	m.onEnterCalled++
}

func (m *mockScene) OnExit() {
	m.onExitCalled++
}

func TestNew(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, 320, 240)

	assert.NotNil(t, g)
	assert.Equal(t, 1, mockInitial.onEnterCalled, "OnEnter should be called on initial scene")
	assert.Equal(t, scene.Scene(mockInitial), g.Current())
}

func TestGame_Update_DelegatesToCurrentScene(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, 320, 240)
	g.SetDT(0.5)

	err := g.Update()
	assert.NoError(t, err)
	assert.Equal(t, 1, mockInitial.updateCalled, "Update should delegate to current scene")
	assert.Equal(t, 0.5, mockInitial.lastDT)
	assert.Equal(t, 1, g.Frames())
}

func TestGame_Draw_DelegatesToCurrentScene(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, 320, 240)

	img := ebiten.NewImage(320, 240)
	g.Draw(img)

	assert.Equal(t, 1, mockInitial.drawCalled, "Draw should delegate to current scene")
}

func TestGame_Layout(t *testing.T) {
	g := New(&mockScene{}, 320, 240)

	w, h := g.Layout(640, 480)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestGame_SceneTransition(t *testing.T) {
	scene1 := &mockScene{}
	scene2 := &mockScene{}
	scene1.nextScene = scene2

	g := New(scene1, 320, 240)

	require.NoError(t, g.Update())
	assert.Equal(t, 1, scene1.updateCalled)
	assert.Equal(t, 1, scene1.onExitCalled, "scene1 OnExit called on transition")
	assert.Equal(t, 1, scene2.onEnterCalled, "scene2 OnEnter called on transition")

	require.NoError(t, g.Update())
	assert.Equal(t, 1, scene2.updateCalled, "scene2 Update called")
}

func TestGame_UpdateErrors(t *testing.T) {
	tests := []struct {
		name  string
		scene *mockScene
		want  error
	}{
		{"scene error propagates", &mockScene{updateErr: assert.AnError}, assert.AnError},
		{"quit terminates", &mockScene{quitAfter: 1}, ebiten.Termination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.scene, 320, 240)
			assert.ErrorIs(t, g.Update(), tt.want)
			assert.Equal(t, 0, g.Frames())
		})
	}
}

func TestGame_RunHeadless(t *testing.T) {
	t.Run("until quit", func(t *testing.T) {
		s := &mockScene{quitAfter: 4}
		g := New(s, 320, 240)

		require.NoError(t, g.RunHeadless(0))
		assert.Equal(t, 4, s.updateCalled)
		assert.Equal(t, 3, g.Frames())
		assert.Equal(t, 1, s.onExitCalled)
		assert.Equal(t, 0, s.drawCalled)
	})

	t.Run("frame limit", func(t *testing.T) {
		s := &mockScene{}
		g := New(s, 320, 240)

		require.NoError(t, g.RunHeadless(10))
		assert.Equal(t, 10, s.updateCalled)
	})

	t.Run("error", func(t *testing.T) {
		g := New(&mockScene{updateErr: assert.AnError}, 320, 240)
		assert.ErrorIs(t, g.RunHeadless(5), assert.AnError)
	})
}
