package viz

import (
	"testing"

	"github.com/iburimskiy/brainwave-visualizer/internal/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualizerRepaintsWhileMounted(t *testing.T) {
	sched := loop.NewScheduler()
	v := NewVisualizer(sched, NewAnimator(fixedRand(0.99)), nil)
	s := newRecorder(200, 100)

	v.SetInputs(Inputs{Playing: true, Style: "ballad", Intensity: 60})
	v.Mount(s)
	for i := 0; i < 4; i++ {
		require.Equal(t, 1, sched.Tick(0))
	}
	assert.Equal(t, 4, s.washes)
	assert.Equal(t, 4, v.Animator().FrameCount())
	assert.Len(t, s.curves, 8)
}

func TestVisualizerUnmountStopsCallbacks(t *testing.T) {
	sched := loop.NewScheduler()
	v := NewVisualizer(sched, NewAnimator(fixedRand(0.99)), nil)
	s := newRecorder(200, 100)
	v.Mount(s)
	sched.Tick(0)

	v.Unmount()
	v.Unmount()
	assert.False(t, v.Mounted())
	assert.Zero(t, sched.Pending())
	assert.Zero(t, sched.Tick(0))
	assert.Equal(t, 1, s.washes)
}

func TestVisualizerKeepsLoopWhenSurfaceNotReady(t *testing.T) {
	sched := loop.NewScheduler()
	v := NewVisualizer(sched, NewAnimator(fixedRand(0.99)), nil)
	s := newRecorder(200, 100)
	s.notReady = true
	v.SetInputs(Inputs{Playing: true, Intensity: 50})
	v.Mount(s)

	sched.Tick(0)
	sched.Tick(0)
	assert.Equal(t, 1, sched.Pending())
	assert.Zero(t, v.Animator().FrameCount())

	s.notReady = false
	sched.Tick(0)
	assert.Equal(t, 1, v.Animator().FrameCount())
}

func TestVisualizerStopClearsStateImmediately(t *testing.T) {
	sched := loop.NewScheduler()
	v := NewVisualizer(sched, NewAnimator(fixedRand(0)), nil)
	s := newRecorder(200, 100)
	v.SetInputs(Inputs{Playing: true, Intensity: 100})
	v.Mount(s)
	for i := 0; i < 3; i++ {
		sched.Tick(0)
	}
	require.NotEmpty(t, v.Animator().Particles())

	v.SetInputs(Inputs{Playing: false, Intensity: 100})
	assert.Zero(t, v.Animator().FrameCount())
	assert.Empty(t, v.Animator().Particles())

	s.reset()
	sched.Tick(0)
	assert.Equal(t, 1, s.washes)
	assert.Empty(t, s.curves)
	assert.Zero(t, s.circles)
}

func TestVisualizerRemountDoesNotDoubleSubscribe(t *testing.T) {
	sched := loop.NewScheduler()
	v := NewVisualizer(sched, NewAnimator(fixedRand(0.99)), nil)
	first, second := newRecorder(100, 50), newRecorder(100, 50)

	v.Mount(first)
	v.Mount(second)
	assert.Equal(t, 1, sched.Pending())
	sched.Tick(0)
	assert.Zero(t, first.washes)
	assert.Equal(t, 1, second.washes)
}

func TestVisualizerAccessors(t *testing.T) {
	sched := loop.NewScheduler()
	anim := NewAnimator(fixedRand(0.99))
	v := NewVisualizer(sched, anim, nil)
	assert.Same(t, anim, v.Animator())
	assert.False(t, v.Mounted())

	in := Inputs{Playing: true, Style: "rock", Intensity: 30}
	v.SetInputs(in)
	assert.Equal(t, in, v.Inputs())

	v.Mount(newRecorder(50, 50))
	assert.True(t, v.Mounted())
	sched.Tick(0)
	assert.Equal(t, 1, anim.FrameCount())
	v.Unmount()
}
