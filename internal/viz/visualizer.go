package viz

import (
	"time"

	"github.com/iburimskiy/brainwave-visualizer/internal/loop"
	"go.uber.org/zap"
)

// FrameScheduler is the host's repaint primitive.
type FrameScheduler interface {
	Request(fn loop.FrameFunc) loop.Handle
	Cancel(h loop.Handle)
}

// Visualizer keeps an Animator repainting a surface for as long as it is
// mounted.
type Visualizer struct {
	anim   *Animator
	sched  FrameScheduler
	log    *zap.Logger
	inputs Inputs

	surface Surface
	handle  loop.Handle
	mounted bool
	skipped int
}

// NewVisualizer returns an unmounted visualizer. A nil log discards output.
func NewVisualizer(sched FrameScheduler, anim *Animator, log *zap.Logger) *Visualizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Visualizer{
		anim:  anim,
		sched: sched,
		log:   log,
	}
}

// Mount starts the repaint loop on s. Mounting again swaps the surface.
func (v *Visualizer) Mount(s Surface) {
	v.surface = s
	if v.mounted {
		return
	}
	v.mounted = true
	v.handle = v.sched.Request(v.frame)
	v.log.Debug("visualizer mounted")
}

// Unmount cancels the pending repaint. Safe to call repeatedly.
func (v *Visualizer) Unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	v.sched.Cancel(v.handle)
	v.handle = 0
	v.surface = nil
	v.log.Debug("visualizer unmounted", zap.Int("skipped_frames", v.skipped))
}

// SetInputs replaces the animation inputs. Stopping playback resets the
// animation state right away.
func (v *Visualizer) SetInputs(in Inputs) {
	if v.inputs.Playing && !in.Playing {
		v.anim.Stop()
	}
	v.inputs = in
}

// Inputs returns the inputs the next frame will use.
func (v *Visualizer) Inputs() Inputs {
	return v.inputs
}

// Animator returns the animator being driven.
func (v *Visualizer) Animator() *Animator {
	return v.anim
}

// Mounted reports whether the repaint loop is running.
func (v *Visualizer) Mounted() bool {
	return v.mounted
}

func (v *Visualizer) frame(time.Duration) {
	if !v.mounted {
		return
	}
	if v.surface == nil || !v.anim.Frame(v.surface, v.inputs) {
		v.skipped++
		if v.skipped == 1 {
			v.log.Debug("surface not ready, skipping frame")
		}
	}
	v.handle = v.sched.Request(v.frame)
}
