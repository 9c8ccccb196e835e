package loop

import (
	"context"
	"sync"
	"time"
)

// FrameFunc is invoked once per repaint with the host's elapsed time.
type FrameFunc func(now time.Duration)

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

// Scheduler queues one-shot repaint callbacks, like a browser's animation frame
// queue. Callbacks requested while a tick is running go to the following tick.
type Scheduler struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]FrameFunc
	order   []Handle
	start   time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: map[Handle]FrameFunc{},
		start:   time.Now(),
	}
}

// Request queues fn for the next tick.
func (s *Scheduler) Request(fn FrameFunc) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.pending[h] = fn
	s.order = append(s.order, h)
	return h
}

// Cancel drops a pending request. Unknown or already fired handles are ignored.
func (s *Scheduler) Cancel(h Handle) {
	s.mu.Lock()
	delete(s.pending, h)
	s.mu.Unlock()
}

// Pending reports how many callbacks will run on the next tick.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Tick runs every callback queued before the call and returns how many ran.
func (s *Scheduler) Tick(now time.Duration) int {
	s.mu.Lock()
	order := s.order
	s.order = nil
	batch := make([]FrameFunc, 0, len(order))
	for _, h := range order {
		if fn, ok := s.pending[h]; ok {
			batch = append(batch, fn)
			delete(s.pending, h)
		}
	}
	s.mu.Unlock()

	for _, fn := range batch {
		fn(now)
	}
	return len(batch)
}

// Elapsed is the time since the scheduler was created.
func (s *Scheduler) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Run ticks the scheduler every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick(s.Elapsed())
		}
	}
}
