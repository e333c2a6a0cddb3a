package viz

import (
	"sync"

	"github.com/san-kum/walksim/internal/playback"
)

// FrameSink is an observer that keeps the most recent frame for a UI that
// redraws on its own clock. It never blocks the controller.
type FrameSink struct {
	mu     sync.Mutex
	latest playback.Frame
	have   bool
	count  int
}

func NewFrameSink() *FrameSink { return &FrameSink{} }

func (s *FrameSink) OnFrame(f playback.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = f
	s.have = true
	s.count++
}

// Latest returns the last frame delivered and whether any was.
func (s *FrameSink) Latest() (playback.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.have
}

// Count is the number of frames delivered so far.
func (s *FrameSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
