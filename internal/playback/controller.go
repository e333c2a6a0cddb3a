package playback

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/walksim/internal/logging"
	"github.com/san-kum/walksim/internal/walk"
)

// Controller reveals a trajectory one step per tick.
//
// All state is guarded by mu. Every armed timer captures the epoch it was
// armed in; cancelling or re-arming bumps the epoch, so a callback that was
// already in flight when it got cancelled finds a stale epoch and does
// nothing.
type Controller struct {
	mu        sync.Mutex
	sched     Scheduler
	observers []Observer
	logger    *slog.Logger

	traj     *walk.Trajectory
	cursor   int
	mode     Mode
	interval time.Duration

	timer Timer
	epoch uint64
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

func New(opts ...Option) *Controller {
	c := &Controller{
		sched:    ClockScheduler(),
		logger:   logging.Discard(),
		mode:     Idle,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddObserver registers o for every following transition.
func (c *Controller) AddObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Load installs a freshly built trajectory: any pending tick is cancelled
// and playback restarts from Idle at cursor 0.
func (c *Controller) Load(t *walk.Trajectory) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()
	c.traj = t
	c.cursor = 0
	c.mode = Idle
	c.logger.Debug("trajectory loaded", "kind", t.Params.Kind, "steps", t.Steps(), "mode", t.Mode)
	c.emit()
}

// Start moves Idle or Paused to Playing. At the end of the trajectory it
// stays Paused; while already Playing it does nothing.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.traj == nil {
		return ErrNoTrajectory
	}
	switch {
	case c.mode == Playing:
		return nil
	case c.cursor >= c.traj.Steps():
		if c.mode != Paused {
			c.mode = Paused
			c.emit()
		}
		return nil
	}

	c.mode = Playing
	c.logger.Debug("playback started", "cursor", c.cursor, "interval", c.interval)
	c.arm()
	c.emit()
	return nil
}

// Pause moves Playing to Paused and cancels the pending tick.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Playing {
		return
	}
	c.cancel()
	c.mode = Paused
	c.logger.Debug("playback paused", "cursor", c.cursor)
	c.emit()
}

// Toggle is the play/pause button.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	playing := c.mode == Playing
	c.mu.Unlock()

	if playing {
		c.Pause()
		return nil
	}
	return c.Start()
}

// Reset returns to Idle at cursor 0 from any state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()
	c.cursor = 0
	c.mode = Idle
	c.logger.Debug("playback reset")
	if c.traj != nil {
		c.emit()
	}
}

// SetSpeed changes the delay used from the next scheduling decision on.
// An already armed tick keeps its original delay.
func (c *Controller) SetSpeed(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidInterval, d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{Cursor: c.cursor, Mode: c.mode, Interval: c.interval}
	if c.traj != nil {
		s.Steps = c.traj.Steps()
	}
	return s
}

// Trajectory returns the loaded trajectory, or nil.
func (c *Controller) Trajectory() *walk.Trajectory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.traj
}

// Frame returns the frame observers last saw, or false before the first Load.
func (c *Controller) Frame() (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.traj == nil {
		return Frame{}, false
	}
	return c.frame(), true
}

func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch || c.mode != Playing || c.traj == nil {
		return
	}
	c.timer = nil

	n := c.traj.Steps()
	if c.cursor < n {
		c.cursor++
	}
	if c.cursor >= n {
		c.mode = Paused
		c.epoch++
		c.logger.Debug("playback finished", "steps", n)
	}
	c.emit()

	if c.mode == Playing {
		c.arm()
	}
}

// arm cancels any pending tick and schedules the next one.
func (c *Controller) arm() {
	c.cancel()
	epoch := c.epoch
	c.timer = c.sched.AfterFunc(c.interval, func() { c.tick(epoch) })
}

func (c *Controller) cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.epoch++
}

func (c *Controller) frame() Frame {
	return Frame{
		Points:     c.traj.Prefix(c.cursor),
		Cursor:     c.cursor,
		Steps:      c.traj.Steps(),
		Mode:       c.mode,
		Params:     c.traj.Params,
		Presenting: c.traj.Mode,
		Mean:       c.traj.Mean,
	}
}

func (c *Controller) emit() {
	f := c.frame()
	for _, o := range c.observers {
		o.OnFrame(f)
	}
}
