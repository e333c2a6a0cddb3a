package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/walksim/internal/walk"
)

const (
	MinInterval     = time.Millisecond
	MaxInterval     = time.Second
	DefaultInterval = 50 * time.Millisecond
)

var (
	// ErrInvalidInterval indicates a non-positive tick interval.
	ErrInvalidInterval = errors.New("playback: interval must be positive")

	// ErrNoTrajectory indicates a command issued before any trajectory was loaded.
	ErrNoTrajectory = errors.New("playback: no trajectory loaded")
)

// Mode is the playback state.
type Mode int

const (
	Idle Mode = iota
	Playing
	Paused
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// State is a snapshot of the controller.
type State struct {
	Cursor   int
	Steps    int
	Mode     Mode
	Interval time.Duration
}

// Frame is delivered to observers on every transition. Points is the
// revealed prefix Trajectory[0..Cursor]; it aliases the immutable
// trajectory and must not be modified.
type Frame struct {
	Points     []walk.Point
	Cursor     int
	Steps      int
	Mode       Mode
	Params     walk.Params
	Presenting walk.Mode
	Mean       float64
}

// Done reports whether the whole trajectory has been revealed.
func (f Frame) Done() bool { return f.Cursor >= f.Steps }

// Observer is the rendering collaborator. OnFrame runs while the
// controller is locked, so it must not call back into the controller.
type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

// Timer is a handle to one scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ClockScheduler schedules on the wall clock with time.AfterFunc.
func ClockScheduler() Scheduler { return clockScheduler{} }

// ClampInterval coerces a user supplied millisecond interval into [MinInterval, MaxInterval].
func ClampInterval(ms int) time.Duration {
	d := time.Duration(ms) * time.Millisecond
	if d < MinInterval {
		return MinInterval
	}
	if d > MaxInterval {
		return MaxInterval
	}
	return d
}
