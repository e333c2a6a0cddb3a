package playback

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/walksim/internal/logging"
	"github.com/san-kum/walksim/internal/walk"
)

// Session ties a builder to a controller: every parameter or mode change
// rebuilds the trajectory once and reloads the controller.
type Session struct {
	mu      sync.Mutex
	builder *walk.Builder
	ctrl    *Controller
	params  walk.Params
	logger  *slog.Logger
}

func NewSession(b *walk.Builder, c *Controller, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{builder: b, ctrl: c, logger: logger}
}

func (s *Session) Controller() *Controller { return s.ctrl }

func (s *Session) Params() walk.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *Session) Mode() walk.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builder.Mode()
}

// SetParams coerces the step count, stops the running playback, builds a
// new trajectory and loads it. When the build fails the previous
// trajectory stays loaded, paused.
func (s *Session) SetParams(ctx context.Context, p walk.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Steps = walk.ClampSteps(p.Steps)
	return s.rebuild(ctx, s.builder, p)
}

// SetMode switches the presented statistic and rebuilds with the current params.
func (s *Session) SetMode(ctx context.Context, mode walk.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rebuild(ctx, s.builder.WithMode(mode), s.params)
}

// Regenerate draws a fresh trajectory for the current params.
func (s *Session) Regenerate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rebuild(ctx, s.builder, s.params)
}

func (s *Session) rebuild(ctx context.Context, b *walk.Builder, p walk.Params) error {
	s.ctrl.Pause()

	traj, err := b.Build(ctx, p)
	if err != nil {
		s.logger.Error("trajectory build failed", "kind", p.Kind, "steps", p.Steps, "err", err)
		return fmt.Errorf("rebuild trajectory: %w", err)
	}

	s.builder = b
	s.params = p
	s.ctrl.Load(traj)
	s.logger.Info("trajectory rebuilt", "kind", p.Kind, "steps", p.Steps, "mode", b.Mode(), "mean", traj.Mean)
	return nil
}
