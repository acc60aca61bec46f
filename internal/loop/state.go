package loop

import (
	"fmt"

	"github.com/tomz197/collisions/internal/config"
	"github.com/tomz197/collisions/internal/input"
	"github.com/tomz197/collisions/internal/world"
)

// State holds the interactive session: the running world plus the
// shell-only flags the core never sees.
type State struct {
	World   *world.World
	Config  config.Config
	Input   input.Input
	Paused  bool
	Running bool
}

// NewState creates a session with a freshly populated world.
func NewState(cfg config.Config, seed uint64) (*State, error) {
	w, err := world.New(cfg, seed)
	if err != nil {
		return nil, fmt.Errorf("populate world: %w", err)
	}
	return &State{
		World:   w,
		Config:  cfg,
		Running: true,
	}, nil
}

// Restart replaces the world with one generated from the next seed.
func (s *State) Restart() error {
	w, err := world.New(s.Config, s.World.Seed()+1)
	if err != nil {
		return fmt.Errorf("restart world: %w", err)
	}
	s.World = w
	return nil
}

// ApplyInput updates the session flags from this frame's keys.
// It reports whether a restart was requested.
func (s *State) ApplyInput(in input.Input) (restart bool) {
	s.Input = in
	if in.Quit {
		s.Running = false
		return false
	}
	if in.Pause {
		s.Paused = !s.Paused
	}
	return in.Restart
}

// ShouldAdvance reports whether the world steps this frame.
func (s *State) ShouldAdvance() bool {
	if !s.Running {
		return false
	}
	return !s.Paused || s.Input.Step
}
