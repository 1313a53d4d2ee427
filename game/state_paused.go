package game

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// pauseGate is the slice of the driver the paused state needs: stop the
// simulation clock on entry, re-baseline it on exit.
type pauseGate interface {
	Pause()
	Resume()
}

// PausedState freezes the simulation and overlays the pause text. The
// playing field keeps rendering underneath, frozen.
type PausedState struct {
	cfg     *Config
	logger  *log.Logger
	machine *Machine
	playing *PlayingState
	gate    pauseGate
}

// NewPausedState creates the pause screen over the given playing state.
func NewPausedState(cfg *Config, machine *Machine, playing *PlayingState, gate pauseGate, logger *log.Logger) *PausedState {
	return &PausedState{
		cfg:     cfg,
		logger:  logger.With("component", "paused"),
		machine: machine,
		playing: playing,
		gate:    gate,
	}
}

// Type identifies the state.
func (s *PausedState) Type() StateType { return StatePaused }

// Enter stops the simulation clock.
func (s *PausedState) Enter() { s.gate.Pause() }

// Exit restarts the clock from now, so pause time never reaches dt.
func (s *PausedState) Exit() { s.gate.Resume() }

// HandleInput resumes on Escape/P, abandons to the menu on Q.
func (s *PausedState) HandleInput(in InputState) {
	if in.IsJustPressed("Escape") || in.IsJustPressed("P") {
		s.playing.MarkResume()
		s.machine.ChangeState(StatePlaying)
		return
	}
	if in.IsJustPressed("Q") {
		s.machine.ChangeState(StateMenu)
	}
}

// Update is a no-op; the simulation is frozen.
func (s *PausedState) Update(dt float64) {}

// Render draws the frozen field with the pause overlay.
func (s *PausedState) Render(dst *ebiten.Image) {
	s.playing.Render(dst)

	w := s.cfg.CanvasWidth
	midY := int(s.cfg.CanvasHeight / 2)
	drawTextCentered(dst, "PAUSED", w, midY, color.RGBA{255, 255, 255, 255})
	drawTextCentered(dst, "ESC RESUME   Q QUIT TO MENU", w, midY+24, color.RGBA{180, 180, 180, 255})
}
