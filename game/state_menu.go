package game

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// MenuState is the title screen.
type MenuState struct {
	cfg     *Config
	logger  *log.Logger
	machine *Machine
	audio   *AudioEngine
	score   *ScoreSystem

	blinkT float64
}

// NewMenuState creates the title screen.
func NewMenuState(cfg *Config, machine *Machine, audio *AudioEngine, score *ScoreSystem, logger *log.Logger) *MenuState {
	return &MenuState{
		cfg:     cfg,
		logger:  logger.With("component", "menu"),
		machine: machine,
		audio:   audio,
		score:   score,
	}
}

// Type identifies the state.
func (s *MenuState) Type() StateType { return StateMenu }

// Enter resets the prompt blink.
func (s *MenuState) Enter() { s.blinkT = 0 }

// Exit is a no-op.
func (s *MenuState) Exit() {}

// HandleInput starts a run on Enter or Space, toggles mute on M.
func (s *MenuState) HandleInput(in InputState) {
	if in.IsJustPressed("M") {
		s.audio.ToggleMute()
	}
	if in.IsJustPressed("Enter") || in.IsJustPressed("Space") || in.PointerDown {
		s.machine.ChangeState(StatePlaying)
	}
}

// Update advances the prompt blink.
func (s *MenuState) Update(dt float64) { s.blinkT += dt }

// Render draws the title, high score and start prompt.
func (s *MenuState) Render(dst *ebiten.Image) {
	dst.Fill(color.RGBA{8, 8, 24, 255})

	w := s.cfg.CanvasWidth
	midY := int(s.cfg.CanvasHeight / 2)
	drawTextCentered(dst, "S K Y S T R I K E", w, midY-60, color.RGBA{0, 255, 128, 255})
	if high := s.score.HighScore(); high > 0 {
		drawTextCentered(dst, fmt.Sprintf("HIGH SCORE %d", high), w, midY-30, color.RGBA{180, 180, 180, 255})
	}
	if int(s.blinkT*2)%2 == 0 {
		drawTextCentered(dst, "PRESS ENTER TO START", w, midY+20, color.RGBA{255, 255, 255, 255})
	}
	drawTextCentered(dst, "ARROWS/WASD MOVE  SPACE FIRE  ESC PAUSE  M MUTE", w, midY+60, color.RGBA{120, 120, 140, 255})
}
