package game

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameOverState shows the run summary and routes to a restart or the menu.
type GameOverState struct {
	cfg     *Config
	logger  *log.Logger
	machine *Machine
	score   *ScoreSystem

	finalScore int
	accuracy   float64
	newBest    bool
	holdT      float64
}

// NewGameOverState creates the summary screen.
func NewGameOverState(cfg *Config, machine *Machine, score *ScoreSystem, logger *log.Logger) *GameOverState {
	return &GameOverState{
		cfg:     cfg,
		logger:  logger.With("component", "gameover"),
		machine: machine,
		score:   score,
	}
}

// Type identifies the state.
func (s *GameOverState) Type() StateType { return StateGameOver }

// Enter snapshots the run summary before any restart resets the engine.
func (s *GameOverState) Enter() {
	s.finalScore = s.score.FinalScore()
	s.accuracy = s.score.Accuracy()
	// The accuracy bonus is a run summary; the persisted high score tracks
	// the raw score.
	s.newBest = s.score.Score() > 0 && s.score.Score() >= s.score.HighScore()
	s.holdT = 0
	s.score.SaveHighScore()
	s.logger.Info("run over", "score", s.finalScore, "accuracy", s.accuracy)
}

// Exit is a no-op.
func (s *GameOverState) Exit() {}

// HandleInput restarts on Enter, returns to the menu on Escape. A short
// hold window swallows input so the death keypress never restarts a run.
func (s *GameOverState) HandleInput(in InputState) {
	if s.holdT < 0.5 {
		return
	}
	if in.IsJustPressed("Enter") || in.IsJustPressed("Space") {
		s.machine.ChangeState(StatePlaying)
		return
	}
	if in.IsJustPressed("Escape") {
		s.machine.ChangeState(StateMenu)
	}
}

// Update advances the input hold window.
func (s *GameOverState) Update(dt float64) { s.holdT += dt }

// Render draws the summary.
func (s *GameOverState) Render(dst *ebiten.Image) {
	dst.Fill(color.RGBA{24, 8, 8, 255})

	w := s.cfg.CanvasWidth
	midY := int(s.cfg.CanvasHeight / 2)
	drawTextCentered(dst, "GAME OVER", w, midY-60, color.RGBA{255, 60, 60, 255})
	drawTextCentered(dst, fmt.Sprintf("SCORE %d", s.finalScore), w, midY-24, color.RGBA{255, 255, 255, 255})
	drawTextCentered(dst, fmt.Sprintf("ACCURACY %.0f%%", s.accuracy), w, midY-6, color.RGBA{180, 180, 180, 255})
	if s.newBest {
		drawTextCentered(dst, "NEW HIGH SCORE!", w, midY+18, color.RGBA{255, 220, 0, 255})
	} else {
		drawTextCentered(dst, fmt.Sprintf("HIGH %d", s.score.HighScore()), w, midY+18, color.RGBA{180, 180, 180, 255})
	}
	if s.holdT >= 0.5 {
		drawTextCentered(dst, "ENTER RESTART   ESC MENU", w, midY+54, color.RGBA{255, 255, 255, 255})
	}
}
