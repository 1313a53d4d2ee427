package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var hudFace = basicfont.Face7x13

// drawText draws a single line with the HUD face, anchored at the baseline.
func drawText(dst *ebiten.Image, str string, x, y int, clr color.Color) {
	text.Draw(dst, str, hudFace, x, y, clr)
}

// drawTextCentered draws a single line horizontally centered on the canvas.
func drawTextCentered(dst *ebiten.Image, str string, canvasW float64, y int, clr color.Color) {
	bounds := text.BoundString(hudFace, str)
	x := int(canvasW/2) - bounds.Dx()/2
	text.Draw(dst, str, hudFace, x, y, clr)
}

// HUD draws the in-play overlay: score, health bar, weapon and difficulty.
type HUD struct {
	cfg *Config
}

// NewHUD creates the overlay renderer.
func NewHUD(cfg *Config) *HUD { return &HUD{cfg: cfg} }

// Render draws the play overlay from the live gameplay collaborators.
func (h *HUD) Render(dst *ebiten.Image, player *PlayerAircraft, score *ScoreSystem, spawner *Spawner) {
	white := color.RGBA{255, 255, 255, 255}
	drawText(dst, fmt.Sprintf("SCORE %d", score.Score()), 8, 16, white)
	drawText(dst, fmt.Sprintf("HIGH  %d", score.HighScore()), 8, 30, color.RGBA{180, 180, 180, 255})

	rightX := int(h.cfg.CanvasWidth) - 110
	drawText(dst, fmt.Sprintf("LVL %d", spawner.Difficulty()), rightX, 16, white)
	drawText(dst, fmt.Sprintf("WPN %d", player.WeaponLevel), rightX, 30, white)
	if combo := score.ComboCount(); combo >= h.cfg.ComboThreshold {
		drawText(dst, fmt.Sprintf("COMBO x%d", combo), rightX, 44, color.RGBA{255, 220, 0, 255})
	}

	h.renderHealthBar(dst, player)

	if spawner.BossActive() {
		drawTextCentered(dst, "!! BOSS !!", h.cfg.CanvasWidth, 24, color.RGBA{255, 60, 60, 255})
	}
}

// renderHealthBar draws the player health bar along the bottom edge.
func (h *HUD) renderHealthBar(dst *ebiten.Image, player *PlayerAircraft) {
	barW := float32(h.cfg.CanvasWidth) - 16
	barY := float32(h.cfg.CanvasHeight) - 14
	frac := float32(player.Health) / float32(player.MaxHealth)
	vector.DrawFilledRect(dst, 8, barY, barW, 6, color.RGBA{60, 60, 60, 255}, true)
	clr := color.RGBA{0, 220, 80, 255}
	if frac < 0.3 {
		clr = color.RGBA{220, 40, 40, 255}
	}
	vector.DrawFilledRect(dst, 8, barY, barW*frac, 6, clr, true)
}
