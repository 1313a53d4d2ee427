package game

import (
	"bytes"
	_ "embed"
	"image"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/player.svg
var playerSVG []byte

//go:embed assets/enemy.svg
var enemySVG []byte

//go:embed assets/boss.svg
var bossSVG []byte

// SpriteSet holds the rasterized aircraft sprites. A nil entry means the
// asset failed to decode and the entity falls back to a procedural shape.
type SpriteSet struct {
	Player *ebiten.Image
	Enemy  *ebiten.Image
	Boss   *ebiten.Image
}

// LoadSprites rasterizes the embedded SVG assets. Decode failures are
// logged and leave the slot nil; they never abort startup.
func LoadSprites(logger *log.Logger) *SpriteSet {
	logger = logger.With("component", "sprites")
	load := func(name string, data []byte, w, h int) *ebiten.Image {
		img, err := svgToImage(data, w, h)
		if err != nil {
			logger.Warn("sprite decode failed, using procedural shape", "asset", name, "err", err)
			return nil
		}
		return ebiten.NewImageFromImage(img)
	}
	return &SpriteSet{
		Player: load("player", playerSVG, 48, 48),
		Enemy:  load("enemy", enemySVG, 40, 40),
		Boss:   load("boss", bossSVG, 96, 72),
	}
}

// ForEnemy returns the sprite for an enemy type.
func (s *SpriteSet) ForEnemy(t EnemyType) *ebiten.Image {
	if t == EnemyBoss {
		return s.Boss
	}
	return s.Enemy
}

// svgToImage parses SVG data and rasterizes it at the given size.
func svgToImage(svgData []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
