package game

import "testing"

func TestDefaultConfigSane(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CanvasWidth != 480 || cfg.CanvasHeight != 640 {
		t.Errorf("unexpected canvas size %fx%f", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.MinSpawnRateMs > cfg.InitialSpawnRateMs {
		t.Error("spawn rate floor must not exceed the initial rate")
	}
	if cfg.ComboMultiplier <= 1 || cfg.AccuracyBonus <= 1 {
		t.Error("bonuses must actually be bonuses")
	}
	if cfg.PowerUpDropChance <= 0 || cfg.PowerUpDropChance >= 1 {
		t.Errorf("drop chance must be a probability, got %f", cfg.PowerUpDropChance)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SKYSTRIKE_WIDTH", "800")
	t.Setenv("SKYSTRIKE_DROP_CHANCE", "0.5")
	t.Setenv("SKYSTRIKE_MUTE", "true")

	cfg := LoadConfig(testLogger())
	if cfg.CanvasWidth != 800 {
		t.Errorf("expected width override 800, got %f", cfg.CanvasWidth)
	}
	if cfg.PowerUpDropChance != 0.5 {
		t.Errorf("expected drop chance override 0.5, got %f", cfg.PowerUpDropChance)
	}
	if !cfg.Muted {
		t.Error("expected mute override")
	}
}

func TestLoadConfigMalformedEnvKeepsDefault(t *testing.T) {
	t.Setenv("SKYSTRIKE_WIDTH", "banana")

	cfg := LoadConfig(testLogger())
	if cfg.CanvasWidth != DefaultConfig().CanvasWidth {
		t.Errorf("malformed override must keep the default, got %f", cfg.CanvasWidth)
	}
}
