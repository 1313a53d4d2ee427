package game

import (
	"testing"
)

func TestEnemyConfigTable(t *testing.T) {
	cases := []struct {
		typ    EnemyType
		health int
		score  int
		fires  bool
	}{
		{EnemyBasic, 20, 10, false},
		{EnemyShooter, 40, 25, true},
		{EnemyZigzag, 30, 20, false},
		{EnemyBoss, 500, 500, true},
	}
	for _, tc := range cases {
		tcfg := enemyConfigFor(tc.typ)
		if tcfg.Health != tc.health {
			t.Errorf("%v: expected health %d, got %d", tc.typ, tc.health, tcfg.Health)
		}
		if tcfg.ScoreValue != tc.score {
			t.Errorf("%v: expected score %d, got %d", tc.typ, tc.score, tcfg.ScoreValue)
		}
		if fires := tcfg.FireCooldown > 0; fires != tc.fires {
			t.Errorf("%v: expected fires=%v", tc.typ, tc.fires)
		}
	}
}

func TestEnemyDamageDeactivatesOnce(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)

	e := w.enemies.Acquire(EnemyBasic, 100, 100, nil)
	e.Damage(1000)

	if !e.Destroyed() || e.IsActive() {
		t.Fatal("lethal damage must destroy and deactivate")
	}
	if e.Health != 0 {
		t.Errorf("health must floor at 0, got %d", e.Health)
	}

	// Further damage on a dead enemy changes nothing.
	e.Damage(50)
	if e.Health != 0 {
		t.Error("damage after death must be ignored")
	}
}

func TestEnemyDeactivatesBelowCanvas(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)

	e := w.enemies.Acquire(EnemyBasic, 100, cfg.CanvasHeight-1, nil)
	e.Update(1.0) // basic falls 120px

	if e.IsActive() {
		t.Error("enemy below the bottom edge must deactivate")
	}
	if e.Destroyed() {
		t.Error("leaving the canvas is not a kill")
	}
}

func TestZigzagSwaysHorizontally(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)

	e := w.enemies.Acquire(EnemyZigzag, 100, 50, nil)
	sawLeft, sawRight := false, false
	for i := 0; i < 120; i++ {
		e.Update(0.016)
		if e.VX < -1 {
			sawLeft = true
		}
		if e.VX > 1 {
			sawRight = true
		}
	}
	if !sawLeft || !sawRight {
		t.Errorf("zigzag must sway both ways: left=%v right=%v", sawLeft, sawRight)
	}
}

func TestShooterFiresOnCooldown(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)

	e := w.enemies.Acquire(EnemyShooter, 100, 50, nil)
	w.reg.Add(e)

	// 1.6s exceeds the 1.5s cooldown once.
	for i := 0; i < 100; i++ {
		w.reg.Update(0.016)
	}

	bullets := w.reg.ByKind(KindEnemyBullet)
	if len(bullets) != 1 {
		t.Errorf("expected exactly 1 enemy bullet after one cooldown, got %d", len(bullets))
	}
}

func TestBasicNeverFires(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)

	e := w.enemies.Acquire(EnemyBasic, 100, 0, nil)
	w.reg.Add(e)
	for i := 0; i < 100; i++ {
		w.reg.Update(0.016)
	}
	if n := len(w.reg.ByKind(KindEnemyBullet)); n != 0 {
		t.Errorf("basic enemies never fire, got %d bullets", n)
	}
}

func TestBossFallbackPatternWithoutScript(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)

	boss := w.enemies.Acquire(EnemyBoss, 100, 0, nil)
	// No script wired: the boss descends first, then holds a hover line.
	for i := 0; i < 600; i++ {
		boss.Update(0.016)
	}
	if boss.Y < 50 {
		t.Errorf("boss should have descended to the hover line, y=%f", boss.Y)
	}
	if !boss.IsActive() {
		t.Error("boss must stay on canvas under the fallback pattern")
	}
}

func TestBossScriptedPatternDescends(t *testing.T) {
	cfg := testConfig()
	logger := testLogger()
	reg := NewRegistry(logger)
	bullets := NewBulletPool(cfg)
	enemies := NewEnemyPool(cfg, EnemyDeps{
		Bullets: bullets,
		World:   reg,
		Script:  NewScriptRunner(),
	}, logger)

	boss := enemies.Acquire(EnemyBoss, 100, 0, nil)
	startY := boss.Y
	boss.Update(0.1)
	if boss.Y <= startY {
		t.Errorf("scripted boss above the hover line must descend, y=%f", boss.Y)
	}
	if boss.scriptBroken {
		t.Error("built-in boss script must execute cleanly")
	}
}
