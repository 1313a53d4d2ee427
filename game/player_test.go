package game

import (
	"testing"
)

func newTestPlayer(cfg *Config) *PlayerAircraft {
	return NewPlayerAircraft(cfg.CanvasWidth/2, cfg.CanvasHeight-100, cfg, NewBulletPool(cfg))
}

func TestPlayerClampedToCanvas(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	p.VX = -10000
	p.VY = -10000
	p.Move(1.0)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("expected clamp to top-left corner, got (%f, %f)", p.X, p.Y)
	}

	p.VX = 10000
	p.VY = 10000
	p.Move(1.0)
	if p.X != cfg.CanvasWidth-p.W || p.Y != cfg.CanvasHeight-p.H {
		t.Errorf("expected clamp to bottom-right corner, got (%f, %f)", p.X, p.Y)
	}
}

func TestPlayerDiagonalSpeedNormalized(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	in := InputState{Pressed: map[string]bool{"ArrowRight": true, "ArrowDown": true}}
	p.SetVelocityFromInput(in)

	speed := p.VX*p.VX + p.VY*p.VY
	want := p.Speed * p.Speed
	if diff := speed - want; diff > 1 || diff < -1 {
		t.Errorf("diagonal speed must equal base speed: got %f want %f", speed, want)
	}
}

func TestPlayerFireRateCooldown(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	if got := p.Fire(1000); len(got) != 1 {
		t.Fatalf("first shot should fire, got %d bullets", len(got))
	}
	if got := p.Fire(1050); got != nil {
		t.Errorf("shot 50ms later must be blocked, got %d bullets", len(got))
	}
	if got := p.Fire(1250); len(got) != 1 {
		t.Errorf("shot 250ms later should fire, got %d bullets", len(got))
	}
}

func TestPlayerFireScalesWithWeaponLevel(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	cases := []struct {
		level int
		want  int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
	}
	now := 0.0
	for _, tc := range cases {
		p.WeaponLevel = tc.level
		now += cfg.FireRateMs + 1
		if got := p.Fire(now); len(got) != tc.want {
			t.Errorf("level %d: expected %d bullets, got %d", tc.level, tc.want, len(got))
		}
	}
}

func TestPlayerWeaponUpgradeCapped(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	for i := 0; i < 10; i++ {
		p.UpgradeWeapon()
	}
	if p.WeaponLevel != 3 {
		t.Errorf("weapon level must cap at 3, got %d", p.WeaponLevel)
	}
	p.ResetWeapon()
	if p.WeaponLevel != 1 {
		t.Errorf("reset must return to level 1, got %d", p.WeaponLevel)
	}
}

func TestPlayerDamageGrantsInvincibility(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	p.Damage(10)
	if p.Health != cfg.PlayerMaxHealth-10 {
		t.Errorf("expected health %d, got %d", cfg.PlayerMaxHealth-10, p.Health)
	}
	if !p.Invincible {
		t.Fatal("non-fatal damage must grant invincibility")
	}

	p.Damage(10)
	if p.Health != cfg.PlayerMaxHealth-10 {
		t.Error("damage while invincible must be ignored")
	}

	// The window is 1500ms; two seconds clears it.
	p.Update(2.0)
	if p.Invincible {
		t.Error("invincibility must expire")
	}
	p.Damage(10)
	if p.Health != cfg.PlayerMaxHealth-20 {
		t.Errorf("damage after expiry should apply, health=%d", p.Health)
	}
}

func TestPlayerFatalDamageDeactivates(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	p.Damage(cfg.PlayerMaxHealth)
	if p.Health != 0 {
		t.Errorf("health must floor at 0, got %d", p.Health)
	}
	if p.IsActive() {
		t.Error("fatal damage must deactivate the player")
	}
}

func TestPlayerHealCapped(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	p.Damage(30)
	p.Heal(1000)
	if p.Health != p.MaxHealth {
		t.Errorf("heal must cap at max health, got %d", p.Health)
	}
}

func TestPlayerShieldBlocksDamage(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)

	p.GrantShield()
	p.Damage(50)
	if p.Health != p.MaxHealth {
		t.Errorf("shield must block damage, health=%d", p.Health)
	}

	// Shield lasts 5s.
	p.Update(6.0)
	p.Damage(50)
	if p.Health != p.MaxHealth-50 {
		t.Errorf("damage after shield expiry should apply, health=%d", p.Health)
	}
}

func TestPowerUpApplyIdempotent(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(cfg)
	pu := NewPowerUp(PowerWeaponUpgrade, 0, 0, cfg)

	pu.Apply(p)
	pu.Apply(p)

	if p.WeaponLevel != 2 {
		t.Errorf("power-up must apply exactly once, weapon level=%d", p.WeaponLevel)
	}
	if pu.IsActive() {
		t.Error("applied power-up must deactivate")
	}
}

func TestPowerUpDeactivatesOffCanvas(t *testing.T) {
	cfg := testConfig()
	pu := NewPowerUp(PowerHealth, 10, cfg.CanvasHeight-1, cfg)

	pu.Update(1.0) // falls 100px past the bottom
	if pu.IsActive() {
		t.Error("power-up below the canvas must deactivate")
	}
}

func TestBulletDeactivatesOffCanvas(t *testing.T) {
	cfg := testConfig()
	pool := NewBulletPool(cfg)

	b := pool.Acquire(OwnerPlayer, 10, 5, 0, -500)
	b.Update(1.0)
	if b.IsActive() {
		t.Error("bullet fully above the canvas must deactivate")
	}

	b2 := pool.Acquire(OwnerPlayer, 10, 100, 0, -10)
	b2.Update(0.016)
	if !b2.IsActive() {
		t.Error("bullet inside the canvas must stay active")
	}
}
