package game

import (
	"testing"
)

func TestCheckAllEventOrder(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	engine := NewCollisionEngine(testLogger())

	player := NewPlayerAircraft(100, 100, cfg, w.bullets)
	enemy := w.enemies.Acquire(EnemyBasic, 100, 100, player)
	playerBullet := w.bullets.Acquire(OwnerPlayer, 100, 100, 0, -100)
	enemyBullet := w.bullets.Acquire(OwnerEnemy, 100, 100, 0, 100)
	powerUp := NewPowerUp(PowerHealth, 100, 100, cfg)

	events := engine.CheckAll(player,
		[]*EnemyAircraft{enemy},
		[]*Bullet{playerBullet, enemyBullet},
		[]*PowerUp{powerUp})

	want := []CollisionEventKind{EventBulletEnemy, EventBulletPlayer, EventPlayerEnemy, EventPlayerPowerUp}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, kind := range want {
		if events[i].Kind != kind {
			t.Errorf("event %d: expected %v, got %v", i, kind, events[i].Kind)
		}
	}
}

func TestCheckAllFiltersBulletOwner(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	engine := NewCollisionEngine(testLogger())

	player := NewPlayerAircraft(100, 100, cfg, w.bullets)
	enemy := w.enemies.Acquire(EnemyBasic, 300, 300, player)

	// Enemy bullet on the enemy, player bullet on the player: neither may
	// produce an event.
	enemyBullet := w.bullets.Acquire(OwnerEnemy, 300, 300, 0, 100)
	playerBullet := w.bullets.Acquire(OwnerPlayer, 100, 100, 0, -100)

	events := engine.CheckAll(player,
		[]*EnemyAircraft{enemy},
		[]*Bullet{enemyBullet, playerBullet},
		nil)

	if len(events) != 0 {
		t.Errorf("friendly fire must be filtered out, got %d events", len(events))
	}
}

func TestCheckAllSkipsInactiveParticipants(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	engine := NewCollisionEngine(testLogger())

	player := NewPlayerAircraft(100, 100, cfg, w.bullets)
	enemy := w.enemies.Acquire(EnemyBasic, 100, 100, player)
	enemy.Deactivate()

	events := engine.CheckAll(player, []*EnemyAircraft{enemy}, nil, nil)
	if len(events) != 0 {
		t.Errorf("inactive participants must not collide, got %d events", len(events))
	}
}

func TestProcessBulletHitsEnemy(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	engine := NewCollisionEngine(testLogger())

	enemy := w.enemies.Acquire(EnemyBasic, 100, 100, nil)
	bullet := w.bullets.Acquire(OwnerPlayer, 100, 100, 0, -100)

	events := engine.CheckAll(nil, []*EnemyAircraft{enemy}, []*Bullet{bullet}, nil)
	engine.Process(events)

	if enemy.Health != enemyConfigFor(EnemyBasic).Health-bullet.Damage {
		t.Errorf("enemy should take bullet damage, health=%d", enemy.Health)
	}
	if bullet.IsActive() {
		t.Error("bullet must deactivate on impact")
	}
}

func TestProcessRamDamagesBothSides(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	engine := NewCollisionEngine(testLogger())

	player := NewPlayerAircraft(100, 100, cfg, w.bullets)
	enemy := w.enemies.Acquire(EnemyShooter, 100, 100, player)

	events := engine.CheckAll(player, []*EnemyAircraft{enemy}, nil, nil)
	engine.Process(events)

	if player.Health != player.MaxHealth-cfg.EnemyContactDamage {
		t.Errorf("player should take contact damage, health=%d", player.Health)
	}
	if enemy.Health != enemyConfigFor(EnemyShooter).Health-cfg.EnemyContactDamage {
		t.Errorf("enemy should take contact damage, health=%d", enemy.Health)
	}
}

func TestBasicEnemyDiesToTwoBullets(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	engine := NewCollisionEngine(testLogger())

	enemy := w.enemies.Acquire(EnemyBasic, 100, 100, nil)

	for i := 0; i < 2; i++ {
		bullet := w.bullets.Acquire(OwnerPlayer, 100, 100, 0, -100)
		events := engine.CheckAll(nil, []*EnemyAircraft{enemy}, []*Bullet{bullet}, nil)
		engine.Process(events)
	}

	if !enemy.Destroyed() {
		t.Error("basic enemy (20 hp) must die to two 10-damage bullets")
	}
	if enemy.IsActive() {
		t.Error("destroyed enemy must be inactive")
	}
}

func TestListenerPanicIsolated(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	engine := NewCollisionEngine(testLogger())

	enemy := w.enemies.Acquire(EnemyBasic, 100, 100, nil)
	bulletA := w.bullets.Acquire(OwnerPlayer, 100, 100, 0, -100)
	bulletB := w.bullets.Acquire(OwnerPlayer, 102, 102, 0, -100)

	engine.AddListener(EventBulletEnemy, func(ev CollisionEvent) { panic("listener boom") })
	calls := 0
	engine.AddListener(EventBulletEnemy, func(ev CollisionEvent) { calls++ })

	events := engine.CheckAll(nil, []*EnemyAircraft{enemy}, []*Bullet{bulletA, bulletB}, nil)
	engine.Process(events)

	if calls != len(events) {
		t.Errorf("a panicking listener must not starve the others: got %d calls for %d events", calls, len(events))
	}
}

func TestRemoveListener(t *testing.T) {
	engine := NewCollisionEngine(testLogger())

	calls := 0
	id := engine.AddListener(EventBulletEnemy, func(ev CollisionEvent) { calls++ })
	engine.RemoveListener(EventBulletEnemy, id)

	cfg := testConfig()
	w := newTestWorld(cfg)
	enemy := w.enemies.Acquire(EnemyBasic, 100, 100, nil)
	bullet := w.bullets.Acquire(OwnerPlayer, 100, 100, 0, -100)
	events := engine.CheckAll(nil, []*EnemyAircraft{enemy}, []*Bullet{bullet}, nil)
	engine.Process(events)

	if calls != 0 {
		t.Errorf("removed listener must not fire, got %d calls", calls)
	}
}
