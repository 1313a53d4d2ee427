package game

import (
	"image/color"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlayingState runs the simulation: registry, pools, collision, spawning
// and scoring. Entering fresh resets the run; entering from pause resumes
// with score, health and field intact.
type PlayingState struct {
	cfg     *Config
	logger  *log.Logger
	machine *Machine
	audio   *AudioEngine
	sprites *SpriteSet
	rng     *rand.Rand

	registry  *Registry
	bullets   *BulletPool
	enemies   *EnemyPool
	collision *CollisionEngine
	spawner   *Spawner
	score     *ScoreSystem
	hud       *HUD

	player *PlayerAircraft

	nowMs      float64
	resuming   bool
	bossWarned bool

	// credited guards against double-counting a kill when several bullets
	// overlap the same enemy in one frame.
	credited map[uuid.UUID]struct{}
}

// NewPlayingState wires the gameplay subsystems together.
func NewPlayingState(cfg *Config, machine *Machine, audio *AudioEngine, sprites *SpriteSet, score *ScoreSystem, rng *rand.Rand, logger *log.Logger) *PlayingState {
	s := &PlayingState{
		cfg:      cfg,
		logger:   logger.With("component", "playing"),
		machine:  machine,
		audio:    audio,
		sprites:  sprites,
		rng:      rng,
		score:    score,
		hud:      NewHUD(cfg),
		credited: make(map[uuid.UUID]struct{}),
	}

	s.registry = NewRegistry(logger)
	s.bullets = NewBulletPool(cfg)
	s.enemies = NewEnemyPool(cfg, EnemyDeps{
		Bullets: s.bullets,
		World:   s.registry,
		Script:  NewScriptRunner(),
		Sprites: sprites,
	}, logger)
	s.collision = NewCollisionEngine(logger)
	s.spawner = NewSpawner(cfg, s.enemies, rng, logger)

	// Swept entities go back to their pools.
	s.registry.SetEvictFunc(func(e Entity) {
		switch obj := e.(type) {
		case *Bullet:
			s.bullets.retain(obj)
		case *EnemyAircraft:
			s.enemies.retain(obj)
		}
	})

	s.bullets.Prewarm(32)
	s.enemies.Prewarm(16)
	s.registerListeners()
	return s
}

// registerListeners wires scoring, drops, boss cadence and sounds to
// collision events.
func (s *PlayingState) registerListeners() {
	s.collision.AddListener(EventBulletEnemy, func(ev CollisionEvent) {
		enemy, ok := ev.B.(*EnemyAircraft)
		if !ok {
			return
		}
		s.score.RecordHit()
		if !enemy.Destroyed() {
			s.audio.Play(SoundHit)
			return
		}
		if _, seen := s.credited[enemy.ID()]; seen {
			return
		}
		s.credited[enemy.ID()] = struct{}{}

		s.score.AddScore(enemy.ScoreValue, s.nowMs)
		s.audio.Play(SoundExplosion)
		if enemy.Type == EnemyBoss {
			s.spawner.OnBossDefeated()
		}
		s.spawner.RecordEnemyDestroyed(s.registry)
		s.spawner.TrySpawnPowerUp(enemy.X+enemy.W/2-powerUpSize/2, enemy.Y, s.registry)
	})

	s.collision.AddListener(EventBulletPlayer, func(ev CollisionEvent) {
		s.audio.Play(SoundHit)
	})
	s.collision.AddListener(EventPlayerEnemy, func(ev CollisionEvent) {
		s.audio.Play(SoundHit)
	})
	s.collision.AddListener(EventPlayerPowerUp, func(ev CollisionEvent) {
		s.audio.Play(SoundPowerUp)
	})
}

// Type identifies the state.
func (s *PlayingState) Type() StateType { return StatePlaying }

// MarkResume makes the next Enter skip the run reset. The paused state
// calls this before transitioning back.
func (s *PlayingState) MarkResume() { s.resuming = true }

// Enter starts a fresh run unless resuming from pause.
func (s *PlayingState) Enter() {
	if s.resuming {
		s.resuming = false
		s.audio.PlayMusic()
		return
	}
	s.resetRun()
	s.audio.PlayMusic()
}

// Exit keeps the field intact so a pause can resume into it.
func (s *PlayingState) Exit() {
	s.audio.StopMusic()
}

// resetRun clears the field and rebuilds the player.
func (s *PlayingState) resetRun() {
	for _, e := range s.registry.All() {
		s.registry.Remove(e.ID())
	}
	s.spawner.Reset()
	s.score.Reset()
	s.nowMs = 0
	s.bossWarned = false
	clear(s.credited)

	s.player = NewPlayerAircraft(
		(s.cfg.CanvasWidth-s.cfg.PlayerWidth)/2,
		s.cfg.CanvasHeight-s.cfg.PlayerHeight-20,
		s.cfg, s.bullets)
	s.player.SetSprite(s.sprites.Player)
	s.registry.Add(s.player)
	s.spawner.SetTarget(s.player)
	s.logger.Info("new run started", "highScore", s.score.HighScore())
}

// HandleInput steers the player, fires, and handles pause/mute.
func (s *PlayingState) HandleInput(in InputState) {
	if in.IsJustPressed("Escape") || in.IsJustPressed("P") {
		s.machine.ChangeState(StatePaused)
		return
	}
	if in.IsJustPressed("M") {
		s.audio.ToggleMute()
	}
	if s.player == nil || !s.player.IsActive() {
		return
	}
	s.player.SetVelocityFromInput(in)
	if in.IsPressed("Space") || in.PointerDown {
		if fired := s.player.Fire(s.nowMs); len(fired) > 0 {
			for _, b := range fired {
				s.registry.Add(b)
			}
			s.score.RecordShots(len(fired))
			s.audio.Play(SoundShoot)
		}
	}
}

// Update advances one simulation step.
func (s *PlayingState) Update(dt float64) {
	s.nowMs += dt * 1000
	clear(s.credited)

	s.registry.Update(dt)
	s.spawner.Update(dt, s.registry)

	if s.spawner.BossActive() && !s.bossWarned {
		s.bossWarned = true
		s.audio.Play(SoundBossWarning)
	}
	if !s.spawner.BossActive() {
		s.bossWarned = false
	}

	var (
		enemyList  []*EnemyAircraft
		bulletList []*Bullet
		powerList  []*PowerUp
	)
	for _, e := range s.registry.All() {
		switch obj := e.(type) {
		case *EnemyAircraft:
			enemyList = append(enemyList, obj)
		case *Bullet:
			bulletList = append(bulletList, obj)
		case *PowerUp:
			powerList = append(powerList, obj)
		}
	}
	events := s.collision.CheckAll(s.player, enemyList, bulletList, powerList)
	s.collision.Process(events)

	if s.player != nil && !s.player.IsActive() {
		s.score.SaveHighScore()
		s.audio.Play(SoundGameOver)
		s.machine.ChangeState(StateGameOver)
	}
}

// Render draws the field then the HUD.
func (s *PlayingState) Render(dst *ebiten.Image) {
	dst.Fill(color.RGBA{8, 8, 24, 255})
	s.registry.Render(dst)
	if s.player != nil {
		s.hud.Render(dst, s.player, s.score, s.spawner)
	}
}

// Score exposes the run's score engine to sibling states.
func (s *PlayingState) Score() *ScoreSystem { return s.score }

// PoolStats reports (player bullets, enemy bullets) reuse counters; used by
// the debug overlay.
func (s *PlayingState) PoolStats() (PoolStats, PoolStats) { return s.bullets.Stats() }
