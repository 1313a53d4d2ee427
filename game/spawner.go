package game

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

// Spawner decides when and what to spawn, and how difficulty escalates
// over elapsed game time. Difficulty is derived purely from elapsed time,
// never from player performance, so the ramp is deterministic; boss
// cadence is tied to kills instead, rewarding aggressive play consistently.
type Spawner struct {
	cfg    *Config
	rng    *rand.Rand
	logger *log.Logger

	enemies *EnemyPool
	target  *PlayerAircraft

	elapsedMs    float64
	sinceSpawnMs float64
	difficulty   int
	destroyed    int
	bossActive   bool
}

// NewSpawner creates a spawner with the given randomness source.
func NewSpawner(cfg *Config, enemies *EnemyPool, rng *rand.Rand, logger *log.Logger) *Spawner {
	return &Spawner{
		cfg:        cfg,
		rng:        rng,
		logger:     logger.With("component", "spawner"),
		enemies:    enemies,
		difficulty: 1,
	}
}

// SetTarget points spawned enemies at the current player.
func (s *Spawner) SetTarget(p *PlayerAircraft) { s.target = p }

// Difficulty returns the current difficulty level (monotone, starts at 1).
func (s *Spawner) Difficulty() int { return s.difficulty }

// EnemiesDestroyed returns the kill counter.
func (s *Spawner) EnemiesDestroyed() int { return s.destroyed }

// BossActive reports whether a boss is currently suppressing regular spawns.
func (s *Spawner) BossActive() bool { return s.bossActive }

// SpawnRate returns the current interval between spawns in milliseconds:
// max(min, initial - (difficulty-1)*step). Strictly non-increasing as
// difficulty rises.
func (s *Spawner) SpawnRate() float64 {
	rate := s.cfg.InitialSpawnRateMs - float64(s.difficulty-1)*s.cfg.SpawnRateStepMs
	if rate < s.cfg.MinSpawnRateMs {
		rate = s.cfg.MinSpawnRateMs
	}
	return rate
}

// Update advances spawn and difficulty timers by dt seconds. Regular
// spawning is suppressed while a boss is active.
func (s *Spawner) Update(dt float64, reg *Registry) {
	ms := dt * 1000
	s.elapsedMs += ms
	s.sinceSpawnMs += ms

	if level := 1 + int(s.elapsedMs/s.cfg.DifficultyIntervalMs); level > s.difficulty {
		s.difficulty = level
		s.logger.Info("difficulty increased", "level", s.difficulty, "spawnRateMs", s.SpawnRate())
	}

	if s.bossActive {
		return
	}
	if s.sinceSpawnMs >= s.SpawnRate() {
		s.sinceSpawnMs = 0
		s.SpawnEnemy(reg)
	}
}

// selectEnemyType draws a weighted random regular enemy type:
// 60% basic, 25% shooter, 15% zigzag. Bosses spawn via a dedicated path.
func (s *Spawner) selectEnemyType() EnemyType {
	switch roll := s.rng.Float64(); {
	case roll < 0.60:
		return EnemyBasic
	case roll < 0.85:
		return EnemyShooter
	default:
		return EnemyZigzag
	}
}

// SpawnEnemy adds one randomly typed enemy just above the top edge, with x
// uniform over the canvas width.
func (s *Spawner) SpawnEnemy(reg *Registry) {
	t := s.selectEnemyType()
	tc := enemyConfigFor(t)
	x := s.rng.Float64() * (s.cfg.CanvasWidth - tc.W)
	e := s.enemies.Acquire(t, x, -tc.H, s.target)
	reg.Add(e)
}

// SpawnBoss adds exactly one boss, horizontally centered above the top
// edge, and suppresses regular spawns until OnBossDefeated.
func (s *Spawner) SpawnBoss(reg *Registry) {
	tc := enemyConfigFor(EnemyBoss)
	x := (s.cfg.CanvasWidth - tc.W) / 2
	boss := s.enemies.Acquire(EnemyBoss, x, -tc.H, s.target)
	reg.Add(boss)
	s.bossActive = true
	s.logger.Info("boss spawned", "kills", s.destroyed)
}

// RecordEnemyDestroyed increments the kill counter; every Nth kill
// triggers a boss.
func (s *Spawner) RecordEnemyDestroyed(reg *Registry) {
	s.destroyed++
	if s.cfg.BossKillInterval > 0 && s.destroyed%s.cfg.BossKillInterval == 0 && !s.bossActive {
		s.SpawnBoss(reg)
	}
}

// OnBossDefeated re-enables regular spawning.
func (s *Spawner) OnBossDefeated() {
	s.bossActive = false
	s.logger.Info("boss defeated")
}

// TrySpawnPowerUp rolls the drop chance and, on success, spawns a
// weighted-random power-up at (x, y) and returns true. No side effects on
// a failed roll.
func (s *Spawner) TrySpawnPowerUp(x, y float64, reg *Registry) bool {
	if s.rng.Float64() >= s.cfg.PowerUpDropChance {
		return false
	}
	reg.Add(NewPowerUp(s.selectPowerUpType(), x, y, s.cfg))
	return true
}

// selectPowerUpType draws a weighted random power-up type:
// 50% weapon, 30% health, 20% shield.
func (s *Spawner) selectPowerUpType() PowerUpType {
	switch roll := s.rng.Float64(); {
	case roll < 0.50:
		return PowerWeaponUpgrade
	case roll < 0.80:
		return PowerHealth
	default:
		return PowerShield
	}
}

// Reset returns every counter and flag to its initial value.
func (s *Spawner) Reset() {
	s.elapsedMs = 0
	s.sinceSpawnMs = 0
	s.difficulty = 1
	s.destroyed = 0
	s.bossActive = false
}
