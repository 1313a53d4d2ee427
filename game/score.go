package game

import (
	"strconv"

	"github.com/charmbracelet/log"
)

// Store is the persistent key-value collaborator used for the high score.
// Implementations must tolerate missing keys; callers must tolerate
// malformed values.
type Store interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// ScoreSystem tracks score, combo chains and shot accuracy, and persists
// the all-time high score. The persisted high score is monotone across any
// number of instances sharing the same store key.
type ScoreSystem struct {
	cfg    *Config
	store  Store
	logger *log.Logger

	score     int
	highScore int

	comboCount int
	lastKillMs float64
	hasKill    bool

	shots int
	hits  int
}

// NewScoreSystem creates a score tracker backed by the given store and
// loads the persisted high score.
func NewScoreSystem(cfg *Config, store Store, logger *log.Logger) *ScoreSystem {
	s := &ScoreSystem{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "score"),
	}
	s.highScore = s.LoadHighScore()
	return s
}

// Score returns the current run's score.
func (s *ScoreSystem) Score() int { return s.score }

// HighScore returns the best score seen, in memory or persisted.
func (s *ScoreSystem) HighScore() int { return s.highScore }

// ComboCount returns the current kill-chain length.
func (s *ScoreSystem) ComboCount() int { return s.comboCount }

// AddScore credits base points for a kill at nowMs, applying the combo
// multiplier once the chain reaches the threshold inside the rolling
// window. Returns the points actually awarded. Score never decreases.
func (s *ScoreSystem) AddScore(points int, nowMs float64) int {
	if points <= 0 {
		return 0
	}

	if s.hasKill && nowMs-s.lastKillMs <= s.cfg.ComboWindowMs {
		s.comboCount++
	} else {
		s.comboCount = 1
	}
	s.hasKill = true
	s.lastKillMs = nowMs

	awarded := points
	if s.comboCount >= s.cfg.ComboThreshold {
		awarded = int(float64(points) * s.cfg.ComboMultiplier)
	}
	s.score += awarded
	if s.score > s.highScore {
		s.highScore = s.score
	}
	return awarded
}

// RecordShot counts one shot fired.
func (s *ScoreSystem) RecordShot() { s.shots++ }

// RecordShots counts n shots fired.
func (s *ScoreSystem) RecordShots(n int) {
	if n > 0 {
		s.shots += n
	}
}

// RecordHit counts one shot that connected.
func (s *ScoreSystem) RecordHit() { s.hits++ }

// Accuracy returns hits/shots as a percentage, 0 when no shots were fired.
func (s *ScoreSystem) Accuracy() float64 {
	if s.shots == 0 {
		return 0
	}
	return float64(s.hits) / float64(s.shots) * 100
}

// FinalScore applies the flat end-of-run accuracy bonus when accuracy
// exceeds the threshold, else returns the score unchanged.
func (s *ScoreSystem) FinalScore() int {
	if s.Accuracy() > s.cfg.AccuracyThreshold {
		return int(float64(s.score) * s.cfg.AccuracyBonus)
	}
	return s.score
}

// LoadHighScore reads the persisted high score. Missing, malformed or
// negative stored values load as 0.
func (s *ScoreSystem) LoadHighScore() int {
	raw, ok := s.store.GetItem(s.cfg.HighScoreKey)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		s.logger.Warn("discarding malformed stored high score", "value", raw)
		return 0
	}
	return v
}

// SaveHighScore persists max(in-memory, stored) so concurrent instances
// sharing a key never regress the persisted value.
func (s *ScoreSystem) SaveHighScore() {
	best := s.highScore
	if stored := s.LoadHighScore(); stored > best {
		best = stored
		s.highScore = stored
	}
	if err := s.store.SetItem(s.cfg.HighScoreKey, strconv.Itoa(best)); err != nil {
		s.logger.Warn("failed to persist high score", "err", err)
	}
}

// Reset zeroes the current run (score, combo, accuracy counters) but keeps
// and persists the high score.
func (s *ScoreSystem) Reset() {
	s.score = 0
	s.comboCount = 0
	s.hasKill = false
	s.lastKillMs = 0
	s.shots = 0
	s.hits = 0
	s.SaveHighScore()
}

// ResetAll additionally zeroes and erases the persisted high score.
func (s *ScoreSystem) ResetAll() {
	s.Reset()
	s.highScore = 0
	if err := s.store.RemoveItem(s.cfg.HighScoreKey); err != nil {
		s.logger.Warn("failed to erase high score", "err", err)
	}
}
