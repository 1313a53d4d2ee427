package game

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds the game's tunable parameters.
type Config struct {
	// Canvas dimensions in pixels.
	CanvasWidth  float64
	CanvasHeight float64

	// Player tuning.
	PlayerWidth        float64
	PlayerHeight       float64
	PlayerSpeed        float64
	PlayerMaxHealth    int
	FireRateMs         float64
	InvincibilityMs    float64
	ShieldDurationMs   float64
	EnemyContactDamage int

	// Spawn and difficulty tuning. Rates are milliseconds between spawns;
	// lower means harder.
	InitialSpawnRateMs   float64
	SpawnRateStepMs      float64
	MinSpawnRateMs       float64
	DifficultyIntervalMs float64
	BossKillInterval     int
	PowerUpDropChance    float64

	// Scoring.
	ComboWindowMs     float64
	ComboThreshold    int
	ComboMultiplier   float64
	AccuracyThreshold float64
	AccuracyBonus     float64

	// Pool retention caps.
	PlayerBulletPoolSize int
	EnemyBulletPoolSize  int
	EnemyPoolSize        int
	BossPoolSize         int

	// Persistence.
	HighScoreKey string

	// Audio.
	Muted bool

	// Debug draws the FPS overlay.
	Debug bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  480,
		CanvasHeight: 640,

		PlayerWidth:        40,
		PlayerHeight:       40,
		PlayerSpeed:        300,
		PlayerMaxHealth:    100,
		FireRateMs:         200,
		InvincibilityMs:    1500,
		ShieldDurationMs:   5000,
		EnemyContactDamage: 25,

		InitialSpawnRateMs:   2000,
		SpawnRateStepMs:      200,
		MinSpawnRateMs:       500,
		DifficultyIntervalMs: 30000,
		BossKillInterval:     50,
		PowerUpDropChance:    0.15,

		ComboWindowMs:     2000,
		ComboThreshold:    3,
		ComboMultiplier:   1.5,
		AccuracyThreshold: 70,
		AccuracyBonus:     1.2,

		PlayerBulletPoolSize: 128,
		EnemyBulletPoolSize:  128,
		EnemyPoolSize:        64,
		BossPoolSize:         4,

		HighScoreKey: "skystrike.highscore",
	}
}

// LoadConfig returns the default configuration with environment overrides
// applied. A .env file in the working directory is honored when present.
func LoadConfig(logger *log.Logger) Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("no .env file loaded", "err", err)
	}

	cfg := DefaultConfig()
	cfg.CanvasWidth = getenvFloat("SKYSTRIKE_WIDTH", cfg.CanvasWidth)
	cfg.CanvasHeight = getenvFloat("SKYSTRIKE_HEIGHT", cfg.CanvasHeight)
	cfg.PowerUpDropChance = getenvFloat("SKYSTRIKE_DROP_CHANCE", cfg.PowerUpDropChance)
	cfg.InitialSpawnRateMs = getenvFloat("SKYSTRIKE_SPAWN_RATE_MS", cfg.InitialSpawnRateMs)
	cfg.Muted = getenvBool("SKYSTRIKE_MUTE", cfg.Muted)
	cfg.Debug = getenvBool("SKYSTRIKE_DEBUG", cfg.Debug)
	return cfg
}

// getenv returns the environment value for key, or fallback if unset.
func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := getenv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvBool(key string, fallback bool) bool {
	v := getenv(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
