package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// testLogger returns a logger that swallows output.
func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// testConfig returns the stock configuration for tests.
func testConfig() *Config {
	cfg := DefaultConfig()
	return &cfg
}

// stubEntity is a minimal registry citizen with a pluggable update hook.
type stubEntity struct {
	entityBase
	updateFn func(dt float64)
}

func newStubEntity() *stubEntity {
	return &stubEntity{entityBase: newEntityBase(0, 0, 10, 10)}
}

func (s *stubEntity) Update(dt float64) {
	if s.updateFn != nil {
		s.updateFn(dt)
	}
}

func (s *stubEntity) Render(dst *ebiten.Image) {}

func (s *stubEntity) Destroy() { s.Deactivate() }

// testWorld builds the registry, pools and collaborators gameplay tests
// need, without audio or sprites.
type testWorld struct {
	cfg     *Config
	reg     *Registry
	bullets *BulletPool
	enemies *EnemyPool
}

func newTestWorld(cfg *Config) *testWorld {
	logger := testLogger()
	reg := NewRegistry(logger)
	bullets := NewBulletPool(cfg)
	enemies := NewEnemyPool(cfg, EnemyDeps{
		Bullets: bullets,
		World:   reg,
	}, logger)
	return &testWorld{cfg: cfg, reg: reg, bullets: bullets, enemies: enemies}
}
