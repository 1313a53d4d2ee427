package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// maxFrameDt caps the simulation step so a stalled frame (window drag, tab
// switch, debugger) never produces a giant catch-up step.
const maxFrameDt = 0.1

// Driver is the ebiten.Game implementation. Every frame it samples input,
// forwards it to the state machine, advances the simulation when unpaused,
// and renders. Wall-clock dt keeps gameplay speed independent of the host
// frame rate.
type Driver struct {
	cfg      *Config
	logger   *log.Logger
	machine  *Machine
	sampler  *inputSampler
	profiler *Profiler

	started    bool
	paused     bool
	lastUpdate time.Time
	startTime  time.Time

	fps       float64
	fpsTimer  float64
	fpsFrames int
}

// NewDriver creates the frame loop around the given machine.
func NewDriver(cfg *Config, machine *Machine, profiler *Profiler, logger *log.Logger) *Driver {
	return &Driver{
		cfg:       cfg,
		logger:    logger.With("component", "driver"),
		machine:   machine,
		sampler:   newInputSampler(),
		profiler:  profiler,
		startTime: time.Now(),
		fps:       60,
	}
}

// Update runs one frame: input, then simulation (unless paused).
func (d *Driver) Update() error {
	now := time.Now()
	var dt float64
	if d.started {
		dt = now.Sub(d.lastUpdate).Seconds()
	} else {
		d.started = true
	}
	d.lastUpdate = now
	if dt > maxFrameDt {
		dt = maxFrameDt
	}

	d.trackFPS(dt)

	in := d.sampler.Sample()
	d.machine.HandleInput(in)
	if !d.paused {
		d.machine.Update(dt)
	}
	return nil
}

// trackFPS averages frames over rolling one-second windows and triggers a
// profile capture on sustained drops.
func (d *Driver) trackFPS(dt float64) {
	d.fpsTimer += dt
	d.fpsFrames++
	if d.fpsTimer < 1.0 {
		return
	}
	d.fps = float64(d.fpsFrames) / d.fpsTimer
	d.fpsFrames = 0
	d.fpsTimer = 0

	// Skip the warmup seconds right after launch.
	if d.fps < 45 && time.Since(d.startTime) >= 3*time.Second {
		reason := fmt.Sprintf("fps%.0f", d.fps)
		if err := d.profiler.Capture(reason); err != nil {
			d.logger.Debug("profile capture skipped", "err", err)
		} else {
			d.logger.Warn("fps drop detected, capturing profile", "fps", d.fps)
		}
	}
}

// Draw renders the current state, plus the FPS overlay in debug mode.
func (d *Driver) Draw(screen *ebiten.Image) {
	d.machine.Render(screen)
	if d.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f", d.fps))
	}
}

// Layout fixes the logical canvas size regardless of the window size.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(d.cfg.CanvasWidth), int(d.cfg.CanvasHeight)
}

// Pause stops simulation updates. Input and rendering keep running.
func (d *Driver) Pause() { d.paused = true }

// Resume restarts simulation updates and re-baselines the clock so the
// pause duration never appears as a dt.
func (d *Driver) Resume() {
	d.paused = false
	d.lastUpdate = time.Now()
}

// Paused reports whether simulation updates are gated off.
func (d *Driver) Paused() bool { return d.paused }

// FPS returns the last completed window's average frame rate.
func (d *Driver) FPS() float64 { return d.fps }
