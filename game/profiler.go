package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Profiler captures CPU profiles and execution traces when the driver
// observes sustained frame-rate drops. Captures are asynchronous and
// cooldown-limited so a long stutter produces one profile, not dozens.
type Profiler struct {
	logger *log.Logger

	mu          sync.Mutex
	profiling   bool
	lastCapture time.Time

	dir      string
	cooldown time.Duration
	duration time.Duration
}

// NewProfiler creates a profiler writing into the given directory.
func NewProfiler(dir string, logger *log.Logger) *Profiler {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("could not create profiles directory", "dir", dir, "err", err)
	}
	return &Profiler{
		logger:   logger.With("component", "profiler"),
		dir:      dir,
		cooldown: 10 * time.Second,
		duration: 5 * time.Second,
	}
}

// Capture starts an asynchronous CPU profile and trace capture. Returns an
// error when still on cooldown or a capture is already running.
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if since := time.Since(p.lastCapture); since < p.cooldown {
		return fmt.Errorf("capture on cooldown (last was %v ago)", since)
	}
	if p.profiling {
		return fmt.Errorf("capture already in progress")
	}
	p.profiling = true
	p.lastCapture = time.Now()

	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)
	go func() {
		defer func() {
			p.mu.Lock()
			p.profiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPU(baseName); err != nil {
				p.logger.Warn("cpu profile capture failed", "err", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Warn("trace capture failed", "err", err)
			}
		}()
		wg.Wait()
		p.logger.Info("profile captured", "base", baseName, "dir", p.dir)
	}()
	return nil
}

func (p *Profiler) captureCPU(baseName string) error {
	path := filepath.Join(p.dir, baseName+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	time.Sleep(p.duration)
	pprof.StopCPUProfile()
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	path := filepath.Join(p.dir, baseName+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(p.duration)
	trace.Stop()
	return nil
}

// IsProfiling reports whether a capture is currently running.
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profiling
}
