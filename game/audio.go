package game

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SoundTag names a gameplay sound effect.
type SoundTag int

const (
	SoundShoot SoundTag = iota
	SoundHit
	SoundExplosion
	SoundPowerUp
	SoundBossWarning
	SoundGameOver
)

// soundSpec is the synthesis recipe for one effect.
type soundSpec struct {
	freq float64
	dur  time.Duration
}

var soundSpecs = map[SoundTag]soundSpec{
	SoundShoot:       {freq: 880, dur: 40 * time.Millisecond},
	SoundHit:         {freq: 320, dur: 60 * time.Millisecond},
	SoundExplosion:   {freq: 110, dur: 200 * time.Millisecond},
	SoundPowerUp:     {freq: 1320, dur: 120 * time.Millisecond},
	SoundBossWarning: {freq: 220, dur: 400 * time.Millisecond},
	SoundGameOver:    {freq: 165, dur: 600 * time.Millisecond},
}

const (
	audioSampleRate  = beep.SampleRate(44100)
	audioInitRetries = 3
	audioInitBackoff = 250 * time.Millisecond
)

// AudioEngine plays fire-and-forget synthesized effects and a music loop.
// When no audio backend is available it enters degraded mode after a
// bounded backoff retry budget: every Play call becomes a silent no-op and
// the game runs on unaffected.
type AudioEngine struct {
	logger   *log.Logger
	disabled atomic.Bool
	ready    atomic.Bool
	muted    atomic.Bool

	mu      sync.Mutex
	buffers map[SoundTag]*beep.Buffer
	music   *beep.Ctrl
}

// NewAudioEngine creates the engine and starts backend initialization.
// It never returns an error: failures only flip the engine into degraded
// mode.
func NewAudioEngine(logger *log.Logger, muted bool) *AudioEngine {
	a := &AudioEngine{
		logger:  logger.With("component", "audio"),
		buffers: make(map[SoundTag]*beep.Buffer),
	}
	a.muted.Store(muted)
	go a.init()
	return a
}

// init tries to bring up the speaker with bounded exponential backoff,
// then pre-renders every effect.
func (a *AudioEngine) init() {
	backoff := audioInitBackoff
	var err error
	for attempt := 1; attempt <= audioInitRetries; attempt++ {
		err = speaker.Init(audioSampleRate, audioSampleRate.N(time.Second/10))
		if err == nil {
			break
		}
		a.logger.Warn("audio backend init failed", "attempt", attempt, "err", err)
		if attempt < audioInitRetries {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		a.disabled.Store(true)
		a.logger.Warn("audio disabled after retry budget exhausted")
		return
	}

	a.mu.Lock()
	for tag, spec := range soundSpecs {
		buf, synthErr := synthesize(spec)
		if synthErr != nil {
			a.logger.Warn("failed to synthesize effect", "tag", tag, "err", synthErr)
			continue
		}
		a.buffers[tag] = buf
	}
	a.mu.Unlock()
	a.ready.Store(true)
}

// synthesize renders one tone into a reusable buffer.
func synthesize(spec soundSpec) (*beep.Buffer, error) {
	tone, err := generators.SineTone(audioSampleRate, spec.freq)
	if err != nil {
		return nil, err
	}
	format := beep.Format{SampleRate: audioSampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(audioSampleRate.N(spec.dur), tone))
	return buf, nil
}

// Play triggers an effect. Fire-and-forget: missing buffers, mute and
// degraded mode all reduce to a silent no-op.
func (a *AudioEngine) Play(tag SoundTag) {
	if a.disabled.Load() || !a.ready.Load() || a.muted.Load() {
		return
	}
	a.mu.Lock()
	buf, ok := a.buffers[tag]
	a.mu.Unlock()
	if !ok {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

// PlayMusic starts (or resumes) the background loop: a slow four-note
// pattern rendered once and looped.
func (a *AudioEngine) PlayMusic() {
	if a.disabled.Load() || !a.ready.Load() || a.muted.Load() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.music != nil {
		speaker.Lock()
		a.music.Paused = false
		speaker.Unlock()
		return
	}
	format := beep.Format{SampleRate: audioSampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	for _, freq := range []int{220, 277, 330, 277} {
		tone, err := generators.SineTone(audioSampleRate, float64(freq))
		if err != nil {
			a.logger.Warn("failed to synthesize music", "err", err)
			return
		}
		buf.Append(beep.Take(audioSampleRate.N(450*time.Millisecond), tone))
	}
	a.music = &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	speaker.Play(a.music)
}

// StopMusic pauses the background loop without touching effects.
func (a *AudioEngine) StopMusic() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.music == nil {
		return
	}
	speaker.Lock()
	a.music.Paused = true
	speaker.Unlock()
}

// ToggleMute flips the mute flag and returns the new state.
func (a *AudioEngine) ToggleMute() bool {
	muted := !a.muted.Load()
	a.muted.Store(muted)
	if muted {
		a.StopMusic()
	}
	return muted
}

// IsDisabled reports whether the engine gave up on the audio backend.
func (a *AudioEngine) IsDisabled() bool { return a.disabled.Load() }
