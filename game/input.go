package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is the abstract per-frame input snapshot consumed by the
// state machine. It is sampled once per frame, before HandleInput runs.
type InputState struct {
	Pressed     map[string]bool
	JustPressed map[string]bool
	PointerX    int
	PointerY    int
	PointerDown bool
}

// IsPressed reports whether the named key is currently held.
func (in InputState) IsPressed(name string) bool { return in.Pressed[name] }

// IsJustPressed reports whether the named key went down this frame.
func (in InputState) IsJustPressed(name string) bool { return in.JustPressed[name] }

// inputSampler converts host keyboard/pointer state into InputState
// snapshots. The scratch slice is reused across frames.
type inputSampler struct {
	keys []ebiten.Key
}

func newInputSampler() *inputSampler {
	return &inputSampler{keys: make([]ebiten.Key, 0, 16)}
}

// Sample reads the current host input into a fresh snapshot.
func (s *inputSampler) Sample() InputState {
	in := InputState{
		Pressed:     make(map[string]bool, 8),
		JustPressed: make(map[string]bool, 4),
	}

	s.keys = inpututil.AppendPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		in.Pressed[k.String()] = true
		if inpututil.IsKeyJustPressed(k) {
			in.JustPressed[k.String()] = true
		}
	}

	in.PointerX, in.PointerY = ebiten.CursorPosition()
	in.PointerDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return in
}
