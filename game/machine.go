package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// StateType names a screen of the game.
type StateType int

const (
	StateMenu StateType = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (t StateType) String() string {
	switch t {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// State is one screen's behavior. Enter runs on every transition into the
// state, Exit on every transition out.
type State interface {
	Type() StateType
	Enter()
	Exit()
	HandleInput(in InputState)
	Update(dt float64)
	Render(dst *ebiten.Image)
}

// legalTransitions is the fixed adjacency table. Anything not listed is an
// illegal transition.
var legalTransitions = map[StateType][]StateType{
	StateMenu:     {StatePlaying},
	StatePlaying:  {StatePaused, StateGameOver},
	StatePaused:   {StatePlaying, StateMenu},
	StateGameOver: {StateMenu, StatePlaying},
}

// Machine owns the registered states and enforces the transition table.
// With no current state every transition is legal, so the machine can be
// bootstrapped into any screen.
type Machine struct {
	logger  *log.Logger
	states  map[StateType]State
	current State
}

// NewMachine creates a machine with no states registered.
func NewMachine(logger *log.Logger) *Machine {
	return &Machine{
		logger: logger.With("component", "machine"),
		states: make(map[StateType]State),
	}
}

// RegisterState adds (or replaces) the handler for a state type.
func (m *Machine) RegisterState(s State) {
	m.states[s.Type()] = s
}

// Current returns the active state, or nil before the first transition.
func (m *Machine) Current() State { return m.current }

// CurrentType returns the active state's type; only meaningful once a
// transition has happened.
func (m *Machine) CurrentType() (StateType, bool) {
	if m.current == nil {
		return 0, false
	}
	return m.current.Type(), true
}

// CanTransitionTo reports whether moving to the target is legal from the
// current state.
func (m *Machine) CanTransitionTo(target StateType) bool {
	if m.current == nil {
		return true
	}
	for _, t := range legalTransitions[m.current.Type()] {
		if t == target {
			return true
		}
	}
	return false
}

// ChangeState transitions to the target: current.Exit, reassign,
// target.Enter. Illegal or unregistered targets are logged and return false
// with the current state untouched.
func (m *Machine) ChangeState(target StateType) bool {
	next, ok := m.states[target]
	if !ok {
		m.logger.Warn("transition to unregistered state refused", "target", target)
		return false
	}
	if !m.CanTransitionTo(target) {
		m.logger.Warn("illegal state transition refused", "from", m.current.Type(), "target", target)
		return false
	}
	if m.current != nil {
		m.current.Exit()
	}
	m.current = next
	m.current.Enter()
	m.logger.Debug("state changed", "state", target)
	return true
}

// HandleInput forwards to the current state; no-op without one.
func (m *Machine) HandleInput(in InputState) {
	if m.current != nil {
		m.current.HandleInput(in)
	}
}

// Update forwards to the current state; no-op without one.
func (m *Machine) Update(dt float64) {
	if m.current != nil {
		m.current.Update(dt)
	}
}

// Render forwards to the current state; no-op without one.
func (m *Machine) Render(dst *ebiten.Image) {
	if m.current != nil {
		m.current.Render(dst)
	}
}
