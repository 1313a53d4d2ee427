package game

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dop251/goja"
)

// PatternContext is the input handed to a movement script.
type PatternContext struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Health       int     `json:"health"`
	MaxHealth    int     `json:"maxHealth"`
	Speed        float64 `json:"speed"`
	PlayerX      float64 `json:"playerX"`
	PlayerY      float64 `json:"playerY"`
	PlayerActive bool    `json:"playerActive"`
	CanvasWidth  float64 `json:"canvasWidth"`
	CanvasHeight float64 `json:"canvasHeight"`
	Time         float64 `json:"time"`
}

// PatternDecision is the movement/fire intent returned by a script.
type PatternDecision struct {
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Fire bool    `json:"fire"`
}

// bossPatternScript drives the boss: descend to a hover line, sweep toward
// the player's column, and fire when roughly aligned.
const bossPatternScript = `
function decide(ctx) {
    var vx = 0, vy = 0, fire = false;
    if (ctx.y < 60) {
        vy = ctx.speed;
    } else {
        var dx = ctx.playerX - (ctx.x + ctx.width / 2);
        if (ctx.playerActive) {
            vx = Math.max(-ctx.speed, Math.min(ctx.speed, dx * 2));
            fire = Math.abs(dx) < ctx.width;
        } else {
            vx = Math.sin(ctx.time) * ctx.speed;
        }
    }
    return { vx: vx, vy: vy, fire: fire };
}
`

// ScriptRunner executes JavaScript movement patterns with goja. Each call
// runs in a fresh runtime for isolation, matching the one-shot nature of a
// per-tick decision.
type ScriptRunner struct {
	mu sync.Mutex
}

// NewScriptRunner creates a runner.
func NewScriptRunner() *ScriptRunner { return &ScriptRunner{} }

// Execute runs a script that must define decide(ctx) and returns its
// decision. Any parse, runtime or shape error is returned so the caller
// can fall back to a built-in pattern.
func (r *ScriptRunner) Execute(code string, ctx PatternContext) (PatternDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vm := goja.New()

	ctxJSON, err := json.Marshal(ctx)
	if err != nil {
		return PatternDecision{}, fmt.Errorf("serialize context: %w", err)
	}
	ctxObj, err := vm.RunString(fmt.Sprintf("(%s)", string(ctxJSON)))
	if err != nil {
		return PatternDecision{}, fmt.Errorf("parse context: %w", err)
	}

	if _, err := vm.RunString(code); err != nil {
		return PatternDecision{}, fmt.Errorf("script execution: %w", err)
	}

	decideFunc, ok := goja.AssertFunction(vm.Get("decide"))
	if !ok {
		return PatternDecision{}, fmt.Errorf("script must define a 'decide' function")
	}

	result, err := decideFunc(goja.Undefined(), ctxObj)
	if err != nil {
		return PatternDecision{}, fmt.Errorf("decide call: %w", err)
	}

	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return PatternDecision{}, fmt.Errorf("serialize result: %w", err)
	}
	var decision PatternDecision
	if err := json.Unmarshal(resultJSON, &decision); err != nil {
		return PatternDecision{}, fmt.Errorf("parse result %s: %w", string(resultJSON), err)
	}
	return decision, nil
}

// Validate checks that a script parses and defines decide.
func (r *ScriptRunner) Validate(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vm := goja.New()
	if _, err := vm.RunString(code); err != nil {
		return fmt.Errorf("script parse: %w", err)
	}
	if _, ok := goja.AssertFunction(vm.Get("decide")); !ok {
		return fmt.Errorf("script must define a 'decide' function")
	}
	return nil
}
