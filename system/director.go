package system

import (
	"errors"
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

// ErrScript wraps failures compiling or running the director script.
var ErrScript = errors.New("system: director script")

// MaxEnemiesLimit caps any director output. populate fills the cap in a
// single frame, so a runaway script must not ask for more.
const MaxEnemiesLimit = 200

// DirectorOutput is the spawn pressure for the current moment of a run.
type DirectorOutput struct {
	MaxEnemies int
	EnemySpeed float64
}

func (o DirectorOutput) clamped() DirectorOutput {
	o.MaxEnemies = min(max(o.MaxEnemies, 0), MaxEnemiesLimit)
	o.EnemySpeed = max(o.EnemySpeed, 0)
	return o
}

// Director decides how many enemies may be alive and how fast new ones walk.
// The decision is delegated to a tengo script reading elapsed and score; the
// static fallback is used when there is no script or it fails.
type Director struct {
	mu       sync.Mutex
	compiled *tengo.Compiled
	fallback DirectorOutput
	log      *zap.Logger
}

// NewStaticDirector always returns out.
func NewStaticDirector(out DirectorOutput) *Director {
	return &Director{fallback: out.clamped(), log: zap.NewNop()}
}

// NewDirector compiles src. The script must leave max_enemies and
// enemy_speed defined.
func NewDirector(src []byte, fallback DirectorOutput, log *zap.Logger) (*Director, error) {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Director{fallback: fallback.clamped(), log: log.Named("director")}
	if len(src) == 0 {
		return d, nil
	}

	script := tengo.NewScript(src)
	_ = script.Add("elapsed", 0.0)
	_ = script.Add("score", 0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: compile: %w", ErrScript, err)
	}
	d.compiled = compiled
	return d, nil
}

// Eval runs the script for the current run state. On error the fallback is
// returned together with the error.
func (d *Director) Eval(elapsed float64, score int) (DirectorOutput, error) {
	if d == nil {
		return DirectorOutput{}, nil
	}
	if d.compiled == nil {
		return d.fallback, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.compiled.Set("elapsed", elapsed); err != nil {
		return d.fallback, fmt.Errorf("%w: %w", ErrScript, err)
	}
	if err := d.compiled.Set("score", score); err != nil {
		return d.fallback, fmt.Errorf("%w: %w", ErrScript, err)
	}
	if err := d.compiled.Run(); err != nil {
		return d.fallback, fmt.Errorf("%w: run: %w", ErrScript, err)
	}
	if !d.compiled.IsDefined("max_enemies") || !d.compiled.IsDefined("enemy_speed") {
		return d.fallback, fmt.Errorf("%w: max_enemies and enemy_speed must be defined", ErrScript)
	}

	out := DirectorOutput{
		MaxEnemies: d.compiled.Get("max_enemies").Int(),
		EnemySpeed: d.compiled.Get("enemy_speed").Float(),
	}
	return out.clamped(), nil
}
