// Package ability runs character variants written as tengo scripts. A
// script defines a `hooks` map keyed by hook name; each character built
// from a Script gets its own compiled copy and private state map.
package ability

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/logger"
)

const (
	HookFirstSkill  = "first_skill"
	HookSecondSkill = "second_skill"
	HookUltimate    = "ultimate"
	HookPassive     = "passive"
	HookSpawn       = "spawn"
	HookDamaged     = "damaged"
	HookDeath       = "death"
)

var ErrNoSource = errors.New("ability: script source is empty")

// dispatchScript is appended to every variant script. Hooks the script does
// not define are skipped.
const dispatchScript = `
__fn := hooks[__hook]
if is_callable(__fn) {
	__fn(__engine, __state, __ctx)
}
`

// Definition is a scripted variant: gate tunables plus tengo source.
type Definition struct {
	Name               string
	FirstCooldown      float64
	SecondCooldown     float64
	PassiveCooldown    float64
	UltimateChargeRate float64
	Source             []byte
	// Path is used in error messages only.
	Path string
}

// Script is a compiled definition. It is safe to build variants from one
// Script concurrently.
type Script struct {
	def      Definition
	compiled *tengo.Compiled
	log      *slog.Logger
}

func Compile(def Definition, log *slog.Logger) (*Script, error) {
	if strings.TrimSpace(string(def.Source)) == "" {
		return nil, fmt.Errorf("ability: compile %s: %w", def.label(), ErrNoSource)
	}

	src := string(def.Source) + "\n" + dispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__hook", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__ctx", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ability: compile %s: %w", def.label(), err)
	}
	s := &Script{def: def, compiled: compiled, log: logger.Or(log)}

	// Globals are only populated after a run, so top-level errors and the
	// hooks map are both checked on a throwaway runtime.
	rt := s.newRuntime(nil)
	if err := rt.run("", nil, &tengo.Map{Value: map[string]tengo.Object{}}); err != nil {
		return nil, fmt.Errorf("ability: run %s: %w", def.label(), err)
	}
	if !rt.compiled.IsDefined("hooks") {
		return nil, fmt.Errorf("ability: compile %s: script must define a hooks map", def.label())
	}
	switch rt.compiled.Get("hooks").ValueType() {
	case "map", "immutable-map":
	default:
		return nil, fmt.Errorf("ability: compile %s: hooks must be a map", def.label())
	}
	return s, nil
}

func (s *Script) Name() string {
	return s.def.Name
}

// Factory adapts the script to a variant registry entry. Effects emitted by
// scripts are passed to sink, which may be nil.
func (s *Script) Factory(sink Sink) character.Factory {
	return func() (*character.Variant, error) {
		return s.Variant(sink), nil
	}
}

// Variant builds a capability table backed by a private copy of the script.
func (s *Script) Variant(sink Sink) *character.Variant {
	rt := s.newRuntime(sink)
	return &character.Variant{
		Name:               s.def.Name,
		FirstCooldown:      s.def.FirstCooldown,
		SecondCooldown:     s.def.SecondCooldown,
		PassiveCooldown:    s.def.PassiveCooldown,
		UltimateChargeRate: s.def.UltimateChargeRate,
		OnFirstSkill:       rt.castHook(HookFirstSkill),
		OnSecondSkill:      rt.castHook(HookSecondSkill),
		OnUltimate:         rt.castHook(HookUltimate),
		OnPassive:          rt.castHook(HookPassive),
		OnSpawn: func(c *character.Character) {
			rt.call(HookSpawn, c, map[string]any{})
		},
		OnDamaged: func(c *character.Character, amount int) {
			rt.call(HookDamaged, c, map[string]any{"amount": amount})
		},
		OnDeath: func(c *character.Character) {
			rt.call(HookDeath, c, map[string]any{})
		},
	}
}

func (d Definition) label() string {
	if d.Path != "" {
		return d.Path
	}
	if d.Name != "" {
		return d.Name
	}
	return "<script>"
}
