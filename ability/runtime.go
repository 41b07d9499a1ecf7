package ability

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/common"
)

// Effect is something a script asked the host to do or show. The core
// attaches no meaning to it.
type Effect struct {
	Character string
	Hook      string
	Name      string
	Data      map[string]any
}

// Sink receives emitted effects.
type Sink func(Effect)

type runtime struct {
	script   *Script
	compiled *tengo.Compiled
	state    *tengo.Map
	sink     Sink

	running bool
	// damage requested by the running hook, applied once it returns.
	damage []int
}

func (s *Script) newRuntime(sink Sink) *runtime {
	return &runtime{
		script:   s,
		compiled: s.compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		sink:     sink,
	}
}

func (rt *runtime) castHook(name string) character.Hook {
	return func(ctx character.CastContext) {
		rt.call(name, ctx.Caster(), map[string]any{
			"hold":      ctx.HoldDuration(),
			"position":  vecToAny(ctx.Position()),
			"direction": vecToAny(ctx.Direction()),
			"target":    vecToAny(ctx.Target()),
		})
	}
}

// call runs one hook. Script failures are logged and otherwise ignored: an
// ability effect must not take the controller down.
func (rt *runtime) call(hook string, c *character.Character, ctx map[string]any) {
	if rt.running {
		rt.logger(c).Warn("ability hook re-entered, skipped", "hook", hook)
		return
	}
	ctx["hook"] = hook
	obj, err := tengo.FromInterface(ctx)
	if err != nil {
		rt.logger(c).Error("ability: convert context", "hook", hook, "err", err)
		return
	}

	rt.running = true
	err = rt.run(hook, rt.engine(hook, c), obj)
	rt.running = false
	damage := rt.damage
	rt.damage = nil

	if err != nil {
		rt.logger(c).Error("ability script failed", "script", rt.script.def.label(), "hook", hook, "err", err)
		return
	}
	for _, n := range damage {
		c.TakeDamage(n)
	}
}

func (rt *runtime) run(hook string, engine *tengo.ImmutableMap, ctx tengo.Object) error {
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__hook", hook); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__ctx", ctx); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (rt *runtime) logger(c *character.Character) *slog.Logger {
	if c == nil {
		return rt.script.log
	}
	return c.Logger()
}

// engine builds the functions a hook may call on its caster.
func (rt *runtime) engine(hook string, c *character.Character) *tengo.ImmutableMap {
	log := rt.logger(c)
	values := map[string]tengo.Object{}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		attrs := []any{"hook", hook}
		if len(args) > 1 {
			if m, ok := objectToAny(args[1]).(map[string]any); ok {
				for k, v := range m {
					attrs = append(attrs, k, v)
				}
			}
		}
		log.Info(objectAsString(args[0]), attrs...)
		return tengo.TrueValue, nil
	}}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		e := Effect{Character: c.Name(), Hook: hook, Name: name}
		if len(args) > 1 {
			if m, ok := objectToAny(args[1]).(map[string]any); ok {
				e.Data = m
			}
		}
		if rt.sink != nil {
			rt.sink(e)
		}
		return tengo.TrueValue, nil
	}}

	values["name"] = &tengo.UserFunction{Name: "name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: c.Name()}, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(c.Health())}, nil
	}}

	values["max_health"] = &tengo.UserFunction{Name: "max_health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(c.MaxHealth())}, nil
	}}

	values["take_damage"] = &tengo.UserFunction{Name: "take_damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 || hook == HookDamaged || hook == HookDeath {
			return tengo.FalseValue, nil
		}
		n, ok := tengo.ToInt(args[0])
		if !ok {
			return nil, fmt.Errorf("take_damage: expected int, got %s", args[0].TypeName())
		}
		rt.damage = append(rt.damage, n)
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return tengo.FromInterface(vecToAny(c.Position()))
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vecToAny(v common.Vec3) []any {
	return []any{v.X, v.Y, v.Z}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
