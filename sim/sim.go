// Package sim runs scenarios headlessly: a character on a level, driven by
// timed input steps at a fixed tick rate.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/milk9111/fpscontroller/ability"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/controller"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/ecs/entity"
	"github.com/milk9111/fpscontroller/ecs/system"
	"github.com/milk9111/fpscontroller/input"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/milk9111/fpscontroller/prefabs"
)

type Options struct {
	// Registry resolves built-in variants. Nil uses the default registry.
	Registry *character.Registry
	Workers  int
	Log      *slog.Logger
	// Observe is called after every tick.
	Observe func(Frame)
}

// Frame is the controller state after one tick.
type Frame struct {
	Tick  int
	Step  int
	State controller.State
}

// Event is something that happened during a run.
type Event struct {
	Tick int            `json:"tick" yaml:"tick"`
	Type string         `json:"type" yaml:"type"`
	Name string         `json:"name" yaml:"name"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

type Result struct {
	Scenario string           `json:"scenario" yaml:"scenario"`
	Ticks    int              `json:"ticks" yaml:"ticks"`
	Final    controller.State `json:"final" yaml:"final"`
	Events   []Event          `json:"events" yaml:"events"`
}

// LoadLevel builds the physics world of a level prefab. An empty name gives
// an unbounded flat floor at y=0.
func LoadLevel(name string) (*physics.World, error) {
	if name == "" {
		return physics.NewWorld(physics.Box{
			Min: common.Vec3{X: -1e4, Y: -1, Z: -1e4},
			Max: common.Vec3{X: 1e4, Y: 0, Z: 1e4},
		}), nil
	}
	level, err := prefabs.LoadLevelSpec(name)
	if err != nil {
		return nil, err
	}
	boxes, err := level.PhysicsBoxes()
	if err != nil {
		return nil, err
	}
	return physics.NewWorld(boxes...), nil
}

// Run plays spec to the end and returns the final state.
func Run(ctx context.Context, spec prefabs.ScenarioSpec, opts Options) (Result, error) {
	log := logger.Or(opts.Log)
	steps, err := compile(spec)
	if err != nil {
		return Result{}, err
	}

	level, err := LoadLevel(spec.Level)
	if err != nil {
		return Result{}, fmt.Errorf("sim: %s: %w", spec.Name, err)
	}

	w := ecs.NewWorld()
	builder := entity.NewBuilder(opts.Registry, level, log)
	e, err := builder.Build(w, spec.Character)
	if err != nil {
		return Result{}, fmt.Errorf("sim: %s: %w", spec.Name, err)
	}
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	char, _ := ecs.Get(w, e, component.CharacterComponent.Kind())

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewDamageSystem(),
		system.NewControllerSystem(opts.Workers),
	)

	dt := 1 / spec.TickRate
	res := Result{Scenario: spec.Name}
	for i, step := range steps {
		if step.note != "" {
			log.Debug("scenario step", "step", i, "note", step.note)
		}
		if step.damage != 0 {
			// zero-length steps leave the request pending, so damage adds up
			if req, ok := ecs.Get(w, e, component.DamageRequestComponent.Kind()); ok {
				req.Amount += step.damage
			} else if err := ecs.Add(w, e, component.DamageRequestComponent.Kind(), &component.DamageRequest{Amount: step.damage}); err != nil {
				return res, fmt.Errorf("sim: step %d: %w", i, err)
			}
		}
		in.Snapshot = step.snapshot
		for range step.ticks(spec.TickRate) {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			if err := scheduler.Update(w, dt); err != nil {
				return res, fmt.Errorf("sim: tick %d: %w", res.Ticks, err)
			}
			res.Ticks++
			res.Events = append(res.Events, drain(w, res.Ticks)...)
			if opts.Observe != nil {
				opts.Observe(Frame{Tick: res.Ticks, Step: i, State: char.Controller.State()})
			}
		}
	}

	// release everything so held skills fire
	in.Snapshot = input.Snapshot{}
	if err := scheduler.Update(w, dt); err != nil {
		return res, fmt.Errorf("sim: final tick: %w", err)
	}
	res.Ticks++
	res.Events = append(res.Events, drain(w, res.Ticks)...)
	res.Final = char.Controller.State()
	return res, nil
}

type step struct {
	seconds  float64
	snapshot input.Snapshot
	damage   int
	note     string
}

func (s step) ticks(rate float64) int {
	return int(math.Round(s.seconds * rate))
}

func compile(spec prefabs.ScenarioSpec) ([]step, error) {
	out := make([]step, 0, len(spec.Steps))
	for i, st := range spec.Steps {
		if st.Seconds < 0 {
			return nil, fmt.Errorf("sim: %s step %d: seconds must be non-negative", spec.Name, i)
		}
		move, err := prefabs.Vec2(st.Move)
		if err != nil {
			return nil, fmt.Errorf("sim: %s step %d move: %w", spec.Name, i, err)
		}
		look, err := prefabs.Vec2(st.Look)
		if err != nil {
			return nil, fmt.Errorf("sim: %s step %d look: %w", spec.Name, i, err)
		}
		snap := input.Snapshot{Move: move, Look: look}
		for _, name := range st.Hold {
			b, ok := input.ParseButton(name)
			if !ok {
				return nil, fmt.Errorf("sim: %s step %d: unknown button %q", spec.Name, i, name)
			}
			snap.Press(b)
		}
		out = append(out, step{seconds: st.Seconds, snapshot: snap, damage: st.Damage, note: st.Note})
	}
	return out, nil
}

func drain(w *ecs.World, tick int) []Event {
	var out []Event
	for _, ev := range w.Events().Drain() {
		switch ev.Type {
		case entity.EventEffect:
			effect, ok := ev.Data.(ability.Effect)
			if !ok {
				continue
			}
			out = append(out, Event{Tick: tick, Type: "effect", Name: effect.Name, Data: effect.Data})
		case system.EventDefeated:
			name, _ := ev.Data.(string)
			out = append(out, Event{Tick: tick, Type: "defeated", Name: name})
		}
	}
	return out
}
