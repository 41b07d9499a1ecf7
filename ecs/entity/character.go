// Package entity builds character entities from prefab templates.
package entity

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/milk9111/fpscontroller/ability"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/controller"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/input"
	"github.com/milk9111/fpscontroller/locomotion"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/milk9111/fpscontroller/prefabs"
)

// EventEffect is the ecs event type of ability effects. Data holds an
// ability.Effect.
const EventEffect = "ability_effect"

// TargetRange bounds cast target raycasts.
const TargetRange = 100.0

var ErrNoPhysics = errors.New("entity: physics world is required")

// Builder spawns characters into one world. Compiled ability scripts are
// cached by path until Forget drops them.
type Builder struct {
	Registry *character.Registry
	Physics  *physics.World
	Log      *slog.Logger

	mu      sync.Mutex
	scripts map[string]*ability.Script
}

func NewBuilder(registry *character.Registry, world *physics.World, log *slog.Logger) *Builder {
	if registry == nil {
		registry = character.DefaultRegistry()
	}
	return &Builder{
		Registry: registry,
		Physics:  world,
		Log:      logger.Or(log),
		scripts:  map[string]*ability.Script{},
	}
}

// Build loads prefab and spawns the character it describes.
func (b *Builder) Build(w *ecs.World, prefab string) (ecs.Entity, error) {
	spec, err := prefabs.LoadCharacterSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("build character: %w", err)
	}
	return b.BuildSpec(w, prefab, spec)
}

// BuildSpec spawns a character from a parsed template. The entity gets
// character, input and prefab components.
func (b *Builder) BuildSpec(w *ecs.World, prefab string, spec prefabs.CharacterSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build character: world is nil")
	}
	if b.Physics == nil {
		return 0, ErrNoPhysics
	}

	e := ecs.CreateEntity(w)
	char, err := b.assemble(w, e, spec)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build character %q: %w", prefab, err)
	}

	if err := errors.Join(
		ecs.Add(w, e, component.CharacterComponent.Kind(), char),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{
			Handler: input.NewHandler(char.Controller, b.Log),
		}),
		ecs.Add(w, e, component.PrefabComponent.Kind(), &component.Prefab{Name: prefab, Script: spec.Script}),
	); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build character %q: %w", prefab, err)
	}
	return e, nil
}

// Rebuild reloads the prefab of e and swaps in a fresh controller. Health,
// resources, position, yaw and the crouch pose carry over; everything else
// comes from the new template.
func (b *Builder) Rebuild(w *ecs.World, e ecs.Entity) error {
	src, ok := ecs.Get(w, e, component.PrefabComponent.Kind())
	if !ok {
		return fmt.Errorf("rebuild %s: %w", e, ecs.ErrEntityNotAlive)
	}
	old, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok {
		return fmt.Errorf("rebuild %s: no character", e)
	}

	spec, err := prefabs.LoadCharacterSpec(src.Name)
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", e, err)
	}
	if spec.Script != "" {
		b.Forget(spec.VariantName())
	}
	next, err := b.assemble(w, e, spec)
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", e, err)
	}

	prev := old.Controller.State()
	state := next.Controller.State()
	state.Yaw = prev.Yaw
	state.Stats.Health = prev.Stats.Health
	state.Stats.Stamina = prev.Stats.Stamina
	state.Stats.Resources = prev.Stats.Resources
	state.Stats.Position = prev.Position
	state.Locomotion.Crouching = prev.Locomotion.Crouching
	next.Controller.Restore(state)

	*old = *next
	if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
		in.Handler = input.NewHandler(next.Controller, b.Log)
	}
	src.Script = spec.Script
	b.Log.Info("character reloaded", "entity", e.String(), "prefab", src.Name)
	return nil
}

// Forget drops a cached script so the next build recompiles it.
func (b *Builder) Forget(script string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !strings.HasPrefix(script, "scripts/") {
		script = "scripts/" + script
	}
	delete(b.scripts, script)
}

func (b *Builder) assemble(w *ecs.World, e ecs.Entity, spec prefabs.CharacterSpec) (*component.Character, error) {
	tpl, err := spec.Template()
	if err != nil {
		return nil, err
	}
	cfg, err := spec.ControllerConfig()
	if err != nil {
		return nil, err
	}
	variant, err := b.variant(w, e, spec)
	if err != nil {
		return nil, err
	}
	char, err := character.Spawn(tpl, variant, b.Log)
	if err != nil {
		return nil, err
	}

	body := physics.NewMover(b.Physics, tpl.Stats().Position, spec.Capsule.Radius, spec.Capsule.Height, locomotion.AllLayers)
	ctrl, err := controller.New(cfg, controller.Deps{
		Character: char,
		Executor:  body,
		Probe:     b.Physics,
		Targeter:  physics.RayTargeter{World: b.Physics, Range: TargetRange, Mask: locomotion.AllLayers},
		Logger:    b.Log,
	})
	if err != nil {
		return nil, err
	}
	return &component.Character{Controller: ctrl, Body: body}, nil
}

func (b *Builder) variant(w *ecs.World, e ecs.Entity, spec prefabs.CharacterSpec) (*character.Variant, error) {
	if spec.Script == "" {
		return b.Registry.New(spec.Variant)
	}
	script, err := b.script(spec)
	if err != nil {
		return nil, err
	}
	events := w.Events()
	return script.Variant(func(effect ability.Effect) {
		events.Push(ecs.Event{Type: EventEffect, Entity: e, Data: effect})
	}), nil
}

func (b *Builder) script(spec prefabs.CharacterSpec) (*ability.Script, error) {
	key := spec.VariantName()
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.scripts[key]; ok {
		return s, nil
	}
	def, err := spec.ScriptDefinition()
	if err != nil {
		return nil, err
	}
	s, err := ability.Compile(def, b.Log)
	if err != nil {
		return nil, err
	}
	b.scripts[key] = s
	return s, nil
}
