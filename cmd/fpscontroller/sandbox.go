package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/ecs/entity"
	"github.com/milk9111/fpscontroller/ecs/system"
	"github.com/milk9111/fpscontroller/input"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/milk9111/fpscontroller/sim"
	"github.com/milk9111/fpscontroller/store"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	mouseScale = 0.05
)

var keyButtons = []struct {
	keys   []ebiten.Key
	button input.Button
}{
	{[]ebiten.Key{ebiten.KeySpace}, input.ButtonJump},
	{[]ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight}, input.ButtonSprint},
	{[]ebiten.Key{ebiten.KeyControlLeft, ebiten.KeyC}, input.ButtonCrouch},
	{[]ebiten.Key{ebiten.KeyQ}, input.ButtonFirstSkill},
	{[]ebiten.Key{ebiten.KeyE}, input.ButtonSecondSkill},
	{[]ebiten.Key{ebiten.KeyR}, input.ButtonUltimate},
	{[]ebiten.Key{ebiten.KeyF}, input.ButtonPassive},
}

// sampleKeys reads the keyboard and mouse into a snapshot. Mouse movement
// since the previous frame becomes the look axis.
func sampleKeys(lastX, lastY int) (input.Snapshot, int, int) {
	var snap input.Snapshot
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		snap.Move.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		snap.Move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		snap.Move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		snap.Move.X--
	}
	for _, kb := range keyButtons {
		for _, k := range kb.keys {
			if ebiten.IsKeyPressed(k) {
				snap.Press(kb.button)
				break
			}
		}
	}
	x, y := ebiten.CursorPosition()
	snap.Look = common.Vec2{X: float64(x-lastX) * mouseScale, Y: float64(lastY-y) * mouseScale}
	return snap, x, y
}

// tickInterval rounds a configured tick rate to whole ticks per second and
// returns the matching step length.
func tickInterval(rate float64) (int, float64) {
	tps := max(int(math.Round(rate)), 1)
	return tps, 1 / float64(tps)
}

type sandbox struct {
	frames int
	tps    int
	dt     float64

	world     *ecs.World
	scheduler *ecs.Scheduler
	player    ecs.Entity
	watcher   *prefabs.Watcher

	cursorX, cursorY int
	primed           bool
	events           []string
}

func (g *sandbox) Update() error {
	g.frames++
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in, ok := ecs.Get(g.world, g.player, component.InputComponent.Kind())
	if !ok {
		return errors.New("sandbox: player has no input")
	}
	snap, x, y := sampleKeys(g.cursorX, g.cursorY)
	if !g.primed {
		// first frame has no previous cursor position
		snap.Look = common.Vec2{}
		g.primed = true
	}
	g.cursorX, g.cursorY = x, y
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		_ = ecs.Add(g.world, g.player, component.DamageRequestComponent.Kind(), &component.DamageRequest{Amount: 10})
	}
	in.Snapshot = snap

	if err := g.scheduler.Update(g.world, g.dt); err != nil {
		return err
	}
	for _, ev := range g.world.Events().Drain() {
		g.events = append(g.events, fmt.Sprintf("%s %v", ev.Type, ev.Data))
	}
	if len(g.events) > 6 {
		g.events = g.events[len(g.events)-6:]
	}
	return nil
}

func (g *sandbox) Draw(screen *ebiten.Image) {
	msg := fmt.Sprintf("Frames: %d    FPS: %.2f\n", g.frames, ebiten.ActualFPS())
	if char, ok := ecs.Get(g.world, g.player, component.CharacterComponent.Kind()); ok {
		s := char.Controller.State()
		r := s.Stats.Resources
		msg += fmt.Sprintf("%s  hp %d/%d  alive %v\n", s.Name, s.Stats.Health, s.Stats.MaxHealth, s.Stats.Alive)
		msg += fmt.Sprintf("pos %.2f %.2f %.2f  yaw %.1f  pitch %.1f\n", s.Position.X, s.Position.Y, s.Position.Z, s.Yaw, s.Pitch)
		msg += fmt.Sprintf("%s  sprint %v  crouch %v  dash %v  height %.2f  vy %.2f\n",
			s.Locomotion.Mode, s.Locomotion.Sprinting, s.Locomotion.Crouching, s.Locomotion.Dashing,
			s.Locomotion.Height, s.Locomotion.VerticalVelocity)
		msg += fmt.Sprintf("Q %.2f  E %.2f  R %d%%  F %.2f\n",
			r.FirstSkillCooldown, r.SecondSkillCooldown, r.UltimateCharge, r.PassiveCooldown)
	}
	for _, e := range g.events {
		msg += e + "\n"
	}
	msg += "\nWASD move  mouse look  Space jump  Shift sprint  Ctrl/C crouch  Q E R F skills  K hurt  Esc quit"
	ebitenutil.DebugPrint(screen, msg)
}

func (g *sandbox) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *sandbox) close() {
	_ = g.watcher.Close()
}

func newSandboxCmd() *cobra.Command {
	var (
		level        string
		restore      string
		saveAs       string
		saveInterval float64
	)
	cmd := &cobra.Command{
		Use:   "sandbox [character.yaml]",
		Short: "Drive a character interactively with keyboard and mouse",
		Long:  `Open a window that feeds keyboard and mouse input to a character. Templates under the prefab directory are reloaded when they change on disk.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "hugo.yaml"
			if len(args) == 1 {
				name = args[0]
			}
			g, cleanup, err := newSandbox(cmd.Context(), name, level, restore, saveAs, saveInterval)
			if err != nil {
				return err
			}
			defer cleanup()

			ebiten.SetTPS(g.tps)
			ebiten.SetWindowSize(baseWidth, baseHeight)
			ebiten.SetWindowTitle("fpscontroller sandbox")
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
			return ebiten.RunGame(g)
		},
	}
	cmd.Flags().StringVar(&level, "level", "arena.yaml", "level prefab, empty for a flat floor")
	cmd.Flags().StringVar(&restore, "restore", "", "restore a saved snapshot before starting")
	cmd.Flags().StringVar(&saveAs, "save", "", "save the character to redis under this id while playing")
	cmd.Flags().Float64Var(&saveInterval, "save-interval", 1, "seconds between saves")
	return cmd
}

func newSandbox(ctx context.Context, name, level, restore, saveAs string, saveInterval float64) (*sandbox, func(), error) {
	log := logger.L()
	world, err := sim.LoadLevel(level)
	if err != nil {
		return nil, nil, err
	}

	w := ecs.NewWorld()
	builder := entity.NewBuilder(nil, world, log)
	player, err := builder.Build(w, name)
	if err != nil {
		return nil, nil, err
	}

	g := &sandbox{world: w, player: player}
	g.tps, g.dt = tickInterval(cfg.TickRate)
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var repo store.Repository
	if restore != "" || saveAs != "" {
		r, closeRepo, err := openStore()
		if err != nil {
			return nil, nil, err
		}
		repo = r
		closers = append(closers, closeRepo)
	}
	if restore != "" {
		out, err := repo.Get(ctx, store.GetInput{ID: restore})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		char, _ := ecs.Get(w, player, component.CharacterComponent.Kind())
		char.Controller.Restore(out.Snapshot.State)
		log.Info("snapshot restored", "id", restore)
	}

	systems := []ecs.System{}
	if dirs := watchDirs(prefabs.Dir()); len(dirs) > 0 {
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = watcher
			closers = append(closers, g.close)
			systems = append(systems, system.NewReloadSystem(watcher.Events, builder))
			go func() {
				for err := range watcher.Errors {
					log.Error("prefab watcher", "err", err)
				}
			}()
		}
	}
	systems = append(systems,
		system.NewInputSystem(),
		system.NewDamageSystem(),
		system.NewControllerSystem(cfg.Workers),
	)
	if saveAs != "" {
		if err := ecs.Add(w, player, component.PersistentComponent.Kind(), &component.Persistent{SnapshotID: saveAs, Interval: saveInterval}); err != nil {
			cleanup()
			return nil, nil, err
		}
		systems = append(systems, system.NewPersistenceSystem(ctx, repo))
	}
	g.scheduler = ecs.NewScheduler(systems...)
	return g, cleanup, nil
}

// watchDirs lists the prefab directory and its scripts subdirectory when
// they exist on disk.
func watchDirs(root string) []string {
	var dirs []string
	for _, d := range []string{root, filepath.Join(root, "scripts")} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
