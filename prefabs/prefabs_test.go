package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/fpscontroller/ability"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/logger"
)

func withDir(t *testing.T, d string) {
	t.Helper()
	prev := Dir()
	SetDir(d)
	t.Cleanup(func() { SetDir(prev) })
}

func TestLoadBuiltinCharacter(t *testing.T) {
	spec, err := LoadCharacterSpec("hugo.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Hugo", spec.Name)
	assert.Equal(t, character.HugoName, spec.VariantName())

	tpl, err := spec.Template()
	require.NoError(t, err)
	stats := tpl.Stats()
	assert.Equal(t, 100, stats.Health, "health defaults to max")
	assert.Equal(t, 100, stats.Stamina)
	assert.Equal(t, []string{"sword", "shield"}, stats.Inventory)
	assert.True(t, stats.Alive)

	// omitted sections keep the runtime defaults
	assert.Equal(t, 20.0, spec.Locomotion.DashForce)
	assert.Equal(t, 10.0, spec.Movement.MoveSpeed)
	assert.Equal(t, []float64{0, 1.6, 0}, spec.Camera.Offset)

	cfg, err := spec.ControllerConfig()
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Standing.Height)
	assert.Equal(t, common.Vec3{Y: 1}, cfg.Standing.Center)
	assert.Equal(t, common.Vec3{Y: 1.6}, cfg.Camera.BaseOffset)
}

func TestLoadScriptedCharacter(t *testing.T) {
	spec, err := LoadCharacterSpec("prefabs/vex.yaml")
	require.NoError(t, err)

	assert.Equal(t, "scripts/vex.tengo", spec.VariantName())
	assert.Equal(t, 24.0, spec.Locomotion.DashForce)
	assert.Equal(t, 1.5, spec.Locomotion.DashCooldown)
	assert.Equal(t, 0.3, spec.Locomotion.DashDuration)
	assert.Equal(t, 120.0, spec.Camera.Sensitivity)
	assert.Equal(t, 5.0, spec.Camera.Smoothing)

	def, err := spec.ScriptDefinition()
	require.NoError(t, err)
	assert.Equal(t, 4.0, def.FirstCooldown)
	assert.Equal(t, 2.5, def.UltimateChargeRate)

	script, err := ability.Compile(def, logger.Discard())
	require.NoError(t, err)

	var got []string
	v := script.Variant(func(e ability.Effect) { got = append(got, e.Name) })
	tpl, err := spec.Template()
	require.NoError(t, err)
	c, err := character.Spawn(tpl, v, logger.Discard())
	require.NoError(t, err)

	c.TakeDamage(80)
	assert.Equal(t, []string{"unravel"}, got)
	assert.False(t, c.Alive())
}

func TestScriptDefinitionRequiresScript(t *testing.T) {
	spec, err := LoadCharacterSpec("hugo.yaml")
	require.NoError(t, err)
	_, err = spec.ScriptDefinition()
	assert.Error(t, err)
}

func TestParseCharacterSpecRejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing_stats", "name: a\nvariant: hugo\n"},
		{"missing_name", "variant: hugo\nstats: {max_health: 10}\n"},
		{"unknown_field", "name: a\nvariant: hugo\nwings: 2\nstats: {max_health: 10}\n"},
		{"negative_cooldown", "name: a\nscript: a.tengo\nabilities: {first_cooldown: -1}\nstats: {max_health: 10}\n"},
		{"zero_charge_rate", "name: a\nscript: a.tengo\nabilities: {ultimate_charge_rate: 0}\nstats: {max_health: 10}\n"},
		{"short_position", "name: a\nvariant: hugo\nstats: {max_health: 10, position: [1, 2]}\n"},
		{"pitch_limit", "name: a\nvariant: hugo\nstats: {max_health: 10}\ncamera: {pitch_limit: 120}\n"},
		{"no_variant", "name: a\nstats: {max_health: 10}\n"},
		{"not_tengo", "name: a\nscript: a.lua\nstats: {max_health: 10}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCharacterSpec(tc.name+".yaml", []byte(tc.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTemplate), "got %v", err)
		})
	}
}

func TestControllerConfigRejectsBadTunables(t *testing.T) {
	spec, err := ParseCharacterSpec("x.yaml", []byte("name: x\nvariant: hugo\nstats: {max_health: 5}\nlocomotion: {dash_duration: 0.0001}\n"))
	require.NoError(t, err)
	_, err = spec.ControllerConfig()
	require.NoError(t, err)

	spec.Locomotion.DashDuration = 0
	_, err = spec.ControllerConfig()
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestDiskOverride(t *testing.T) {
	d := t.TempDir()
	withDir(t, d)

	require.NoError(t, os.WriteFile(filepath.Join(d, "hugo.yaml"), []byte("name: Local Hugo\nvariant: hugo\nstats: {max_health: 7}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(d, "custom.yaml"), []byte("name: Custom\nvariant: hugo\nstats: {max_health: 1}\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(d, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(d, "scripts", "vex.tengo"), []byte("hooks := {}\n"), 0o644))

	spec, err := LoadCharacterSpec("hugo.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Local Hugo", spec.Name)

	src, err := LoadScript("vex.tengo")
	require.NoError(t, err)
	assert.Equal(t, "hooks := {}\n", string(src))

	_, ok := ModTime("hugo.yaml")
	assert.True(t, ok)
	_, ok = ModTime("arena.yaml")
	assert.False(t, ok, "embedded prefabs have no mod time")

	names, err := List()
	require.NoError(t, err)
	assert.Contains(t, names, "custom.yaml")
	assert.Contains(t, names, "vex.yaml")
	assert.IsIncreasing(t, names)
}

func TestLevelBoxes(t *testing.T) {
	level, err := LoadLevelSpec("arena.yaml")
	require.NoError(t, err)

	boxes, err := level.PhysicsBoxes()
	require.NoError(t, err)
	require.Len(t, boxes, 4)
	assert.Equal(t, common.Vec3{X: -50, Y: -1, Z: -50}, boxes[0].Min)

	bad := LevelSpec{Name: "bad", Boxes: []BoxSpec{{Min: []float64{1, 1, 1}, Max: []float64{0, 2, 2}}}}
	_, err = bad.PhysicsBoxes()
	assert.Error(t, err)

	short := LevelSpec{Name: "short", Boxes: []BoxSpec{{Min: []float64{1}, Max: []float64{0, 2, 2}}}}
	_, err = short.PhysicsBoxes()
	assert.Error(t, err)
}

func TestScenarioSpec(t *testing.T) {
	s, err := LoadScenarioSpec("dash_and_cast.yaml")
	require.NoError(t, err)
	assert.Equal(t, "hugo.yaml", s.Character)
	assert.Equal(t, 60.0, s.TickRate)
	require.Len(t, s.Steps, 6)
	assert.Equal(t, []string{"sprint", "crouch"}, s.Steps[2].Hold)
	assert.Equal(t, 60, s.Steps[5].Damage)

	s, err = ParseScenarioSpec("min.yaml", []byte("character: hugo.yaml\n"))
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.TickRate)

	_, err = ParseScenarioSpec("none.yaml", []byte("tick_rate: 30\n"))
	assert.Error(t, err)
	_, err = ParseScenarioSpec("neg.yaml", []byte("character: a\ntick_rate: -1\n"))
	assert.Error(t, err)
}

func TestVec2(t *testing.T) {
	v, err := Vec2([]float64{0.5, -1})
	require.NoError(t, err)
	assert.Equal(t, common.Vec2{X: 0.5, Y: -1}, v)

	v, err = Vec2(nil)
	require.NoError(t, err)
	assert.Equal(t, common.Vec2{}, v)

	_, err = Vec2([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestWatcherReportsChanges(t *testing.T) {
	d := t.TempDir()
	w, err := NewWatcher(d)
	require.NoError(t, err)
	defer w.Close()

	// next skips changes to other files.
	next := func(name string) Change {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case c := <-w.Events:
				if c.Name == name {
					return c
				}
			case err := <-w.Errors:
				t.Fatalf("watcher error: %v", err)
			case <-deadline:
				t.Fatalf("timed out waiting for %s", name)
			}
		}
	}

	require.NoError(t, os.WriteFile(filepath.Join(d, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(d, "hero.yaml"), []byte("name: hero\n"), 0o644))
	c := next("hero.yaml")
	assert.Equal(t, ChangeSpec, c.Kind)
	assert.Equal(t, filepath.Join(d, "hero.yaml"), c.Path)
	assert.False(t, c.Removed)

	require.NoError(t, os.WriteFile(filepath.Join(d, "bolt.tengo"), []byte("hooks := {}\n"), 0o644))
	c = next("scripts/bolt.tengo")
	assert.Equal(t, ChangeScript, c.Kind)
	assert.Equal(t, "script", c.Kind.String())
}

func TestWatcherReportsBurstOnceAfterLastWrite(t *testing.T) {
	d := t.TempDir()
	path := filepath.Join(d, "hero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: hero\n"), 0o644))

	w, err := NewWatcher(d)
	require.NoError(t, err)
	defer w.Close()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	time.Sleep(DebounceWindow / 4)
	_, err = f.WriteString("name: hero\nvariant: hugo\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case c := <-w.Events:
		assert.Equal(t, "hero.yaml", c.Name)
		data, err := os.ReadFile(c.Path)
		require.NoError(t, err)
		assert.Equal(t, "name: hero\nvariant: hugo\n", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	select {
	case c := <-w.Events:
		t.Fatalf("burst reported twice: %+v", c)
	case <-time.After(3 * DebounceWindow):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)

	var nilWatcher *Watcher
	assert.NoError(t, nilWatcher.Close())
}
