package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/fpscontroller/config"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/milk9111/fpscontroller/sim"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level", "error", "--prefabs", t.TempDir()}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestValidateEmbedded(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   hugo.yaml")
	assert.Contains(t, out, "ok   vex.yaml")
	assert.NotContains(t, out, "arena.yaml")
}

func TestValidateReportsBadTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: Broken\nvariant: nobody\nstats:\n  max_health: 10\n"), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--log-level", "error", "--prefabs", dir, "validate", "broken.yaml"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "FAIL broken.yaml")
}

func TestValidateCompilesScripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "bad.tengo"), []byte("hooks := 5\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: Bad\nscript: scripts/bad.tengo\nabilities:\n  ultimate_charge_rate: 1\nstats:\n  max_health: 10\n"), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--log-level", "error", "--prefabs", dir, "validate", "bad.yaml"})
	require.Error(t, root.Execute())
	assert.Contains(t, out.String(), "FAIL bad.yaml")
}

func TestSimulateJSON(t *testing.T) {
	out, err := run(t, "simulate", "dash_and_cast.yaml", "-o", "json")
	require.NoError(t, err)

	var res sim.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "dash_and_cast", res.Scenario)
	assert.Equal(t, 133, res.Ticks)
	assert.Equal(t, 40, res.Final.Stats.Health)
}

func TestSimulateSaveNeedsRedis(t *testing.T) {
	t.Setenv("FPSCONTROLLER_REDIS_ADDR", "")
	_, err := run(t, "simulate", "dash_and_cast.yaml", "--save", "run1")
	require.Error(t, err)
}

func TestWriteResultFormats(t *testing.T) {
	v := map[string]int{"ticks": 3}

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, "yaml", v))
	assert.Equal(t, "ticks: 3\n", buf.String())

	buf.Reset()
	require.NoError(t, writeResult(&buf, "json", v))
	assert.JSONEq(t, `{"ticks":3}`, buf.String())

	assert.Error(t, writeResult(&buf, "toml", v))
}

func TestWatchDirs(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, []string{dir}, watchDirs(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	assert.Equal(t, []string{dir, filepath.Join(dir, "scripts")}, watchDirs(dir))

	assert.Empty(t, watchDirs(filepath.Join(dir, "missing")))
}

func TestTickInterval(t *testing.T) {
	cases := []struct {
		rate float64
		tps  int
	}{
		{60, 60},
		{120, 120},
		{29.6, 30},
		{0.2, 1},
	}
	for _, tc := range cases {
		tps, dt := tickInterval(tc.rate)
		assert.Equal(t, tc.tps, tps)
		assert.InDelta(t, 1/float64(tc.tps), dt, 1e-12)
	}
}

func TestSandboxUsesConfiguredTickRate(t *testing.T) {
	prev, prevDir := cfg, prefabs.Dir()
	t.Cleanup(func() {
		cfg = prev
		prefabs.SetDir(prevDir)
	})
	cfg = config.Config{TickRate: 120}
	prefabs.SetDir(filepath.Join(t.TempDir(), "missing"))

	g, cleanup, err := newSandbox(t.Context(), "hugo.yaml", "", "", "", 1)
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, 120, g.tps)
	assert.InDelta(t, 1.0/120, g.dt, 1e-12)
}
