package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/locomotion"
	"github.com/milk9111/fpscontroller/logger"
)

const (
	layerWorld uint32 = 1 << 0
	layerGlass uint32 = 1 << 1
)

func floor() Box {
	return Box{Min: common.Vec3{X: -50, Y: -1, Z: -50}, Max: common.Vec3{X: 50, Y: 0, Z: 50}}
}

func TestRaycast(t *testing.T) {
	w := NewWorld(
		floor(),
		Box{Min: common.Vec3{X: -1, Y: 3, Z: -1}, Max: common.Vec3{X: 1, Y: 4, Z: 1}},
		Box{Min: common.Vec3{X: -1, Y: 0, Z: 5}, Max: common.Vec3{X: 1, Y: 2, Z: 6}, Layer: layerGlass},
	)

	cases := []struct {
		name     string
		origin   common.Vec3
		dir      common.Vec3
		distance float64
		mask     uint32
		hit      bool
		at       float64
	}{
		{"ceiling", common.Vec3{Y: 1}, common.Up, 5, locomotion.AllLayers, true, 2},
		{"ceiling_out_of_range", common.Vec3{Y: 1}, common.Up, 1.5, locomotion.AllLayers, false, 0},
		{"floor", common.Vec3{X: 10, Y: 1, Z: 10}, common.Vec3{Y: -1}, 5, locomotion.AllLayers, true, 1},
		{"glass", common.Vec3{Y: 1}, common.Vec3{Z: 1}, 10, locomotion.AllLayers, true, 5},
		{"glass_masked_out", common.Vec3{Y: 1}, common.Vec3{Z: 1}, 10, layerWorld, false, 0},
		{"behind", common.Vec3{Y: 1, Z: 7}, common.Vec3{Z: 1}, 10, locomotion.AllLayers, false, 0},
		{"unnormalized", common.Vec3{Y: 1}, common.Vec3{Y: 10}, 5, locomotion.AllLayers, true, 2},
		{"zero_direction", common.Vec3{Y: 1}, common.Vec3{}, 5, locomotion.AllLayers, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hit, ok := w.Raycast(c.origin, c.dir, c.distance, c.mask)
			require.Equal(t, c.hit, ok)
			assert.Equal(t, c.hit, w.Blocked(c.origin, c.dir, c.distance, c.mask))
			if ok {
				assert.InDelta(t, c.at, hit.Distance, 1e-9)
			}
		})
	}
}

func TestMoverLandsOnFloor(t *testing.T) {
	w := NewWorld(floor())
	m := NewMover(w, common.Vec3{Y: 2}, 0.5, 2, locomotion.AllLayers)
	require.False(t, m.Grounded())

	m.Move(common.Vec3{Y: -5})
	assert.InDelta(t, 0, m.Position().Y, 1e-9)
	assert.True(t, m.Grounded())

	m.Move(common.Vec3{Y: -0.05})
	assert.InDelta(t, 0, m.Position().Y, 1e-9, "resting contact holds")
	assert.True(t, m.Grounded())

	m.Move(common.Vec3{Y: 0.5})
	assert.False(t, m.Grounded())
}

func TestMoverStopsAtWall(t *testing.T) {
	w := NewWorld(floor(), Box{Min: common.Vec3{X: 2, Y: 0, Z: -5}, Max: common.Vec3{X: 3, Y: 3, Z: 5}})
	m := NewMover(w, common.Vec3{}, 0.5, 2, locomotion.AllLayers)

	m.Move(common.Vec3{X: 4, Z: 1})
	assert.InDelta(t, 1.5, m.Position().X, 1e-9)
	assert.InDelta(t, 1, m.Position().Z, 1e-9, "slides along the wall")
	assert.True(t, m.Grounded())
}

func TestMoverIgnoresMaskedLayers(t *testing.T) {
	w := NewWorld(floor(), Box{Min: common.Vec3{X: 2, Y: 0, Z: -5}, Max: common.Vec3{X: 3, Y: 3, Z: 5}, Layer: layerGlass})
	m := NewMover(w, common.Vec3{}, 0.5, 2, layerWorld)

	m.Move(common.Vec3{X: 4})
	assert.InDelta(t, 4, m.Position().X, 1e-9)
}

func TestMoverCeilingUsesCurrentHeight(t *testing.T) {
	w := NewWorld(floor(), Box{Min: common.Vec3{X: -5, Y: 1.5, Z: -5}, Max: common.Vec3{X: 5, Y: 2, Z: 5}})
	m := NewMover(w, common.Vec3{}, 0.5, 1, locomotion.AllLayers)

	m.Move(common.Vec3{Y: 1})
	assert.InDelta(t, 0.5, m.Position().Y, 1e-9)

	m.SetCapsule(0.5, common.Vec3{Y: 0.25})
	assert.Equal(t, 0.5, m.Height())
	assert.Equal(t, common.Vec3{Y: 0.25}, m.Center())
}

func TestStandUpBlockedUnderLowCeiling(t *testing.T) {
	w := NewWorld(floor(), Box{Min: common.Vec3{X: -5, Y: 1.5, Z: -5}, Max: common.Vec3{X: 5, Y: 2, Z: 5}})
	body := NewMover(w, common.Vec3{}, 0.4, 2, locomotion.AllLayers)
	cfg := locomotion.DefaultConfig()
	cfg.CrouchTransitionDuration = 0
	m := locomotion.New(cfg, locomotion.Capsule{Height: 2, Center: common.Vec3{Y: 1}}, w,
		locomotion.Hooks{Position: body.Position}, logger.Discard())

	m.StartCrouch()
	m.StopCrouch()
	assert.True(t, m.Crouching())

	body.SetPosition(common.Vec3{X: 20})
	m.StopCrouch()
	assert.False(t, m.Crouching())
}

func TestRayTargeter(t *testing.T) {
	w := NewWorld(Box{Min: common.Vec3{X: -1, Y: -1, Z: 4}, Max: common.Vec3{X: 1, Y: 1, Z: 5}})
	tg := RayTargeter{World: w, Range: 50, Mask: locomotion.AllLayers}

	got := tg.Target(common.Vec3{}, common.Vec3{Z: 1})
	assert.InDelta(t, 4, got.Z, 1e-9)

	got = tg.Target(common.Vec3{}, common.Vec3{X: 2})
	assert.InDelta(t, 50, got.X, 1e-9)
}

func TestWorldReset(t *testing.T) {
	w := NewWorld(floor())
	w.Add(Box{Min: common.Vec3{X: 1}, Max: common.Vec3{X: 2, Y: 1, Z: 1}})
	assert.Equal(t, 2, w.Len())
	w.Reset(nil)
	assert.Equal(t, 0, w.Len())
}
