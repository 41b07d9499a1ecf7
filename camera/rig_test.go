package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/fpscontroller/common"
)

const dt = 1.0 / 60.0

type subject struct {
	crouching bool
	dashing   bool
	look      float64
}

func (s *subject) Crouching() bool { return s.crouching }
func (s *subject) Dashing() bool   { return s.dashing }
func (s *subject) LookMultiplier() float64 {
	if s.look == 0 {
		return 1
	}
	return s.look
}

func TestLookClampsPitch(t *testing.T) {
	r := NewRig(DefaultConfig())
	s := &subject{}

	r.Look(common.Vec2{Y: 1000}, s, dt)
	assert.Equal(t, -90.0, r.Pitch())

	r.Look(common.Vec2{Y: -5000}, s, dt)
	assert.Equal(t, 90.0, r.Pitch())
}

func TestLookYawScaledByLocomotion(t *testing.T) {
	r := NewRig(DefaultConfig())

	yaw := r.Look(common.Vec2{X: 1}, &subject{}, dt)
	assert.InDelta(t, 100*dt, yaw, 1e-12)

	yaw = r.Look(common.Vec2{X: 1}, &subject{look: 0.3}, dt)
	assert.InDelta(t, 0.3*100*dt, yaw, 1e-12)
}

func TestCrouchOffsetSmoothing(t *testing.T) {
	r := NewRig(DefaultConfig())
	s := &subject{crouching: true}

	r.Update(s, dt)
	want := 1.6 - 0.5*(1-math.Exp(-5*dt))
	assert.InDelta(t, want, r.Offset().Y, 1e-12)

	for i := 0; i < 600; i++ {
		r.Update(s, dt)
	}
	assert.InDelta(t, 1.1, r.Offset().Y, 1e-6)

	s.crouching = false
	for i := 0; i < 600; i++ {
		r.Update(s, dt)
	}
	assert.InDelta(t, 1.6, r.Offset().Y, 1e-6)
}

func TestDashShakeRunsOncePerDash(t *testing.T) {
	r := NewRig(DefaultConfig())
	s := &subject{dashing: true}

	r.Update(s, dt)
	require.True(t, r.Shaking())
	pitch, yaw := r.Orientation()
	assert.LessOrEqual(t, math.Abs(pitch), 2.0)
	assert.LessOrEqual(t, math.Abs(yaw), 2.0)

	for i := 0; i < 11; i++ {
		r.Update(s, dt)
		require.True(t, r.Shaking(), "tick %d", i)
	}
	r.Update(s, dt)
	assert.False(t, r.Shaking(), "shake ends after its duration")

	for i := 0; i < 30; i++ {
		r.Update(s, dt)
		require.False(t, r.Shaking(), "no restart within the same dash")
	}
	pitch, yaw = r.Orientation()
	assert.Zero(t, pitch)
	assert.Zero(t, yaw)

	s.dashing = false
	r.Update(s, dt)
	s.dashing = true
	r.Update(s, dt)
	assert.True(t, r.Shaking(), "a new dash shakes again")
}

func TestDashShakeCancelledWhenDashEnds(t *testing.T) {
	r := NewRig(DefaultConfig())
	r.Look(common.Vec2{Y: -10}, nil, dt)
	base := r.Pitch()
	s := &subject{dashing: true}

	r.Update(s, dt)
	r.Update(s, dt)
	require.True(t, r.Shaking())

	s.dashing = false
	r.Update(s, dt)
	assert.False(t, r.Shaking())
	pitch, yaw := r.Orientation()
	assert.Equal(t, base, pitch)
	assert.Zero(t, yaw)
}

func TestShakeFades(t *testing.T) {
	cfg := DefaultConfig()
	r := NewRig(cfg)
	s := &subject{dashing: true}
	for i := 0; i < 12; i++ {
		r.Update(s, dt)
		limit := cfg.ShakeIntensity * (1 - float64(i)*dt/cfg.ShakeDuration)
		pitch, yaw := r.Orientation()
		assert.LessOrEqual(t, math.Abs(pitch), limit+1e-9)
		assert.LessOrEqual(t, math.Abs(yaw), limit+1e-9)
	}
}

func TestShakeDeterministicPerSeed(t *testing.T) {
	a := NewRig(DefaultConfig())
	b := NewRig(DefaultConfig())
	s := &subject{dashing: true}
	for i := 0; i < 5; i++ {
		a.Update(s, dt)
		b.Update(s, dt)
		ap, ay := a.Orientation()
		bp, by := b.Orientation()
		assert.Equal(t, ap, bp)
		assert.Equal(t, ay, by)
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	cfg := DefaultConfig()
	cfg.PitchLimit = 120
	assert.Error(t, cfg.Validate())
}

func TestNilRig(t *testing.T) {
	var r *Rig
	assert.Zero(t, r.Look(common.Vec2{X: 1}, nil, dt))
	r.Update(nil, dt)
	assert.False(t, r.Shaking())
}
