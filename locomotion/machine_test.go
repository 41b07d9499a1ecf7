package locomotion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/locomotion"
	locomotionmock "github.com/milk9111/fpscontroller/locomotion/mock"
	"github.com/milk9111/fpscontroller/logger"
)

const frame = 1.0 / 60.0

var standing = locomotion.Capsule{Height: 2, Center: common.Vec3{Y: 1}}

type clearProbe struct{ blocked bool }

func (p *clearProbe) Blocked(common.Vec3, common.Vec3, float64, uint32) bool { return p.blocked }

func newMachine(probe locomotion.Probe) *locomotion.Machine {
	return locomotion.New(locomotion.DefaultConfig(), standing, probe, locomotion.Hooks{
		Position:      func() common.Vec3 { return common.Vec3{X: 3, Y: 0, Z: 4} },
		DashDirection: func() common.Vec3 { return common.Vec3{X: 1} },
	}, logger.Discard())
}

func advance(m *locomotion.Machine, seconds float64) {
	for t := 0.0; t < seconds-1e-9; t += frame {
		m.Advance(frame)
	}
}

func TestStartCrouchIdempotent(t *testing.T) {
	once := newMachine(&clearProbe{})
	twice := newMachine(&clearProbe{})

	once.StartCrouch()
	twice.StartCrouch()
	twice.StartCrouch()
	assert.Equal(t, once.State(), twice.State())

	advance(once, 0.1)
	advance(twice, 0.1)
	twice.StartCrouch()
	assert.Equal(t, once.State(), twice.State())
	assert.Equal(t, once.Capsule(), twice.Capsule())
}

func TestStopCrouchBlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := locomotionmock.NewMockProbe(ctrl)
	m := newMachine(probe)

	m.StartCrouch()
	advance(m, 0.5)
	require.InDelta(t, 1.0, m.Capsule().Height, 1e-9)

	probe.EXPECT().
		Blocked(common.Vec3{X: 3, Y: 1, Z: 4}, common.Up, gomock.Any(), locomotion.AllLayers).
		DoAndReturn(func(_, _ common.Vec3, distance float64, _ uint32) bool {
			assert.InDelta(t, 1.1, distance, 1e-9)
			return true
		})

	m.StopCrouch()
	assert.True(t, m.Crouching(), "blocked stand up keeps the crouch")
	assert.False(t, m.CrouchTransitioning())
	assert.InDelta(t, 1.0, m.Capsule().Height, 1e-9)

	probe.EXPECT().Blocked(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false)
	m.StopCrouch()
	assert.False(t, m.Crouching())
	advance(m, 0.2)
	assert.Equal(t, standing, m.Capsule())
}

func TestStopCrouchWhenStandingIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := locomotionmock.NewMockProbe(ctrl)
	m := newMachine(probe)

	m.StopCrouch()
	assert.False(t, m.Crouching())
	assert.Equal(t, standing, m.Capsule())
}

func TestDashPriority(t *testing.T) {
	t.Run("crouch_while_sprinting", func(t *testing.T) {
		m := newMachine(&clearProbe{})
		m.StartSprint()
		m.StartCrouch()
		assert.True(t, m.Dashing())
		assert.False(t, m.Crouching(), "crouch flag must not be set by a conflicting request")
		assert.True(t, m.Sprinting())
		assert.Equal(t, standing, m.Capsule())
	})
	t.Run("sprint_while_crouching", func(t *testing.T) {
		m := newMachine(&clearProbe{})
		m.StartCrouch()
		m.StartSprint()
		assert.True(t, m.Dashing())
		assert.False(t, m.Sprinting(), "sprint flag must not be set by a conflicting request")
		assert.True(t, m.Crouching())
	})
}

func TestDashCooldown(t *testing.T) {
	m := newMachine(&clearProbe{})
	require.True(t, m.Dash(common.Vec3{Z: 1}))

	advance(m, 0.5)
	require.False(t, m.Dashing())

	assert.False(t, m.Dash(common.Vec3{Z: 1}))
	assert.False(t, m.Dashing(), "rejected dash must not change state")
	assert.Equal(t, 0.0, m.LastDashTime())

	advance(m, 1.5)
	assert.True(t, m.CanDash())
	assert.True(t, m.Dash(common.Vec3{Z: 1}))
}

func TestDashSelfTerminates(t *testing.T) {
	m := newMachine(&clearProbe{})
	m.StartSprint()
	m.StartCrouch()
	require.True(t, m.Dashing())

	ticks := 0
	for m.Dashing() {
		m.Advance(frame)
		ticks++
		require.Less(t, ticks, 100)
	}
	assert.Equal(t, 18, ticks)
	assert.True(t, m.Sprinting(), "held sprint survives the dash")
	assert.False(t, m.Crouching())
}

func TestSpeedMultiplier(t *testing.T) {
	cfg := locomotion.DefaultConfig()
	cases := []struct {
		name  string
		setup func(m *locomotion.Machine)
		want  float64
	}{
		{"idle", func(*locomotion.Machine) {}, 1},
		{"sprint", func(m *locomotion.Machine) { m.StartSprint() }, cfg.SprintSpeedMultiplier},
		{"crouch", func(m *locomotion.Machine) { m.StartCrouch() }, cfg.CrouchSpeedMultiplier},
		{"sprint_then_stop", func(m *locomotion.Machine) { m.StartSprint(); m.StopSprint() }, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := newMachine(&clearProbe{})
			c.setup(m)
			assert.Equal(t, c.want, m.SpeedMultiplier())
		})
	}
}

func TestLookMultiplierDuringDash(t *testing.T) {
	m := newMachine(&clearProbe{})
	assert.Equal(t, 1.0, m.LookMultiplier())
	m.Dash(common.Vec3{})
	assert.Equal(t, 0.3, m.LookMultiplier())
	advance(m, 0.3)
	assert.Equal(t, 1.0, m.LookMultiplier())
}

func TestDashVelocityCurve(t *testing.T) {
	m := newMachine(&clearProbe{})
	assert.Equal(t, common.Vec3{}, m.DashVelocity())

	require.True(t, m.Dash(common.Vec3{X: 2, Y: 5}))
	v0 := m.DashVelocity()
	assert.InDelta(t, 20, v0.X, 1e-9)
	assert.Zero(t, v0.Y, "dash is horizontal")

	prev := v0.X
	for m.Dashing() {
		m.Advance(frame)
		v := m.DashVelocity().X
		assert.LessOrEqual(t, v, prev)
		prev = v
	}
	assert.Equal(t, common.Vec3{}, m.DashVelocity())
}

func TestConflictDashUsesHookDirection(t *testing.T) {
	m := newMachine(&clearProbe{})
	m.StartCrouch()
	m.StartSprint()
	assert.InDelta(t, 20, m.DashVelocity().X, 1e-9)
}

func TestCrouchTransitionRestartsFromCurrent(t *testing.T) {
	m := newMachine(&clearProbe{})
	m.StartCrouch()
	advance(m, 0.1)
	mid := m.Capsule().Height
	require.Greater(t, mid, 1.0)
	require.Less(t, mid, 2.0)

	m.StopCrouch()
	assert.Equal(t, mid, m.Capsule().Height, "restart must not snap")
	m.Advance(frame)
	assert.Greater(t, m.Capsule().Height, mid)

	advance(m, 0.2)
	assert.False(t, m.CrouchTransitioning())
	assert.Equal(t, standing, m.Capsule())
}

func TestCrouchedCapsuleCenter(t *testing.T) {
	m := newMachine(&clearProbe{})
	m.StartCrouch()
	advance(m, 0.2)
	assert.Equal(t, locomotion.Capsule{Height: 1, Center: common.Vec3{Y: 0.5}}, m.Capsule())
}

func TestInstantCrouchTransition(t *testing.T) {
	cfg := locomotion.DefaultConfig()
	cfg.CrouchTransitionDuration = 0
	m := locomotion.New(cfg, standing, nil, locomotion.Hooks{}, logger.Discard())
	m.StartCrouch()
	assert.Equal(t, 1.0, m.Capsule().Height)
	m.StopCrouch()
	assert.Equal(t, standing, m.Capsule())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, locomotion.DefaultConfig().Validate())

	bad := locomotion.DefaultConfig()
	bad.DashDuration = 0
	assert.Error(t, bad.Validate())

	bad = locomotion.DefaultConfig()
	bad.CrouchHeightMultiplier = 1.5
	assert.Error(t, bad.Validate())
}

func TestModeFromGrounding(t *testing.T) {
	m := newMachine(nil)
	assert.Equal(t, locomotion.Grounded, m.Mode())
	m.SetGrounded(false)
	assert.Equal(t, locomotion.Airborne, m.Mode())
	assert.Equal(t, "airborne", m.Mode().String())
}

func TestModeText(t *testing.T) {
	b, err := locomotion.Airborne.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "airborne", string(b))

	var m locomotion.Mode
	require.NoError(t, m.UnmarshalText([]byte("grounded")))
	assert.Equal(t, locomotion.Grounded, m)
	assert.Error(t, m.UnmarshalText([]byte("swimming")))
}

func TestSnapCrouch(t *testing.T) {
	m := newMachine(&clearProbe{})
	m.StartSprint()
	m.SnapCrouch()

	assert.True(t, m.Crouching())
	assert.False(t, m.Sprinting())
	assert.False(t, m.Dashing(), "snapping never dashes")
	assert.False(t, m.CrouchTransitioning())
	assert.Equal(t, locomotion.Capsule{Height: 1, Center: common.Vec3{Y: 0.5}}, m.Capsule())

	m.StopCrouch()
	advance(m, 0.5)
	assert.Equal(t, standing, m.Capsule())
}
