package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/locomotion"
	"github.com/milk9111/fpscontroller/logger"
	"github.com/milk9111/fpscontroller/movement"
	movementmock "github.com/milk9111/fpscontroller/movement/mock"
)

const dt = 1.0 / 60.0

var standing = locomotion.Capsule{Height: 2, Center: common.Vec3{Y: 1}}

func setup(t *testing.T, grounded bool) (*movement.Integrator, *locomotion.Machine, *movementmock.MockExecutor) {
	t.Helper()
	ctrl := gomock.NewController(t)
	exec := movementmock.NewMockExecutor(ctrl)
	exec.EXPECT().Grounded().Return(grounded).AnyTimes()
	m := locomotion.New(locomotion.DefaultConfig(), standing, nil, locomotion.Hooks{}, logger.Discard())
	return movement.NewIntegrator(movement.DefaultConfig(), exec, m), m, exec
}

func captureMove(exec *movementmock.MockExecutor) *common.Vec3 {
	var got common.Vec3
	exec.EXPECT().Move(gomock.Any()).Do(func(d common.Vec3) { got = d })
	return &got
}

func TestStepGroundedIdleSticks(t *testing.T) {
	in, m, exec := setup(t, true)
	m.SetVerticalVelocity(-12)
	got := captureMove(exec)

	delta := in.Step(common.Vec2{}, 0, dt)

	wantV := -2 + -30*dt
	assert.InDelta(t, wantV, m.VerticalVelocity(), 1e-12)
	assert.InDelta(t, wantV*dt, delta.Y, 1e-12)
	assert.Zero(t, delta.X)
	assert.Zero(t, delta.Z)
	assert.Equal(t, delta, *got)
	assert.Equal(t, locomotion.Grounded, m.Mode())
}

func TestStepAirborneAccumulatesGravity(t *testing.T) {
	in, m, exec := setup(t, false)
	exec.EXPECT().Move(gomock.Any()).Times(2)

	in.Step(common.Vec2{}, 0, dt)
	in.Step(common.Vec2{}, 0, dt)

	assert.InDelta(t, -60*dt, m.VerticalVelocity(), 1e-12)
	assert.Equal(t, locomotion.Airborne, m.Mode())
}

func TestHorizontalSpeed(t *testing.T) {
	cases := []struct {
		name  string
		setup func(m *locomotion.Machine)
		axis  common.Vec2
		yaw   float64
		want  common.Vec3
	}{
		{"walk_forward", func(*locomotion.Machine) {}, common.Vec2{Y: 1}, 0, common.Vec3{Z: 10}},
		{"strafe_right", func(*locomotion.Machine) {}, common.Vec2{X: 1}, 0, common.Vec3{X: 10}},
		{"sprint", func(m *locomotion.Machine) { m.StartSprint() }, common.Vec2{Y: 1}, 0, common.Vec3{Z: 15}},
		{"crouch", func(m *locomotion.Machine) { m.StartCrouch() }, common.Vec2{Y: 1}, 0, common.Vec3{Z: 5}},
		{"turned", func(*locomotion.Machine) {}, common.Vec2{Y: 1}, 90, common.Vec3{X: 10}},
		{"clamped", func(*locomotion.Machine) {}, common.Vec2{Y: 3}, 0, common.Vec3{Z: 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, m, _ := setup(t, true)
			c.setup(m)
			got := in.Horizontal(c.axis, c.yaw)
			assert.InDelta(t, c.want.X, got.X, 1e-9)
			assert.InDelta(t, c.want.Y, got.Y, 1e-9)
			assert.InDelta(t, c.want.Z, got.Z, 1e-9)
		})
	}
}

func TestStepDashOverridesInput(t *testing.T) {
	in, m, exec := setup(t, true)
	require.True(t, m.Dash(common.Vec3{X: 1}))
	got := captureMove(exec)

	in.Step(common.Vec2{Y: 1}, 0, dt)

	assert.InDelta(t, 20*dt, got.X, 1e-9)
	assert.Zero(t, got.Z, "move input ignored while dashing")
	assert.Less(t, got.Y, 0.0, "gravity still applies")
}

func TestJump(t *testing.T) {
	in, m, exec := setup(t, true)
	require.True(t, in.Jump())
	assert.Equal(t, 10.0, m.VerticalVelocity())

	got := captureMove(exec)
	in.Step(common.Vec2{}, 0, dt)
	assert.Greater(t, got.Y, 0.0, "jump velocity is not clamped to the stick value")

	air, am, _ := setup(t, false)
	assert.False(t, air.Jump())
	assert.Zero(t, am.VerticalVelocity())
}

func TestSyncCapsule(t *testing.T) {
	in, m, exec := setup(t, true)
	m.StartCrouch()
	m.Advance(0.1)
	c := m.Capsule()
	exec.EXPECT().SetCapsule(c.Height, c.Center)
	in.SyncCapsule()
}

func TestStepIgnoresNonPositiveDelta(t *testing.T) {
	in, _, _ := setup(t, true)
	assert.Equal(t, common.Vec3{}, in.Step(common.Vec2{Y: 1}, 0, 0))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, movement.DefaultConfig().Validate())
	bad := movement.DefaultConfig()
	bad.Gravity = 9.8
	assert.Error(t, bad.Validate())
}
