package locomotion

import "github.com/milk9111/fpscontroller/common"

// SpeedMultiplier resolves the horizontal speed scale for this tick.
func (m *Machine) SpeedMultiplier() float64 {
	if m == nil {
		return 1
	}
	switch {
	case m.crouching && !m.sprinting:
		return m.cfg.CrouchSpeedMultiplier
	case m.sprinting && !m.crouching:
		return m.cfg.SprintSpeedMultiplier
	default:
		return 1
	}
}

// LookMultiplier scales look sensitivity; it is reduced for the whole dash.
func (m *Machine) LookMultiplier() float64 {
	if m == nil || !m.dash.active {
		return 1
	}
	return m.cfg.DashRotationMultiplier
}

// DashVelocity is the horizontal velocity the dash drives this tick, or zero
// when not dashing.
func (m *Machine) DashVelocity() common.Vec3 {
	if m == nil || !m.dash.active {
		return common.Vec3{}
	}
	k := m.dashCurve.Evaluate(m.dash.elapsed / m.cfg.DashDuration)
	return m.dash.direction.Scale(m.cfg.DashForce * k)
}

// Advance moves the clock forward by dt and steps the dash and crouch
// transitions. Call it once per tick after movement has been integrated.
func (m *Machine) Advance(dt float64) {
	if m == nil || dt <= 0 {
		return
	}
	m.now += dt

	if m.dash.active {
		m.dash.elapsed += dt
		if m.dash.elapsed >= m.cfg.DashDuration-common.Epsilon {
			m.dash = dashState{}
			m.log.Debug("dash completed")
		}
	}

	if m.tween.active {
		m.tween.elapsed += dt
		t := common.Clamp01(m.tween.elapsed / m.cfg.CrouchTransitionDuration)
		m.capsule = m.tween.from.lerp(m.tween.to, m.crouchCurve.Evaluate(t))
		if t >= 1 {
			m.capsule = m.tween.to
			m.tween = crouchTween{}
		}
	}
}

// State is a read-only snapshot for observers.
type State struct {
	Mode             Mode    `json:"mode" yaml:"mode"`
	Sprinting        bool    `json:"sprinting" yaml:"sprinting"`
	Crouching        bool    `json:"crouching" yaml:"crouching"`
	Dashing          bool    `json:"dashing" yaml:"dashing"`
	VerticalVelocity float64 `json:"vertical_velocity" yaml:"vertical_velocity"`
	Height           float64 `json:"height" yaml:"height"`
}

func (m *Machine) State() State {
	if m == nil {
		return State{}
	}
	return State{
		Mode:             m.mode,
		Sprinting:        m.sprinting,
		Crouching:        m.crouching,
		Dashing:          m.dash.active,
		VerticalVelocity: m.verticalVelocity,
		Height:           m.capsule.Height,
	}
}
