package locomotion

import (
	"github.com/milk9111/fpscontroller/common"
)

// StartSprint raises the sprint flag. While crouching it dashes instead and
// leaves the sprint flag down.
func (m *Machine) StartSprint() {
	if m == nil || m.sprinting {
		return
	}
	if m.crouching {
		m.Dash(m.conflictDashDirection())
		return
	}
	m.sprinting = true
	m.log.Debug("started sprinting")
}

func (m *Machine) StopSprint() {
	if m == nil || !m.sprinting {
		return
	}
	m.sprinting = false
	m.log.Debug("stopped sprinting")
}

// StartCrouch lowers the character. While sprinting it dashes instead and
// leaves the crouch flag down.
func (m *Machine) StartCrouch() {
	if m == nil || m.crouching {
		return
	}
	if m.sprinting {
		m.Dash(m.conflictDashDirection())
		return
	}
	m.crouching = true
	m.startCrouchTween(m.crouchedCapsule())
	m.log.Debug("started crouching")
}

// StopCrouch stands the character up unless geometry above blocks it, in
// which case the character stays crouched until the next request.
func (m *Machine) StopCrouch() {
	if m == nil || !m.crouching {
		return
	}
	if !m.CanStandUp() {
		m.log.Debug("stand up blocked")
		return
	}
	m.crouching = false
	m.startCrouchTween(m.standing)
	m.log.Debug("stopped crouching")
}

// SnapCrouch puts the machine in the crouched pose at once, skipping the
// height transition. Used when restoring a character that was crouching.
func (m *Machine) SnapCrouch() {
	if m == nil {
		return
	}
	m.sprinting = false
	m.crouching = true
	m.tween = crouchTween{}
	m.capsule = m.crouchedCapsule()
}

// CanStandUp probes from the top of the current capsule up to the standing
// height.
func (m *Machine) CanStandUp() bool {
	if m == nil || m.probe == nil {
		return true
	}
	var feet common.Vec3
	if m.hooks.Position != nil {
		feet = m.hooks.Position()
	}
	origin := feet.Add(common.Up.Scale(m.capsule.Height))
	distance := m.standing.Height - m.capsule.Height + m.cfg.StandUpClearance
	if distance <= 0 {
		return true
	}
	return !m.probe.Blocked(origin, common.Up, distance, m.cfg.StandUpMask)
}

// CanDash reports whether the dash cooldown has elapsed.
func (m *Machine) CanDash() bool {
	if m == nil {
		return false
	}
	return m.now-m.lastDashTime >= m.cfg.DashCooldown-common.Epsilon
}

// Dash starts a dash along the horizontal part of direction if the cooldown
// allows it; a zero direction dashes along +Z. The result is informational,
// a rejected dash changes nothing.
func (m *Machine) Dash(direction common.Vec3) bool {
	if m == nil {
		return false
	}
	if !m.CanDash() {
		m.log.Debug("dash rejected: cooling down", "remaining", m.lastDashTime+m.cfg.DashCooldown-m.now)
		return false
	}
	dir := direction.Horizontal().Normalize()
	if dir == (common.Vec3{}) {
		dir = common.Forward3
	}
	m.dash = dashState{active: true, direction: dir}
	m.lastDashTime = m.now
	m.log.Debug("dashing", "direction", dir)
	return true
}

func (m *Machine) conflictDashDirection() common.Vec3 {
	if m.hooks.DashDirection == nil {
		return common.Vec3{}
	}
	return m.hooks.DashDirection()
}

func (m *Machine) crouchedCapsule() Capsule {
	h := m.standing.Height * m.cfg.CrouchHeightMultiplier
	return Capsule{
		Height: h,
		Center: common.Vec3{X: m.standing.Center.X, Y: h / 2, Z: m.standing.Center.Z},
	}
}

// startCrouchTween replaces any in-flight transition with one from the
// current shape to target.
func (m *Machine) startCrouchTween(target Capsule) {
	if m.cfg.CrouchTransitionDuration <= 0 {
		m.tween = crouchTween{}
		m.capsule = target
		return
	}
	m.tween = crouchTween{active: true, from: m.capsule, to: target}
}
