package physics

import (
	"github.com/milk9111/fpscontroller/common"
)

// Mover is a box-approximated capsule body that satisfies
// movement.Executor. Movement resolves Y first, then X, then Z, each axis
// clipped against the world independently.
type Mover struct {
	world  *World
	mask   uint32
	radius float64

	pos      common.Vec3
	height   float64
	center   common.Vec3
	grounded bool
}

func NewMover(world *World, pos common.Vec3, radius, height float64, mask uint32) *Mover {
	m := &Mover{
		world:  world,
		mask:   mask,
		radius: radius,
		pos:    pos,
		height: height,
		center: common.Vec3{Y: height / 2},
	}
	m.grounded = m.probeGround()
	return m
}

func (m *Mover) Move(delta common.Vec3) {
	if m == nil {
		return
	}
	if m.world == nil {
		m.pos = m.pos.Add(delta)
		m.grounded = false
		return
	}
	for _, axis := range [3]int{1, 0, 2} {
		m.pos = withComponent(m.pos, axis, component(m.pos, axis)+m.resolveAxis(axis, component(delta, axis)))
	}
	m.grounded = m.probeGround()
}

func (m *Mover) Grounded() bool {
	return m != nil && m.grounded
}

func (m *Mover) Position() common.Vec3 {
	if m == nil {
		return common.Vec3{}
	}
	return m.pos
}

// SetPosition teleports the body without collision.
func (m *Mover) SetPosition(pos common.Vec3) {
	if m == nil {
		return
	}
	m.pos = pos
	m.grounded = m.probeGround()
}

// SetCapsule resizes the body. The box keeps its feet in place.
func (m *Mover) SetCapsule(height float64, center common.Vec3) {
	if m == nil {
		return
	}
	m.height = height
	m.center = center
}

func (m *Mover) Height() float64 {
	if m == nil {
		return 0
	}
	return m.height
}

func (m *Mover) Center() common.Vec3 {
	if m == nil {
		return common.Vec3{}
	}
	return m.center
}

// Bounds is the collision box at the current position.
func (m *Mover) Bounds() Box {
	return m.boundsAt(m.pos)
}

func (m *Mover) boundsAt(p common.Vec3) Box {
	return Box{
		Min: common.Vec3{X: p.X - m.radius, Y: p.Y, Z: p.Z - m.radius},
		Max: common.Vec3{X: p.X + m.radius, Y: p.Y + m.height, Z: p.Z + m.radius},
	}
}

// resolveAxis returns how far the body can travel along one axis before it
// touches a box.
func (m *Mover) resolveAxis(axis int, delta float64) float64 {
	if nearlyEqual(delta, 0) {
		return delta
	}
	aabb := m.Bounds()
	allowed := delta

	m.world.mu.RLock()
	defer m.world.mu.RUnlock()
	for _, b := range m.world.boxes {
		if b.layer()&m.mask == 0 || !overlapsOtherAxes(aabb, b, axis) {
			continue
		}
		if delta > 0 {
			gap := component(b.Min, axis) - component(aabb.Max, axis)
			if gap >= -CollisionAxisTolerance && gap < allowed {
				allowed = max(gap, 0)
			}
		} else {
			gap := component(b.Max, axis) - component(aabb.Min, axis)
			if gap <= CollisionAxisTolerance && gap > allowed {
				allowed = min(gap, 0)
			}
		}
	}
	return allowed
}

func (m *Mover) probeGround() bool {
	if m.world == nil {
		return false
	}
	b := m.Bounds()
	probe := Box{
		Min: common.Vec3{X: b.Min.X, Y: b.Min.Y - GroundProbeDistance, Z: b.Min.Z},
		Max: common.Vec3{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
	}
	return m.world.collides(probe, m.mask)
}

func overlapsOtherAxes(a, b Box, axis int) bool {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if component(a.Min, i) >= component(b.Max, i)-CollisionAxisTolerance ||
			component(a.Max, i) <= component(b.Min, i)+CollisionAxisTolerance {
			return false
		}
	}
	return true
}
