package physics

import "github.com/milk9111/fpscontroller/common"

// RayTargeter resolves a cast target as the first surface along the cast
// direction, or the point at Range when nothing is hit.
type RayTargeter struct {
	World *World
	Range float64
	Mask  uint32
}

func (t RayTargeter) Target(origin, direction common.Vec3) common.Vec3 {
	if hit, ok := t.World.Raycast(origin, direction, t.Range, t.Mask); ok {
		return hit.Point
	}
	return origin.Add(direction.Normalize().Scale(t.Range))
}
