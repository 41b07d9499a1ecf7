// Package movement turns locomotion state and a move axis into a per-tick
// displacement and hands it to an Executor that owns collision.
package movement

import "github.com/milk9111/fpscontroller/common"

//go:generate mockgen -destination=mock/mock_executor.go -package=movementmock github.com/milk9111/fpscontroller/movement Executor

// Executor applies displacements to a body and resolves collisions. The
// integrator never inspects geometry itself.
type Executor interface {
	Move(delta common.Vec3)
	Grounded() bool
	// Position returns the feet position.
	Position() common.Vec3
	SetCapsule(height float64, center common.Vec3)
}
