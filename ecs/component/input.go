package component

import "github.com/milk9111/fpscontroller/input"

// Input is the device state for the next tick and the handler that turns it
// into controller calls.
type Input struct {
	Snapshot input.Snapshot
	Handler  *input.Handler
}

var InputComponent = NewComponent[Input]()
