package controller

import (
	"github.com/milk9111/fpscontroller/camera"
	"github.com/milk9111/fpscontroller/character"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/locomotion"
)

// State is an observer snapshot of a controller after a tick.
type State struct {
	Name       string           `json:"name" yaml:"name"`
	Position   common.Vec3      `json:"position" yaml:"position"`
	Yaw        float64          `json:"yaw" yaml:"yaw"`
	Pitch      float64          `json:"pitch" yaml:"pitch"`
	Locomotion locomotion.State `json:"locomotion" yaml:"locomotion"`
	Stats      character.Stats  `json:"stats" yaml:"stats"`
}

func (c *Controller) State() State {
	if c == nil {
		return State{}
	}
	return State{
		Name:       c.char.Name(),
		Position:   c.exec.Position(),
		Yaw:        c.yaw,
		Pitch:      c.rig.Pitch(),
		Locomotion: c.machine.State(),
		Stats:      c.char.Stats(),
	}
}

// Restore applies a saved snapshot: character stats, body yaw, the crouch
// pose and, when the executor can teleport, position. A crouched snapshot is
// restored crouched so the body never grows into geometry above it; standing
// up again goes through StopCrouch. Dash and transitions in flight are not
// restored.
func (c *Controller) Restore(s State) {
	if c == nil {
		return
	}
	c.char.Restore(s.Stats)
	c.yaw = wrapDegrees(s.Yaw)
	if s.Locomotion.Crouching {
		c.held.crouch = true
		c.machine.SnapCrouch()
		c.integrator.SyncCapsule()
	}
	if p, ok := c.exec.(positioner); ok {
		p.SetPosition(s.Stats.Position)
	}
	c.char.SetPosition(c.exec.Position())
}

type positioner interface {
	SetPosition(common.Vec3)
}

func (c *Controller) Yaw() float64 {
	if c == nil {
		return 0
	}
	return c.yaw
}

func (c *Controller) Character() *character.Character {
	if c == nil {
		return nil
	}
	return c.char
}

func (c *Controller) Machine() *locomotion.Machine {
	if c == nil {
		return nil
	}
	return c.machine
}

func (c *Controller) Rig() *camera.Rig {
	if c == nil {
		return nil
	}
	return c.rig
}

func (c *Controller) Config() Config {
	return c.cfg
}
