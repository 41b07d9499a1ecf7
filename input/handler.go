// Package input turns per-tick device snapshots into controller calls:
// press and release edges, hold durations for ability buttons, and the
// sprint plus crouch dash chord.
package input

import (
	"log/slog"

	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/logger"
)

type Button uint8

const (
	ButtonJump Button = iota
	ButtonSprint
	ButtonCrouch
	ButtonFirstSkill
	ButtonSecondSkill
	ButtonUltimate
	ButtonPassive

	buttonCount
)

var buttonNames = [buttonCount]string{
	ButtonJump:        "jump",
	ButtonSprint:      "sprint",
	ButtonCrouch:      "crouch",
	ButtonFirstSkill:  "first_skill",
	ButtonSecondSkill: "second_skill",
	ButtonUltimate:    "ultimate",
	ButtonPassive:     "passive",
}

func (b Button) String() string {
	if b < buttonCount {
		return buttonNames[b]
	}
	return "unknown"
}

// ParseButton maps a button name back to its value.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// Snapshot is the device state sampled once per tick.
type Snapshot struct {
	Move common.Vec2
	Look common.Vec2
	Down [buttonCount]bool
}

// Press marks b as held.
func (s *Snapshot) Press(b Button) {
	if b < buttonCount {
		s.Down[b] = true
	}
}

// Target is the controller surface the handler drives.
type Target interface {
	HandleMovement(axis common.Vec2, sprint, crouch bool)
	HandleRotation(axis common.Vec2)
	Jump()
	StartCrouch()
	StopCrouch()
	StartSprint()
	StopSprint()
	PerformDash(axis common.Vec2)
	AskForFirstSkill(hold float64)
	AskForSecondSkill(hold float64)
	AskForUltimate(hold float64)
	AskForPassive(hold float64)
}

var skillButtons = [...]Button{ButtonFirstSkill, ButtonSecondSkill, ButtonUltimate, ButtonPassive}

type Handler struct {
	target Target
	log    *slog.Logger

	prev      Snapshot
	sprinting bool
	crouching bool
	hold      [buttonCount]float64
}

func NewHandler(target Target, log *slog.Logger) *Handler {
	return &Handler{target: target, log: logger.Or(log)}
}

// Update feeds one snapshot. Edges fire before continuous input is
// forwarded; ability buttons fire on release with the time they were held.
func (h *Handler) Update(s Snapshot, dt float64) {
	if h == nil || h.target == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}

	if h.pressed(s, ButtonJump) {
		h.target.Jump()
	}

	if h.pressed(s, ButtonCrouch) {
		h.crouching = true
		if h.sprinting {
			h.dash(s.Move)
		} else {
			h.target.StartCrouch()
		}
	} else if h.released(s, ButtonCrouch) {
		h.crouching = false
		h.target.StopCrouch()
	}

	if h.pressed(s, ButtonSprint) {
		h.sprinting = true
		if h.crouching {
			h.dash(s.Move)
		} else {
			h.target.StartSprint()
		}
	} else if h.released(s, ButtonSprint) {
		h.sprinting = false
		h.target.StopSprint()
	}

	for _, b := range skillButtons {
		if h.released(s, b) {
			h.fire(b, h.hold[b])
			h.hold[b] = 0
		}
		if s.Down[b] {
			h.hold[b] += dt
		}
	}

	h.target.HandleMovement(s.Move, h.sprinting, h.crouching)
	h.target.HandleRotation(s.Look)
	h.prev = s
}

// Held returns how long b has been held so far.
func (h *Handler) Held(b Button) float64 {
	if h == nil || b >= buttonCount {
		return 0
	}
	return h.hold[b]
}

func (h *Handler) pressed(s Snapshot, b Button) bool {
	return s.Down[b] && !h.prev.Down[b]
}

func (h *Handler) released(s Snapshot, b Button) bool {
	return !s.Down[b] && h.prev.Down[b]
}

func (h *Handler) dash(move common.Vec2) {
	h.log.Debug("dash chord", "move", move)
	h.target.PerformDash(move)
}

func (h *Handler) fire(b Button, hold float64) {
	h.log.Debug("ability released", "button", b, "hold", hold)
	switch b {
	case ButtonFirstSkill:
		h.target.AskForFirstSkill(hold)
	case ButtonSecondSkill:
		h.target.AskForSecondSkill(hold)
	case ButtonUltimate:
		h.target.AskForUltimate(hold)
	case ButtonPassive:
		h.target.AskForPassive(hold)
	}
}
