// Package camera couples a first-person camera rig to a character's
// locomotion state. It only reads that state.
package camera

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/milk9111/fpscontroller/common"
)

// Subject is the read-only locomotion view the rig follows.
type Subject interface {
	Crouching() bool
	Dashing() bool
	LookMultiplier() float64
}

type Config struct {
	// Sensitivity converts look input to degrees per second.
	Sensitivity float64
	// BaseOffset is the camera position relative to the body.
	BaseOffset common.Vec3
	// CrouchOffset is added to BaseOffset.Y while crouching.
	CrouchOffset float64
	// Smoothing is the exponential approach rate of the offset, per second.
	Smoothing  float64
	PitchLimit float64

	ShakeIntensity float64
	ShakeDuration  float64
	// Seed drives the shake jitter. Rigs with the same seed shake the same.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Sensitivity:    100,
		BaseOffset:     common.Vec3{Y: 1.6},
		CrouchOffset:   -0.5,
		Smoothing:      5,
		PitchLimit:     90,
		ShakeIntensity: 2,
		ShakeDuration:  0.2,
		Seed:           1,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Sensitivity < 0:
		return fmt.Errorf("camera: sensitivity must be non-negative, got %v", c.Sensitivity)
	case c.Smoothing < 0:
		return fmt.Errorf("camera: smoothing must be non-negative, got %v", c.Smoothing)
	case c.PitchLimit <= 0 || c.PitchLimit > 90:
		return fmt.Errorf("camera: pitch limit must be in (0,90], got %v", c.PitchLimit)
	case c.ShakeDuration < 0 || c.ShakeIntensity < 0:
		return fmt.Errorf("camera: shake duration and intensity must be non-negative")
	}
	return nil
}

type shake struct {
	active  bool
	elapsed float64
	pitch   float64
	yaw     float64
}

// Rig holds the camera's local pitch, offset and dash shake. Yaw belongs to
// the body; Look returns the yaw delta for the caller to apply.
type Rig struct {
	cfg    Config
	pitch  float64
	offset common.Vec3
	shake  shake
	// shaken is set once a shake has run during the current dash.
	shaken bool
	rng    *rand.Rand
}

func NewRig(cfg Config) *Rig {
	return &Rig{
		cfg:    cfg,
		offset: cfg.BaseOffset,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Look applies one tick of look input. Pitch is kept local and clamped; the
// scaled yaw delta in degrees is returned.
func (r *Rig) Look(axis common.Vec2, subject Subject, dt float64) float64 {
	if r == nil || dt <= 0 {
		return 0
	}
	scale := r.cfg.Sensitivity * dt
	if subject != nil {
		scale *= subject.LookMultiplier()
	}
	r.pitch = common.Clamp(r.pitch-axis.Y*scale, -r.cfg.PitchLimit, r.cfg.PitchLimit)
	return axis.X * scale
}

// Update moves the offset toward its target and steps the dash shake.
func (r *Rig) Update(subject Subject, dt float64) {
	if r == nil || dt <= 0 {
		return
	}

	target := r.cfg.BaseOffset
	if subject != nil && subject.Crouching() {
		target.Y += r.cfg.CrouchOffset
	}
	k := 1 - math.Exp(-r.cfg.Smoothing*dt)
	r.offset = r.offset.Lerp(target, k)

	dashing := subject != nil && subject.Dashing()
	if !dashing {
		r.StopShake()
		r.shaken = false
		return
	}
	if !r.shake.active && !r.shaken && r.cfg.ShakeDuration > 0 {
		r.shake = shake{active: true}
		r.shaken = true
	}
	if !r.shake.active {
		return
	}
	if r.shake.elapsed >= r.cfg.ShakeDuration-common.Epsilon {
		r.StopShake()
		return
	}
	amount := r.cfg.ShakeIntensity * (1 - r.shake.elapsed/r.cfg.ShakeDuration)
	r.shake.pitch = r.jitter(amount)
	r.shake.yaw = r.jitter(amount)
	r.shake.elapsed += dt
}

// StopShake cancels an in-flight shake and clears its jitter.
func (r *Rig) StopShake() {
	if r == nil {
		return
	}
	r.shake = shake{}
}

func (r *Rig) jitter(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return (r.rng.Float64()*2 - 1) * amount
}

// Pitch is the look pitch in degrees without shake.
func (r *Rig) Pitch() float64 {
	if r == nil {
		return 0
	}
	return r.pitch
}

// Orientation is the rendered local pitch and yaw in degrees, shake included.
func (r *Rig) Orientation() (pitch, yaw float64) {
	if r == nil {
		return 0, 0
	}
	return r.pitch + r.shake.pitch, r.shake.yaw
}

func (r *Rig) Offset() common.Vec3 {
	if r == nil {
		return common.Vec3{}
	}
	return r.offset
}

func (r *Rig) Shaking() bool {
	return r != nil && r.shake.active
}

func (r *Rig) Config() Config {
	return r.cfg
}
