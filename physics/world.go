// Package physics is a small static-geometry world: axis-aligned boxes on
// collision layers, a capsule mover that resolves movement axis by axis, and
// ray queries for stand-up checks and cast targeting.
package physics

import (
	"math"
	"sync"

	"github.com/milk9111/fpscontroller/common"
)

const (
	// LayerDefault is the layer of boxes that do not name one.
	LayerDefault uint32 = 1 << 0

	CollisionAxisTolerance = 1e-9
	GroundProbeDistance    = 0.001
)

// Box is a static solid. Layer is a single bit tested against query masks.
type Box struct {
	Min   common.Vec3
	Max   common.Vec3
	Layer uint32
}

func (b Box) layer() uint32 {
	if b.Layer == 0 {
		return LayerDefault
	}
	return b.Layer
}

// Hit is the nearest ray intersection.
type Hit struct {
	Point    common.Vec3
	Distance float64
	Index    int
}

// World holds static boxes. Queries may run concurrently with each other;
// Add and Reset take the write lock.
type World struct {
	mu    sync.RWMutex
	boxes []Box
}

func NewWorld(boxes ...Box) *World {
	w := &World{}
	w.boxes = append(w.boxes, boxes...)
	return w
}

func (w *World) Add(b Box) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.boxes = append(w.boxes, b)
	w.mu.Unlock()
}

// Reset replaces all geometry.
func (w *World) Reset(boxes []Box) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.boxes = append(w.boxes[:0:0], boxes...)
	w.mu.Unlock()
}

func (w *World) Len() int {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.boxes)
}

// Raycast returns the nearest box on mask hit by the ray within distance.
// direction need not be normalized.
func (w *World) Raycast(origin, direction common.Vec3, distance float64, mask uint32) (Hit, bool) {
	if w == nil || distance <= 0 {
		return Hit{}, false
	}
	dir := direction.Normalize()
	if dir == (common.Vec3{}) {
		return Hit{}, false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	best := Hit{Distance: math.Inf(1), Index: -1}
	for i, b := range w.boxes {
		if b.layer()&mask == 0 {
			continue
		}
		t, ok := rayBox(origin, dir, b)
		if !ok || t > distance || t >= best.Distance {
			continue
		}
		best = Hit{Point: origin.Add(dir.Scale(t)), Distance: t, Index: i}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	return best, true
}

// Blocked reports whether anything on mask lies along the ray. It satisfies
// locomotion.Probe.
func (w *World) Blocked(origin, direction common.Vec3, distance float64, mask uint32) bool {
	_, ok := w.Raycast(origin, direction, distance, mask)
	return ok
}

func (w *World) collides(aabb Box, mask uint32) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, b := range w.boxes {
		if b.layer()&mask != 0 && intersects(aabb, b) {
			return true
		}
	}
	return false
}

// rayBox is the slab test. It returns the entry distance, or 0 when the
// origin is inside the box.
func rayBox(origin, dir common.Vec3, b Box) (float64, bool) {
	tMin, tMax := 0.0, math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o, d := component(origin, axis), component(dir, axis)
		lo, hi := component(b.Min, axis), component(b.Max, axis)
		if math.Abs(d) < CollisionAxisTolerance {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

func intersects(a, b Box) bool {
	return a.Min.X < b.Max.X &&
		a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y &&
		a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z &&
		a.Max.Z > b.Min.Z
}

func component(v common.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func withComponent(v common.Vec3, axis int, value float64) common.Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= CollisionAxisTolerance
}
