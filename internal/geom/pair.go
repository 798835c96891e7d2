// Package geom provides the observed-point primitives shared by the
// trajectory and solver packages.
//
// The underlying vector algebra is [mgl64.Vec3]; geom only adds the
// frame-relative Pair tuple and the interpolation helpers the trajectory
// queries need.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pair is a mobile point observed from a frame: Origin is the frame
// position, Position the observed point, both in absolute coordinates.
type Pair struct {
	Origin   mgl64.Vec3
	Position mgl64.Vec3
}

func New(origin, position mgl64.Vec3) Pair {
	return Pair{Origin: origin, Position: position}
}

// At returns a Pair observed from the absolute frame.
func At(position mgl64.Vec3) Pair {
	return Pair{Position: position}
}

// Relative is the observed position expressed in the observer's frame.
func (p Pair) Relative() mgl64.Vec3 {
	return p.Position.Sub(p.Origin)
}

// Length is the distance between origin and position.
func (p Pair) Length() float64 {
	return p.Position.Sub(p.Origin).Len()
}

// SetRelative moves Position so that the relative vector becomes r.
// Origin is held fixed; Position is the only field rewritten.
func (p *Pair) SetRelative(r mgl64.Vec3) {
	p.Position = p.Origin.Add(r)
}

// Translate shifts the whole observation by v.
func (p Pair) Translate(v mgl64.Vec3) Pair {
	return Pair{Origin: p.Origin.Add(v), Position: p.Position.Add(v)}
}

// Scale applies a homothety of ratio s about the origin.
func (p Pair) Scale(s float64) Pair {
	return Pair{Origin: p.Origin, Position: p.Origin.Add(p.Relative().Mul(s))}
}

// Lerp interpolates origin and position independently and recombines.
func (p Pair) Lerp(q Pair, s float64) Pair {
	return Pair{
		Origin:   Lerp(p.Origin, q.Origin, s),
		Position: Lerp(p.Position, q.Position, s),
	}
}

func (p Pair) ApproxEqual(q Pair) bool {
	return p.Origin.ApproxEqual(q.Origin) && p.Position.ApproxEqual(q.Position)
}

// ApproxEqualThreshold compares with an explicit per-component epsilon,
// the norm-1 flavor of equality.
func (p Pair) ApproxEqualThreshold(q Pair, eps float64) bool {
	return p.Origin.ApproxEqualThreshold(q.Origin, eps) &&
		p.Position.ApproxEqualThreshold(q.Position, eps)
}

// Lerp is the linear interpolation a + s*(b-a).
func Lerp(a, b mgl64.Vec3, s float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(s))
}

// Valid reports whether every component is a finite number. Degenerate
// acceleration fields propagate NaN through trajectories (they are never
// intercepted); callers use Valid to detect that downstream.
func Valid(v mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}
