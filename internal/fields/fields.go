// Package fields provides stock acceleration fields for the solver:
// single-body laws for the direct integrator and pairwise laws for the
// interaction stepper.
package fields

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/pointsim/internal/solver"
)

// Uniform is a constant acceleration, e.g. surface gravity.
func Uniform(g mgl64.Vec3) solver.Field {
	return func(u mgl64.Vec3, t float64) mgl64.Vec3 {
		return g
	}
}

// Harmonic is the isotropic oscillator -ω²u.
func Harmonic(omega float64) solver.Field {
	return func(u mgl64.Vec3, t float64) mgl64.Vec3 {
		return u.Mul(-omega * omega)
	}
}

// Spring pulls toward an anchor with stiffness k acting on mass m.
func Spring(k, m float64, anchor mgl64.Vec3) solver.Field {
	return func(u mgl64.Vec3, t float64) mgl64.Vec3 {
		return anchor.Sub(u).Mul(k / m)
	}
}

// Gravity is the Newtonian pairwise attraction with constant G. A
// positive softening length keeps close encounters finite; softening
// zero gives the exact law, and coincident points then divide by zero
// with the NaN left to propagate.
func Gravity(g, softening float64) solver.PairField {
	eps2 := softening * softening
	return func(self, other *solver.Body, t float64) mgl64.Vec3 {
		r := other.Position().Sub(self.Position())
		d2 := r.Dot(r) + eps2
		return r.Mul(g * other.Mass / (d2 * math.Sqrt(d2)))
	}
}

// Coulomb is the pairwise electrostatic repulsion between unit-charge
// bodies, ke playing the role of k_e·q²/m. Like charges repel; flip
// the sign of ke for attraction.
func Coulomb(ke, softening float64) solver.PairField {
	eps2 := softening * softening
	return func(self, other *solver.Body, t float64) mgl64.Vec3 {
		r := self.Position().Sub(other.Position())
		d2 := r.Dot(r) + eps2
		return r.Mul(ke / (d2 * math.Sqrt(d2)))
	}
}
