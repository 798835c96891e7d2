// Package solver integrates second-order equations of motion
// d²u/dt² = f(u,t) with the explicit two-step scheme
//
//	u_{n+1} = 2 u_n − u_{n−1} + f(u_n, t_n) dt²
//
// bootstrapped from an initial (position, velocity) pair by a
// second-order Taylor expansion. The local truncation error is O(dt³)
// per step; the scheme is conditionally stable, so oscillatory fields
// cap the usable dt at a fraction of their characteristic period.
package solver

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/pointsim/internal/geom"
	"github.com/san-kum/pointsim/internal/trajectory"
)

// Field is an acceleration field f(u, t). Fields evaluated at
// singularities propagate NaN through subsequent states; guarding
// degenerate configurations is the field author's responsibility.
type Field func(u mgl64.Vec3, t float64) mgl64.Vec3

// Solver integrates a single body under an acceleration field at a
// nominal step size Dt.
type Solver struct {
	Field Field
	Dt    float64
}

func New(field Field, dt float64) *Solver {
	return &Solver{Field: field, Dt: dt}
}

// Step produces u_{n+1} from the current state u1 and previous state u0.
func (s *Solver) Step(u1, u0 mgl64.Vec3, t, dt float64) (mgl64.Vec3, error) {
	if dt <= 0 {
		return mgl64.Vec3{}, fmt.Errorf("%w: dt = %v", ErrInvalidStep, dt)
	}
	return u1.Mul(2).Sub(u0).Add(s.Field(u1, t).Mul(dt * dt)), nil
}

// StepVariable produces u_{n+1} when the step dt0 into the current
// state differs from the step dt1 out of it:
//
//	u_{n+1} = u_n + (u_n − u_{n−1}) dt1/dt0 + f(u_n, t_n) dt1 (dt1+dt0)/2
//
// For dt0 == dt1 this reduces to the constant-step formula. The ratio
// term rescales the implicit velocity (u_n − u_{n−1})/dt0 to the new
// step, which the constant-step formula silently assumes equal.
func (s *Solver) StepVariable(u1, u0 mgl64.Vec3, t, dt0, dt1 float64) (mgl64.Vec3, error) {
	if dt0 <= 0 || dt1 <= 0 {
		return mgl64.Vec3{}, fmt.Errorf("%w: dt = %v, %v", ErrInvalidStep, dt0, dt1)
	}
	return u1.Add(u1.Sub(u0).Mul(dt1 / dt0)).Add(s.Field(u1, t).Mul(dt1 * (dt1 + dt0) / 2)), nil
}

// InitialTransform converts initial conditions into the second state the
// two-step formula needs: u0 + v0 dt + f(u0, 0) dt²/2.
func (s *Solver) InitialTransform(u0, v0 mgl64.Vec3, dt float64) mgl64.Vec3 {
	return u0.Add(v0.Mul(dt)).Add(s.Field(u0, 0).Mul(0.5 * dt * dt))
}

// Solve integrates count states from initial conditions. dts may be
// empty (constant step Dt), a single scalar (constant step), or a
// sequence of count-1 steps (variable step); any other length fails.
func (s *Solver) Solve(u0, v0 mgl64.Vec3, count int, dts ...float64) ([]mgl64.Vec3, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count = %d", ErrInvalidArgument, count)
	}

	steps := make([]float64, count-1)
	switch len(dts) {
	case 0:
		for i := range steps {
			steps[i] = s.Dt
		}
	case 1:
		for i := range steps {
			steps[i] = dts[0]
		}
	case count - 1:
		copy(steps, dts)
	default:
		return nil, fmt.Errorf("%w: %d steps for %d states", ErrInvalidArgument, len(dts), count)
	}

	states := make([]mgl64.Vec3, count)
	states[0] = u0
	if count == 1 {
		return states, nil
	}

	if steps[0] <= 0 {
		return nil, fmt.Errorf("%w: dt = %v", ErrInvalidStep, steps[0])
	}
	states[1] = s.InitialTransform(u0, v0, steps[0])

	t := steps[0]
	for n := 1; n < count-1; n++ {
		next, err := s.StepVariable(states[n], states[n-1], t, steps[n-1], steps[n])
		if err != nil {
			return nil, err
		}
		states[n+1] = next
		t += steps[n]
	}
	return states, nil
}

// Buffer reads the two newest states out of a ring buffer, computes the
// next one at time t with step Dt, and appends it back with the given
// observation origin. The step recorded with the buffer's newest sample
// is taken as the previous step, so a buffer primed at a different
// cadence still advances correctly. The buffer must hold at least two
// samples.
func (s *Solver) Buffer(buf *trajectory.Buffer, t float64, origin mgl64.Vec3) (geom.Pair, error) {
	if buf.Capacity() < 2 {
		return geom.Pair{}, fmt.Errorf("%w: buffer capacity %d, need 2", ErrInvalidArgument, buf.Capacity())
	}
	prev, err := buf.Nexto()
	if err != nil {
		return geom.Pair{}, err
	}
	next, err := s.StepVariable(buf.Last().Position, prev.Position, t, buf.LastStep(), s.Dt)
	if err != nil {
		return geom.Pair{}, err
	}
	p := geom.New(origin, next)
	buf.Add(p, s.Dt)
	return p, nil
}
