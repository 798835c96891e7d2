package solver

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/pointsim/internal/clock"
	"github.com/san-kum/pointsim/internal/geom"
)

// PairField is a pairwise acceleration accel(self, other, t). Returning
// the zero vector for non-interacting pairs is the caller's business;
// the stepper never evaluates a body against itself.
type PairField func(self, other *Body, t float64) mgl64.Vec3

// InteractionSolver steps N bodies sharing one clock under a pairwise
// acceleration field, optionally superposed with an ambient single-body
// field (external gravity, a trap potential). Each step evaluates every
// interaction against a snapshot of the pre-step world before
// committing any update, so the result cannot depend on body order.
type InteractionSolver struct {
	Bodies  []*Body
	Field   PairField
	Ambient Field
	Clock   *clock.Timer

	primed bool
}

func NewInteraction(bodies []*Body, field PairField, timer *clock.Timer) (*InteractionSolver, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("%w: no bodies", ErrInvalidArgument)
	}
	if timer.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt = %v", ErrInvalidStep, timer.Dt)
	}
	return &InteractionSolver{Bodies: bodies, Field: field, Clock: timer}, nil
}

// accelerations sums the ambient field and the pairwise field over all
// other bodies, reading only the pre-step snapshot.
func (is *InteractionSolver) accelerations(t float64) []mgl64.Vec3 {
	acc := make([]mgl64.Vec3, len(is.Bodies))
	for i, p := range is.Bodies {
		if is.Ambient != nil {
			acc[i] = is.Ambient(p.Position(), t)
		}
		if is.Field == nil {
			continue
		}
		for j, q := range is.Bodies {
			if i == j {
				continue
			}
			acc[i] = acc[i].Add(is.Field(p, q, t))
		}
	}
	return acc
}

// Step advances every body by one time step and the shared clock once,
// returning the freshly committed positions. The first call bootstraps
// each body from its initial (position, velocity) pair; subsequent
// calls use the two-step formula on each body's own history.
func (is *InteractionSolver) Step() ([]mgl64.Vec3, error) {
	next, err := is.step()
	if err != nil {
		return nil, err
	}
	is.Clock.Step()
	return next, nil
}

// Iterate runs exactly n steps, stopping at the first failure so the
// clock never runs ahead of the committed trajectory state.
func (is *InteractionSolver) Iterate(n int) error {
	for i := 0; i < n; i++ {
		if _, err := is.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Advance runs ceil(duration/dt) steps.
func (is *InteractionSolver) Advance(duration float64) error {
	if is.Clock.Dt <= 0 {
		return fmt.Errorf("%w: dt = %v", ErrInvalidStep, is.Clock.Dt)
	}
	return is.Iterate(int(math.Ceil(duration / is.Clock.Dt)))
}

// step is Step without the clock advance; the clock moves only after
// every body has committed.
func (is *InteractionSolver) step() ([]mgl64.Vec3, error) {
	t, dt := is.Clock.T1, is.Clock.Dt
	if dt <= 0 {
		return nil, fmt.Errorf("%w: dt = %v", ErrInvalidStep, dt)
	}

	// snapshot before any mutation
	current := make([]mgl64.Vec3, len(is.Bodies))
	previous := make([]mgl64.Vec3, len(is.Bodies))
	for i, b := range is.Bodies {
		current[i] = b.Position()
		if !is.primed {
			continue
		}
		prev, err := b.Traj.Nexto()
		if err != nil {
			return nil, err
		}
		previous[i] = prev.Position
	}

	acc := is.accelerations(t)

	next := make([]mgl64.Vec3, len(is.Bodies))
	for i, b := range is.Bodies {
		if !is.primed {
			next[i] = current[i].Add(b.v0.Mul(dt)).Add(acc[i].Mul(0.5 * dt * dt))
			continue
		}
		next[i] = current[i].Mul(2).Sub(previous[i]).Add(acc[i].Mul(dt * dt))
	}

	for i, b := range is.Bodies {
		b.Traj.Add(geom.At(next[i]), dt)
	}
	is.primed = true
	return next, nil
}

// Barycenter is the mass-weighted mean of current positions.
func (is *InteractionSolver) Barycenter() mgl64.Vec3 {
	var weighted mgl64.Vec3
	total := 0.0
	for _, b := range is.Bodies {
		weighted = weighted.Add(b.Position().Mul(b.Mass))
		total += b.Mass
	}
	if total == 0 {
		return mgl64.Vec3{}
	}
	return weighted.Mul(1 / total)
}
