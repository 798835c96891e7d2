package solver

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/pointsim/internal/geom"
	"github.com/san-kum/pointsim/internal/trajectory"
)

// Body is a point mass tracked by its own ring buffer. ID and Mass are
// opaque payload to the stepping machinery except where a pairwise
// field chooses to read them.
type Body struct {
	ID   string
	Mass float64
	Traj *trajectory.Buffer

	// v0 seeds the Taylor bootstrap on the first interaction step.
	v0 mgl64.Vec3
}

// NewBody creates a body at rest state (u0, v0) with a history buffer
// of the given capacity. The buffer initially holds u0 as its newest
// sample; the first solver step fills in the bootstrapped second state.
func NewBody(id string, mass float64, capacity int, u0, v0 mgl64.Vec3) (*Body, error) {
	if capacity < 2 {
		return nil, trajectory.ErrInvalidCapacity
	}
	buf, err := trajectory.NewBuffer(capacity)
	if err != nil {
		return nil, err
	}
	buf.Add(geom.At(u0))
	return &Body{ID: id, Mass: mass, Traj: buf, v0: v0}, nil
}

// Position is the newest recorded position.
func (b *Body) Position() mgl64.Vec3 {
	return b.Traj.Last().Position
}

// Speed derives the velocity from the two newest buffer entries.
func (b *Body) Speed() mgl64.Vec3 {
	prev, err := b.Traj.Nexto()
	if err != nil {
		return mgl64.Vec3{}
	}
	dt := b.Traj.LastStep()
	if dt == 0 {
		return mgl64.Vec3{}
	}
	return b.Traj.Last().Position.Sub(prev.Position).Mul(1 / dt)
}
