package trajectory

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/pointsim/internal/geom"
)

// Flat encoding interleaves six coordinates per sample: origin x,y,z
// then position x,y,z. No framing beyond the raw float64 array.
const sampleWidth = 6

// To1D flattens the samples in chronological order.
func (tr *Trajectory) To1D() []float64 {
	return flatten(tr.pairs)
}

// To1D flattens the logical contents, oldest sample first.
func (b *Buffer) To1D() []float64 {
	ordered := make([]geom.Pair, len(b.pairs))
	for i := range ordered {
		ordered[i] = b.pairs[b.physical(i)]
	}
	return flatten(ordered)
}

func flatten(pairs []geom.Pair) []float64 {
	out := make([]float64, 0, len(pairs)*sampleWidth)
	for _, p := range pairs {
		out = append(out, p.Origin[0], p.Origin[1], p.Origin[2],
			p.Position[0], p.Position[1], p.Position[2])
	}
	return out
}

// From1D rebuilds a trajectory from a flat array. steps may be nil
// (all steps default to 1) or must hold one entry per sample gap.
func From1D(data []float64, steps []float64) (*Trajectory, error) {
	if len(data)%sampleWidth != 0 {
		return nil, fmt.Errorf("%w: %d values", ErrBadEncoding, len(data))
	}
	n := len(data) / sampleWidth
	pairs := make([]geom.Pair, n)
	for i := 0; i < n; i++ {
		k := i * sampleWidth
		pairs[i] = geom.Pair{
			Origin:   mgl64.Vec3{data[k], data[k+1], data[k+2]},
			Position: mgl64.Vec3{data[k+3], data[k+4], data[k+5]},
		}
	}
	return FromPairs(pairs, steps)
}
