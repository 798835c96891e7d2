// Package trajectory stores time-indexed position history for point
// masses and answers discrete and continuous (interpolated) queries on
// it. Two storages implement the same query surface: the unbounded
// [Trajectory] and the fixed-capacity ring [Buffer].
package trajectory

import (
	"fmt"
	"math"

	"github.com/san-kum/pointsim/internal/geom"
)

// Path is the query surface shared by Trajectory and Buffer.
//
// Samples are chronologically ordered: logical index 0 is the oldest
// retained sample, Len()-1 the newest. Continuous abscissae passed to
// At and T are clamped to the valid range; only integer Get fails.
type Path interface {
	Add(p geom.Pair, step ...float64)
	Get(i int) (geom.Pair, error)
	At(s float64) geom.Pair
	Duration(i int) float64
	T(s float64) float64
	Len() int
	Length() float64
}

var (
	_ Path = (*Trajectory)(nil)
	_ Path = (*Buffer)(nil)
)

// Trajectory is an unbounded append-only sample sequence. The step
// array runs parallel to the samples with len(steps) == len(pairs)-1
// (empty for a trajectory of at most one sample): steps[k] is the time
// elapsed between sample k and sample k+1.
type Trajectory struct {
	pairs    []geom.Pair
	steps    []float64
	lastStep float64
	haveStep bool
}

func New() *Trajectory {
	return &Trajectory{}
}

// FromPairs builds a trajectory from existing samples. steps may be nil
// (every step defaults to 1) or must hold exactly len(pairs)-1 entries.
func FromPairs(pairs []geom.Pair, steps []float64) (*Trajectory, error) {
	n := len(pairs)
	want := n - 1
	if want < 0 {
		want = 0
	}
	if steps == nil {
		steps = make([]float64, want)
		for i := range steps {
			steps[i] = 1
		}
	}
	if len(steps) != want {
		return nil, fmt.Errorf("%w: %d samples, %d steps", ErrMismatchedSteps, n, len(steps))
	}
	tr := &Trajectory{
		pairs: append([]geom.Pair(nil), pairs...),
		steps: append([]float64(nil), steps...),
	}
	if len(tr.steps) > 0 {
		tr.lastStep = tr.steps[len(tr.steps)-1]
		tr.haveStep = true
	}
	return tr, nil
}

// Add appends a sample. The optional step is the time elapsed since the
// previous sample; when omitted the last written step is repeated, or 1
// if no step was ever written.
func (tr *Trajectory) Add(p geom.Pair, step ...float64) {
	dt := tr.resolveStep(step)
	if len(tr.pairs) > 0 {
		tr.steps = append(tr.steps, dt)
	}
	tr.pairs = append(tr.pairs, p)
	tr.lastStep = dt
	tr.haveStep = true
}

func (tr *Trajectory) resolveStep(step []float64) float64 {
	if len(step) > 0 {
		return step[0]
	}
	if tr.haveStep {
		return tr.lastStep
	}
	return 1
}

func (tr *Trajectory) Len() int { return len(tr.pairs) }

func (tr *Trajectory) Get(i int) (geom.Pair, error) {
	if i < 0 || i >= len(tr.pairs) {
		return geom.Pair{}, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, len(tr.pairs))
	}
	return tr.pairs[i], nil
}

// At returns the sample at continuous abscissa s, linearly interpolating
// between the two neighboring samples. At integer abscissae the result
// equals the stored sample exactly.
func (tr *Trajectory) At(s float64) geom.Pair {
	n := len(tr.pairs)
	if n == 0 {
		return geom.Pair{}
	}
	if s <= 0 {
		return tr.pairs[0]
	}
	if s >= float64(n-1) {
		return tr.pairs[n-1]
	}
	i := int(math.Floor(s))
	return tr.pairs[i].Lerp(tr.pairs[i+1], s-float64(i))
}

// Duration sums the first i steps, the elapsed time from sample 0 to
// sample i. i is clamped to the recorded range.
func (tr *Trajectory) Duration(i int) float64 {
	if i > len(tr.steps) {
		i = len(tr.steps)
	}
	total := 0.0
	for k := 0; k < i; k++ {
		total += tr.steps[k]
	}
	return total
}

// T returns the elapsed time at continuous abscissa s.
func (tr *Trajectory) T(s float64) float64 {
	if s <= 0 {
		return 0
	}
	i := int(math.Floor(s))
	if i >= len(tr.steps) {
		return tr.Duration(len(tr.steps))
	}
	return tr.Duration(i) + (s-float64(i))*tr.steps[i]
}

// Length is the polyline length of the relative positions.
func (tr *Trajectory) Length() float64 {
	total := 0.0
	for i := 1; i < len(tr.pairs); i++ {
		total += tr.pairs[i].Relative().Sub(tr.pairs[i-1].Relative()).Len()
	}
	return total
}

// Clear empties the trajectory.
func (tr *Trajectory) Clear() {
	tr.pairs = tr.pairs[:0]
	tr.steps = tr.steps[:0]
	tr.lastStep = 0
	tr.haveStep = false
}
