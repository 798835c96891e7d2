package trajectory

import (
	"fmt"
	"math"

	"github.com/san-kum/pointsim/internal/geom"
)

// Buffer is a fixed-capacity ring holding the last capacity samples.
// All slots always hold a value (zero pairs for slots never written);
// addIndex points at the oldest slot, the one the next Add overwrites.
// Logical index i maps to physical slot (i + addIndex) mod capacity.
//
// Unlike Trajectory the step array has one entry per slot: the logical
// step at k is the time recorded when the sample at k was appended.
type Buffer struct {
	pairs    []geom.Pair
	steps    []float64
	addIndex int
	lastStep float64
	haveStep bool
}

func NewBuffer(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Buffer{
		pairs: make([]geom.Pair, capacity),
		steps: make([]float64, capacity),
	}, nil
}

// Bufferize bulk-loads a buffer from a source trajectory of length L.
// If L >= capacity only the last capacity samples are kept and the
// buffer is full (addIndex 0). Otherwise all L samples land in physical
// slots [0, L), the remainder stays zero-filled, and addIndex is set to
// L so the padding is what gets overwritten first.
func Bufferize(capacity int, src *Trajectory) (*Buffer, error) {
	b, err := NewBuffer(capacity)
	if err != nil {
		return nil, err
	}
	L := src.Len()
	if L >= capacity {
		drop := L - capacity
		copy(b.pairs, src.pairs[drop:])
		for j := 0; j < capacity; j++ {
			if k := drop + j - 1; k >= 0 {
				b.steps[j] = src.steps[k]
			}
		}
		b.addIndex = 0
	} else {
		copy(b.pairs, src.pairs)
		for j := 1; j < L; j++ {
			b.steps[j] = src.steps[j-1]
		}
		b.addIndex = L
	}
	b.lastStep = src.lastStep
	b.haveStep = src.haveStep
	return b, nil
}

func (b *Buffer) Capacity() int { return len(b.pairs) }

// Len reports the logical sample count, always equal to capacity.
func (b *Buffer) Len() int { return len(b.pairs) }

// Add writes into the oldest slot and advances, replacing the oldest
// retained sample once the buffer has wrapped. The optional step
// follows the same repeat-last/default-1 rule as Trajectory.Add.
func (b *Buffer) Add(p geom.Pair, step ...float64) {
	dt := b.resolveStep(step)
	b.pairs[b.addIndex] = p
	b.steps[b.addIndex] = dt
	b.addIndex = (b.addIndex + 1) % len(b.pairs)
	b.lastStep = dt
	b.haveStep = true
}

func (b *Buffer) resolveStep(step []float64) float64 {
	if len(step) > 0 {
		return step[0]
	}
	if b.haveStep {
		return b.lastStep
	}
	return 1
}

func (b *Buffer) physical(i int) int {
	return (i + b.addIndex) % len(b.pairs)
}

func (b *Buffer) Get(i int) (geom.Pair, error) {
	if i < 0 || i >= len(b.pairs) {
		return geom.Pair{}, fmt.Errorf("%w: index %d, capacity %d", ErrOutOfRange, i, len(b.pairs))
	}
	return b.pairs[b.physical(i)], nil
}

// First returns the oldest retained sample.
func (b *Buffer) First() geom.Pair {
	return b.pairs[b.addIndex]
}

// Last returns the newest sample, the slot just before addIndex.
func (b *Buffer) Last() geom.Pair {
	return b.pairs[b.physical(len(b.pairs)-1)]
}

// Nexto returns the second newest sample, two slots before addIndex.
// Fails on buffers of capacity 1.
func (b *Buffer) Nexto() (geom.Pair, error) {
	return b.Get(len(b.pairs) - 2)
}

// LastStep is the time step recorded with the newest sample.
func (b *Buffer) LastStep() float64 {
	return b.steps[b.physical(len(b.steps)-1)]
}

func (b *Buffer) At(s float64) geom.Pair {
	c := len(b.pairs)
	if s <= 0 {
		return b.First()
	}
	if s >= float64(c-1) {
		return b.Last()
	}
	i := int(math.Floor(s))
	lo := b.pairs[b.physical(i)]
	hi := b.pairs[b.physical(i+1)]
	return lo.Lerp(hi, s-float64(i))
}

// Duration sums the first i logical steps. When the physical range
// [addIndex, addIndex+i) crosses the end of the array the sum is taken
// in two parts on either side of the wrap point.
func (b *Buffer) Duration(i int) float64 {
	c := len(b.steps)
	if i < 0 {
		i = 0
	}
	if i > c {
		i = c
	}
	end := b.addIndex + i
	if end <= c {
		return sum(b.steps[b.addIndex:end])
	}
	return sum(b.steps[b.addIndex:]) + sum(b.steps[:end-c])
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func (b *Buffer) T(s float64) float64 {
	c := len(b.steps)
	if s <= 0 {
		return 0
	}
	i := int(math.Floor(s))
	if i >= c {
		return b.Duration(c)
	}
	return b.Duration(i) + (s-float64(i))*b.steps[b.physical(i)]
}

func (b *Buffer) Length() float64 {
	total := 0.0
	prev := b.First().Relative()
	for i := 1; i < len(b.pairs); i++ {
		cur := b.pairs[b.physical(i)].Relative()
		total += cur.Sub(prev).Len()
		prev = cur
	}
	return total
}

// Snapshot copies the logical contents into a fresh unbounded
// trajectory, oldest first. The step into the oldest sample is dropped
// to restore the len(steps) == len(pairs)-1 invariant.
func (b *Buffer) Snapshot() *Trajectory {
	c := len(b.pairs)
	tr := &Trajectory{
		pairs:    make([]geom.Pair, c),
		steps:    make([]float64, c-1),
		lastStep: b.lastStep,
		haveStep: b.haveStep,
	}
	for i := 0; i < c; i++ {
		tr.pairs[i] = b.pairs[b.physical(i)]
		if i > 0 {
			tr.steps[i-1] = b.steps[b.physical(i)]
		}
	}
	return tr
}

// Resize changes the capacity, preserving the most recent
// min(old, new) samples in chronological order. Structurally this is a
// re-bufferize from a snapshot of the current contents.
func (b *Buffer) Resize(capacity int) error {
	nb, err := Bufferize(capacity, b.Snapshot())
	if err != nil {
		return err
	}
	*b = *nb
	return nil
}
