package trajectory

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/pointsim/internal/geom"
)

func TestNewBuffer_Capacity(t *testing.T) {
	for _, c := range []int{0, -1, -10} {
		if _, err := NewBuffer(c); !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("NewBuffer(%d) error = %v, want ErrInvalidCapacity", c, err)
		}
	}

	b, err := NewBuffer(3)
	if err != nil {
		t.Fatalf("NewBuffer(3) failed: %v", err)
	}
	if b.Len() != 3 || b.Capacity() != 3 {
		t.Errorf("Len/Capacity = %d/%d, want 3/3", b.Len(), b.Capacity())
	}
}

func TestBuffer_RingInvariant(t *testing.T) {
	const capacity = 4
	b, _ := NewBuffer(capacity)

	// 7 adds on a capacity-4 ring: the buffer must hold samples 3..6
	// in chronological order.
	for i := 0; i < 7; i++ {
		b.Add(sample(float64(i)), 0.1)
	}

	for i := 0; i < capacity; i++ {
		got, err := b.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		if want := float64(3 + i); got.Position[0] != want {
			t.Errorf("Get(%d) position x = %v, want %v", i, got.Position[0], want)
		}
	}

	first, _ := b.Get(0)
	last, _ := b.Get(capacity - 1)
	nexto, _ := b.Get(capacity - 2)
	if b.First() != first {
		t.Error("First() does not match Get(0)")
	}
	if b.Last() != last {
		t.Error("Last() does not match Get(capacity-1)")
	}
	if got, err := b.Nexto(); err != nil || got != nexto {
		t.Errorf("Nexto() = %v, %v; want %v", got, err, nexto)
	}

	if _, err := b.Get(capacity); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Get(capacity) error = %v, want ErrOutOfRange", err)
	}
}

func TestBufferize(t *testing.T) {
	src := New()
	for i := 0; i < 6; i++ {
		src.Add(sample(float64(i)), 0.5)
	}

	t.Run("source longer than capacity", func(t *testing.T) {
		b, err := Bufferize(4, src)
		if err != nil {
			t.Fatal(err)
		}
		if b.addIndex != 0 {
			t.Errorf("addIndex = %d, want 0", b.addIndex)
		}
		for i := 0; i < 4; i++ {
			got, _ := b.Get(i)
			if want := float64(2 + i); got.Position[0] != want {
				t.Errorf("Get(%d) x = %v, want %v", i, got.Position[0], want)
			}
		}
	})

	t.Run("source shorter than capacity", func(t *testing.T) {
		short := New()
		short.Add(sample(10), 0.5)
		short.Add(sample(11), 0.5)

		b, err := Bufferize(5, short)
		if err != nil {
			t.Fatal(err)
		}
		if b.addIndex != 2 {
			t.Errorf("addIndex = %d, want 2", b.addIndex)
		}
		// real data sits at physical [0,2), zero padding after it
		if b.pairs[0].Position[0] != 10 || b.pairs[1].Position[0] != 11 {
			t.Errorf("physical slots = %v, %v", b.pairs[0].Position, b.pairs[1].Position)
		}
		for i := 2; i < 5; i++ {
			if (b.pairs[i] != geom.Pair{}) {
				t.Errorf("slot %d not zero-filled: %v", i, b.pairs[i])
			}
		}
		// the next add overwrites padding, not real data
		b.Add(sample(12), 0.5)
		if b.pairs[2].Position[0] != 12 {
			t.Errorf("Add after bufferize wrote to slot %v", b.pairs[2].Position)
		}
	})
}

func TestBuffer_DurationAcrossWrap(t *testing.T) {
	b, _ := NewBuffer(4)
	steps := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	for i, dt := range steps {
		b.Add(sample(float64(i)), dt)
	}
	// addIndex is 2: logical steps are 0.3, 0.4, 0.5, 0.6 and the
	// physical range wraps between logical index 1 and 2.
	logical := []float64{0.3, 0.4, 0.5, 0.6}

	want := 0.0
	for i := 0; i <= 4; i++ {
		if got := b.Duration(i); math.Abs(got-want) > 1e-12 {
			t.Errorf("Duration(%d) = %v, want %v", i, got, want)
		}
		if i < 4 {
			want += logical[i]
		}
	}

	// additivity: Duration(j) - Duration(i) equals the partial sum
	for i := 0; i <= 4; i++ {
		for j := i; j <= 4; j++ {
			part := 0.0
			for k := i; k < j; k++ {
				part += logical[k]
			}
			diff := b.Duration(j) - b.Duration(i)
			if math.Abs(diff-part) > 1e-12 {
				t.Errorf("Duration(%d)-Duration(%d) = %v, want %v", j, i, diff, part)
			}
		}
	}

	// T layers the fractional correction on the wrapped duration
	if got, want := b.T(1.5), 0.3+0.4*0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("T(1.5) = %v, want %v", got, want)
	}
	if got, want := b.T(2.5), 0.3+0.4+0.5*0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("T(2.5) = %v, want %v", got, want)
	}
}

func TestBuffer_AtMatchesGetAcrossWrap(t *testing.T) {
	b, _ := NewBuffer(3)
	for i := 0; i < 5; i++ {
		b.Add(sample(float64(i)), 1)
	}

	for i := 0; i < 3; i++ {
		want, _ := b.Get(i)
		if got := b.At(float64(i)); got != want {
			t.Errorf("At(%d) = %v, want %v", i, got, want)
		}
	}

	// neighbors straddling the wrap point
	lo, _ := b.Get(0)
	hi, _ := b.Get(1)
	want := lo.Lerp(hi, 0.25)
	if got := b.At(0.25); !got.ApproxEqual(want) {
		t.Errorf("At(0.25) = %v, want %v", got, want)
	}
}

func TestBuffer_AddDefaultStep(t *testing.T) {
	b, _ := NewBuffer(2)
	b.Add(sample(0))
	if b.LastStep() != 1 {
		t.Errorf("default step = %v, want 1", b.LastStep())
	}
	b.Add(sample(1), 0.25)
	b.Add(sample(2))
	if b.LastStep() != 0.25 {
		t.Errorf("repeated step = %v, want 0.25", b.LastStep())
	}

	b.Add(sample(3), 0)
	b.Add(sample(4))
	if b.LastStep() != 0 {
		t.Errorf("repeated zero step = %v, want 0", b.LastStep())
	}
}

func TestBuffer_Resize(t *testing.T) {
	b, _ := NewBuffer(4)
	for i := 0; i < 6; i++ {
		b.Add(sample(float64(i)), 1)
	}

	t.Run("shrink keeps newest", func(t *testing.T) {
		clone := *b
		rb := &clone
		if err := rb.Resize(2); err != nil {
			t.Fatal(err)
		}
		if rb.Capacity() != 2 {
			t.Fatalf("capacity = %d", rb.Capacity())
		}
		got0, _ := rb.Get(0)
		got1, _ := rb.Get(1)
		if got0.Position[0] != 4 || got1.Position[0] != 5 {
			t.Errorf("after shrink: %v, %v; want 4, 5", got0.Position[0], got1.Position[0])
		}
	})

	t.Run("grow pads oldest", func(t *testing.T) {
		clone := *b
		rb := &clone
		if err := rb.Resize(6); err != nil {
			t.Fatal(err)
		}
		if rb.addIndex != 4 {
			t.Errorf("addIndex = %d, want 4", rb.addIndex)
		}
		last, _ := rb.Get(5)
		if last.Position[0] != 5 {
			t.Errorf("newest after grow = %v, want 5", last.Position[0])
		}
		oldest, _ := rb.Get(0)
		if (oldest != geom.Pair{}) {
			t.Errorf("oldest after grow = %v, want zero pad", oldest)
		}
	})

	t.Run("invalid capacity", func(t *testing.T) {
		if err := b.Resize(0); !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("Resize(0) error = %v", err)
		}
	})
}

func TestBuffer_Encode(t *testing.T) {
	b, _ := NewBuffer(3)
	for i := 0; i < 5; i++ {
		b.Add(geom.New(mgl64.Vec3{float64(i), 0, 0}, mgl64.Vec3{float64(i), 1, 2}), 1)
	}

	flat := b.To1D()
	if len(flat) != 3*6 {
		t.Fatalf("To1D length = %d, want 18", len(flat))
	}
	// oldest first, even though physical storage has wrapped
	if flat[0] != 2 || flat[6] != 3 || flat[12] != 4 {
		t.Errorf("To1D order wrong: %v", flat[:18])
	}

	tr, err := From1D(flat, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := tr.Get(2)
	if !got.Position.ApproxEqual(mgl64.Vec3{4, 1, 2}) {
		t.Errorf("round trip newest = %v", got.Position)
	}

	if _, err := From1D(flat[:7], nil); !errors.Is(err, ErrBadEncoding) {
		t.Errorf("From1D partial sample error = %v, want ErrBadEncoding", err)
	}
}
