// Package clock tracks simulation time and iteration counts, decoupled
// from any physical content so several bodies can share one clock.
package clock

import "math"

// Timer holds the previous and current simulation time and iteration
// index. Dt may be changed between steps; a single Step always runs at
// the Dt in effect when it is called.
type Timer struct {
	T0, T1     float64
	Dt         float64
	Idx0, Idx1 int
}

func New(dt float64) *Timer {
	return &Timer{Dt: dt}
}

// Step advances the clock by one iteration: T0 <- T1, T1 <- T1 + Dt,
// Idx0 <- Idx1, Idx1 <- Idx1 + 1. Pure bookkeeping, no physics.
func (t *Timer) Step() {
	t.T0 = t.T1
	t.T1 += t.Dt
	t.Idx0 = t.Idx1
	t.Idx1++
}

// Iterate calls fn then steps the clock, exactly n times.
func (t *Timer) Iterate(n int, fn func()) {
	for i := 0; i < n; i++ {
		if fn != nil {
			fn()
		}
		t.Step()
	}
}

// Advance runs ceil(duration/Dt) iterations, invoking fn once per step.
// The step count is fixed from the Dt in effect at call time.
func (t *Timer) Advance(duration float64, fn func()) {
	n := int(math.Ceil(duration / t.Dt))
	t.Iterate(n, fn)
}
