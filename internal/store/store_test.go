package store

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/pointsim/internal/config"
	"github.com/san-kum/pointsim/internal/geom"
	"github.com/san-kum/pointsim/internal/trajectory"
)

func testRun(t *testing.T) (*config.Config, []float64, []*trajectory.Trajectory) {
	t.Helper()
	cfg := config.GetPreset("binary")

	times := []float64{0, 0.5, 1.0}
	tracks := make([]*trajectory.Trajectory, len(cfg.Bodies))
	for i := range tracks {
		tr := trajectory.New()
		for k := range times {
			x := float64(i*10 + k)
			tr.Add(geom.At(mgl64.Vec3{x, -x, 0}), 0.5)
		}
		tracks[i] = tr
	}
	return cfg, times, tracks
}

func TestStore_SaveAndList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, times, tracks := testRun(t)
	runID, err := st.Save(cfg, times, tracks)
	if err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Fatalf("List() = %+v", runs)
	}
	if runs[0].Steps != 3 || len(runs[0].Bodies) != 2 {
		t.Errorf("metadata = %+v", runs[0])
	}
}

func TestStore_LoadSamples(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, times, tracks := testRun(t)
	runID, err := st.Save(cfg, times, tracks)
	if err != nil {
		t.Fatal(err)
	}

	gotTimes, samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotTimes) != 3 || len(samples) != 3 {
		t.Fatalf("got %d times, %d samples", len(gotTimes), len(samples))
	}
	// row 1: time 0.5, body 0 at (1,-1,0), body 1 at (11,-11,0)
	if math.Abs(gotTimes[1]-0.5) > 1e-9 {
		t.Errorf("time[1] = %v", gotTimes[1])
	}
	want := []float64{1, -1, 0, 11, -11, 0}
	for k, w := range want {
		if math.Abs(samples[1][k]-w) > 1e-6 {
			t.Errorf("samples[1][%d] = %v, want %v", k, samples[1][k], w)
		}
	}
}

func TestStore_SaveMismatch(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, times, tracks := testRun(t)
	if _, err := st.Save(cfg, times, tracks[:1]); err == nil {
		t.Error("expected error for track/body count mismatch")
	}
}

func TestStore_ListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/never-created")
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("List() on missing dir = %+v", runs)
	}
}
