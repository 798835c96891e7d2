package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pointsim/internal/clock"
	"github.com/san-kum/pointsim/internal/config"
	"github.com/san-kum/pointsim/internal/fields"
	"github.com/san-kum/pointsim/internal/geom"
	"github.com/san-kum/pointsim/internal/solver"
	"github.com/san-kum/pointsim/internal/store"
	"github.com/san-kum/pointsim/internal/trajectory"
	"github.com/san-kum/pointsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	capacity   int
	scale      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pointsim",
		Short: "point-mass trajectory simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pointsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().IntVar(&capacity, "capacity", 0, "history capacity override")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored run coordinates",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().Float64Var(&scale, "scale", 10.0, "canvas units per world unit")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-12s %d bodies, %s field, %.0fs at dt=%g\n",
					name, len(cfg.Bodies), cfg.Field, cfg.Duration, cfg.Dt)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the scenario config: a preset named on the
// command line, a yaml file via --config, or the default. Flag
// overrides apply last.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config

	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown scenario: %s (available: %v)", args[0], config.ListPresets())
		}
	default:
		cfg = config.GetPreset("binary")
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Capacity = capacity
	}
	return cfg, cfg.Validate()
}

// buildSim assembles bodies and fields from a validated config.
func buildSim(cfg *config.Config) (*solver.InteractionSolver, error) {
	bodies := make([]*solver.Body, len(cfg.Bodies))
	for i, bc := range cfg.Bodies {
		b, err := solver.NewBody(bc.ID, bc.Mass, cfg.Capacity, bc.PositionVec(), bc.VelocityVec())
		if err != nil {
			return nil, err
		}
		bodies[i] = b
	}

	var pair solver.PairField
	var ambient solver.Field
	switch cfg.Field {
	case "gravity":
		pair = fields.Gravity(cfg.G, cfg.Softening)
	case "coulomb":
		pair = fields.Coulomb(cfg.K, cfg.Softening)
	case "harmonic":
		ambient = fields.Harmonic(cfg.Omega)
	case "uniform":
		ambient = fields.Uniform(mgl64.Vec3{0, -cfg.G, 0})
	default:
		return nil, fmt.Errorf("unknown field: %s", cfg.Field)
	}

	sim, err := solver.NewInteraction(bodies, pair, clock.New(cfg.Dt))
	if err != nil {
		return nil, err
	}
	sim.Ambient = ambient
	return sim, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	sim, err := buildSim(cfg)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	steps := int(math.Ceil(cfg.Duration / cfg.Dt))

	// Full history of every body, independent of the bounded buffers
	// the stepper maintains.
	tracks := make([]*trajectory.Trajectory, len(sim.Bodies))
	times := make([]float64, 0, steps+1)
	for i, b := range sim.Bodies {
		tracks[i] = trajectory.New()
		tracks[i].Add(geom.At(b.Position()))
	}
	times = append(times, sim.Clock.T1)

	fmt.Printf("running %s (%d bodies, %d steps)...\n", cfg.Scenario, len(sim.Bodies), steps)
	start := time.Now()

	for k := 0; k < steps; k++ {
		positions, err := sim.Step()
		if err != nil {
			return err
		}
		for i, u := range tracks {
			u.Add(geom.At(positions[i]), cfg.Dt)
		}
		times = append(times, sim.Clock.T1)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, times, tracks)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", tracks[0].Len())
	bary := sim.Barycenter()
	fmt.Printf("barycenter: (%.4f, %.4f, %.4f)\n", bary.X(), bary.Y(), bary.Z())
	for i, b := range sim.Bodies {
		fmt.Printf("  %s: path length %.4f\n", b.ID, tracks[i].Length())
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tFIELD\tTIME\tDURATION\tDT\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Scenario,
			run.Field,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Bodies),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, rows, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d over t = %g..%gs\n\n", len(rows), times[0], times[len(times)-1])

	axes := [3]string{"x", "y", "z"}
	numCols := len(rows[0])
	maxPlots := 6
	if numCols > maxPlots {
		numCols = maxPlots
	}

	for col := 0; col < numCols; col++ {
		data := make([]float64, len(rows))
		for i := range rows {
			data[i] = rows[i][col]
		}

		caption := fmt.Sprintf("%s %s vs time", meta.Bodies[col/3].ID, axes[col%3])
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, rows, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	out := struct {
		Metadata *store.RunMetadata   `json:"metadata"`
		Times    []float64            `json:"times"`
		Tracks   map[string][]float64 `json:"tracks"`
	}{
		Metadata: meta,
		Times:    times,
		Tracks:   make(map[string][]float64, len(meta.Bodies)),
	}

	for bi, bm := range meta.Bodies {
		flat := make([]float64, 0, 3*len(rows))
		for _, row := range rows {
			flat = append(flat, row[bi*3], row[bi*3+1], row[bi*3+2])
		}
		out.Tracks[bm.ID] = flat
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	sim, err := buildSim(cfg)
	if err != nil {
		return err
	}

	return viz.Run(sim, cfg.Scenario, scale)
}
