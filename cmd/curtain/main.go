package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/curtain/internal/analysis"
	"github.com/san-kum/curtain/internal/config"
	"github.com/san-kum/curtain/internal/export"
	"github.com/san-kum/curtain/internal/metrics"
	"github.com/san-kum/curtain/internal/optim"
	"github.com/san-kum/curtain/internal/sim"
	"github.com/san-kum/curtain/internal/storage"
	"github.com/san-kum/curtain/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	scriptFile string

	cols        int
	rows        int
	stiffness   float64
	gravity     float64
	relaxPasses int
	duration    float64
	fps         int
	stride      int

	svgOut   string
	svgScale float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "curtain",
		Short: "interactive cloth simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no command is given.
			return viz.Run(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".curtain", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save the result",
		RunE:  runSimulation,
	}
	addTuningFlags(runCmd)
	runCmd.Flags().StringVar(&scriptFile, "script", "", "pointer script file (yaml)")
	runCmd.Flags().IntVar(&stride, "stride", 1, "record every Nth frame")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization (mouse: left drag, right tear)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addTuningFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate and write an SVG snapshot of the settled cloth",
		RunE:  snapshotRun,
	}
	addTuningFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&scriptFile, "script", "", "pointer script file (yaml)")
	snapshotCmd.Flags().StringVar(&svgOut, "out", "curtain.svg", "output file")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 1.0, "svg scale factor")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark grid sizes and relaxation pass counts",
		RunE:  benchGrids,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the cloth motion",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep stiffness and pass counts for minimal stretch",
		RunE:  sweepParams,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd, snapshotCmd, benchCmd, analyzeCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTuningFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "lattice columns")
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "lattice rows")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "link stiffness (0,1]")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity")
	cmd.Flags().IntVar(&relaxPasses, "passes", config.DefaultRelaxPasses, "relaxation passes per frame")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (seconds)")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
}

// buildConfig resolves preset < config file < explicit flags:
// flags always win when set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("cols") {
		cfg.Cols = cols
	}
	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Stiffness = stiffness
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Gravity = gravity
	}
	if cmd.Flags().Changed("passes") {
		cfg.RelaxPasses = relaxPasses
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("stride") {
		cfg.Stride = stride
	}

	return cfg, cfg.Validate()
}

func loadScript() (*sim.Script, error) {
	if scriptFile == "" {
		return nil, nil
	}
	return sim.LoadScript(scriptFile)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner, err := sim.New(cfg)
	if err != nil {
		return err
	}
	runner.AddMetric(metrics.NewMeanStretch())
	runner.AddMetric(metrics.NewMaxStretch())
	runner.AddMetric(metrics.NewKinetic())
	runner.AddMetric(metrics.NewTorn())

	fmt.Printf("running %dx%d curtain for %.1fs...\n", cfg.Cols, cfg.Rows, cfg.Duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), script)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	if result.TornLinks > 0 {
		fmt.Printf("torn links: %d\n", result.TornLinks)
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRID\tDURATION\tSTIFFNESS\tPASSES\tTORN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.2fs\t%.2f\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cols,
			run.Rows,
			run.Duration,
			run.Stiffness,
			run.Passes,
			run.TornLinks,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n", meta.Cols, meta.Rows)
	fmt.Printf("samples: %d\n\n", len(frames))

	centroidY := make([]float64, len(frames))
	lowestY := make([]float64, len(frames))
	for i, f := range frames {
		var sum, low float64
		n := len(f) / 2
		for j := 0; j < n; j++ {
			y := f[j*2+1]
			sum += y
			if y > low {
				low = y
			}
		}
		centroidY[i] = sum / float64(n)
		lowestY[i] = low
	}

	fmt.Println(asciigraph.Plot(centroidY,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("centroid y vs time"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(lowestY,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("lowest point y vs time"),
	))

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, frames, times)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportCSV(os.Stdout, frames, times)
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}

	runner, err := sim.New(cfg)
	if err != nil {
		return err
	}
	if _, err := runner.Run(context.Background(), script); err != nil {
		return err
	}

	svg := export.ClothToSVG(runner.Grid(), svgScale)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n\n", meta.Cols, meta.Rows)

	// Trace the centroid height; a swinging curtain oscillates here.
	trace := make([]float64, len(frames))
	for i, f := range frames {
		var sum float64
		n := len(f) / 2
		for j := 0; j < n; j++ {
			sum += f[j*2+1]
		}
		trace[i] = sum / float64(n)
	}

	ps := analysis.PowerSpectrum(analysis.Pad(trace))
	plotData := ps[:len(ps)/4+1]

	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (centroid y)"),
	))
	fmt.Println()

	freq := analysis.DominantFrequency(trace, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	gs := optim.NewGridSearch(
		[]string{"stiffness", "passes"},
		[][]float64{
			{0.25, 0.5, 0.75, 1.0},
			{3, 5, 8},
		},
	)

	build := func(params map[string]float64) (*sim.Runner, error) {
		cfg := config.DefaultConfig()
		cfg.Duration = 3.0
		cfg.Stride = 1 << 30
		cfg.Stiffness = params["stiffness"]
		cfg.RelaxPasses = int(params["passes"])
		r, err := sim.New(cfg)
		if err != nil {
			return nil, err
		}
		r.AddMetric(metrics.NewMeanStretch())
		return r, nil
	}

	fmt.Println("sweeping stiffness x passes (minimizing mean stretch)...")
	best, val, err := gs.Search(context.Background(), build, "mean_stretch")
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no valid combination found")
	}

	fmt.Printf("best: stiffness=%.2f passes=%.0f (mean stretch %.6f)\n",
		best["stiffness"], best["passes"], val)
	return nil
}

func benchGrids(cmd *cobra.Command, args []string) error {
	sizes := []struct{ cols, rows int }{{20, 12}, {60, 40}, {120, 80}}
	passes := []int{1, 5, 10}

	fmt.Println("benchmarking curtain update")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPASSES\tSTEPS\tTIME\tSTEPS/SEC")

	for _, size := range sizes {
		for _, p := range passes {
			cfg := config.DefaultConfig()
			cfg.Cols, cfg.Rows = size.cols, size.rows
			cfg.RelaxPasses = p
			cfg.Duration = 2.0
			cfg.Stride = 1 << 30 // benchmark the physics, not the recording

			runner, err := sim.New(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := runner.Run(context.Background(), nil)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.Steps) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
				size.cols, size.rows, p, result.Steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
