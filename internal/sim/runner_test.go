package sim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/curtain/internal/cloth"
	"github.com/san-kum/curtain/internal/config"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Cols, cfg.Rows = 4, 4
	cfg.Duration = 1.0
	return cfg
}

func TestRunnerRun(t *testing.T) {
	r, err := New(smallConfig())
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	result, err := r.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Steps != 30 {
		t.Errorf("expected 30 steps at 30 fps over 1s, got %d", result.Steps)
	}
	if len(result.Frames) != 31 {
		t.Errorf("expected 31 frames, got %d", len(result.Frames))
	}
	if len(result.Frames) != len(result.Times) {
		t.Errorf("frames (%d) and times (%d) disagree", len(result.Frames), len(result.Times))
	}
	if result.TornLinks != 0 {
		t.Errorf("nothing should tear without a script, got %d", result.TornLinks)
	}

	// Free points must have sagged below their start rows.
	first, last := result.Frames[0], result.Frames[len(result.Frames)-1]
	bottom := len(first) - 1
	if last[bottom] <= first[bottom] {
		t.Errorf("expected bottom row to sag: %.3f -> %.3f", first[bottom], last[bottom])
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Stiffness = 0
	if _, err := New(cfg); err == nil {
		t.Error("expected error for invalid config")
	}

	cfg = smallConfig()
	cfg.FPS = 0
	if _, err := New(cfg); err == nil {
		t.Error("expected error for zero fps")
	}
}

func TestRunnerCancellation(t *testing.T) {
	r, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Run(ctx, nil); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunnerStride(t *testing.T) {
	cfg := smallConfig()
	cfg.Stride = 10
	r, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	result, err := r.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Frames) != 4 { // initial + steps 10, 20, 30
		t.Errorf("expected 4 recorded frames with stride 10, got %d", len(result.Frames))
	}
}

func TestRunnerScriptTears(t *testing.T) {
	cfg := smallConfig()
	script := &Script{
		Moves: []Move{
			{From: 0, To: 0.5, X: 2 * cfg.Resting, Y: cfg.StartY + 2*cfg.Resting, Tear: true},
		},
	}

	r, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	result, err := r.Run(context.Background(), script)
	if err != nil {
		t.Fatal(err)
	}
	if result.TornLinks == 0 {
		t.Error("expected the scripted tear to destroy links")
	}
}

type countObserver struct{ steps int }

func (c *countObserver) OnStep(_ *cloth.Grid, _ float64) { c.steps++ }

type meanYMetric struct {
	sum     float64
	samples int
}

func (m *meanYMetric) Name() string { return "mean_y" }
func (m *meanYMetric) Observe(g *cloth.Grid, _ float64) {
	for i := range g.Points {
		m.sum += g.Points[i].Y
	}
	m.samples += len(g.Points)
}
func (m *meanYMetric) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}
func (m *meanYMetric) Reset() { m.sum, m.samples = 0, 0 }

func TestRunnerMetricsAndObservers(t *testing.T) {
	r, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	obs := &countObserver{}
	r.AddObserver(obs)
	r.AddMetric(&meanYMetric{})

	result, err := r.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if obs.steps != result.Steps {
		t.Errorf("observer saw %d steps, runner took %d", obs.steps, result.Steps)
	}
	if _, ok := result.Metrics["mean_y"]; !ok {
		t.Error("metric missing from result")
	}
	if result.Metrics["mean_y"] <= 0 {
		t.Errorf("expected positive mean y, got %f", result.Metrics["mean_y"])
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	data := []byte(`name: drag test
moves:
  - {from: 0, to: 1, x: 100, y: 100, drag: true}
  - {from: 1, to: 2, x: 200, y: 150, tear: true}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	if len(s.Moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(s.Moves))
	}

	p := s.At(0.5)
	if !p.Drag || p.X != 100 {
		t.Errorf("expected drag at (100,100), got %+v", p)
	}
	p = s.At(1.5)
	if !p.Tear || p.Y != 150 {
		t.Errorf("expected tear at (200,150), got %+v", p)
	}
	p = s.At(5)
	if p.Drag || p.Tear {
		t.Errorf("expected idle pointer after the script, got %+v", p)
	}
	if p.X != 200 {
		t.Errorf("idle pointer should rest at the last position, got %+v", p)
	}
}

func TestScriptNil(t *testing.T) {
	var s *Script
	p := s.At(1.0)
	if p.Drag || p.Tear || p.X != 0 || p.Y != 0 {
		t.Errorf("nil script should be an idle pointer, got %+v", p)
	}
}
