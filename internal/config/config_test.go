package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultScenarioBuilds(t *testing.T) {
	s := DefaultScenario()

	model, err := s.BuildModel()
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	if err := model.Validate(len(s.InitState), len(s.InitControl)); err != nil {
		t.Fatalf("default init vectors invalid: %v", err)
	}

	w, err := s.BuildWorld()
	if err != nil {
		t.Fatalf("BuildWorld: %v", err)
	}
	if got := len(w.Obstacles()); got != 1 {
		t.Errorf("obstacles = %d, want 1", got)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")

	s := DefaultScenario()
	s.Model = "integrator"
	s.InitState = []float64{0, 0}
	s.InitControl = []float64{1, -1}
	s.Obstacles = append(s.Obstacles, ObstacleConfig{
		Kind:     "polygon",
		Vertices: []Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}},
	})

	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Model != "integrator" {
		t.Errorf("model = %q, want integrator", loaded.Model)
	}
	if len(loaded.Obstacles) != 2 {
		t.Errorf("obstacles = %d, want 2", len(loaded.Obstacles))
	}
	if _, err := loaded.BuildWorld(); err != nil {
		t.Errorf("BuildWorld after round trip: %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	partial := []byte("model: unicycle\ninit_state: [0, 0, 0]\ninit_control: [1, 0]\n")
	if err := os.WriteFile(path, partial, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Dt != DefaultDt {
		t.Errorf("dt = %v, want default %v", s.Dt, DefaultDt)
	}
	if s.Steps != DefaultSteps {
		t.Errorf("steps = %d, want default %d", s.Steps, DefaultSteps)
	}
}

func TestBuildModelErrors(t *testing.T) {
	s := DefaultScenario()
	s.Model = "warp-drive"
	if _, err := s.BuildModel(); err == nil {
		t.Error("expected error for unknown model")
	}

	s.Model = "linear"
	s.Linear = nil
	if _, err := s.BuildModel(); err == nil {
		t.Error("expected error for linear model without matrices")
	}

	s.Linear = &LinearConfig{
		A: [][]float64{{0, 1}, {-1, 0}},
		B: [][]float64{{0}, {1}},
	}
	if _, err := s.BuildModel(); err != nil {
		t.Errorf("valid linear config rejected: %v", err)
	}
}

func TestBuildIntegrator(t *testing.T) {
	s := DefaultScenario()
	for _, name := range []string{"", "rk45", "rk4", "euler"} {
		s.Integrator = name
		if _, err := s.BuildIntegrator(); err != nil {
			t.Errorf("BuildIntegrator(%q): %v", name, err)
		}
	}

	s.Integrator = "leapfrog"
	if _, err := s.BuildIntegrator(); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestBuildWorldRejectsBadObstacle(t *testing.T) {
	s := DefaultScenario()
	s.Obstacles = []ObstacleConfig{{Kind: "ellipse", Axes: []float64{1}}}
	if _, err := s.BuildWorld(); err == nil {
		t.Error("expected error for one-axis ellipse")
	}

	s.Obstacles = []ObstacleConfig{{Kind: "moebius"}}
	if _, err := s.BuildWorld(); err == nil {
		t.Error("expected error for unknown obstacle kind")
	}
}
