// Package config loads and saves YAML scenario files describing a
// dynamics model, its initial vectors, and the world to query.
package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/planarsim/internal/dynamo"
	"github.com/san-kum/planarsim/internal/geometry"
	"github.com/san-kum/planarsim/internal/integrators"
	"github.com/san-kum/planarsim/internal/models"
	"github.com/san-kum/planarsim/internal/world"
)

const (
	DefaultDt    = 0.05
	DefaultSteps = 200
)

type Scenario struct {
	Model       string           `yaml:"model"`
	Integrator  string           `yaml:"integrator"`
	Dt          float64          `yaml:"dt"`
	Steps       int              `yaml:"steps"`
	Seed        int64            `yaml:"seed"`
	InitState   []float64        `yaml:"init_state"`
	InitControl []float64        `yaml:"init_control"`
	Linear      *LinearConfig    `yaml:"linear,omitempty"`
	Arena       []Point          `yaml:"arena,omitempty"`
	Obstacles   []ObstacleConfig `yaml:"obstacles,omitempty"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LinearConfig carries the A and B matrices of a linear system as rows.
type LinearConfig struct {
	A [][]float64 `yaml:"a"`
	B [][]float64 `yaml:"b"`
}

type ObstacleConfig struct {
	Kind     string    `yaml:"kind"`
	Center   Point     `yaml:"center,omitempty"`
	Angle    float64   `yaml:"angle,omitempty"`
	Axes     []float64 `yaml:"axes,omitempty"`
	Vertices []Point   `yaml:"vertices,omitempty"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Model:       "unicycle",
		Integrator:  "rk45",
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		Seed:        1,
		InitState:   []float64{1, 1, 0},
		InitControl: []float64{1, 0.3},
		Arena: []Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
		Obstacles: []ObstacleConfig{
			{Kind: "ellipse", Center: Point{X: 5, Y: 5}, Axes: []float64{1, 1}},
		},
	}
}

// Load reads a scenario file on top of DefaultScenario: keys absent
// from the file inherit the defaults, so dropping the default arena or
// obstacles requires explicit empty sequences (arena: [],
// obstacles: []).
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildModel constructs the dynamics model named by the scenario.
func (s *Scenario) BuildModel() (dynamo.Affine, error) {
	switch s.Model {
	case "integrator":
		return models.NewIntegrator(), nil
	case "unicycle":
		return models.NewUnicycle(), nil
	case "linear":
		if s.Linear == nil {
			return nil, fmt.Errorf("config: model %q needs a linear section", s.Model)
		}
		A, err := denseFromRows(s.Linear.A)
		if err != nil {
			return nil, fmt.Errorf("config: matrix a: %w", err)
		}
		B, err := denseFromRows(s.Linear.B)
		if err != nil {
			return nil, fmt.Errorf("config: matrix b: %w", err)
		}
		return models.NewLinearSystem(A, B)
	default:
		return nil, fmt.Errorf("config: unknown model %q", s.Model)
	}
}

// BuildIntegrator constructs the stepping scheme named by the
// scenario; an empty name falls back to the adaptive default.
func (s *Scenario) BuildIntegrator() (dynamo.Integrator, error) {
	switch s.Integrator {
	case "", "rk45":
		return integrators.NewRK45(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "euler":
		return integrators.NewEuler(), nil
	default:
		return nil, fmt.Errorf("config: unknown integrator %q", s.Integrator)
	}
}

// BuildWorld constructs the arena and obstacles described by the
// scenario. A scenario without an arena yields a wall-less world.
func (s *Scenario) BuildWorld() (*world.World, error) {
	var arena *geometry.ConvexPolygon
	if len(s.Arena) > 0 {
		var err error
		arena, err = geometry.NewConvexPolygon(toVecs(s.Arena))
		if err != nil {
			return nil, fmt.Errorf("config: arena: %w", err)
		}
	}

	w := world.New(arena)
	for i, oc := range s.Obstacles {
		shape, err := oc.build()
		if err != nil {
			return nil, fmt.Errorf("config: obstacle %d: %w", i, err)
		}
		w.AddObstacle(shape)
	}
	return w, nil
}

func (oc ObstacleConfig) build() (geometry.Shape, error) {
	switch oc.Kind {
	case "ellipse":
		if len(oc.Axes) != 2 {
			return nil, fmt.Errorf("config: ellipse needs two axes, got %d", len(oc.Axes))
		}
		return geometry.NewEllipse(geometry.Vec2{X: oc.Center.X, Y: oc.Center.Y}, oc.Angle, oc.Axes[0], oc.Axes[1])
	case "polygon":
		return geometry.NewConvexPolygon(toVecs(oc.Vertices))
	default:
		return nil, fmt.Errorf("config: unknown obstacle kind %q", oc.Kind)
	}
}

func toVecs(points []Point) []geometry.Vec2 {
	out := make([]geometry.Vec2, len(points))
	for i, p := range points {
		out[i] = geometry.Vec2{X: p.X, Y: p.Y}
	}
	return out
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("config: empty matrix")
	}
	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("config: row %d has %d entries, want %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return mat.NewDense(len(rows), cols, flat), nil
}
