package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/planarsim/internal/config"
	"github.com/san-kum/planarsim/internal/dynamo"
	"github.com/san-kum/planarsim/internal/geometry"
	"github.com/san-kum/planarsim/internal/sim"
	"github.com/san-kum/planarsim/internal/tui"
)

var (
	configFile    string
	dt            float64
	steps         int
	stateArg      string
	controlArg    string
	queryArg      string
	integratorArg string
	plotDim       int
	seed          int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planarsim",
		Short: "planar dynamics simulation and obstacle distance lab",
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "simulate a model and plot its state history",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().StringVar(&stateArg, "state", "", "initial state, comma separated")
	runCmd.Flags().StringVar(&controlArg, "control", "", "control input, comma separated")
	runCmd.Flags().StringVar(&integratorArg, "integrator", "", "integrator (euler, rk4, rk45)")
	runCmd.Flags().IntVar(&plotDim, "plot", 0, "state dimension to plot")

	closestCmd := &cobra.Command{
		Use:   "closest",
		Short: "query the nearest wall or obstacle",
		RunE:  runClosest,
	}
	closestCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	closestCmd.Flags().StringVar(&queryArg, "at", "", "query point x,y (default: simulate the scenario)")
	closestCmd.Flags().Int64Var(&seed, "seed", 1, "projection seed")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the trajectory move through the world",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultScenario())
		},
	}

	rootCmd.AddCommand(runCmd, closestCmd, liveCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScenario(modelOverride string) (*config.Scenario, error) {
	s := config.DefaultScenario()
	if configFile != "" {
		var err error
		s, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	}
	if modelOverride != "" {
		s.Model = modelOverride
	}
	return s, nil
}

func buildEngine(s *config.Scenario) (*sim.Engine, error) {
	if stateArg != "" {
		x, err := parseVector(stateArg)
		if err != nil {
			return nil, fmt.Errorf("--state: %w", err)
		}
		s.InitState = x
	}
	if controlArg != "" {
		u, err := parseVector(controlArg)
		if err != nil {
			return nil, fmt.Errorf("--control: %w", err)
		}
		s.InitControl = u
	}

	if integratorArg != "" {
		s.Integrator = integratorArg
	}

	model, err := s.BuildModel()
	if err != nil {
		return nil, err
	}
	engine, err := sim.NewEngine(model, dynamo.State(s.InitState), dynamo.Control(s.InitControl))
	if err != nil {
		return nil, err
	}
	integ, err := s.BuildIntegrator()
	if err != nil {
		return nil, err
	}
	engine.SetIntegrator(integ)
	return engine, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := ""
	if len(args) == 1 {
		model = args[0]
	}
	s, err := loadScenario(model)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dt") || s.Dt == 0 {
		s.Dt = dt
	}
	if cmd.Flags().Changed("steps") || s.Steps == 0 {
		s.Steps = steps
	}

	engine, err := buildEngine(s)
	if err != nil {
		return err
	}

	for i := 0; i < s.Steps; i++ {
		if err := engine.Step(s.Dt); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "model\t%s\n", s.Model)
	fmt.Fprintf(w, "integrator\t%s\n", s.Integrator)
	fmt.Fprintf(w, "steps\t%d\n", engine.Steps())
	fmt.Fprintf(w, "time\t%.4f\n", engine.Time())
	fmt.Fprintf(w, "state\t%s\n", formatVector(engine.State()))
	fmt.Fprintf(w, "control\t%s\n", formatVector(engine.Control()))
	w.Flush()

	if plotDim >= 0 && plotDim < engine.StateDim() {
		fmt.Printf("\nstate[%d] over %d steps:\n", plotDim, engine.Steps())
		fmt.Println(asciigraph.Plot(engine.StateLog(plotDim), asciigraph.Height(12), asciigraph.Width(72)))
	}
	return nil
}

func runClosest(cmd *cobra.Command, args []string) error {
	s, err := loadScenario("")
	if err != nil {
		return err
	}
	geometry.Seed(seed)

	world, err := s.BuildWorld()
	if err != nil {
		return err
	}

	report := func(q geometry.Vec2) error {
		pt, dist, err := world.Closest(q)
		if err != nil {
			return err
		}
		feature := world.NearestFeature()
		fmt.Printf("query (%.3f, %.3f) -> (%.3f, %.3f)  dist %.4f  %s %d\n",
			q.X, q.Y, pt.X, pt.Y, dist, feature.Kind, feature.Index)
		return nil
	}

	if queryArg != "" {
		q, err := parseVector(queryArg)
		if err != nil || len(q) != 2 {
			return fmt.Errorf("--at wants x,y: %v", err)
		}
		return report(geometry.Vec2{X: q[0], Y: q[1]})
	}

	// No explicit point: walk the scenario's trajectory and report the
	// clearance after every step.
	engine, err := buildEngine(s)
	if err != nil {
		return err
	}
	for i := 0; i < s.Steps; i++ {
		if err := engine.Step(s.Dt); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		x := engine.State()
		if len(x) < 2 {
			return fmt.Errorf("model %q has no planar position to query", s.Model)
		}
		if err := report(geometry.Vec2{X: x[0], Y: x[1]}); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, err := loadScenario("")
	if err != nil {
		return err
	}
	geometry.Seed(s.Seed)

	engine, err := buildEngine(s)
	if err != nil {
		return err
	}
	world, err := s.BuildWorld()
	if err != nil {
		return err
	}

	model := tui.NewModel(engine, world, s.Dt, s.Steps)
	_, err = tea.NewProgram(model).Run()
	return err
}

func parseVector(arg string) ([]float64, error) {
	parts := strings.Split(arg, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad component %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
