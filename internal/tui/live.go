// Package tui renders a live trajectory view: the simulated system
// moving through the world with a running nearest-feature readout.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/planarsim/internal/dynamo"
	"github.com/san-kum/planarsim/internal/geometry"
	"github.com/san-kum/planarsim/internal/sim"
	"github.com/san-kum/planarsim/internal/viz"
	"github.com/san-kum/planarsim/internal/world"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	trailCap     = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a simulation engine through a world and draws both.
type Model struct {
	engine   *sim.Engine
	world    *world.World
	dt       float64
	maxSteps int
	// engine.Steps() when this run began; the engine's history log
	// survives a reset, so the budget is counted from here.
	stepBase int

	canvas  *viz.Canvas
	trail   []geometry.Vec2
	running bool
	stepErr error

	nearPt   geometry.Vec2
	nearDist float64

	initState   dynamo.State
	initControl dynamo.Control
}

func NewModel(engine *sim.Engine, w *world.World, dt float64, maxSteps int) Model {
	canvas := viz.NewCanvas(canvasWidth, canvasHeight)
	canvas.FitRecords(w.Records())
	return Model{
		engine:      engine,
		world:       w,
		dt:          dt,
		maxSteps:    maxSteps,
		stepBase:    engine.Steps(),
		canvas:      canvas,
		trail:       make([]geometry.Vec2, 0, trailCap),
		running:     true,
		nearDist:    math.NaN(),
		initState:   engine.State(),
		initControl: engine.Control(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.stepsTaken() < m.maxSteps && m.stepErr == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	if err := m.engine.Step(m.dt); err != nil {
		m.stepErr = err
		return
	}

	pos := m.position()
	if len(m.trail) == trailCap {
		m.trail = m.trail[1:]
	}
	m.trail = append(m.trail, pos)

	pt, dist, err := m.world.Closest(pos)
	if err != nil {
		m.stepErr = err
		return
	}
	m.nearPt, m.nearDist = pt, dist
}

func (m *Model) reset() {
	m.engine.SetState(m.initState)
	m.engine.SetControl(m.initControl)
	m.stepBase = m.engine.Steps()
	m.trail = m.trail[:0]
	m.stepErr = nil
	m.nearDist = math.NaN()
	m.running = true
}

// stepsTaken counts the steps of the current run, ignoring history
// recorded before the last reset.
func (m Model) stepsTaken() int {
	return m.engine.Steps() - m.stepBase
}

// position reads the planar position from the first two state
// dimensions.
func (m *Model) position() geometry.Vec2 {
	x := m.engine.State()
	if len(x) < 2 {
		return geometry.Vec2{X: x[0]}
	}
	return geometry.Vec2{X: x[0], Y: x[1]}
}

func (m Model) View() string {
	m.canvas.Clear()
	for _, rec := range m.world.Records() {
		m.canvas.DrawRecord(rec)
	}
	for i := 1; i < len(m.trail); i++ {
		m.canvas.DrawSegment(m.trail[i-1], m.trail[i])
	}
	if len(m.trail) > 0 {
		m.canvas.DrawPoint(m.trail[len(m.trail)-1])
	}
	if !math.IsNaN(m.nearDist) && len(m.trail) > 0 {
		m.canvas.DrawSegment(m.trail[len(m.trail)-1], m.nearPt)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("planarsim live"))
	b.WriteString("\n")
	b.WriteString(canvasStyle.Render(strings.TrimRight(m.canvas.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	pos := m.position()
	var rows []string
	rows = append(rows, labelStyle.Render("t")+valueStyle.Render(fmt.Sprintf("%.2f", m.engine.Time())))
	rows = append(rows, labelStyle.Render("position")+valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", pos.X, pos.Y)))
	if !math.IsNaN(m.nearDist) {
		near := fmt.Sprintf("%.3f", m.nearDist)
		if feature := m.world.NearestFeature(); feature != nil {
			near += fmt.Sprintf(" (%s %d)", feature.Kind, feature.Index)
		}
		rows = append(rows, labelStyle.Render("clearance")+valueStyle.Render(near))
	}
	if m.stepErr != nil {
		rows = append(rows, warnStyle.Render("error: "+m.stepErr.Error()))
	} else if !m.running {
		rows = append(rows, warnStyle.Render("paused"))
	} else if m.stepsTaken() >= m.maxSteps {
		rows = append(rows, valueStyle.Render("done"))
	}
	return strings.Join(rows, "\n") + "\n"
}
