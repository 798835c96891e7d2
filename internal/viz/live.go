package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pointsim/internal/geom"
	"github.com/san-kum/pointsim/internal/solver"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 400
	stepsPerFrame   = 10
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives an interaction solver from the bubbletea event loop and
// renders each body's trajectory buffer as an orbit trail.
type Model struct {
	sim      *solver.InteractionSolver
	scenario string
	canvas   *Canvas
	scale    float64
	running  bool
	diverged bool
	history  []float64
	err      error
}

func NewModel(sim *solver.InteractionSolver, scenario string, scale float64) Model {
	if scale <= 0 {
		scale = 10
	}
	return Model{
		sim:      sim,
		scenario: scenario,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		scale:    scale,
		running:  true,
		history:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
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
		case "+", "=":
			m.scale *= 1.25
		case "-", "_":
			m.scale /= 1.25
		}
	case TickMsg:
		if m.running && !m.diverged && m.err == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	for i := 0; i < stepsPerFrame; i++ {
		next, err := m.sim.Step()
		if err != nil {
			m.err = err
			return
		}
		for _, u := range next {
			if !geom.Valid(u) {
				m.diverged = true
				return
			}
		}
	}

	x := m.sim.Bodies[0].Position()[0]
	m.history = append(m.history, x)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) draw() {
	m.clear()
	cx, cy := canvasWidth, canvasHeight*2 // sub-pixel center

	for _, b := range m.sim.Bodies {
		n := b.Traj.Len()
		havePrev := false
		var px, py int
		for i := 0; i < n; i++ {
			p, err := b.Traj.Get(i)
			if err != nil || (p == geom.Pair{}) {
				havePrev = false // zero padding from an unfilled buffer
				continue
			}
			x := cx + int(p.Position[0]*m.scale)
			y := cy - int(p.Position[1]*m.scale)
			if havePrev && onCanvas(px, py) && onCanvas(x, y) {
				m.canvas.DrawLine(px, py, x, y)
			} else {
				m.canvas.Set(x, y)
			}
			px, py = x, y
			havePrev = true
		}
		pos := b.Position()
		m.canvas.Dot(cx+int(pos[0]*m.scale), cy-int(pos[1]*m.scale))
	}
}

func onCanvas(x, y int) bool {
	return x >= 0 && x < canvasWidth*2 && y >= 0 && y < canvasHeight*4
}

func (m *Model) clear() { m.canvas.Clear() }

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(warnStyle.Render("ERROR: "+m.err.Error()) + "\n\n")
	case m.diverged:
		s.WriteString(warnStyle.Render("DIVERGED (NaN)") + "\n\n")
	case m.running:
		s.WriteString("RUNNING\n\n")
	default:
		s.WriteString("PAUSED\n\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption(m.sim.Bodies[0].ID+" x"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.sim.Clock.T1)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Clock.Idx1)) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.1fx", m.scale)) + "\n")
	s.WriteString("\nBODIES\n")
	for _, b := range m.sim.Bodies {
		line := fmt.Sprintf("%-4s m=%-5.2g |v|=%.3f", b.ID, b.Mass, b.Speed().Len())
		s.WriteString("  " + valueStyle.Render(line) + "\n")
	}
	s.WriteString(helpStyle.Render("\n──────────────\nSP:Pause +/-:Zoom Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run blocks until the user quits the live view.
func Run(sim *solver.InteractionSolver, scenario string, scale float64) error {
	p := tea.NewProgram(NewModel(sim, scenario, scale))
	_, err := p.Run()
	return err
}
