package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sorenkp/gravsim/internal/gravity"
	"github.com/sorenkp/gravsim/internal/nbody"
)

const driftHistory = 240

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

type TickMsg time.Time

// Model steps a simulation in real time and shows conserved-quantity drift.
type Model struct {
	sim           *nbody.Simulation
	eval          *gravity.Direct
	stepsPerFrame int
	frameRate     int
	initialEnergy float64
	haveInitial   bool
	drift         []float64
	orbit         *OrbitCanvas
	running       bool
	err           error
}

// orbitExtent sizes the trail canvas to the initial system with headroom.
func orbitExtent(ps []nbody.Particle) float64 {
	ext := 0.0
	for i := range ps {
		if r := math.Abs(ps[i].Pos.X); r > ext {
			ext = r
		}
		if r := math.Abs(ps[i].Pos.Y); r > ext {
			ext = r
		}
	}
	if ext == 0 {
		ext = 1
	}
	return 1.5 * ext
}

func NewModel(sim *nbody.Simulation, eval *gravity.Direct, stepsPerFrame, frameRate int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if frameRate < 1 {
		frameRate = 30
	}
	return Model{
		sim:           sim,
		eval:          eval,
		stepsPerFrame: stepsPerFrame,
		frameRate:     frameRate,
		drift:         make([]float64, 0, driftHistory),
		orbit:         NewOrbitCanvas(48, 14, orbitExtent(sim.Particles)),
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "c":
			m.orbit.Clear()
		}
	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerFrame; i++ {
				if err := m.sim.Step(); err != nil {
					m.err = err
					break
				}
			}
			m.observe()
			m.orbit.Plot(m.sim.Particles)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) observe() {
	e := m.eval.Energy(m.sim.Particles)
	if !m.haveInitial {
		m.initialEnergy = e
		m.haveInitial = true
	}
	d := 0.0
	if m.initialEnergy != 0 {
		d = math.Abs(e-m.initialEnergy) / math.Abs(m.initialEnergy)
	}
	if len(m.drift) == driftHistory {
		m.drift = m.drift[1:]
	}
	m.drift = append(m.drift, d)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("gravsim live"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("scheme", m.sim.Scheme.String())
	row("time", fmt.Sprintf("%.4f", m.sim.T))
	row("dt", fmt.Sprintf("%g", m.sim.Dt))
	row("steps", fmt.Sprintf("%d", m.sim.Steps()))
	row("bodies", fmt.Sprintf("%d", m.sim.N()))
	if m.haveInitial {
		row("energy", fmt.Sprintf("%.12g", m.initialEnergy))
		if n := len(m.drift); n > 0 {
			row("drift", fmt.Sprintf("%.3e", m.drift[n-1]))
		}
	}

	b.WriteString(graphStyle.Render(m.orbit.String()))
	b.WriteString("\n")
	if len(m.drift) > 1 {
		b.WriteString(graphStyle.Render(DriftPlot(m.drift, 8)))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space pause/resume  c clear trails  q quit"))
	b.WriteString("\n")
	return b.String()
}

// RunLive starts the interactive live view and blocks until it exits.
func RunLive(sim *nbody.Simulation, eval *gravity.Direct, stepsPerFrame, frameRate int) error {
	_, err := tea.NewProgram(NewModel(sim, eval, stepsPerFrame, frameRate)).Run()
	return err
}
