// Package tui provides a live terminal view of a running simulation.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"consav/internal/sim"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

const (
	chartWidth  = 70
	chartHeight = 14
	maxWindow   = 300
)

type tickMsg time.Time

// Model is the bubbletea model driving one engine period per frame.
type Model struct {
	engine    sim.Engine
	modelName string
	variable  string
	periods   int

	t      int
	series []float64
	last   map[string]float64
	paused bool
	done   bool
}

func NewModel(engine sim.Engine, modelName, variable string, periods int, seed int64) Model {
	engine.Initialize(seed)
	return Model{
		engine:    engine,
		modelName: modelName,
		variable:  variable,
		periods:   periods,
		series:    make([]float64, 0, periods),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(30*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			vars := m.engine.Step()
			m.last = vars
			m.series = append(m.series, vars[m.variable])
			m.t++
			if m.t >= m.periods {
				m.done = true
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	header := titleStyle.Render(fmt.Sprintf("consav live: %s", m.modelName))
	status := dimStyle.Render(fmt.Sprintf("period %d/%d  [space] pause  [q] quit", m.t, m.periods))
	if m.paused {
		status = dimStyle.Render(fmt.Sprintf("period %d/%d  PAUSED  [space] resume  [q] quit", m.t, m.periods))
	}
	if m.done {
		status = dimStyle.Render(fmt.Sprintf("period %d/%d  done  [q] quit", m.t, m.periods))
	}

	chart := "waiting for data..."
	if len(m.series) >= 2 {
		window := m.series
		if len(window) > maxWindow {
			window = window[len(window)-maxWindow:]
		}
		chart = asciigraph.Plot(window,
			asciigraph.Width(chartWidth),
			asciigraph.Height(chartHeight),
			asciigraph.Caption(m.variable),
		)
	}

	stats := ""
	if m.last != nil {
		stats = statStyle.Render(fmt.Sprintf("mNrm %.4f  cNrm %.4f  aNrm %.4f",
			m.last["mNrm"], m.last["cNrm"], m.last["aNrm"]))
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n", header, status, chart, stats)
}

// Run starts the live view and blocks until it exits.
func Run(engine sim.Engine, modelName, variable string, periods int, seed int64) error {
	p := tea.NewProgram(NewModel(engine, modelName, variable, periods, seed))
	_, err := p.Run()
	return err
}
