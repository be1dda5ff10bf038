package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rigid/internal/physics"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type tickMsg time.Time

// watchModel steps a world on a frame timer and renders it through a
// LiveRenderer canvas.
type watchModel struct {
	world     *physics.World
	renderer  *LiveRenderer
	dt        float32
	frameRate int
	paused    bool
	steps     int
}

// RunWatch drives a world interactively: space pauses, q quits.
func RunWatch(world *physics.World, dt float32, frameRate int) error {
	if frameRate <= 0 {
		frameRate = 30
	}
	m := watchModel{
		world:     world,
		renderer:  NewLiveRenderer(frameRate),
		dt:        dt,
		frameRate: frameRate,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case tickMsg:
		if !m.paused {
			// Advance simulated time to match one frame of wall time.
			frame := 1.0 / float32(m.frameRate)
			for t := float32(0); t < frame; t += m.dt {
				m.world.Step(m.dt)
				m.steps++
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	m.renderer.clear()
	m.renderer.drawTerrain(m.world)
	m.renderer.drawBodies(m.world)

	header := titleStyle.Render("rigid watch")
	status := dimStyle.Render(fmt.Sprintf("steps=%d dt=%.4f", m.steps, m.dt))
	if m.paused {
		status += "  " + titleStyle.Render("[paused]")
	}
	help := helpStyle.Render("space pause · q quit")

	return header + "  " + status + "\n" +
		m.renderer.Frame(m.world, m.world.Time()) +
		help + "\n"
}
