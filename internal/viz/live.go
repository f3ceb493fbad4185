package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/maxwell/internal/audio"
	"github.com/san-kum/maxwell/internal/sim"
)

const (
	panelWidth      = 44
	historyCapacity = 600
	minCanvasWidth  = 20
	minCanvasHeight = 8
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a scene from the bubbletea event loop and draws it through
// a CanvasSurface. Audio behind a GatedSink starts on the first key press.
type Model struct {
	scene    *sim.Scene
	surface  *CanvasSurface
	gate     *audio.GatedSink
	dt       float64
	fps      int
	running  bool
	showHelp bool
	audioErr error

	energyHistory []float64
	hotHistory    []float64
}

// NewModel wraps scene, which must have been built with surface as its
// render surface. gate may be nil when the scene is silent.
func NewModel(scene *sim.Scene, surface *CanvasSurface, gate *audio.GatedSink) Model {
	cfg := scene.Config()
	fps := cfg.Display.FPS
	if fps <= 0 {
		fps = 60
	}
	return Model{
		scene:         scene,
		surface:       surface,
		gate:          gate,
		dt:            cfg.Physics.Dt,
		fps:           fps,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		hotHistory:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := max(msg.Width-panelWidth-8, minCanvasWidth)
		h := max(msg.Height-3, minCanvasHeight)
		m.surface.Resize(w, h)
		_ = m.surface.Draw(m.scene.Frame())
	case tea.KeyMsg:
		m.permitAudio()
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.surface.Theme = NextTheme(m.surface.Theme.Name)
			_ = m.surface.Draw(m.scene.Frame())
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) permitAudio() {
	if m.gate == nil || m.gate.Permitted() || m.audioErr != nil {
		return
	}
	if err := m.gate.Permit(); err != nil {
		m.audioErr = err
		slog.Warn("audio unavailable, continuing silently", "err", err)
	}
}

func (m *Model) step() {
	f := m.scene.Step(m.dt)
	m.energyHistory = pushHistory(m.energyHistory, f.Info.Energy)
	hot := 0.0
	if f.Info.Particles > 0 {
		hot = float64(f.Info.Hot) / float64(f.Info.Particles)
	}
	m.hotHistory = pushHistory(m.hotHistory, hot)
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) reset() {
	m.scene.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.hotHistory = m.hotHistory[:0]
	_ = m.surface.Draw(m.scene.Frame())
}

func (m Model) audioStatus() string {
	switch {
	case m.gate == nil:
		return "off"
	case m.audioErr != nil:
		return "unavailable"
	case !m.gate.Permitted():
		return "press any key"
	default:
		return fmt.Sprintf("%d voices", m.scene.Sonifier().Active())
	}
}

func (m Model) View() string {
	th := m.surface.Theme
	f := m.scene.Frame()
	cfg := m.scene.Config()

	headerStyle := lipgloss.NewStyle().Foreground(th.Header).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(th.Label).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(th.Value)
	graphStyle := lipgloss.NewStyle().Foreground(th.Graph).Padding(1, 0)

	var s strings.Builder
	s.WriteString(headerStyle.Render("MAXWELL'S DEMON · "+strings.ToUpper(cfg.Variant)) + "\n")
	if m.running {
		s.WriteString(statusRunning.Render(spinGlyph(f.Index)+" RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Particles", fmt.Sprintf("%d", f.Info.Particles))
	row("Energy", fmt.Sprintf("%.4f", f.Info.Energy))
	row("Time", fmt.Sprintf("%.1fs", f.Time/1000))
	row("Frame", fmt.Sprintf("%d", f.Index))
	row("Lobes", fmt.Sprintf("%d (depth %d)", len(f.Lobes), cfg.Depth))
	row("Audio", m.audioStatus())
	if f.Info.Dropped > 0 {
		row("Dropped", fmt.Sprintf("%d", f.Info.Dropped))
	}

	hot := 0.0
	if f.Info.Particles > 0 {
		hot = float64(f.Info.Hot) / float64(f.Info.Particles)
	}
	s.WriteString(labelStyle.Render("Hot") + HotBar(hot, 16, th) + valueStyle.Render(fmt.Sprintf(" %3.0f%%", hot*100)) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(labelStyle.Render("Hot trend") + Sparkline(m.hotHistory, 24, th) + "\n")
	}

	s.WriteString(helpStyle.Render("\n" + separator(30, th) + "\nSP:Pause R:Reset Q:Quit\nT:Theme  ?:Help"))

	canvasView := canvasStyle.Render(m.surface.Canvas.Render())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reseed particles         ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
║  any key  - Enable audio             ║
╚══════════════════════════════════════╝`

// Run starts the full-screen program and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
