package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/maxwell/internal/config"
)

var variantInfo = map[string]string{
	config.VariantFull:   "nested spinner with sound",
	config.VariantVisual: "denser and silent, seed 42",
	config.VariantAudio:  "three lobes in stereo",
}

var (
	pickSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	pickCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")).Bold(true)
	pickActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	pickValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6be36b")).Bold(true)
	pickIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	pickDimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	pickKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	pickErrText = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// Builder turns the picked configuration into a running live model.
type Builder func(cfg *config.Config) (Model, error)

// field is an editable setting; set goes through config.Set under name.
type field struct {
	name string
	step float64
	get  func(c *config.Config) float64
}

var fields = []field{
	{"particles", 1, func(c *config.Config) float64 { return float64(c.ParticlesPerLobe) }},
	{"depth", 1, func(c *config.Config) float64 { return float64(c.Depth) }},
	{"seed", 1, func(c *config.Config) float64 { return float64(c.Seed) }},
	{"jitter", 0.005, func(c *config.Config) float64 { return c.Physics.Jitter }},
	{"threshold", 0.01, func(c *config.Config) float64 { return c.Physics.Threshold }},
	{"spin_rate", 0.0005, func(c *config.Config) float64 { return c.Geometry.SpinRate }},
}

// Picker is a menu for choosing a variant and adjusting its main knobs
// before starting the live view.
type Picker struct {
	state, cursor int
	variants      []string
	cfg           *config.Config
	fieldCursor   int
	editing       bool
	editBuf       string
	err           error
	build         Builder
	live          Model
	size          tea.WindowSizeMsg
}

func NewPicker(build Builder) Picker {
	return Picker{
		state:    stateMenu,
		variants: config.ListPresets(),
		build:    build,
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.state == stateSim {
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		p.size = size
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		if p.state == stateMenu {
			return p.menuKey(key)
		}
		return p.configKey(key)
	}
	return p, nil
}

func (p Picker) menuKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.variants)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.cfg = config.GetPreset(p.variants[p.cursor])
		p.state, p.fieldCursor, p.err = stateConfig, 0, nil
	}
	return p, nil
}

func (p Picker) configKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	f := fields[p.fieldCursor]
	if p.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(p.editBuf, 64); err == nil {
				_ = p.cfg.Set(f.name, v)
			}
			p.editing, p.editBuf = false, ""
		case "esc":
			p.editing, p.editBuf = false, ""
		case "backspace":
			if len(p.editBuf) > 0 {
				p.editBuf = p.editBuf[:len(p.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					p.editBuf += s
				}
			}
		}
		return p, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return p, tea.Quit
	case "q", "esc":
		p.state = stateMenu
	case "up", "k":
		if p.fieldCursor > 0 {
			p.fieldCursor--
		}
	case "down", "j":
		if p.fieldCursor < len(fields)-1 {
			p.fieldCursor++
		}
	case "left", "h":
		_ = p.cfg.Set(f.name, f.get(p.cfg)-f.step)
	case "right", "l":
		_ = p.cfg.Set(f.name, f.get(p.cfg)+f.step)
	case "enter", " ":
		p.editing, p.editBuf = true, strconv.FormatFloat(f.get(p.cfg), 'f', -1, 64)
	case "s":
		return p.start()
	}
	return p, nil
}

func (p Picker) start() (Picker, tea.Cmd) {
	if err := p.cfg.Validate(); err != nil {
		p.err = err
		return p, nil
	}
	live, err := p.build(p.cfg)
	if err != nil {
		p.err = err
		return p, nil
	}
	if p.size.Width > 0 {
		next, _ := live.Update(p.size)
		live = next.(Model)
	}
	p.live, p.state, p.err = live, stateSim, nil
	return p, live.Init()
}

func (p Picker) View() string {
	switch p.state {
	case stateConfig:
		return p.viewConfig()
	case stateSim:
		return p.live.View()
	}
	return p.viewMenu()
}

func (p Picker) header(title, sub string) string {
	return "\n\n    " + GradientText(title, "#ff6b6b", "#6be36b") + "\n    " + pickSub.Render(sub) + "\n    " + pickSub.Render("─────────────────────────") + "\n\n"
}

func hints(pairs ...string) string {
	var b strings.Builder
	b.WriteString("\n    ")
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(pickKey.Render(pairs[i]) + pickIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String() + "\n"
}

func (p Picker) viewMenu() string {
	var b strings.Builder
	b.WriteString(p.header("MAXWELL'S DEMON", "pick a variant"))
	for i, name := range p.variants {
		desc := variantInfo[name]
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pickCursor.Render("▸"), pickActive.Render(fmt.Sprintf("%-8s", name)), pickValue.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", pickIdle.Render(fmt.Sprintf("  %-8s", name)), pickDimmer.Render(desc)))
		}
	}
	b.WriteString(hints("j/k", "navigate", "enter", "select", "q", "quit"))
	return b.String()
}

func (p Picker) viewConfig() string {
	var b strings.Builder
	b.WriteString(p.header(strings.ToUpper(p.cfg.Variant), variantInfo[p.cfg.Variant]))
	for i, f := range fields {
		val := strconv.FormatFloat(f.get(p.cfg), 'g', 6, 64)
		if p.editing && i == p.fieldCursor {
			val = p.editBuf + "_"
		}
		if i == p.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", pickCursor.Render("▸"), pickActive.Render(fmt.Sprintf("%-10s", f.name)), pickValue.Render(fmt.Sprintf("%10s", val))))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", pickIdle.Render(fmt.Sprintf("  %-10s", f.name)), pickDimmer.Render(fmt.Sprintf("%10s", val))))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + pickErrText.Render(p.err.Error()) + "\n")
	}
	b.WriteString(hints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back"))
	return b.String()
}

// RunPicker starts the menu and blocks until it quits.
func RunPicker(build Builder) error {
	_, err := tea.NewProgram(NewPicker(build), tea.WithAltScreen()).Run()
	return err
}
