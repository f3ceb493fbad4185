package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/maxwell/internal/dynamo"
)

var (
	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6be36b"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

var spinGlyphs = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// ColorOf converts a palette color for lipgloss.
func ColorOf(c dynamo.Color) lipgloss.Color { return lipgloss.Color(c.Hex()) }

// blend mixes two hex colors in Lab space. Unparseable input falls back to
// from.
func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, err := colorful.Hex(string(from))
	if err != nil {
		return from
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return from
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// GradientText colors text from one color to another, rune by rune.
func GradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(blend(from, to, t)).Render(string(r)))
	}
	return b.String()
}

func spinGlyph(frame int) string {
	return spinGlyphs[frame%len(spinGlyphs)]
}

// HotBar shows the hot share of the particles: hot cells on the left in the
// theme's hot color, cold cells after them.
func HotBar(frac float64, width int, th Theme) string {
	hot := min(max(int(frac*float64(width)+0.5), 0), width)
	return lipgloss.NewStyle().Foreground(th.Hot).Render(strings.Repeat("█", hot)) +
		lipgloss.NewStyle().Foreground(th.Cold).Render(strings.Repeat("░", width-hot))
}

// Sparkline draws the last width values scaled to their own range, shading
// from cold to hot with height.
func Sparkline(values []float64, width int, th Theme) string {
	if len(values) == 0 {
		return lipgloss.NewStyle().Foreground(th.Muted).Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	top := len(sparkRunes) - 1
	for _, v := range values {
		norm := (v - lo) / span
		idx := min(max(int(norm*float64(top)), 0), top)
		b.WriteString(lipgloss.NewStyle().Foreground(blend(th.Cold, th.Hot, norm)).Render(string(sparkRunes[idx])))
	}
	return b.String()
}

func separator(width int, th Theme) string {
	side := max(width/2-2, 0)
	return lipgloss.NewStyle().Foreground(th.Muted).Render(strings.Repeat("─", side) + " ◆ " + strings.Repeat("─", side))
}
