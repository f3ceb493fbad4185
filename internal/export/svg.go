package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/maxwell/internal/sim"
	"github.com/san-kum/maxwell/internal/viz"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`

// FrameToSVG draws a frame as vector shapes: one line per arm, one circle
// per lobe and one per particle, plus the info panel.
func FrameToSVG(f *sim.Frame, width, height int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height, sim.Background.Hex()))

	extent := f.Extent
	if extent <= 0 {
		extent = 1
	}
	scale := 0.95 * float64(min(width, height)) / 2 / extent
	cx, cy := float64(width)/2, float64(height)/2

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="2">`+"\n", sim.ArmColor.Hex()))
	for _, a := range f.Arms {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			cx+a.From.X*scale, cy+a.From.Y*scale, cx+a.To.X*scale, cy+a.To.Y*scale))
	}
	sb.WriteString("</g>\n")

	for _, l := range f.Lobes {
		color := l.Color.Hex()
		sb.WriteString(fmt.Sprintf(`<circle class="lobe" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="0.12" stroke="%s" stroke-width="2"/>`+"\n",
			cx+l.Center.X*scale, cy+l.Center.Y*scale, l.Radius*scale, color, color))
	}
	for _, l := range f.Lobes {
		for _, d := range l.Dots {
			fill := l.Color.Hex()
			if d.Hot {
				fill = sim.TextColor.Hex()
			}
			sb.WriteString(fmt.Sprintf(`<circle class="particle" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				cx+d.Pos.X*scale, cy+d.Pos.Y*scale, max(d.Radius*scale, 0.5), fill))
		}
	}

	sb.WriteString(fmt.Sprintf(`<rect x="10" y="10" width="220" height="54" rx="6" fill="%s"/>`+"\n", sim.PanelColor.Hex()))
	sb.WriteString(fmt.Sprintf(`<text x="20" y="32" fill="%s" font-family="monospace" font-size="14">Particles: %d</text>`+"\n",
		sim.TextColor.Hex(), f.Info.Particles))
	sb.WriteString(fmt.Sprintf(`<text x="20" y="52" fill="%s" font-family="monospace" font-size="14">Energy: %.4f</text>`+"\n",
		sim.TextColor.Hex(), f.Info.Energy))

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format, one dot per lit
// sub-pixel in its cell's color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width := int(float64(pw) * scale)
	height := int(float64(ph) * scale)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height, sim.Background.Hex()))

	dotRadius := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			fill := string(canvas.Colors[y/4][x/2])
			if fill == "" {
				fill = sim.TextColor.Hex()
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values as a polyline, as used for energy histories.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height, sim.Background.Hex()))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
