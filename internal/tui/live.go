package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/sim"
)

const (
	width       = 70
	height      = 22
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a plain ANSI surface for headless terminals: a coarse
// character picture of the lobes and the info panel, redrawn at most
// frameRate times per second.
type LiveRenderer struct {
	out       io.Writer
	title     string
	frameRate int
	lastFrame time.Time
	now       func() time.Time
	canvas    [][]rune
}

func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if frameRate <= 0 {
		frameRate = 10
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		now:       time.Now,
		canvas:    canvas,
	}
}

// Draw renders f unless the previous redraw was too recent. Skipped frames
// are not errors.
func (r *LiveRenderer) Draw(f *sim.Frame) error {
	now := r.now()
	if !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return nil
	}
	r.lastFrame = now

	r.clear()
	r.drawFrame(f)
	_, err := io.WriteString(r.out, r.render(f))
	return err
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// Terminal cells are about twice as tall as wide, so x is stretched.
func (r *LiveRenderer) cell(v dynamo.Vec2, scale float64) (int, int) {
	return width/2 + int(math.Round(2*v.X*scale)), height/2 + int(math.Round(v.Y*scale))
}

func (r *LiveRenderer) drawFrame(f *sim.Frame) {
	if f.Extent <= 0 {
		return
	}
	scale := float64(height/2-1) / f.Extent

	for _, l := range f.Lobes {
		rad := l.Radius * scale
		steps := max(int(2*math.Pi*rad*2), 12)
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			x, y := r.cell(l.Center.Add(dynamo.Polar(a, l.Radius)), scale)
			r.set(x, y, 'o')
		}
		x, y := r.cell(l.Center, scale)
		r.set(x, y, '|')
	}
	for _, l := range f.Lobes {
		for _, d := range l.Dots {
			x, y := r.cell(d.Pos, scale)
			if d.Hot {
				r.set(x, y, '*')
			} else {
				r.set(x, y, '.')
			}
		}
	}
}

func (r *LiveRenderer) render(f *sim.Frame) string {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs\n", r.title, f.Time/1000))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  Particles: %d   Energy: %.4f   Hot: %d\n", f.Info.Particles, f.Info.Energy, f.Info.Hot))
	b.WriteString("  * hot (right)   . cold (left)   ctrl+c to stop\n")
	return b.String()
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
