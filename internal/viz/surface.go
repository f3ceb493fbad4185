package viz

import (
	"errors"
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/sim"
)

var errNoArea = errors.New("viz: canvas has no drawable area")

// CanvasSurface draws frames onto a braille Canvas, scaled so the frame's
// extent fits the shorter side.
type CanvasSurface struct {
	Canvas *Canvas
	Theme  Theme
}

func NewCanvasSurface(w, h int) *CanvasSurface {
	return &CanvasSurface{Canvas: NewCanvas(w, h), Theme: ThemeDemon}
}

// Resize replaces the canvas when the terminal changes size.
func (s *CanvasSurface) Resize(w, h int) {
	if w == s.Canvas.Width && h == s.Canvas.Height {
		return
	}
	s.Canvas = NewCanvas(max(w, 0), max(h, 0))
}

func (s *CanvasSurface) Draw(f *sim.Frame) error {
	c := s.Canvas
	c.Clear()

	pw, ph := c.PixelSize()
	if pw < 2 || ph < 2 || f.Extent <= 0 {
		return errNoArea
	}
	scale := 0.95 * float64(min(pw, ph)) / 2 / f.Extent
	cx, cy := pw/2, ph/2
	px := func(v dynamo.Vec2) (int, int) {
		return cx + int(math.Round(v.X*scale)), cy + int(math.Round(v.Y*scale))
	}

	for _, a := range f.Arms {
		x0, y0 := px(a.From)
		x1, y1 := px(a.To)
		c.DrawLine(x0, y0, x1, y1, s.Theme.Arm)
	}
	for _, l := range f.Lobes {
		x, y := px(l.Center)
		c.DrawCircle(x, y, int(math.Round(l.Radius*scale)), ColorOf(l.Color))
	}
	for _, l := range f.Lobes {
		for _, d := range l.Dots {
			x, y := px(d.Pos)
			color := s.Theme.Cold
			if d.Hot {
				color = s.Theme.Hot
			}
			c.FillCircle(x, y, int(math.Round(d.Radius*scale)), color)
		}
	}
	return nil
}
