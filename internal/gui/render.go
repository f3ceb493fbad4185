package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/sim"
)

var (
	ColBg    = toColor(sim.Background)
	ColPanel = toColor(sim.PanelColor)
	ColText  = toColor(sim.TextColor)
	ColArm   = toColor(sim.ArmColor)
	ColDim   = rl.NewColor(90, 100, 120, 255)
)

func toColor(c dynamo.Color) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

// Surface draws frames into the current raylib frame. It must be called
// between BeginDrawing and EndDrawing.
type Surface struct {
	Width, Height int32
}

func (s *Surface) project(v dynamo.Vec2, scale float64) rl.Vector2 {
	return rl.NewVector2(
		float32(float64(s.Width)/2+v.X*scale),
		float32(float64(s.Height)/2+v.Y*scale),
	)
}

func (s *Surface) Draw(f *sim.Frame) error {
	if s.Width <= 0 || s.Height <= 0 || f.Extent <= 0 {
		return fmt.Errorf("gui: nothing to draw on %dx%d", s.Width, s.Height)
	}
	scale := 0.95 * float64(min(s.Width, s.Height)) / 2 / f.Extent

	rl.ClearBackground(ColBg)

	for _, a := range f.Arms {
		rl.DrawLineEx(s.project(a.From, scale), s.project(a.To, scale), 2, ColArm)
	}
	for _, l := range f.Lobes {
		c := s.project(l.Center, scale)
		col := toColor(l.Color)
		r := float32(l.Radius * scale)
		rl.DrawCircleV(c, r, rl.ColorAlpha(col, 0.12))
		rl.DrawRing(c, r-1.5, r+0.5, 0, 360, 64, col)
	}
	for _, l := range f.Lobes {
		col := toColor(l.Color)
		for _, d := range l.Dots {
			fill := col
			if d.Hot {
				fill = ColText
			}
			rl.DrawCircleV(s.project(d.Pos, scale), float32(math.Max(d.Radius*scale, 1)), fill)
		}
	}

	rl.DrawRectangleRounded(rl.NewRectangle(10, 10, 240, 58), 0.2, 6, ColPanel)
	rl.DrawText(fmt.Sprintf("Particles: %d", f.Info.Particles), 22, 20, 18, ColText)
	rl.DrawText(fmt.Sprintf("Energy: %.4f", f.Info.Energy), 22, 42, 18, ColText)
	return nil
}
