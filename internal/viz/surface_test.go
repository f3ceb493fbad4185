package viz

import (
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/sim"
)

func singleLobeFrame() *sim.Frame {
	return &sim.Frame{
		Extent: 100,
		Arms:   []sim.Arm{{From: dynamo.Vec2{}, To: dynamo.Vec2{X: 50}}},
		Lobes: []sim.LobeView{{
			Center: dynamo.Vec2{X: 50},
			Radius: 50,
			Color:  sim.LobeColors[0],
			Dots: []sim.Dot{
				{Pos: dynamo.Vec2{X: 70}, Radius: 4, Hot: true},
				{Pos: dynamo.Vec2{X: 30}, Radius: 4},
			},
		}},
	}
}

func TestSurfaceDraws(t *testing.T) {
	s := NewCanvasSurface(40, 20)
	if err := s.Draw(singleLobeFrame()); err != nil {
		t.Fatalf("draw: %v", err)
	}

	// 80x80 pixels, extent 100 -> 0.38 px per unit, origin at (40,40).
	c := s.Canvas
	if !c.Lit(40, 40) {
		t.Error("expected arm at hub")
	}
	hotX, coldX := 40+27, 40+11
	if !c.Lit(hotX, 40) || !c.Lit(coldX, 40) {
		t.Error("expected both dots drawn")
	}
	if got := c.Colors[40/4][hotX/2]; got != s.Theme.Hot {
		t.Errorf("expected hot color, got %q", got)
	}
	if got := c.Colors[40/4][coldX/2]; got != s.Theme.Cold {
		t.Errorf("expected cold color, got %q", got)
	}
}

func TestSurfaceWithoutArea(t *testing.T) {
	s := NewCanvasSurface(0, 0)
	if err := s.Draw(singleLobeFrame()); err == nil {
		t.Error("expected error for empty canvas")
	}
}

func TestResize(t *testing.T) {
	s := NewCanvasSurface(10, 10)
	c := s.Canvas
	s.Resize(10, 10)
	if s.Canvas != c {
		t.Error("expected canvas reused at same size")
	}
	s.Resize(30, 12)
	if s.Canvas.Width != 30 || s.Canvas.Height != 12 {
		t.Errorf("expected 30x12, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
}
