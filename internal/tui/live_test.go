package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/sim"
)

func testFrame() *sim.Frame {
	return &sim.Frame{
		Time:   1500,
		Extent: 100,
		Lobes: []sim.LobeView{{
			Center: dynamo.Vec2{},
			Radius: 50,
			Dots: []sim.Dot{
				{Pos: dynamo.Vec2{X: 20}, Hot: true},
				{Pos: dynamo.Vec2{X: -20}},
			},
		}},
		Info: sim.Info{Particles: 2, Energy: 0.125, Hot: 1},
	}
}

func TestLiveRendererDraws(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "audio", 10)

	if err := r.Draw(testFrame()); err != nil {
		t.Fatalf("draw: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"audio  t=1.50s", "Particles: 2", "Energy: 0.1250", "*", "o"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}

	hotX, _ := r.cell(dynamo.Vec2{X: 20}, float64(height/2-1)/100)
	coldX, _ := r.cell(dynamo.Vec2{X: -20}, float64(height/2-1)/100)
	if hotX <= width/2 || coldX >= width/2 {
		t.Errorf("expected hot right of center and cold left, got %d and %d", hotX, coldX)
	}
}

func TestLiveRendererThrottles(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "audio", 10)
	clock := time.Unix(0, 0)
	r.now = func() time.Time { return clock }

	draws := 0
	for i := 0; i < 30; i++ {
		before := buf.Len()
		if err := r.Draw(testFrame()); err != nil {
			t.Fatalf("draw: %v", err)
		}
		if buf.Len() > before {
			draws++
		}
		clock = clock.Add(16 * time.Millisecond)
	}

	// 30 frames of 16 ms span 480 ms; at 10 FPS that is 5 redraws.
	if draws != 5 {
		t.Errorf("expected 5 redraws, got %d", draws)
	}
}
