package export

import (
	"strings"
	"testing"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/sim"
	"github.com/san-kum/maxwell/internal/viz"
)

func TestFrameToSVGCircles(t *testing.T) {
	cfg := config.GetPreset(config.VariantFull)
	cfg.Seed = 12
	scene, err := sim.New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	f := scene.Step(config.DefaultDt)

	svg := FrameToSVG(f, 1200, 800)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if got := strings.Count(svg, `class="lobe"`); got != len(f.Lobes) {
		t.Errorf("expected %d lobe circles, got %d", len(f.Lobes), got)
	}
	if got := strings.Count(svg, `class="particle"`); got != f.Info.Particles {
		t.Errorf("expected %d particle circles, got %d", f.Info.Particles, got)
	}
	if got := strings.Count(svg, "<line "); got != len(f.Arms) {
		t.Errorf("expected %d arms, got %d", len(f.Arms), got)
	}
	if !strings.Contains(svg, "Particles: 234") {
		t.Error("expected info panel")
	}
	for _, c := range sim.LobeColors {
		if !strings.Contains(svg, c.Hex()) {
			t.Errorf("expected lobe color %s", c.Hex())
		}
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(4, 2)
	c.Paint(1, 1, "#ff6b6b")
	c.Set(6, 6)

	svg := CanvasToSVG(c, 3)
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `fill="#ff6b6b"`) {
		t.Error("expected cell color")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := SeriesToSVG([]float64{1, 2, 3, 2}, 300, 100, "#6be36b")
	if got := strings.Count(svg, " L"); got != 3 {
		t.Errorf("expected 3 segments, got %d", got)
	}
	if !strings.Contains(svg, "M0.0,") {
		t.Error("expected path to start at x=0")
	}
}
