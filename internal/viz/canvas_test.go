package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(3, 5)

	if !c.Lit(3, 5) {
		t.Error("expected pixel (3,5) lit")
	}
	if c.Lit(2, 5) {
		t.Error("expected pixel (2,5) unlit")
	}
	if got := c.Grid[1][1]; got != blank|0x10 {
		t.Errorf("expected %U, got %U", blank|0x10, got)
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Paint(4, 0, "#ffffff")
	c.Paint(0, 8, "#ffffff")

	if strings.ContainsFunc(c.String(), func(r rune) bool { return r > blank }) {
		t.Errorf("expected empty canvas, got %q", c.String())
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(1, 1, 15, 12, "#c8c8c8")

	if !c.Lit(1, 1) || !c.Lit(15, 12) {
		t.Error("expected both endpoints lit")
	}
	if c.Colors[0][0] != lipgloss.Color("#c8c8c8") {
		t.Errorf("expected cell colored, got %q", c.Colors[0][0])
	}
}

func TestDrawCircleSymmetry(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8, "#ff6b6b")

	for _, p := range [][2]int{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("expected (%d,%d) on circle", p[0], p[1])
		}
	}
	if c.Lit(20, 20) {
		t.Error("expected outline only")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(6, 6, 2, "#ffffff")

	if !c.Lit(6, 6) || !c.Lit(8, 6) || !c.Lit(6, 4) {
		t.Error("expected disk filled")
	}
	if c.Lit(8, 8) {
		t.Error("expected corner outside disk")
	}
}

func TestClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.FillCircle(2, 2, 2, "#ffffff")
	c.Clear()

	for i, row := range c.Grid {
		for j, r := range row {
			if r != blank || c.Colors[i][j] != "" {
				t.Fatalf("cell (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestRenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(6, 2)
	c.DrawLine(0, 0, 11, 7, "#6be36b")
	c.Set(0, 7)

	rendered := c.Render()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank && !strings.ContainsRune(rendered, r) {
				t.Errorf("glyph %U missing from render", r)
			}
		}
	}
	if got := strings.Count(rendered, "\n"); got != 2 {
		t.Errorf("expected 2 rows, got %d", got)
	}
}
