package sim

import "github.com/san-kum/maxwell/internal/dynamo"

// Surface is anything that can draw a frame: a window, a terminal canvas,
// an SVG file. Implementations must not keep f past the call; its slices
// are reused on the next frame.
type Surface interface {
	Draw(f *Frame) error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(f *Frame) error

func (fn SurfaceFunc) Draw(f *Frame) error { return fn(f) }

// Observer sees every frame of a headless run.
type Observer interface {
	OnFrame(f *Frame)
}

// Frame is the device-independent picture of one tick, in scene units with
// the spinner hub at the origin and y pointing down. Extent is the radius
// that contains every lobe at any time.
type Frame struct {
	Index  int
	Time   float64
	Extent float64
	Arms   []Arm
	Lobes  []LobeView
	Info   Info
}

type Arm struct {
	From, To dynamo.Vec2
}

type LobeView struct {
	Center dynamo.Vec2
	Radius float64
	Level  int
	Color  dynamo.Color
	Dots   []Dot
}

// Dot is a particle in absolute coordinates.
type Dot struct {
	Pos    dynamo.Vec2
	Radius float64
	Energy float64
	Hot    bool
}

// Info is the text panel content.
type Info struct {
	Particles int
	Energy    float64
	Hot       int
	Dropped   int
}

type RunConfig struct {
	Frames int
	Dt     float64
}

type Result struct {
	Frames  int
	Time    float64
	Info    Info
	Dropped int
}

// Palette holds the fixed colors of the demo.
var (
	LobeColors = [3]dynamo.Color{
		{R: 255, G: 107, B: 107},
		{R: 255, G: 217, B: 61},
		{R: 107, G: 227, B: 107},
	}
	Background = dynamo.Color{R: 11, G: 16, B: 32}
	PanelColor = dynamo.Color{R: 20, G: 30, B: 45}
	TextColor  = dynamo.Color{R: 230, G: 238, B: 248}
	ArmColor   = dynamo.Color{R: 200, G: 200, B: 200}
)
