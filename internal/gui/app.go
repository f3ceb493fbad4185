package gui

import (
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/maxwell/internal/audio"
	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/sim"
)

const telemetrySize = 240

// App runs a scene in a desktop window. Audio behind the gate starts on
// the first click or key press.
type App struct {
	Scene     *sim.Scene
	Surface   *Surface
	Gate      *audio.GatedSink
	Running   bool
	Telemetry []float64
	dt        float64
	audioErr  error
}

// NewSurface sizes a surface for cfg's window. Build the scene with it,
// then hand both to NewApp.
func NewSurface(cfg *config.Config) *Surface {
	return &Surface{Width: int32(cfg.Display.Width), Height: int32(cfg.Display.Height)}
}

func NewApp(scene *sim.Scene, surface *Surface, gate *audio.GatedSink) *App {
	return &App{
		Scene:     scene,
		Surface:   surface,
		Gate:      gate,
		Running:   true,
		Telemetry: make([]float64, 0, telemetrySize),
		dt:        scene.Config().Physics.Dt,
	}
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Display.Width), int32(cfg.Display.Height), "maxwell · "+cfg.Variant)
	rl.SetTargetFPS(int32(cfg.Display.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(scene *sim.Scene, surface *Surface, gate *audio.GatedSink) {
	initWindow(scene.Config())
	defer rl.CloseWindow()
	NewApp(scene, surface, gate).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return
		}
		a.Draw()
	}
}

// Update handles input and reports whether the user asked to quit.
func (a *App) Update() bool {
	a.Surface.Width = int32(rl.GetScreenWidth())
	a.Surface.Height = int32(rl.GetScreenHeight())

	if rl.GetKeyPressed() != 0 || rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.permitAudio()
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Scene.Reset()
		a.Telemetry = a.Telemetry[:0]
	}
	return false
}

func (a *App) permitAudio() {
	if a.Gate == nil || a.Gate.Permitted() || a.audioErr != nil {
		return
	}
	if err := a.Gate.Permit(); err != nil {
		a.audioErr = err
		slog.Warn("audio unavailable, continuing silently", "err", err)
	}
}

// frameDt is the wall-clock frame time in ms, capped at four nominal frames.
func (a *App) frameDt() float64 {
	dt := float64(rl.GetFrameTime()) * 1000
	if dt <= 0 {
		return a.dt
	}
	return math.Min(dt, 4*a.dt)
}

func (a *App) Draw() {
	rl.BeginDrawing()

	if a.Running {
		f := a.Scene.Step(a.frameDt())
		a.Telemetry = append(a.Telemetry, f.Info.Energy)
		if len(a.Telemetry) > telemetrySize {
			a.Telemetry = a.Telemetry[1:]
		}
	} else if err := a.Surface.Draw(a.Scene.Frame()); err != nil {
		slog.Debug("paused redraw failed", "err", err)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w, h := a.Surface.Width, a.Surface.Height

	status, col := "RUNNING", ColText
	if !a.Running {
		status, col = "PAUSED", ColDim
	}
	rl.DrawText(status, w-110, 20, 16, col)

	switch {
	case a.Gate == nil:
	case a.audioErr != nil:
		rl.DrawText("AUDIO [UNAVAILABLE]", 22, 76, 14, rl.Red)
	case !a.Gate.Permitted():
		rl.DrawText("CLICK OR PRESS A KEY FOR SOUND", 22, 76, 14, ColDim)
	default:
		rl.DrawText(fmt.Sprintf("AUDIO [%d VOICES]", a.Scene.Sonifier().Active()), 22, 76, 14, ColDim)
	}

	a.DrawTelemetry(30, h-90, 400, 60)
	rl.DrawText("[SPACE] PAUSE  [R] RESEED  [Q] QUIT", w-340, h-30, 14, ColDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-24, 14, ColDim)
}

// DrawTelemetry plots the total energy history as a line strip.
func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(x) + float32(i)/float32(len(a.Telemetry))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColArm)
	rl.DrawText(fmt.Sprintf("E: %.3f", a.Telemetry[len(a.Telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}
