// Package viz draws the demon in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Canvas]: braille pixel grid with per-cell color
//   - [CanvasSurface]: a sim.Surface that scales frames onto a Canvas
//   - [Model]: the live view with an info panel and energy chart
//   - [Picker]: variant menu that hands off to a Model
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reseed particles
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Any key also enables audio when the scene has a gated sink.
package viz
