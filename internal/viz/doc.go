// Package viz renders electron clouds in the terminal.
//
//   - [Viewer]: Bubble Tea application with an orbital picker; implements [cloud.Presenter]
//   - [Canvas]: braille canvas with per-cell color
//   - [Camera]: rotation, zoom and perspective projection of point clouds
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	n/p    - Next/previous orbital
//	Arrows - Rotate the camera
//	+/-    - Zoom
//	>/<    - Change the point count (resamples)
//	c/x    - Raise/lower the probability cutoff (no resample)
//	M      - Toggle points/density rendering
//	Space  - Toggle auto-rotation
//	S      - Save an SVG snapshot
//	?      - Show help overlay
package viz
