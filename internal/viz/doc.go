// Package viz draws walk trajectories in the terminal.
//
// The package has two surfaces over the same asciigraph chart:
//
//   - [Model]: Bubble Tea playback screen driven by a [playback.Session]
//   - [LiveRenderer]: headless observer that redraws as frames arrive
//
// Observers run under the controller lock, so the interactive screen never
// receives frames directly. A [FrameSink] keeps the latest one and the
// model polls it on its own tick.
//
// # Key Bindings
//
//	Space - Play/Pause
//	R     - Reset to step 0
//	N     - Draw a new path
//	D     - Next distribution
//	M     - Toggle sum / running average
//	↑/↓   - Double / halve the steps
//	+/-   - Faster / slower
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
