// Package viz hosts an engine in the terminal using Bubble Tea.
//
//   - [Model]: live view that ticks the engine every frame through a clamped,
//     scaled clock and draws bodies with their trails
//   - [Picker]: preset selection before a live run
//   - [Canvas]: braille pixel canvas
//   - [Orbit]: camera circling a target, projecting with LookAt/Perspective
//
// # Key Bindings
//
//	Space   - Pause/Resume simulation
//	R       - Reset to the seeded state
//	Q, Esc  - Quit
//	Arrows  - Orbit the camera
//	+/-     - Zoom
//	C       - Refit camera to the bodies
//	T       - Cycle color themes
package viz
