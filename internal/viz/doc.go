// Package viz draws the deck in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 sub-pixels per cell
//   - [Surface]: maps grid world units onto a canvas
//   - [RenderGrid]: the deformed lattice with the mass drawn in the accent color
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	←/→ Space - Previous / next slide
//	T         - Cycle color themes
//	M         - Toggle mesh lines on the spacetime slide
//	F         - Toggle the fall-off chart
//	I Enter   - Focus the question input on the Q&A slide (Esc releases it)
//	Q Ctrl+C  - Quit
package viz
