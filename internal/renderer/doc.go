// Package renderer draws a document and its selection on a terminal screen.
//
// The renderer owns a Viewport that tracks which buffer lines are on
// screen and implements the scrolling hooks command handlers use to reveal
// a position. Drawing is done on a tcell.Screen, so tests can use a
// tcell SimulationScreen.
//
// Each frame has three parts:
//
//   - Gutter: right-aligned line numbers, with the lines of the selection
//     highlighted.
//   - Text: line content laid out by grapheme cluster, with tabs expanded
//     and the selected span drawn in the selection colour.
//   - Status line: document path, resolution mode, selection and the last
//     command message.
package renderer
