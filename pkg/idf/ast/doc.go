// Package ast provides the in-memory representation of IDF 3.0 documents.
//
// A parse produces one of two immutable document values:
//
// BoardPanel: a board (BOARD_FILE) or panel (PANEL_FILE) document with its
// primary outline, secondary outlines, keepouts, placement areas, drilled
// holes, notes and component placements.
//
// Library: a LIBRARY_FILE document with electrical and mechanical component
// footprints.
//
// # Outlines
//
// The eight outline, keepout and area records are plain structs that all
// implement the Outline interface, so geometry checks can iterate over
// BoardPanel.Outlines() without caring which section a loop came from:
//
//	for _, o := range board.Outlines() {
//	    for _, loop := range ast.SplitLoops(o.Points()) {
//	        fmt.Println(o.Section(), len(loop))
//	    }
//	}
//
// # Points and loops
//
// A Point carries its loop label (0 for the outer counter-clockwise loop,
// 1 for a clockwise cutout), coordinates and sweep angle. An angle of 0 is a
// straight segment, 360 a full circle, anything else an arc.
//
// # Locations
//
// Location records file, byte offset, line and column of a position in the
// source text. Parse errors carry one.
package ast
