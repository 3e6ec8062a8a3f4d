// Package idf provides parsing and cross-checking of IDF 3.0 documents, the
// Intermediate Data Format exchanged between ECAD and MCAD tools.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - grammar: lexical primitives, the section framework and multiplicity combinators
// - ast: immutable data model for boards, panels and libraries
// - parser: board/panel and library assemblers plus file entry points
// - validator: cross-document reference checks and outline closure lint
// - assembly: a library, its boards and an optional panel checked together
// - errors: typed errors with location, source excerpt and suggestions
//
// # Basic Usage
//
// Parse the documents of an assembly and check that they agree:
//
//	a, err := idf.LoadAssembly("parts.emp", "panel.emn", "main.emn")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := a.Check(); err != nil {
//	    log.Fatal(err)
//	}
//
// Errors are *errors.Error values; use errors.TypeOf to branch on the
// failure kind (syntax, unterminated, multiplicity, trailing_data,
// reference, geometry, io).
//
// # Document Structure
//
// A board (or panel) file is a header followed by sections in a fixed order:
//
//	.HEADER
//	BOARD_FILE 3.0 "Sample File Generator" 10/22/96.16:02:44 1
//	sample_board THOU
//	.END_HEADER
//	.BOARD_OUTLINE ECAD
//	62.0
//	0 5.5 -120.0 0.0
//	...
//	.END_BOARD_OUTLINE
//	.DRILLED_HOLES
//	...
//	.END_DRILLED_HOLES
//	.PLACEMENT
//	cs13_a pn-cap C1
//	4000.0 1000.0 100.0 0.0 TOP PLACED
//	.END_PLACEMENT
//
// A library file is a header followed by any mix of .ELECTRICAL and
// .MECHANICAL component sections.
package idf
