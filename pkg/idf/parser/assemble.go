package parser

import (
	"mercator-hq/idfcheck/pkg/idf/ast"
	"mercator-hq/idfcheck/pkg/idf/grammar"
)

// assembleBoard parses a complete board or panel document. Sections must
// appear in IDF order; the primary outline keyword follows the file type
// declared in the header.
func assembleBoard(in grammar.Input) (*ast.BoardPanel, error) {
	c := grammar.NewCursor(in)
	header := grammar.Take(c, boardHeader)
	if err := c.Err(); err != nil {
		return nil, err
	}

	primary := ast.Section(header.FileType.OutlineKeyword())
	board := &ast.BoardPanel{
		Header:              header,
		Outline:             grammar.Take(c, grammar.One(string(primary)+" section", primaryOutline(primary))),
		OtherOutlines:       grammar.Take(c, grammar.Many(otherOutline)),
		RoutingOutlines:     grammar.Take(c, grammar.Many(routingOutline)),
		PlacementOutlines:   grammar.Take(c, grammar.Many(placementOutline)),
		RoutingKeepouts:     grammar.Take(c, grammar.Many(routingKeepout)),
		ViaKeepouts:         grammar.Take(c, grammar.Many(viaKeepout)),
		PlacementKeepouts:   grammar.Take(c, grammar.Many(placementKeepout)),
		PlacementGroupAreas: grammar.Take(c, grammar.Many(placementGroupArea)),
		DrilledHoles:        grammar.Take(c, drilledHoles),
		Notes:               grammar.Take(c, notes),
		ComponentPlacements: grammar.Take(c, placements),
		SourceFile:          in.File(),
	}
	grammar.Take(c, grammar.End)

	if _, err := c.Done(); err != nil {
		return nil, err
	}
	return board, nil
}

// assembleLibrary parses a complete library document. Electrical and
// mechanical sections are read in document order, in any interleaving.
func assembleLibrary(in grammar.Input, strict bool) (*ast.Library, error) {
	c := grammar.NewCursor(in)
	header := grammar.Take(c, libraryHeader)
	components := grammar.Take(c, grammar.Many(component(strict)))
	grammar.Take(c, grammar.End)

	if _, err := c.Done(); err != nil {
		return nil, err
	}

	lib := ast.NewLibrary(header, components)
	lib.SourceFile = in.File()
	return lib, nil
}
