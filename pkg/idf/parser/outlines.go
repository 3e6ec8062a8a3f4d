package parser

import (
	"mercator-hq/idfcheck/pkg/idf/ast"
	"mercator-hq/idfcheck/pkg/idf/grammar"
)

// Field parsers shared by several sections.
var (
	owner = grammar.Keyword("owner", ast.OwnerECAD, ast.OwnerMCAD, ast.OwnerUnowned)

	boardSide = grammar.Keyword("board_side", ast.SideTop, ast.SideBottom, ast.SideBoth)

	routingLayers = grammar.Keyword("routing_layers",
		ast.LayersTop, ast.LayersBottom, ast.LayersBoth, ast.LayersInner, ast.LayersAll)

	units = grammar.Keyword("units", ast.UnitsThou, ast.UnitsMM)
)

// outlineSection wraps an outline record in its section delimiters. The
// owner is written on the keyword line; whitespace is not significant.
func outlineSection[T any](section ast.Section, build func(c *grammar.Cursor) T) grammar.Parser[T] {
	return grammar.Section(string(section), grammar.Record(build))
}

// primaryOutline parses the BOARD_OUTLINE or PANEL_OUTLINE section:
//
//	.BOARD_OUTLINE owner
//	thickness
//	points...
//	.END_BOARD_OUTLINE
func primaryOutline(section ast.Section) grammar.Parser[ast.BoardPanelOutline] {
	return outlineSection(section, func(c *grammar.Cursor) ast.BoardPanelOutline {
		return ast.BoardPanelOutline{
			Keyword:   section,
			Owner:     grammar.Take(c, owner),
			Thickness: grammar.Take(c, grammar.Number("thickness")),
			Outline:   grammar.Take(c, grammar.Loops),
		}
	})
}

var otherOutline = outlineSection(ast.SectionOtherOutline, func(c *grammar.Cursor) ast.OtherOutline {
	return ast.OtherOutline{
		Owner:            grammar.Take(c, owner),
		ID:               grammar.Take(c, grammar.String("id")),
		ExtrudeThickness: grammar.Take(c, grammar.Number("extrude_thickness")),
		BoardSide:        grammar.Take(c, boardSide),
		Outline:          grammar.Take(c, grammar.Loops),
	}
})

var routingOutline = outlineSection(ast.SectionRouteOutline, func(c *grammar.Cursor) ast.RoutingOutline {
	return ast.RoutingOutline{
		Owner:         grammar.Take(c, owner),
		RoutingLayers: grammar.Take(c, routingLayers),
		Outline:       grammar.Take(c, grammar.Loops),
	}
})

var placementOutline = outlineSection(ast.SectionPlaceOutline, func(c *grammar.Cursor) ast.PlacementOutline {
	return ast.PlacementOutline{
		Owner:         grammar.Take(c, owner),
		BoardSide:     grammar.Take(c, boardSide),
		OutlineHeight: grammar.Take(c, grammar.Number("outline_height")),
		Outline:       grammar.Take(c, grammar.Loops),
	}
})

var routingKeepout = outlineSection(ast.SectionRouteKeepout, func(c *grammar.Cursor) ast.RoutingKeepout {
	return ast.RoutingKeepout{
		Owner:         grammar.Take(c, owner),
		RoutingLayers: grammar.Take(c, routingLayers),
		Outline:       grammar.Take(c, grammar.Loops),
	}
})

var viaKeepout = outlineSection(ast.SectionViaKeepout, func(c *grammar.Cursor) ast.ViaKeepout {
	return ast.ViaKeepout{
		Owner:   grammar.Take(c, owner),
		Outline: grammar.Take(c, grammar.Loops),
	}
})

var placementKeepout = outlineSection(ast.SectionPlaceKeepout, func(c *grammar.Cursor) ast.PlacementKeepout {
	return ast.PlacementKeepout{
		Owner:         grammar.Take(c, owner),
		BoardSide:     grammar.Take(c, boardSide),
		KeepoutHeight: grammar.Take(c, grammar.Number("keepout_height")),
		Outline:       grammar.Take(c, grammar.Loops),
	}
})

var placementGroupArea = outlineSection(ast.SectionPlaceRegion, func(c *grammar.Cursor) ast.PlacementGroupArea {
	return ast.PlacementGroupArea{
		Owner:     grammar.Take(c, owner),
		BoardSide: grammar.Take(c, boardSide),
		GroupName: grammar.Take(c, grammar.String("group_name")),
		Outline:   grammar.Take(c, grammar.Loops),
	}
})
