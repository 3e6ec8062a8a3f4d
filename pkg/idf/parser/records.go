package parser

import (
	"mercator-hq/idfcheck/pkg/idf/ast"
	"mercator-hq/idfcheck/pkg/idf/grammar"
)

// hole parses one drilled hole record:
//
//	diameter x y PTH|NPTH associated_part hole_type owner
var hole = grammar.Record(func(c *grammar.Cursor) ast.Hole {
	return ast.Hole{
		Diameter:       grammar.Take(c, grammar.Number("diameter")),
		X:              grammar.Take(c, grammar.Number("x")),
		Y:              grammar.Take(c, grammar.Number("y")),
		PlatingStyle:   grammar.Take(c, grammar.Keyword("plating_style", ast.PlatingPTH, ast.PlatingNPTH)),
		AssociatedPart: grammar.Take(c, grammar.String("associated_part")),
		HoleType:       grammar.Take(c, grammar.Keyword("hole_type", ast.HolePin, ast.HoleVia, ast.HoleMTG, ast.HoleTool)),
		Owner:          grammar.Take(c, owner),
	}
})

// drilledHoles is the required DRILLED_HOLES section with at least one hole.
var drilledHoles = grammar.One("DRILLED_HOLES section",
	grammar.Section(string(ast.SectionDrilledHoles), grammar.Many1("drilled hole", hole)))

// note parses one note record:
//
//	x y text_height test_string_physical_length "text"
var note = grammar.Record(func(c *grammar.Cursor) ast.Note {
	return ast.Note{
		X:                        grammar.Take(c, grammar.Number("x")),
		Y:                        grammar.Take(c, grammar.Number("y")),
		TextHeight:               grammar.Take(c, grammar.Number("text_height")),
		TestStringPhysicalLength: grammar.Take(c, grammar.Number("test_string_physical_length")),
		Text:                     grammar.Take(c, grammar.String("text")),
	}
})

// notes is the optional NOTES section. A missing section yields an empty
// list; a repeated one is a multiplicity error.
var notes = grammar.Map(
	grammar.ZeroOrOne("NOTES section", grammar.Section(string(ast.SectionNotes), grammar.Many(note))),
	func(n []ast.Note) []ast.Note {
		if n == nil {
			return []ast.Note{}
		}
		return n
	})

var placementStatus = grammar.Keyword("placement_status",
	ast.StatusPlaced, ast.StatusUnplaced, ast.StatusECAD, ast.StatusMCAD)

// placement parses one component placement record, written over two lines:
//
//	package_name part_number reference_designator
//	x y mounting_offset rotation TOP|BOTTOM status
var placement = grammar.Record(func(c *grammar.Cursor) ast.ComponentPlacement {
	return ast.ComponentPlacement{
		PackageName:         grammar.Take(c, grammar.String("package_name")),
		PartNumber:          grammar.Take(c, grammar.String("part_number")),
		ReferenceDesignator: grammar.Take(c, grammar.String("reference_designator")),
		X:                   grammar.Take(c, grammar.Number("x")),
		Y:                   grammar.Take(c, grammar.Number("y")),
		MountingOffset:      grammar.Take(c, grammar.Number("mounting_offset")),
		RotationAngle:       grammar.Take(c, grammar.Number("rotation")),
		BoardSide:           grammar.Take(c, grammar.Keyword("board_side", ast.SideTop, ast.SideBottom)),
		PlacementStatus:     grammar.Take(c, placementStatus),
	}
})

// placements is the required PLACEMENT section with zero or more records.
var placements = grammar.One("PLACEMENT section",
	grammar.Section(string(ast.SectionPlacement), grammar.Many(placement)))
