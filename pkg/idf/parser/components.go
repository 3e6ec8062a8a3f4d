package parser

import (
	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
	"mercator-hq/idfcheck/pkg/idf/grammar"
)

type property struct {
	at    grammar.Input
	name  string
	value float32
}

var propertyRecord = grammar.Record(func(c *grammar.Cursor) property {
	grammar.Take(c, grammar.Literal("PROP"))
	return property{
		name:  grammar.Take(c, grammar.String("property_name")),
		value: grammar.Take(c, grammar.Number("property_value")),
	}
})

// propertyAt records where a property starts so that duplicates can be
// reported at the second occurrence.
func propertyAt(in grammar.Input) (property, grammar.Input, error) {
	p, rest, err := propertyRecord(in)
	p.at = in.SkipSpace()
	return p, rest, err
}

// properties parses zero or more "PROP <NAME> <value>" records into a map.
// A later duplicate name overwrites the earlier value unless strict is set,
// in which case it is a syntax error.
func properties(strict bool) grammar.Parser[ast.Properties] {
	many := grammar.Many(propertyAt)

	return func(in grammar.Input) (ast.Properties, grammar.Input, error) {
		records, rest, err := many(in)
		if err != nil {
			return nil, in, err
		}

		props := make(ast.Properties, len(records))
		for _, r := range records {
			if _, dup := props[r.name]; dup && strict {
				err := idfErrors.Newf(idfErrors.ErrorTypeSyntax, r.at.Location(),
					"duplicate property %q", r.name)
				err.Suggestion = "Remove the repeated PROP record or disable strict properties"
				return nil, in, err
			}
			props[r.name] = r.value
		}
		return props, rest, nil
	}
}

// electricalComponent parses an ELECTRICAL section:
//
//	.ELECTRICAL
//	geometry_name part_number units height
//	points...
//	PROP name value...
//	.END_ELECTRICAL
func electricalComponent(strict bool) grammar.Parser[ast.ElectricalComponent] {
	props := properties(strict)

	return grammar.Section(string(ast.SectionElectrical), grammar.Record(func(c *grammar.Cursor) ast.ElectricalComponent {
		return ast.ElectricalComponent{
			GeometryName: grammar.Take(c, grammar.String("geometry_name")),
			PartNumber:   grammar.Take(c, grammar.String("part_number")),
			Units:        grammar.Take(c, units),
			Height:       grammar.Take(c, grammar.Number("height")),
			Outline:      grammar.Take(c, grammar.Loops),
			Properties:   grammar.Take(c, props),
		}
	}))
}

// mechanicalComponent parses a MECHANICAL section, which is an electrical
// section without properties.
var mechanicalComponent = grammar.Section(string(ast.SectionMechanical), grammar.Record(func(c *grammar.Cursor) ast.MechanicalComponent {
	return ast.MechanicalComponent{
		GeometryName: grammar.Take(c, grammar.String("geometry_name")),
		PartNumber:   grammar.Take(c, grammar.String("part_number")),
		Units:        grammar.Take(c, units),
		Height:       grammar.Take(c, grammar.Number("height")),
		Outline:      grammar.Take(c, grammar.Loops),
	}
}))

// component parses either kind of component section.
func component(strict bool) grammar.Parser[ast.Component] {
	return grammar.Alt(
		[]string{"." + string(ast.SectionElectrical), "." + string(ast.SectionMechanical)},
		grammar.Map(electricalComponent(strict), func(e ast.ElectricalComponent) ast.Component {
			return ast.Component{Electrical: &e}
		}),
		grammar.Map(mechanicalComponent, func(m ast.MechanicalComponent) ast.Component {
			return ast.Component{Mechanical: &m}
		}),
	)
}
