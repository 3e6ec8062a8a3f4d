package grammar

import (
	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// LoopLabel parses the loop label of a point record. Only 0
// (counter-clockwise) and 1 (clockwise) are valid.
func LoopLabel(in Input) (ast.LoopLabel, Input, error) {
	v, rest, err := Integer("loop_label")(in)
	if err != nil {
		return 0, in, err
	}
	if v > uint32(ast.LoopClockwise) {
		return 0, in, failf(idfErrors.ErrorTypeSyntax, in.SkipSpace(),
			"loop_label: expected 0 or 1, got %d", v)
	}
	return ast.LoopLabel(v), rest, nil
}

// Point parses one point record:
//
//	loop_label x y angle
var Point = Record(func(c *Cursor) ast.Point {
	return ast.Point{
		LoopLabel: Take(c, LoopLabel),
		X:         Take(c, Number("x")),
		Y:         Take(c, Number("y")),
		Angle:     Take(c, Number("angle")),
	}
})

// Loops parses the point list of an outline: one or more point records.
// Loop closure is not checked here.
func Loops(in Input) ([]ast.Point, Input, error) {
	return Many1("point", Point)(in)
}
