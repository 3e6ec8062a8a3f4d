package validator

import (
	"fmt"

	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// closureChecker walks a board and records every outline loop that does not
// end where it started. A loop made of a centre point and a 360 degree arc
// point is a full circle and counts as closed.
type closureChecker struct {
	ast.BaseVisitor
	file   string
	errors *idfErrors.ErrorList
}

func (c *closureChecker) VisitOutline(o ast.Outline) error {
	for i, loop := range ast.SplitLoops(o.Points()) {
		if loopClosed(loop) {
			continue
		}
		c.errors.Add(&idfErrors.Error{
			Type:     idfErrors.ErrorTypeGeometry,
			Message:  fmt.Sprintf("%s loop %d (%s, %d points) is not closed", o.Section(), i+1, loop[0].LoopLabel, len(loop)),
			Location: ast.Location{File: c.file},
			Section:  string(o.Section()),
		})
	}
	return nil
}

func loopClosed(loop []ast.Point) bool {
	if len(loop) < 2 {
		return false
	}
	last := loop[len(loop)-1]
	return last.IsFullCircle() || loop[0].SamePosition(last)
}

// CheckClosure reports every unclosed outline loop on board as a geometry
// error. It returns nil if all loops are closed.
func CheckClosure(board *ast.BoardPanel) error {
	c := &closureChecker{file: board.SourceFile, errors: idfErrors.NewErrorList()}
	if err := ast.Walk(board, c); err != nil {
		return err
	}
	return c.errors.ToError()
}

// CheckLibraryClosure reports every unclosed component outline loop in
// library as a geometry error.
func CheckLibraryClosure(library *ast.Library) error {
	errors := idfErrors.NewErrorList()
	check := func(section ast.Section, name string, points []ast.Point) {
		for i, loop := range ast.SplitLoops(points) {
			if loopClosed(loop) {
				continue
			}
			errors.Add(&idfErrors.Error{
				Type:     idfErrors.ErrorTypeGeometry,
				Message:  fmt.Sprintf("component %q loop %d is not closed", name, i+1),
				Location: ast.Location{File: library.SourceFile},
				Section:  string(section),
				Subject:  name,
			})
		}
	}

	for _, c := range library.ElectricalComponents {
		check(ast.SectionElectrical, c.GeometryName, c.Outline)
	}
	for _, c := range library.MechanicalComponents {
		check(ast.SectionMechanical, c.GeometryName, c.Outline)
	}
	return errors.ToError()
}
