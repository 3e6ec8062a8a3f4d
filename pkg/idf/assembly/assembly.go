package assembly

import (
	stderrors "errors"
	"fmt"

	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
	"mercator-hq/idfcheck/pkg/idf/validator"
)

// Reference check names, used as metric labels.
const (
	CheckLibrary = "library"
	CheckPanel   = "panel"
)

// Assembly is one library, one or more boards and an optional panel that
// are checked against each other.
type Assembly struct {
	Library *ast.Library
	Panel   *ast.BoardPanel // nil when the assembly has no panel
	Boards  []*ast.BoardPanel
}

// New groups parsed documents into an assembly. A library and at least one
// board are required.
func New(library *ast.Library, boards []*ast.BoardPanel, panel *ast.BoardPanel) (*Assembly, error) {
	if library == nil {
		return nil, &idfErrors.Error{
			Type:    idfErrors.ErrorTypeMultiplicity,
			Message: "an assembly requires exactly one library",
		}
	}
	if len(boards) == 0 {
		return nil, &idfErrors.Error{
			Type:       idfErrors.ErrorTypeMultiplicity,
			Message:    "an assembly requires at least one board",
			Suggestion: "Pass one or more .emn board files",
		}
	}
	for i, b := range boards {
		if b == nil {
			return nil, fmt.Errorf("board %d is nil", i)
		}
	}

	return &Assembly{Library: library, Panel: panel, Boards: boards}, nil
}

// Check verifies every board against the library, in board order, and then
// the panel against the boards. It stops at the first reference error.
func (a *Assembly) Check() error {
	return a.check(nil)
}

// Lint reports every missing reference and, when closure is set, every
// outline loop that does not end where it starts.
func (a *Assembly) Lint(closure bool) error {
	return a.lint(closure, nil)
}

// observer receives the outcome of each reference check as it runs.
type observer func(check string, missing int)

func (a *Assembly) check(observe observer) error {
	if observe == nil {
		observe = func(string, int) {}
	}

	for _, board := range a.Boards {
		if err := validator.LibraryReferences(a.Library, board); err != nil {
			observe(CheckLibrary, 1)
			return err
		}
		observe(CheckLibrary, 0)
	}

	if a.Panel != nil {
		if err := validator.PanelReferences(a.Panel, a.Boards); err != nil {
			observe(CheckPanel, 1)
			return err
		}
		observe(CheckPanel, 0)
	}

	return nil
}

func (a *Assembly) lint(closure bool, observe observer) error {
	if observe == nil {
		observe = func(string, int) {}
	}

	errs := validator.CollectLibraryReferences(a.Library, a.Boards)
	observe(CheckLibrary, errs.Count())

	if a.Panel != nil {
		panelErrs := validator.CollectPanelReferences(a.Panel, a.Boards)
		observe(CheckPanel, panelErrs.Count())
		errs.Merge(panelErrs)
	}

	if closure {
		errs.Merge(a.checkClosure())
	}

	return errs.ToError()
}

// checkClosure runs the loop closure lint over the library, the boards and
// the panel.
func (a *Assembly) checkClosure() *idfErrors.ErrorList {
	errs := idfErrors.NewErrorList()
	merge := func(err error) {
		var list *idfErrors.ErrorList
		var single *idfErrors.Error
		switch {
		case err == nil:
		case stderrors.As(err, &list):
			errs.Merge(list)
		case stderrors.As(err, &single):
			errs.Add(single)
		}
	}

	merge(validator.CheckLibraryClosure(a.Library))
	for _, b := range a.Boards {
		merge(validator.CheckClosure(b))
	}
	if a.Panel != nil {
		merge(validator.CheckClosure(a.Panel))
	}

	return errs
}

// Placements returns the number of placement records across the boards and
// the panel.
func (a *Assembly) Placements() int {
	n := 0
	for _, b := range a.Boards {
		n += len(b.ComponentPlacements)
	}
	if a.Panel != nil {
		n += len(a.Panel.ComponentPlacements)
	}
	return n
}

// Components returns the number of component definitions in the library.
func (a *Assembly) Components() int {
	return len(a.Library.ElectricalComponents) + len(a.Library.MechanicalComponents)
}
