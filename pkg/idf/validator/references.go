package validator

import (
	"fmt"
	"sort"

	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// LibraryReferences checks that every package placed on board, other than
// sub-board instances, is defined by a geometry in library. It returns a
// reference error naming the first undefined package in placement order.
func LibraryReferences(library *ast.Library, board *ast.BoardPanel) error {
	names := library.GeometryNames()
	for _, pkg := range board.PackageReferences() {
		if _, ok := names[pkg]; !ok {
			return missingPackage(pkg, library, board)
		}
	}
	return nil
}

// PanelReferences checks that every BOARD placement on panel names one of
// boards. It returns a reference error naming the first missing board.
func PanelReferences(panel *ast.BoardPanel, boards []*ast.BoardPanel) error {
	names := boardNames(boards)
	for _, name := range panel.BoardReferences() {
		if _, ok := names[name]; !ok {
			return missingBoard(name, panel, boards)
		}
	}
	return nil
}

// CollectReferences runs both reference checks and reports every missing
// package and board instead of stopping at the first. panel may be nil.
func CollectReferences(library *ast.Library, panel *ast.BoardPanel, boards []*ast.BoardPanel) *idfErrors.ErrorList {
	errors := CollectLibraryReferences(library, boards)
	if panel != nil {
		errors.Merge(CollectPanelReferences(panel, boards))
	}
	return errors
}

// CollectLibraryReferences reports every package placed on boards that the
// library does not define.
func CollectLibraryReferences(library *ast.Library, boards []*ast.BoardPanel) *idfErrors.ErrorList {
	errors := idfErrors.NewErrorList()

	names := library.GeometryNames()
	for _, board := range boards {
		for _, pkg := range board.PackageReferences() {
			if _, ok := names[pkg]; !ok {
				errors.Add(missingPackage(pkg, library, board))
			}
		}
	}

	return errors
}

// CollectPanelReferences reports every board placed on panel that is not
// among boards.
func CollectPanelReferences(panel *ast.BoardPanel, boards []*ast.BoardPanel) *idfErrors.ErrorList {
	errors := idfErrors.NewErrorList()

	defined := boardNames(boards)
	for _, name := range panel.BoardReferences() {
		if _, ok := defined[name]; !ok {
			errors.Add(missingBoard(name, panel, boards))
		}
	}

	return errors
}

func boardNames(boards []*ast.BoardPanel) map[string]struct{} {
	names := make(map[string]struct{}, len(boards))
	for _, b := range boards {
		names[b.Name()] = struct{}{}
	}
	return names
}

func missingPackage(pkg string, library *ast.Library, board *ast.BoardPanel) *idfErrors.Error {
	defined := make([]string, 0, len(library.ElectricalComponents)+len(library.MechanicalComponents))
	for name := range library.GeometryNames() {
		defined = append(defined, name)
	}
	sort.Strings(defined)

	return &idfErrors.Error{
		Type:       idfErrors.ErrorTypeReference,
		Message:    fmt.Sprintf("package %q placed on board %q is not defined in the library", pkg, board.Name()),
		Location:   ast.Location{File: board.SourceFile},
		Section:    string(ast.SectionPlacement),
		Subject:    pkg,
		Suggestion: idfErrors.SuggestMissingReference(pkg, defined),
	}
}

func missingBoard(name string, panel *ast.BoardPanel, boards []*ast.BoardPanel) *idfErrors.Error {
	defined := make([]string, len(boards))
	for i, b := range boards {
		defined[i] = b.Name()
	}

	return &idfErrors.Error{
		Type:       idfErrors.ErrorTypeReference,
		Message:    fmt.Sprintf("board %q placed on panel %q was not supplied", name, panel.Name()),
		Location:   ast.Location{File: panel.SourceFile},
		Section:    string(ast.SectionPlacement),
		Subject:    name,
		Suggestion: idfErrors.SuggestMissingReference(name, defined),
	}
}
