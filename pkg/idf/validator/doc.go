// Package validator checks parsed IDF documents against each other.
//
// Two reference checks are pure functions over already-parsed documents and
// stop at the first problem:
//
//   - LibraryReferences: every package placed on a board (excluding BOARD
//     placements) must be defined as a geometry in the library.
//   - PanelReferences: every BOARD placement on a panel must name one of the
//     supplied boards.
//
// Both are order-insensitive with respect to how the library and the boards
// were supplied, and report a reference error naming the missing package or
// board.
//
// The collecting variants back the lint pass: CollectLibraryReferences and
// CollectPanelReferences return every unresolved name as an ErrorList, and
// CheckClosure / CheckLibraryClosure report geometry errors for outline loops
// that do not end where they start:
//
//	errs := validator.CollectReferences(library, panel, boards)
//	for _, e := range errs.Errors {
//	    fmt.Println(e.Error())
//	}
package validator
