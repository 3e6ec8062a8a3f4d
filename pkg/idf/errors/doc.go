// Package errors provides rich error types for IDF parsing and validation.
//
// The error types include source location, context, and suggestions to help
// users quickly identify and fix problems in board, panel and library files.
//
// # Error Types
//
// ErrorTypeSyntax: an expected literal or field could not be matched
//
// ErrorTypeUnterminated: a section body parsed but its .END_ keyword is missing
//
// ErrorTypeMultiplicity: a required section is absent, a one-or-more list is
// empty, or a zero-or-one section repeats
//
// ErrorTypeTrailingData: input remains after the last section
//
// ErrorTypeReference: a placement or panel board reference does not resolve
//
// ErrorTypeGeometry: an outline loop does not close
//
// ErrorTypeIO: file I/O errors
//
// # Basic Usage
//
// Branch on the category of a returned error:
//
//	board, err := parser.NewParser().ParseBoard(text, "board.emn")
//	if errors.IsType(err, errors.ErrorTypeMultiplicity) {
//	    // ...
//	}
//
// Accumulate multiple errors:
//
//	errList := errors.NewErrorList()
//	errList.Add(errors.Newf(errors.ErrorTypeReference, location, "Package %q not found", name))
//
//	if errList.HasErrors() {
//	    return errList.ToError()
//	}
//
// # Error Format
//
// Errors are formatted with location, context, and suggestions:
//
//	[syntax] owner: expected one of ECAD, MCAD, UNOWNED, got "MCDA"
//	  --> board.emn:5:16
//	  |
//	   4 | .END_HEADER
//	-> 5 | .BOARD_OUTLINE MCDA
//	     |                ^
//	   6 | 62.0
//	  |
//	  = suggestion: Did you mean 'MCAD'?
package errors
