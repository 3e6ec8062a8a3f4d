package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"mercator-hq/idfcheck/pkg/idf/ast"
)

// ErrorType categorizes the type of error encountered during parsing or validation.
type ErrorType string

const (
	ErrorTypeSyntax       ErrorType = "syntax"        // Expected literal or field not matched
	ErrorTypeUnterminated ErrorType = "unterminated"  // Section body parsed but end keyword missing
	ErrorTypeMultiplicity ErrorType = "multiplicity"  // Section or record count outside its bounds
	ErrorTypeTrailingData ErrorType = "trailing_data" // Input left over after the last section
	ErrorTypeReference    ErrorType = "reference"     // Cross-document reference not resolved
	ErrorTypeGeometry     ErrorType = "geometry"      // Outline loop not closed
	ErrorTypeIO           ErrorType = "io"            // File I/O error
)

// Error represents a rich error with location, context, and suggestions.
// It provides detailed information for locating faults in IDF documents.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Location   ast.Location // Source location (file, offset, line, column)
	Section    string       // Section keyword being parsed, if any
	Subject    string       // Component, package or board name the error is about
	Context    string       // Surrounding lines of source
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	// Error type and message
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	// Location
	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}

	// Context (surrounding source)
	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
		sb.WriteString("\n  |")
	}

	// Suggestion
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Is reports whether target is an *Error of the same type, so callers can
// match categories with errors.Is(err, &Error{Type: ErrorTypeReference}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// Newf creates an error of the given type at the given location.
func Newf(errType ErrorType, location ast.Location, format string, args ...any) *Error {
	return &Error{
		Type:     errType,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// TypeOf returns the ErrorType of the first *Error or *ErrorList in err's
// chain, or "" if there is none.
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	var el *ErrorList
	if stderrors.As(err, &el) && el.HasErrors() {
		return el.Errors[0].Type
	}
	return ""
}

// IsType returns true if err is, or wraps, an error of the given type.
func IsType(err error, errType ErrorType) bool {
	var el *ErrorList
	if stderrors.As(err, &el) {
		return el.HasErrorType(errType)
	}
	return TypeOf(err) == errType
}

// ErrorList represents a collection of errors encountered during validation.
// It allows accumulating multiple errors instead of failing on the first error.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// Merge appends every error of other to the list.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.Errors = append(el.Errors, other.Errors...)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	if el.Count() == 1 {
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the error list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
