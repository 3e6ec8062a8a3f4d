package grammar

import (
	stderrors "errors"
	"fmt"

	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// failf creates an error positioned at in.
func failf(errType idfErrors.ErrorType, in Input, format string, args ...any) *idfErrors.Error {
	return idfErrors.Newf(errType, in.Location(), format, args...)
}

// describe renders a token for error messages.
func describe(tok string, ok bool) string {
	if !ok {
		return "end of input"
	}
	if len(tok) > 40 {
		tok = tok[:40] + "..."
	}
	return fmt.Sprintf("%q", tok)
}

// failedAt returns the offset an error was raised at, or -1 if err does not
// carry a location.
func failedAt(err error) int {
	var e *idfErrors.Error
	if stderrors.As(err, &e) {
		return e.Location.Offset
	}
	return -1
}

// isNoMatch returns true if err was raised at the first token of in, i.e.
// the parser rejected the input without consuming anything meaningful.
// Repetitions treat that as their terminating condition.
func isNoMatch(err error, in Input) bool {
	return failedAt(err) == in.SkipSpace().Offset()
}

// Resolve fills in line, column and a source excerpt for an error returned
// by a parser run over src. Errors of other types are returned unchanged.
func Resolve(err error, file, src string) error {
	var e *idfErrors.Error
	if !stderrors.As(err, &e) {
		return err
	}
	if !e.Location.IsValid() {
		e.Location = ast.LocationOf(file, src, e.Location.Offset)
	}
	idfErrors.WithContext(e, src, idfErrors.DefaultContextLines)
	return err
}
