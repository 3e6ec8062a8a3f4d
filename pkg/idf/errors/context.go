package errors

import (
	"fmt"
	"strings"

	"mercator-hq/idfcheck/pkg/idf/ast"
)

// ExtractContext extracts the lines of src surrounding the given location
// for error context display. It returns a formatted string showing the error
// location with line numbers and a caret under the offending column.
func ExtractContext(src string, location ast.Location, contextLines int) string {
	if !location.IsValid() || src == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	// Calculate context range
	errorLine := location.Line - 1 // Convert to 0-based index
	if errorLine >= len(lines) {
		errorLine = len(lines) - 1
	}
	startLine := errorLine - contextLines
	endLine := errorLine + contextLines

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	// Build context string
	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		lineNumStr := fmt.Sprintf("%*d", maxLineNumWidth, i+1)
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %s | %s\n", prefix, lineNumStr, lines[i]))

		// Add column indicator for error line
		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// DefaultContextLines is how many lines before and after the error line
// parse errors show.
const DefaultContextLines = 2

// WithContext fills in the error's context from src. Errors without a line
// are returned unchanged.
func WithContext(err *Error, src string, contextLines int) *Error {
	if err.Location.IsValid() {
		err.Context = ExtractContext(src, err.Location, contextLines)
	}
	return err
}
