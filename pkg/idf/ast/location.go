package ast

import "fmt"

// Location represents a position in the source text of an IDF document.
// It enables precise error reporting with file, line, column and byte offset.
type Location struct {
	File   string // Path or display name of the document
	Offset int    // Byte offset into the source (0-based)
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column"
func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "<input>"
	}
	if l.Line == 0 {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}

// IsValid returns true if the location has line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// LocationOf computes the line and column of a byte offset in src.
// Offsets past the end of src are clamped to the end.
func LocationOf(file, src string, offset int) Location {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}

	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return Location{
		File:   file,
		Offset: offset,
		Line:   line,
		Column: col,
	}
}
