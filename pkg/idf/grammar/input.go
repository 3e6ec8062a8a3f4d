package grammar

import (
	"mercator-hq/idfcheck/pkg/idf/ast"
)

// Input is an immutable view of the unconsumed part of a document.
// Parsers never modify an Input; they return a new one positioned after
// whatever they consumed, so backtracking is just keeping the old value.
type Input struct {
	file string
	src  string
	pos  int
}

// NewInput creates an Input positioned at the start of src. The file name
// is only used for error locations.
func NewInput(file, src string) Input {
	return Input{file: file, src: src}
}

// File returns the display name of the document.
func (in Input) File() string {
	return in.file
}

// Source returns the complete document text.
func (in Input) Source() string {
	return in.src
}

// Offset returns the byte offset of the next unconsumed character.
func (in Input) Offset() int {
	return in.pos
}

// Rest returns the unconsumed text.
func (in Input) Rest() string {
	return in.src[in.pos:]
}

// AtEnd returns true if no input remains.
func (in Input) AtEnd() bool {
	return in.pos >= len(in.src)
}

// Location returns the location of the next unconsumed character.
// Only the offset is filled in; Resolve computes line and column once a
// parse has failed.
func (in Input) Location() ast.Location {
	return ast.Location{File: in.file, Offset: in.pos}
}

// SkipSpace returns the input positioned after any run of whitespace.
func (in Input) SkipSpace() Input {
	for in.pos < len(in.src) && isSpace(in.src[in.pos]) {
		in.pos++
	}
	return in
}

// advance returns the input moved forward by n bytes.
func (in Input) advance(n int) Input {
	in.pos += n
	if in.pos > len(in.src) {
		in.pos = len(in.src)
	}
	return in
}

// peekToken returns the run of non-whitespace characters at the current
// position and the input after it. The input must already be positioned
// on a non-space character.
func (in Input) peekToken() (string, Input, bool) {
	if in.AtEnd() {
		return "", in, false
	}
	end := in.pos
	for end < len(in.src) && !isSpace(in.src[end]) {
		end++
	}
	tok := in.src[in.pos:end]
	in.pos = end
	return tok, in, true
}

// atBoundary returns true if the input is at the end or on whitespace.
func (in Input) atBoundary() bool {
	return in.AtEnd() || isSpace(in.src[in.pos])
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
