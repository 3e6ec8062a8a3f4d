package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
	"mercator-hq/idfcheck/pkg/idf/grammar"
)

// File extensions used by IDF 3.0 documents.
const (
	BoardExtension   = ".emn"
	LibraryExtension = ".emp"
)

// DefaultMaxFileSize is the default limit on document size.
const DefaultMaxFileSize int64 = 64 * 1024 * 1024

// Parser parses IDF 3.0 board, panel and library documents into ASTs.
// A Parser is immutable after configuration and safe for concurrent use.
type Parser struct {
	// Configuration
	maxFileSize      int64 // Maximum file size in bytes (default: 64MB)
	strictProperties bool  // Reject duplicate PROP names instead of keeping the last
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize:      DefaultMaxFileSize,
		strictProperties: false,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithStrictProperties makes a repeated property name within one electrical
// component a syntax error.
func (p *Parser) WithStrictProperties(strict bool) *Parser {
	p.strictProperties = strict
	return p
}

// ParseBoard parses the text of a board or panel document. The name is used
// in error locations and recorded as the document's source.
func (p *Parser) ParseBoard(src, name string) (*ast.BoardPanel, error) {
	if err := p.checkSize(int64(len(src)), name); err != nil {
		return nil, err
	}

	board, err := assembleBoard(grammar.NewInput(name, src))
	if err != nil {
		return nil, grammar.Resolve(err, name, src)
	}
	return board, nil
}

// ParseLibrary parses the text of a library document.
func (p *Parser) ParseLibrary(src, name string) (*ast.Library, error) {
	if err := p.checkSize(int64(len(src)), name); err != nil {
		return nil, err
	}

	lib, err := assembleLibrary(grammar.NewInput(name, src), p.strictProperties)
	if err != nil {
		return nil, grammar.Resolve(err, name, src)
	}
	return lib, nil
}

// ParseBoardFile reads and parses a board or panel file (.emn).
func (p *Parser) ParseBoardFile(path string) (*ast.BoardPanel, error) {
	src, err := p.readFile(path, BoardExtension)
	if err != nil {
		return nil, err
	}
	return p.ParseBoard(src, path)
}

// ParseLibraryFile reads and parses a library file (.emp).
func (p *Parser) ParseLibraryFile(path string) (*ast.Library, error) {
	src, err := p.readFile(path, LibraryExtension)
	if err != nil {
		return nil, err
	}
	return p.ParseLibrary(src, path)
}

// readFile checks the extension and size of path and returns its contents.
func (p *Parser) readFile(path, ext string) (string, error) {
	if got := strings.ToLower(filepath.Ext(path)); got != ext {
		return "", &idfErrors.Error{
			Type:       idfErrors.ErrorTypeIO,
			Message:    fmt.Sprintf("Unexpected file extension %q, want %q", filepath.Ext(path), ext),
			Location:   ast.Location{File: path},
			Suggestion: "Board and panel files use .emn, library files use .emp",
		}
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return "", &idfErrors.Error{
			Type:     idfErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	if err := p.checkSize(fileInfo.Size(), path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &idfErrors.Error{
			Type:     idfErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	return string(data), nil
}

func (p *Parser) checkSize(size int64, name string) error {
	if p.maxFileSize > 0 && size > p.maxFileSize {
		return &idfErrors.Error{
			Type:     idfErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", size, p.maxFileSize),
			Location: ast.Location{File: name},
		}
	}
	return nil
}

// KindOf reports whether path names a board/panel or a library document,
// judging by its extension.
func KindOf(path string) (DocumentKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case BoardExtension:
		return KindBoard, true
	case LibraryExtension:
		return KindLibrary, true
	}
	return "", false
}

// DocumentKind distinguishes the two top-level IDF document forms.
type DocumentKind string

const (
	KindBoard   DocumentKind = "board"
	KindLibrary DocumentKind = "library"
)
