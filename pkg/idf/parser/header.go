package parser

import (
	"math"

	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
	"mercator-hq/idfcheck/pkg/idf/grammar"
)

// supportedVersion is the only IDF version accepted.
const supportedVersion = 3.0

// headerRecord is the first header line shared by every document kind:
//
//	FILE_TYPE version "system id" date file_version
type headerRecord struct {
	fileType    ast.FileType
	version     float32
	systemID    string
	date        string
	fileVersion uint32
}

func parseHeaderRecord(allowed ...ast.FileType) grammar.Parser[headerRecord] {
	fileType := grammar.Keyword("file_type", allowed...)

	return func(in grammar.Input) (headerRecord, grammar.Input, error) {
		c := grammar.NewCursor(in)
		h := headerRecord{
			fileType: grammar.Take(c, fileType),
			version:  grammar.Take(c, parseVersion),
			systemID: grammar.Take(c, grammar.String("system_id")),
			date:     grammar.Take(c, grammar.String("date")),

			fileVersion: grammar.Take(c, grammar.Integer("file_version")),
		}
		rest, err := c.Done()
		return h, rest, err
	}
}

// parseVersion accepts any numeric spelling of 3.0 ("3", "3.0", "3.00").
func parseVersion(in grammar.Input) (float32, grammar.Input, error) {
	v, rest, err := grammar.Number("version")(in)
	if err != nil {
		return 0, in, err
	}
	if math.Abs(float64(v)-supportedVersion) > 1e-6 {
		err := idfErrors.Newf(idfErrors.ErrorTypeSyntax, in.SkipSpace().Location(),
			"version: only IDF 3.0 is supported, got %g", v)
		err.Suggestion = "Export the document as IDF 3.0"
		return 0, in, err
	}
	return v, rest, nil
}

// boardHeaderBody parses the body of a board or panel header:
//
//	BOARD_FILE|PANEL_FILE version "system id" date file_version
//	board_name units
var boardHeaderBody grammar.Parser[ast.BoardPanelHeader] = func(in grammar.Input) (ast.BoardPanelHeader, grammar.Input, error) {
	c := grammar.NewCursor(in)
	rec := grammar.Take(c, parseHeaderRecord(ast.FileTypeBoard, ast.FileTypePanel))
	name := grammar.Take(c, grammar.String("board_name"))
	u := grammar.Take(c, units)
	rest, err := c.Done()
	if err != nil {
		return ast.BoardPanelHeader{}, in, err
	}

	return ast.BoardPanelHeader{
		FileType:    rec.fileType,
		Version:     rec.version,
		SystemID:    rec.systemID,
		Date:        rec.date,
		FileVersion: rec.fileVersion,
		BoardName:   name,
		Units:       u,
	}, rest, nil
}

// libraryHeaderBody parses the body of a library header. Declaring any
// file type other than LIBRARY_FILE is an error.
var libraryHeaderBody grammar.Parser[ast.LibraryHeader] = func(in grammar.Input) (ast.LibraryHeader, grammar.Input, error) {
	rec, rest, err := parseHeaderRecord(ast.FileTypeLibrary)(in)
	if err != nil {
		return ast.LibraryHeader{}, in, err
	}

	return ast.LibraryHeader{
		Version:     rec.version,
		SystemID:    rec.systemID,
		Date:        rec.date,
		FileVersion: rec.fileVersion,
	}, rest, nil
}

var (
	boardHeader   = grammar.One("HEADER section", grammar.Section(string(ast.SectionHeader), boardHeaderBody))
	libraryHeader = grammar.One("HEADER section", grammar.Section(string(ast.SectionHeader), libraryHeaderBody))
)
