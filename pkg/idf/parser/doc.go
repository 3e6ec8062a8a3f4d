// Package parser assembles IDF 3.0 documents from the grammar primitives.
//
// Two document forms are supported: board/panel documents (.emn), whose
// header declares BOARD_FILE or PANEL_FILE, and library documents (.emp),
// whose header declares LIBRARY_FILE.
//
// # Basic Usage
//
// Parse a board file:
//
//	p := parser.NewParser()
//	board, err := p.ParseBoardFile("boards/main.emn")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Placements:", len(board.ComponentPlacements))
//
// Parse from memory:
//
//	lib, err := p.ParseLibrary(text, "memory://library.emp")
//
// # Configuration
//
//	p := parser.NewParser().
//	    WithMaxFileSize(8 * 1024 * 1024). // 8MB limit
//	    WithStrictProperties(true)        // duplicate PROP names are errors
//
// # Error Handling
//
// Parsing stops at the first failure; no partial document is returned. The
// error is an *errors.Error carrying the type (syntax, unterminated,
// multiplicity, trailing_data or io), the file, line and column, and a
// source excerpt:
//
//	board, err := p.ParseBoard(text, "main.emn")
//	if errors.IsType(err, errors.ErrorTypeMultiplicity) {
//	    // a required section is missing or an optional one is repeated
//	}
package parser
