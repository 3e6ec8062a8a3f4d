package idf

import (
	"mercator-hq/idfcheck/pkg/idf/assembly"
	"mercator-hq/idfcheck/pkg/idf/ast"
	"mercator-hq/idfcheck/pkg/idf/parser"
)

// ParseBoard parses a board or panel file with the default parser.
func ParseBoard(path string) (*ast.BoardPanel, error) {
	return parser.NewParser().ParseBoardFile(path)
}

// ParseLibrary parses a library file with the default parser.
func ParseLibrary(path string) (*ast.Library, error) {
	return parser.NewParser().ParseLibraryFile(path)
}

// LoadAssembly parses a library, an optional panel (empty path for none) and
// one or more boards. The first parse failure is returned in that order.
func LoadAssembly(library, panel string, boards ...string) (*assembly.Assembly, error) {
	p := parser.NewParser()

	lib, err := p.ParseLibraryFile(library)
	if err != nil {
		return nil, err
	}

	var pnl *ast.BoardPanel
	if panel != "" {
		if pnl, err = p.ParseBoardFile(panel); err != nil {
			return nil, err
		}
	}

	parsed := make([]*ast.BoardPanel, 0, len(boards))
	for _, path := range boards {
		b, err := p.ParseBoardFile(path)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, b)
	}

	return assembly.New(lib, parsed, pnl)
}

// Check loads an assembly and runs the stop-at-first-failure reference check.
func Check(library, panel string, boards ...string) error {
	a, err := LoadAssembly(library, panel, boards...)
	if err != nil {
		return err
	}
	return a.Check()
}

// Lint loads an assembly and reports every unresolved reference, plus every
// open outline loop when closure is set, as an *errors.ErrorList.
func Lint(closure bool, library, panel string, boards ...string) error {
	a, err := LoadAssembly(library, panel, boards...)
	if err != nil {
		return err
	}
	return a.Lint(closure)
}
