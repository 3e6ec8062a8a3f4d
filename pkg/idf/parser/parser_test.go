package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

const minimalBoard = ".HEADER\nBOARD_FILE 3.0 \"Gen\" 1/1/00.00:00:00 1\nsample THOU\n.END_HEADER\n" +
	".BOARD_OUTLINE MCAD\n10.0\n0 0.0 0.0 0.0\n0 1.0 1.0 0.0\n.END_BOARD_OUTLINE\n" +
	".DRILLED_HOLES\n10.0 5.0 5.0 PTH BOARD VIA ECAD\n.END_DRILLED_HOLES\n" +
	".PLACEMENT\npkg pn C1\n0.0 0.0 0.0 0.0 TOP PLACED\n.END_PLACEMENT"

func TestParser_ParseBoard_Minimal(t *testing.T) {
	board, err := NewParser().ParseBoard(minimalBoard, "minimal.emn")
	if err != nil {
		t.Fatalf("ParseBoard() failed: %v", err)
	}

	if len(board.ComponentPlacements) != 1 {
		t.Errorf("len(ComponentPlacements) = %d, want 1", len(board.ComponentPlacements))
	}
	if len(board.DrilledHoles) != 1 {
		t.Errorf("len(DrilledHoles) = %d, want 1", len(board.DrilledHoles))
	}
	if board.Notes == nil || len(board.Notes) != 0 {
		t.Errorf("Notes = %v, want empty", board.Notes)
	}

	if board.Header.BoardName != "sample" {
		t.Errorf("BoardName = %q, want %q", board.Header.BoardName, "sample")
	}
	if board.Header.SystemID != "Gen" {
		t.Errorf("SystemID = %q, want %q", board.Header.SystemID, "Gen")
	}
	if board.Outline.Keyword != ast.SectionBoardOutline || board.Outline.Owner != ast.OwnerMCAD {
		t.Errorf("Outline = %+v", board.Outline)
	}
	if board.Outline.Thickness != 10 {
		t.Errorf("Thickness = %v, want 10", board.Outline.Thickness)
	}

	want := ast.ComponentPlacement{
		PackageName:         "pkg",
		PartNumber:          "pn",
		ReferenceDesignator: "C1",
		BoardSide:           ast.SideTop,
		PlacementStatus:     ast.StatusPlaced,
	}
	if board.ComponentPlacements[0] != want {
		t.Errorf("placement = %+v, want %+v", board.ComponentPlacements[0], want)
	}
}

func TestParser_ParseBoardFile_Sample(t *testing.T) {
	board, err := NewParser().ParseBoardFile("testdata/board.emn")
	if err != nil {
		t.Fatalf("ParseBoardFile() failed: %v", err)
	}

	counts := map[string][2]int{
		"OtherOutlines":       {len(board.OtherOutlines), 1},
		"RoutingOutlines":     {len(board.RoutingOutlines), 1},
		"PlacementOutlines":   {len(board.PlacementOutlines), 1},
		"RoutingKeepouts":     {len(board.RoutingKeepouts), 1},
		"ViaKeepouts":         {len(board.ViaKeepouts), 1},
		"PlacementKeepouts":   {len(board.PlacementKeepouts), 1},
		"PlacementGroupAreas": {len(board.PlacementGroupAreas), 1},
		"DrilledHoles":        {len(board.DrilledHoles), 4},
		"Notes":               {len(board.Notes), 2},
		"ComponentPlacements": {len(board.ComponentPlacements), 4},
		"Outline points":      {len(board.Outline.Outline), 7},
	}
	for name, c := range counts {
		if c[0] != c[1] {
			t.Errorf("len(%s) = %d, want %d", name, c[0], c[1])
		}
	}

	other := board.OtherOutlines[0]
	if other.ID != "my_outline" || other.ExtrudeThickness != 62 || other.BoardSide != ast.SideBottom {
		t.Errorf("OtherOutline = %+v", other)
	}
	if board.RoutingOutlines[0].RoutingLayers != ast.LayersAll {
		t.Errorf("RoutingLayers = %q, want ALL", board.RoutingOutlines[0].RoutingLayers)
	}
	if board.PlacementGroupAreas[0].GroupName != "the_best_group" {
		t.Errorf("GroupName = %q", board.PlacementGroupAreas[0].GroupName)
	}
	if board.Notes[0].Text != "This component rotated 14 degrees" {
		t.Errorf("Note text = %q", board.Notes[0].Text)
	}

	holes := board.DrilledHoles
	if holes[3].PlatingStyle != ast.PlatingNPTH || holes[3].HoleType != ast.HoleTool || holes[3].Owner != ast.OwnerMCAD {
		t.Errorf("hole[3] = %+v", holes[3])
	}

	if got := board.PackageReferences(); strings.Join(got, ",") != "cs13_a,cc1210,dip_14w" {
		t.Errorf("PackageReferences() = %v", got)
	}
	if board.SourceFile != "testdata/board.emn" {
		t.Errorf("SourceFile = %q", board.SourceFile)
	}
}

func TestParser_ParseBoardFile_Panel(t *testing.T) {
	panel, err := NewParser().ParseBoardFile("testdata/panel.emn")
	if err != nil {
		t.Fatalf("ParseBoardFile() failed: %v", err)
	}
	if !panel.Header.IsPanel() {
		t.Error("IsPanel() = false, want true")
	}
	if panel.Outline.Keyword != ast.SectionPanelOutline {
		t.Errorf("Keyword = %q, want PANEL_OUTLINE", panel.Outline.Keyword)
	}
	if got := panel.BoardReferences(); len(got) != 1 || got[0] != "sample_board" {
		t.Errorf("BoardReferences() = %v", got)
	}
}

func TestParser_ParseBoard_Errors(t *testing.T) {
	replace := func(old, new string) string {
		return strings.Replace(minimalBoard, old, new, 1)
	}

	tests := []struct {
		name     string
		input    string
		wantType idfErrors.ErrorType
		wantMsg  string
	}{
		{
			name:     "zero holes",
			input:    replace("10.0 5.0 5.0 PTH BOARD VIA ECAD\n", ""),
			wantType: idfErrors.ErrorTypeMultiplicity,
			wantMsg:  "drilled hole",
		},
		{
			name:     "missing holes section",
			input:    replace(".DRILLED_HOLES\n10.0 5.0 5.0 PTH BOARD VIA ECAD\n.END_DRILLED_HOLES\n", ""),
			wantType: idfErrors.ErrorTypeMultiplicity,
			wantMsg:  "DRILLED_HOLES",
		},
		{
			name:     "duplicate notes",
			input:    replace(".PLACEMENT", ".NOTES\n.END_NOTES\n.NOTES\n.END_NOTES\n.PLACEMENT"),
			wantType: idfErrors.ErrorTypeMultiplicity,
			wantMsg:  "NOTES",
		},
		{
			name:     "notes after placement",
			input:    replace(".PLACEMENT", ".NOTES\n.END_NOTES\n.PLACEMENT") + "\n.NOTES\n.END_NOTES",
			wantType: idfErrors.ErrorTypeTrailingData,
		},
		{
			name:     "trailing data",
			input:    minimalBoard + "\nextra",
			wantType: idfErrors.ErrorTypeTrailingData,
		},
		{
			name:     "missing placement",
			input:    replace(".PLACEMENT\npkg pn C1\n0.0 0.0 0.0 0.0 TOP PLACED\n.END_PLACEMENT", ""),
			wantType: idfErrors.ErrorTypeMultiplicity,
			wantMsg:  "PLACEMENT",
		},
		{
			name:     "panel outline in board file",
			input:    strings.ReplaceAll(minimalBoard, "BOARD_OUTLINE", "PANEL_OUTLINE"),
			wantType: idfErrors.ErrorTypeMultiplicity,
			wantMsg:  "BOARD_OUTLINE",
		},
		{
			name:     "bad owner",
			input:    replace(".BOARD_OUTLINE MCAD", ".BOARD_OUTLINE MCDA"),
			wantType: idfErrors.ErrorTypeSyntax,
			wantMsg:  "owner",
		},
		{
			name:     "unterminated outline",
			input:    replace(".END_BOARD_OUTLINE", ""),
			wantType: idfErrors.ErrorTypeUnterminated,
		},
		{
			name:     "library header",
			input:    replace("BOARD_FILE", "LIBRARY_FILE"),
			wantType: idfErrors.ErrorTypeSyntax,
			wantMsg:  "file_type",
		},
		{
			name:     "unsupported version",
			input:    replace("3.0", "2.0"),
			wantType: idfErrors.ErrorTypeSyntax,
			wantMsg:  "version",
		},
		{
			name:     "bad loop label",
			input:    replace("0 1.0 1.0 0.0", "0 1.0 1.0 0.0\n3 2.0 2.0 0.0"),
			wantType: idfErrors.ErrorTypeUnterminated,
		},
		{
			name:     "bad hole field",
			input:    replace("PTH BOARD VIA", "PTH BOARD WIRE"),
			wantType: idfErrors.ErrorTypeSyntax,
			wantMsg:  "hole_type",
		},
		{
			name:     "bad placement side",
			input:    replace("TOP PLACED", "BOTH PLACED"),
			wantType: idfErrors.ErrorTypeSyntax,
			wantMsg:  "board_side",
		},
		{
			name:     "empty document",
			input:    "",
			wantType: idfErrors.ErrorTypeMultiplicity,
			wantMsg:  "HEADER",
		},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := p.ParseBoard(tt.input, "test.emn")
			if err == nil {
				t.Fatalf("ParseBoard() succeeded, want %s error", tt.wantType)
			}
			if board != nil {
				t.Error("ParseBoard() returned a partial document")
			}
			if got := idfErrors.TypeOf(err); got != tt.wantType {
				t.Errorf("error type = %q, want %q (%v)", got, tt.wantType, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParser_ParseBoard_ErrorLocation(t *testing.T) {
	input := strings.Replace(minimalBoard, "PTH BOARD VIA", "PTH BOARD WIRE", 1)
	_, err := NewParser().ParseBoard(input, "test.emn")

	e, ok := err.(*idfErrors.Error)
	if !ok {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if e.Location.File != "test.emn" || e.Location.Line != 11 || e.Location.Column != 24 {
		t.Errorf("Location = %s, want test.emn:11:24", e.Location)
	}
	if e.Section != "DRILLED_HOLES" {
		t.Errorf("Section = %q, want DRILLED_HOLES", e.Section)
	}
	if e.Context == "" {
		t.Error("expected source context")
	}
}

func TestParser_ParseBoard_Whitespace(t *testing.T) {
	// Fields may be split or joined across lines freely.
	input := strings.NewReplacer("\n", "  \n\t", " ", "\n").Replace(minimalBoard)
	input = strings.Replace(input, "\"Gen\"", "Gen", 1)
	board, err := NewParser().ParseBoard(input, "ws.emn")
	if err != nil {
		t.Fatalf("ParseBoard() failed: %v", err)
	}
	if len(board.ComponentPlacements) != 1 {
		t.Errorf("len(ComponentPlacements) = %d, want 1", len(board.ComponentPlacements))
	}
}

func TestParser_ParseBoard_Deterministic(t *testing.T) {
	src, err := os.ReadFile("testdata/board.emn")
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser()
	first, err := p.ParseBoard(string(src), "a")
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.ParseBoard(string(src), "a")
	if err != nil {
		t.Fatal(err)
	}
	if first.Summary()["PLACEMENT"] != second.Summary()["PLACEMENT"] ||
		len(first.DrilledHoles) != len(second.DrilledHoles) {
		t.Error("parsing the same input twice gave different results")
	}
}

func TestParser_ParseLibraryFile(t *testing.T) {
	lib, err := NewParser().ParseLibraryFile("testdata/library.emp")
	if err != nil {
		t.Fatalf("ParseLibraryFile() failed: %v", err)
	}

	if len(lib.ElectricalComponents) != 2 {
		t.Fatalf("len(ElectricalComponents) = %d, want 2", len(lib.ElectricalComponents))
	}
	if len(lib.MechanicalComponents) != 1 {
		t.Fatalf("len(MechanicalComponents) = %d, want 1", len(lib.MechanicalComponents))
	}

	first := lib.ElectricalComponents[0]
	if first.GeometryName != "cs13_a" || first.PartNumber != "pn-cap" || first.Units != ast.UnitsThou || first.Height != 150 {
		t.Errorf("first electrical = %+v", first)
	}
	if first.Properties["CAPACITANCE"] != 100 || first.Properties["TOLERANCE"] != 5 {
		t.Errorf("Properties = %v", first.Properties)
	}
	if got := lib.ElectricalComponents[1].PartNumber; got != "Cap 1210 ceramic" {
		t.Errorf("quoted PartNumber = %q", got)
	}
	if !lib.HasGeometry("dip_14w") {
		t.Error("HasGeometry(dip_14w) = false")
	}
}

func TestParser_ParseLibrary_Properties(t *testing.T) {
	const lib = ".HEADER\nLIBRARY_FILE 3.0 \"Gen\" 1/1/00 1\n.END_HEADER\n" +
		".ELECTRICAL\ng pn MM 1.0\n0 0 0 0\nPROP A 1.0\nPROP A 2.0\n.END_ELECTRICAL\n"

	got, err := NewParser().ParseLibrary(lib, "lib.emp")
	if err != nil {
		t.Fatalf("ParseLibrary() failed: %v", err)
	}
	if v := got.ElectricalComponents[0].Properties["A"]; v != 2 {
		t.Errorf("Properties[A] = %v, want 2 (last write wins)", v)
	}

	_, err = NewParser().WithStrictProperties(true).ParseLibrary(lib, "lib.emp")
	if !idfErrors.IsType(err, idfErrors.ErrorTypeSyntax) || !strings.Contains(err.Error(), "duplicate property") {
		t.Errorf("strict error = %v, want duplicate property syntax error", err)
	}
}

func TestParser_ParseLibrary_Errors(t *testing.T) {
	const header = ".HEADER\nLIBRARY_FILE 3.0 \"Gen\" 1/1/00 1\n.END_HEADER\n"

	tests := []struct {
		name     string
		input    string
		wantType idfErrors.ErrorType
	}{
		{
			name:     "board header",
			input:    ".HEADER\nBOARD_FILE 3.0 \"Gen\" 1/1/00 1\nb THOU\n.END_HEADER\n",
			wantType: idfErrors.ErrorTypeSyntax,
		},
		{
			name:     "no points",
			input:    header + ".MECHANICAL\ng pn MM 1.0\n.END_MECHANICAL\n",
			wantType: idfErrors.ErrorTypeMultiplicity,
		},
		{
			name:     "properties in mechanical",
			input:    header + ".MECHANICAL\ng pn MM 1.0\n0 0 0 0\nPROP A 1\n.END_MECHANICAL\n",
			wantType: idfErrors.ErrorTypeUnterminated,
		},
		{
			name:     "unknown section",
			input:    header + ".THERMAL\n.END_THERMAL\n",
			wantType: idfErrors.ErrorTypeTrailingData,
		},
		{
			name:     "bad units",
			input:    header + ".ELECTRICAL\ng pn INCH 1.0\n0 0 0 0\n.END_ELECTRICAL\n",
			wantType: idfErrors.ErrorTypeSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseLibrary(tt.input, "lib.emp")
			if got := idfErrors.TypeOf(err); got != tt.wantType {
				t.Errorf("error type = %q, want %q (%v)", got, tt.wantType, err)
			}
		})
	}
}

func TestParser_ParseLibrary_Empty(t *testing.T) {
	lib, err := NewParser().ParseLibrary(".HEADER\nLIBRARY_FILE 3 \"Gen\" d 1\n.END_HEADER\n", "lib.emp")
	if err != nil {
		t.Fatalf("ParseLibrary() failed: %v", err)
	}
	if len(lib.ElectricalComponents)+len(lib.MechanicalComponents) != 0 {
		t.Errorf("expected no components, got %+v", lib)
	}
}

func TestParser_FileErrors(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.emn")
	if err := os.WriteFile(big, []byte(minimalBoard), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		parse func() error
	}{
		{"missing file", func() error {
			_, err := NewParser().ParseBoardFile(filepath.Join(dir, "nope.emn"))
			return err
		}},
		{"wrong extension", func() error {
			_, err := NewParser().ParseLibraryFile(big)
			return err
		}},
		{"too large", func() error {
			_, err := NewParser().WithMaxFileSize(16).ParseBoardFile(big)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.parse(); !idfErrors.IsType(err, idfErrors.ErrorTypeIO) {
				t.Errorf("error = %v, want io error", err)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := map[string]DocumentKind{
		"a/board.emn": KindBoard,
		"LIB.EMP":     KindLibrary,
	}
	for path, want := range tests {
		if got, ok := KindOf(path); !ok || got != want {
			t.Errorf("KindOf(%q) = %q, %v", path, got, ok)
		}
	}
	if _, ok := KindOf("notes.txt"); ok {
		t.Error("KindOf(notes.txt) ok = true")
	}
}
