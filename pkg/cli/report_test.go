package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mercator-hq/idfcheck/pkg/history"
	"mercator-hq/idfcheck/pkg/idf/assembly"
	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
	"mercator-hq/idfcheck/pkg/idf/parser"
)

const fixtures = "../idf/parser/testdata/"

func TestParseReport(t *testing.T) {
	p := parser.NewParser()
	board, err := p.ParseBoardFile(fixtures + "panel.emn")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	r := NewBoardReport("panel.emn", board, nil, false)
	if r.Kind != "panel" || r.Name != "sample_panel" || !r.Valid {
		t.Errorf("unexpected report %+v", r)
	}

	text := r.Text()
	for _, want := range []string{`panel "sample_panel"`, "DRILLED_HOLES", "PLACEMENT"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
}

func TestParseReport_Invalid(t *testing.T) {
	_, err := parser.NewParser().ParseLibrary(".HEADER\nBOARD_FILE 3.0 x 1 1\n.END_HEADER\n", "bad.emp")
	if err == nil {
		t.Fatal("expected parse error")
	}

	r := NewLibraryReport("bad.emp", nil, err, true)
	if r.Valid || len(r.Problems) == 0 {
		t.Fatalf("expected problems, got %+v", r)
	}
	if r.Problems[0].Type != string(idfErrors.ErrorTypeSyntax) {
		t.Errorf("problem type = %q", r.Problems[0].Type)
	}
	if !strings.Contains(r.Text(), "invalid library") {
		t.Errorf("unexpected text %q", r.Text())
	}
}

func TestParseReport_FullDocument(t *testing.T) {
	lib, err := parser.NewParser().ParseLibraryFile(fixtures + "library.emp")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON).FormatTo(&buf, NewLibraryReport("library.emp", lib, nil, true)); err != nil {
		t.Fatalf("format: %v", err)
	}

	var decoded struct {
		Document struct {
			Electrical []struct {
				GeometryName string `json:"geometry_name"`
			} `json:"electrical_components"`
		} `json:"document"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Document.Electrical) != 2 {
		t.Errorf("expected 2 electrical components in output, got %d", len(decoded.Document.Electrical))
	}
}

func TestCheckReport(t *testing.T) {
	refErr := &idfErrors.Error{
		Type:       idfErrors.ErrorTypeReference,
		Message:    `package "so8" placed on board "main" is not defined in the library`,
		Location:   ast.Location{File: "main.emn"},
		Subject:    "so8",
		Suggestion: "Did you mean 'so8w'?",
	}

	tests := []struct {
		name     string
		result   *assembly.Result
		passed   bool
		contains string
	}{
		{
			name: "passed",
			result: &assembly.Result{
				Sources:    assembly.Sources{Library: "l.emp", Panel: "p.emn", Boards: []string{"b.emn"}},
				Placements: 6,
				Components: 3,
				Duration:   2 * time.Millisecond,
			},
			passed:   true,
			contains: "3 documents, 6 placements, 3 library components",
		},
		{
			name:     "failed",
			result:   &assembly.Result{Err: refErr},
			contains: "Did you mean 'so8w'?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCheckReport(tt.result)
			if r.Passed != tt.passed {
				t.Errorf("Passed = %v, want %v", r.Passed, tt.passed)
			}
			if !strings.Contains(r.Text(), tt.contains) {
				t.Errorf("text missing %q:\n%s", tt.contains, r.Text())
			}
		})
	}
}

func TestHistoryReport(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	r := &HistoryReport{
		Total: 5,
		Runs: []*history.Run{{
			ID:         "run-1",
			Trigger:    "check",
			StartedAt:  start,
			FinishedAt: start.Add(3 * time.Millisecond),
			Boards:     []string{"a.emn", "b.emn"},
			Outcome:    history.OutcomeFail,
			ErrorType:  "reference",
			Subject:    "so8",
		}},
	}

	text := r.Text()
	for _, want := range []string{"TRIGGER", "fail", "reference (so8)", "showing 1 of 5 runs"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}

	if got := (&HistoryReport{}).Text(); got != "no check runs recorded\n" {
		t.Errorf("empty report = %q", got)
	}
}
