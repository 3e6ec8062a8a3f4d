package errors

import (
	"fmt"
	"strings"
	"testing"

	"mercator-hq/idfcheck/pkg/idf/ast"
)

func TestSuggestKeyword(t *testing.T) {
	tests := []struct {
		name    string
		unknown string
		allowed []string
		want    string
	}{
		{name: "transposed owner", unknown: "MCDA", allowed: []string{"ECAD", "MCAD", "UNOWNED"}, want: "Did you mean 'MCAD'?"},
		{name: "missing letter", unknown: "PLACD", allowed: []string{"PLACED", "UNPLACED", "MCAD", "ECAD"}, want: "Did you mean 'PLACED'?"},
		{name: "too far", unknown: "XYZW", allowed: []string{"TOP", "BOTTOM"}, want: "Valid values: TOP, BOTTOM"},
		{name: "empty value", unknown: "", allowed: []string{"MM", "THOU"}, want: "Valid values: MM, THOU"},
		{name: "no allowed values", unknown: "MM", allowed: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestKeyword(tt.unknown, tt.allowed); got != tt.want {
				t.Errorf("SuggestKeyword(%q) = %q, want %q", tt.unknown, got, tt.want)
			}
		})
	}
}

func TestSuggestSection(t *testing.T) {
	tests := []struct {
		found, expected, want string
	}{
		{".PLACMENT", "PLACEMENT", "Did you mean '.PLACEMENT'?"},
		{"", "NOTES", "Add a '.NOTES' section"},
		{".NOTES", "PLACEMENT", "Sections must appear in IDF order; expected '.PLACEMENT' here"},
	}

	for _, tt := range tests {
		if got := SuggestSection(tt.found, tt.expected); got != tt.want {
			t.Errorf("SuggestSection(%q, %q) = %q, want %q", tt.found, tt.expected, got, tt.want)
		}
	}
}

func TestSuggestMissingReference(t *testing.T) {
	defined := []string{"dip_14w", "cs13_a", "cc1210"}

	if got := SuggestMissingReference("dip_16w", defined); got != "Did you mean 'dip_14w'?" {
		t.Errorf("close name: got %q", got)
	}
	if got := SuggestMissingReference("qfp64", defined); got != "" {
		t.Errorf("unrelated name: got %q, want no suggestion", got)
	}
	if got := SuggestMissingReference("x", nil); got != "" {
		t.Errorf("nothing defined: got %q, want no suggestion", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"MCAD", "MCAD", 0},
		{"MCDA", "MCAD", 2},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := levenshteinDistance(tt.b, tt.a); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("l%d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestExtractContext(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		location ast.Location
		lines    int
		want     string
	}{
		{
			name:     "first line first column",
			src:      numbered(5),
			location: ast.Location{Line: 1, Column: 1},
			lines:    2,
			want:     "-> 1 | l1\n     | ^\n   2 | l2\n   3 | l3\n",
		},
		{
			name:     "last line",
			src:      numbered(5),
			location: ast.Location{Line: 5, Column: 3},
			lines:    2,
			want:     "   3 | l3\n   4 | l4\n-> 5 | l5\n     |   ^\n",
		},
		{
			name:     "line past end clamps to last line",
			src:      numbered(3),
			location: ast.Location{Line: 9, Column: 1},
			lines:    1,
			want:     "   2 | l2\n-> 3 | l3\n     | ^\n",
		},
		{
			name:     "two digit line numbers",
			src:      numbered(12),
			location: ast.Location{Line: 10, Column: 2},
			lines:    1,
			want:     "    9 | l9\n-> 10 | l10\n      |  ^\n   11 | l11\n",
		},
		{
			name:     "no column",
			src:      numbered(2),
			location: ast.Location{Line: 2},
			lines:    0,
			want:     "-> 2 | l2\n",
		},
		{
			name:     "crlf",
			src:      "a\r\nb\r\n",
			location: ast.Location{Line: 2, Column: 1},
			lines:    0,
			want:     "-> 2 | b\n     | ^\n",
		},
		{
			name:     "no line",
			src:      numbered(2),
			location: ast.Location{Offset: 3},
			lines:    2,
			want:     "",
		},
		{
			name:     "empty source",
			src:      "",
			location: ast.Location{Line: 1, Column: 1},
			lines:    2,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractContext(tt.src, tt.location, tt.lines); got != tt.want {
				t.Errorf("ExtractContext() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	src := numbered(6)

	err := WithContext(Newf(ErrorTypeSyntax, ast.Location{File: "b.emn", Line: 4, Column: 2}, "bad field"), src, DefaultContextLines)
	if !strings.Contains(err.Context, "-> 4 | l4") || !strings.Contains(err.Context, "   2 | l2") {
		t.Errorf("Context = %q", err.Context)
	}
	if !strings.Contains(err.Error(), "--> b.emn:4:2") {
		t.Errorf("Error() = %q, want location line", err.Error())
	}

	unlocated := WithContext(Newf(ErrorTypeIO, ast.Location{File: "b.emn"}, "missing"), src, DefaultContextLines)
	if unlocated.Context != "" {
		t.Errorf("unlocated Context = %q, want empty", unlocated.Context)
	}
}

func TestErrorList(t *testing.T) {
	list := NewErrorList()
	if list.ToError() != nil {
		t.Fatal("empty list should convert to a nil error")
	}

	list.Add(Newf(ErrorTypeReference, ast.Location{}, "missing %q", "dip_16w"))
	other := NewErrorList()
	other.Add(Newf(ErrorTypeGeometry, ast.Location{}, "loop not closed"))
	other.Add(Newf(ErrorTypeReference, ast.Location{}, "missing %q", "qfp64"))
	list.Merge(other)
	list.Merge(nil)

	if list.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", list.Count())
	}
	if n := len(list.ByType(ErrorTypeReference)); n != 2 {
		t.Errorf("ByType(reference) = %d, want 2", n)
	}
	if !list.HasErrorType(ErrorTypeGeometry) || list.HasErrorType(ErrorTypeSyntax) {
		t.Error("HasErrorType() mismatch")
	}

	err := list.ToError()
	if TypeOf(err) != ErrorTypeReference {
		t.Errorf("TypeOf() = %q, want reference", TypeOf(err))
	}
	if !IsType(err, ErrorTypeGeometry) {
		t.Error("IsType(geometry) = false for a list containing a geometry error")
	}
	if IsType(fmt.Errorf("wrapped: %w", Newf(ErrorTypeIO, ast.Location{}, "x")), ErrorTypeSyntax) {
		t.Error("IsType(syntax) = true for a wrapped io error")
	}
	if TypeOf(fmt.Errorf("plain")) != "" {
		t.Error("TypeOf() of a foreign error should be empty")
	}
}
