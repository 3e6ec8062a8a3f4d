package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"mercator-hq/idfcheck/pkg/history"
	"mercator-hq/idfcheck/pkg/idf/assembly"
	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// Problem is one error in a command result.
type Problem struct {
	Type       string `json:"type" yaml:"type"`
	Message    string `json:"message" yaml:"message"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column     int    `json:"column,omitempty" yaml:"column,omitempty"`
	Section    string `json:"section,omitempty" yaml:"section,omitempty"`
	Subject    string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`

	text string
}

// NewProblems flattens err into problems.
func NewProblems(err error) []Problem {
	errs := (&assembly.Result{Err: err}).Errors()
	problems := make([]Problem, len(errs))
	for i, e := range errs {
		problems[i] = Problem{
			Type:       string(e.Type),
			Message:    e.Message,
			File:       e.Location.File,
			Line:       e.Location.Line,
			Column:     e.Location.Column,
			Section:    e.Section,
			Subject:    e.Subject,
			Suggestion: e.Suggestion,
			text:       e.Error(),
		}
	}
	return problems
}

// ParseReport is the result of parsing a single document.
type ParseReport struct {
	Path     string      `json:"path" yaml:"path"`
	Kind     string      `json:"kind" yaml:"kind"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Valid    bool        `json:"valid" yaml:"valid"`
	Summary  ast.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Problems []Problem   `json:"problems,omitempty" yaml:"problems,omitempty"`
	Document any         `json:"document,omitempty" yaml:"document,omitempty"`
}

// NewBoardReport describes a parsed board or panel. When full is set the
// whole document is included in structured output.
func NewBoardReport(path string, board *ast.BoardPanel, err error, full bool) *ParseReport {
	r := &ParseReport{Path: path, Kind: "board", Valid: err == nil, Problems: NewProblems(err)}
	if board != nil {
		r.Name = board.Name()
		if board.Header.IsPanel() {
			r.Kind = "panel"
		}
		r.Summary = board.Summary()
		if full {
			r.Document = board
		}
	}
	return r
}

// NewLibraryReport describes a parsed library.
func NewLibraryReport(path string, library *ast.Library, err error, full bool) *ParseReport {
	r := &ParseReport{Path: path, Kind: "library", Valid: err == nil, Problems: NewProblems(err)}
	if library != nil {
		r.Summary = library.Summary()
		if full {
			r.Document = library
		}
	}
	return r
}

// Text renders the report for a terminal.
func (r *ParseReport) Text() string {
	var sb strings.Builder

	if !r.Valid {
		fmt.Fprintf(&sb, "✗ %s: invalid %s\n", r.Path, r.Kind)
		writeProblems(&sb, r.Problems)
		return sb.String()
	}

	if r.Name != "" {
		fmt.Fprintf(&sb, "✓ %s: %s %q\n", r.Path, r.Kind, r.Name)
	} else {
		fmt.Fprintf(&sb, "✓ %s: %s\n", r.Path, r.Kind)
	}
	writeSummary(&sb, r.Summary)
	return sb.String()
}

// CheckReport is the result of a check or lint run.
type CheckReport struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	Mode       string           `json:"mode" yaml:"mode"`
	Passed     bool             `json:"passed" yaml:"passed"`
	Sources    assembly.Sources `json:"sources" yaml:"sources"`
	Placements int              `json:"placements" yaml:"placements"`
	Components int              `json:"components" yaml:"components"`
	DurationMS float64          `json:"duration_ms" yaml:"duration_ms"`
	Problems   []Problem        `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// NewCheckReport converts an assembly result.
func NewCheckReport(result *assembly.Result) *CheckReport {
	return &CheckReport{
		RunID:      result.RunID,
		Mode:       string(result.Mode),
		Passed:     result.Passed(),
		Sources:    result.Sources,
		Placements: result.Placements,
		Components: result.Components,
		DurationMS: float64(result.Duration) / float64(time.Millisecond),
		Problems:   NewProblems(result.Err),
	}
}

// Text renders the report for a terminal.
func (r *CheckReport) Text() string {
	var sb strings.Builder

	docs := len(r.Sources.Boards) + 1
	if r.Sources.Panel != "" {
		docs++
	}

	if r.Passed {
		fmt.Fprintf(&sb, "✓ assembly valid: %d documents, %d placements, %d library components (%.1fms)\n",
			docs, r.Placements, r.Components, r.DurationMS)
		return sb.String()
	}

	noun := "problem"
	if len(r.Problems) != 1 {
		noun = "problems"
	}
	fmt.Fprintf(&sb, "✗ assembly invalid: %d %s\n", len(r.Problems), noun)
	writeProblems(&sb, r.Problems)
	return sb.String()
}

// HistoryReport lists stored check runs.
type HistoryReport struct {
	Total int64          `json:"total" yaml:"total"`
	Runs  []*history.Run `json:"runs" yaml:"runs"`
}

// Text renders the runs as a table.
func (r *HistoryReport) Text() string {
	if len(r.Runs) == 0 {
		return "no check runs recorded\n"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tTRIGGER\tOUTCOME\tBOARDS\tDURATION\tERROR")
	for _, run := range r.Runs {
		errText := run.ErrorType
		if run.Subject != "" {
			errText = fmt.Sprintf("%s (%s)", run.ErrorType, run.Subject)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.Trigger,
			run.Outcome,
			len(run.Boards),
			run.Duration().Round(time.Microsecond),
			errText,
		)
	}
	_ = tw.Flush()
	fmt.Fprintf(&sb, "\nshowing %d of %d runs\n", len(r.Runs), r.Total)
	return sb.String()
}

// PruneReport is the result of a history prune.
type PruneReport struct {
	Deleted   int64 `json:"deleted" yaml:"deleted"`
	Remaining int64 `json:"remaining" yaml:"remaining"`
}

// Text renders the report for a terminal.
func (r *PruneReport) Text() string {
	return fmt.Sprintf("pruned %d runs, %d remaining\n", r.Deleted, r.Remaining)
}

func writeProblems(sb *strings.Builder, problems []Problem) {
	for _, p := range problems {
		text := p.text
		if text == "" {
			text = (&idfErrors.Error{Type: idfErrors.ErrorType(p.Type), Message: p.Message, Suggestion: p.Suggestion}).Error()
		}
		sb.WriteString("\n")
		sb.WriteString(text)
		sb.WriteString("\n")
	}
}

func writeSummary(sb *strings.Builder, summary ast.Summary) {
	sections := make([]string, 0, len(summary))
	for section := range summary {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	tw := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)
	for _, section := range sections {
		fmt.Fprintf(tw, "  %s\t%d\n", section, summary[section])
	}
	_ = tw.Flush()
}
