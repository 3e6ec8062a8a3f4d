// Package assembly checks a set of IDF documents against each other.
//
// An Assembly is one library, one or more boards and an optional panel.
// Check verifies that every package placed on a board is defined in the
// library and that every board placed on the panel was supplied, stopping at
// the first problem. Lint reports every problem and can add the outline loop
// closure lint.
//
// A Checker drives a whole run from file paths: it parses the documents on a
// small worker pool, builds the Assembly, checks it, and reports the outcome
// to Prometheus metrics, OpenTelemetry spans, slog and the check-run history.
//
//	checker := assembly.NewChecker(assembly.WithRecorder(store))
//	result, err := checker.Run(ctx, assembly.Sources{
//	    Library: "parts.emp",
//	    Panel:   "panel.emn",
//	    Boards:  []string{"main.emn", "daughter.emn"},
//	})
//
// When several documents fail to parse, the reported failure is the first in
// the order library, panel, boards, regardless of which worker finished
// first.
package assembly
