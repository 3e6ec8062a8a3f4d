package assembly

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/idfcheck/pkg/config"
	"mercator-hq/idfcheck/pkg/history"
	"mercator-hq/idfcheck/pkg/idf/ast"
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
	"mercator-hq/idfcheck/pkg/idf/parser"
	"mercator-hq/idfcheck/pkg/telemetry/logging"
	"mercator-hq/idfcheck/pkg/telemetry/metrics"
	"mercator-hq/idfcheck/pkg/telemetry/tracing"
)

// Sources names the files of an assembly.
type Sources struct {
	Library string   `json:"library" yaml:"library"`
	Panel   string   `json:"panel,omitempty" yaml:"panel,omitempty"` // optional
	Boards  []string `json:"boards" yaml:"boards"`
}

// Validate checks that the sources name one library and at least one board,
// with the extensions their kinds require.
func (s Sources) Validate() error {
	if s.Library == "" {
		return &idfErrors.Error{
			Type:    idfErrors.ErrorTypeMultiplicity,
			Message: "an assembly requires exactly one library",
		}
	}
	if len(s.Boards) == 0 {
		return &idfErrors.Error{
			Type:       idfErrors.ErrorTypeMultiplicity,
			Message:    "an assembly requires at least one board",
			Suggestion: "Pass one or more .emn board files",
		}
	}
	return nil
}

// Recorder stores completed runs. history.Storage implements it.
type Recorder interface {
	Store(ctx context.Context, run *history.Run) error
}

// Mode selects how references are checked.
type Mode string

const (
	// ModeCheck stops at the first missing reference.
	ModeCheck Mode = "check"
	// ModeLint reports every missing reference.
	ModeLint Mode = "lint"
)

// Result is the outcome of one Checker run.
type Result struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Sources    Sources       `json:"sources" yaml:"sources"`
	Mode       Mode          `json:"mode" yaml:"mode"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	Assembly   *Assembly     `json:"-" yaml:"-"` // nil when parsing failed
	Err        error         `json:"-" yaml:"-"`
	Placements int           `json:"placements" yaml:"placements"`
	Components int           `json:"components" yaml:"components"`
}

// Passed reports whether the run found no problems.
func (r *Result) Passed() bool {
	return r.Err == nil
}

// Errors returns the run's problems as a flat list.
func (r *Result) Errors() []*idfErrors.Error {
	var list *idfErrors.ErrorList
	if stderrors.As(r.Err, &list) {
		return list.Errors
	}
	var single *idfErrors.Error
	if stderrors.As(r.Err, &single) {
		return []*idfErrors.Error{single}
	}
	if r.Err != nil {
		return []*idfErrors.Error{{Type: idfErrors.ErrorTypeIO, Message: r.Err.Error()}}
	}
	return nil
}

// Checker parses the documents of an assembly concurrently and checks their
// references. A Checker is safe for concurrent use.
type Checker struct {
	parser   *parser.Parser
	workers  int
	mode     Mode
	closure  bool
	trigger  string
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	recorder Recorder
	logger   *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithParser sets the parser used for every document.
func WithParser(p *parser.Parser) Option {
	return func(c *Checker) { c.parser = p }
}

// WithWorkers sets how many documents are parsed at once.
func WithWorkers(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithMode selects first-failure checking or full linting.
func WithMode(m Mode) Option {
	return func(c *Checker) { c.mode = m }
}

// WithClosure enables the outline loop closure lint.
func WithClosure(enabled bool) Option {
	return func(c *Checker) { c.closure = enabled }
}

// WithTrigger sets the trigger recorded in history ("check", "lint", "watch").
func WithTrigger(trigger string) Option {
	return func(c *Checker) { c.trigger = trigger }
}

// WithMetrics records parse and check metrics on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Checker) { c.metrics = collector }
}

// WithTracer wraps runs and document parses in spans.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(c *Checker) { c.tracer = tracer }
}

// WithRecorder stores every completed run.
func WithRecorder(r Recorder) Option {
	return func(c *Checker) { c.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

// NewChecker creates a checker. Without options it parses with default
// parser settings on config.DefaultAssemblyWorkers workers and stops at the
// first failure.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		parser:  parser.NewParser(),
		workers: config.DefaultAssemblyWorkers,
		mode:    ModeCheck,
		trigger: string(ModeCheck),
		tracer:  tracing.Noop(),
		logger:  slog.Default().With("component", "assembly"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig returns the options described by cfg.
func FromConfig(cfg *config.Config) []Option {
	p := parser.NewParser().
		WithMaxFileSize(cfg.Parser.MaxFileSize).
		WithStrictProperties(cfg.Parser.StrictProperties)

	mode := ModeCheck
	if cfg.Assembly.CollectAll {
		mode = ModeLint
	}

	return []Option{
		WithParser(p),
		WithWorkers(cfg.Assembly.Workers),
		WithMode(mode),
		WithClosure(cfg.Parser.CheckClosure),
	}
}

// document is one parse job.
type document struct {
	path    string
	kind    parser.DocumentKind
	board   *ast.BoardPanel
	library *ast.Library
	err     error
}

// Run parses every source and checks the assembly. The returned error is the
// check failure, also available as Result.Err; Result is never nil.
func (c *Checker) Run(ctx context.Context, src Sources) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		Sources:   src,
		Mode:      c.mode,
		StartedAt: time.Now(),
	}

	ctx = logging.WithRunID(ctx, result.RunID)
	ctx, span := c.tracer.Start(ctx, "idf.check",
		trace.WithAttributes(
			attribute.String(tracing.AttrRunID, result.RunID),
			attribute.Int(tracing.AttrBoardCount, len(src.Boards)),
			attribute.Bool(tracing.AttrHasPanel, src.Panel != ""),
		),
	)
	defer span.End()

	if traceID := tracing.TraceID(ctx); traceID != "" {
		ctx = logging.WithTraceID(ctx, traceID)
	}

	c.logger.DebugContext(ctx, "assembly check started",
		append(logging.Args(ctx),
			"library", src.Library,
			"panel", src.Panel,
			"boards", len(src.Boards),
			"mode", c.mode,
		)...,
	)

	result.Err = c.run(ctx, src, result)
	result.Duration = time.Since(result.StartedAt)

	errType := string(idfErrors.TypeOf(result.Err))
	if result.Err != nil && errType == "" {
		errType = string(idfErrors.ErrorTypeIO)
	}
	if c.metrics != nil {
		c.metrics.RecordCheckRun(errType, result.Duration)
	}

	if result.Err != nil {
		tracing.SetErrorAttributes(span, result.Err, errType, subjectOf(result.Err))
		c.logger.InfoContext(ctx, "assembly check failed",
			append(logging.Args(ctx),
				"error_type", errType,
				"errors", len(result.Errors()),
				"duration", result.Duration,
			)...,
		)
	} else {
		tracing.SetStatus(span, nil)
		c.logger.InfoContext(ctx, "assembly check passed",
			append(logging.Args(ctx),
				"placements", result.Placements,
				"components", result.Components,
				"duration", result.Duration,
			)...,
		)
	}

	c.record(ctx, result, errType)

	return result, result.Err
}

func (c *Checker) run(ctx context.Context, src Sources, result *Result) error {
	if err := src.Validate(); err != nil {
		return err
	}

	docs, err := c.parseAll(ctx, src)
	if err != nil {
		return err
	}

	var (
		library *ast.Library
		panel   *ast.BoardPanel
		boards  []*ast.BoardPanel
	)
	for i, d := range docs {
		switch {
		case i == 0:
			library = d.library
		case src.Panel != "" && i == 1:
			panel = d.board
		default:
			boards = append(boards, d.board)
		}
	}

	a, err := New(library, boards, panel)
	if err != nil {
		return err
	}
	result.Assembly = a
	result.Placements = a.Placements()
	result.Components = a.Components()

	observe := func(check string, missing int) {
		if c.metrics != nil {
			c.metrics.RecordReferenceCheck(check, missing)
		}
	}

	if c.mode == ModeLint {
		return a.lint(c.closure, observe)
	}

	if err := a.check(observe); err != nil {
		return err
	}
	if c.closure {
		if errs := a.checkClosure(); errs.HasErrors() {
			return errs.Errors[0]
		}
	}
	return nil
}

// parseAll parses the library, the panel and the boards on the worker pool.
// Documents come back in that order. When several fail, the first in that
// order is reported.
func (c *Checker) parseAll(ctx context.Context, src Sources) ([]*document, error) {
	docs := []*document{{path: src.Library, kind: parser.KindLibrary}}
	if src.Panel != "" {
		docs = append(docs, &document{path: src.Panel, kind: parser.KindBoard})
	}
	for _, b := range src.Boards {
		docs = append(docs, &document{path: b, kind: parser.KindBoard})
	}

	jobs := make(chan *document)
	var wg sync.WaitGroup

	workers := c.workers
	if workers > len(docs) {
		workers = len(docs)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range jobs {
				c.parse(ctx, d)
			}
		}()
	}

	for _, d := range docs {
		if ctx.Err() != nil {
			d.err = ctx.Err()
			continue
		}
		jobs <- d
	}
	close(jobs)
	wg.Wait()

	for _, d := range docs {
		if d.err != nil {
			return nil, d.err
		}
	}
	return docs, nil
}

// parse parses one document and records its metrics and span.
func (c *Checker) parse(ctx context.Context, d *document) {
	ctx = logging.WithDocument(ctx, d.path)
	ctx, span := c.tracer.Start(ctx, "idf.parse",
		trace.WithAttributes(tracing.DocumentAttributes(d.path, string(d.kind))...),
	)
	defer span.End()

	start := time.Now()
	var counts ast.Summary
	switch d.kind {
	case parser.KindLibrary:
		d.library, d.err = c.parser.ParseLibraryFile(d.path)
		if d.err == nil {
			counts = d.library.Summary()
		}
	default:
		d.board, d.err = c.parser.ParseBoardFile(d.path)
		if d.err == nil {
			counts = d.board.Summary()
			span.SetAttributes(attribute.String(tracing.AttrDocumentName, d.board.Name()))
		}
	}
	elapsed := time.Since(start)

	errType := string(idfErrors.TypeOf(d.err))
	if c.metrics != nil {
		c.metrics.RecordParse(string(d.kind), errType, elapsed, counts)
	}

	if d.err != nil {
		tracing.SetErrorAttributes(span, d.err, errType, subjectOf(d.err))
		c.logger.DebugContext(ctx, "document parse failed",
			append(logging.Args(ctx), "kind", d.kind, "error_type", errType)...,
		)
		return
	}

	tracing.SetRecordCounts(span, counts)
	tracing.SetStatus(span, nil)
	c.logger.DebugContext(ctx, "document parsed",
		append(logging.Args(ctx), "kind", d.kind, "duration", elapsed)...,
	)
}

// record stores the run in history. Storage failures are logged and do not
// change the check outcome.
func (c *Checker) record(ctx context.Context, result *Result, errType string) {
	if c.recorder == nil {
		return
	}

	run := &history.Run{
		ID:         result.RunID,
		Trigger:    c.trigger,
		StartedAt:  result.StartedAt,
		FinishedAt: result.StartedAt.Add(result.Duration),
		Library:    result.Sources.Library,
		Panel:      result.Sources.Panel,
		Boards:     append([]string(nil), result.Sources.Boards...),
		Placements: result.Placements,
		Components: result.Components,
		Outcome:    history.OutcomePass,
	}
	if result.Err != nil {
		run.Outcome = history.OutcomeFail
		run.ErrorType = errType
		run.Error = messageOf(result.Err)
		run.Subject = subjectOf(result.Err)
	}

	if err := c.recorder.Store(ctx, run); err != nil {
		c.logger.WarnContext(ctx, "failed to record check run",
			append(logging.Args(ctx), "error", err)...,
		)
	}
}

// firstError returns the first *idfErrors.Error in err's chain.
func firstError(err error) *idfErrors.Error {
	var list *idfErrors.ErrorList
	if stderrors.As(err, &list) && list.HasErrors() {
		return list.Errors[0]
	}
	var single *idfErrors.Error
	if stderrors.As(err, &single) {
		return single
	}
	return nil
}

func subjectOf(err error) string {
	if e := firstError(err); e != nil {
		return e.Subject
	}
	return ""
}

func messageOf(err error) string {
	if e := firstError(err); e != nil {
		if e.Location.File != "" {
			return fmt.Sprintf("%s: %s", e.Location.File, e.Message)
		}
		return e.Message
	}
	return err.Error()
}
