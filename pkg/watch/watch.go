package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mercator-hq/idfcheck/pkg/config"
	"mercator-hq/idfcheck/pkg/history"
	"mercator-hq/idfcheck/pkg/history/retention"
	"mercator-hq/idfcheck/pkg/idf/assembly"
	"mercator-hq/idfcheck/pkg/server"
	"mercator-hq/idfcheck/pkg/telemetry/health"
	"mercator-hq/idfcheck/pkg/telemetry/metrics"
)

// Runner re-checks an assembly every time one of its files changes.
type Runner struct {
	config  *config.Config
	checker *assembly.Checker
	sources assembly.Sources
	pruner  *retention.Pruner
	metrics *metrics.Collector
	health  *health.Checker
	version string
	logger  *slog.Logger

	onResult func(*assembly.Result)

	runMu sync.Mutex // serializes check runs

	mu   sync.RWMutex
	last *assembly.Result
	runs int
}

// Option configures a Runner.
type Option func(*Runner)

// WithHistory registers a readiness check on store and prunes it on the
// configured retention schedule.
func WithHistory(store history.Storage, pruner *retention.Pruner) Option {
	return func(r *Runner) {
		r.health.RegisterCheck("history", health.StoreCheck(store))
		r.pruner = pruner
	}
}

// WithMetrics exposes collector on the telemetry server.
func WithMetrics(collector *metrics.Collector) Option {
	return func(r *Runner) { r.metrics = collector }
}

// WithVersion sets the version reported by the /version endpoint.
func WithVersion(version string) Option {
	return func(r *Runner) { r.version = version }
}

// OnResult registers a callback invoked after every check run.
func OnResult(fn func(*assembly.Result)) Option {
	return func(r *Runner) { r.onResult = fn }
}

// NewRunner creates a runner that checks sources with checker.
func NewRunner(cfg *config.Config, checker *assembly.Checker, sources assembly.Sources, opts ...Option) *Runner {
	r := &Runner{
		config:  cfg,
		checker: checker,
		sources: sources,
		health:  health.New(2 * time.Second),
		version: "dev",
		logger:  slog.Default().With("component", "watch"),
	}
	r.health.RegisterCheck("last_run", health.LastRunCheck(r.Last))

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run checks the assembly once, then watches its files and re-checks on
// every change until ctx is cancelled. While it runs it also serves
// telemetry when watch.listen_address is set and prunes history when a
// pruner was supplied.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.sources.Validate(); err != nil {
		return err
	}

	fw, err := NewFileWatcher(&FileWatcherConfig{
		Paths:            r.paths(),
		DebounceInterval: r.config.Watch.Debounce,
		Extensions:       r.config.Watch.Extensions,
	}, r.logger)
	if err != nil {
		return err
	}
	defer func() { _ = fw.Stop() }()

	r.check(ctx, "")

	if r.pruner != nil {
		if err := r.pruner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start history pruning: %w", err)
		}
		defer r.pruner.Stop()
	}

	serverErr := make(chan error, 1)
	if r.config.Watch.ListenAddress != "" {
		srv := server.New(r.config, r.metrics, r.health, r.version)
		go func() { serverErr <- srv.Start(ctx) }()
	}

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- fw.Watch(ctx, func(path string) { r.check(ctx, path) })
	}()

	select {
	case err := <-watchErr:
		return err
	case err := <-serverErr:
		return err
	}
}

// check runs the assembly check once. changed is the file that triggered
// the run, empty for the initial run.
func (r *Runner) check(ctx context.Context, changed string) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	if changed != "" {
		r.logger.Info("input changed, re-checking assembly", "path", changed)
	}

	result, _ := r.checker.Run(ctx, r.sources)

	r.mu.Lock()
	r.last = result
	r.runs++
	r.mu.Unlock()

	if r.onResult != nil {
		r.onResult(result)
	}
}

// Last reports whether any check has completed and the error of the most
// recent one.
func (r *Runner) Last() (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.last == nil {
		return false, nil
	}
	return true, r.last.Err
}

// Runs returns how many checks have completed.
func (r *Runner) Runs() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.runs
}

// Health returns the readiness checker served on the telemetry endpoints.
func (r *Runner) Health() *health.Checker {
	return r.health
}

func (r *Runner) paths() []string {
	paths := []string{r.sources.Library}
	if r.sources.Panel != "" {
		paths = append(paths, r.sources.Panel)
	}
	return append(paths, r.sources.Boards...)
}
