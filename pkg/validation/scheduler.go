package validation

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/flowlint/flowlint/pkg/constants"
	"github.com/flowlint/flowlint/pkg/fileutil"
	"github.com/flowlint/flowlint/pkg/logger"
	"github.com/flowlint/flowlint/pkg/workflow"
)

var schedulerLog = logger.New("validation:scheduler")

// Phase is the scheduler lifecycle state. Transitions are strictly forward
// within one run: Idle -> Loading -> Dispatching -> Collecting -> Done.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseLoading     Phase = "loading"
	PhaseDispatching Phase = "dispatching"
	PhaseCollecting  Phase = "collecting"
	PhaseDone        Phase = "done"
)

// Options configures a validation run.
type Options struct {
	// Path is the workflow document to validate.
	Path string
	// Categories restricts the run to the named validator categories.
	// Empty means all validators.
	Categories []Category
	// Parallel allows concurrent validator execution once the enabled
	// validator count exceeds Limits.ParallelThreshold.
	Parallel bool
	// Limits carries the tunable thresholds and worker settings.
	Limits Limits
}

// Scheduler drives one validation run through its phases: load and parse the
// document, dispatch the enabled validators (sequentially or on a bounded
// worker pool), and collect the merged summary. Operational failures during
// Loading abort the run with a single fatal finding; validator panics are
// isolated to one error finding each.
type Scheduler struct {
	opts Options
	// validators overrides the registry when non-nil. Tests inject stubs
	// through it.
	validators []Validator

	mu    sync.Mutex
	phase Phase
}

// NewScheduler returns an idle scheduler for the given options.
func NewScheduler(opts Options) *Scheduler {
	return &Scheduler{opts: opts, phase: PhaseIdle}
}

// Phase returns the current lifecycle phase. Safe for concurrent use.
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Scheduler) setPhase(phase Phase) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
	schedulerLog.Printf("Phase: %s", phase)
}

// Run executes the validation run and always returns a summary. Each call
// uses a fresh artifact cache, so successive runs (watch mode) never observe
// stale file contents. On context expiry any partial results are discarded
// and the summary carries a single fatal timeout finding.
func (s *Scheduler) Run(ctx context.Context) *RunSummary {
	start := time.Now()

	s.setPhase(PhaseLoading)
	run, fatal := s.load(ctx)
	if fatal != nil {
		s.setPhase(PhaseDone)
		return FatalSummary(*fatal, time.Since(start))
	}

	validators := s.validators
	if validators == nil {
		validators = validatorsFor(s.opts.Categories)
	}
	schedulerLog.Printf("Dispatching %d validators (parallel=%v)", len(validators), s.parallel(len(validators)))

	s.setPhase(PhaseDispatching)
	results, timings, err := s.dispatch(ctx, run, validators)
	if err != nil {
		s.setPhase(PhaseDone)
		return FatalSummary(Finding{
			Category:  CategoryStructure,
			Severity:  SeverityError,
			Message:   "validation timed out before all validators completed",
			Detail:    err.Error(),
			Validator: "scheduler",
		}, time.Since(start))
	}

	s.setPhase(PhaseCollecting)
	var findings []Finding
	for _, result := range results {
		findings = append(findings, result...)
	}
	summary := NewRunSummary(findings, timings, time.Since(start))
	summary.Overview = overviewOf(run.Document)

	s.setPhase(PhaseDone)
	return summary
}

func overviewOf(doc *workflow.Document) *DocumentOverview {
	return &DocumentOverview{
		Name:          doc.Name,
		Path:          doc.Path,
		Nodes:         len(doc.Nodes),
		Edges:         doc.EdgeCount(),
		FunctionNodes: len(doc.FunctionNodes()),
		Size:          int64(len(doc.Raw)),
	}
}

// load resolves, reads, and parses the document and preflights external
// dependencies. Any failure here is operational: the run aborts with a fatal
// finding and no validator executes.
func (s *Scheduler) load(ctx context.Context) (*Run, *Finding) {
	fatalf := func(category Category, format string, args ...any) *Finding {
		return &Finding{
			Category:  category,
			Severity:  SeverityError,
			Message:   fmt.Sprintf(format, args...),
			Validator: "scheduler",
		}
	}

	path, err := fileutil.ResolvePath(s.opts.Path)
	if err != nil {
		return nil, fatalf(CategoryStructure, "invalid document path: %v", err)
	}

	cache := NewCache()
	raw, err := cache.Load(path)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, fatalf(CategoryStructure, "document not found: %s", path)
	case err != nil:
		return nil, fatalf(CategoryStructure, "document unreadable: %v", err)
	}

	doc, err := workflow.Parse(raw, path)
	if err != nil {
		return nil, fatalf(CategoryStructure, "%v", err)
	}

	if s.categoryEnabled(CategoryTests) {
		if _, err := exec.LookPath(constants.ShellInterpreter); err != nil {
			return nil, fatalf(CategoryTests, "%s not found on PATH: script checks cannot run", constants.ShellInterpreter)
		}
	}

	return &Run{
		Document: doc,
		Cache:    cache,
		Limits:   s.opts.Limits,
		BaseDir:  filepath.Dir(path),
	}, nil
}

func (s *Scheduler) categoryEnabled(category Category) bool {
	if len(s.opts.Categories) == 0 {
		return true
	}
	for _, enabled := range s.opts.Categories {
		if enabled == category {
			return true
		}
	}
	return false
}

func (s *Scheduler) parallel(validatorCount int) bool {
	return s.opts.Parallel && validatorCount > s.opts.Limits.ParallelThreshold
}

// dispatch evaluates the validators and returns per-validator findings and
// timings, index-aligned with the validator slice so the merge order never
// depends on completion order. On context expiry the partial results are
// abandoned and only the context error is returned.
func (s *Scheduler) dispatch(ctx context.Context, run *Run, validators []Validator) ([][]Finding, []ValidatorTiming, error) {
	results := make([][]Finding, len(validators))
	timings := make([]ValidatorTiming, len(validators))

	done := make(chan struct{})
	go func() {
		defer close(done)
		if s.parallel(len(validators)) {
			workers := pool.New().WithMaxGoroutines(run.Limits.Workers)
			for i, v := range validators {
				workers.Go(func() {
					results[i], timings[i] = evaluateTimed(ctx, v, run)
				})
			}
			workers.Wait()
			return
		}
		for i, v := range validators {
			results[i], timings[i] = evaluateTimed(ctx, v, run)
		}
	}()

	select {
	case <-done:
		return results, timings, nil
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

func evaluateTimed(ctx context.Context, v Validator, run *Run) ([]Finding, ValidatorTiming) {
	start := time.Now()
	findings := evaluateSafely(ctx, v, run)
	return findings, ValidatorTiming{Name: v.Name(), Duration: time.Since(start)}
}

// evaluateSafely isolates a panicking validator: the panic is converted into
// a single error finding attributed to that validator and the other
// validators keep running.
func evaluateSafely(ctx context.Context, v Validator, run *Run) (findings []Finding) {
	defer func() {
		if r := recover(); r != nil {
			schedulerLog.Printf("Validator %s panicked: %v", v.Name(), r)
			findings = []Finding{{
				Category:  v.Category(),
				Severity:  SeverityError,
				Message:   fmt.Sprintf("%s validator failed unexpectedly", v.Name()),
				Detail:    fmt.Sprint(r),
				Validator: v.Name(),
			}}
		}
	}()
	return v.Evaluate(ctx, run)
}
