package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/infra/logger"
	"github.com/aalvaropc/fnkit/internal/ports"
	ucassert "github.com/aalvaropc/fnkit/internal/usecase/assert"
)

type RunSuites struct {
	invokers ports.InvokerFactory
	validate *ValidateSuites
	store    ports.ArtifactStore
	listener ports.ExecutionListener
	log      *slog.Logger
	fanout   int
	newID    func() string
}

type RunOption func(*RunSuites)

// WithArtifactStore saves every completed run.
func WithArtifactStore(s ports.ArtifactStore) RunOption {
	return func(uc *RunSuites) { uc.store = s }
}

func WithListener(l ports.ExecutionListener) RunOption {
	return func(uc *RunSuites) {
		if l != nil {
			uc.listener = l
		}
	}
}

func WithLogger(l *slog.Logger) RunOption {
	return func(uc *RunSuites) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithFanoutLimit caps concurrent invocations of a fan-out step (0 = unbounded).
func WithFanoutLimit(n int) RunOption {
	return func(uc *RunSuites) { uc.fanout = n }
}

func NewRunSuites(f ports.InvokerFactory, opts ...RunOption) *RunSuites {
	uc := &RunSuites{
		invokers: f,
		validate: NewValidateSuites(f),
		listener: nopListener{},
		log:      logger.L(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute validates suites, runs the cases selected by focus and saves the
// result when a store is configured. It returns the run, the stored run ID
// (empty when not saved) and an error. A cancelled ctx stops the run between
// cases and returns the partial result with ctx's error.
func (uc *RunSuites) Execute(ctx context.Context, suites []domain.Suite, focus domain.Focus) (domain.RunResult, string, error) {
	run := domain.RunResult{
		ID:        uc.newID(),
		StartedAt: time.Now(),
		Focus:     focus,
		Suites:    []domain.SuiteResult{},
	}

	plan, err := uc.validate.Execute(context.WithoutCancel(ctx), suites, focus)
	if err != nil {
		run.EndedAt = time.Now()
		return run, "", err
	}

	uc.log.Info("run.start", "run_id", run.ID, "suites", len(plan.Suites), "cases", plan.CaseCount())
	uc.listener.AboutToStart(plan)

	for _, s := range plan.Suites {
		if err := ctx.Err(); err != nil {
			return uc.interrupted(run, err)
		}

		uc.listener.SuiteStart(s)
		sr := domain.SuiteResult{
			Name:        s.Name,
			Description: s.Description,
			Cases:       make([]domain.CaseResult, 0, len(s.Cases)),
		}

		for _, c := range s.Cases {
			if err := ctx.Err(); err != nil {
				if len(sr.Cases) > 0 {
					run.Suites = append(run.Suites, sr)
				}
				return uc.interrupted(run, err)
			}

			cr := uc.runCase(ctx, s, c)
			uc.log.Debug("case.done",
				"suite", s.Name,
				"case", c.Name,
				"outcome", cr.Outcome,
				"duration_ms", cr.DurationMS,
			)
			uc.listener.CaseDone(cr)
			sr.Cases = append(sr.Cases, cr)
		}

		run.Suites = append(run.Suites, sr)
	}

	if err := ctx.Err(); err != nil {
		return uc.interrupted(run, err)
	}

	run.EndedAt = time.Now()
	tally := run.Tally()
	uc.log.Info("run.done",
		"run_id", run.ID,
		"pass", tally[domain.OutcomePass],
		"hard_failure", tally[domain.OutcomeHardFailure],
		"optional_failure", tally[domain.OutcomeOptionalFailure],
		"technical_error", tally[domain.OutcomeTechnicalError],
	)

	if uc.store == nil {
		return run, "", nil
	}
	id, err := uc.store.SaveRun(run)
	if err != nil {
		uc.log.Error("run.save_failed", "run_id", run.ID, "error", err)
		return run, "", err
	}
	return run, id, nil
}

func (uc *RunSuites) interrupted(run domain.RunResult, err error) (domain.RunResult, string, error) {
	run.EndedAt = time.Now()
	uc.log.Warn("run.interrupted", "run_id", run.ID, "error", err)
	return run, "", err
}

// runCase runs the steps of c against a fresh invoker and stops at the first
// failing step.
func (uc *RunSuites) runCase(ctx context.Context, s domain.Suite, c domain.Case) (res domain.CaseResult) {
	start := time.Now()
	res = domain.CaseResult{
		Suite:       s.Name,
		Name:        c.Name,
		Description: c.Description,
		Optional:    c.Optional,
		Steps:       make([]domain.StepResult, 0, len(c.Steps)),
	}

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = domain.OutcomeTechnicalError
			res.Message = fmt.Sprintf("panic: %v", r)
		}
		res.DurationMS = time.Since(start).Milliseconds()
	}()

	inv := uc.invokers.NewInvoker()
	for _, step := range c.Steps {
		sr, err := uc.runStep(ctx, inv, step)
		res.Steps = append(res.Steps, sr)

		if err != nil {
			res.Outcome = domain.OutcomeTechnicalError
			res.Message = fmt.Sprintf("step %q: %v", sr.Name, err)
			return res
		}
		if sr.Failed() {
			if ctxErr := ctx.Err(); ctxErr != nil {
				res.Outcome = domain.OutcomeTechnicalError
				res.Message = fmt.Sprintf("step %q: %v", sr.Name, ctxErr)
				return res
			}
			res.Outcome = domain.OutcomeHardFailure
			if c.Optional {
				res.Outcome = domain.OutcomeOptionalFailure
			}
			res.Message = firstFailure(sr)
			return res
		}
	}

	res.Outcome = domain.OutcomePass
	return res
}

func (uc *RunSuites) runStep(ctx context.Context, inv ports.Invoker, step domain.Step) (domain.StepResult, error) {
	calls := step.Invocations()
	sr := domain.StepResult{
		Name:        step.Name,
		Function:    step.Function,
		Invocations: make([]domain.InvocationResult, len(calls)),
		Assertions:  []domain.AssertionResult{},
	}
	if sr.Name == "" {
		sr.Name = step.Function
	}

	if !step.Fanout {
		res, err := inv.Invoke(ctx, calls[0])
		if err != nil {
			sr.Invocations = sr.Invocations[:0]
			return sr, err
		}
		sr.Invocations[0] = res
		sr.Assertions = ucassert.Evaluate(step.Assert, res)
		return sr, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if uc.fanout > 0 {
		g.SetLimit(uc.fanout)
	}
	for i, call := range calls {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("invocation %d: panic: %v", i, r)
				}
			}()

			res, invErr := inv.Invoke(gctx, call)
			if invErr != nil {
				return fmt.Errorf("invocation %d: %w", i, invErr)
			}
			sr.Invocations[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sr, err
	}

	for i, res := range sr.Invocations {
		for _, a := range ucassert.Evaluate(step.Assert, res) {
			a.Name = fmt.Sprintf("%s[%d]", a.Name, i)
			sr.Assertions = append(sr.Assertions, a)
		}
	}
	return sr, nil
}

func firstFailure(sr domain.StepResult) string {
	for _, a := range sr.Assertions {
		if !a.Passed {
			return fmt.Sprintf("step %q: %s: %s", sr.Name, a.Name, a.Message)
		}
	}
	return fmt.Sprintf("step %q failed", sr.Name)
}

// IsInterrupted reports whether err ended a run early.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

type nopListener struct{}

func (nopListener) AboutToStart(domain.Plan)   {}
func (nopListener) SuiteStart(domain.Suite)    {}
func (nopListener) CaseDone(domain.CaseResult) {}

var _ ports.ExecutionListener = nopListener{}
