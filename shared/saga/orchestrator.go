package saga

import (
	"context"
	"time"

	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/models"
	"github.com/collabhub/platform/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Result describes a completed run.
type Result struct {
	RunID   models.ID
	Outputs map[string]interface{}
	// Skipped lists remote steps that failed without aborting the run.
	Skipped []SkippedStep
}

// SkippedStep is a tolerated remote failure.
type SkippedStep struct {
	Step string
	Err  error
}

// Output returns the result of the named step.
func (r *Result) Output(step string) interface{} {
	return r.Outputs[step]
}

// Orchestrator runs saga definitions.
type Orchestrator struct {
	journal Journal
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithJournal records every run transition to j.
func WithJournal(j Journal) Option {
	return func(o *Orchestrator) {
		o.journal = j
	}
}

func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{journal: nopJournal{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes def's steps in order.
//
// A failing local step compensates the completed steps in reverse order and
// returns the step error. A failing remote step does the same and returns an
// *AbortedError, unless the definition tolerates remote failures, in which
// case the failure is logged and the run continues. If any compensation
// fails, a *CompensationFailedError is returned instead.
//
// Once started, a run is not cancelled with ctx: it always ends confirmed or
// compensated. Remote steps are bounded by their client's own timeout.
func (o *Orchestrator) Run(ctx context.Context, def Definition) (*Result, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	run := &run{
		id:      models.GenerateUUID(),
		def:     def,
		journal: o.journal,
		log:     logger.With(zap.String("saga", def.Name)),
	}
	run.log = run.log.With(zap.String("run_id", run.id.String()))

	ctx, span := telemetry.StartSpan(ctx, "saga."+def.Name,
		trace.WithAttributes(
			attribute.String("saga.name", def.Name),
			attribute.String("saga.run_id", run.id.String()),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := run.execute(ctx)

	outcome := "completed"
	switch {
	case errors.Is(err, ErrCompensationFailed):
		outcome = "compensation_failed"
	case errors.Is(err, ErrAborted):
		outcome = "aborted"
	case err != nil:
		outcome = "failed"
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}

	telemetry.RecordCounter(ctx, "saga_runs_total", "Saga runs by outcome", 1,
		attribute.String("saga", def.Name),
		attribute.String("outcome", outcome),
	)
	telemetry.RecordHistogram(ctx, "saga_run_duration_seconds", "Saga run duration", time.Since(start).Seconds(),
		attribute.String("saga", def.Name),
		attribute.String("outcome", outcome),
	)

	return result, err
}

func (d Definition) validate() error {
	if d.Name == "" {
		return errors.Wrap(ErrInvalidDefinition, "name is required")
	}
	if len(d.Steps) == 0 {
		return errors.Wrapf(ErrInvalidDefinition, "%s has no steps", d.Name)
	}
	for i, step := range d.Steps {
		if step.Action == nil {
			return errors.Wrapf(ErrInvalidDefinition, "%s step %d has no action", d.Name, i)
		}
		if step.Kind != LocalStep && step.Kind != RemoteStep {
			return errors.Wrapf(ErrInvalidDefinition, "%s step %q has unknown kind %q", d.Name, step.Name, step.Kind)
		}
	}
	return nil
}

type run struct {
	id        models.ID
	def       Definition
	journal   Journal
	log       *zap.Logger
	completed []stepOutcome
}

func (r *run) execute(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:   r.id,
		Outputs: make(map[string]interface{}, len(r.def.Steps)),
	}

	r.record(ctx, Entry{Type: EntryStarted})

	for _, step := range r.def.Steps {
		output, err := step.Action(ctx)
		if err == nil {
			r.completed = append(r.completed, stepOutcome{step: step, result: output})
			result.Outputs[step.Name] = output
			r.record(ctx, Entry{Type: EntryStepCompleted, Step: step.Name})
			continue
		}

		r.record(ctx, Entry{Type: EntryStepFailed, Step: step.Name, Error: err.Error()})

		if step.Kind == RemoteStep && !r.def.AbortOnRemoteFailure {
			r.log.Warn("remote step failed, continuing",
				zap.String("step", step.Name),
				zap.Error(err),
			)
			result.Skipped = append(result.Skipped, SkippedStep{Step: step.Name, Err: err})
			continue
		}

		return nil, r.abort(ctx, step, err)
	}

	r.record(ctx, Entry{Type: EntryCompleted})
	return result, nil
}

func (r *run) abort(ctx context.Context, failed Step, cause error) error {
	if err := r.compensate(ctx); err != nil {
		r.log.Error("saga compensation failed, manual reconciliation required",
			zap.String("severity", "critical"),
			zap.Bool("manual_reconciliation", true),
			zap.String("step", failed.Name),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		r.record(ctx, Entry{Type: EntryCompensationFailed, Step: failed.Name, Error: err.Error()})

		return &CompensationFailedError{
			Saga:  r.def.Name,
			Step:  failed.Name,
			Cause: cause,
			Err:   err,
		}
	}

	r.record(ctx, Entry{Type: EntryCompensated, Step: failed.Name})

	if failed.Kind == LocalStep {
		return errors.Wrapf(cause, "step %s failed", failed.Name)
	}

	reason := reasonOf(cause)
	r.log.Warn("saga aborted",
		zap.String("step", failed.Name),
		zap.String("reason", string(reason)),
		zap.Error(cause),
	)

	return &AbortedError{
		Saga:   r.def.Name,
		Step:   failed.Name,
		Reason: reason,
		Err:    cause,
	}
}

// compensate undoes completed steps in reverse order. It keeps going after a
// failed compensation so that as much local state as possible is restored.
func (r *run) compensate(ctx context.Context) error {
	var errs error

	for i := len(r.completed) - 1; i >= 0; i-- {
		outcome := r.completed[i]
		if outcome.step.Compensate == nil {
			continue
		}

		telemetry.RecordCounter(ctx, "saga_compensations_total", "Compensations executed", 1,
			attribute.String("saga", r.def.Name),
			attribute.String("step", outcome.step.Name),
		)

		if err := outcome.step.Compensate(ctx, outcome.result); err != nil {
			telemetry.RecordCounter(ctx, "saga_compensation_failures_total", "Compensations that failed", 1,
				attribute.String("saga", r.def.Name),
				attribute.String("step", outcome.step.Name),
			)
			errs = multierr.Append(errs, errors.Wrapf(err, "compensate %s", outcome.step.Name))
			continue
		}

		r.log.Info("step compensated", zap.String("step", outcome.step.Name))
	}

	return errs
}

func (r *run) record(ctx context.Context, entry Entry) {
	entry.RunID = r.id
	entry.Saga = r.def.Name

	if err := r.journal.Record(ctx, entry); err != nil {
		r.log.Warn("failed to journal saga entry",
			zap.String("entry", string(entry.Type)),
			zap.Error(err),
		)
	}
}
