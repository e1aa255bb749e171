// Package reconcile implements the reconciliation engine: name-to-identifier
// resolution, desired-vs-existing diffing, per-kind convergence planning and
// dual-mode (simulate/apply) execution with per-resource failure isolation.
package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/essentialco/ariactl/internal/logging"
)

// Mode selects whether planned writes reach the backend.
type Mode string

const (
	// ModeSimulate evaluates every planning and diff step but substitutes
	// a no-op for each write. The decision logic is identical to apply
	// mode, so a dry run is a reliable predictor of apply-mode effect.
	ModeSimulate Mode = "simulate"
	// ModeApply issues the planned writes.
	ModeApply Mode = "apply"
)

// Operation is one planned write against the backend. Planners emit
// operations in the order apply mode would issue them.
type Operation struct {
	Kind   Kind
	Name   string
	Action Action

	// Detail describes the write for the dry-run listing.
	Detail string

	// apply issues the write. Never invoked in simulate mode.
	apply func(ctx context.Context) error
}

// Planner plans the convergence of one resource kind. Plan records
// converged, skipped and warning outcomes directly on the report and
// returns only the operations that still need a write. A returned error is
// fatal for the planner's kind: no operations run, other kinds continue.
type Planner interface {
	Kind() Kind
	Plan(ctx context.Context, rep *Report) ([]Operation, error)
}

// verifier is implemented by planners that re-fetch backend state after a
// successful apply to report what is actually present.
type verifier interface {
	Verify(ctx context.Context, rep *Report)
}

// Executor drives planners sequentially over the backend in a fixed order,
// isolating per-resource failures and aggregating outcomes.
type Executor struct {
	mode Mode
	log  zerolog.Logger
}

// NewExecutor creates an executor for the given mode.
func NewExecutor(mode Mode) *Executor {
	return &Executor{mode: mode, log: logging.WithComponent("reconcile")}
}

// Run plans and executes each planner in order. Resource kinds never run
// concurrently and a failure on one resource does not stop the rest:
// continue-on-error is the only failure policy. Each write gets exactly one
// delivery attempt; re-running the tool is the retry mechanism.
func (e *Executor) Run(ctx context.Context, planners []Planner) *Report {
	rep := NewReport(e.mode)

	for _, p := range planners {
		ops, err := p.Plan(ctx, rep)
		if err != nil {
			e.log.Error().Err(err).Str("kind", string(p.Kind())).Msg("resource kind aborted")
			rep.FailKind(p.Kind(), err)
			continue
		}

		applied := false
		for _, op := range ops {
			switch e.mode {
			case ModeSimulate:
				e.log.Info().Str("kind", string(op.Kind)).Str("name", op.Name).
					Str("action", string(op.Action)).Msg("would write")
				rep.Record(Outcome{Kind: op.Kind, Name: op.Name, Status: StatusPlanned,
					Action: op.Action, Detail: op.Detail})
			case ModeApply:
				if err := op.apply(ctx); err != nil {
					e.log.Error().Err(err).Str("kind", string(op.Kind)).Str("name", op.Name).Msg("write failed")
					rep.Record(Outcome{Kind: op.Kind, Name: op.Name, Status: StatusFailed,
						Action: op.Action, Detail: op.Detail, Err: err})
					continue
				}
				applied = true
				e.log.Info().Str("kind", string(op.Kind)).Str("name", op.Name).
					Str("action", string(op.Action)).Msg("write applied")
				rep.Record(Outcome{Kind: op.Kind, Name: op.Name, Status: StatusApplied,
					Action: op.Action, Detail: op.Detail})
			}
		}

		if v, ok := p.(verifier); ok && e.mode == ModeApply && applied {
			v.Verify(ctx, rep)
		}
	}

	return rep
}
