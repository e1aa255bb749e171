package reconcile

import (
	"errors"
	"fmt"
)

// Kind identifies a reconciled resource kind.
type Kind string

const (
	KindFlavorProfile  Kind = "flavor-profile"
	KindImageProfile   Kind = "image-profile"
	KindStorageProfile Kind = "storage-profile"
	KindCloudZone      Kind = "cloud-zone"
	KindNetworkProfile Kind = "network-profile"
	KindFabricCompute  Kind = "fabric-compute"
)

// Action is the kind of write an operation performs.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Status is the terminal state of one resource attempt.
type Status string

const (
	// StatusPlanned marks a write that simulate mode would have issued.
	StatusPlanned Status = "planned"
	// StatusApplied marks a write accepted by the backend.
	StatusApplied Status = "applied"
	// StatusFailed marks a write rejected by the backend or lost in transit.
	StatusFailed Status = "failed"
	// StatusSkipped marks a resource left untouched with a reason.
	StatusSkipped Status = "skipped"
	// StatusConverged marks a resource whose state already matched.
	StatusConverged Status = "converged"
)

// Outcome is the result of one resource attempt. Outcomes are append-only
// within a run and never mutated after being recorded.
type Outcome struct {
	Kind   Kind
	Name   string
	Status Status
	Action Action
	Detail string
	Err    error
}

// KindFailure records a prerequisite failure that aborted one whole
// resource kind while the rest of the run continued.
type KindFailure struct {
	Kind Kind
	Err  error
}

// Summary aggregates outcome counts for the end-of-run report. In simulate
// mode Created and Updated count planned operations.
type Summary struct {
	Created   int
	Updated   int
	Converged int
	Skipped   int
	Failed    int
}

// Report accumulates per-resource outcomes, warnings and notes for one run.
// It is the sole owner of its outcomes.
type Report struct {
	Mode         Mode
	Outcomes     []Outcome
	Warnings     []string
	Notes        []string
	KindFailures []KindFailure
}

// NewReport creates an empty report for the given execution mode.
func NewReport(mode Mode) *Report {
	return &Report{Mode: mode}
}

// Record appends one outcome.
func (r *Report) Record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Warnf appends a formatted warning.
func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Notef appends a formatted informational note (e.g. verification results).
func (r *Report) Notef(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// FailKind records that an entire resource kind was aborted.
func (r *Report) FailKind(kind Kind, err error) {
	r.KindFailures = append(r.KindFailures, KindFailure{Kind: kind, Err: err})
}

// Summary tallies the recorded outcomes.
func (r *Report) Summary() Summary {
	var s Summary
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusApplied, StatusPlanned:
			if o.Action == ActionUpdate {
				s.Updated++
			} else {
				s.Created++
			}
		case StatusConverged:
			s.Converged++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Err returns a combined error when any resource kind was aborted by a
// prerequisite failure. Per-resource failures do not count: they are
// reported in the summary and the run exits zero.
func (r *Report) Err() error {
	if len(r.KindFailures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.KindFailures))
	for _, f := range r.KindFailures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Kind, f.Err))
	}
	return errors.Join(errs...)
}
