package run

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of a production run.
// It implements a state machine with defined transitions so that runs follow
// the uniform lifecycle shared by all stages and methods.
//
// State transitions:
//
//	Created ──> InProgress ⇄ Paused
//	                │
//	                └──> Done
//
//	any non-terminal ──> Cancelled
//
// Done and Cancelled are terminal; a run is never physically deleted,
// cancellation is a state.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Created is the initial status when a run is registered for a routing step.
	Created

	// InProgress indicates the run is actively producing. If the run is bound
	// to a machine, the machine lock is held exactly while in this status.
	InProgress

	// Paused indicates the run was interrupted. The machine lock is released
	// but the machine binding is retained for a later resume.
	Paused

	// Done indicates the run completed and its yield is reconciled. Terminal.
	Done

	// Cancelled indicates the run was aborted. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Created:       "CREATED",
		InProgress:    "IN_PROGRESS",
		Paused:        "PAUSED",
		Done:          "DONE",
		Cancelled:     "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "CREATED",
		InProgress: "IN_PROGRESS",
		Paused:     "PAUSED",
		Done:       "DONE",
		Cancelled:  "CANCELLED",
	}
}

// StatusFromString parses a wire-format status name (e.g. "IN_PROGRESS").
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are Created, InProgress, Paused, Done and Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status (e.g. "IN_PROGRESS").
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == Done || s == Cancelled
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Created -> InProgress (first start)
//   - Paused  -> InProgress (resume)
func (s Status) Start() (Status, error) {
	if s != Created && s != Paused {
		return 0, errs.NewInvalidTransitionError("run", s.String(), InProgress.String())
	}
	return InProgress, nil
}

// Pause transitions the status to Paused.
// Only an InProgress run can be paused.
func (s Status) Pause() (Status, error) {
	if s != InProgress {
		return 0, errs.NewInvalidTransitionError("run", s.String(), Paused.String())
	}
	return Paused, nil
}

// Complete transitions the status to Done.
// Only an InProgress run can be completed.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, errs.NewInvalidTransitionError("run", s.String(), Done.String())
	}
	return Done, nil
}

// Cancel transitions the status to Cancelled.
// Any non-terminal status can be cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError("run", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
