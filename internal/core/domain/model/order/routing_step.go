package order

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Step statuses. A routing step is planned when the order arrives, becomes
// active while a production run for it is in progress, and is completed when
// that run is done.
const (
	StepPlanned   = "PLANNED"
	StepActive    = "ACTIVE"
	StepCompleted = "COMPLETED"
)

var (
	// ErrRoutingStepIsNotConstructed indicates that the RoutingStep was not
	// initialized through a constructor function.
	ErrRoutingStepIsNotConstructed = errors.New("RoutingStep must be created via NewRoutingStep constructor")
)

// RoutingStep is one stage occurrence in an order's production sequence.
// Steps are ordered by sequence and owned by their Order; at most one active
// production run exists per step occurrence at a time.
type RoutingStep struct {
	id       kernel.UUID
	stage    Stage
	sequence int
	status   string

	guard kernel.ConstructorGuard
}

// NewRoutingStep creates a planned routing step for the given stage and
// position in the order's sequence. Sequence starts at 1.
func NewRoutingStep(id kernel.UUID, stage Stage, sequence int) (*RoutingStep, error) {
	step := &RoutingStep{
		status: StepPlanned,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		step.setID(id),
		step.setStage(stage),
		step.setSequence(sequence),
	); err != nil {
		return nil, err
	}

	return step, nil
}

// RestoreRoutingStep reconstructs a routing step from persistent storage,
// including its current status.
func RestoreRoutingStep(id kernel.UUID, stage Stage, sequence int, status string) (*RoutingStep, error) {
	step := &RoutingStep{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		step.setID(id),
		step.setStage(stage),
		step.setSequence(sequence),
		step.setStatus(status),
	); err != nil {
		return nil, err
	}

	return step, nil
}

// Validate ensures the step was built through a constructor.
func (s *RoutingStep) Validate() error {
	if s == nil {
		return ErrRoutingStepIsNotConstructed
	}
	return s.guard.Validate(ErrRoutingStepIsNotConstructed)
}

// IsEqual compares two routing steps by identity.
func (s *RoutingStep) IsEqual(other *RoutingStep) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the step's unique identifier.
func (s *RoutingStep) ID() kernel.UUID {
	return s.id
}

// Stage returns the production stage this step represents.
func (s *RoutingStep) Stage() Stage {
	return s.stage
}

// Sequence returns the 1-based position of the step in the order's route.
func (s *RoutingStep) Sequence() int {
	return s.sequence
}

// Status returns the step's current status.
func (s *RoutingStep) Status() string {
	return s.status
}

// Activate marks the step active when a production run for it starts.
// Already-active steps stay active (a paused run may resume).
func (s *RoutingStep) Activate() error {
	if s.status == StepCompleted {
		return errs.NewInvalidTransitionError("routing step", s.status, StepActive)
	}
	s.status = StepActive
	return nil
}

// Complete marks the step completed when its production run finishes.
func (s *RoutingStep) Complete() error {
	if s.status == StepCompleted {
		return errs.NewInvalidTransitionError("routing step", s.status, StepCompleted)
	}
	s.status = StepCompleted
	return nil
}

func (s *RoutingStep) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *RoutingStep) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	s.stage = stage
	return nil
}

func (s *RoutingStep) setSequence(sequence int) error {
	if sequence <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("sequence",
			fmt.Errorf("%d is not greater than 0", sequence))
	}
	s.sequence = sequence
	return nil
}

func (s *RoutingStep) setStatus(status string) error {
	switch status {
	case StepPlanned, StepActive, StepCompleted:
		s.status = status
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid routing step status", status))
	}
}
