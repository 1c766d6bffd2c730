package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrCancelRunCommandIsNotConstructed = errors.New(
		"CancelRunCommand must be created via NewCancelRunCommand constructor",
	)
)

// CancelRunCommand represents a request to abandon a run. The reason is kept
// on the run for later review.
type CancelRunCommand struct { //nolint:recvcheck //using for validation
	runID  kernel.UUID
	reason string

	guard guard.ConstructorGuard
}

// NewCancelRunCommand creates a command to cancel the given run.
func NewCancelRunCommand(runID kernel.UUID, reason string) (CancelRunCommand, error) {
	cmd := CancelRunCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setReason(reason),
	); err != nil {
		return CancelRunCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRunCommand) Validate() error {
	return c.guard.Validate(ErrCancelRunCommandIsNotConstructed)
}

// RunID returns the run to cancel.
func (c CancelRunCommand) RunID() kernel.UUID {
	return c.runID
}

// Reason returns the operator's explanation for the cancellation.
func (c CancelRunCommand) Reason() string {
	return c.reason
}

func (c *CancelRunCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}

func (c *CancelRunCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
