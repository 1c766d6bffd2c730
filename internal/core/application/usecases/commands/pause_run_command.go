package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrPauseRunCommandIsNotConstructed = errors.New(
		"PauseRunCommand must be created via NewPauseRunCommand constructor",
	)
)

// PauseRunCommand represents a request to pause an in-progress run.
type PauseRunCommand struct { //nolint:recvcheck //using for validation
	runID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPauseRunCommand creates a command to pause the given run.
func NewPauseRunCommand(runID kernel.UUID) (PauseRunCommand, error) {
	cmd := PauseRunCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRunID(runID); err != nil {
		return PauseRunCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PauseRunCommand) Validate() error {
	return c.guard.Validate(ErrPauseRunCommandIsNotConstructed)
}

// RunID returns the run to pause.
func (c PauseRunCommand) RunID() kernel.UUID {
	return c.runID
}

func (c *PauseRunCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}
