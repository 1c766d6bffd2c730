package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrStartRunCommandIsNotConstructed = errors.New(
		"StartRunCommand must be created via NewStartRunCommand constructor",
	)
)

// StartRunCommand represents a request to start or resume a production run.
type StartRunCommand struct { //nolint:recvcheck //using for validation
	runID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartRunCommand creates a command to start the given run.
func NewStartRunCommand(runID kernel.UUID) (StartRunCommand, error) {
	cmd := StartRunCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRunID(runID); err != nil {
		return StartRunCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartRunCommand) Validate() error {
	return c.guard.Validate(ErrStartRunCommandIsNotConstructed)
}

// RunID returns the run to start.
func (c StartRunCommand) RunID() kernel.UUID {
	return c.runID
}

func (c *StartRunCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}
