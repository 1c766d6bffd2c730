package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrCloseCartonCommandIsNotConstructed = errors.New(
		"CloseCartonCommand must be created via NewCloseCartonCommand constructor",
	)
)

// CloseCartonCommand represents a request to close a carton and freeze its
// shipping measurements.
type CloseCartonCommand struct { //nolint:recvcheck //using for validation
	cartonID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCloseCartonCommand creates a command to close the given carton.
func NewCloseCartonCommand(cartonID kernel.UUID) (CloseCartonCommand, error) {
	cmd := CloseCartonCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCartonID(cartonID); err != nil {
		return CloseCartonCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseCartonCommand) Validate() error {
	return c.guard.Validate(ErrCloseCartonCommandIsNotConstructed)
}

// CartonID returns the carton to close.
func (c CloseCartonCommand) CartonID() kernel.UUID {
	return c.cartonID
}

func (c *CloseCartonCommand) setCartonID(cartonID kernel.UUID) error {
	if err := cartonID.Validate(); err != nil {
		return err
	}

	c.cartonID = cartonID
	return nil
}
