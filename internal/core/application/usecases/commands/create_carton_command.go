package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrCreateCartonCommandIsNotConstructed = errors.New(
		"CreateCartonCommand must be created via NewCreateCartonCommand constructor",
	)
)

// CreateCartonCommand represents a request to open an empty shipping carton
// with its box dimensions and tare weight.
type CreateCartonCommand struct { //nolint:recvcheck //using for validation
	cartonID    kernel.UUID
	workspaceID kernel.UUID
	dimensions  kernel.Dimensions
	tareKg      decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateCartonCommand creates a command to open a carton.
func NewCreateCartonCommand(
	cartonID, workspaceID kernel.UUID,
	lengthCm, widthCm, heightCm, tareKg decimal.Decimal,
) (CreateCartonCommand, error) {
	cmd := CreateCartonCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCartonID(cartonID),
		cmd.setWorkspaceID(workspaceID),
		cmd.setDimensions(lengthCm, widthCm, heightCm),
	); err != nil {
		return CreateCartonCommand{}, err
	}

	cmd.tareKg = tareKg
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCartonCommand) Validate() error {
	return c.guard.Validate(ErrCreateCartonCommandIsNotConstructed)
}

// CartonID returns the unique identifier for the new carton.
func (c CreateCartonCommand) CartonID() kernel.UUID {
	return c.cartonID
}

// WorkspaceID returns the tenant scope of the carton.
func (c CreateCartonCommand) WorkspaceID() kernel.UUID {
	return c.workspaceID
}

// Dimensions returns the box dimensions.
func (c CreateCartonCommand) Dimensions() kernel.Dimensions {
	return c.dimensions
}

// TareKg returns the empty-box weight.
func (c CreateCartonCommand) TareKg() decimal.Decimal {
	return c.tareKg
}

func (c *CreateCartonCommand) setCartonID(cartonID kernel.UUID) error {
	if err := cartonID.Validate(); err != nil {
		return err
	}

	c.cartonID = cartonID
	return nil
}

func (c *CreateCartonCommand) setWorkspaceID(workspaceID kernel.UUID) error {
	if err := workspaceID.Validate(); err != nil {
		return err
	}

	c.workspaceID = workspaceID
	return nil
}

func (c *CreateCartonCommand) setDimensions(lengthCm, widthCm, heightCm decimal.Decimal) error {
	dimensions, err := kernel.NewDimensions(lengthCm, widthCm, heightCm)
	if err != nil {
		return err
	}

	c.dimensions = dimensions
	return nil
}
