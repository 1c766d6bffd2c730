package commands

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrAddCartonContentCommandIsNotConstructed = errors.New(
		"AddCartonContentCommand must be created via NewAddCartonContentCommand constructor",
	)
)

// AddCartonContentCommand represents a request to allocate a finished unit
// into an open carton.
type AddCartonContentCommand struct { //nolint:recvcheck //using for validation
	cartonID       kernel.UUID
	finishedUnitID kernel.UUID
	qty            int

	guard guard.ConstructorGuard
}

// NewAddCartonContentCommand creates a command to add a unit to a carton.
func NewAddCartonContentCommand(
	cartonID, finishedUnitID kernel.UUID, qty int,
) (AddCartonContentCommand, error) {
	cmd := AddCartonContentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCartonID(cartonID),
		cmd.setFinishedUnitID(finishedUnitID),
		cmd.setQty(qty),
	); err != nil {
		return AddCartonContentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartonContentCommand) Validate() error {
	return c.guard.Validate(ErrAddCartonContentCommandIsNotConstructed)
}

// CartonID returns the receiving carton.
func (c AddCartonContentCommand) CartonID() kernel.UUID {
	return c.cartonID
}

// FinishedUnitID returns the unit to allocate.
func (c AddCartonContentCommand) FinishedUnitID() kernel.UUID {
	return c.finishedUnitID
}

// Qty returns the allocated quantity.
func (c AddCartonContentCommand) Qty() int {
	return c.qty
}

func (c *AddCartonContentCommand) setCartonID(cartonID kernel.UUID) error {
	if err := cartonID.Validate(); err != nil {
		return err
	}

	c.cartonID = cartonID
	return nil
}

func (c *AddCartonContentCommand) setFinishedUnitID(finishedUnitID kernel.UUID) error {
	if err := finishedUnitID.Validate(); err != nil {
		return err
	}

	c.finishedUnitID = finishedUnitID
	return nil
}

func (c *AddCartonContentCommand) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	c.qty = qty
	return nil
}
