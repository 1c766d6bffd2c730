package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrCreateRunCommandIsNotConstructed = errors.New(
		"CreateRunCommand must be created via NewCreateRunCommand constructor",
	)
)

// CreateRunCommand represents a request to register a production run for one
// stage of an order's routing. The stage and method arrive in wire format and
// are parsed up front, so an unknown stage or a method that does not fit the
// stage is rejected before any transaction starts.
//
// Example:
//
//	cmd, err := NewCreateRunCommand(
//	    kernel.NewUUID(), orderID, &machineID, nil, "PRINTING", "SILKSCREEN", 120)
//	if err != nil {
//	    return fmt.Errorf("invalid run data: %w", err)
//	}
type CreateRunCommand struct { //nolint:recvcheck //using for validation
	runID      kernel.UUID
	orderID    kernel.UUID
	machineID  *kernel.UUID
	operatorID *kernel.UUID
	stage      order.Stage
	method     run.Method
	targetQty  int

	guard guard.ConstructorGuard
}

// NewCreateRunCommand creates a command to register a production run.
func NewCreateRunCommand(
	runID, orderID kernel.UUID, machineID, operatorID *kernel.UUID,
	stage, method string, targetQty int,
) (CreateRunCommand, error) {
	cmd := CreateRunCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setOrderID(orderID),
		cmd.setMachineID(machineID),
		cmd.setOperatorID(operatorID),
		cmd.setRouting(stage, method),
		cmd.setTargetQty(targetQty),
	); err != nil {
		return CreateRunCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRunCommand) Validate() error {
	return c.guard.Validate(ErrCreateRunCommandIsNotConstructed)
}

// RunID returns the unique identifier for the new run.
func (c CreateRunCommand) RunID() kernel.UUID {
	return c.runID
}

// OrderID returns the order the run produces for.
func (c CreateRunCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MachineID returns the machine the run will occupy while in progress, nil
// when the run is created without a machine binding.
func (c CreateRunCommand) MachineID() *kernel.UUID {
	return c.machineID
}

// OperatorID returns the assigned operator, nil when unassigned.
func (c CreateRunCommand) OperatorID() *kernel.UUID {
	return c.operatorID
}

// Stage returns the routing stage of the run.
func (c CreateRunCommand) Stage() order.Stage {
	return c.stage
}

// Method returns the print method, NoMethod for non-printing stages.
func (c CreateRunCommand) Method() run.Method {
	return c.method
}

// TargetQty returns the planned piece count.
func (c CreateRunCommand) TargetQty() int {
	return c.targetQty
}

func (c *CreateRunCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}

func (c *CreateRunCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateRunCommand) setMachineID(machineID *kernel.UUID) error {
	if machineID != nil {
		if err := machineID.Validate(); err != nil {
			return err
		}
	}

	c.machineID = machineID
	return nil
}

func (c *CreateRunCommand) setOperatorID(operatorID *kernel.UUID) error {
	if operatorID != nil {
		if err := operatorID.Validate(); err != nil {
			return err
		}
	}

	c.operatorID = operatorID
	return nil
}

func (c *CreateRunCommand) setRouting(stage, method string) error {
	parsedStage, err := order.StageFromString(stage)
	if err != nil {
		return err
	}

	parsedMethod, err := run.MethodFromString(method)
	if err != nil {
		return err
	}

	if err := parsedMethod.ValidForStage(parsedStage); err != nil {
		return err
	}

	c.stage = parsedStage
	c.method = parsedMethod
	return nil
}

func (c *CreateRunCommand) setTargetQty(targetQty int) error {
	if targetQty <= 0 {
		return errs.NewValueIsInvalidError("targetQty")
	}

	c.targetQty = targetQty
	return nil
}
