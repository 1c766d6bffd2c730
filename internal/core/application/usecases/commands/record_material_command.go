package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrRecordMaterialCommandIsNotConstructed = errors.New(
		"RecordMaterialCommand must be created via NewRecordMaterialCommand constructor",
	)
)

// RecordMaterialCommand represents a request to log material consumed by a
// run, optionally traced to an inventory item and source batch.
type RecordMaterialCommand struct { //nolint:recvcheck //using for validation
	runID         kernel.UUID
	itemID        *kernel.UUID
	uom           string
	qty           decimal.Decimal
	sourceBatchID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordMaterialCommand creates a command to log material consumption.
func NewRecordMaterialCommand(
	runID kernel.UUID, itemID *kernel.UUID, uom string, qty decimal.Decimal, sourceBatchID *kernel.UUID,
) (RecordMaterialCommand, error) {
	cmd := RecordMaterialCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setItemID(itemID),
		cmd.setConsumption(uom, qty),
		cmd.setSourceBatchID(sourceBatchID),
	); err != nil {
		return RecordMaterialCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordMaterialCommand) Validate() error {
	return c.guard.Validate(ErrRecordMaterialCommandIsNotConstructed)
}

// RunID returns the run the material was consumed by.
func (c RecordMaterialCommand) RunID() kernel.UUID {
	return c.runID
}

// ItemID returns the consumed inventory item, nil when untracked.
func (c RecordMaterialCommand) ItemID() *kernel.UUID {
	return c.itemID
}

// UOM returns the unit of measure of the quantity.
func (c RecordMaterialCommand) UOM() string {
	return c.uom
}

// Qty returns the consumed amount.
func (c RecordMaterialCommand) Qty() decimal.Decimal {
	return c.qty
}

// SourceBatchID returns the fabric batch traceability link, nil when unknown.
func (c RecordMaterialCommand) SourceBatchID() *kernel.UUID {
	return c.sourceBatchID
}

func (c *RecordMaterialCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}

func (c *RecordMaterialCommand) setItemID(itemID *kernel.UUID) error {
	if itemID != nil {
		if err := itemID.Validate(); err != nil {
			return err
		}
	}

	c.itemID = itemID
	return nil
}

func (c *RecordMaterialCommand) setConsumption(uom string, qty decimal.Decimal) error {
	if uom == "" {
		return errs.NewValueIsRequiredError("uom")
	}
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%s is not greater than 0", qty))
	}

	c.uom = uom
	c.qty = qty
	return nil
}

func (c *RecordMaterialCommand) setSourceBatchID(sourceBatchID *kernel.UUID) error {
	if sourceBatchID != nil {
		if err := sourceBatchID.Validate(); err != nil {
			return err
		}
	}

	c.sourceBatchID = sourceBatchID
	return nil
}
