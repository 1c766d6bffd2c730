package commands

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrRecordOutputCommandIsNotConstructed = errors.New(
		"RecordOutputCommand must be created via NewRecordOutputCommand constructor",
	)
)

// RecordOutputCommand represents a request to append one output row to a
// run's ledger, optionally attributed to a bundle.
type RecordOutputCommand struct { //nolint:recvcheck //using for validation
	runID     kernel.UUID
	bundleID  *kernel.UUID
	qtyGood   int
	qtyReject int
	notes     string

	guard guard.ConstructorGuard
}

// NewRecordOutputCommand creates a command to record produced quantities.
// At least one of the quantities must be positive.
func NewRecordOutputCommand(
	runID kernel.UUID, bundleID *kernel.UUID, qtyGood, qtyReject int, notes string,
) (RecordOutputCommand, error) {
	cmd := RecordOutputCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setBundleID(bundleID),
		cmd.setQuantities(qtyGood, qtyReject),
	); err != nil {
		return RecordOutputCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordOutputCommand) Validate() error {
	return c.guard.Validate(ErrRecordOutputCommandIsNotConstructed)
}

// RunID returns the run the row belongs to.
func (c RecordOutputCommand) RunID() kernel.UUID {
	return c.runID
}

// BundleID returns the attributed bundle, nil when unattributed.
func (c RecordOutputCommand) BundleID() *kernel.UUID {
	return c.bundleID
}

// QtyGood returns the good piece count.
func (c RecordOutputCommand) QtyGood() int {
	return c.qtyGood
}

// QtyReject returns the rejected piece count.
func (c RecordOutputCommand) QtyReject() int {
	return c.qtyReject
}

// Notes returns the operator's free-form remarks.
func (c RecordOutputCommand) Notes() string {
	return c.notes
}

func (c *RecordOutputCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}

func (c *RecordOutputCommand) setBundleID(bundleID *kernel.UUID) error {
	if bundleID != nil {
		if err := bundleID.Validate(); err != nil {
			return err
		}
	}

	c.bundleID = bundleID
	return nil
}

func (c *RecordOutputCommand) setQuantities(qtyGood, qtyReject int) error {
	if qtyGood < 0 || qtyReject < 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("good %d / reject %d must be non-negative", qtyGood, qtyReject))
	}
	if qtyGood == 0 && qtyReject == 0 {
		return errs.NewValueIsRequiredError("qty")
	}

	c.qtyGood = qtyGood
	c.qtyReject = qtyReject
	return nil
}
