package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrRecordRejectCommandIsNotConstructed = errors.New(
		"RecordRejectCommand must be created via NewRecordRejectCommand constructor",
	)
)

// RecordRejectCommand represents a request to append one reject row to a
// run's ledger with its defect reason and optional cost attribution.
type RecordRejectCommand struct { //nolint:recvcheck //using for validation
	runID      kernel.UUID
	bundleID   *kernel.UUID
	reasonCode string
	qty        int
	cost       *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewRecordRejectCommand creates a command to record rejected pieces.
func NewRecordRejectCommand(
	runID kernel.UUID, bundleID *kernel.UUID, reasonCode string, qty int, cost *decimal.Decimal,
) (RecordRejectCommand, error) {
	cmd := RecordRejectCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setBundleID(bundleID),
		cmd.setReasonCode(reasonCode),
		cmd.setQty(qty),
		cmd.setCost(cost),
	); err != nil {
		return RecordRejectCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordRejectCommand) Validate() error {
	return c.guard.Validate(ErrRecordRejectCommandIsNotConstructed)
}

// RunID returns the run the row belongs to.
func (c RecordRejectCommand) RunID() kernel.UUID {
	return c.runID
}

// BundleID returns the attributed bundle, nil when unattributed.
func (c RecordRejectCommand) BundleID() *kernel.UUID {
	return c.bundleID
}

// ReasonCode returns the defect reason.
func (c RecordRejectCommand) ReasonCode() string {
	return c.reasonCode
}

// Qty returns the rejected piece count.
func (c RecordRejectCommand) Qty() int {
	return c.qty
}

// Cost returns the optional cost attribution.
func (c RecordRejectCommand) Cost() *decimal.Decimal {
	return c.cost
}

func (c *RecordRejectCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}

func (c *RecordRejectCommand) setBundleID(bundleID *kernel.UUID) error {
	if bundleID != nil {
		if err := bundleID.Validate(); err != nil {
			return err
		}
	}

	c.bundleID = bundleID
	return nil
}

func (c *RecordRejectCommand) setReasonCode(reasonCode string) error {
	if err := run.ValidateReasonCode(reasonCode); err != nil {
		return err
	}

	c.reasonCode = reasonCode
	return nil
}

func (c *RecordRejectCommand) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	c.qty = qty
	return nil
}

func (c *RecordRejectCommand) setCost(cost *decimal.Decimal) error {
	if cost != nil && cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("costAttribution",
			fmt.Errorf("%s is negative", cost))
	}

	c.cost = cost
	return nil
}
