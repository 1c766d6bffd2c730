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
	ErrCompleteRunCommandIsNotConstructed = errors.New(
		"CompleteRunCommand must be created via NewCompleteRunCommand constructor",
	)
)

// FinalOutput is one output row submitted together with run completion.
type FinalOutput struct {
	BundleID  *kernel.UUID
	QtyGood   int
	QtyReject int
	Notes     string
}

// FinalReject is one reject row submitted together with run completion.
type FinalReject struct {
	BundleID   *kernel.UUID
	ReasonCode string
	Qty        int
	Cost       *decimal.Decimal
}

// CompleteRunCommand represents a request to finish a run, optionally
// appending final output and reject rows in the same atomic step. The rows
// count against the run's target exactly like ones recorded earlier.
type CompleteRunCommand struct { //nolint:recvcheck //using for validation
	runID        kernel.UUID
	finalOutputs []FinalOutput
	finalRejects []FinalReject

	guard guard.ConstructorGuard
}

// NewCompleteRunCommand creates a command to complete the given run.
// Both entry slices may be empty.
func NewCompleteRunCommand(
	runID kernel.UUID, finalOutputs []FinalOutput, finalRejects []FinalReject,
) (CompleteRunCommand, error) {
	cmd := CompleteRunCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setFinalOutputs(finalOutputs),
		cmd.setFinalRejects(finalRejects),
	); err != nil {
		return CompleteRunCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteRunCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRunCommandIsNotConstructed)
}

// RunID returns the run to complete.
func (c CompleteRunCommand) RunID() kernel.UUID {
	return c.runID
}

// FinalOutputs returns the output rows submitted with the completion.
func (c CompleteRunCommand) FinalOutputs() []FinalOutput {
	return c.finalOutputs
}

// FinalRejects returns the reject rows submitted with the completion.
func (c CompleteRunCommand) FinalRejects() []FinalReject {
	return c.finalRejects
}

func (c *CompleteRunCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}

func (c *CompleteRunCommand) setFinalOutputs(finalOutputs []FinalOutput) error {
	for i, entry := range finalOutputs {
		if entry.QtyGood < 0 || entry.QtyReject < 0 {
			return errs.NewValueIsInvalidErrorWithCause("finalOutputs",
				fmt.Errorf("entry %d has negative quantities", i))
		}
		if entry.QtyGood == 0 && entry.QtyReject == 0 {
			return errs.NewValueIsInvalidErrorWithCause("finalOutputs",
				fmt.Errorf("entry %d has no quantity", i))
		}
	}

	c.finalOutputs = finalOutputs
	return nil
}

func (c *CompleteRunCommand) setFinalRejects(finalRejects []FinalReject) error {
	for i, entry := range finalRejects {
		if err := run.ValidateReasonCode(entry.ReasonCode); err != nil {
			return err
		}
		if entry.Qty <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("finalRejects",
				fmt.Errorf("entry %d has no quantity", i))
		}
	}

	c.finalRejects = finalRejects
	return nil
}
