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
	ErrAppendProcessLogCommandIsNotConstructed = errors.New(
		"AppendProcessLogCommand must be created via NewAppendProcessLogCommand constructor",
	)
)

// AppendProcessLogCommand represents a request to add one process-log entry
// to a run's method record: a curing, heat-press or powder-cure reading.
type AppendProcessLogCommand struct { //nolint:recvcheck //using for validation
	runID           kernel.UUID
	kind            string
	tempC           decimal.Decimal
	durationSeconds int
	notes           string

	guard guard.ConstructorGuard
}

// NewAppendProcessLogCommand creates a command to append a process reading.
func NewAppendProcessLogCommand(
	runID kernel.UUID, kind string, tempC decimal.Decimal, durationSeconds int, notes string,
) (AppendProcessLogCommand, error) {
	cmd := AppendProcessLogCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setKind(kind),
		cmd.setDuration(durationSeconds),
	); err != nil {
		return AppendProcessLogCommand{}, err
	}

	cmd.tempC = tempC
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AppendProcessLogCommand) Validate() error {
	return c.guard.Validate(ErrAppendProcessLogCommandIsNotConstructed)
}

// RunID returns the run the reading belongs to.
func (c AppendProcessLogCommand) RunID() kernel.UUID {
	return c.runID
}

// Kind returns the reading kind.
func (c AppendProcessLogCommand) Kind() string {
	return c.kind
}

// TempC returns the recorded temperature in Celsius.
func (c AppendProcessLogCommand) TempC() decimal.Decimal {
	return c.tempC
}

// DurationSeconds returns the recorded duration.
func (c AppendProcessLogCommand) DurationSeconds() int {
	return c.durationSeconds
}

// Notes returns the operator's free-form remarks.
func (c AppendProcessLogCommand) Notes() string {
	return c.notes
}

func (c *AppendProcessLogCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	c.runID = runID
	return nil
}

func (c *AppendProcessLogCommand) setKind(kind string) error {
	switch kind {
	case run.LogCuring, run.LogHeatPress, run.LogPowderCure:
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%q is not a valid process log kind", kind))
	}

	c.kind = kind
	return nil
}

func (c *AppendProcessLogCommand) setDuration(durationSeconds int) error {
	if durationSeconds <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("durationSeconds",
			fmt.Errorf("%d is not greater than 0", durationSeconds))
	}

	c.durationSeconds = durationSeconds
	return nil
}
