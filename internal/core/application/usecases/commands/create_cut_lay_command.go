package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/cutting"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrCreateCutLayCommandIsNotConstructed = errors.New(
		"CreateCutLayCommand must be created via NewCreateCutLayCommand constructor",
	)
)

// CutOutputEntry is one per-size piece count submitted with a lay.
type CutOutputEntry struct {
	SizeCode string
	Qty      int
}

// CreateCutLayCommand represents a request to register a cut lay: one marker
// spread on a cutting table with its fabric accounting and the per-size
// pieces it yields.
type CreateCutLayCommand struct { //nolint:recvcheck //using for validation
	layID         kernel.UUID
	orderID       kernel.UUID
	markerName    string
	markerWidthCm decimal.Decimal
	layLengthM    decimal.Decimal
	plies         int
	piecesPerPly  int
	uom           string
	gross         decimal.Decimal
	offcuts       decimal.Decimal
	defects       decimal.Decimal
	outputs       []cutting.CutOutput

	guard guard.ConstructorGuard
}

// NewCreateCutLayCommand creates a command to register a cut lay. The entries
// are converted to domain outputs up front, so duplicate sizes and
// non-positive quantities are rejected before any transaction starts.
func NewCreateCutLayCommand(
	layID, orderID kernel.UUID,
	markerName string, markerWidthCm, layLengthM decimal.Decimal,
	plies, piecesPerPly int,
	uom string, gross, offcuts, defects decimal.Decimal,
	entries []CutOutputEntry,
) (CreateCutLayCommand, error) {
	cmd := CreateCutLayCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLayID(layID),
		cmd.setOrderID(orderID),
		cmd.setOutputs(entries),
	); err != nil {
		return CreateCutLayCommand{}, err
	}

	cmd.markerName = markerName
	cmd.markerWidthCm = markerWidthCm
	cmd.layLengthM = layLengthM
	cmd.plies = plies
	cmd.piecesPerPly = piecesPerPly
	cmd.uom = uom
	cmd.gross = gross
	cmd.offcuts = offcuts
	cmd.defects = defects
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCutLayCommand) Validate() error {
	return c.guard.Validate(ErrCreateCutLayCommandIsNotConstructed)
}

// LayID returns the unique identifier for the new lay.
func (c CreateCutLayCommand) LayID() kernel.UUID {
	return c.layID
}

// OrderID returns the order the lay cuts for.
func (c CreateCutLayCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MarkerName returns the marker identifier.
func (c CreateCutLayCommand) MarkerName() string {
	return c.markerName
}

// MarkerWidthCm returns the marker width in centimeters.
func (c CreateCutLayCommand) MarkerWidthCm() decimal.Decimal {
	return c.markerWidthCm
}

// LayLengthM returns the spread length in meters.
func (c CreateCutLayCommand) LayLengthM() decimal.Decimal {
	return c.layLengthM
}

// Plies returns the number of fabric layers.
func (c CreateCutLayCommand) Plies() int {
	return c.plies
}

// PiecesPerPly returns the marker's pieces per layer, zero when unknown.
func (c CreateCutLayCommand) PiecesPerPly() int {
	return c.piecesPerPly
}

// UOM returns the fabric unit of measure.
func (c CreateCutLayCommand) UOM() string {
	return c.uom
}

// Gross returns the gross fabric consumed.
func (c CreateCutLayCommand) Gross() decimal.Decimal {
	return c.gross
}

// Offcuts returns the usable remnant amount.
func (c CreateCutLayCommand) Offcuts() decimal.Decimal {
	return c.offcuts
}

// Defects returns the damaged fabric amount.
func (c CreateCutLayCommand) Defects() decimal.Decimal {
	return c.defects
}

// Outputs returns the per-size piece counts.
func (c CreateCutLayCommand) Outputs() []cutting.CutOutput {
	return c.outputs
}

func (c *CreateCutLayCommand) setLayID(layID kernel.UUID) error {
	if err := layID.Validate(); err != nil {
		return err
	}

	c.layID = layID
	return nil
}

func (c *CreateCutLayCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateCutLayCommand) setOutputs(entries []CutOutputEntry) error {
	if len(entries) == 0 {
		return errs.NewValueIsRequiredError("outputs")
	}

	outputs := make([]cutting.CutOutput, 0, len(entries))
	for _, entry := range entries {
		output, err := cutting.NewCutOutput(entry.SizeCode, entry.Qty)
		if err != nil {
			return err
		}
		outputs = append(outputs, output)
	}

	c.outputs = outputs
	return nil
}
