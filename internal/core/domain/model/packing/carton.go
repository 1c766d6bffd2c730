package packing

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultDimDivisor is the carrier divisor for dimensional weight when the
// carrier does not specify one (cm3 to kg).
const DefaultDimDivisor = 5000

var (
	// ErrCartonIsNotConstructed indicates that the Carton was not
	// properly initialized through a constructor function.
	ErrCartonIsNotConstructed = errors.New("Carton must be created via NewCarton constructor")

	// ErrCartonIsClosed indicates a mutation was attempted on a closed carton.
	ErrCartonIsClosed = errors.New("carton is closed")

	// ErrCartonIsEmpty indicates a close was attempted without any content.
	ErrCartonIsEmpty = errors.New("carton has no content")

	// ErrUnitAlreadyInCarton indicates the finished unit already has a content
	// row in this carton.
	ErrUnitAlreadyInCarton = errors.New("finished unit is already allocated to this carton")
)

// Content is one allocation row of a carton: a finished unit with a quantity
// and the per-unit estimates captured at allocation time, so a later change
// to the unit's estimates cannot alter a closed carton's measurements.
type Content struct {
	finishedUnitID kernel.UUID
	qty            int
	unitWeightKg   decimal.Decimal
	unitVolumeCm3  decimal.Decimal
}

// NewContent creates a content row from a finished unit.
func NewContent(unit *FinishedUnit, qty int) (Content, error) {
	if err := unit.Validate(); err != nil {
		return Content{}, err
	}
	if qty <= 0 {
		return Content{}, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	return Content{
		finishedUnitID: unit.ID(),
		qty:            qty,
		unitWeightKg:   unit.WeightKg(),
		unitVolumeCm3:  unit.VolumeCm3(),
	}, nil
}

// RestoreContent reconstructs a content row from persistent storage.
func RestoreContent(
	finishedUnitID kernel.UUID, qty int, unitWeightKg, unitVolumeCm3 decimal.Decimal,
) Content {
	return Content{
		finishedUnitID: finishedUnitID,
		qty:            qty,
		unitWeightKg:   unitWeightKg,
		unitVolumeCm3:  unitVolumeCm3,
	}
}

// FinishedUnitID returns the allocated unit's identifier.
func (c Content) FinishedUnitID() kernel.UUID { return c.finishedUnitID }

// Qty returns the allocated quantity.
func (c Content) Qty() int { return c.qty }

// UnitWeightKg returns the per-unit weight estimate captured at allocation.
func (c Content) UnitWeightKg() decimal.Decimal { return c.unitWeightKg }

// UnitVolumeCm3 returns the per-unit volume estimate captured at allocation.
func (c Content) UnitVolumeCm3() decimal.Decimal { return c.unitVolumeCm3 }

// Measurements holds the figures computed once at close time.
type Measurements struct {
	ActualWeightKg decimal.Decimal
	DimWeightKg    decimal.Decimal
	FillPercent    decimal.Decimal
}

// Carton is the packing container aggregate. It accepts content rows while
// Open; Close computes actual weight, dimensional weight and fill percent
// exactly once, after which the carton is immutable.
//
// Key business rules:
//   - Content can only be added to an Open carton
//   - One content row per finished unit within a carton
//   - Closing an empty carton is rejected
//   - Fill percent is clamped to [0, 100]
type Carton struct {
	id          kernel.UUID
	workspaceID kernel.UUID
	code        string
	dimensions  kernel.Dimensions
	tareKg      decimal.Decimal
	status      Status
	contents    []Content

	measurements *Measurements
	closedAt     *time.Time

	guard kernel.ConstructorGuard
}

// NewCarton creates an open, empty carton.
func NewCarton(
	id kernel.UUID, workspaceID kernel.UUID, dimensions kernel.Dimensions, tareKg decimal.Decimal,
) (*Carton, error) {
	c := &Carton{
		status: Open,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setWorkspaceID(workspaceID),
		c.setDimensions(dimensions),
		c.setTare(tareKg),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCarton reconstructs a Carton from persistent storage, including its
// close-time measurements when already closed.
func RestoreCarton(
	id kernel.UUID, workspaceID kernel.UUID, code string,
	dimensions kernel.Dimensions, tareKg decimal.Decimal,
	status Status, contents []Content, measurements *Measurements, closedAt *time.Time,
) (*Carton, error) {
	c, err := NewCarton(id, workspaceID, dimensions, tareKg)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	c.code = code
	c.status = status
	c.contents = contents
	c.measurements = measurements
	c.closedAt = closedAt
	return c, nil
}

// Validate ensures the Carton was built through a constructor.
func (c *Carton) Validate() error {
	if c == nil {
		return ErrCartonIsNotConstructed
	}
	return c.guard.Validate(ErrCartonIsNotConstructed)
}

// IsEqual compares two cartons by their unique identifiers.
func (c *Carton) IsEqual(other *Carton) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the carton's unique identifier.
func (c *Carton) ID() kernel.UUID { return c.id }

// WorkspaceID returns the tenant the carton belongs to.
func (c *Carton) WorkspaceID() kernel.UUID { return c.workspaceID }

// Code returns the scannable carton code, empty until the carton is closed.
func (c *Carton) Code() string { return c.code }

// Dimensions returns the carton's outer dimensions.
func (c *Carton) Dimensions() kernel.Dimensions { return c.dimensions }

// TareKg returns the empty-carton weight.
func (c *Carton) TareKg() decimal.Decimal { return c.tareKg }

// Status returns the carton's lifecycle status.
func (c *Carton) Status() Status { return c.status }

// Contents returns the allocation rows in insertion order.
func (c *Carton) Contents() []Content { return c.contents }

// Measurements returns the close-time figures, nil while the carton is open.
func (c *Carton) Measurements() *Measurements { return c.measurements }

// ClosedAt returns the close timestamp, nil while the carton is open.
func (c *Carton) ClosedAt() *time.Time { return c.closedAt }

// AddContent appends an allocation row. The carton must be open and the unit
// must not already have a row in this carton; cross-carton exclusivity is
// enforced by the unit's packed flag.
func (c *Carton) AddContent(content Content) error {
	if c.status == Closed {
		return errs.NewInvalidTransitionError("carton", c.status.String(), Open.String())
	}

	for _, existing := range c.contents {
		if existing.finishedUnitID.IsEqual(content.finishedUnitID) {
			return errs.NewConflictErrorWithCause("carton", c.id, ErrUnitAlreadyInCarton)
		}
	}

	c.contents = append(c.contents, content)
	return nil
}

// Close finalizes the carton: assigns its scannable code, computes the
// measurements from the content rows and transitions to Closed.
//
//	actualWeight = tare + sum(unitWeight x qty)
//	dimWeight    = cartonVolume / dimDivisor
//	fillPercent  = min(100, usedVolume / cartonVolume x 100)
//
// The figures are computed once and never change afterwards.
func (c *Carton) Close(code string, dimDivisor int, now time.Time) error {
	if c.status == Closed {
		return errs.NewInvalidTransitionError("carton", c.status.String(), Closed.String())
	}
	if len(c.contents) == 0 {
		return ErrCartonIsEmpty
	}
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if dimDivisor <= 0 {
		dimDivisor = DefaultDimDivisor
	}

	actualWeight := c.tareKg
	usedVolume := decimal.Zero
	for _, content := range c.contents {
		qty := decimal.NewFromInt(int64(content.qty))
		actualWeight = actualWeight.Add(content.unitWeightKg.Mul(qty))
		usedVolume = usedVolume.Add(content.unitVolumeCm3.Mul(qty))
	}

	cartonVolume := c.dimensions.Volume()
	fillPercent := usedVolume.Div(cartonVolume).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if fillPercent.GreaterThan(hundred) {
		fillPercent = hundred
	}

	c.measurements = &Measurements{
		ActualWeightKg: actualWeight,
		DimWeightKg:    cartonVolume.Div(decimal.NewFromInt(int64(dimDivisor))),
		FillPercent:    fillPercent,
	}
	c.code = code
	c.status = Closed
	c.closedAt = &now
	return nil
}

func (c *Carton) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carton) setWorkspaceID(workspaceID kernel.UUID) error {
	if err := workspaceID.Validate(); err != nil {
		return err
	}
	c.workspaceID = workspaceID
	return nil
}

func (c *Carton) setDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	c.dimensions = dimensions
	return nil
}

func (c *Carton) setTare(tareKg decimal.Decimal) error {
	if tareKg.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("tareWeight",
			fmt.Errorf("%s is negative", tareKg))
	}
	c.tareKg = tareKg
	return nil
}
