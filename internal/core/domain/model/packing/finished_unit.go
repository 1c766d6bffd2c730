package packing

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrFinishedUnitIsNotConstructed indicates that the FinishedUnit was not
	// properly initialized through a constructor function.
	ErrFinishedUnitIsNotConstructed = errors.New("FinishedUnit must be created via NewFinishedUnit constructor")

	// ErrUnitIsAlreadyPacked indicates the unit is already allocated to a carton.
	ErrUnitIsAlreadyPacked = errors.New("finished unit is already packed")
)

// FinishedUnit is one physical garment unit produced by a finishing run.
// A unit can be allocated to at most one carton; the persistence layer
// enforces the same rule with a conditional update on the packed flag.
type FinishedUnit struct {
	id          kernel.UUID
	workspaceID kernel.UUID
	orderID     kernel.UUID
	runID       kernel.UUID
	sku         string
	sizeCode    string
	weightKg    decimal.Decimal
	volumeCm3   decimal.Decimal
	packed      bool

	guard kernel.ConstructorGuard
}

// NewFinishedUnit creates an unpacked unit with its weight and volume
// estimates used later for carton reconciliation.
func NewFinishedUnit(
	id kernel.UUID, workspaceID kernel.UUID, orderID kernel.UUID, runID kernel.UUID,
	sku, sizeCode string, weightKg, volumeCm3 decimal.Decimal,
) (*FinishedUnit, error) {
	u := &FinishedUnit{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setWorkspaceID(workspaceID),
		u.setOrderID(orderID),
		u.setRunID(runID),
		u.setSKU(sku),
		u.setSizeCode(sizeCode),
		u.setEstimates(weightKg, volumeCm3),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreFinishedUnit reconstructs a FinishedUnit from persistent storage.
func RestoreFinishedUnit(
	id kernel.UUID, workspaceID kernel.UUID, orderID kernel.UUID, runID kernel.UUID,
	sku, sizeCode string, weightKg, volumeCm3 decimal.Decimal, packed bool,
) (*FinishedUnit, error) {
	u, err := NewFinishedUnit(id, workspaceID, orderID, runID, sku, sizeCode, weightKg, volumeCm3)
	if err != nil {
		return nil, err
	}

	u.packed = packed
	return u, nil
}

// Validate ensures the FinishedUnit was built through a constructor.
func (u *FinishedUnit) Validate() error {
	if u == nil {
		return ErrFinishedUnitIsNotConstructed
	}
	return u.guard.Validate(ErrFinishedUnitIsNotConstructed)
}

// IsEqual compares two units by their unique identifiers.
func (u *FinishedUnit) IsEqual(other *FinishedUnit) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the unit's unique identifier.
func (u *FinishedUnit) ID() kernel.UUID { return u.id }

// WorkspaceID returns the tenant the unit belongs to.
func (u *FinishedUnit) WorkspaceID() kernel.UUID { return u.workspaceID }

// OrderID returns the order the unit was produced for.
func (u *FinishedUnit) OrderID() kernel.UUID { return u.orderID }

// RunID returns the finishing run that produced the unit.
func (u *FinishedUnit) RunID() kernel.UUID { return u.runID }

// SKU returns the stock keeping unit of the garment.
func (u *FinishedUnit) SKU() string { return u.sku }

// SizeCode returns the garment size.
func (u *FinishedUnit) SizeCode() string { return u.sizeCode }

// WeightKg returns the per-unit weight estimate.
func (u *FinishedUnit) WeightKg() decimal.Decimal { return u.weightKg }

// VolumeCm3 returns the per-unit volume estimate.
func (u *FinishedUnit) VolumeCm3() decimal.Decimal { return u.volumeCm3 }

// IsPacked reports whether the unit is allocated to a carton.
func (u *FinishedUnit) IsPacked() bool { return u.packed }

// MarkPacked allocates the unit to a carton. A second allocation fails with
// a ConflictError wrapping ErrUnitIsAlreadyPacked.
func (u *FinishedUnit) MarkPacked() error {
	if u.packed {
		return errs.NewConflictErrorWithCause("finished unit", u.id, ErrUnitIsAlreadyPacked)
	}

	u.packed = true
	return nil
}

func (u *FinishedUnit) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *FinishedUnit) setWorkspaceID(workspaceID kernel.UUID) error {
	if err := workspaceID.Validate(); err != nil {
		return err
	}
	u.workspaceID = workspaceID
	return nil
}

func (u *FinishedUnit) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	u.orderID = orderID
	return nil
}

func (u *FinishedUnit) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}
	u.runID = runID
	return nil
}

func (u *FinishedUnit) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	u.sku = sku
	return nil
}

func (u *FinishedUnit) setSizeCode(sizeCode string) error {
	if sizeCode == "" {
		return errs.NewValueIsRequiredError("sizeCode")
	}
	u.sizeCode = sizeCode
	return nil
}

func (u *FinishedUnit) setEstimates(weightKg, volumeCm3 decimal.Decimal) error {
	if weightKg.IsNegative() || volumeCm3.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("estimates",
			fmt.Errorf("weight %s and volume %s must be non-negative", weightKg, volumeCm3))
	}
	u.weightKg = weightKg
	u.volumeCm3 = volumeCm3
	return nil
}
