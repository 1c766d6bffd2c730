package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/packing"
)

// PackingRepository defines the persistence contract for cartons and
// finished units.
type PackingRepository interface {
	// AddCarton persists a new carton aggregate.
	AddCarton(ctx context.Context, aggregate *packing.Carton) error

	// UpdateCarton persists carton changes, including close-time measurements.
	UpdateCarton(ctx context.Context, aggregate *packing.Carton) error

	// GetCarton retrieves a carton with its contents.
	GetCarton(ctx context.Context, id kernel.UUID) (*packing.Carton, error)

	// AddFinishedUnits persists a batch of finished units in one transaction.
	AddFinishedUnits(ctx context.Context, units []*packing.FinishedUnit) error

	// GetFinishedUnit retrieves a finished unit by its unique identifier.
	GetFinishedUnit(ctx context.Context, id kernel.UUID) (*packing.FinishedUnit, error)

	// AllocateFinishedUnit flips the unit's packed flag with a conditional
	// update on packed = false, so a unit can never land in two cartons.
	// A unit that is already packed yields a ConflictError wrapping
	// packing.ErrUnitIsAlreadyPacked.
	AllocateFinishedUnit(ctx context.Context, unitID kernel.UUID) error
}
