package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/machine"
)

// MachineRepository defines the persistence contract for machine aggregates
// and the occupancy lock.
type MachineRepository interface {
	// Add persists a new machine aggregate.
	Add(ctx context.Context, aggregate *machine.Machine) error

	// Get retrieves a machine aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error)

	// Acquire locks the machine for the run with a single atomic
	// compare-and-set: it succeeds only when the machine is free or already
	// held by the same run. Two concurrent calls for the same machine cannot
	// both succeed; the loser receives a ConflictError wrapping
	// machine.ErrMachineIsBusy.
	Acquire(ctx context.Context, machineID kernel.UUID, runID kernel.UUID) error

	// Release clears the lock held by the run. Releasing a machine the run
	// does not hold fails with machine.ErrMachineNotLockedByRun.
	Release(ctx context.Context, machineID kernel.UUID, runID kernel.UUID) error
}
