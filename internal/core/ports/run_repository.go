package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
)

// RunRepository defines the persistence contract for production run
// aggregates, including their ledgers and method records.
type RunRepository interface {
	// Add persists a new run aggregate with its ledgers.
	Add(ctx context.Context, aggregate *run.Run) error

	// Update persists changes to an existing run aggregate. New ledger rows
	// and process-log entries are inserted; existing rows are never touched.
	Update(ctx context.Context, aggregate *run.Run) error

	// Get retrieves a run aggregate by its unique identifier, fully loaded
	// with outputs, rejects, materials and its method record.
	Get(ctx context.Context, id kernel.UUID) (*run.Run, error)

	// ExistsActiveForStep reports whether any run on the routing step is in a
	// non-terminal status. A step owns at most one active run per occurrence.
	ExistsActiveForStep(ctx context.Context, stepID kernel.UUID) (bool, error)
}
