package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrListMachinesQueryIsNotConstructed = errors.New(
		"ListMachinesQuery must be created via NewListMachinesQuery constructor",
	)
)

// ListMachinesQuery retrieves all machines of a workspace with their current
// occupancy, for the shop-floor overview.
type ListMachinesQuery struct {
	workspaceID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListMachinesQuery creates a query scoped to one workspace.
func NewListMachinesQuery(workspaceID kernel.UUID) (ListMachinesQuery, error) {
	if err := workspaceID.Validate(); err != nil {
		return ListMachinesQuery{}, err
	}

	return ListMachinesQuery{
		workspaceID: workspaceID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListMachinesQuery) Validate() error {
	return q.guard.Validate(ErrListMachinesQueryIsNotConstructed)
}

// WorkspaceID returns the tenant scope of the listing.
func (q ListMachinesQuery) WorkspaceID() kernel.UUID {
	return q.workspaceID
}

// ListMachinesQueryResponse is one machine with its occupancy state.
// LockedByRunID is nil for free machines.
type ListMachinesQueryResponse struct {
	ID            kernel.UUID
	Name          string
	Workcenter    string
	Stage         string
	LockedByRunID *kernel.UUID
}
