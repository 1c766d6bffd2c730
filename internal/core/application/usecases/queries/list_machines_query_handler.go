package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"production/internal/core/domain/model/kernel"
)

// ListMachinesQueryHandler retrieves machine occupancy from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type ListMachinesQueryHandler struct {
	db *gorm.DB
}

// NewListMachinesQueryHandler creates a handler for machine listing queries.
// Requires a GORM database connection for query execution.
func NewListMachinesQueryHandler(db *gorm.DB) ListMachinesQueryHandler {
	return ListMachinesQueryHandler{db: db}
}

// Handle executes the listing query. Results are sorted by workcenter and
// name for stable shop-floor display.
func (h ListMachinesQueryHandler) Handle(
	ctx context.Context,
	query ListMachinesQuery,
) ([]ListMachinesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	machines := make([]ListMachinesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			workcenter,
			stage,
			locked_by_run_id
		FROM machines
		WHERE workspace_id = ?
		ORDER BY workcenter, name
	`, query.WorkspaceID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m ListMachinesQueryResponse
		var id string
		var lockedBy sql.NullString

		if err = rows.Scan(&id, &m.Name, &m.Workcenter, &m.Stage, &lockedBy); err != nil {
			return nil, err
		}

		if m.ID, err = kernel.UUIDFromString(id); err != nil {
			return nil, err
		}

		if lockedBy.Valid {
			runID, idErr := kernel.UUIDFromString(lockedBy.String)
			if idErr != nil {
				return nil, idErr
			}
			m.LockedByRunID = &runID
		}

		machines = append(machines, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return machines, nil
}
