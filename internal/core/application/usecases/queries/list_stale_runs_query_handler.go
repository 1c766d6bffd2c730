package queries

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
)

// ListStaleRunsQueryHandler processes stale-run queries against the read
// model.
type ListStaleRunsQueryHandler struct {
	db *gorm.DB
}

// NewListStaleRunsQueryHandler creates a handler with the database
// connection.
func NewListStaleRunsQueryHandler(db *gorm.DB) ListStaleRunsQueryHandler {
	return ListStaleRunsQueryHandler{db: db}
}

// Handle executes the query. The cutoff is computed here so the SQL stays a
// plain comparison.
func (h ListStaleRunsQueryHandler) Handle(
	ctx context.Context,
	query ListStaleRunsQuery,
) ([]ListStaleRunsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-query.OlderThan())
	staleRuns := make([]ListStaleRunsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			machine_id,
			stage,
			started_at
		FROM runs
		WHERE status = ? AND started_at < ?
		ORDER BY started_at
	`, run.InProgress.String(), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r ListStaleRunsQueryResponse
		var id string
		var machineID sql.NullString

		if err = rows.Scan(&id, &machineID, &r.Stage, &r.StartedAt); err != nil {
			return nil, err
		}

		if r.RunID, err = kernel.UUIDFromString(id); err != nil {
			return nil, err
		}
		if machineID.Valid {
			parsed, parseErr := kernel.UUIDFromString(machineID.String)
			if parseErr != nil {
				return nil, parseErr
			}
			r.MachineID = &parsed
		}

		staleRuns = append(staleRuns, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return staleRuns, nil
}
