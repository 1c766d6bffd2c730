package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// GetRunDetailsQueryHandler reads the merged run view: the base row, ledger
// totals and, for printing runs, the method record with its process log.
type GetRunDetailsQueryHandler struct {
	db *gorm.DB
}

// NewGetRunDetailsQueryHandler creates a handler for run detail queries.
// Requires a GORM database connection for query execution.
func NewGetRunDetailsQueryHandler(db *gorm.DB) GetRunDetailsQueryHandler {
	return GetRunDetailsQueryHandler{db: db}
}

// Handle executes the details query.
func (h GetRunDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetRunDetailsQuery,
) (GetRunDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRunDetailsQueryResponse{}, err
	}

	runID := query.RunID().String()

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			r.order_id,
			r.step_id,
			r.stage,
			r.method,
			r.machine_id,
			r.status,
			r.target_qty,
			r.started_at,
			r.ended_at,
			r.cancel_reason,
			COALESCE((SELECT SUM(o.qty_good) FROM run_outputs o WHERE o.run_id = r.id), 0),
			COALESCE((SELECT SUM(o.qty_reject) FROM run_outputs o WHERE o.run_id = r.id), 0)
				+ COALESCE((SELECT SUM(j.qty) FROM run_rejects j WHERE j.run_id = r.id), 0)
		FROM runs r
		WHERE r.id = ?
	`, runID).Row()

	var resp GetRunDetailsQueryResponse
	var orderID, stepID string
	var machineID sql.NullString

	err := row.Scan(
		&orderID,
		&stepID,
		&resp.Stage,
		&resp.Method,
		&machineID,
		&resp.Status,
		&resp.TargetQty,
		&resp.StartedAt,
		&resp.EndedAt,
		&resp.CancelReason,
		&resp.TotalGood,
		&resp.TotalReject,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetRunDetailsQueryResponse{}, errs.NewObjectNotFoundError("run", query.RunID())
	}
	if err != nil {
		return GetRunDetailsQueryResponse{}, err
	}

	resp.RunID = query.RunID()
	if resp.OrderID, err = kernel.UUIDFromString(orderID); err != nil {
		return GetRunDetailsQueryResponse{}, err
	}
	if resp.StepID, err = kernel.UUIDFromString(stepID); err != nil {
		return GetRunDetailsQueryResponse{}, err
	}
	if machineID.Valid {
		parsed, parseErr := kernel.UUIDFromString(machineID.String)
		if parseErr != nil {
			return GetRunDetailsQueryResponse{}, parseErr
		}
		resp.MachineID = &parsed
	}

	if total := resp.TotalGood + resp.TotalReject; total > 0 {
		resp.Yield = float64(resp.TotalGood) / float64(total)
	}

	record, err := h.loadRecord(ctx, runID)
	if err != nil {
		return GetRunDetailsQueryResponse{}, err
	}
	resp.Record = record

	return resp, nil
}

func (h GetRunDetailsQueryHandler) loadRecord(
	ctx context.Context, runID string,
) (*MethodRecordView, error) {
	var record MethodRecordView
	var recordID string

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, method, payload
		FROM method_records
		WHERE run_id = ?
	`, runID).Row()

	err := row.Scan(&recordID, &record.Method, &record.Payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT kind, temp_c, duration_seconds, notes, logged_at
		FROM process_log_entries
		WHERE record_id = ?
		ORDER BY logged_at, id
	`, recordID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry ProcessLogEntryView
		if err = rows.Scan(
			&entry.Kind, &entry.TempC, &entry.DurationSeconds, &entry.Notes, &entry.LoggedAt,
		); err != nil {
			return nil, err
		}
		record.ProcessLog = append(record.ProcessLog, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &record, nil
}
