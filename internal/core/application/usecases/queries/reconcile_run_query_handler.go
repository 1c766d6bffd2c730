package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"production/internal/pkg/errs"
)

// ReconcileRunQueryHandler computes the yield view of a run straight from the
// ledger tables. Output rows contribute both good and reject counts; reject
// rows contribute reject counts only.
type ReconcileRunQueryHandler struct {
	db *gorm.DB
}

// NewReconcileRunQueryHandler creates a handler for reconciliation queries.
// Requires a GORM database connection for query execution.
func NewReconcileRunQueryHandler(db *gorm.DB) ReconcileRunQueryHandler {
	return ReconcileRunQueryHandler{db: db}
}

// Handle executes the reconciliation query. Yield is good over good plus
// reject, zero when the ledger is empty.
func (h ReconcileRunQueryHandler) Handle(
	ctx context.Context,
	query ReconcileRunQuery,
) (ReconcileRunQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ReconcileRunQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			r.status,
			r.target_qty,
			COALESCE((SELECT SUM(o.qty_good) FROM run_outputs o WHERE o.run_id = r.id), 0),
			COALESCE((SELECT SUM(o.qty_reject) FROM run_outputs o WHERE o.run_id = r.id), 0)
				+ COALESCE((SELECT SUM(j.qty) FROM run_rejects j WHERE j.run_id = r.id), 0)
		FROM runs r
		WHERE r.id = ?
	`, query.RunID().String()).Row()

	resp := ReconcileRunQueryResponse{RunID: query.RunID()}
	err := row.Scan(&resp.Status, &resp.TargetQty, &resp.TotalGood, &resp.TotalReject)
	if errors.Is(err, sql.ErrNoRows) {
		return ReconcileRunQueryResponse{}, errs.NewObjectNotFoundError("run", query.RunID())
	}
	if err != nil {
		return ReconcileRunQueryResponse{}, err
	}

	if total := resp.TotalGood + resp.TotalReject; total > 0 {
		resp.Yield = float64(resp.TotalGood) / float64(total)
	}

	return resp, nil
}
