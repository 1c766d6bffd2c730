// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the domain model and read projections straight from the
// database for performance.
package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrReconcileRunQueryIsNotConstructed = errors.New(
		"ReconcileRunQuery must be created via NewReconcileRunQuery constructor",
	)
)

// ReconcileRunQuery retrieves the derived yield view of one run: the ledger
// totals against the planned target.
//
// Example:
//
//	query, err := NewReconcileRunQuery(runID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to reconcile run: %w", err)
//	}
//
//	fmt.Printf("yield %.2f (%d good / %d reject of %d)\n",
//	    view.Yield, view.TotalGood, view.TotalReject, view.TargetQty)
type ReconcileRunQuery struct {
	runID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReconcileRunQuery creates a query for the given run.
func NewReconcileRunQuery(runID kernel.UUID) (ReconcileRunQuery, error) {
	if err := runID.Validate(); err != nil {
		return ReconcileRunQuery{}, err
	}

	return ReconcileRunQuery{
		runID: runID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ReconcileRunQuery) Validate() error {
	return q.guard.Validate(ErrReconcileRunQueryIsNotConstructed)
}

// RunID returns the run to reconcile.
func (q ReconcileRunQuery) RunID() kernel.UUID {
	return q.runID
}

// ReconcileRunQueryResponse is the derived yield view. Totals are computed
// from the ledger rows at read time, never stored.
type ReconcileRunQueryResponse struct {
	RunID       kernel.UUID
	Status      string
	TargetQty   int
	TotalGood   int
	TotalReject int
	Yield       float64
}
