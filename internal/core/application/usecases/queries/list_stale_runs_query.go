package queries

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrListStaleRunsQueryIsNotConstructed = errors.New(
		"ListStaleRunsQuery must be created via NewListStaleRunsQuery constructor",
	)
)

// ListStaleRunsQuery finds runs that have been in progress longer than a
// threshold. The watchdog uses it to flag runs the floor forgot to complete
// or pause; machines held by such runs block their workcenter.
type ListStaleRunsQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewListStaleRunsQuery creates a query for runs in progress longer than the
// given duration.
func NewListStaleRunsQuery(olderThan time.Duration) (ListStaleRunsQuery, error) {
	if olderThan <= 0 {
		return ListStaleRunsQuery{}, errs.NewValueIsInvalidErrorWithCause("olderThan",
			fmt.Errorf("%s is not greater than 0", olderThan))
	}

	return ListStaleRunsQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListStaleRunsQuery) Validate() error {
	return q.guard.Validate(ErrListStaleRunsQueryIsNotConstructed)
}

// OlderThan returns the staleness threshold.
func (q ListStaleRunsQuery) OlderThan() time.Duration {
	return q.olderThan
}

// ListStaleRunsQueryResponse is one run that exceeded the threshold.
type ListStaleRunsQueryResponse struct {
	RunID     kernel.UUID
	MachineID *kernel.UUID
	Stage     string
	StartedAt time.Time
}
