package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var (
	ErrGetRunDetailsQueryIsNotConstructed = errors.New(
		"GetRunDetailsQuery must be created via NewGetRunDetailsQuery constructor",
	)
)

// GetRunDetailsQuery retrieves the full read view of one run: base fields,
// ledger totals and the method-specific record with its process log when the
// run carries one.
type GetRunDetailsQuery struct {
	runID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRunDetailsQuery creates a query for the given run.
func NewGetRunDetailsQuery(runID kernel.UUID) (GetRunDetailsQuery, error) {
	if err := runID.Validate(); err != nil {
		return GetRunDetailsQuery{}, err
	}

	return GetRunDetailsQuery{
		runID: runID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRunDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetRunDetailsQueryIsNotConstructed)
}

// RunID returns the run to read.
func (q GetRunDetailsQuery) RunID() kernel.UUID {
	return q.runID
}

// ProcessLogEntryView is one process reading in the details response.
type ProcessLogEntryView struct {
	Kind            string
	TempC           decimal.Decimal
	DurationSeconds int
	Notes           string
	LoggedAt        time.Time
}

// MethodRecordView is the method-specific part of the details response.
// Payload carries the variant's parameters as stored, keyed by the Method tag.
type MethodRecordView struct {
	Method     string
	Payload    []byte
	ProcessLog []ProcessLogEntryView
}

// GetRunDetailsQueryResponse is the merged read view of a run. Record is nil
// for runs whose method carries no record.
type GetRunDetailsQueryResponse struct {
	RunID        kernel.UUID
	OrderID      kernel.UUID
	StepID       kernel.UUID
	Stage        string
	Method       string
	MachineID    *kernel.UUID
	Status       string
	TargetQty    int
	StartedAt    *time.Time
	EndedAt      *time.Time
	CancelReason string
	TotalGood    int
	TotalReject  int
	Yield        float64
	Record       *MethodRecordView
}
