package services

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
)

// MethodRegistry is a domain service that manages the method-specific
// sub-record of production runs: creating the right variant for the run's
// method, appending process-log entries and producing the merged detail view.
//
// Business rules:
//   - Initialization happens at most once per run; repeated calls are no-ops
//   - Runs whose method carries no record are left untouched
//   - Log entries are append-only
type MethodRegistry struct{}

// NewMethodRegistry creates a new MethodRegistry instance.
func NewMethodRegistry() MethodRegistry {
	return MethodRegistry{}
}

// Initialize attaches the default record variant for the run's method.
// Idempotent: a run that already has its record keeps it; a run whose method
// takes no record is a no-op, not an error.
func (r MethodRegistry) Initialize(productionRun *run.Run) error {
	if err := productionRun.Validate(); err != nil {
		return err
	}

	if !productionRun.Method().RequiresRecord() || productionRun.MethodRecord() != nil {
		return nil
	}

	record, err := run.NewMethodRecord(kernel.NewUUID(), productionRun.Method())
	if err != nil {
		return err
	}

	return productionRun.AttachMethodRecord(record)
}

// AppendLog appends an immutable process-log entry to the run's record.
// The run must own a record (initialized on its first start).
func (r MethodRegistry) AppendLog(productionRun *run.Run, entry run.ProcessLogEntry) error {
	if err := productionRun.Validate(); err != nil {
		return err
	}

	record := productionRun.MethodRecord()
	if record == nil {
		return run.ErrRunHasNoMethodRecord
	}

	record.AppendLog(entry)
	return nil
}

// RunDetails is the merged read view of a run: base fields, reconciled yield
// and the method record with its process log when the run carries one.
type RunDetails struct {
	Run            *run.Run
	Reconciliation run.Reconciliation
	Record         *run.MethodRecord
	ProcessLog     []run.ProcessLogEntry
}

// Details builds the merged view selected by the run's method tag.
func (r MethodRegistry) Details(productionRun *run.Run) (RunDetails, error) {
	if err := productionRun.Validate(); err != nil {
		return RunDetails{}, err
	}

	details := RunDetails{
		Run:            productionRun,
		Reconciliation: productionRun.Reconcile(),
	}

	if record := productionRun.MethodRecord(); record != nil {
		details.Record = record
		details.ProcessLog = record.Logs()
	}

	return details, nil
}
