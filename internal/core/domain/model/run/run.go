package run

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

var (
	// ErrRunIsNotConstructed is returned when a Run instance was not created through
	// the NewRun or RestoreRun factory methods.
	ErrRunIsNotConstructed = errors.New("Run must be created via NewRun or RestoreRun constructor")

	// ErrRunHasNoMethodRecord is returned when a method-specific operation is
	// attempted on a run whose stage carries no print method.
	ErrRunHasNoMethodRecord = errors.New("run method does not carry a method record")
)

// Run is the production run aggregate root. A run executes one routing step of
// an order, optionally on a bound machine, carries an append-only ledger of
// output, reject and material rows, and owns its lifecycle state machine.
//
// Run maintains these invariants:
//   - The method matches the routing stage (print stages require a print
//     method, all other stages forbid one)
//   - Target quantity is positive
//   - Ledger rows can only be appended while the run is in progress
//   - Total good plus total reject never exceeds the target quantity
//   - startedAt is set on the first start only and never moves on resume
//   - Done and Cancelled are terminal
//
// All mutation goes through validated methods; the struct's private fields
// cannot be set from outside the package.
type Run struct {
	id          kernel.UUID
	workspaceID kernel.UUID
	orderID     kernel.UUID
	stepID      kernel.UUID
	stage       order.Stage
	method      Method
	machineID   *kernel.UUID
	operatorID  *kernel.UUID
	targetQty   int
	status      Status

	startedAt    *time.Time
	endedAt      *time.Time
	cancelReason string

	outputs   []Output
	rejects   []Reject
	materials []MaterialLog
	record    *MethodRecord

	events []DomainEvent

	isConstructed bool
}

// NewRun creates a run in Created status bound to an order's routing step,
// optionally bound to a machine. The method must agree with the step's stage
// and the target quantity must be positive.
//
// Example:
//
//	r, err := NewRun(kernel.NewUUID(), workspaceID, orderID, stepID,
//	    order.Printing, run.Silkscreen, &machineID, nil, 120)
//	if err != nil {
//	    // handle validation error
//	}
func NewRun(
	id kernel.UUID,
	workspaceID kernel.UUID,
	orderID kernel.UUID,
	stepID kernel.UUID,
	stage order.Stage,
	method Method,
	machineID *kernel.UUID,
	operatorID *kernel.UUID,
	targetQty int,
) (*Run, error) {
	r := &Run{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setWorkspaceID(workspaceID),
		r.setOrderID(orderID),
		r.setStepID(stepID),
		r.setStage(stage),
		r.setMachineID(machineID),
		r.setOperatorID(operatorID),
		r.setTargetQty(targetQty),
	); err != nil {
		return nil, err
	}

	if err := r.setMethod(method); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRun reconstructs a run from persistence without re-running creation
// rules. Callers are expected to pass values that were valid when stored.
func RestoreRun(
	id kernel.UUID,
	workspaceID kernel.UUID,
	orderID kernel.UUID,
	stepID kernel.UUID,
	stage order.Stage,
	method Method,
	machineID *kernel.UUID,
	operatorID *kernel.UUID,
	targetQty int,
	status Status,
	startedAt *time.Time,
	endedAt *time.Time,
	cancelReason string,
	outputs []Output,
	rejects []Reject,
	materials []MaterialLog,
	record *MethodRecord,
) *Run {
	return &Run{
		id:            id,
		workspaceID:   workspaceID,
		orderID:       orderID,
		stepID:        stepID,
		stage:         stage,
		method:        method,
		machineID:     machineID,
		operatorID:    operatorID,
		targetQty:     targetQty,
		status:        status,
		startedAt:     startedAt,
		endedAt:       endedAt,
		cancelReason:  cancelReason,
		outputs:       outputs,
		rejects:       rejects,
		materials:     materials,
		record:        record,
		isConstructed: true,
	}
}

// Validate ensures the Run instance was properly constructed through one of
// the factory methods.
func (r *Run) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRunIsNotConstructed
	}

	return nil
}

// IsEqual compares two runs by their unique identifiers.
func (r *Run) IsEqual(other *Run) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the run's unique identifier.
func (r *Run) ID() kernel.UUID {
	return r.id
}

// WorkspaceID returns the tenant the run belongs to.
func (r *Run) WorkspaceID() kernel.UUID {
	return r.workspaceID
}

// OrderID returns the order the run produces for.
func (r *Run) OrderID() kernel.UUID {
	return r.orderID
}

// StepID returns the routing step the run executes.
func (r *Run) StepID() kernel.UUID {
	return r.stepID
}

// Stage returns the routing stage of the run's step.
func (r *Run) Stage() order.Stage {
	return r.stage
}

// Method returns the print method, NoMethod for non-print stages.
func (r *Run) Method() Method {
	return r.method
}

// MachineID returns the machine the run occupies while in progress, nil when
// the run is not bound to a machine.
func (r *Run) MachineID() *kernel.UUID {
	return r.machineID
}

// OperatorID returns the assigned operator, nil when unassigned.
func (r *Run) OperatorID() *kernel.UUID {
	return r.operatorID
}

// TargetQty returns the planned piece count for the run.
func (r *Run) TargetQty() int {
	return r.targetQty
}

// Status returns the current lifecycle status.
func (r *Run) Status() Status {
	return r.status
}

// StartedAt returns the time of the first start, nil before any start.
func (r *Run) StartedAt() *time.Time {
	return r.startedAt
}

// EndedAt returns the completion or cancellation time, nil while active.
func (r *Run) EndedAt() *time.Time {
	return r.endedAt
}

// CancelReason returns the operator-supplied reason, empty unless cancelled.
func (r *Run) CancelReason() string {
	return r.cancelReason
}

// Outputs returns the run's output ledger rows in append order.
func (r *Run) Outputs() []Output {
	return r.outputs
}

// Rejects returns the run's reject ledger rows in append order.
func (r *Run) Rejects() []Reject {
	return r.rejects
}

// Materials returns the run's material-consumption rows in append order.
func (r *Run) Materials() []MaterialLog {
	return r.materials
}

// MethodRecord returns the method-specific record, nil for runs whose method
// carries none.
func (r *Run) MethodRecord() *MethodRecord {
	return r.record
}

// Start transitions the run to InProgress. The first start stamps startedAt;
// resuming from Paused keeps the original timestamp.
//
// Machine occupancy is acquired by the caller in the same transaction, so a
// successful Start and a free machine commit or roll back together.
func (r *Run) Start(now time.Time) error {
	newStatus, err := r.status.Start()
	if err != nil {
		return err
	}

	r.status = newStatus
	if r.startedAt == nil {
		r.startedAt = &now
	}
	return nil
}

// Pause transitions the run from InProgress to Paused. The machine is
// released by the caller in the same transaction.
func (r *Run) Pause() error {
	newStatus, err := r.status.Pause()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// RecordOutput appends an output row to the ledger. The run must be in
// progress and the row must not push good plus reject totals past the target.
func (r *Run) RecordOutput(output Output) error {
	if err := r.ensureInProgress(); err != nil {
		return err
	}
	if err := r.ensureWithinTarget(output.QtyGood()+output.QtyReject(), "output"); err != nil {
		return err
	}

	r.outputs = append(r.outputs, output)
	return nil
}

// RecordReject appends a reject row to the ledger under the same state and
// conservation rules as RecordOutput.
func (r *Run) RecordReject(reject Reject) error {
	if err := r.ensureInProgress(); err != nil {
		return err
	}
	if err := r.ensureWithinTarget(reject.Qty(), "reject"); err != nil {
		return err
	}

	r.rejects = append(r.rejects, reject)
	return nil
}

// RecordMaterial appends a material-consumption row. Material rows are not
// bounded by the target quantity, but still require the run to be in progress.
func (r *Run) RecordMaterial(material MaterialLog) error {
	if err := r.ensureInProgress(); err != nil {
		return err
	}

	r.materials = append(r.materials, material)
	return nil
}

// AttachMethodRecord binds a method record to the run. The record's method
// must match the run's, and attaching is idempotent: a run that already has
// its record keeps it unchanged.
func (r *Run) AttachMethodRecord(record *MethodRecord) error {
	if !r.method.RequiresRecord() {
		return ErrRunHasNoMethodRecord
	}
	if r.record != nil {
		return nil
	}
	if err := record.Validate(); err != nil {
		return err
	}
	if record.Method() != r.method {
		return errs.NewValueIsInvalidErrorWithCause("record",
			fmt.Errorf("record method %s does not match run method %s", record.Method(), r.method))
	}

	r.record = record
	return nil
}

// Complete transitions the run to Done. Final output and reject rows are
// appended atomically with the transition: if any of them would break the
// conservation bound, nothing is appended and the run stays in progress.
//
// On success endedAt is stamped and a RunCompleted event is raised.
func (r *Run) Complete(finalOutputs []Output, finalRejects []Reject, now time.Time) error {
	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}

	extra := 0
	for _, o := range finalOutputs {
		extra += o.QtyGood() + o.QtyReject()
	}
	for _, rj := range finalRejects {
		extra += rj.Qty()
	}
	if err := r.ensureWithinTarget(extra, "completion"); err != nil {
		return err
	}

	r.outputs = append(r.outputs, finalOutputs...)
	r.rejects = append(r.rejects, finalRejects...)
	r.status = newStatus
	r.endedAt = &now

	rec := r.Reconcile()
	r.raise(RunCompleted{
		RunID:       r.id,
		OrderID:     r.orderID,
		StepID:      r.stepID,
		Stage:       r.stage,
		TotalGood:   rec.TotalGood,
		TotalReject: rec.TotalReject,
	})
	return nil
}

// Cancel transitions the run to Cancelled from any non-terminal status and
// stamps endedAt. Ledger rows recorded so far are kept for reconciliation.
func (r *Run) Cancel(reason string, now time.Time) error {
	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.cancelReason = reason
	r.endedAt = &now
	return nil
}

// Reconcile derives the yield view from the ledger. The view is computed,
// never stored, so it cannot drift from the rows it summarizes.
//
// Yield is good over good plus reject, zero when nothing was recorded.
func (r *Run) Reconcile() Reconciliation {
	totalGood := 0
	totalReject := 0
	for _, o := range r.outputs {
		totalGood += o.QtyGood()
		totalReject += o.QtyReject()
	}
	for _, rj := range r.rejects {
		totalReject += rj.Qty()
	}

	yield := 0.0
	if totalGood+totalReject > 0 {
		yield = float64(totalGood) / float64(totalGood+totalReject)
	}

	return Reconciliation{
		TotalGood:   totalGood,
		TotalReject: totalReject,
		Yield:       yield,
	}
}

// GetDomainEvents returns events raised since the last clear.
func (r *Run) GetDomainEvents() []DomainEvent {
	return r.events
}

// ClearDomainEvents drops raised events after they have been published.
func (r *Run) ClearDomainEvents() {
	r.events = nil
}

func (r *Run) raise(event DomainEvent) {
	r.events = append(r.events, event)
}

func (r *Run) ensureInProgress() error {
	if r.status != InProgress {
		return errs.NewInvalidTransitionError("run", r.status.String(), InProgress.String())
	}
	return nil
}

// ensureWithinTarget enforces the conservation bound: recorded good plus
// reject totals, including the candidate quantity, must not exceed the target.
func (r *Run) ensureWithinTarget(qty int, paramName string) error {
	rec := r.Reconcile()
	total := rec.TotalGood + rec.TotalReject + qty
	if total > r.targetQty {
		return errs.NewQuantityExceededError(paramName, total, r.targetQty)
	}
	return nil
}

func (r *Run) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Run) setWorkspaceID(workspaceID kernel.UUID) error {
	if err := workspaceID.Validate(); err != nil {
		return err
	}
	r.workspaceID = workspaceID
	return nil
}

func (r *Run) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Run) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	r.stepID = stepID
	return nil
}

func (r *Run) setStage(stage order.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	r.stage = stage
	return nil
}

// setMethod runs after setStage: method validity depends on the stage.
func (r *Run) setMethod(method Method) error {
	if err := method.ValidForStage(r.stage); err != nil {
		return err
	}
	r.method = method
	return nil
}

func (r *Run) setMachineID(machineID *kernel.UUID) error {
	if machineID != nil {
		if err := machineID.Validate(); err != nil {
			return err
		}
	}
	r.machineID = machineID
	return nil
}

func (r *Run) setOperatorID(operatorID *kernel.UUID) error {
	if operatorID != nil {
		if err := operatorID.Validate(); err != nil {
			return err
		}
	}
	r.operatorID = operatorID
	return nil
}

func (r *Run) setTargetQty(targetQty int) error {
	if targetQty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("targetQty",
			fmt.Errorf("%d is not greater than 0", targetQty))
	}
	r.targetQty = targetQty
	return nil
}
