package machine

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

var (
	// ErrMachineIsBusy indicates that another run currently holds the machine.
	ErrMachineIsBusy = errors.New("machine is occupied by another run")

	// ErrMachineNotLockedByRun indicates that the releasing run is not the one
	// holding the machine, either because the machine is free or another run
	// holds it.
	ErrMachineNotLockedByRun = errors.New("machine is not locked by this run")

	// ErrMachineIsNotConstructed indicates that the Machine was not
	// properly initialized through a constructor function.
	ErrMachineIsNotConstructed = errors.New("Machine must be created via NewMachine constructor")
)

// Machine represents one unit of production equipment. A machine executes at
// most one run at a time; the lock field carries the occupying run's identity
// so a stale holder can never be released by someone else.
//
// Key business rules:
//   - Must be constructed through NewMachine or RestoreMachine
//   - Binary occupancy: one run holds the machine or none does
//   - Acquire is idempotent for the run that already holds the lock
//   - Only the holding run can release the machine
//
// The in-memory transitions mirror the persistence layer's atomic
// compare-and-set so both enforce the same rule.
type Machine struct {
	// id uniquely identifies the machine
	id kernel.UUID

	// workspaceID is the tenant the machine belongs to
	workspaceID kernel.UUID

	// name is a human-readable identifier, e.g. "M&R Sportsman EX 8st"
	name string

	// workcenter groups machines on the shop floor, e.g. "PRINT-A"
	workcenter string

	// stage is the routing stage the machine serves
	stage order.Stage

	// lockedByRunID points to the occupying run, nil when free
	lockedByRunID *kernel.UUID

	// guard ensures the entity was properly initialized
	guard kernel.ConstructorGuard
}

// NewMachine creates a free machine assigned to a workcenter and stage.
func NewMachine(
	id kernel.UUID, workspaceID kernel.UUID, name, workcenter string, stage order.Stage,
) (*Machine, error) {
	m := &Machine{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setWorkspaceID(workspaceID),
		m.setName(name),
		m.setWorkcenter(workcenter),
		m.setStage(stage),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMachine reconstructs a Machine from persistent storage, including
// its lock state.
func RestoreMachine(
	id kernel.UUID, workspaceID kernel.UUID, name, workcenter string,
	stage order.Stage, lockedByRunID *kernel.UUID,
) (*Machine, error) {
	m, err := NewMachine(id, workspaceID, name, workcenter, stage)
	if err != nil {
		return nil, err
	}

	if err := m.setLockedByRunID(lockedByRunID); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate ensures the Machine was built through a constructor.
func (m *Machine) Validate() error {
	if m == nil {
		return ErrMachineIsNotConstructed
	}
	return m.guard.Validate(ErrMachineIsNotConstructed)
}

// IsEqual compares two machines by their unique identifiers.
func (m *Machine) IsEqual(other *Machine) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the machine's unique identifier.
func (m *Machine) ID() kernel.UUID {
	return m.id
}

// WorkspaceID returns the tenant the machine belongs to.
func (m *Machine) WorkspaceID() kernel.UUID {
	return m.workspaceID
}

// Name returns the machine's human-readable name.
func (m *Machine) Name() string {
	return m.name
}

// Workcenter returns the shop-floor group the machine belongs to.
func (m *Machine) Workcenter() string {
	return m.workcenter
}

// Stage returns the routing stage the machine serves.
func (m *Machine) Stage() order.Stage {
	return m.stage
}

// LockedByRunID returns the occupying run, nil when the machine is free.
func (m *Machine) LockedByRunID() *kernel.UUID {
	return m.lockedByRunID
}

// IsBusy reports whether any run currently holds the machine.
func (m *Machine) IsBusy() bool {
	return m.lockedByRunID != nil
}

// Acquire locks the machine for the given run. A free machine is locked; a
// machine already held by the same run stays locked (idempotent re-acquire);
// a machine held by another run returns a ConflictError wrapping
// ErrMachineIsBusy.
//
// Example:
//
//	if err := machine.Acquire(runID); err != nil {
//	    if errors.Is(err, machine.ErrMachineIsBusy) {
//	        // surface as a conflict, do not retry blindly
//	    }
//	    return err
//	}
func (m *Machine) Acquire(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	if m.lockedByRunID != nil {
		if m.lockedByRunID.IsEqual(runID) {
			return nil
		}
		return errs.NewConflictErrorWithCause("machine", m.id, ErrMachineIsBusy)
	}

	m.lockedByRunID = &runID
	return nil
}

// Release frees the machine. Only the run holding the lock can release it;
// releasing a free machine or someone else's lock fails.
func (m *Machine) Release(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	if m.lockedByRunID == nil || !m.lockedByRunID.IsEqual(runID) {
		return ErrMachineNotLockedByRun
	}

	m.lockedByRunID = nil
	return nil
}

func (m *Machine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	m.id = id
	return nil
}

func (m *Machine) setWorkspaceID(workspaceID kernel.UUID) error {
	if err := workspaceID.Validate(); err != nil {
		return err
	}

	m.workspaceID = workspaceID
	return nil
}

func (m *Machine) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}

	m.name = name
	return nil
}

func (m *Machine) setWorkcenter(workcenter string) error {
	if workcenter == "" {
		return errs.NewValueIsRequiredError("workcenter is required")
	}

	m.workcenter = workcenter
	return nil
}

func (m *Machine) setStage(stage order.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	m.stage = stage
	return nil
}

// setLockedByRunID sets the lock state during entity restoration.
func (m *Machine) setLockedByRunID(runID *kernel.UUID) error {
	if runID != nil {
		if err := runID.Validate(); err != nil {
			return err
		}
	}

	m.lockedByRunID = runID
	return nil
}
