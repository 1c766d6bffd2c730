package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/machine"
	"production/internal/pkg/errs"
)

// CancelRunCommandHandler handles the business logic for cancelling a run.
// The ledger recorded so far is preserved for audit; only the machine lock is
// released.
type CancelRunCommandHandler struct {
	uowFactory RunMachineUoWFactory
}

// NewCancelRunCommandHandler creates a handler for cancelling runs.
func NewCancelRunCommandHandler(uowFactory RunMachineUoWFactory) CancelRunCommandHandler {
	return CancelRunCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancel command. Any non-terminal run can be cancelled;
// a created or paused run holds no machine lock, which is not an error here.
func (h CancelRunCommandHandler) Handle(ctx context.Context, cmd CancelRunCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	runRepo := uow.RunRepository()

	productionRun, err := runRepo.Get(ctx, cmd.RunID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRunNotFound
	}
	if err != nil {
		return err
	}

	if err = productionRun.Cancel(cmd.Reason(), time.Now()); err != nil {
		return err
	}

	if machineID := productionRun.MachineID(); machineID != nil {
		err = uow.MachineRepository().Release(ctx, *machineID, productionRun.ID())
		if err != nil && !errors.Is(err, machine.ErrMachineNotLockedByRun) {
			return err
		}
	}

	if err = runRepo.Update(ctx, productionRun); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
