package commands

import (
	"context"
	"errors"

	"production/internal/pkg/errs"
)

// PauseRunCommandHandler handles the business logic for pausing a run.
// Pausing frees the machine; resuming later reacquires it through the start
// command.
type PauseRunCommandHandler struct {
	uowFactory RunMachineUoWFactory
}

// NewPauseRunCommandHandler creates a handler for pausing runs.
func NewPauseRunCommandHandler(uowFactory RunMachineUoWFactory) PauseRunCommandHandler {
	return PauseRunCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pause command. Only an in-progress run can be paused.
func (h PauseRunCommandHandler) Handle(ctx context.Context, cmd PauseRunCommand) error {
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

	if err = productionRun.Pause(); err != nil {
		return err
	}

	if machineID := productionRun.MachineID(); machineID != nil {
		if err = uow.MachineRepository().Release(ctx, *machineID, productionRun.ID()); err != nil {
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
