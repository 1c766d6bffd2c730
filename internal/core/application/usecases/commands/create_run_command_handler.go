package commands

import (
	"context"
	"errors"

	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"
)

var (
	// ErrOrderNotFound indicates the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrStepHasActiveRun indicates the routing step already owns a run in a
	// non-terminal status.
	ErrStepHasActiveRun = errors.New("routing step already has an active run")
)

// CreateRunCommandHandler handles the business logic for run registration.
// Resolves the order's routing step for the requested stage and creates the
// run in Created status, optionally bound to a machine. A step with a run in
// a non-terminal status rejects further registrations.
type CreateRunCommandHandler struct {
	uowFactory CreateRunUoWFactory
}

// NewCreateRunCommandHandler creates a handler for run registration.
func NewCreateRunCommandHandler(uowFactory CreateRunUoWFactory) CreateRunCommandHandler {
	return CreateRunCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the run creation command. The order must exist and its
// routing must contain an open step for the requested stage.
func (h CreateRunCommandHandler) Handle(ctx context.Context, cmd CreateRunCommand) error {
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

	orderRepo := uow.OrderRepository()
	runRepo := uow.RunRepository()

	productionOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	step, err := productionOrder.FindStepForStage(cmd.Stage())
	if err != nil {
		return err
	}

	// A step owns at most one active run per occurrence.
	active, err := runRepo.ExistsActiveForStep(ctx, step.ID())
	if err != nil {
		return err
	}
	if active {
		return errs.NewConflictErrorWithCause("routing step", step.ID().String(), ErrStepHasActiveRun)
	}

	productionRun, err := run.NewRun(
		cmd.RunID(),
		productionOrder.WorkspaceID(),
		productionOrder.ID(),
		step.ID(),
		cmd.Stage(),
		cmd.Method(),
		cmd.MachineID(),
		cmd.OperatorID(),
		cmd.TargetQty(),
	)
	if err != nil {
		return err
	}

	if err = runRepo.Add(ctx, productionRun); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
