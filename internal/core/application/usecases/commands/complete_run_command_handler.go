package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"
)

// CompleteRunCommandHandler handles the business logic for run completion.
// The final ledger rows, the machine release and the routing-step completion
// commit in one transaction; domain events go out afterwards.
type CompleteRunCommandHandler struct {
	uowFactory CompleteRunUoWFactory
	publisher  EventPublisher
}

// NewCompleteRunCommandHandler creates a handler for completing runs.
func NewCompleteRunCommandHandler(
	uowFactory CompleteRunUoWFactory, publisher EventPublisher,
) CompleteRunCommandHandler {
	return CompleteRunCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion command. A final batch that would push the
// ledger past the target fails the whole completion; the run stays in
// progress with nothing appended.
func (h CompleteRunCommandHandler) Handle(ctx context.Context, cmd CompleteRunCommand) error {
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

	now := time.Now()

	finalOutputs, err := buildFinalOutputs(cmd.FinalOutputs(), now)
	if err != nil {
		return err
	}

	finalRejects, err := buildFinalRejects(cmd.FinalRejects(), now)
	if err != nil {
		return err
	}

	if err = productionRun.Complete(finalOutputs, finalRejects, now); err != nil {
		return err
	}

	if machineID := productionRun.MachineID(); machineID != nil {
		if err = uow.MachineRepository().Release(ctx, *machineID, productionRun.ID()); err != nil {
			return err
		}
	}

	if err = h.completeStep(ctx, uow, productionRun); err != nil {
		return err
	}

	if err = runRepo.Update(ctx, productionRun); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	events := productionRun.GetDomainEvents()
	productionRun.ClearDomainEvents()
	if h.publisher != nil && len(events) > 0 {
		h.publisher.Publish(ctx, events)
	}

	return nil
}

func (h CompleteRunCommandHandler) completeStep(
	ctx context.Context, uow CompleteRunUoW, productionRun *run.Run,
) error {
	orderRepo := uow.OrderRepository()

	productionOrder, err := orderRepo.Get(ctx, productionRun.OrderID())
	if err != nil {
		return err
	}

	step, err := productionOrder.FindStep(productionRun.StepID())
	if err != nil {
		return err
	}

	if err = step.Complete(); err != nil {
		return err
	}

	return orderRepo.UpdateStep(ctx, productionOrder.ID(), step)
}

func buildFinalOutputs(entries []FinalOutput, now time.Time) ([]run.Output, error) {
	outputs := make([]run.Output, 0, len(entries))
	for _, entry := range entries {
		output, err := run.NewOutput(
			kernel.NewUUID(), entry.BundleID, entry.QtyGood, entry.QtyReject, entry.Notes, now)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}

	return outputs, nil
}

func buildFinalRejects(entries []FinalReject, now time.Time) ([]run.Reject, error) {
	rejects := make([]run.Reject, 0, len(entries))
	for _, entry := range entries {
		reject, err := run.NewReject(
			kernel.NewUUID(), entry.BundleID, entry.ReasonCode, entry.Qty, entry.Cost, now)
		if err != nil {
			return nil, err
		}
		rejects = append(rejects, reject)
	}

	return rejects, nil
}
