package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"
)

// RecordOutputCommandHandler handles the business logic for recording
// produced quantities against an in-progress run.
type RecordOutputCommandHandler struct {
	uowFactory RunUoWFactory
}

// NewRecordOutputCommandHandler creates a handler for output recording.
func NewRecordOutputCommandHandler(uowFactory RunUoWFactory) RecordOutputCommandHandler {
	return RecordOutputCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the record command. Recording past the run's target fails
// with a quantity error and leaves the ledger untouched.
func (h RecordOutputCommandHandler) Handle(ctx context.Context, cmd RecordOutputCommand) error {
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

	output, err := run.NewOutput(
		kernel.NewUUID(), cmd.BundleID(), cmd.QtyGood(), cmd.QtyReject(), cmd.Notes(), time.Now())
	if err != nil {
		return err
	}

	if err = productionRun.RecordOutput(output); err != nil {
		return err
	}

	if err = runRepo.Update(ctx, productionRun); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
