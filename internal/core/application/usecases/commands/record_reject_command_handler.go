package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"
)

// RecordRejectCommandHandler handles the business logic for recording
// rejected pieces against an in-progress run.
type RecordRejectCommandHandler struct {
	uowFactory RunUoWFactory
}

// NewRecordRejectCommandHandler creates a handler for reject recording.
func NewRecordRejectCommandHandler(uowFactory RunUoWFactory) RecordRejectCommandHandler {
	return RecordRejectCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the record command. Rejects count against the run's
// target the same way good pieces do.
func (h RecordRejectCommandHandler) Handle(ctx context.Context, cmd RecordRejectCommand) error {
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

	reject, err := run.NewReject(
		kernel.NewUUID(), cmd.BundleID(), cmd.ReasonCode(), cmd.Qty(), cmd.Cost(), time.Now())
	if err != nil {
		return err
	}

	if err = productionRun.RecordReject(reject); err != nil {
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
