package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"
)

// RecordMaterialCommandHandler handles the business logic for material
// consumption logging. Material is informational and not bounded by the
// run's target quantity.
type RecordMaterialCommandHandler struct {
	uowFactory RunUoWFactory
}

// NewRecordMaterialCommandHandler creates a handler for material logging.
func NewRecordMaterialCommandHandler(uowFactory RunUoWFactory) RecordMaterialCommandHandler {
	return RecordMaterialCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the log command against an in-progress run.
func (h RecordMaterialCommandHandler) Handle(ctx context.Context, cmd RecordMaterialCommand) error {
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

	material, err := run.NewMaterialLog(
		kernel.NewUUID(), cmd.ItemID(), cmd.UOM(), cmd.Qty(), cmd.SourceBatchID(), time.Now())
	if err != nil {
		return err
	}

	if err = productionRun.RecordMaterial(material); err != nil {
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
