package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
)

// AppendProcessLogCommandHandler handles the business logic for appending
// process readings to a run's method record.
type AppendProcessLogCommandHandler struct {
	uowFactory RunUoWFactory
	registry   services.MethodRegistry
}

// NewAppendProcessLogCommandHandler creates a handler for process logging.
func NewAppendProcessLogCommandHandler(uowFactory RunUoWFactory) AppendProcessLogCommandHandler {
	return AppendProcessLogCommandHandler{
		uowFactory: uowFactory,
		registry:   services.NewMethodRegistry(),
	}
}

// Handle processes the append command. A run whose method carries no record
// rejects the reading.
func (h AppendProcessLogCommandHandler) Handle(ctx context.Context, cmd AppendProcessLogCommand) error {
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

	entry, err := run.NewProcessLogEntry(
		kernel.NewUUID(), cmd.Kind(), cmd.TempC(), cmd.DurationSeconds(), cmd.Notes(), time.Now())
	if err != nil {
		return err
	}

	if err = h.registry.AppendLog(productionRun, entry); err != nil {
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
