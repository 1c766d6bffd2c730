package commands

import (
	"context"

	"production/internal/core/domain/model/packing"
)

// CreateCartonCommandHandler handles the business logic for opening cartons.
type CreateCartonCommandHandler struct {
	uowFactory PackingUoWFactory
}

// NewCreateCartonCommandHandler creates a handler for carton opening.
func NewCreateCartonCommandHandler(uowFactory PackingUoWFactory) CreateCartonCommandHandler {
	return CreateCartonCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the carton creation command.
func (h CreateCartonCommandHandler) Handle(ctx context.Context, cmd CreateCartonCommand) error {
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

	carton, err := packing.NewCarton(cmd.CartonID(), cmd.WorkspaceID(), cmd.Dimensions(), cmd.TareKg())
	if err != nil {
		return err
	}

	if err = uow.PackingRepository().AddCarton(ctx, carton); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
