package commands

import (
	"context"
	"errors"

	"production/internal/core/domain/model/packing"
	"production/internal/pkg/errs"
)

var (
	// ErrCartonNotFound indicates the referenced carton does not exist.
	ErrCartonNotFound = errors.New("carton not found")

	// ErrFinishedUnitNotFound indicates the referenced unit does not exist.
	ErrFinishedUnitNotFound = errors.New("finished unit not found")
)

// AddCartonContentCommandHandler handles the business logic for allocating
// finished units into cartons. The content row and the unit's packed flag
// flip in one transaction; the conditional update on the flag guarantees a
// unit is never allocated twice, even across concurrent cartons.
type AddCartonContentCommandHandler struct {
	uowFactory PackingUoWFactory
}

// NewAddCartonContentCommandHandler creates a handler for content allocation.
func NewAddCartonContentCommandHandler(uowFactory PackingUoWFactory) AddCartonContentCommandHandler {
	return AddCartonContentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the allocation command. The carton must be open and the
// unit unpacked.
func (h AddCartonContentCommandHandler) Handle(ctx context.Context, cmd AddCartonContentCommand) error {
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

	packingRepo := uow.PackingRepository()

	carton, err := packingRepo.GetCarton(ctx, cmd.CartonID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrCartonNotFound
	}
	if err != nil {
		return err
	}

	unit, err := packingRepo.GetFinishedUnit(ctx, cmd.FinishedUnitID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrFinishedUnitNotFound
	}
	if err != nil {
		return err
	}

	content, err := packing.NewContent(unit, cmd.Qty())
	if err != nil {
		return err
	}

	if err = carton.AddContent(content); err != nil {
		return err
	}

	if err = packingRepo.AllocateFinishedUnit(ctx, unit.ID()); err != nil {
		return err
	}

	if err = packingRepo.UpdateCarton(ctx, carton); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
