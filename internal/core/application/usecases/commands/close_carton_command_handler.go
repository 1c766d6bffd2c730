package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// CloseCartonCommandHandler handles the business logic for closing cartons.
// The carrier-facing code is assigned at close time and the carton becomes
// immutable afterwards.
type CloseCartonCommandHandler struct {
	uowFactory PackingUoWFactory
	dimDivisor int
}

// NewCloseCartonCommandHandler creates a handler for carton closing.
// dimDivisor is the carrier's dimensional-weight divisor; zero falls back to
// the default.
func NewCloseCartonCommandHandler(uowFactory PackingUoWFactory, dimDivisor int) CloseCartonCommandHandler {
	return CloseCartonCommandHandler{
		uowFactory: uowFactory,
		dimDivisor: dimDivisor,
	}
}

// Handle processes the close command. An empty carton cannot be closed.
func (h CloseCartonCommandHandler) Handle(ctx context.Context, cmd CloseCartonCommand) error {
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

	now := time.Now()
	if err = carton.Close(cartonCode(carton.ID(), now), h.dimDivisor, now); err != nil {
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

// cartonCode builds the carrier-facing carton identifier.
func cartonCode(id kernel.UUID, now time.Time) string {
	prefix := strings.ToUpper(strings.SplitN(id.String(), "-", 2)[0])
	return fmt.Sprintf("CTN-%s-%d", prefix, now.Unix())
}
