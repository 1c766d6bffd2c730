package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"production/internal/core/domain/model/cutting"
	"production/internal/pkg/errs"
)

// CreateCutLayCommandHandler handles the business logic for registering cut
// lays. The lay and its outputs persist in one transaction; a piece count
// that diverges from the marker's expectation is logged, never rejected.
type CreateCutLayCommandHandler struct {
	uowFactory CuttingUoWFactory
	logger     *slog.Logger
}

// NewCreateCutLayCommandHandler creates a handler for lay registration.
func NewCreateCutLayCommandHandler(
	uowFactory CuttingUoWFactory, logger *slog.Logger,
) CreateCutLayCommandHandler {
	return CreateCutLayCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the lay registration command. The order must exist; its
// workspace scopes the lay.
func (h CreateCutLayCommandHandler) Handle(ctx context.Context, cmd CreateCutLayCommand) error {
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

	productionOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	lay, err := cutting.NewCutLay(
		cmd.LayID(),
		productionOrder.WorkspaceID(),
		productionOrder.ID(),
		cmd.MarkerName(),
		cmd.MarkerWidthCm(),
		cmd.LayLengthM(),
		cmd.Plies(),
		cmd.PiecesPerPly(),
		cmd.UOM(),
		cmd.Gross(),
		cmd.Offcuts(),
		cmd.Defects(),
		cmd.Outputs(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.CuttingRepository().AddLay(ctx, lay); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if expected, diverges := lay.PieceCountDiverges(); diverges {
		h.logger.WarnContext(ctx, "lay piece count diverges from marker expectation",
			slog.String("layId", lay.ID().String()),
			slog.Int("expected", expected),
			slog.Int("actual", lay.TotalPieces()))
	}

	return nil
}
