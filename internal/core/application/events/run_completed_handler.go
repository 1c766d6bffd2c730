// Package events contains handlers for domain events raised by aggregates.
// Events are dispatched after the raising transaction commits, so handlers
// observe fully persisted state and run their own transactions.
package events

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/packing"
	"production/internal/core/domain/model/run"
	"production/internal/core/ports"
)

// RunCompletedUoW manages the transaction of the completion follow-up:
// reading the order's line items and persisting generated finished units.
type RunCompletedUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() ports.OrderRepository
	PackingRepository() ports.PackingRepository
}

// RunCompletedUoWFactory creates new follow-up unit of work instances.
type RunCompletedUoWFactory interface {
	Create() RunCompletedUoW
}

// RunCompletedHandler reacts to finished runs: it notifies collaborators and,
// when the finishing stage completes, generates one finished unit per good
// piece so packing has something to allocate.
type RunCompletedHandler struct {
	uowFactory           RunCompletedUoWFactory
	notifier             ports.Notifier
	logger               *slog.Logger
	defaultUnitWeightKg  decimal.Decimal
	defaultUnitVolumeCm3 decimal.Decimal
}

// NewRunCompletedHandler creates a handler for run completion events.
// The notifier may be nil when no external channel is configured. The default
// estimates seed each generated unit until real measurements replace them.
func NewRunCompletedHandler(
	uowFactory RunCompletedUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
	defaultUnitWeightKg, defaultUnitVolumeCm3 decimal.Decimal,
) RunCompletedHandler {
	return RunCompletedHandler{
		uowFactory:           uowFactory,
		notifier:             notifier,
		logger:               logger,
		defaultUnitWeightKg:  defaultUnitWeightKg,
		defaultUnitVolumeCm3: defaultUnitVolumeCm3,
	}
}

// Handle processes one completion event. The notification is fire-and-forget;
// only the finished-unit generation can fail the handler.
func (h RunCompletedHandler) Handle(ctx context.Context, event run.RunCompleted) error {
	h.notify(ctx, event)

	if event.Stage != order.Finishing || event.TotalGood == 0 {
		return nil
	}

	return h.generateFinishedUnits(ctx, event)
}

func (h RunCompletedHandler) notify(ctx context.Context, event run.RunCompleted) {
	if h.notifier == nil {
		return
	}

	err := h.notifier.NotifyRunCompleted(ctx, event.RunID, event.TotalGood, event.TotalReject)
	if err != nil {
		h.logger.WarnContext(ctx, "run completion notification failed",
			slog.String("runId", event.RunID.String()),
			slog.Any("error", err))
	}
}

func (h RunCompletedHandler) generateFinishedUnits(ctx context.Context, event run.RunCompleted) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productionOrder, err := uow.OrderRepository().Get(ctx, event.OrderID)
	if err != nil {
		return err
	}

	units, err := h.buildUnits(productionOrder, event)
	if err != nil {
		return err
	}

	if err = uow.PackingRepository().AddFinishedUnits(ctx, units); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// buildUnits walks the order's line items in sequence, one unit per good
// piece, until the run's good total is covered. Line items are exhausted in
// order; a short run simply fills fewer positions.
func (h RunCompletedHandler) buildUnits(
	productionOrder *order.Order, event run.RunCompleted,
) ([]*packing.FinishedUnit, error) {
	remaining := event.TotalGood
	units := make([]*packing.FinishedUnit, 0, remaining)

	for _, item := range productionOrder.LineItems() {
		take := min(remaining, item.Qty)
		for i := 0; i < take; i++ {
			unit, err := packing.NewFinishedUnit(
				kernel.NewUUID(),
				productionOrder.WorkspaceID(),
				productionOrder.ID(),
				event.RunID,
				item.SKU,
				item.SizeCode,
				h.defaultUnitWeightKg,
				h.defaultUnitVolumeCm3,
			)
			if err != nil {
				return nil, err
			}
			units = append(units, unit)
		}

		remaining -= take
		if remaining == 0 {
			break
		}
	}

	return units, nil
}
