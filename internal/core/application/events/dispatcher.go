package events

import (
	"context"
	"log/slog"

	"production/internal/core/domain/model/run"
)

// Dispatcher routes domain events to their handlers after the raising
// transaction has committed. A failing handler is logged and does not affect
// the committed command; events have no retry here.
type Dispatcher struct {
	runCompleted RunCompletedHandler
	logger       *slog.Logger
}

// NewDispatcher creates a dispatcher over the registered handlers.
func NewDispatcher(runCompleted RunCompletedHandler, logger *slog.Logger) Dispatcher {
	return Dispatcher{
		runCompleted: runCompleted,
		logger:       logger,
	}
}

// Publish delivers each event to its handler by type.
func (d Dispatcher) Publish(ctx context.Context, domainEvents []run.DomainEvent) {
	for _, event := range domainEvents {
		switch e := event.(type) {
		case run.RunCompleted:
			if err := d.runCompleted.Handle(ctx, e); err != nil {
				d.logger.ErrorContext(ctx, "domain event handling failed",
					slog.String("event", e.EventName()),
					slog.String("aggregateId", e.AggregateID().String()),
					slog.Any("error", err))
			}
		default:
			d.logger.WarnContext(ctx, "no handler registered for domain event",
				slog.String("event", event.EventName()))
		}
	}
}
