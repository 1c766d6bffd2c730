package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderRepository defines the lookup contract for orders and their routing
// steps. Orders are created by an external order store; this core only reads
// them and advances routing-step statuses.
type OrderRepository interface {
	// Get retrieves an order with its line items and routing steps.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStep persists a routing step's status change.
	UpdateStep(ctx context.Context, orderID kernel.UUID, step *order.RoutingStep) error
}
