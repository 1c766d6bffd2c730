package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves an order by ID with its line items and routing steps.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("routing_steps.sequence ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// UpdateStep persists a routing step's status change.
func (r *GormOrderRepository) UpdateStep(ctx context.Context, orderID kernel.UUID, step *order.RoutingStep) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := step.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&RoutingStepDTO{}).
		Where("id = ? AND order_id = ?", step.ID().Bytes(), orderID.Bytes()).
		Update("status", step.Status())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("routing step", step.ID().String())
	}

	return nil
}
