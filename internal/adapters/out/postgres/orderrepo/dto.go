// Package orderrepo provides data transfer objects and mapping functions for
// order lookups. Orders arrive from an external order store; this adapter
// reads them and persists routing-step status transitions.
package orderrepo

import (
	"github.com/google/uuid"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for orders.
type OrderDTO struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	WorkspaceID uuid.UUID        `gorm:"type:uuid;not null;index"`
	LineItems   []LineItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Steps       []RoutingStepDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one ordered SKU and size.
type LineItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU      string    `gorm:"type:varchar(64);not null"`
	SizeCode string    `gorm:"type:varchar(16);not null"`
	Qty      int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line items.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// RoutingStepDTO represents one step of an order's production route.
type RoutingStepDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Stage    string    `gorm:"type:varchar(32);not null"`
	Sequence int       `gorm:"type:int;not null"`
	Status   string    `gorm:"type:varchar(32);not null"`
}

// TableName specifies the database table name for routing steps.
func (RoutingStepDTO) TableName() string {
	return "routing_steps"
}

// toDomain converts a database DTO to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workspaceID, err := kernel.UUIDFromBytes(dto.WorkspaceID[:])
	if err != nil {
		return nil, err
	}

	lineItems := make([]order.LineItem, 0, len(dto.LineItems))
	for _, item := range dto.LineItems {
		lineItems = append(lineItems, order.LineItem{
			SKU:      item.SKU,
			SizeCode: item.SizeCode,
			Qty:      item.Qty,
		})
	}

	steps := make([]*order.RoutingStep, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		step, stepErr := stepToDomain(stepDTO)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, step)
	}

	return order.RestoreOrder(id, workspaceID, lineItems, steps)
}

func stepToDomain(dto RoutingStepDTO) (*order.RoutingStep, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stage, err := order.StageFromString(dto.Stage)
	if err != nil {
		return nil, err
	}

	return order.RestoreRoutingStep(id, stage, dto.Sequence, dto.Status)
}
