// Package machinerepo provides data transfer objects and mapping functions
// for machine persistence. The occupancy lock lives in a single nullable
// column so that it can be taken and given back with atomic conditional
// updates.
package machinerepo

import (
	"github.com/google/uuid"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/machine"
	"production/internal/core/domain/model/order"
)

// MachineDTO represents the database structure for persisting machines.
type MachineDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WorkspaceID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name          string     `gorm:"type:varchar(255);not null"`
	Workcenter    string     `gorm:"type:varchar(255);not null"`
	Stage         string     `gorm:"type:varchar(32);not null"`
	LockedByRunID *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for machine entities.
func (MachineDTO) TableName() string {
	return "machines"
}

// fromDomain converts a machine aggregate to its database representation.
func fromDomain(aggregate *machine.Machine) MachineDTO {
	var lockedBy *uuid.UUID
	if runID := aggregate.LockedByRunID(); runID != nil {
		raw := runID.Bytes()
		lockedBy = &raw
	}

	return MachineDTO{
		ID:            aggregate.ID().Bytes(),
		WorkspaceID:   aggregate.WorkspaceID().Bytes(),
		Name:          aggregate.Name(),
		Workcenter:    aggregate.Workcenter(),
		Stage:         aggregate.Stage().String(),
		LockedByRunID: lockedBy,
	}
}

// toDomain converts a database DTO to a machine aggregate.
func toDomain(dto MachineDTO) (*machine.Machine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workspaceID, err := kernel.UUIDFromBytes(dto.WorkspaceID[:])
	if err != nil {
		return nil, err
	}

	stage, err := order.StageFromString(dto.Stage)
	if err != nil {
		return nil, err
	}

	var lockedBy *kernel.UUID
	if dto.LockedByRunID != nil {
		converted, convErr := kernel.UUIDFromBytes((*dto.LockedByRunID)[:])
		if convErr != nil {
			return nil, convErr
		}
		lockedBy = &converted
	}

	return machine.RestoreMachine(id, workspaceID, dto.Name, dto.Workcenter, stage, lockedBy)
}
