// Package packingrepo provides data transfer objects and mapping functions
// for carton and finished-unit persistence. The packed flag on finished
// units carries the double-packing guard; it only ever flips through a
// conditional update.
package packingrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/packing"
)

// CartonDTO represents the database structure for cartons. Measurement
// columns stay null while the carton is open.
type CartonDTO struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey"`
	WorkspaceID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Code           string             `gorm:"type:varchar(64);not null;default:''"`
	LengthCm       decimal.Decimal    `gorm:"type:numeric(8,2);not null"`
	WidthCm        decimal.Decimal    `gorm:"type:numeric(8,2);not null"`
	HeightCm       decimal.Decimal    `gorm:"type:numeric(8,2);not null"`
	TareKg         decimal.Decimal    `gorm:"type:numeric(8,3);not null"`
	Status         string             `gorm:"type:varchar(32);not null"`
	ActualWeightKg *decimal.Decimal   `gorm:"type:numeric(10,3)"`
	DimWeightKg    *decimal.Decimal   `gorm:"type:numeric(10,3)"`
	FillPercent    *decimal.Decimal   `gorm:"type:numeric(5,2)"`
	ClosedAt       *time.Time         `gorm:"type:timestamptz"`
	Contents       []CartonContentDTO `gorm:"foreignKey:CartonID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for carton entities.
func (CartonDTO) TableName() string {
	return "cartons"
}

// CartonContentDTO represents one allocation of a finished unit to a carton.
type CartonContentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartonID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	FinishedUnitID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Qty            int             `gorm:"type:int;not null"`
	UnitWeightKg   decimal.Decimal `gorm:"type:numeric(8,3);not null"`
	UnitVolumeCm3  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for carton contents.
func (CartonContentDTO) TableName() string {
	return "carton_contents"
}

// FinishedUnitDTO represents the database structure for finished units.
type FinishedUnitDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkspaceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	RunID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU         string          `gorm:"type:varchar(64);not null"`
	SizeCode    string          `gorm:"type:varchar(16);not null"`
	WeightKg    decimal.Decimal `gorm:"type:numeric(8,3);not null"`
	VolumeCm3   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Packed      bool            `gorm:"type:boolean;not null;default:false"`
}

// TableName specifies the database table name for finished units.
func (FinishedUnitDTO) TableName() string {
	return "finished_units"
}

// cartonFromDomain converts a carton aggregate to its database
// representation.
func cartonFromDomain(aggregate *packing.Carton) CartonDTO {
	cartonID := aggregate.ID().Bytes()

	contents := make([]CartonContentDTO, 0, len(aggregate.Contents()))
	for _, content := range aggregate.Contents() {
		contents = append(contents, CartonContentDTO{
			ID:             uuid.New(),
			CartonID:       cartonID,
			FinishedUnitID: content.FinishedUnitID().Bytes(),
			Qty:            content.Qty(),
			UnitWeightKg:   content.UnitWeightKg(),
			UnitVolumeCm3:  content.UnitVolumeCm3(),
		})
	}

	dto := CartonDTO{
		ID:          cartonID,
		WorkspaceID: aggregate.WorkspaceID().Bytes(),
		Code:        aggregate.Code(),
		LengthCm:    aggregate.Dimensions().Length(),
		WidthCm:     aggregate.Dimensions().Width(),
		HeightCm:    aggregate.Dimensions().Height(),
		TareKg:      aggregate.TareKg(),
		Status:      aggregate.Status().String(),
		ClosedAt:    aggregate.ClosedAt(),
		Contents:    contents,
	}

	if m := aggregate.Measurements(); m != nil {
		actual := m.ActualWeightKg
		dim := m.DimWeightKg
		fill := m.FillPercent
		dto.ActualWeightKg = &actual
		dto.DimWeightKg = &dim
		dto.FillPercent = &fill
	}

	return dto
}

// cartonToDomain converts a database DTO to a carton aggregate.
func cartonToDomain(dto CartonDTO) (*packing.Carton, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workspaceID, err := kernel.UUIDFromBytes(dto.WorkspaceID[:])
	if err != nil {
		return nil, err
	}

	dimensions, err := kernel.NewDimensions(dto.LengthCm, dto.WidthCm, dto.HeightCm)
	if err != nil {
		return nil, err
	}

	status, err := packing.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	contents := make([]packing.Content, 0, len(dto.Contents))
	for _, contentDTO := range dto.Contents {
		unitID, contentErr := kernel.UUIDFromBytes(contentDTO.FinishedUnitID[:])
		if contentErr != nil {
			return nil, contentErr
		}
		contents = append(contents, packing.RestoreContent(
			unitID, contentDTO.Qty, contentDTO.UnitWeightKg, contentDTO.UnitVolumeCm3))
	}

	var measurements *packing.Measurements
	if dto.ActualWeightKg != nil && dto.DimWeightKg != nil && dto.FillPercent != nil {
		measurements = &packing.Measurements{
			ActualWeightKg: *dto.ActualWeightKg,
			DimWeightKg:    *dto.DimWeightKg,
			FillPercent:    *dto.FillPercent,
		}
	}

	return packing.RestoreCarton(
		id, workspaceID, dto.Code, dimensions, dto.TareKg,
		status, contents, measurements, dto.ClosedAt,
	)
}

// unitFromDomain converts a finished unit to its database representation.
func unitFromDomain(unit *packing.FinishedUnit) FinishedUnitDTO {
	return FinishedUnitDTO{
		ID:          unit.ID().Bytes(),
		WorkspaceID: unit.WorkspaceID().Bytes(),
		OrderID:     unit.OrderID().Bytes(),
		RunID:       unit.RunID().Bytes(),
		SKU:         unit.SKU(),
		SizeCode:    unit.SizeCode(),
		WeightKg:    unit.WeightKg(),
		VolumeCm3:   unit.VolumeCm3(),
		Packed:      unit.IsPacked(),
	}
}

// unitToDomain converts a database DTO to a finished unit.
func unitToDomain(dto FinishedUnitDTO) (*packing.FinishedUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workspaceID, err := kernel.UUIDFromBytes(dto.WorkspaceID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	runID, err := kernel.UUIDFromBytes(dto.RunID[:])
	if err != nil {
		return nil, err
	}

	return packing.RestoreFinishedUnit(
		id, workspaceID, orderID, runID, dto.SKU, dto.SizeCode,
		dto.WeightKg, dto.VolumeCm3, dto.Packed,
	)
}
