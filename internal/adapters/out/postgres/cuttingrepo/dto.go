// Package cuttingrepo provides data transfer objects and mapping functions
// for cut lay and bundle persistence. Lays and their per-size outputs are
// immutable once written; bundles are inserted as one batch per generation.
package cuttingrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/cutting"
	"production/internal/core/domain/model/kernel"
)

// CutLayDTO represents the database structure for cut lays.
type CutLayDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkspaceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	MarkerName    string          `gorm:"type:varchar(255);not null"`
	MarkerWidthCm decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	LayLengthM    decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	Plies         int             `gorm:"type:int;not null"`
	PiecesPerPly  int             `gorm:"type:int;not null"`
	UOM           string          `gorm:"type:varchar(16);not null"`
	Gross         decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	Offcuts       decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	Defects       decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	CreatedAt     time.Time       `gorm:"type:timestamptz;not null"`
	Outputs       []CutOutputDTO  `gorm:"foreignKey:LayID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for cut lays.
func (CutLayDTO) TableName() string {
	return "cut_lays"
}

// CutOutputDTO represents one per-size piece count of a lay.
type CutOutputDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	LayID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SizeCode string    `gorm:"type:varchar(16);not null"`
	Qty      int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for cut lay outputs.
func (CutOutputDTO) TableName() string {
	return "cut_lay_outputs"
}

// BundleDTO represents one scannable work packet cut from a lay.
type BundleDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LayID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SizeCode string    `gorm:"type:varchar(16);not null"`
	Qty      int       `gorm:"type:int;not null"`
	BundleNo int       `gorm:"type:int;not null"`
	Code     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName specifies the database table name for bundles.
func (BundleDTO) TableName() string {
	return "bundles"
}

// layFromDomain converts a cut lay aggregate to its database representation.
func layFromDomain(aggregate *cutting.CutLay) CutLayDTO {
	layID := aggregate.ID().Bytes()

	outputs := make([]CutOutputDTO, 0, len(aggregate.Outputs()))
	for _, o := range aggregate.Outputs() {
		outputs = append(outputs, CutOutputDTO{
			ID:       uuid.New(),
			LayID:    layID,
			SizeCode: o.SizeCode(),
			Qty:      o.Qty(),
		})
	}

	return CutLayDTO{
		ID:            layID,
		WorkspaceID:   aggregate.WorkspaceID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		MarkerName:    aggregate.MarkerName(),
		MarkerWidthCm: aggregate.MarkerWidthCm(),
		LayLengthM:    aggregate.LayLengthM(),
		Plies:         aggregate.Plies(),
		PiecesPerPly:  aggregate.PiecesPerPly(),
		UOM:           aggregate.UOM(),
		Gross:         aggregate.Gross(),
		Offcuts:       aggregate.Offcuts(),
		Defects:       aggregate.Defects(),
		CreatedAt:     aggregate.CreatedAt(),
		Outputs:       outputs,
	}
}

// layToDomain converts a database DTO to a cut lay aggregate.
func layToDomain(dto CutLayDTO) (*cutting.CutLay, error) {
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

	outputs := make([]cutting.CutOutput, 0, len(dto.Outputs))
	for _, o := range dto.Outputs {
		output, outputErr := cutting.NewCutOutput(o.SizeCode, o.Qty)
		if outputErr != nil {
			return nil, outputErr
		}
		outputs = append(outputs, output)
	}

	return cutting.NewCutLay(
		id, workspaceID, orderID, dto.MarkerName, dto.MarkerWidthCm, dto.LayLengthM,
		dto.Plies, dto.PiecesPerPly, dto.UOM, dto.Gross, dto.Offcuts, dto.Defects,
		outputs, dto.CreatedAt,
	)
}

// bundleFromDomain converts a bundle to its database representation.
func bundleFromDomain(bundle *cutting.Bundle) BundleDTO {
	return BundleDTO{
		ID:       bundle.ID().Bytes(),
		OrderID:  bundle.OrderID().Bytes(),
		LayID:    bundle.LayID().Bytes(),
		SizeCode: bundle.SizeCode(),
		Qty:      bundle.Qty(),
		BundleNo: bundle.BundleNo(),
		Code:     bundle.Code(),
	}
}

// bundleToDomain converts a database DTO to a bundle.
func bundleToDomain(dto BundleDTO) (*cutting.Bundle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	layID, err := kernel.UUIDFromBytes(dto.LayID[:])
	if err != nil {
		return nil, err
	}

	return cutting.NewBundle(id, orderID, layID, dto.SizeCode, dto.Qty, dto.BundleNo, dto.Code)
}
