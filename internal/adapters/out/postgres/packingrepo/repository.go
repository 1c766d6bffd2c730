package packingrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/packing"
	"production/internal/pkg/errs"
)

// GormPackingRepository implements PackingRepository using GORM.
type GormPackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackingRepository creates a new GORM packing repository.
func NewGormPackingRepository(db *gorm.DB, tracker aggregateTracker) *GormPackingRepository {
	return &GormPackingRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddCarton saves a new carton to the database.
func (r *GormPackingRepository) AddCarton(ctx context.Context, aggregate *packing.Carton) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := cartonFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateCarton saves an existing carton to the database.
func (r *GormPackingRepository) UpdateCarton(ctx context.Context, aggregate *packing.Carton) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := cartonFromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetCarton retrieves a carton by ID with its contents.
func (r *GormPackingRepository) GetCarton(ctx context.Context, id kernel.UUID) (*packing.Carton, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartonDTO
	if err := r.db.WithContext(ctx).Preload("Contents").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carton", id.String())
		}
		return nil, err
	}

	return cartonToDomain(dto)
}

// AddFinishedUnits saves a batch of finished units as a single insert.
func (r *GormPackingRepository) AddFinishedUnits(ctx context.Context, units []*packing.FinishedUnit) error {
	if len(units) == 0 {
		return nil
	}

	dtos := make([]FinishedUnitDTO, 0, len(units))
	for _, unit := range units {
		if err := unit.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, unitFromDomain(unit))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetFinishedUnit retrieves a finished unit by ID.
func (r *GormPackingRepository) GetFinishedUnit(ctx context.Context, id kernel.UUID) (*packing.FinishedUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FinishedUnitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("finished unit", id.String())
		}
		return nil, err
	}

	return unitToDomain(dto)
}

// AllocateFinishedUnit flips the packed flag with a conditional update on
// packed = false. Two cartons racing for the same unit resolve at the
// database; the loser gets a conflict.
func (r *GormPackingRepository) AllocateFinishedUnit(ctx context.Context, unitID kernel.UUID) error {
	if err := unitID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&FinishedUnitDTO{}).
		Where("id = ? AND packed = false", unitID.Bytes()).
		Update("packed", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&FinishedUnitDTO{}).
			Where("id = ?", unitID.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("finished unit", unitID.String())
		}
		return errs.NewConflictErrorWithCause("finished unit", unitID.String(), packing.ErrUnitIsAlreadyPacked)
	}

	return nil
}
