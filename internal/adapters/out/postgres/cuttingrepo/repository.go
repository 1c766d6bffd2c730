package cuttingrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"production/internal/core/domain/model/cutting"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// GormCuttingRepository implements CuttingRepository using GORM.
type GormCuttingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCuttingRepository creates a new GORM cutting repository.
func NewGormCuttingRepository(db *gorm.DB, tracker aggregateTracker) *GormCuttingRepository {
	return &GormCuttingRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddLay saves a new cut lay with its outputs to the database.
func (r *GormCuttingRepository) AddLay(ctx context.Context, aggregate *cutting.CutLay) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := layFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetLay retrieves a cut lay by ID with its outputs.
func (r *GormCuttingRepository) GetLay(ctx context.Context, id kernel.UUID) (*cutting.CutLay, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CutLayDTO
	if err := r.db.WithContext(ctx).Preload("Outputs").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cut lay", id.String())
		}
		return nil, err
	}

	return layToDomain(dto)
}

// AddBundles saves a batch of bundles as a single insert.
func (r *GormCuttingRepository) AddBundles(ctx context.Context, bundles []*cutting.Bundle) error {
	if len(bundles) == 0 {
		return nil
	}

	dtos := make([]BundleDTO, 0, len(bundles))
	for _, bundle := range bundles {
		if err := bundle.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, bundleFromDomain(bundle))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetBundlesByLay retrieves all bundles generated from a lay, in generation
// order.
func (r *GormCuttingRepository) GetBundlesByLay(ctx context.Context, layID kernel.UUID) ([]*cutting.Bundle, error) {
	if err := layID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BundleDTO
	if err := r.db.WithContext(ctx).
		Where("lay_id = ?", layID.Bytes()).
		Order("size_code ASC, bundle_no ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	bundles := make([]*cutting.Bundle, 0, len(dtos))
	for _, dto := range dtos {
		bundle, err := bundleToDomain(dto)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}

	return bundles, nil
}
