package runrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRunRepository creates a new GORM run repository.
func NewGormRunRepository(db *gorm.DB, tracker aggregateTracker) *GormRunRepository {
	return &GormRunRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new run to the database.
func (r *GormRunRepository) Add(ctx context.Context, aggregate *run.Run) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing run to the database. Ledger rows are append-only
// upstream, so saving associations only ever inserts new rows.
func (r *GormRunRepository) Update(ctx context.Context, aggregate *run.Run) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

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

// Get retrieves a run by ID, fully loaded with its ledgers and method record.
func (r *GormRunRepository) Get(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RunDTO
	if err := r.db.WithContext(ctx).
		Preload("Outputs").
		Preload("Rejects").
		Preload("Materials").
		Preload("Record").
		Preload("Record.Logs").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("run", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsActiveForStep reports whether the routing step already owns a run in a
// non-terminal status.
func (r *GormRunRepository) ExistsActiveForStep(ctx context.Context, stepID kernel.UUID) (bool, error) {
	if err := stepID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&RunDTO{}).
		Where("step_id = ? AND status IN ?", stepID.Bytes(), []string{
			run.Created.String(), run.InProgress.String(), run.Paused.String(),
		}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
