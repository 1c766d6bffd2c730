package machinerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/machine"
	"production/internal/pkg/errs"
)

// GormMachineRepository implements MachineRepository using GORM.
type GormMachineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMachineRepository creates a new GORM machine repository.
func NewGormMachineRepository(db *gorm.DB, tracker aggregateTracker) *GormMachineRepository {
	return &GormMachineRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new machine to the database.
func (r *GormMachineRepository) Add(ctx context.Context, aggregate *machine.Machine) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a machine by ID.
func (r *GormMachineRepository) Get(ctx context.Context, id kernel.UUID) (*machine.Machine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MachineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("machine", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Acquire takes the occupancy lock with a single conditional update. The
// row matches only when the machine is free or already held by the same run,
// so two concurrent starts resolve at the database without advisory locks.
func (r *GormMachineRepository) Acquire(ctx context.Context, machineID kernel.UUID, runID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}
	if err := runID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&MachineDTO{}).
		Where("id = ? AND (locked_by_run_id IS NULL OR locked_by_run_id = ?)", machineID.Bytes(), runID.Bytes()).
		Update("locked_by_run_id", runID.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a held machine from a missing one.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&MachineDTO{}).
			Where("id = ?", machineID.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("machine", machineID.String())
		}
		return errs.NewConflictErrorWithCause("machine", machineID.String(), machine.ErrMachineIsBusy)
	}

	return nil
}

// Release gives the occupancy lock back. The row matches only when the run
// actually holds the machine.
func (r *GormMachineRepository) Release(ctx context.Context, machineID kernel.UUID, runID kernel.UUID) error {
	if err := machineID.Validate(); err != nil {
		return err
	}
	if err := runID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&MachineDTO{}).
		Where("id = ? AND locked_by_run_id = ?", machineID.Bytes(), runID.Bytes()).
		Update("locked_by_run_id", nil)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return machine.ErrMachineNotLockedByRun
	}

	return nil
}
