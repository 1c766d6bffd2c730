package postgres

import (
	"gorm.io/gorm"

	"production/internal/adapters/out/postgres/cuttingrepo"
	"production/internal/adapters/out/postgres/machinerepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/packingrepo"
	"production/internal/adapters/out/postgres/runrepo"
)

// Migrate creates or updates the schema for every persisted aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.RoutingStepDTO{},
		&machinerepo.MachineDTO{},
		&runrepo.RunDTO{},
		&runrepo.OutputDTO{},
		&runrepo.RejectDTO{},
		&runrepo.MaterialLogDTO{},
		&runrepo.MethodRecordDTO{},
		&runrepo.ProcessLogEntryDTO{},
		&cuttingrepo.CutLayDTO{},
		&cuttingrepo.CutOutputDTO{},
		&cuttingrepo.BundleDTO{},
		&packingrepo.CartonDTO{},
		&packingrepo.CartonContentDTO{},
		&packingrepo.FinishedUnitDTO{},
	)
}
