package cmd

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"production/internal/adapters/out/advisory"
	"production/internal/adapters/out/notify"
	"production/internal/adapters/out/postgres"
	"production/internal/core/application/events"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/ports"
	"production/internal/jobs"
)

// Defaults applied when the corresponding environment variable is unset or
// malformed.
const (
	defaultCartonDimDivisor  = 5000
	defaultUnitWeightKg      = "0.25"
	defaultUnitVolumeCm3     = "1500"
	defaultStaleRunThreshold = 8 * time.Hour
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	advisoryService ports.AdvisoryService
	notifier        ports.Notifier

	cartonDimDivisor     int
	defaultUnitWeightKg  decimal.Decimal
	defaultUnitVolumeCm3 decimal.Decimal
	staleRunThreshold    time.Duration
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	root := CompositionRoot{
		gormDB:               gormDB,
		uowFactory:           *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:               slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		cartonDimDivisor:     intOrDefault(config.CartonDimDivisor, defaultCartonDimDivisor),
		defaultUnitWeightKg:  decimalOrDefault(config.DefaultUnitWeightKg, defaultUnitWeightKg),
		defaultUnitVolumeCm3: decimalOrDefault(config.DefaultUnitVolumeCm3, defaultUnitVolumeCm3),
		staleRunThreshold:    durationOrDefault(config.StaleRunThreshold, defaultStaleRunThreshold),
	}

	if config.AdvisoryServiceURL != "" {
		root.advisoryService = advisory.NewClient(config.AdvisoryServiceURL)
	}
	if config.NotifyServiceURL != "" {
		root.notifier = notify.NewClient(config.NotifyServiceURL)
	}

	return root
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateRunCommandHandler() commands.CreateRunCommandHandler {
	var f commands.CreateRunUoWFactory = FuncCreateRunUoWFactory(func() commands.CreateRunUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRunCommandHandler(f)
}

func (c *CompositionRoot) CreateStartRunCommandHandler() commands.StartRunCommandHandler {
	var f commands.StartRunUoWFactory = FuncStartRunUoWFactory(func() commands.StartRunUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartRunCommandHandler(f, c.advisoryService, c.logger)
}

func (c *CompositionRoot) CreatePauseRunCommandHandler() commands.PauseRunCommandHandler {
	return commands.NewPauseRunCommandHandler(c.runMachineUoWFactory())
}

func (c *CompositionRoot) CreateCancelRunCommandHandler() commands.CancelRunCommandHandler {
	return commands.NewCancelRunCommandHandler(c.runMachineUoWFactory())
}

func (c *CompositionRoot) CreateCompleteRunCommandHandler() commands.CompleteRunCommandHandler {
	var f commands.CompleteRunUoWFactory = FuncCompleteRunUoWFactory(func() commands.CompleteRunUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteRunCommandHandler(f, c.createEventDispatcher())
}

func (c *CompositionRoot) CreateRecordOutputCommandHandler() commands.RecordOutputCommandHandler {
	return commands.NewRecordOutputCommandHandler(c.runUoWFactory())
}

func (c *CompositionRoot) CreateRecordRejectCommandHandler() commands.RecordRejectCommandHandler {
	return commands.NewRecordRejectCommandHandler(c.runUoWFactory())
}

func (c *CompositionRoot) CreateRecordMaterialCommandHandler() commands.RecordMaterialCommandHandler {
	return commands.NewRecordMaterialCommandHandler(c.runUoWFactory())
}

func (c *CompositionRoot) CreateAppendProcessLogCommandHandler() commands.AppendProcessLogCommandHandler {
	return commands.NewAppendProcessLogCommandHandler(c.runUoWFactory())
}

func (c *CompositionRoot) CreateCreateCutLayCommandHandler() commands.CreateCutLayCommandHandler {
	return commands.NewCreateCutLayCommandHandler(c.cuttingUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGenerateBundlesCommandHandler() commands.GenerateBundlesCommandHandler {
	return commands.NewGenerateBundlesCommandHandler(c.cuttingUoWFactory())
}

func (c *CompositionRoot) CreateCreateCartonCommandHandler() commands.CreateCartonCommandHandler {
	return commands.NewCreateCartonCommandHandler(c.packingUoWFactory())
}

func (c *CompositionRoot) CreateAddCartonContentCommandHandler() commands.AddCartonContentCommandHandler {
	return commands.NewAddCartonContentCommandHandler(c.packingUoWFactory())
}

func (c *CompositionRoot) CreateCloseCartonCommandHandler() commands.CloseCartonCommandHandler {
	return commands.NewCloseCartonCommandHandler(c.packingUoWFactory(), c.cartonDimDivisor)
}

func (c *CompositionRoot) CreateGetRunDetailsQueryHandler() queries.GetRunDetailsQueryHandler {
	return queries.NewGetRunDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateReconcileRunQueryHandler() queries.ReconcileRunQueryHandler {
	return queries.NewReconcileRunQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMachinesQueryHandler() queries.ListMachinesQueryHandler {
	return queries.NewListMachinesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListStaleRunsQueryHandler() queries.ListStaleRunsQueryHandler {
	return queries.NewListStaleRunsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateListStaleRunsQueryHandler(), c.staleRunThreshold, c.logger)
}

func (c *CompositionRoot) createEventDispatcher() events.Dispatcher {
	var f events.RunCompletedUoWFactory = FuncRunCompletedUoWFactory(func() events.RunCompletedUoW {
		return c.uowFactory.Create()
	})
	handler := events.NewRunCompletedHandler(
		f, c.notifier, c.logger, c.defaultUnitWeightKg, c.defaultUnitVolumeCm3,
	)
	return events.NewDispatcher(handler, c.logger)
}

func (c *CompositionRoot) runUoWFactory() commands.RunUoWFactory {
	return FuncRunUoWFactory(func() commands.RunUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) runMachineUoWFactory() commands.RunMachineUoWFactory {
	return FuncRunMachineUoWFactory(func() commands.RunMachineUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cuttingUoWFactory() commands.CuttingUoWFactory {
	return FuncCuttingUoWFactory(func() commands.CuttingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) packingUoWFactory() commands.PackingUoWFactory {
	return FuncPackingUoWFactory(func() commands.PackingUoW {
		return c.uowFactory.Create()
	})
}

type FuncRunUoWFactory func() commands.RunUoW

func (f FuncRunUoWFactory) Create() commands.RunUoW {
	return f()
}

type FuncCreateRunUoWFactory func() commands.CreateRunUoW

func (f FuncCreateRunUoWFactory) Create() commands.CreateRunUoW {
	return f()
}

type FuncRunMachineUoWFactory func() commands.RunMachineUoW

func (f FuncRunMachineUoWFactory) Create() commands.RunMachineUoW {
	return f()
}

type FuncStartRunUoWFactory func() commands.StartRunUoW

func (f FuncStartRunUoWFactory) Create() commands.StartRunUoW {
	return f()
}

type FuncCompleteRunUoWFactory func() commands.CompleteRunUoW

func (f FuncCompleteRunUoWFactory) Create() commands.CompleteRunUoW {
	return f()
}

type FuncCuttingUoWFactory func() commands.CuttingUoW

func (f FuncCuttingUoWFactory) Create() commands.CuttingUoW {
	return f()
}

type FuncPackingUoWFactory func() commands.PackingUoW

func (f FuncPackingUoWFactory) Create() commands.PackingUoW {
	return f()
}

type FuncRunCompletedUoWFactory func() events.RunCompletedUoW

func (f FuncRunCompletedUoWFactory) Create() events.RunCompletedUoW {
	return f()
}

func intOrDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func decimalOrDefault(raw string, fallback string) decimal.Decimal {
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		return decimal.RequireFromString(fallback)
	}
	return value
}

func durationOrDefault(raw string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
