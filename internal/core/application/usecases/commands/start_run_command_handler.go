package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/run"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

const advisoryTimeout = 3 * time.Second

var (
	// ErrRunNotFound indicates the referenced run does not exist.
	ErrRunNotFound = errors.New("run not found")
)

// StartRunCommandHandler handles the business logic for starting a run.
// Acquires the machine lock when a machine is bound (the machine must serve
// the run's stage), activates the order's routing step on the first start and
// initializes the method record. After the transaction commits the
// advisory service is consulted; its failure is logged and never surfaced.
type StartRunCommandHandler struct {
	uowFactory StartRunUoWFactory
	registry   services.MethodRegistry
	advisory   ports.AdvisoryService
	logger     *slog.Logger
}

// NewStartRunCommandHandler creates a handler for starting runs. The advisory
// service may be nil, in which case the post-start analysis is skipped.
func NewStartRunCommandHandler(
	uowFactory StartRunUoWFactory, advisory ports.AdvisoryService, logger *slog.Logger,
) StartRunCommandHandler {
	return StartRunCommandHandler{
		uowFactory: uowFactory,
		registry:   services.NewMethodRegistry(),
		advisory:   advisory,
		logger:     logger,
	}
}

// Handle processes the start command. Starting an occupied machine fails with
// a conflict before the run's status changes.
func (h StartRunCommandHandler) Handle(ctx context.Context, cmd StartRunCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	runRepo := uow.RunRepository()

	productionRun, err := runRepo.Get(ctx, cmd.RunID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRunNotFound
	}
	if err != nil {
		return err
	}

	firstStart := productionRun.StartedAt() == nil

	if err = h.acquireMachine(ctx, uow, productionRun); err != nil {
		return err
	}

	if err = h.registry.Initialize(productionRun); err != nil {
		return err
	}

	if err = productionRun.Start(time.Now()); err != nil {
		return err
	}

	if firstStart {
		if err = h.activateStep(ctx, uow, productionRun.OrderID(), productionRun.StepID()); err != nil {
			return err
		}
	}

	if err = runRepo.Update(ctx, productionRun); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.consultAdvisory(ctx, cmd)

	return nil
}

// acquireMachine locks the bound machine for the run. The machine must serve
// the run's stage; the lock itself is a single compare-and-set. Machineless
// runs skip occupancy entirely.
func (h StartRunCommandHandler) acquireMachine(
	ctx context.Context, uow StartRunUoW, productionRun *run.Run,
) error {
	machineID := productionRun.MachineID()
	if machineID == nil {
		return nil
	}

	machineRepo := uow.MachineRepository()

	boundMachine, err := machineRepo.Get(ctx, *machineID)
	if err != nil {
		return err
	}

	if boundMachine.Stage() != productionRun.Stage() {
		return errs.NewValueIsInvalidErrorWithCause("machineId",
			fmt.Errorf("machine serves stage %s, run executes stage %s",
				boundMachine.Stage(), productionRun.Stage()))
	}

	return machineRepo.Acquire(ctx, *machineID, productionRun.ID())
}

// activateStep moves the routing step to Active. A step already active, for
// example after a pause, is left as is.
func (h StartRunCommandHandler) activateStep(
	ctx context.Context, uow StartRunUoW, orderID, stepID kernel.UUID,
) error {
	orderRepo := uow.OrderRepository()

	productionOrder, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	step, err := productionOrder.FindStep(stepID)
	if err != nil {
		return err
	}

	if step.Status() == order.StepActive {
		return nil
	}

	if err = step.Activate(); err != nil {
		return err
	}

	return orderRepo.UpdateStep(ctx, orderID, step)
}

func (h StartRunCommandHandler) consultAdvisory(ctx context.Context, cmd StartRunCommand) {
	if h.advisory == nil {
		return
	}

	advisoryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), advisoryTimeout)
	defer cancel()

	advisory, err := h.advisory.AnalyzeRun(advisoryCtx, cmd.RunID())
	if err != nil {
		h.logger.WarnContext(ctx, "run advisory analysis failed",
			slog.String("runId", cmd.RunID().String()),
			slog.Any("error", err))
		return
	}

	h.logger.InfoContext(ctx, "run advisory",
		slog.String("runId", cmd.RunID().String()),
		slog.String("risk", advisory.Risk),
		slog.Float64("confidence", advisory.Confidence))
}
