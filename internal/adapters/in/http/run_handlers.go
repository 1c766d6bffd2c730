package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
)

// CreateRun handles POST /api/v1/runs - registers a run for a routing step.
func (s *Server) CreateRun(ctx echo.Context) error {
	var req CreateRunRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "orderId must be a valid UUID")
	}
	machineID, err := optionalID(req.MachineID)
	if err != nil {
		return badRequest(ctx, "machineId must be a valid UUID")
	}
	operatorID, err := optionalID(req.OperatorID)
	if err != nil {
		return badRequest(ctx, "operatorId must be a valid UUID")
	}

	runID := kernel.NewUUID()
	cmd, err := commands.NewCreateRunCommand(
		runID, orderID, machineID, operatorID, req.Stage, req.Method, req.TargetQty,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.createRunHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: runID.String()})
}

// StartRun handles POST /api/v1/runs/{runId}/start - acquires the machine and
// begins production.
func (s *Server) StartRun(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	cmd, err := commands.NewStartRunCommand(runID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.startRunHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PauseRun handles POST /api/v1/runs/{runId}/pause.
func (s *Server) PauseRun(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	cmd, err := commands.NewPauseRunCommand(runID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.pauseRunHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelRun handles POST /api/v1/runs/{runId}/cancel - aborts the run and
// releases its machine.
func (s *Server) CancelRun(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	var req CancelRunRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCancelRunCommand(runID, req.Reason)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.cancelRunHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteRun handles POST /api/v1/runs/{runId}/complete - records final
// tallies, closes the run and frees the machine.
func (s *Server) CompleteRun(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	var req CompleteRunRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	outputs := make([]commands.FinalOutput, 0, len(req.Outputs))
	for _, entry := range req.Outputs {
		bundleID, bundleErr := optionalID(entry.BundleID)
		if bundleErr != nil {
			return badRequest(ctx, "bundleId must be a valid UUID")
		}
		outputs = append(outputs, commands.FinalOutput{
			BundleID:  bundleID,
			QtyGood:   entry.QtyGood,
			QtyReject: entry.QtyReject,
			Notes:     entry.Notes,
		})
	}

	rejects := make([]commands.FinalReject, 0, len(req.Rejects))
	for _, entry := range req.Rejects {
		bundleID, bundleErr := optionalID(entry.BundleID)
		if bundleErr != nil {
			return badRequest(ctx, "bundleId must be a valid UUID")
		}
		rejects = append(rejects, commands.FinalReject{
			BundleID:   bundleID,
			ReasonCode: entry.ReasonCode,
			Qty:        entry.Qty,
			Cost:       entry.Cost,
		})
	}

	cmd, err := commands.NewCompleteRunCommand(runID, outputs, rejects)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.completeRunHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordOutput handles POST /api/v1/runs/{runId}/outputs.
func (s *Server) RecordOutput(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	var req RecordOutputRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	bundleID, err := optionalID(req.BundleID)
	if err != nil {
		return badRequest(ctx, "bundleId must be a valid UUID")
	}

	cmd, err := commands.NewRecordOutputCommand(runID, bundleID, req.QtyGood, req.QtyReject, req.Notes)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.recordOutputHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordReject handles POST /api/v1/runs/{runId}/rejects.
func (s *Server) RecordReject(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	var req RecordRejectRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	bundleID, err := optionalID(req.BundleID)
	if err != nil {
		return badRequest(ctx, "bundleId must be a valid UUID")
	}

	cmd, err := commands.NewRecordRejectCommand(runID, bundleID, req.ReasonCode, req.Qty, req.Cost)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.recordRejectHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordMaterial handles POST /api/v1/runs/{runId}/materials.
func (s *Server) RecordMaterial(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	var req RecordMaterialRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	itemID, err := optionalID(req.ItemID)
	if err != nil {
		return badRequest(ctx, "itemId must be a valid UUID")
	}
	sourceBatchID, err := optionalID(req.SourceBatchID)
	if err != nil {
		return badRequest(ctx, "sourceBatchId must be a valid UUID")
	}

	cmd, err := commands.NewRecordMaterialCommand(runID, itemID, req.UOM, req.Qty, sourceBatchID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.recordMaterialHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AppendProcessLog handles POST /api/v1/runs/{runId}/process-logs - adds a
// curing or pressing reading to the run's method record.
func (s *Server) AppendProcessLog(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	var req AppendProcessLogRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAppendProcessLogCommand(
		runID, req.Kind, req.TempC, req.DurationSeconds, req.Notes,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.appendProcessLogHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
