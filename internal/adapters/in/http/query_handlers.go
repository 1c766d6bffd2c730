package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"production/internal/core/application/usecases/queries"
)

// GetRunDetails handles GET /api/v1/runs/{runId} - returns the merged run
// view including ledger totals and the method record, when one exists.
func (s *Server) GetRunDetails(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	query, err := queries.NewGetRunDetailsQuery(runID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	details, err := s.getRunDetailsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp := RunDetailsResponse{
		RunID:        details.RunID.String(),
		OrderID:      details.OrderID.String(),
		StepID:       details.StepID.String(),
		Stage:        details.Stage,
		Method:       details.Method,
		Status:       details.Status,
		TargetQty:    details.TargetQty,
		StartedAt:    details.StartedAt,
		EndedAt:      details.EndedAt,
		CancelReason: details.CancelReason,
		TotalGood:    details.TotalGood,
		TotalReject:  details.TotalReject,
		Yield:        details.Yield,
	}
	if details.MachineID != nil {
		machineID := details.MachineID.String()
		resp.MachineID = &machineID
	}
	if details.Record != nil {
		record := &MethodRecordView{
			Method:     details.Record.Method,
			Payload:    details.Record.Payload,
			ProcessLog: make([]ProcessLogEntryView, 0, len(details.Record.ProcessLog)),
		}
		for _, entry := range details.Record.ProcessLog {
			record.ProcessLog = append(record.ProcessLog, ProcessLogEntryView{
				Kind:            entry.Kind,
				TempC:           entry.TempC.String(),
				DurationSeconds: entry.DurationSeconds,
				Notes:           entry.Notes,
				LoggedAt:        entry.LoggedAt,
			})
		}
		resp.Record = record
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ReconcileRun handles GET /api/v1/runs/{runId}/reconciliation - sums good
// and reject quantities across both ledger sources and reports the yield.
func (s *Server) ReconcileRun(ctx echo.Context) error {
	runID, err := pathID(ctx, "runId")
	if err != nil {
		return badRequest(ctx, "runId must be a valid UUID")
	}

	query, err := queries.NewReconcileRunQuery(runID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.reconcileRunHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReconciliationResponse{
		RunID:       result.RunID.String(),
		Status:      result.Status,
		TargetQty:   result.TargetQty,
		TotalGood:   result.TotalGood,
		TotalReject: result.TotalReject,
		Yield:       result.Yield,
	})
}

// ListMachines handles GET /api/v1/workspaces/{workspaceId}/machines.
func (s *Server) ListMachines(ctx echo.Context) error {
	workspaceID, err := pathID(ctx, "workspaceId")
	if err != nil {
		return badRequest(ctx, "workspaceId must be a valid UUID")
	}

	query, err := queries.NewListMachinesQuery(workspaceID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	machines, err := s.listMachinesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp := make([]MachineResponse, 0, len(machines))
	for _, m := range machines {
		row := MachineResponse{
			ID:         m.ID.String(),
			Name:       m.Name,
			Workcenter: m.Workcenter,
			Stage:      m.Stage,
		}
		if m.LockedByRunID != nil {
			lockedBy := m.LockedByRunID.String()
			row.LockedByRunID = &lockedBy
		}
		resp = append(resp, row)
	}

	return ctx.JSON(http.StatusOK, resp)
}
