package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
)

// CreateCarton handles POST /api/v1/cartons - opens an empty carton.
func (s *Server) CreateCarton(ctx echo.Context) error {
	var req CreateCartonRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	workspaceID, err := kernel.UUIDFromString(req.WorkspaceID)
	if err != nil {
		return badRequest(ctx, "workspaceId must be a valid UUID")
	}

	cartonID := kernel.NewUUID()
	cmd, err := commands.NewCreateCartonCommand(
		cartonID, workspaceID, req.LengthCm, req.WidthCm, req.HeightCm, req.TareKg,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.createCartonHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cartonID.String()})
}

// AddCartonContent handles POST /api/v1/cartons/{cartonId}/contents - claims a
// finished unit and places it in the carton.
func (s *Server) AddCartonContent(ctx echo.Context) error {
	cartonID, err := pathID(ctx, "cartonId")
	if err != nil {
		return badRequest(ctx, "cartonId must be a valid UUID")
	}

	var req AddCartonContentRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	finishedUnitID, err := kernel.UUIDFromString(req.FinishedUnitID)
	if err != nil {
		return badRequest(ctx, "finishedUnitId must be a valid UUID")
	}

	cmd, err := commands.NewAddCartonContentCommand(cartonID, finishedUnitID, req.Qty)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.addCartonContentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CloseCarton handles POST /api/v1/cartons/{cartonId}/close - seals the carton
// and snapshots its weight and fill measurements.
func (s *Server) CloseCarton(ctx echo.Context) error {
	cartonID, err := pathID(ctx, "cartonId")
	if err != nil {
		return badRequest(ctx, "cartonId must be a valid UUID")
	}

	cmd, err := commands.NewCloseCartonCommand(cartonID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.closeCartonHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
