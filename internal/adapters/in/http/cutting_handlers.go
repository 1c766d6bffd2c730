package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
)

// CreateCutLay handles POST /api/v1/cut-lays - declares a spread lay with its
// per-size piece counts and fabric consumption.
func (s *Server) CreateCutLay(ctx echo.Context) error {
	var req CreateCutLayRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "orderId must be a valid UUID")
	}

	entries := make([]commands.CutOutputEntry, 0, len(req.Outputs))
	for _, output := range req.Outputs {
		entries = append(entries, commands.CutOutputEntry{
			SizeCode: output.SizeCode,
			Qty:      output.Qty,
		})
	}

	layID := kernel.NewUUID()
	cmd, err := commands.NewCreateCutLayCommand(
		layID, orderID,
		req.MarkerName, req.MarkerWidthCm, req.LayLengthM,
		req.Plies, req.PiecesPerPly,
		req.UOM, req.GrossQty, req.OffcutsQty, req.DefectsQty,
		entries,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.createCutLayHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: layID.String()})
}

// GenerateBundles handles POST /api/v1/cut-lays/{layId}/bundles - splits the
// lay's cut pieces into sewing bundles of the requested size.
func (s *Server) GenerateBundles(ctx echo.Context) error {
	layID, err := pathID(ctx, "layId")
	if err != nil {
		return badRequest(ctx, "layId must be a valid UUID")
	}

	var req GenerateBundlesRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewGenerateBundlesCommand(layID, req.BundleSize)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.generateBundlesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}
