// Package http exposes the production routing use cases over a JSON REST API.
package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createRunHandler        commands.CreateRunCommandHandler
	startRunHandler         commands.StartRunCommandHandler
	pauseRunHandler         commands.PauseRunCommandHandler
	cancelRunHandler        commands.CancelRunCommandHandler
	completeRunHandler      commands.CompleteRunCommandHandler
	recordOutputHandler     commands.RecordOutputCommandHandler
	recordRejectHandler     commands.RecordRejectCommandHandler
	recordMaterialHandler   commands.RecordMaterialCommandHandler
	appendProcessLogHandler commands.AppendProcessLogCommandHandler
	createCutLayHandler     commands.CreateCutLayCommandHandler
	generateBundlesHandler  commands.GenerateBundlesCommandHandler
	createCartonHandler     commands.CreateCartonCommandHandler
	addCartonContentHandler commands.AddCartonContentCommandHandler
	closeCartonHandler      commands.CloseCartonCommandHandler

	// Query handlers
	getRunDetailsHandler queries.GetRunDetailsQueryHandler
	reconcileRunHandler  queries.ReconcileRunQueryHandler
	listMachinesHandler  queries.ListMachinesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createRunHandler commands.CreateRunCommandHandler,
	startRunHandler commands.StartRunCommandHandler,
	pauseRunHandler commands.PauseRunCommandHandler,
	cancelRunHandler commands.CancelRunCommandHandler,
	completeRunHandler commands.CompleteRunCommandHandler,
	recordOutputHandler commands.RecordOutputCommandHandler,
	recordRejectHandler commands.RecordRejectCommandHandler,
	recordMaterialHandler commands.RecordMaterialCommandHandler,
	appendProcessLogHandler commands.AppendProcessLogCommandHandler,
	createCutLayHandler commands.CreateCutLayCommandHandler,
	generateBundlesHandler commands.GenerateBundlesCommandHandler,
	createCartonHandler commands.CreateCartonCommandHandler,
	addCartonContentHandler commands.AddCartonContentCommandHandler,
	closeCartonHandler commands.CloseCartonCommandHandler,
	getRunDetailsHandler queries.GetRunDetailsQueryHandler,
	reconcileRunHandler queries.ReconcileRunQueryHandler,
	listMachinesHandler queries.ListMachinesQueryHandler,
) *Server {
	return &Server{
		createRunHandler:        createRunHandler,
		startRunHandler:         startRunHandler,
		pauseRunHandler:         pauseRunHandler,
		cancelRunHandler:        cancelRunHandler,
		completeRunHandler:      completeRunHandler,
		recordOutputHandler:     recordOutputHandler,
		recordRejectHandler:     recordRejectHandler,
		recordMaterialHandler:   recordMaterialHandler,
		appendProcessLogHandler: appendProcessLogHandler,
		createCutLayHandler:     createCutLayHandler,
		generateBundlesHandler:  generateBundlesHandler,
		createCartonHandler:     createCartonHandler,
		addCartonContentHandler: addCartonContentHandler,
		closeCartonHandler:      closeCartonHandler,
		getRunDetailsHandler:    getRunDetailsHandler,
		reconcileRunHandler:     reconcileRunHandler,
		listMachinesHandler:     listMachinesHandler,
	}
}

// RegisterRoutes mounts every API route on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/runs", s.CreateRun)
	api.GET("/runs/:runId", s.GetRunDetails)
	api.GET("/runs/:runId/reconciliation", s.ReconcileRun)
	api.POST("/runs/:runId/start", s.StartRun)
	api.POST("/runs/:runId/pause", s.PauseRun)
	api.POST("/runs/:runId/cancel", s.CancelRun)
	api.POST("/runs/:runId/complete", s.CompleteRun)
	api.POST("/runs/:runId/outputs", s.RecordOutput)
	api.POST("/runs/:runId/rejects", s.RecordReject)
	api.POST("/runs/:runId/materials", s.RecordMaterial)
	api.POST("/runs/:runId/process-logs", s.AppendProcessLog)

	api.GET("/workspaces/:workspaceId/machines", s.ListMachines)

	api.POST("/cut-lays", s.CreateCutLay)
	api.POST("/cut-lays/:layId/bundles", s.GenerateBundles)

	api.POST("/cartons", s.CreateCarton)
	api.POST("/cartons/:cartonId/contents", s.AddCartonContent)
	api.POST("/cartons/:cartonId/close", s.CloseCarton)
}

// RequestValidator adapts go-playground/validator to Echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for incoming request bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks a bound request struct against its validate tags.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// errorResponse maps application errors onto HTTP statuses: invalid input is
// 400, unknown resources are 404, lost races are 409 and domain rule
// violations are 422. Everything else stays a generic 500.
func errorResponse(ctx echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return errorJSON(ctx, httpErr.Code, http.StatusText(httpErr.Code))
	case errors.As(err, &validationErrs),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, commands.ErrRunNotFound),
		errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrLayNotFound),
		errors.Is(err, commands.ErrCartonNotFound),
		errors.Is(err, commands.ErrFinishedUnitNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrQuantityExceeded):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "internal server error")
	}
}

func errorJSON(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return errorJSON(ctx, http.StatusBadRequest, message)
}

// pathID parses a UUID path parameter.
func pathID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// optionalID parses an optional UUID taken from a request body.
func optionalID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func bindAndValidate(ctx echo.Context, req interface{}) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return ctx.Validate(req)
}
