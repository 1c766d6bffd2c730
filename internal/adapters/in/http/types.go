package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse carries the server-generated identifier of a new resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// CreateRunRequest is the body for POST /api/v1/runs.
type CreateRunRequest struct {
	OrderID    string  `json:"orderId" validate:"required,uuid"`
	MachineID  *string `json:"machineId,omitempty" validate:"omitempty,uuid"`
	OperatorID *string `json:"operatorId,omitempty" validate:"omitempty,uuid"`
	Stage      string  `json:"stage" validate:"required"`
	Method     string  `json:"method"`
	TargetQty  int     `json:"targetQty" validate:"required,gt=0"`
}

// CancelRunRequest is the body for POST /api/v1/runs/{runId}/cancel.
type CancelRunRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// OutputEntry is one good/reject tally row in a completion request.
type OutputEntry struct {
	BundleID  *string `json:"bundleId,omitempty" validate:"omitempty,uuid"`
	QtyGood   int     `json:"qtyGood" validate:"gte=0"`
	QtyReject int     `json:"qtyReject" validate:"gte=0"`
	Notes     string  `json:"notes,omitempty"`
}

// RejectEntry is one standalone reject row in a completion request.
type RejectEntry struct {
	BundleID   *string          `json:"bundleId,omitempty" validate:"omitempty,uuid"`
	ReasonCode string           `json:"reasonCode" validate:"required"`
	Qty        int              `json:"qty" validate:"required,gt=0"`
	Cost       *decimal.Decimal `json:"cost,omitempty"`
}

// CompleteRunRequest is the body for POST /api/v1/runs/{runId}/complete.
// Both lists may be empty when the operator recorded everything inline.
type CompleteRunRequest struct {
	Outputs []OutputEntry `json:"outputs" validate:"dive"`
	Rejects []RejectEntry `json:"rejects" validate:"dive"`
}

// RecordOutputRequest is the body for POST /api/v1/runs/{runId}/outputs.
type RecordOutputRequest struct {
	BundleID  *string `json:"bundleId,omitempty" validate:"omitempty,uuid"`
	QtyGood   int     `json:"qtyGood" validate:"gte=0"`
	QtyReject int     `json:"qtyReject" validate:"gte=0"`
	Notes     string  `json:"notes,omitempty"`
}

// RecordRejectRequest is the body for POST /api/v1/runs/{runId}/rejects.
type RecordRejectRequest struct {
	BundleID   *string          `json:"bundleId,omitempty" validate:"omitempty,uuid"`
	ReasonCode string           `json:"reasonCode" validate:"required"`
	Qty        int              `json:"qty" validate:"required,gt=0"`
	Cost       *decimal.Decimal `json:"cost,omitempty"`
}

// RecordMaterialRequest is the body for POST /api/v1/runs/{runId}/materials.
type RecordMaterialRequest struct {
	ItemID        *string         `json:"itemId,omitempty" validate:"omitempty,uuid"`
	UOM           string          `json:"uom" validate:"required"`
	Qty           decimal.Decimal `json:"qty"`
	SourceBatchID *string         `json:"sourceBatchId,omitempty" validate:"omitempty,uuid"`
}

// AppendProcessLogRequest is the body for POST /api/v1/runs/{runId}/process-logs.
type AppendProcessLogRequest struct {
	Kind            string          `json:"kind" validate:"required"`
	TempC           decimal.Decimal `json:"tempC"`
	DurationSeconds int             `json:"durationSeconds" validate:"required,gt=0"`
	Notes           string          `json:"notes,omitempty"`
}

// CutOutputEntry is one size row of a lay declaration.
type CutOutputEntry struct {
	SizeCode string `json:"sizeCode" validate:"required"`
	Qty      int    `json:"qty" validate:"required,gt=0"`
}

// CreateCutLayRequest is the body for POST /api/v1/cut-lays.
type CreateCutLayRequest struct {
	OrderID       string           `json:"orderId" validate:"required,uuid"`
	MarkerName    string           `json:"markerName" validate:"required"`
	MarkerWidthCm decimal.Decimal  `json:"markerWidthCm"`
	LayLengthM    decimal.Decimal  `json:"layLengthM"`
	Plies         int              `json:"plies" validate:"required,gt=0"`
	PiecesPerPly  int              `json:"piecesPerPly" validate:"required,gt=0"`
	UOM           string           `json:"uom" validate:"required"`
	GrossQty      decimal.Decimal  `json:"grossQty"`
	OffcutsQty    decimal.Decimal  `json:"offcutsQty"`
	DefectsQty    decimal.Decimal  `json:"defectsQty"`
	Outputs       []CutOutputEntry `json:"outputs" validate:"required,min=1,dive"`
}

// GenerateBundlesRequest is the body for POST /api/v1/cut-lays/{layId}/bundles.
type GenerateBundlesRequest struct {
	BundleSize int `json:"bundleSize" validate:"required,gt=0"`
}

// CreateCartonRequest is the body for POST /api/v1/cartons.
type CreateCartonRequest struct {
	WorkspaceID string          `json:"workspaceId" validate:"required,uuid"`
	LengthCm    decimal.Decimal `json:"lengthCm"`
	WidthCm     decimal.Decimal `json:"widthCm"`
	HeightCm    decimal.Decimal `json:"heightCm"`
	TareKg      decimal.Decimal `json:"tareKg"`
}

// AddCartonContentRequest is the body for POST /api/v1/cartons/{cartonId}/contents.
type AddCartonContentRequest struct {
	FinishedUnitID string `json:"finishedUnitId" validate:"required,uuid"`
	Qty            int    `json:"qty" validate:"required,gt=0"`
}

// ProcessLogEntryView is one process log row in a run details response.
type ProcessLogEntryView struct {
	Kind            string    `json:"kind"`
	TempC           string    `json:"tempC"`
	DurationSeconds int       `json:"durationSeconds"`
	Notes           string    `json:"notes,omitempty"`
	LoggedAt        time.Time `json:"loggedAt"`
}

// MethodRecordView is the method-specific section of a run details response.
type MethodRecordView struct {
	Method     string                `json:"method"`
	Payload    json.RawMessage       `json:"payload,omitempty"`
	ProcessLog []ProcessLogEntryView `json:"processLog"`
}

// RunDetailsResponse is the merged read view returned by GET /api/v1/runs/{runId}.
type RunDetailsResponse struct {
	RunID        string            `json:"runId"`
	OrderID      string            `json:"orderId"`
	StepID       string            `json:"stepId"`
	Stage        string            `json:"stage"`
	Method       string            `json:"method,omitempty"`
	MachineID    *string           `json:"machineId,omitempty"`
	Status       string            `json:"status"`
	TargetQty    int               `json:"targetQty"`
	StartedAt    *time.Time        `json:"startedAt,omitempty"`
	EndedAt      *time.Time        `json:"endedAt,omitempty"`
	CancelReason string            `json:"cancelReason,omitempty"`
	TotalGood    int               `json:"totalGood"`
	TotalReject  int               `json:"totalReject"`
	Yield        float64           `json:"yield"`
	Record       *MethodRecordView `json:"record,omitempty"`
}

// ReconciliationResponse is returned by GET /api/v1/runs/{runId}/reconciliation.
type ReconciliationResponse struct {
	RunID       string  `json:"runId"`
	Status      string  `json:"status"`
	TargetQty   int     `json:"targetQty"`
	TotalGood   int     `json:"totalGood"`
	TotalReject int     `json:"totalReject"`
	Yield       float64 `json:"yield"`
}

// MachineResponse is one row of GET /api/v1/workspaces/{workspaceId}/machines.
type MachineResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Workcenter    string  `json:"workcenter"`
	Stage         string  `json:"stage"`
	LockedByRunID *string `json:"lockedByRunId,omitempty"`
}
