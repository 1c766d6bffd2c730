// Package runrepo provides data transfer objects and mapping functions for
// production run persistence. This package implements the repository pattern
// for the run aggregate, handling the conversion between domain entities and
// database representations, including the append-only ledgers and the
// method-specific record.
package runrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/run"
)

// RunDTO represents the database structure for persisting run aggregates.
// Ledger rows and the method record link back via foreign keys.
type RunDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	WorkspaceID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	OrderID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	StepID       uuid.UUID        `gorm:"type:uuid;not null"`
	Stage        string           `gorm:"type:varchar(32);not null"`
	Method       string           `gorm:"type:varchar(32);not null;default:''"`
	MachineID    *uuid.UUID       `gorm:"type:uuid"`
	OperatorID   *uuid.UUID       `gorm:"type:uuid"`
	TargetQty    int              `gorm:"type:int;not null"`
	Status       string           `gorm:"type:varchar(32);not null"`
	StartedAt    *time.Time       `gorm:"type:timestamptz"`
	EndedAt      *time.Time       `gorm:"type:timestamptz"`
	CancelReason string           `gorm:"type:text;not null;default:''"`
	Outputs      []OutputDTO      `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Rejects      []RejectDTO      `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Materials    []MaterialLogDTO `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Record       *MethodRecordDTO `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for run entities.
func (RunDTO) TableName() string {
	return "runs"
}

// OutputDTO represents one immutable output ledger row.
type OutputDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RunID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	BundleID   *uuid.UUID `gorm:"type:uuid"`
	QtyGood    int        `gorm:"type:int;not null"`
	QtyReject  int        `gorm:"type:int;not null"`
	Notes      string     `gorm:"type:text;not null;default:''"`
	RecordedAt time.Time  `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for output ledger rows.
func (OutputDTO) TableName() string {
	return "run_outputs"
}

// RejectDTO represents one immutable reject ledger row.
type RejectDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	RunID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	BundleID   *uuid.UUID       `gorm:"type:uuid"`
	ReasonCode string           `gorm:"type:varchar(32);not null"`
	Qty        int              `gorm:"type:int;not null"`
	Cost       *decimal.Decimal `gorm:"type:numeric(12,4)"`
	RecordedAt time.Time        `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for reject ledger rows.
func (RejectDTO) TableName() string {
	return "run_rejects"
}

// MaterialLogDTO represents one immutable material consumption row.
type MaterialLogDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RunID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID        *uuid.UUID      `gorm:"type:uuid"`
	UOM           string          `gorm:"type:varchar(16);not null"`
	Qty           decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	SourceBatchID *uuid.UUID      `gorm:"type:uuid"`
	LoggedAt      time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for material consumption rows.
func (MaterialLogDTO) TableName() string {
	return "run_material_logs"
}

// MethodRecordDTO represents the method-specific sub-record of a printing
// run. The payload variant is stored as JSON keyed by the method tag.
type MethodRecordDTO struct {
	ID      uuid.UUID            `gorm:"type:uuid;primaryKey"`
	RunID   uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	Method  string               `gorm:"type:varchar(32);not null"`
	Payload []byte               `gorm:"type:jsonb"`
	Logs    []ProcessLogEntryDTO `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for method records.
func (MethodRecordDTO) TableName() string {
	return "method_records"
}

// ProcessLogEntryDTO represents one immutable process reading.
type ProcessLogEntryDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RecordID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind            string          `gorm:"type:varchar(32);not null"`
	TempC           decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	DurationSeconds int             `gorm:"type:int;not null"`
	Notes           string          `gorm:"type:text;not null;default:''"`
	LoggedAt        time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for process log entries.
func (ProcessLogEntryDTO) TableName() string {
	return "process_log_entries"
}

// fromDomain converts a run aggregate to its database representation.
func fromDomain(aggregate *run.Run) (RunDTO, error) {
	runID := aggregate.ID().Bytes()

	outputs := make([]OutputDTO, 0, len(aggregate.Outputs()))
	for _, o := range aggregate.Outputs() {
		outputs = append(outputs, OutputDTO{
			ID:         o.ID().Bytes(),
			RunID:      runID,
			BundleID:   optionalUUID(o.BundleID()),
			QtyGood:    o.QtyGood(),
			QtyReject:  o.QtyReject(),
			Notes:      o.Notes(),
			RecordedAt: o.RecordedAt(),
		})
	}

	rejects := make([]RejectDTO, 0, len(aggregate.Rejects()))
	for _, rj := range aggregate.Rejects() {
		rejects = append(rejects, RejectDTO{
			ID:         rj.ID().Bytes(),
			RunID:      runID,
			BundleID:   optionalUUID(rj.BundleID()),
			ReasonCode: rj.ReasonCode(),
			Qty:        rj.Qty(),
			Cost:       rj.Cost(),
			RecordedAt: rj.RecordedAt(),
		})
	}

	materials := make([]MaterialLogDTO, 0, len(aggregate.Materials()))
	for _, m := range aggregate.Materials() {
		materials = append(materials, MaterialLogDTO{
			ID:            m.ID().Bytes(),
			RunID:         runID,
			ItemID:        optionalUUID(m.ItemID()),
			UOM:           m.UOM(),
			Qty:           m.Qty(),
			SourceBatchID: optionalUUID(m.SourceBatchID()),
			LoggedAt:      m.LoggedAt(),
		})
	}

	var recordDTO *MethodRecordDTO
	if record := aggregate.MethodRecord(); record != nil {
		dto, err := recordFromDomain(runID, record)
		if err != nil {
			return RunDTO{}, err
		}
		recordDTO = &dto
	}

	return RunDTO{
		ID:           runID,
		WorkspaceID:  aggregate.WorkspaceID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		StepID:       aggregate.StepID().Bytes(),
		Stage:        aggregate.Stage().String(),
		Method:       aggregate.Method().String(),
		MachineID:    optionalUUID(aggregate.MachineID()),
		OperatorID:   optionalUUID(aggregate.OperatorID()),
		TargetQty:    aggregate.TargetQty(),
		Status:       aggregate.Status().String(),
		StartedAt:    aggregate.StartedAt(),
		EndedAt:      aggregate.EndedAt(),
		CancelReason: aggregate.CancelReason(),
		Outputs:      outputs,
		Rejects:      rejects,
		Materials:    materials,
		Record:       recordDTO,
	}, nil
}

func recordFromDomain(runID uuid.UUID, record *run.MethodRecord) (MethodRecordDTO, error) {
	payload, err := marshalPayload(record.Payload())
	if err != nil {
		return MethodRecordDTO{}, err
	}

	recordID := record.ID().Bytes()
	logs := make([]ProcessLogEntryDTO, 0, len(record.Logs()))
	for _, entry := range record.Logs() {
		logs = append(logs, ProcessLogEntryDTO{
			ID:              entry.ID().Bytes(),
			RecordID:        recordID,
			Kind:            entry.Kind(),
			TempC:           entry.TempC(),
			DurationSeconds: entry.DurationSeconds(),
			Notes:           entry.Notes(),
			LoggedAt:        entry.LoggedAt(),
		})
	}

	return MethodRecordDTO{
		ID:      recordID,
		RunID:   runID,
		Method:  record.Method().String(),
		Payload: payload,
		Logs:    logs,
	}, nil
}

// toDomain converts a database DTO to a run aggregate.
func toDomain(dto RunDTO) (*run.Run, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workspaceID, err := kernel.UUIDFromBytes(dto.WorkspaceID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	stepID, err := kernel.UUIDFromBytes(dto.StepID[:])
	if err != nil {
		return nil, err
	}
	machineID, err := domainOptionalUUID(dto.MachineID)
	if err != nil {
		return nil, err
	}
	operatorID, err := domainOptionalUUID(dto.OperatorID)
	if err != nil {
		return nil, err
	}

	stage, err := order.StageFromString(dto.Stage)
	if err != nil {
		return nil, err
	}
	method, err := run.MethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}
	status, err := run.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	outputs, err := outputsToDomain(dto.Outputs)
	if err != nil {
		return nil, err
	}
	rejects, err := rejectsToDomain(dto.Rejects)
	if err != nil {
		return nil, err
	}
	materials, err := materialsToDomain(dto.Materials)
	if err != nil {
		return nil, err
	}

	var record *run.MethodRecord
	if dto.Record != nil {
		record, err = recordToDomain(*dto.Record)
		if err != nil {
			return nil, err
		}
	}

	return run.RestoreRun(
		id, workspaceID, orderID, stepID, stage, method, machineID, operatorID,
		dto.TargetQty, status, dto.StartedAt, dto.EndedAt, dto.CancelReason,
		outputs, rejects, materials, record,
	), nil
}

func outputsToDomain(dtos []OutputDTO) ([]run.Output, error) {
	outputs := make([]run.Output, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		bundleID, err := domainOptionalUUID(dto.BundleID)
		if err != nil {
			return nil, err
		}

		output, err := run.NewOutput(id, bundleID, dto.QtyGood, dto.QtyReject, dto.Notes, dto.RecordedAt)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}
	return outputs, nil
}

func rejectsToDomain(dtos []RejectDTO) ([]run.Reject, error) {
	rejects := make([]run.Reject, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		bundleID, err := domainOptionalUUID(dto.BundleID)
		if err != nil {
			return nil, err
		}

		reject, err := run.NewReject(id, bundleID, dto.ReasonCode, dto.Qty, dto.Cost, dto.RecordedAt)
		if err != nil {
			return nil, err
		}
		rejects = append(rejects, reject)
	}
	return rejects, nil
}

func materialsToDomain(dtos []MaterialLogDTO) ([]run.MaterialLog, error) {
	materials := make([]run.MaterialLog, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		itemID, err := domainOptionalUUID(dto.ItemID)
		if err != nil {
			return nil, err
		}
		sourceBatchID, err := domainOptionalUUID(dto.SourceBatchID)
		if err != nil {
			return nil, err
		}

		material, err := run.NewMaterialLog(id, itemID, dto.UOM, dto.Qty, sourceBatchID, dto.LoggedAt)
		if err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}
	return materials, nil
}

func recordToDomain(dto MethodRecordDTO) (*run.MethodRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	method, err := run.MethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}

	payload, err := unmarshalPayload(method, dto.Payload)
	if err != nil {
		return nil, err
	}

	logs := make([]run.ProcessLogEntry, 0, len(dto.Logs))
	for _, entryDTO := range dto.Logs {
		entryID, entryErr := kernel.UUIDFromBytes(entryDTO.ID[:])
		if entryErr != nil {
			return nil, entryErr
		}

		entry, entryErr := run.NewProcessLogEntry(
			entryID, entryDTO.Kind, entryDTO.TempC, entryDTO.DurationSeconds,
			entryDTO.Notes, entryDTO.LoggedAt)
		if entryErr != nil {
			return nil, entryErr
		}
		logs = append(logs, entry)
	}

	return run.RestoreMethodRecord(id, payload, logs)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainOptionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
