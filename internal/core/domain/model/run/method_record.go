package run

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Process-log event kinds. Each kind corresponds to one thermal step of a
// print method's workflow.
const (
	LogCuring     = "CURING"
	LogHeatPress  = "HEAT_PRESS"
	LogPowderCure = "POWDER_CURE"
)

var (
	// ErrMethodRecordIsNotConstructed indicates that the MethodRecord was not
	// initialized through a constructor function.
	ErrMethodRecordIsNotConstructed = errors.New("MethodRecord must be created via NewMethodRecord constructor")

	// ErrNoRecordForMethod is returned when constructing a record for a method
	// that does not take one (NoMethod).
	ErrNoRecordForMethod = errors.New("method does not take a process record")
)

// MethodPayload is the tagged variant carried by a MethodRecord. Exactly one
// payload struct exists per print method; dispatch is by type switch, never by
// probing nullable fields.
type MethodPayload interface {
	// PayloadMethod returns the method tag of the payload.
	PayloadMethod() Method
}

// SilkscreenPayload holds screen preparation and exposure attributes.
type SilkscreenPayload struct {
	MeshCount       int
	EmulsionBatch   string
	ExposureSeconds int
	InkType         string
	SqueegeeSize    string
}

// PayloadMethod implements MethodPayload.
func (SilkscreenPayload) PayloadMethod() Method { return Silkscreen }

// SublimationPayload holds transfer-paper and ink consumption attributes.
type SublimationPayload struct {
	PaperM2 decimal.Decimal
	InkG    decimal.Decimal
}

// PayloadMethod implements MethodPayload.
func (SublimationPayload) PayloadMethod() Method { return Sublimation }

// DTFPayload holds film, powder and cure-temperature attributes.
type DTFPayload struct {
	FilmM2  decimal.Decimal
	PowderG decimal.Decimal
	TempC   decimal.Decimal
}

// PayloadMethod implements MethodPayload.
func (DTFPayload) PayloadMethod() Method { return DTF }

// EmbroideryPayload holds stitch and thread attributes.
type EmbroideryPayload struct {
	StitchCount  int
	ThreadColors string
	DesignFile   string
}

// PayloadMethod implements MethodPayload.
func (EmbroideryPayload) PayloadMethod() Method { return Embroidery }

// ProcessLogEntry is one immutable, timestamped process event (curing,
// heat-press, powder-cure) appended to a MethodRecord. Entries are never
// overwritten; corrections are new entries.
type ProcessLogEntry struct {
	id              kernel.UUID
	kind            string
	tempC           decimal.Decimal
	durationSeconds int
	notes           string
	loggedAt        time.Time
}

// NewProcessLogEntry creates an immutable process-log entry.
func NewProcessLogEntry(
	id kernel.UUID, kind string, tempC decimal.Decimal, durationSeconds int, notes string, loggedAt time.Time,
) (ProcessLogEntry, error) {
	if err := id.Validate(); err != nil {
		return ProcessLogEntry{}, err
	}

	switch kind {
	case LogCuring, LogHeatPress, LogPowderCure:
	default:
		return ProcessLogEntry{}, errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%q is not a valid process log kind", kind))
	}

	if durationSeconds <= 0 {
		return ProcessLogEntry{}, errs.NewValueIsInvalidErrorWithCause("durationSeconds",
			fmt.Errorf("%d is not greater than 0", durationSeconds))
	}

	return ProcessLogEntry{
		id:              id,
		kind:            kind,
		tempC:           tempC,
		durationSeconds: durationSeconds,
		notes:           notes,
		loggedAt:        loggedAt,
	}, nil
}

// ID returns the entry's unique identifier.
func (e ProcessLogEntry) ID() kernel.UUID { return e.id }

// Kind returns the event kind (CURING, HEAT_PRESS, POWDER_CURE).
func (e ProcessLogEntry) Kind() string { return e.kind }

// TempC returns the recorded temperature in degrees Celsius.
func (e ProcessLogEntry) TempC() decimal.Decimal { return e.tempC }

// DurationSeconds returns the event duration.
func (e ProcessLogEntry) DurationSeconds() int { return e.durationSeconds }

// Notes returns the free-form operator notes.
func (e ProcessLogEntry) Notes() string { return e.notes }

// LoggedAt returns the event timestamp.
func (e ProcessLogEntry) LoggedAt() time.Time { return e.loggedAt }

// MethodRecord is the method-specific sub-record of a production run.
// A run whose method requires a record owns exactly one; it is created on the
// run's first start and carries the method payload plus an append-only
// process log.
type MethodRecord struct {
	id      kernel.UUID
	payload MethodPayload
	logs    []ProcessLogEntry

	guard kernel.ConstructorGuard
}

// NewMethodRecord constructs the default record variant for the given method.
// Returns ErrNoRecordForMethod when the method does not take a record.
func NewMethodRecord(id kernel.UUID, method Method) (*MethodRecord, error) {
	var payload MethodPayload

	switch method {
	case Silkscreen:
		payload = SilkscreenPayload{}
	case Sublimation:
		payload = SublimationPayload{
			PaperM2: decimal.Zero,
			InkG:    decimal.Zero,
		}
	case DTF:
		payload = DTFPayload{
			FilmM2:  decimal.Zero,
			PowderG: decimal.Zero,
			TempC:   decimal.Zero,
		}
	case Embroidery:
		payload = EmbroideryPayload{}
	default:
		return nil, ErrNoRecordForMethod
	}

	return RestoreMethodRecord(id, payload, nil)
}

// RestoreMethodRecord reconstructs a method record from persistent storage.
func RestoreMethodRecord(id kernel.UUID, payload MethodPayload, logs []ProcessLogEntry) (*MethodRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &MethodRecord{
		id:      id,
		payload: payload,
		logs:    logs,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the record was built through a constructor.
func (r *MethodRecord) Validate() error {
	if r == nil {
		return ErrMethodRecordIsNotConstructed
	}
	return r.guard.Validate(ErrMethodRecordIsNotConstructed)
}

// ID returns the record's unique identifier.
func (r *MethodRecord) ID() kernel.UUID {
	return r.id
}

// Method returns the method tag of the record's payload.
func (r *MethodRecord) Method() Method {
	return r.payload.PayloadMethod()
}

// Payload returns the tagged method payload. Callers dispatch on the concrete
// type:
//
//	switch p := record.Payload().(type) {
//	case run.SilkscreenPayload:
//	    // p.MeshCount ...
//	case run.SublimationPayload:
//	    // p.PaperM2 ...
//	}
func (r *MethodRecord) Payload() MethodPayload {
	return r.payload
}

// UpdatePayload replaces the method attributes. The new payload must carry the
// same method tag as the existing one; the record never changes method.
func (r *MethodRecord) UpdatePayload(payload MethodPayload) error {
	if payload == nil {
		return errs.NewValueIsRequiredError("payload")
	}
	if payload.PayloadMethod() != r.Method() {
		return errs.NewValueIsInvalidErrorWithCause("payload",
			fmt.Errorf("record method is %s, payload is %s", r.Method(), payload.PayloadMethod()))
	}
	r.payload = payload
	return nil
}

// AppendLog appends an immutable process-log entry.
// Prior entries are never modified or removed.
func (r *MethodRecord) AppendLog(entry ProcessLogEntry) {
	r.logs = append(r.logs, entry)
}

// Logs returns the append-only process log in insertion order.
func (r *MethodRecord) Logs() []ProcessLogEntry {
	return r.logs
}
