package run

import (
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Reject reason codes form a closed vocabulary. Free-form reasons go into the
// notes of an Output row, never into the reason code.
const (
	ReasonMisprint     = "MISPRINT"
	ReasonFabricDefect = "FABRIC_DEFECT"
	ReasonMachineError = "MACHINE_ERROR"
	ReasonStitchDefect = "STITCH_DEFECT"
	ReasonOther        = "OTHER"
)

// ValidateReasonCode checks a reject reason against the closed vocabulary.
func ValidateReasonCode(code string) error {
	switch code {
	case ReasonMisprint, ReasonFabricDefect, ReasonMachineError, ReasonStitchDefect, ReasonOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("reasonCode",
			fmt.Errorf("%q is not a valid reject reason", code))
	}
}

// Output is one immutable yield row of a run's ledger: good and reject piece
// counts, optionally scoped to the bundle being processed. Rows are never
// mutated after creation; corrections are new compensating rows.
type Output struct {
	id         kernel.UUID
	bundleID   *kernel.UUID
	qtyGood    int
	qtyReject  int
	notes      string
	recordedAt time.Time
}

// NewOutput creates an immutable output row. Quantities must be non-negative
// and at least one of them positive.
func NewOutput(
	id kernel.UUID, bundleID *kernel.UUID, qtyGood, qtyReject int, notes string, recordedAt time.Time,
) (Output, error) {
	if err := id.Validate(); err != nil {
		return Output{}, err
	}
	if bundleID != nil {
		if err := bundleID.Validate(); err != nil {
			return Output{}, err
		}
	}
	if qtyGood < 0 || qtyReject < 0 {
		return Output{}, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("good %d / reject %d must be non-negative", qtyGood, qtyReject))
	}
	if qtyGood == 0 && qtyReject == 0 {
		return Output{}, errs.NewValueIsRequiredError("qty")
	}

	return Output{
		id:         id,
		bundleID:   bundleID,
		qtyGood:    qtyGood,
		qtyReject:  qtyReject,
		notes:      notes,
		recordedAt: recordedAt,
	}, nil
}

// ID returns the row's unique identifier.
func (o Output) ID() kernel.UUID { return o.id }

// BundleID returns the bundle the yield belongs to, nil when untracked.
func (o Output) BundleID() *kernel.UUID { return o.bundleID }

// QtyGood returns the good piece count.
func (o Output) QtyGood() int { return o.qtyGood }

// QtyReject returns the rejected piece count recorded alongside the output.
func (o Output) QtyReject() int { return o.qtyReject }

// Notes returns the free-form operator notes.
func (o Output) Notes() string { return o.notes }

// RecordedAt returns the row timestamp.
func (o Output) RecordedAt() time.Time { return o.recordedAt }

// Reject is one immutable reject row with a closed-vocabulary reason and an
// optional cost attribution. Rows are never mutated after creation.
type Reject struct {
	id         kernel.UUID
	bundleID   *kernel.UUID
	reasonCode string
	qty        int
	cost       *decimal.Decimal
	recordedAt time.Time
}

// NewReject creates an immutable reject row.
func NewReject(
	id kernel.UUID, bundleID *kernel.UUID, reasonCode string, qty int, cost *decimal.Decimal, recordedAt time.Time,
) (Reject, error) {
	if err := id.Validate(); err != nil {
		return Reject{}, err
	}
	if bundleID != nil {
		if err := bundleID.Validate(); err != nil {
			return Reject{}, err
		}
	}
	if err := ValidateReasonCode(reasonCode); err != nil {
		return Reject{}, err
	}
	if qty <= 0 {
		return Reject{}, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	if cost != nil && cost.IsNegative() {
		return Reject{}, errs.NewValueIsInvalidErrorWithCause("costAttribution",
			fmt.Errorf("%s is negative", cost))
	}

	return Reject{
		id:         id,
		bundleID:   bundleID,
		reasonCode: reasonCode,
		qty:        qty,
		cost:       cost,
		recordedAt: recordedAt,
	}, nil
}

// ID returns the row's unique identifier.
func (r Reject) ID() kernel.UUID { return r.id }

// BundleID returns the bundle the reject belongs to, nil when untracked.
func (r Reject) BundleID() *kernel.UUID { return r.bundleID }

// ReasonCode returns the closed-vocabulary reject reason.
func (r Reject) ReasonCode() string { return r.reasonCode }

// Qty returns the rejected piece count.
func (r Reject) Qty() int { return r.qty }

// Cost returns the optional cost attribution, nil when not attributed.
func (r Reject) Cost() *decimal.Decimal { return r.cost }

// RecordedAt returns the row timestamp.
func (r Reject) RecordedAt() time.Time { return r.recordedAt }

// MaterialLog is one immutable material-consumption row of a run
// (ink, film, powder, thread), measured in the item's unit of measure.
type MaterialLog struct {
	id            kernel.UUID
	itemID        *kernel.UUID
	uom           string
	qty           decimal.Decimal
	sourceBatchID *kernel.UUID
	loggedAt      time.Time
}

// NewMaterialLog creates an immutable material-consumption row.
func NewMaterialLog(
	id kernel.UUID, itemID *kernel.UUID, uom string, qty decimal.Decimal,
	sourceBatchID *kernel.UUID, loggedAt time.Time,
) (MaterialLog, error) {
	if err := id.Validate(); err != nil {
		return MaterialLog{}, err
	}
	if uom == "" {
		return MaterialLog{}, errs.NewValueIsRequiredError("uom")
	}
	if !qty.IsPositive() {
		return MaterialLog{}, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%s is not greater than 0", qty))
	}

	return MaterialLog{
		id:            id,
		itemID:        itemID,
		uom:           uom,
		qty:           qty,
		sourceBatchID: sourceBatchID,
		loggedAt:      loggedAt,
	}, nil
}

// ID returns the row's unique identifier.
func (m MaterialLog) ID() kernel.UUID { return m.id }

// ItemID returns the consumed inventory item, nil when not itemized.
func (m MaterialLog) ItemID() *kernel.UUID { return m.itemID }

// UOM returns the unit of measure the quantity is expressed in.
func (m MaterialLog) UOM() string { return m.uom }

// Qty returns the consumed quantity.
func (m MaterialLog) Qty() decimal.Decimal { return m.qty }

// SourceBatchID returns the material batch drawn from, nil when untracked.
func (m MaterialLog) SourceBatchID() *kernel.UUID { return m.sourceBatchID }

// LoggedAt returns the row timestamp.
func (m MaterialLog) LoggedAt() time.Time { return m.loggedAt }

// Reconciliation is the derived, non-persisted yield view of a run's ledger.
type Reconciliation struct {
	TotalGood   int
	TotalReject int
	Yield       float64
}
