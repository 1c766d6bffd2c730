package cutting

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Fabric units of measure accepted on a lay.
const (
	UOMKilogram = "KG"
	UOMMeter    = "M"
)

var (
	// ErrCutLayIsNotConstructed indicates that the CutLay was not
	// properly initialized through a constructor function.
	ErrCutLayIsNotConstructed = errors.New("CutLay must be created via NewCutLay constructor")
)

// ValidateUOM checks a fabric unit of measure against the accepted set.
func ValidateUOM(uom string) error {
	switch uom {
	case UOMKilogram, UOMMeter:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("uom",
			fmt.Errorf("%q is not a valid unit of measure", uom))
	}
}

// CutOutput is one per-size piece count produced by a lay.
type CutOutput struct {
	sizeCode string
	qty      int
}

// NewCutOutput creates a per-size output row.
func NewCutOutput(sizeCode string, qty int) (CutOutput, error) {
	if sizeCode == "" {
		return CutOutput{}, errs.NewValueIsRequiredError("sizeCode")
	}
	if qty <= 0 {
		return CutOutput{}, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	return CutOutput{sizeCode: sizeCode, qty: qty}, nil
}

// SizeCode returns the garment size the pieces belong to.
func (c CutOutput) SizeCode() string { return c.sizeCode }

// Qty returns the piece count for the size.
func (c CutOutput) Qty() int { return c.qty }

// CutLay is the aggregate for one fabric spread on the cutting table.
// It records the marker, the fabric drawn (gross) and where it went:
// net consumed by the cut plus offcuts plus defect trim.
//
// Key business rules:
//   - Gross, offcuts and defects are non-negative; offcuts plus defects never
//     exceed gross
//   - Net usage is derived, never stored: net = gross - offcuts - defects
//   - Outputs carry per-size piece counts; a count diverging from
//     plies x piecesPerPly is a warning signal, never a rejection
type CutLay struct {
	id          kernel.UUID
	workspaceID kernel.UUID
	orderID     kernel.UUID

	markerName    string
	markerWidthCm decimal.Decimal
	layLengthM    decimal.Decimal
	plies         int
	piecesPerPly  int

	uom     string
	gross   decimal.Decimal
	offcuts decimal.Decimal
	defects decimal.Decimal

	outputs   []CutOutput
	createdAt time.Time

	guard kernel.ConstructorGuard
}

// NewCutLay creates a lay with its fabric accounting and per-size outputs.
// piecesPerPly may be zero when the marker ratio is unknown; divergence
// checking is then disabled.
func NewCutLay(
	id kernel.UUID,
	workspaceID kernel.UUID,
	orderID kernel.UUID,
	markerName string,
	markerWidthCm decimal.Decimal,
	layLengthM decimal.Decimal,
	plies int,
	piecesPerPly int,
	uom string,
	gross decimal.Decimal,
	offcuts decimal.Decimal,
	defects decimal.Decimal,
	outputs []CutOutput,
	createdAt time.Time,
) (*CutLay, error) {
	lay := &CutLay{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		lay.setID(id),
		lay.setWorkspaceID(workspaceID),
		lay.setOrderID(orderID),
		lay.setMarker(markerName, markerWidthCm),
		lay.setLayLength(layLengthM),
		lay.setPlies(plies, piecesPerPly),
		lay.setFabric(uom, gross, offcuts, defects),
		lay.setOutputs(outputs),
	); err != nil {
		return nil, err
	}

	lay.createdAt = createdAt
	return lay, nil
}

// Validate ensures the CutLay was built through the constructor.
func (l *CutLay) Validate() error {
	if l == nil {
		return ErrCutLayIsNotConstructed
	}
	return l.guard.Validate(ErrCutLayIsNotConstructed)
}

// IsEqual compares two lays by their unique identifiers.
func (l *CutLay) IsEqual(other *CutLay) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the lay's unique identifier.
func (l *CutLay) ID() kernel.UUID { return l.id }

// WorkspaceID returns the tenant the lay belongs to.
func (l *CutLay) WorkspaceID() kernel.UUID { return l.workspaceID }

// OrderID returns the order the lay cuts for.
func (l *CutLay) OrderID() kernel.UUID { return l.orderID }

// MarkerName returns the marker (cut plan) identifier.
func (l *CutLay) MarkerName() string { return l.markerName }

// MarkerWidthCm returns the marker width in centimeters.
func (l *CutLay) MarkerWidthCm() decimal.Decimal { return l.markerWidthCm }

// LayLengthM returns the spread length in meters.
func (l *CutLay) LayLengthM() decimal.Decimal { return l.layLengthM }

// Plies returns the number of fabric layers in the spread.
func (l *CutLay) Plies() int { return l.plies }

// PiecesPerPly returns the marker's piece count per layer, zero when unknown.
func (l *CutLay) PiecesPerPly() int { return l.piecesPerPly }

// UOM returns the fabric unit of measure (KG or M).
func (l *CutLay) UOM() string { return l.uom }

// Gross returns the fabric drawn for the lay.
func (l *CutLay) Gross() decimal.Decimal { return l.gross }

// Offcuts returns the reusable remainder.
func (l *CutLay) Offcuts() decimal.Decimal { return l.offcuts }

// Defects returns the fabric lost to defect trim.
func (l *CutLay) Defects() decimal.Decimal { return l.defects }

// Net returns the fabric actually consumed by the cut.
// Derived on every call so it cannot drift from the stored components.
func (l *CutLay) Net() decimal.Decimal {
	return l.gross.Sub(l.offcuts).Sub(l.defects)
}

// Outputs returns the per-size piece counts.
func (l *CutLay) Outputs() []CutOutput { return l.outputs }

// CreatedAt returns the lay timestamp.
func (l *CutLay) CreatedAt() time.Time { return l.createdAt }

// TotalPieces returns the sum of all per-size outputs.
func (l *CutLay) TotalPieces() int {
	total := 0
	for _, o := range l.outputs {
		total += o.qty
	}
	return total
}

// PieceCountDiverges reports whether the cut outputs disagree with the
// expected plies x piecesPerPly count. A divergence is a signal for the
// operator, not an error; callers log it and proceed.
//
// Returns the expected count alongside the flag; expected is zero and the
// flag false when piecesPerPly is unknown.
func (l *CutLay) PieceCountDiverges() (expected int, diverges bool) {
	if l.piecesPerPly == 0 {
		return 0, false
	}
	expected = l.plies * l.piecesPerPly
	return expected, l.TotalPieces() != expected
}

func (l *CutLay) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *CutLay) setWorkspaceID(workspaceID kernel.UUID) error {
	if err := workspaceID.Validate(); err != nil {
		return err
	}
	l.workspaceID = workspaceID
	return nil
}

func (l *CutLay) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	l.orderID = orderID
	return nil
}

func (l *CutLay) setMarker(name string, widthCm decimal.Decimal) error {
	if name == "" {
		return errs.NewValueIsRequiredError("markerName")
	}
	if !widthCm.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("markerWidthCm",
			fmt.Errorf("%s is not greater than 0", widthCm))
	}
	l.markerName = name
	l.markerWidthCm = widthCm
	return nil
}

func (l *CutLay) setLayLength(lengthM decimal.Decimal) error {
	if !lengthM.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("layLengthM",
			fmt.Errorf("%s is not greater than 0", lengthM))
	}
	l.layLengthM = lengthM
	return nil
}

func (l *CutLay) setPlies(plies, piecesPerPly int) error {
	if plies <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("plies",
			fmt.Errorf("%d is not greater than 0", plies))
	}
	if piecesPerPly < 0 {
		return errs.NewValueIsInvalidErrorWithCause("piecesPerPly",
			fmt.Errorf("%d is negative", piecesPerPly))
	}
	l.plies = plies
	l.piecesPerPly = piecesPerPly
	return nil
}

// setFabric validates the fabric conservation rule: the drawn quantity fully
// accounts for net usage, offcuts and defect trim.
func (l *CutLay) setFabric(uom string, gross, offcuts, defects decimal.Decimal) error {
	if err := ValidateUOM(uom); err != nil {
		return err
	}
	if gross.IsNegative() || offcuts.IsNegative() || defects.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("fabric",
			fmt.Errorf("gross %s, offcuts %s, defects %s must be non-negative", gross, offcuts, defects))
	}
	if offcuts.Add(defects).GreaterThan(gross) {
		return errs.NewValueIsInvalidErrorWithCause("fabric",
			fmt.Errorf("offcuts %s plus defects %s exceed gross %s", offcuts, defects, gross))
	}

	l.uom = uom
	l.gross = gross
	l.offcuts = offcuts
	l.defects = defects
	return nil
}

func (l *CutLay) setOutputs(outputs []CutOutput) error {
	if len(outputs) == 0 {
		return errs.NewValueIsRequiredError("outputs")
	}

	seen := make(map[string]bool, len(outputs))
	for _, o := range outputs {
		if seen[o.sizeCode] {
			return errs.NewValueIsInvalidErrorWithCause("outputs",
				fmt.Errorf("duplicate size code %q", o.sizeCode))
		}
		seen[o.sizeCode] = true
	}

	l.outputs = outputs
	return nil
}
