package kernel

import (
	"errors"
	"fmt"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrDimensionsAreNotConstructed is returned when attempting to use improperly initialized Dimensions.
// Dimensions must be created using the NewDimensions constructor to ensure validity.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensions represents the outer measurements of a physical container in
// centimeters. Dimensions is an immutable value object; all sides must be
// strictly positive. The zero value is invalid and fails validation - use the
// constructor to create instances.
//
// Example:
//
//	dims, err := kernel.NewDimensions(
//	    decimal.NewFromInt(40),
//	    decimal.NewFromInt(30),
//	    decimal.NewFromInt(25),
//	)
//	if err != nil {
//	    // Handle validation error
//	}
//	volume := dims.Volume() // 30000 cm³
type Dimensions struct { //nolint:recvcheck //using for validation
	length decimal.Decimal
	width  decimal.Decimal
	height decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewDimensions creates Dimensions from length, width and height in centimeters.
// All three sides must be greater than zero.
func NewDimensions(length, width, height decimal.Decimal) (Dimensions, error) {
	dims := Dimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dims.setLength(length),
		dims.setWidth(width),
		dims.setHeight(height),
	); err != nil {
		return Dimensions{}, err
	}

	return dims, nil
}

// Validate checks if the Dimensions were properly constructed using the constructor.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// Length returns the length side in centimeters.
func (d Dimensions) Length() decimal.Decimal {
	return d.length
}

// Width returns the width side in centimeters.
func (d Dimensions) Width() decimal.Decimal {
	return d.width
}

// Height returns the height side in centimeters.
func (d Dimensions) Height() decimal.Decimal {
	return d.height
}

// Volume returns the enclosed volume in cubic centimeters (length × width × height).
func (d Dimensions) Volume() decimal.Decimal {
	return d.length.Mul(d.width).Mul(d.height)
}

// IsEqual compares two Dimensions value objects side by side.
func (d Dimensions) IsEqual(other Dimensions) bool {
	return d.length.Equal(other.length) &&
		d.width.Equal(other.width) &&
		d.height.Equal(other.height)
}

// String returns a human-readable representation, e.g. "40x30x25cm".
func (d Dimensions) String() string {
	return fmt.Sprintf("%sx%sx%scm", d.length, d.width, d.height)
}

func (d *Dimensions) setLength(length decimal.Decimal) error {
	if !length.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("length",
			fmt.Errorf("%s is not greater than 0", length))
	}
	d.length = length
	return nil
}

func (d *Dimensions) setWidth(width decimal.Decimal) error {
	if !width.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("width",
			fmt.Errorf("%s is not greater than 0", width))
	}
	d.width = width
	return nil
}

func (d *Dimensions) setHeight(height decimal.Decimal) error {
	if !height.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("height",
			fmt.Errorf("%s is not greater than 0", height))
	}
	d.height = height
	return nil
}
