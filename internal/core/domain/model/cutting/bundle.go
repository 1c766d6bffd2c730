package cutting

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	// ErrBundleIsNotConstructed indicates that the Bundle was not
	// properly initialized through a constructor function.
	ErrBundleIsNotConstructed = errors.New("Bundle must be created via NewBundle constructor")
)

// Bundle is one traceable work packet of cut pieces: a single size from a
// single lay, numbered monotonically within its size. The code is the
// scannable identity that follows the packet across downstream stages.
type Bundle struct {
	id       kernel.UUID
	orderID  kernel.UUID
	layID    kernel.UUID
	sizeCode string
	qty      int
	bundleNo int
	code     string

	guard kernel.ConstructorGuard
}

// NewBundle creates a bundle row. The code must be the globally unique
// identity produced by the bundle generator.
func NewBundle(
	id kernel.UUID, orderID kernel.UUID, layID kernel.UUID,
	sizeCode string, qty, bundleNo int, code string,
) (*Bundle, error) {
	b := &Bundle{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setLayID(layID),
		b.setSizeCode(sizeCode),
		b.setQty(qty),
		b.setBundleNo(bundleNo),
		b.setCode(code),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the Bundle was built through the constructor.
func (b *Bundle) Validate() error {
	if b == nil {
		return ErrBundleIsNotConstructed
	}
	return b.guard.Validate(ErrBundleIsNotConstructed)
}

// IsEqual compares two bundles by their unique identifiers.
func (b *Bundle) IsEqual(other *Bundle) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the bundle's unique identifier.
func (b *Bundle) ID() kernel.UUID { return b.id }

// OrderID returns the order the bundle belongs to.
func (b *Bundle) OrderID() kernel.UUID { return b.orderID }

// LayID returns the cut lay the bundle came from.
func (b *Bundle) LayID() kernel.UUID { return b.layID }

// SizeCode returns the garment size of the bundled pieces.
func (b *Bundle) SizeCode() string { return b.sizeCode }

// Qty returns the piece count in the packet.
func (b *Bundle) Qty() int { return b.qty }

// BundleNo returns the 1-based sequence number within the size.
func (b *Bundle) BundleNo() int { return b.bundleNo }

// Code returns the globally unique scannable bundle code.
func (b *Bundle) Code() string { return b.code }

func (b *Bundle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bundle) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	b.orderID = orderID
	return nil
}

func (b *Bundle) setLayID(layID kernel.UUID) error {
	if err := layID.Validate(); err != nil {
		return err
	}
	b.layID = layID
	return nil
}

func (b *Bundle) setSizeCode(sizeCode string) error {
	if sizeCode == "" {
		return errs.NewValueIsRequiredError("sizeCode")
	}
	b.sizeCode = sizeCode
	return nil
}

func (b *Bundle) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	b.qty = qty
	return nil
}

func (b *Bundle) setBundleNo(bundleNo int) error {
	if bundleNo <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("bundleNo",
			fmt.Errorf("%d is not greater than 0", bundleNo))
	}
	b.bundleNo = bundleNo
	return nil
}

func (b *Bundle) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	b.code = code
	return nil
}
