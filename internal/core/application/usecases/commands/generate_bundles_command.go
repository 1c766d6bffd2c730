package commands

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrGenerateBundlesCommandIsNotConstructed = errors.New(
		"GenerateBundlesCommand must be created via NewGenerateBundlesCommand constructor",
	)
)

// GenerateBundlesCommand represents a request to split a lay's outputs into
// traveling bundles of at most bundleSize pieces each.
type GenerateBundlesCommand struct { //nolint:recvcheck //using for validation
	layID      kernel.UUID
	bundleSize int

	guard guard.ConstructorGuard
}

// NewGenerateBundlesCommand creates a command to generate bundles for a lay.
func NewGenerateBundlesCommand(layID kernel.UUID, bundleSize int) (GenerateBundlesCommand, error) {
	cmd := GenerateBundlesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLayID(layID),
		cmd.setBundleSize(bundleSize),
	); err != nil {
		return GenerateBundlesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateBundlesCommand) Validate() error {
	return c.guard.Validate(ErrGenerateBundlesCommandIsNotConstructed)
}

// LayID returns the lay to bundle.
func (c GenerateBundlesCommand) LayID() kernel.UUID {
	return c.layID
}

// BundleSize returns the maximum pieces per bundle.
func (c GenerateBundlesCommand) BundleSize() int {
	return c.bundleSize
}

func (c *GenerateBundlesCommand) setLayID(layID kernel.UUID) error {
	if err := layID.Validate(); err != nil {
		return err
	}

	c.layID = layID
	return nil
}

func (c *GenerateBundlesCommand) setBundleSize(bundleSize int) error {
	if bundleSize <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("bundleSize",
			fmt.Errorf("%d is not greater than 0", bundleSize))
	}

	c.bundleSize = bundleSize
	return nil
}
