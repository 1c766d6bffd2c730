package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
)

var (
	// ErrLayNotFound indicates the referenced lay does not exist.
	ErrLayNotFound = errors.New("cut lay not found")

	// ErrLayAlreadyBundled indicates the lay's outputs were already split
	// into bundles.
	ErrLayAlreadyBundled = errors.New("lay already has bundles")
)

// GenerateBundlesCommandHandler handles the business logic for bundle
// generation. The whole batch persists in one transaction. A lay is bundled
// at most once: a repeat request is rejected, keeping the sum of bundle
// quantities equal to the lay's output quantities.
type GenerateBundlesCommandHandler struct {
	uowFactory CuttingUoWFactory
	generator  services.BundleGenerator
}

// NewGenerateBundlesCommandHandler creates a handler for bundle generation.
func NewGenerateBundlesCommandHandler(uowFactory CuttingUoWFactory) GenerateBundlesCommandHandler {
	return GenerateBundlesCommandHandler{
		uowFactory: uowFactory,
		generator:  services.NewBundleGenerator(),
	}
}

// Handle processes the generation command. Every piece of every output lands
// in exactly one bundle.
func (h GenerateBundlesCommandHandler) Handle(ctx context.Context, cmd GenerateBundlesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cuttingRepo := uow.CuttingRepository()

	lay, err := cuttingRepo.GetLay(ctx, cmd.LayID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrLayNotFound
	}
	if err != nil {
		return err
	}

	existing, err := cuttingRepo.GetBundlesByLay(ctx, cmd.LayID())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errs.NewConflictErrorWithCause("cut lay", cmd.LayID().String(), ErrLayAlreadyBundled)
	}

	bundles, err := h.generator.Generate(lay, cmd.BundleSize(), time.Now())
	if err != nil {
		return err
	}

	if err = cuttingRepo.AddBundles(ctx, bundles); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
