package services

import (
	"fmt"
	"time"

	"production/internal/core/domain/model/cutting"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// BundleGenerator is a domain service that partitions a cut lay's per-size
// outputs into traceable bundles.
//
// Business rules:
//   - Each bundle carries at most bundleSize pieces
//   - For every size, the generated bundle quantities sum to the output
//     quantity exactly (no overflow, no shortfall)
//   - Bundle numbers increase monotonically per size, starting at 1
//   - Codes are globally unique: BDL-<order>-<lay>-<size>-<n>-<unix>
//
// Example usage:
//
//	generator := NewBundleGenerator()
//	bundles, err := generator.Generate(lay, 50, time.Now())
//	if err != nil {
//	    return err
//	}
//	// a 120-piece size with bundleSize 50 yields packets of 50, 50, 20
type BundleGenerator struct{}

// NewBundleGenerator creates a new BundleGenerator instance.
func NewBundleGenerator() BundleGenerator {
	return BundleGenerator{}
}

// Generate partitions every output of the lay into bundles of at most
// bundleSize pieces. The returned slice covers all sizes in output order;
// persisting it is the caller's single-transaction responsibility.
func (g BundleGenerator) Generate(
	lay *cutting.CutLay, bundleSize int, now time.Time,
) ([]*cutting.Bundle, error) {
	if err := lay.Validate(); err != nil {
		return nil, err
	}
	if bundleSize <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("bundleSize",
			fmt.Errorf("%d is not greater than 0", bundleSize))
	}

	var bundles []*cutting.Bundle
	for _, output := range lay.Outputs() {
		sized, err := g.partition(lay, output, bundleSize, now)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, sized...)
	}

	return bundles, nil
}

// partition splits one per-size output into packets. The last packet takes
// whatever remains, which is how the sum stays exact.
func (g BundleGenerator) partition(
	lay *cutting.CutLay, output cutting.CutOutput, bundleSize int, now time.Time,
) ([]*cutting.Bundle, error) {
	var bundles []*cutting.Bundle

	remaining := output.Qty()
	for bundleNo := 1; remaining > 0; bundleNo++ {
		qty := bundleSize
		if remaining < qty {
			qty = remaining
		}

		code := fmt.Sprintf("BDL-%s-%s-%s-%d-%d",
			lay.OrderID(), lay.ID(), output.SizeCode(), bundleNo, now.Unix())

		bundle, err := cutting.NewBundle(
			kernel.NewUUID(), lay.OrderID(), lay.ID(),
			output.SizeCode(), qty, bundleNo, code)
		if err != nil {
			return nil, err
		}

		bundles = append(bundles, bundle)
		remaining -= qty
	}

	return bundles, nil
}
