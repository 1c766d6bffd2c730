package ports

import (
	"context"

	"production/internal/core/domain/model/cutting"
	"production/internal/core/domain/model/kernel"
)

// CuttingRepository defines the persistence contract for cut lays and
// bundles. Lay creation and bundle generation are each a single atomic batch;
// partial writes are never observable.
type CuttingRepository interface {
	// AddLay persists a lay with all its outputs in one transaction.
	AddLay(ctx context.Context, aggregate *cutting.CutLay) error

	// GetLay retrieves a lay with its outputs by its unique identifier.
	GetLay(ctx context.Context, id kernel.UUID) (*cutting.CutLay, error)

	// AddBundles persists a batch of bundles in one transaction.
	AddBundles(ctx context.Context, bundles []*cutting.Bundle) error

	// GetBundlesByLay retrieves all bundles generated from a lay.
	GetBundlesByLay(ctx context.Context, layID kernel.UUID) ([]*cutting.Bundle, error)
}
