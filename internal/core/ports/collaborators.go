package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
)

// Advisory is the analysis returned by the advisory service after a run
// starts. Purely informational; callers log it and move on.
type Advisory struct {
	Risk            string
	Recommendations []string
	Confidence      float64
}

// AdvisoryService is the optional post-start analysis collaborator.
// Implementations must respect the context deadline; a failure never affects
// the run's committed state.
type AdvisoryService interface {
	AnalyzeRun(ctx context.Context, runID kernel.UUID) (Advisory, error)
}

// Notifier delivers fire-and-forget notifications. Errors are logged by the
// caller and otherwise ignored.
type Notifier interface {
	NotifyRunCompleted(ctx context.Context, runID kernel.UUID, totalGood, totalReject int) error
}
