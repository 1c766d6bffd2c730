package jobs

import (
	"context"
	"log/slog"
	"time"

	"production/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleRunWatchdogJob periodically flags runs that have been in progress
// longer than the configured threshold. A stale run holds its machine, so an
// operator who forgot to complete or pause blocks the whole workcenter until
// someone notices.
type StaleRunWatchdogJob struct {
	handler   queries.ListStaleRunsQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleRunWatchdogJob creates a watchdog with the given staleness
// threshold.
func NewStaleRunWatchdogJob(
	handler queries.ListStaleRunsQueryHandler, threshold time.Duration, logger *slog.Logger,
) *StaleRunWatchdogJob {
	return &StaleRunWatchdogJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_run_watchdog_job"),
	}
}

// Start begins the watchdog to run every minute.
func (j *StaleRunWatchdogJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewListStaleRunsQuery(j.threshold)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Stale run watchdog misconfigured", "error", queryErr)
			return
		}

		staleRuns, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale run watchdog failed", "error", handleErr)
			return
		}

		for _, staleRun := range staleRuns {
			machineID := "none"
			if staleRun.MachineID != nil {
				machineID = staleRun.MachineID.String()
			}
			j.logger.WarnContext(ctx, "Run in progress past threshold",
				"runId", staleRun.RunID.String(),
				"machineId", machineID,
				"stage", staleRun.Stage,
				"startedAt", staleRun.StartedAt,
				"threshold", j.threshold)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale run watchdog started (running every minute)")
	return nil
}

// Stop stops the watchdog.
func (j *StaleRunWatchdogJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale run watchdog stopped")
}
