// Package jobs provides scheduled background tasks for the production core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3 to
// handle periodic operations that the request path does not cover.
//
// # Available Jobs
//
// 1. StaleRunWatchdogJob - Runs every minute to flag runs held in progress
// past a threshold; such runs keep their machine occupied and block the
// workcenter.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleRunsHandler, threshold, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleRunWatchdogJob *StaleRunWatchdogJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	staleRunsHandler queries.ListStaleRunsQueryHandler,
	staleRunThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleRunWatchdogJob: NewStaleRunWatchdogJob(staleRunsHandler, staleRunThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleRunWatchdogJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale run watchdog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleRunWatchdogJob.Stop()
}
