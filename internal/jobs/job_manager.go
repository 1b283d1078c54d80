package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *CapacityReconciliationJob
}

// NewJobManager creates the manager. An empty schedule falls back to
// DefaultReconcileSchedule.
func NewJobManager(reconciler LoadReconciler, reconcileSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		reconciliationJob: NewCapacityReconciliationJob(reconciler, reconcileSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start capacity reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
}
