package jobs

import (
	"context"
	"log/slog"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the reconciliation every ten minutes.
const DefaultReconcileSchedule = "0 */10 * * * *"

const systemUser = "system"

// LoadReconciler is the use case the job drives.
type LoadReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileCenterLoadsCommand) (int, error)
}

// CapacityReconciliationJob recomputes every center's load from the donations
// linked to it and corrects drifted counters.
type CapacityReconciliationJob struct {
	handler  LoadReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCapacityReconciliationJob creates a job that runs handler on schedule, a
// six-field cron expression with seconds. An empty schedule falls back to
// DefaultReconcileSchedule.
//
// Example:
//
//	job := NewCapacityReconciliationJob(reconcileHandler, "", logger)
//	if err := job.Start(); err != nil {
//	    return err // invalid schedule
//	}
//	defer job.Stop()
func NewCapacityReconciliationJob(handler LoadReconciler, schedule string, logger *slog.Logger) *CapacityReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &CapacityReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "capacity_reconciliation_job"),
	}
}

// Start registers the schedule and starts the cron loop. It fails for an
// invalid cron expression.
func (j *CapacityReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Capacity reconciliation job started", "schedule", j.schedule)
	return nil
}

// Run performs one reconciliation pass as the system administrator.
func (j *CapacityReconciliationJob) Run(ctx context.Context) {
	principal, err := kernel.NewPrincipal(systemUser, kernel.RoleAdmin)
	if err != nil {
		j.logger.ErrorContext(ctx, "Capacity reconciliation job failed", "error", err)
		return
	}
	cmd, err := commands.NewReconcileCenterLoadsCommand(principal)
	if err != nil {
		j.logger.ErrorContext(ctx, "Capacity reconciliation job failed", "error", err)
		return
	}

	corrected, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Capacity reconciliation job failed", "error", err)
		return
	}
	if corrected > 0 {
		j.logger.WarnContext(ctx, "Corrected drifted center loads", "centers", corrected)
	}
}

// Stop waits for a running pass to finish.
func (j *CapacityReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Capacity reconciliation job stopped")
}
