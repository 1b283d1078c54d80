// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field. The only job today
// is CapacityReconciliationJob, which runs ReconcileCenterLoads as an
// administrator so that center load counters match the donations linked to
// them even after manual database edits or a crash between writes.
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.ReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
