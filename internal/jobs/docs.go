// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are built on github.com/robfig/cron/v3 with the six-field (seconds)
// cron format. A run that is still in progress when the next tick fires is
// skipped.
//
// # Available Jobs
//
// 1. OutboxRelayJob - drains the event outbox into Kafka or the event log
// 2. OrderStatsJob - refreshes the per-status order gauges every 15 seconds
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOutboxRelayJob(outbox, cfg.OutboxRelaySchedule, serverMetrics, logger),
//		jobs.NewOrderStatsJob(getAllOrdersHandler, serverMetrics, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and wait for the next tick. A failed relay leaves its
// events queued.
package jobs
