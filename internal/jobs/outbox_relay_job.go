package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule drains the outbox every second.
const DefaultOutboxRelaySchedule = "* * * * * *"

// Relayer moves queued events to their destination.
type Relayer interface {
	Relay(ctx context.Context) (int, error)
	Len() int
}

// OutboxRelayJob periodically drains the event outbox into the configured
// publisher.
type OutboxRelayJob struct {
	relayer  Relayer
	schedule string
	metrics  *metrics.ServerMetrics
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the job. An empty schedule means
// DefaultOutboxRelaySchedule; schedules use the six-field cron format with
// seconds.
func NewOutboxRelayJob(
	relayer Relayer,
	schedule string,
	m *metrics.ServerMetrics,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}

	return &OutboxRelayJob{
		relayer:  relayer,
		schedule: schedule,
		metrics:  m,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the relay.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays until the outbox is empty or a publish fails.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	defer func() {
		if j.metrics != nil {
			j.metrics.OutboxPending.Set(float64(j.relayer.Len()))
		}
	}()

	for {
		n, err := j.relayer.Relay(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
			if j.metrics != nil {
				j.metrics.RelayFailures.Inc()
			}
			return
		}
		if n == 0 {
			return
		}
		if j.metrics != nil {
			j.metrics.EventsRelayed.Add(float64(n))
		}
		j.logger.DebugContext(ctx, "Relayed order events", "count", n)
	}
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
