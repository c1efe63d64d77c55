package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultOrderStatsSchedule refreshes the order gauges every 15 seconds.
const DefaultOrderStatsSchedule = "*/15 * * * * *"

// OrderStatsJob publishes the number of orders per status as a gauge.
type OrderStatsJob struct {
	handler queries.GetAllOrdersQueryHandler
	metrics *metrics.ServerMetrics
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOrderStatsJob(
	handler queries.GetAllOrdersQueryHandler,
	m *metrics.ServerMetrics,
	logger *slog.Logger,
) *OrderStatsJob {
	return &OrderStatsJob{
		handler: handler,
		metrics: m,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "order_stats_job"),
	}
}

func (j *OrderStatsJob) Start() error {
	if _, err := j.cron.AddFunc(DefaultOrderStatsSchedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started", "schedule", DefaultOrderStatsSchedule)
	return nil
}

// Run recounts all orders. Statuses with no orders are reported as zero.
func (j *OrderStatsJob) Run(ctx context.Context) {
	snapshots, err := j.handler.Handle(ctx, queries.NewGetAllOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
		return
	}

	counts := map[order.Status]int{
		order.Pending:   0,
		order.Approved:  0,
		order.Cancelled: 0,
	}
	for _, s := range snapshots {
		counts[s.Status]++
	}
	for status, n := range counts {
		j.metrics.OrdersByState.WithLabelValues(status.String()).Set(float64(n))
	}
}

func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
