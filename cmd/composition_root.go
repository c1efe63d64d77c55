package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/eventlog"
	"logistics/internal/adapters/out/kafka"
	memoryorderrepo "logistics/internal/adapters/out/memory/orderrepo"
	"logistics/internal/adapters/out/outbox"
	"logistics/internal/adapters/out/postgres"
	pgorderrepo "logistics/internal/adapters/out/postgres/orderrepo"
	redisorderrepo "logistics/internal/adapters/out/redis/orderrepo"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
)

const metricsSubsystem = "orders"

// CompositionRoot owns the adapters selected by Config and builds the use
// case handlers on top of them.
type CompositionRoot struct {
	config  Config
	logger  *slog.Logger
	metrics *metrics.ServerMetrics

	repo   ports.OrderRepository
	outbox *outbox.MemoryOutbox

	relayJob *jobs.OutboxRelayJob
	statsJob *jobs.OrderStatsJob

	closers []func() error
}

// NewCompositionRoot connects the configured storage and event target.
// Whatever was opened is released again when it fails.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:  config,
		logger:  logger,
		metrics: metrics.NewServerMetrics(metricsSubsystem, nil),
	}

	repo, err := c.openRepository(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.repo = repo

	c.outbox = outbox.NewMemoryOutbox(c.openEventTarget(), outbox.DefaultCapacity, outbox.DefaultBatchSize)
	c.relayJob = jobs.NewOutboxRelayJob(c.outbox, config.OutboxRelaySchedule, c.metrics, logger)
	c.statsJob = jobs.NewOrderStatsJob(c.CreateGetAllOrdersQueryHandler(), c.metrics, logger)

	return c, nil
}

func (c *CompositionRoot) openRepository(ctx context.Context) (ports.OrderRepository, error) {
	switch c.config.Storage {
	case StoragePostgres:
		db, err := postgres.Open(ctx, c.config.PostgresOptions())
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() error { return postgres.Close(db) })
		c.logger.InfoContext(ctx, "Using postgres order storage", "host", c.config.DBHost, "database", c.config.DBName)
		return pgorderrepo.NewGormOrderRepository(db), nil

	case StorageRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     c.config.RedisAddr,
			Password: c.config.RedisPassword,
			DB:       c.config.RedisDB,
		})
		c.closers = append(c.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		c.logger.InfoContext(ctx, "Using redis order storage", "addr", c.config.RedisAddr, "db", c.config.RedisDB)
		return redisorderrepo.NewRedisOrderRepository(client), nil

	case StorageMemory:
		c.logger.InfoContext(ctx, "Using in-memory order storage")
		return memoryorderrepo.NewMemoryOrderRepository(), nil

	default:
		return nil, fmt.Errorf("%w: unknown STORAGE %q", ErrConfigIsInvalid, c.config.Storage)
	}
}

func (c *CompositionRoot) openEventTarget() ports.EventPublisher {
	brokers := kafka.ParseBrokers(c.config.KafkaBrokers)
	if len(brokers) == 0 {
		return eventlog.NewPublisher(c.logger)
	}

	publisher := kafka.NewOrderEventPublisher(kafka.NewWriter(brokers, c.config.KafkaOrderEventsTopic))
	c.closers = append(c.closers, publisher.Close)
	c.logger.Info("Publishing order events to kafka",
		"brokers", brokers,
		"topic", c.config.KafkaOrderEventsTopic,
	)
	return publisher
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.repo, c.outbox, c.logger)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.repo, c.outbox, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.repo, c.outbox, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.repo, c.logger)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.repo, c.logger)
}

// CreateRouter builds the HTTP router. spec may be nil, which disables
// request validation and the Swagger UI.
func (c *CompositionRoot) CreateRouter(spec *openapi3.T) (*echo.Echo, error) {
	server := httpadapter.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateApproveOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.logger,
	)

	return httpadapter.NewRouter(server, httpadapter.RouterOptions{
		Logger:  c.logger,
		Metrics: c.metrics,
		Spec:    spec,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.relayJob, c.statsJob)
}

// DrainOutbox relays every queued event. It is called once more on shutdown
// after the jobs have stopped.
func (c *CompositionRoot) DrainOutbox(ctx context.Context) {
	c.relayJob.Run(ctx)
	if pending := c.outbox.Len(); pending > 0 {
		c.logger.WarnContext(ctx, "Order events left in the outbox", "pending", pending)
	}
}

// Close releases storage and event connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range slices.Backward(c.closers) {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
