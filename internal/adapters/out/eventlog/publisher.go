// Package eventlog is the event publisher used when no broker is configured:
// it writes every order event to the structured log.
package eventlog

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/order"
)

// Publisher logs events at Info level. It never fails.
type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "order_event_log")}
}

func (p *Publisher) Publish(ctx context.Context, events ...order.Event) error {
	for _, event := range events {
		p.logger.InfoContext(ctx, "Order event",
			"event_id", event.ID.String(),
			"event_type", string(event.Type),
			"order_id", event.OrderID.String(),
			"status", event.Status.String(),
			"occurred_at", event.OccurredAt,
		)
	}
	return nil
}
