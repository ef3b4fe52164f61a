package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/goldenhair/storefront/internal/aws"
	"github.com/goldenhair/storefront/internal/orders"
)

// Processor consumes order events from SQS and sends the customer
// notification for each one, stamping notified_at exactly once.
type Processor struct {
	logger     *zap.Logger
	orderStore *orders.Store
	metrics    *aws.Metrics
	notify     func(ctx context.Context, o *orders.Order) error
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(logger *zap.Logger, store *orders.Store, metrics *aws.Metrics) *Processor {
	p := &Processor{
		logger:     logger,
		orderStore: store,
		metrics:    metrics,
	}
	p.notify = p.logNotification
	return p
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times,
			// the message goes to the DLQ.
			p.logger.Error("worker error", zap.Error(err))
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var ev aws.OrderEvent
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	p.logger.Info("received order event",
		zap.String("type", ev.Type),
		zap.String("order_id", ev.OrderID),
		zap.String("correlation_id", ev.CorrelationID))

	order, err := p.orderStore.Get(ctx, ev.OrderID)
	if err != nil {
		return fmt.Errorf("fetch order: %w", err)
	}
	if order == nil {
		// Should never happen; DLQ if it does.
		return fmt.Errorf("order not found: %s", ev.OrderID)
	}

	// Claim the notification before sending it. SQS delivers at least
	// once; a redelivered event fails the condition and is swallowed.
	err = p.orderStore.MarkNotified(ctx, ev.OrderID)
	if err == orders.ErrStatusMismatch {
		p.logger.Info("duplicate delivery, already notified",
			zap.String("order_id", ev.OrderID))
		p.metrics.Count(ctx, aws.MetricDuplicateDelivery, order.PaymentMethod)
		return nil
	}
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}

	if err := p.notify(ctx, order); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	p.metrics.Count(ctx, aws.MetricOrdersNotified, order.PaymentMethod)
	return nil
}

// logNotification stands in for the store's WhatsApp/SMS sender, which is
// dispatched manually today.
func (p *Processor) logNotification(ctx context.Context, o *orders.Order) error {
	p.logger.Info("order notification",
		zap.String("order_id", o.OrderID),
		zap.String("customer_phone", o.CustomerPhone),
		zap.String("payment_method", o.PaymentMethod),
		zap.String("order_status", o.OrderStatus))
	return nil
}
