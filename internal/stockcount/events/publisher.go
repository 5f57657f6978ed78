package events

import (
	"context"

	"github.com/mknoufi/stock-verify-backend/internal/stockcount/batch"
	"github.com/mknoufi/stock-verify-backend/pkg/logger"
	"github.com/mknoufi/stock-verify-backend/pkg/messaging"
)

// Publisher is the subset of messaging.Publisher the event publisher needs.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// StockCountEventPublisher publishes stock count events. All methods are
// nil-receiver safe so services can run without a broker connection.
type StockCountEventPublisher struct {
	publisher Publisher
	logger    *logger.Logger
}

// NewStockCountEventPublisher creates a publisher bound to the stock count exchange
func NewStockCountEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*StockCountEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeStockCountEvents, "stockcount-service", log)
	if err != nil {
		return nil, err
	}

	return &StockCountEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// NewWithPublisher creates an event publisher with a custom transport.
// Intended for tests.
func NewWithPublisher(p Publisher, log *logger.Logger) *StockCountEventPublisher {
	return &StockCountEventPublisher{
		publisher: p,
		logger:    log,
	}
}

// PublishBatchRecorded publishes a batch recorded event
func (p *StockCountEventPublisher) PublishBatchRecorded(ctx context.Context, b *batch.Batch) {
	if p == nil {
		return
	}

	data := messaging.BatchRecordedEvent{
		ItemCode:          b.ItemCode,
		BatchID:           b.BatchID,
		Quantity:          b.Quantity,
		Condition:         string(b.Condition),
		RecommendedAction: string(b.RecommendedAction),
		ActionPriority:    string(b.ActionPriority),
		Flags:             b.ConditionFlags,
		CountedBy:         b.CountedBy,
	}

	if err := p.publisher.Publish(ctx, messaging.EventBatchRecorded, data); err != nil {
		p.logger.Error().Err(err).Str("item_code", b.ItemCode).Msg("failed to publish batch recorded event")
	}
}

// PublishBatchPriority publishes a priority attention event for a batch
func (p *StockCountEventPublisher) PublishBatchPriority(ctx context.Context, b *batch.Batch) {
	if p == nil {
		return
	}

	recommendation := ""
	if len(b.Recommendations) > 0 {
		recommendation = b.Recommendations[0]
	}

	data := messaging.BatchPriorityEvent{
		ItemCode:          b.ItemCode,
		BatchID:           b.BatchID,
		Quantity:          b.Quantity,
		Condition:         string(b.Condition),
		RecommendedAction: string(b.RecommendedAction),
		ActionPriority:    string(b.ActionPriority),
		Recommendation:    recommendation,
	}

	if err := p.publisher.Publish(ctx, messaging.EventBatchPriority, data); err != nil {
		p.logger.Error().Err(err).Str("item_code", b.ItemCode).Msg("failed to publish batch priority event")
	}
}

// PublishBatchVerified publishes a batch verified event
func (p *StockCountEventPublisher) PublishBatchVerified(ctx context.Context, itemCode, batchID, verifiedBy string) {
	if p == nil {
		return
	}

	data := messaging.BatchVerifiedEvent{
		ItemCode:   itemCode,
		BatchID:    batchID,
		VerifiedBy: verifiedBy,
	}

	if err := p.publisher.Publish(ctx, messaging.EventBatchVerified, data); err != nil {
		p.logger.Error().Err(err).Str("item_code", itemCode).Msg("failed to publish batch verified event")
	}
}
