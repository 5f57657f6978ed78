package service

import (
	"context"

	"github.com/mknoufi/stock-verify-backend/internal/stockcount/batch"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/events"
	"github.com/mknoufi/stock-verify-backend/pkg/errors"
	"github.com/mknoufi/stock-verify-backend/pkg/logger"
)

// BatchStore is the persistence surface the stock count service needs.
// Implemented by repository.BatchRepository.
type BatchStore interface {
	Create(ctx context.Context, b *batch.Batch) error
	GetByID(ctx context.Context, itemCode, batchID string) (*batch.Batch, error)
	ListByItem(ctx context.Context, itemCode string) ([]*batch.Batch, error)
	MarkVerified(ctx context.Context, itemCode, batchID, verifiedBy string) error
	ListPriority(ctx context.Context) ([]*batch.Batch, error)
}

// StockCountService handles counted batch business logic
type StockCountService struct {
	store     BatchStore
	publisher *events.StockCountEventPublisher
	logger    *logger.Logger
}

// NewStockCountService creates a new stock count service
func NewStockCountService(store BatchStore, publisher *events.StockCountEventPublisher, log *logger.Logger) *StockCountService {
	return &StockCountService{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

// MultiBatchResult is the outcome of recording several batches of one item
// in a single counting session.
type MultiBatchResult struct {
	ItemCode          string        `json:"item_code"`
	Batches           []batch.Batch `json:"batches"`
	Summary           batch.Summary `json:"summary"`
	TotalQuantity     float64       `json:"total_quantity"`
	RequiresAttention bool          `json:"requires_attention"`
}

// RecordBatch analyzes and stores one counted batch for an item
func (s *StockCountService) RecordBatch(ctx context.Context, itemCode string, in batch.Input) (*batch.Batch, error) {
	if itemCode == "" {
		return nil, errors.BadRequest("item code is required")
	}

	b := batch.New(itemCode, in)

	if err := s.store.Create(ctx, &b); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("item_code", b.ItemCode).
		Str("batch_id", b.BatchID).
		Str("condition", string(b.Condition)).
		Str("action_priority", string(b.ActionPriority)).
		Msg("batch recorded")

	s.publisher.PublishBatchRecorded(ctx, &b)
	if b.ActionPriority.IsPriority() {
		s.publisher.PublishBatchPriority(ctx, &b)
	}

	return &b, nil
}

// RecordMultiBatch analyzes and stores several counted batches of one item,
// returning the batches together with their aggregate summary
func (s *StockCountService) RecordMultiBatch(ctx context.Context, itemCode string, inputs []batch.Input) (*MultiBatchResult, error) {
	if itemCode == "" {
		return nil, errors.BadRequest("item code is required")
	}
	if len(inputs) == 0 {
		return nil, errors.BadRequest("at least one batch is required")
	}

	batches := make([]batch.Batch, 0, len(inputs))
	for _, in := range inputs {
		b := batch.New(itemCode, in)

		if err := s.store.Create(ctx, &b); err != nil {
			return nil, err
		}

		s.publisher.PublishBatchRecorded(ctx, &b)
		if b.ActionPriority.IsPriority() {
			s.publisher.PublishBatchPriority(ctx, &b)
		}

		batches = append(batches, b)
	}

	summary := batch.Aggregate(batches)

	s.logger.Info().
		Str("item_code", itemCode).
		Int("batch_count", len(batches)).
		Float64("total_quantity", summary.TotalQuantity).
		Int("priority_actions", len(summary.PriorityActions)).
		Msg("multi-batch count recorded")

	return &MultiBatchResult{
		ItemCode:          itemCode,
		Batches:           batches,
		Summary:           summary,
		TotalQuantity:     summary.TotalQuantity,
		RequiresAttention: summary.PriorityBatches > 0,
	}, nil
}

// GetBatch returns one counted batch
func (s *StockCountService) GetBatch(ctx context.Context, itemCode, batchID string) (*batch.Batch, error) {
	return s.store.GetByID(ctx, itemCode, batchID)
}

// ListBatches returns all counted batches of an item in counting order
func (s *StockCountService) ListBatches(ctx context.Context, itemCode string) ([]*batch.Batch, error) {
	return s.store.ListByItem(ctx, itemCode)
}

// ItemSummary aggregates all counted batches of an item
func (s *StockCountService) ItemSummary(ctx context.Context, itemCode string) (*batch.Summary, error) {
	stored, err := s.store.ListByItem(ctx, itemCode)
	if err != nil {
		return nil, err
	}

	batches := make([]batch.Batch, 0, len(stored))
	for _, b := range stored {
		batches = append(batches, *b)
	}

	summary := batch.Aggregate(batches)
	return &summary, nil
}

// VerifyBatch marks a counted batch as verified by a supervisor
func (s *StockCountService) VerifyBatch(ctx context.Context, itemCode, batchID, verifiedBy string) error {
	if verifiedBy == "" {
		return errors.BadRequest("verifier is required")
	}

	if err := s.store.MarkVerified(ctx, itemCode, batchID, verifiedBy); err != nil {
		return err
	}

	s.logger.Info().
		Str("item_code", itemCode).
		Str("batch_id", batchID).
		Str("verified_by", verifiedBy).
		Msg("batch verified")

	s.publisher.PublishBatchVerified(ctx, itemCode, batchID, verifiedBy)
	return nil
}

// ListPriorityBatches returns all batches needing urgent attention
func (s *StockCountService) ListPriorityBatches(ctx context.Context) ([]*batch.Batch, error) {
	return s.store.ListPriority(ctx)
}
