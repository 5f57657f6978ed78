package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/batch"
	"github.com/mknoufi/stock-verify-backend/pkg/database"
	"github.com/mknoufi/stock-verify-backend/pkg/errors"
)

// batchRow is the database shape of a counted batch. Array-valued fields use
// pq.StringArray; the engine types stay free of driver concerns.
type batchRow struct {
	BatchID  string `db:"batch_id"`
	ItemCode string `db:"item_code"`

	BatchNumber  string `db:"batch_number"`
	LotNumber    string `db:"lot_number"`
	SerialNumber string `db:"serial_number"`

	Location string `db:"location"`
	Shelf    string `db:"shelf"`
	Bin      string `db:"bin"`
	Section  string `db:"section"`

	Quantity float64 `db:"quantity"`
	Unit     string  `db:"unit"`

	MfgDate      string `db:"mfg_date"`
	ExpiryDate   string `db:"expiry_date"`
	ReceivedDate string `db:"received_date"`

	Condition      string         `db:"condition"`
	ConditionNotes string         `db:"condition_notes"`
	ConditionFlags pq.StringArray `db:"condition_flags"`

	OriginalMRP     float64 `db:"original_mrp"`
	CurrentPrice    float64 `db:"current_price"`
	DiscountApplied float64 `db:"discount_applied"`

	RecommendedAction string         `db:"recommended_action"`
	ActionPriority    string         `db:"action_priority"`
	ActionDeadline    string         `db:"action_deadline"`
	Recommendations   pq.StringArray `db:"recommendations"`

	Photos     pq.StringArray `db:"photos"`
	CountedBy  string         `db:"counted_by"`
	CountedAt  time.Time      `db:"counted_at"`
	Verified   bool           `db:"verified"`
	VerifiedBy string         `db:"verified_by"`
}

func toRow(b *batch.Batch) *batchRow {
	return &batchRow{
		BatchID:           b.BatchID,
		ItemCode:          b.ItemCode,
		BatchNumber:       b.BatchNumber,
		LotNumber:         b.LotNumber,
		SerialNumber:      b.SerialNumber,
		Location:          b.Location,
		Shelf:             b.Shelf,
		Bin:               b.Bin,
		Section:           b.Section,
		Quantity:          b.Quantity,
		Unit:              b.Unit,
		MfgDate:           b.MfgDate,
		ExpiryDate:        b.ExpiryDate,
		ReceivedDate:      b.ReceivedDate,
		Condition:         string(b.Condition),
		ConditionNotes:    b.ConditionNotes,
		ConditionFlags:    pq.StringArray(b.ConditionFlags),
		OriginalMRP:       b.OriginalMRP,
		CurrentPrice:      b.CurrentPrice,
		DiscountApplied:   b.DiscountApplied,
		RecommendedAction: string(b.RecommendedAction),
		ActionPriority:    string(b.ActionPriority),
		ActionDeadline:    b.ActionDeadline,
		Recommendations:   pq.StringArray(b.Recommendations),
		Photos:            pq.StringArray(b.Photos),
		CountedBy:         b.CountedBy,
		CountedAt:         b.CountedAt,
		Verified:          b.Verified,
		VerifiedBy:        b.VerifiedBy,
	}
}

func fromRow(row *batchRow) *batch.Batch {
	return &batch.Batch{
		BatchID:           row.BatchID,
		ItemCode:          row.ItemCode,
		BatchNumber:       row.BatchNumber,
		LotNumber:         row.LotNumber,
		SerialNumber:      row.SerialNumber,
		Location:          row.Location,
		Shelf:             row.Shelf,
		Bin:               row.Bin,
		Section:           row.Section,
		Quantity:          row.Quantity,
		Unit:              row.Unit,
		MfgDate:           row.MfgDate,
		ExpiryDate:        row.ExpiryDate,
		ReceivedDate:      row.ReceivedDate,
		Condition:         batch.ItemCondition(row.Condition),
		ConditionNotes:    row.ConditionNotes,
		ConditionFlags:    []string(row.ConditionFlags),
		OriginalMRP:       row.OriginalMRP,
		CurrentPrice:      row.CurrentPrice,
		DiscountApplied:   row.DiscountApplied,
		RecommendedAction: batch.Action(row.RecommendedAction),
		ActionPriority:    batch.Priority(row.ActionPriority),
		ActionDeadline:    row.ActionDeadline,
		Recommendations:   []string(row.Recommendations),
		Photos:            []string(row.Photos),
		CountedBy:         row.CountedBy,
		CountedAt:         row.CountedAt,
		Verified:          row.Verified,
		VerifiedBy:        row.VerifiedBy,
	}
}

// BatchRepository handles counted batch persistence
type BatchRepository struct {
	db *database.DB
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *database.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create inserts a counted batch. Batches are keyed by (item_code, batch_id);
// re-counting the same batch replaces the previous record.
func (r *BatchRepository) Create(ctx context.Context, b *batch.Batch) error {
	row := toRow(b)

	query := `
		INSERT INTO stock_count_batches (
			batch_id, item_code, batch_number, lot_number, serial_number,
			location, shelf, bin, section, quantity, unit,
			mfg_date, expiry_date, received_date,
			condition, condition_notes, condition_flags,
			original_mrp, current_price, discount_applied,
			recommended_action, action_priority, action_deadline, recommendations,
			photos, counted_by, counted_at, verified, verified_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29
		)
		ON CONFLICT (item_code, batch_id) DO UPDATE SET
			batch_number = EXCLUDED.batch_number,
			lot_number = EXCLUDED.lot_number,
			serial_number = EXCLUDED.serial_number,
			location = EXCLUDED.location,
			shelf = EXCLUDED.shelf,
			bin = EXCLUDED.bin,
			section = EXCLUDED.section,
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			mfg_date = EXCLUDED.mfg_date,
			expiry_date = EXCLUDED.expiry_date,
			received_date = EXCLUDED.received_date,
			condition = EXCLUDED.condition,
			condition_notes = EXCLUDED.condition_notes,
			condition_flags = EXCLUDED.condition_flags,
			original_mrp = EXCLUDED.original_mrp,
			current_price = EXCLUDED.current_price,
			discount_applied = EXCLUDED.discount_applied,
			recommended_action = EXCLUDED.recommended_action,
			action_priority = EXCLUDED.action_priority,
			action_deadline = EXCLUDED.action_deadline,
			recommendations = EXCLUDED.recommendations,
			photos = EXCLUDED.photos,
			counted_by = EXCLUDED.counted_by,
			counted_at = EXCLUDED.counted_at,
			verified = EXCLUDED.verified,
			verified_by = EXCLUDED.verified_by
	`

	_, err := r.db.ExecContext(ctx, query,
		row.BatchID, row.ItemCode, row.BatchNumber, row.LotNumber, row.SerialNumber,
		row.Location, row.Shelf, row.Bin, row.Section, row.Quantity, row.Unit,
		row.MfgDate, row.ExpiryDate, row.ReceivedDate,
		row.Condition, row.ConditionNotes, row.ConditionFlags,
		row.OriginalMRP, row.CurrentPrice, row.DiscountApplied,
		row.RecommendedAction, row.ActionPriority, row.ActionDeadline, row.Recommendations,
		row.Photos, row.CountedBy, row.CountedAt, row.Verified, row.VerifiedBy,
	)
	return err
}

// GetByID gets a counted batch by item code and batch ID
func (r *BatchRepository) GetByID(ctx context.Context, itemCode, batchID string) (*batch.Batch, error) {
	var row batchRow
	query := `SELECT * FROM stock_count_batches WHERE item_code = $1 AND batch_id = $2`
	if err := r.db.GetContext(ctx, &row, query, itemCode, batchID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("batch")
		}
		return nil, err
	}
	return fromRow(&row), nil
}

// ListByItem lists counted batches for an item in counting order
func (r *BatchRepository) ListByItem(ctx context.Context, itemCode string) ([]*batch.Batch, error) {
	var rows []*batchRow
	query := `
		SELECT * FROM stock_count_batches
		WHERE item_code = $1
		ORDER BY counted_at, batch_id
	`
	if err := r.db.SelectContext(ctx, &rows, query, itemCode); err != nil {
		return nil, err
	}

	batches := make([]*batch.Batch, 0, len(rows))
	for _, row := range rows {
		batches = append(batches, fromRow(row))
	}
	return batches, nil
}

// MarkVerified marks a counted batch as verified by a supervisor
func (r *BatchRepository) MarkVerified(ctx context.Context, itemCode, batchID, verifiedBy string) error {
	query := `
		UPDATE stock_count_batches
		SET verified = true, verified_by = $3
		WHERE item_code = $1 AND batch_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, itemCode, batchID, verifiedBy)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("batch")
	}

	return nil
}

// ListPriority lists all batches whose action priority marks them for
// immediate attention, most urgent first
func (r *BatchRepository) ListPriority(ctx context.Context) ([]*batch.Batch, error) {
	var rows []*batchRow
	query := `
		SELECT * FROM stock_count_batches
		WHERE action_priority IN ('URGENT', 'HIGH')
		ORDER BY CASE action_priority WHEN 'URGENT' THEN 0 ELSE 1 END, counted_at
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	batches := make([]*batch.Batch, 0, len(rows))
	for _, row := range rows {
		batches = append(batches, fromRow(row))
	}
	return batches, nil
}
