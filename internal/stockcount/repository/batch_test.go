package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mknoufi/stock-verify-backend/internal/stockcount/batch"
	"github.com/mknoufi/stock-verify-backend/pkg/errors"
	"github.com/mknoufi/stock-verify-backend/pkg/testutil"
)

var batchColumns = []string{
	"batch_id", "item_code", "batch_number", "lot_number", "serial_number",
	"location", "shelf", "bin", "section", "quantity", "unit",
	"mfg_date", "expiry_date", "received_date",
	"condition", "condition_notes", "condition_flags",
	"original_mrp", "current_price", "discount_applied",
	"recommended_action", "action_priority", "action_deadline", "recommendations",
	"photos", "counted_by", "counted_at", "verified", "verified_by",
}

func addBatchRow(rows *sqlmock.Rows, batchID, itemCode, condition, priority string, qty float64) *sqlmock.Rows {
	// Array columns are returned as postgres array literals so that
	// pq.StringArray.Scan can parse them.
	return rows.AddRow(
		batchID, itemCode, "", "", "",
		"", "", "", "", qty, "PCS",
		"", "", "",
		condition, "", "{}",
		0.0, 0.0, 0.0,
		"", priority, "", "{}",
		"{}", "", time.Now().UTC(), false, "",
	)
}

func TestBatchRepositoryCreate(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewBatchRepository(mockDB.DB)

	b := batch.New("ITEM-001", batch.Input{
		BatchID:   "B-001",
		Quantity:  10,
		Condition: batch.ConditionDamaged,
	})

	mockDB.Mock.ExpectExec("INSERT INTO stock_count_batches").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &b)
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchRepositoryGetByID(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewBatchRepository(mockDB.DB)

	rows := addBatchRow(testutil.MockRows(batchColumns...), "B-001", "ITEM-001", "damaged", "HIGH", 5)

	mockDB.ExpectQuery("SELECT * FROM stock_count_batches WHERE item_code = $1 AND batch_id = $2").
		WithArgs("ITEM-001", "B-001").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "ITEM-001", "B-001")
	require.NoError(t, err)

	assert.Equal(t, "B-001", got.BatchID)
	assert.Equal(t, "ITEM-001", got.ItemCode)
	assert.Equal(t, batch.ConditionDamaged, got.Condition)
	assert.Equal(t, batch.PriorityHigh, got.ActionPriority)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchRepositoryGetByIDNotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewBatchRepository(mockDB.DB)

	mockDB.ExpectQuery("SELECT * FROM stock_count_batches WHERE item_code = $1 AND batch_id = $2").
		WithArgs("ITEM-001", "MISSING").
		WillReturnRows(testutil.MockRows(batchColumns...))

	_, err := repo.GetByID(context.Background(), "ITEM-001", "MISSING")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestBatchRepositoryListByItem(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewBatchRepository(mockDB.DB)

	rows := testutil.MockRows(batchColumns...)
	addBatchRow(rows, "B-001", "ITEM-001", "good", "NORMAL", 10)
	addBatchRow(rows, "B-002", "ITEM-001", "expired", "URGENT", 3)

	mockDB.Mock.ExpectQuery("SELECT \\* FROM stock_count_batches\\s+WHERE item_code = \\$1").
		WithArgs("ITEM-001").
		WillReturnRows(rows)

	batches, err := repo.ListByItem(context.Background(), "ITEM-001")
	require.NoError(t, err)
	require.Len(t, batches, 2)

	assert.Equal(t, "B-001", batches[0].BatchID)
	assert.Equal(t, "B-002", batches[1].BatchID)
	assert.Equal(t, batch.PriorityUrgent, batches[1].ActionPriority)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchRepositoryMarkVerified(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewBatchRepository(mockDB.DB)

	mockDB.Mock.ExpectExec("UPDATE stock_count_batches").
		WithArgs("ITEM-001", "B-001", "supervisor1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkVerified(context.Background(), "ITEM-001", "B-001", "supervisor1")
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchRepositoryMarkVerifiedNotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewBatchRepository(mockDB.DB)

	mockDB.Mock.ExpectExec("UPDATE stock_count_batches").
		WithArgs("ITEM-001", "MISSING", "supervisor1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkVerified(context.Background(), "ITEM-001", "MISSING", "supervisor1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestBatchRepositoryListPriority(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewBatchRepository(mockDB.DB)

	rows := testutil.MockRows(batchColumns...)
	addBatchRow(rows, "B-009", "ITEM-002", "expired", "URGENT", 2)
	addBatchRow(rows, "B-001", "ITEM-001", "damaged", "HIGH", 5)

	mockDB.Mock.ExpectQuery("SELECT \\* FROM stock_count_batches\\s+WHERE action_priority IN").
		WillReturnRows(rows)

	batches, err := repo.ListPriority(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 2)

	assert.Equal(t, batch.PriorityUrgent, batches[0].ActionPriority)
	assert.Equal(t, batch.PriorityHigh, batches[1].ActionPriority)

	mockDB.ExpectationsWereMet(t)
}
