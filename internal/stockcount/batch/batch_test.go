package batch_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mknoufi/stock-verify-backend/internal/stockcount/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	before := time.Now().UTC()
	b := batch.New("SKU1", batch.Input{Quantity: 20, Condition: batch.ConditionGood})
	after := time.Now().UTC()

	assert.Equal(t, "SKU1", b.ItemCode)
	assert.Equal(t, "PCS", b.Unit)
	assert.Equal(t, batch.ConditionGood, b.Condition)
	assert.True(t, strings.HasPrefix(b.BatchID, "BATCH-"), "generated id: %s", b.BatchID)

	require.False(t, b.CountedAt.IsZero())
	assert.False(t, b.CountedAt.Before(before.Truncate(time.Second)))
	assert.False(t, b.CountedAt.After(after))

	// Fully analyzed on creation, never raw.
	assert.NotNil(t, b.ConditionFlags)
	assert.Empty(t, b.ConditionFlags)
	assert.Empty(t, b.RecommendedAction)
	assert.Equal(t, batch.PriorityNormal, b.ActionPriority)
	assert.NotNil(t, b.Photos)
}

func TestNew_KeepsCallerSuppliedFields(t *testing.T) {
	b := batch.New("SKU2", batch.Input{
		BatchID:     "BATCH-CUSTOM-01",
		BatchNumber: "LOT001",
		Location:    "Shelf A1",
		Quantity:    15,
		Unit:        "BOX",
		CountedBy:   "staff-7",
		Photos:      []string{"photo-1.jpg"},
	})

	assert.Equal(t, "BATCH-CUSTOM-01", b.BatchID)
	assert.Equal(t, "LOT001", b.BatchNumber)
	assert.Equal(t, "Shelf A1", b.Location)
	assert.Equal(t, "BOX", b.Unit)
	assert.Equal(t, "staff-7", b.CountedBy)
	assert.Equal(t, []string{"photo-1.jpg"}, b.Photos)
}

func TestNew_AnalyzesBeforeReturning(t *testing.T) {
	b := batch.New("SKU3", batch.Input{
		Quantity:   8,
		ExpiryDate: dateFromNow(-3),
	})

	assert.Equal(t, batch.ActionDispose, b.RecommendedAction)
	assert.Equal(t, batch.PriorityUrgent, b.ActionPriority)
	assert.Contains(t, b.ConditionFlags, batch.FlagExpired)
}

func TestNew_EmptyConditionDefaultsToGood(t *testing.T) {
	b := batch.New("SKU4", batch.Input{})

	assert.Equal(t, batch.ConditionGood, b.Condition)
}
