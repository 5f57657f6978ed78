package batch_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/mknoufi/stock-verify-backend/internal/stockcount/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dateFromNow returns an ISO date string n days from now (UTC).
func dateFromNow(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

// monthsAgo returns an ISO date string n calendar months in the past (UTC).
func monthsAgo(months int) string {
	return time.Now().UTC().AddDate(0, -months, 0).Format("2006-01-02")
}

func TestAnalyze_ExpiredBatch(t *testing.T) {
	b := batch.New("SKU1", batch.Input{
		Quantity:   10,
		ExpiryDate: dateFromNow(-1),
	})

	assert.Contains(t, b.ConditionFlags, batch.FlagExpired)
	assert.Equal(t, batch.ActionDispose, b.RecommendedAction)
	assert.Equal(t, batch.PriorityUrgent, b.ActionPriority)
	assert.Contains(t, b.Recommendations, "DO NOT SELL - Expired product")
}

func TestAnalyze_ExpiringSoon(t *testing.T) {
	b := batch.New("SKU1", batch.Input{
		ExpiryDate: dateFromNow(5),
	})

	assert.Contains(t, b.ConditionFlags, batch.FlagExpiringSoon)
	assert.Equal(t, batch.ActionClearance, b.RecommendedAction)
	assert.Equal(t, batch.PriorityHigh, b.ActionPriority)
	require.NotEmpty(t, b.Recommendations)
	assert.Contains(t, b.Recommendations[0], "Clear urgently")
}

func TestAnalyze_ShortExpiry(t *testing.T) {
	b := batch.New("SKU1", batch.Input{
		ExpiryDate: dateFromNow(20),
	})

	assert.Contains(t, b.ConditionFlags, batch.FlagShortExpiry)
	assert.Equal(t, batch.ActionDiscountSale, b.RecommendedAction)
	assert.Equal(t, batch.PriorityMedium, b.ActionPriority)
}

func TestAnalyze_FarExpiry(t *testing.T) {
	b := batch.New("SKU1", batch.Input{
		ExpiryDate: dateFromNow(120),
	})

	assert.Empty(t, b.ConditionFlags)
	assert.Empty(t, b.RecommendedAction)
	assert.Equal(t, batch.PriorityNormal, b.ActionPriority)
}

// datetimeFromNow returns an RFC3339 timestamp n days from now plus one hour
// of slack, so the floored whole-day count is exactly n at any test runtime.
func datetimeFromNow(days int) string {
	return time.Now().UTC().Add(time.Duration(days)*24*time.Hour + time.Hour).Format(time.RFC3339)
}

// Pins the inclusive thresholds: 0..7 days is expiring-soon, 8..30 is
// short-expiry, 31 and beyond fires no expiry rule.
func TestAnalyze_ExpiryBoundaries(t *testing.T) {
	tests := []struct {
		days     int
		flag     string
		action   batch.Action
		priority batch.Priority
	}{
		{0, batch.FlagExpiringSoon, batch.ActionClearance, batch.PriorityHigh},
		{7, batch.FlagExpiringSoon, batch.ActionClearance, batch.PriorityHigh},
		{8, batch.FlagShortExpiry, batch.ActionDiscountSale, batch.PriorityMedium},
		{30, batch.FlagShortExpiry, batch.ActionDiscountSale, batch.PriorityMedium},
		{31, "", "", batch.PriorityNormal},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d days", tt.days), func(t *testing.T) {
			b := batch.New("SKU1", batch.Input{ExpiryDate: datetimeFromNow(tt.days)})

			if tt.flag == "" {
				assert.Empty(t, b.ConditionFlags)
			} else {
				assert.Contains(t, b.ConditionFlags, tt.flag)
			}
			assert.Equal(t, tt.action, b.RecommendedAction)
			assert.Equal(t, tt.priority, b.ActionPriority)
		})
	}
}

// Expiry rules take precedence: a damaged batch expiring in 5 days gets the
// clearance outcome, not return-to-supplier.
func TestAnalyze_ExpiryPrecedesCondition(t *testing.T) {
	b := batch.New("SKU1", batch.Input{
		Condition:  batch.ConditionDamaged,
		ExpiryDate: dateFromNow(5),
	})

	assert.Equal(t, batch.ActionClearance, b.RecommendedAction)
	assert.Equal(t, batch.PriorityHigh, b.ActionPriority)
	assert.Contains(t, b.ConditionFlags, batch.FlagExpiringSoon)
	assert.NotContains(t, b.ConditionFlags, batch.FlagDamaged)
}

func TestAnalyze_ConditionRules(t *testing.T) {
	tests := []struct {
		condition batch.ItemCondition
		flag      string
		action    batch.Action
		priority  batch.Priority
	}{
		{batch.ConditionDamaged, batch.FlagDamaged, batch.ActionReturnToSupplier, batch.PriorityHigh},
		{batch.ConditionExpired, batch.FlagExpired, batch.ActionDispose, batch.PriorityUrgent},
		{batch.ConditionAging, batch.FlagAging, batch.ActionDiscountSale, batch.PriorityMedium},
		{batch.ConditionSlowMoving, batch.FlagSlowMoving, batch.ActionDiscountSale, batch.PriorityLow},
		{batch.ConditionNonMoving, batch.FlagSlowMoving, batch.ActionDiscountSale, batch.PriorityLow},
		{batch.ConditionPackagingDamaged, batch.FlagPackagingIssue, batch.ActionRepackage, batch.PriorityMedium},
		{batch.ConditionWaterDamaged, batch.FlagUnsellable, batch.ActionWriteOff, batch.PriorityHigh},
		{batch.ConditionPestDamaged, batch.FlagUnsellable, batch.ActionWriteOff, batch.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(string(tt.condition), func(t *testing.T) {
			b := batch.New("SKU1", batch.Input{Condition: tt.condition})

			assert.Contains(t, b.ConditionFlags, tt.flag)
			assert.Equal(t, tt.action, b.RecommendedAction)
			assert.Equal(t, tt.priority, b.ActionPriority)
			assert.NotEmpty(t, b.Recommendations)
		})
	}
}

func TestAnalyze_UnmappedConditionsFireNoRule(t *testing.T) {
	for _, condition := range []batch.ItemCondition{
		batch.ConditionGood,
		batch.ConditionScratched,
		batch.ConditionObsolete,
	} {
		t.Run(string(condition), func(t *testing.T) {
			b := batch.New("SKU1", batch.Input{Condition: condition})

			assert.Empty(t, b.ConditionFlags)
			assert.Empty(t, b.RecommendedAction)
			assert.Equal(t, batch.PriorityNormal, b.ActionPriority)
		})
	}
}

func TestAnalyze_AgeFlags(t *testing.T) {
	tests := []struct {
		name    string
		mfgDate string
		want    []string
	}{
		{"very old", monthsAgo(26), []string{batch.FlagVeryOld}},
		{"old stock", monthsAgo(18), []string{batch.FlagOldStock}},
		{"recent", monthsAgo(6), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := batch.New("SKU1", batch.Input{MfgDate: tt.mfgDate})

			assert.Equal(t, tt.want, b.ConditionFlags)
			// Age flags alone never raise the priority.
			assert.Equal(t, batch.PriorityNormal, b.ActionPriority)
			assert.Empty(t, b.RecommendedAction)
		})
	}
}

func TestAnalyze_AgeFlagAppendedAfterRuleFlags(t *testing.T) {
	b := batch.New("SKU1", batch.Input{
		Condition: batch.ConditionDamaged,
		MfgDate:   monthsAgo(26),
	})

	assert.Equal(t, []string{batch.FlagDamaged, batch.FlagVeryOld}, b.ConditionFlags)
	assert.Equal(t, batch.PriorityHigh, b.ActionPriority)
}

func TestAnalyze_BadDatesFailOpen(t *testing.T) {
	withBadDates := batch.New("SKU1", batch.Input{
		Quantity:   5,
		ExpiryDate: "not-a-date",
		MfgDate:    "32/13/2024",
	})
	withoutDates := batch.New("SKU1", batch.Input{Quantity: 5})

	assert.Equal(t, withoutDates.ConditionFlags, withBadDates.ConditionFlags)
	assert.Equal(t, withoutDates.RecommendedAction, withBadDates.RecommendedAction)
	assert.Equal(t, withoutDates.ActionPriority, withBadDates.ActionPriority)
}

func TestAnalyze_DatetimeExpiryAccepted(t *testing.T) {
	expiry := time.Now().UTC().AddDate(0, 0, -2).Format(time.RFC3339)
	b := batch.New("SKU1", batch.Input{ExpiryDate: expiry})

	assert.Equal(t, batch.ActionDispose, b.RecommendedAction)
	assert.Equal(t, batch.PriorityUrgent, b.ActionPriority)
}

// Re-running Analyze on an already-classified batch must not flip-flop:
// derived fields are pure functions of condition and dates.
func TestAnalyze_Idempotent(t *testing.T) {
	b := batch.New("SKU1", batch.Input{
		Condition:  batch.ConditionDamaged,
		MfgDate:    monthsAgo(18),
		ExpiryDate: dateFromNow(90),
	})

	flags := append([]string(nil), b.ConditionFlags...)
	action := b.RecommendedAction
	priority := b.ActionPriority
	recommendations := append([]string(nil), b.Recommendations...)

	batch.Analyze(&b)

	assert.Equal(t, flags, b.ConditionFlags)
	assert.Equal(t, action, b.RecommendedAction)
	assert.Equal(t, priority, b.ActionPriority)
	assert.Equal(t, recommendations, b.Recommendations)
}
