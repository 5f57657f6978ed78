package batch

import (
	"fmt"
	"math"
	"time"
)

// Condition flags raised by the analyzer.
const (
	FlagExpired        = "EXPIRED"
	FlagExpiringSoon   = "EXPIRING_SOON"
	FlagShortExpiry    = "SHORT_EXPIRY"
	FlagDamaged        = "DAMAGED"
	FlagAging          = "AGING"
	FlagSlowMoving     = "SLOW_MOVING"
	FlagPackagingIssue = "PACKAGING_ISSUE"
	FlagUnsellable     = "UNSELLABLE"
	FlagVeryOld        = "VERY_OLD"
	FlagOldStock       = "OLD_STOCK"
)

// Analyze classifies a batch and derives its condition flags, recommended
// action, urgency priority and guidance. The pass is a one-shot classification
// with ordered precedence: expiry rules first, then the condition table (only
// when expiry produced no action), then age flags which are always appended.
//
// Derived fields are recomputed from scratch on every call, so re-running
// Analyze on an already-classified batch yields the same outcome for the same
// point-in-time inputs.
func Analyze(b *Batch) {
	analyzeAt(b, time.Now())
}

func analyzeAt(b *Batch, now time.Time) {
	flags := []string{}
	recommendations := []string{}
	priority := PriorityNormal
	b.RecommendedAction = ""

	if result := checkExpiry(b.ExpiryDate, now); result != nil {
		flags = append(flags, result.flags...)
		recommendations = append(recommendations, result.recommendations...)
		priority = result.priority
		b.RecommendedAction = result.action
	}

	if b.RecommendedAction == "" {
		if result := checkCondition(b.Condition); result != nil {
			flags = append(flags, result.flags...)
			recommendations = append(recommendations, result.recommendations...)
			priority = result.priority
			b.RecommendedAction = result.action
		}
	}

	flags = append(flags, ageFlags(b.MfgDate, now)...)

	b.ConditionFlags = flags
	b.Recommendations = recommendations
	b.ActionPriority = priority
}

type ruleResult struct {
	flags           []string
	action          Action
	priority        Priority
	recommendations []string
}

func checkExpiry(expiryDate string, now time.Time) *ruleResult {
	expiry, ok := parseDate(expiryDate)
	if !ok {
		return nil
	}

	daysToExpiry := int(math.Floor(expiry.Sub(now).Hours() / 24))

	switch {
	case daysToExpiry < 0:
		return &ruleResult{
			flags:    []string{FlagExpired},
			action:   ActionDispose,
			priority: PriorityUrgent,
			recommendations: []string{
				"DO NOT SELL - Expired product",
				"Remove from shelves immediately",
				"Dispose as per regulations",
			},
		}
	case daysToExpiry <= 7:
		return &ruleResult{
			flags:    []string{FlagExpiringSoon},
			action:   ActionClearance,
			priority: PriorityHigh,
			recommendations: []string{
				fmt.Sprintf("Expires in %d days - Clear urgently", daysToExpiry),
				"Apply 50-70% discount",
			},
		}
	case daysToExpiry <= 30:
		return &ruleResult{
			flags:    []string{FlagShortExpiry},
			action:   ActionDiscountSale,
			priority: PriorityMedium,
			recommendations: []string{
				fmt.Sprintf("Expires in %d days", daysToExpiry),
				"Apply 20-30% discount",
			},
		}
	}
	return nil
}

func checkCondition(condition ItemCondition) *ruleResult {
	switch condition {
	case ConditionDamaged:
		return &ruleResult{
			flags:    []string{FlagDamaged},
			action:   ActionReturnToSupplier,
			priority: PriorityHigh,
			recommendations: []string{
				"Check if within return period",
				"Document with photos",
				"Contact supplier for replacement",
			},
		}
	case ConditionExpired:
		return &ruleResult{
			flags:    []string{FlagExpired},
			action:   ActionDispose,
			priority: PriorityUrgent,
			recommendations: []string{
				"Remove from sales floor",
				"Dispose immediately",
			},
		}
	case ConditionAging:
		return &ruleResult{
			flags:    []string{FlagAging},
			action:   ActionDiscountSale,
			priority: PriorityMedium,
			recommendations: []string{
				"Apply 15-25% discount",
				"Promote in clearance section",
			},
		}
	case ConditionSlowMoving, ConditionNonMoving:
		return &ruleResult{
			flags:    []string{FlagSlowMoving},
			action:   ActionDiscountSale,
			priority: PriorityLow,
			recommendations: []string{
				"Create bundle offers",
				"Place in high-traffic area",
			},
		}
	case ConditionPackagingDamaged:
		return &ruleResult{
			flags:    []string{FlagPackagingIssue},
			action:   ActionRepackage,
			priority: PriorityMedium,
			recommendations: []string{
				"Repackage if product is intact",
				"Sell at 10-15% discount",
			},
		}
	case ConditionWaterDamaged, ConditionPestDamaged:
		return &ruleResult{
			flags:    []string{FlagUnsellable},
			action:   ActionWriteOff,
			priority: PriorityHigh,
			recommendations: []string{
				"Cannot be sold",
				"Write off from inventory",
				"Dispose safely",
			},
		}
	}
	return nil
}

// ageFlags tags stock by manufacturing age. Months are approximated as 30
// days; downstream thresholds were tuned against this approximation, so it
// stays calendar-inaccurate on purpose.
func ageFlags(mfgDate string, now time.Time) []string {
	mfg, ok := parseDate(mfgDate)
	if !ok {
		return nil
	}

	ageMonths := now.Sub(mfg).Hours() / 24 / 30

	switch {
	case ageMonths > 24:
		return []string{FlagVeryOld}
	case ageMonths > 12:
		return []string{FlagOldStock}
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses an ISO-8601 date or datetime string. Missing or malformed
// values report ok=false so the dependent rule is skipped; bad label data is
// expected "unknown", not a fault.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
