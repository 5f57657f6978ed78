package batch

// ConditionBreakdown summarises the batches sharing one condition.
type ConditionBreakdown struct {
	Count    int     `json:"count"`
	Quantity float64 `json:"quantity"`
}

// PriorityAction is one entry in the prioritized to-do list of a summary.
type PriorityAction struct {
	BatchID   string        `json:"batch_id"`
	Condition ItemCondition `json:"condition"`
	Quantity  float64       `json:"quantity"`
	Action    Action        `json:"action"`
	Priority  Priority      `json:"priority"`
}

// FinancialImpact estimates the value at risk from discounting.
type FinancialImpact struct {
	TotalValue      float64 `json:"total_value"`
	DiscountedValue float64 `json:"discounted_value"`
	PotentialLoss   float64 `json:"potential_loss"`
}

// Summary aggregates all counted batches of one item.
type Summary struct {
	TotalBatches    int                                  `json:"total_batches"`
	TotalQuantity   float64                              `json:"total_quantity"`
	ByCondition     map[ItemCondition]ConditionBreakdown `json:"by_condition"`
	PriorityBatches int                                  `json:"priority_batches"`
	PriorityActions []PriorityAction                     `json:"priority_actions"`
	FinancialImpact FinancialImpact                      `json:"financial_impact"`
}

// Aggregate folds a collection of analyzed batches for a single item into a
// summary: quantity totals, per-condition breakdowns, the ordered list of
// batches needing immediate attention, and financial-impact figures.
//
// Aggregation is pure: it never mutates the input and an empty collection
// yields an empty summary, not an error.
func Aggregate(batches []Batch) Summary {
	if len(batches) == 0 {
		return Summary{}
	}

	summary := Summary{
		TotalBatches:    len(batches),
		ByCondition:     make(map[ItemCondition]ConditionBreakdown),
		PriorityActions: []PriorityAction{},
	}

	for _, b := range batches {
		summary.TotalQuantity += b.Quantity

		breakdown := summary.ByCondition[b.Condition]
		breakdown.Count++
		breakdown.Quantity += b.Quantity
		summary.ByCondition[b.Condition] = breakdown

		if b.ActionPriority.IsPriority() {
			summary.PriorityBatches++
			summary.PriorityActions = append(summary.PriorityActions, PriorityAction{
				BatchID:   b.BatchID,
				Condition: b.Condition,
				Quantity:  b.Quantity,
				Action:    b.RecommendedAction,
				Priority:  b.ActionPriority,
			})
		}

		summary.FinancialImpact.TotalValue += b.Quantity * b.OriginalMRP
		summary.FinancialImpact.DiscountedValue += b.Quantity * b.CurrentPrice
	}

	summary.FinancialImpact.PotentialLoss = summary.FinancialImpact.TotalValue - summary.FinancialImpact.DiscountedValue

	return summary
}
