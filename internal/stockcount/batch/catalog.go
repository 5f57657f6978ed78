package batch

// ConditionDefinition is the static metadata for one condition value: how the
// UI renders it, the default discount it suggests, whether photographic
// evidence is mandatory, and the quick actions offered during counting.
//
// This table is the single source of truth for condition metadata. The
// analyzer's rule table and this catalog key off the same ItemCondition
// values; keeping both behind one enum avoids the two drifting apart.
type ConditionDefinition struct {
	Label         string   `json:"label"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	Action        string   `json:"action"`
	Discount      int      `json:"discount"`
	RequiresPhoto bool     `json:"requires_photo"`
	QuickActions  []string `json:"quick_actions"`
}

// ConditionOption is one selectable condition for UI rendering.
type ConditionOption struct {
	Value         ItemCondition `json:"value"`
	Label         string        `json:"label"`
	Icon          string        `json:"icon"`
	Color         string        `json:"color"`
	Action        string        `json:"action"`
	Discount      int           `json:"discount"`
	RequiresPhoto bool          `json:"requires_photo"`
}

// catalogOrder fixes the presentation order of condition options.
var catalogOrder = []ItemCondition{
	ConditionGood,
	ConditionDamaged,
	ConditionAging,
	ConditionExpired,
	ConditionScratched,
	ConditionSlowMoving,
	ConditionNonMoving,
	ConditionPackagingDamaged,
	ConditionWaterDamaged,
	ConditionPestDamaged,
}

var conditionCatalog = map[ItemCondition]ConditionDefinition{
	ConditionGood: {
		Label:  "Good Condition",
		Icon:   "✅",
		Color:  "#4CAF50",
		Action: "Sell normally",
		QuickActions: []string{
			"Verify location on shelf",
			"Check for dust/dirt",
			"Ensure proper display",
		},
	},
	ConditionDamaged: {
		Label:         "Damaged",
		Icon:          "💔",
		Color:         "#F44336",
		Action:        "Return or dispose",
		RequiresPhoto: true,
		QuickActions: []string{
			"Take 3-4 clear photos",
			"Note damage type and extent",
			"Check if repairable",
			"Contact supplier if recent",
		},
	},
	ConditionAging: {
		Label:    "Aging Stock",
		Icon:     "⏳",
		Color:    "#FF9800",
		Action:   "Discount sale",
		Discount: 20,
		QuickActions: []string{
			"Apply discount sticker",
			"Move to clearance section",
			"Update price in system",
		},
	},
	ConditionExpired: {
		Label:         "Expired",
		Icon:          "❌",
		Color:         "#D32F2F",
		Action:        "Dispose immediately",
		RequiresPhoto: true,
		QuickActions: []string{
			"Remove from shelf immediately",
			"Take photo for records",
			"Tag for disposal",
			"Update inventory",
		},
	},
	ConditionScratched: {
		Label:    "Scratched",
		Icon:     "🔸",
		Color:    "#FFA726",
		Action:   "Minor discount",
		Discount: 10,
	},
	ConditionSlowMoving: {
		Label:    "Slow Moving",
		Icon:     "🐌",
		Color:    "#9E9E9E",
		Action:   "Bundle offers",
		Discount: 15,
		QuickActions: []string{
			"Create bundle deal",
			"Move to eye-level shelf",
			"Add promotional signage",
		},
	},
	ConditionNonMoving: {
		Label:    "Non-Moving",
		Icon:     "⛔",
		Color:    "#757575",
		Action:   "Clearance",
		Discount: 30,
		QuickActions: []string{
			"Apply 30% discount",
			"Consider donation",
			"Promote on social media",
		},
	},
	ConditionPackagingDamaged: {
		Label:         "Packaging Damaged",
		Icon:          "📦",
		Color:         "#FF9800",
		Action:        "Repackage or discount",
		Discount:      15,
		RequiresPhoto: true,
		QuickActions: []string{
			"Assess if repackageable",
			"Take photo of damage",
			"Apply 10-15% discount",
			"Update label",
		},
	},
	ConditionWaterDamaged: {
		Label:         "Water Damaged",
		Icon:          "💧",
		Color:         "#2196F3",
		Action:        "Write off",
		RequiresPhoto: true,
	},
	ConditionPestDamaged: {
		Label:         "Pest Damaged",
		Icon:          "🐛",
		Color:         "#8D6E63",
		Action:        "Dispose",
		RequiresPhoto: true,
	},
}

// ConditionOptions returns all condition options for UI rendering, in a fixed
// presentation order.
func ConditionOptions() []ConditionOption {
	options := make([]ConditionOption, 0, len(catalogOrder))
	for _, condition := range catalogOrder {
		def := conditionCatalog[condition]
		options = append(options, ConditionOption{
			Value:         condition,
			Label:         def.Label,
			Icon:          def.Icon,
			Color:         def.Color,
			Action:        def.Action,
			Discount:      def.Discount,
			RequiresPhoto: def.RequiresPhoto,
		})
	}
	return options
}

// QuickActions returns the quick action suggestions for a condition. Unknown
// conditions yield an empty list, never an error.
func QuickActions(condition ItemCondition) []string {
	def, ok := conditionCatalog[condition]
	if !ok || len(def.QuickActions) == 0 {
		return []string{}
	}
	actions := make([]string, len(def.QuickActions))
	copy(actions, def.QuickActions)
	return actions
}

// Definition returns the full catalog entry for a condition.
func Definition(condition ItemCondition) (ConditionDefinition, bool) {
	def, ok := conditionCatalog[condition]
	return def, ok
}
