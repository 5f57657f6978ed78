package batch

import (
	"time"
)

// ItemCondition is the physical/quality state recorded for a counted batch.
type ItemCondition string

const (
	ConditionGood             ItemCondition = "good"
	ConditionDamaged          ItemCondition = "damaged"
	ConditionAging            ItemCondition = "aging"
	ConditionExpired          ItemCondition = "expired"
	ConditionScratched        ItemCondition = "scratched"
	ConditionDefective        ItemCondition = "defective"
	ConditionSlowMoving       ItemCondition = "slow_moving"
	ConditionNonMoving        ItemCondition = "non_moving"
	ConditionObsolete         ItemCondition = "obsolete"
	ConditionWaterDamaged     ItemCondition = "water_damaged"
	ConditionPestDamaged      ItemCondition = "pest_damaged"
	ConditionPackagingDamaged ItemCondition = "packaging_damaged"
)

// Action is the recommended business disposition for a batch.
type Action string

const (
	ActionSellNormal       Action = "sell_normal"
	ActionDiscountSale     Action = "discount_sale"
	ActionClearance        Action = "clearance"
	ActionReturnToSupplier Action = "return_to_supplier"
	ActionDispose          Action = "dispose"
	ActionRepair           Action = "repair"
	ActionRepackage        Action = "repackage"
	ActionDonate           Action = "donate"
	ActionWriteOff         Action = "write_off"
)

// Priority ranks how urgently a batch needs attention.
type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// IsPriority reports whether the priority marks a batch for immediate attention.
func (p Priority) IsPriority() bool {
	return p == PriorityUrgent || p == PriorityHigh
}

// Batch is one physically counted lot of a single item.
//
// Date fields are kept as ISO-8601 strings: counting devices submit whatever
// the label carries, and a malformed date must never block a count from being
// recorded. Parsing happens inside Analyze and fails open.
type Batch struct {
	BatchID  string `json:"batch_id"`
	ItemCode string `json:"item_code"`

	BatchNumber  string `json:"batch_number"`
	LotNumber    string `json:"lot_number"`
	SerialNumber string `json:"serial_number"`

	Location string `json:"location"`
	Shelf    string `json:"shelf"`
	Bin      string `json:"bin"`
	Section  string `json:"section"`

	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	MfgDate      string `json:"mfg_date,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	ReceivedDate string `json:"received_date,omitempty"`

	Condition      ItemCondition `json:"condition"`
	ConditionNotes string        `json:"condition_notes"`
	ConditionFlags []string      `json:"condition_flags"`

	OriginalMRP     float64 `json:"original_mrp"`
	CurrentPrice    float64 `json:"current_price"`
	DiscountApplied float64 `json:"discount_applied"`

	RecommendedAction Action   `json:"recommended_action,omitempty"`
	ActionPriority    Priority `json:"action_priority"`
	ActionDeadline    string   `json:"action_deadline,omitempty"`
	Recommendations   []string `json:"recommendations"`

	Photos     []string  `json:"photos"`
	CountedBy  string    `json:"counted_by"`
	CountedAt  time.Time `json:"counted_at"`
	Verified   bool      `json:"verified"`
	VerifiedBy string    `json:"verified_by,omitempty"`
}

// Input carries the caller-supplied fields for a new batch. Every field is
// optional; New fills defaults and derives the rest.
type Input struct {
	BatchID      string        `json:"batch_id"`
	BatchNumber  string        `json:"batch_number"`
	LotNumber    string        `json:"lot_number"`
	SerialNumber string        `json:"serial_number"`
	Location     string        `json:"location"`
	Shelf        string        `json:"shelf"`
	Bin          string        `json:"bin"`
	Section      string        `json:"section"`
	Quantity     float64       `json:"quantity"`
	Unit         string        `json:"unit"`
	MfgDate      string        `json:"mfg_date"`
	ExpiryDate   string        `json:"expiry_date"`
	ReceivedDate string        `json:"received_date"`
	Condition    ItemCondition `json:"condition"`
	Notes        string        `json:"condition_notes"`
	OriginalMRP  float64       `json:"original_mrp"`
	CurrentPrice float64       `json:"current_price"`
	Discount     float64       `json:"discount_applied"`
	Deadline     string        `json:"action_deadline"`
	Photos       []string      `json:"photos"`
	CountedBy    string        `json:"counted_by"`
	Verified     bool          `json:"verified"`
	VerifiedBy   string        `json:"verified_by"`
}

// New assembles a normalized batch record from raw input and analyzes it.
// The returned batch is always fully classified, never in a raw state.
//
// New is a normalization step, not a validator: malformed optional fields are
// accepted as-is and item code emptiness is the caller's responsibility.
func New(itemCode string, in Input) Batch {
	now := time.Now().UTC()

	b := Batch{
		BatchID:         in.BatchID,
		ItemCode:        itemCode,
		BatchNumber:     in.BatchNumber,
		LotNumber:       in.LotNumber,
		SerialNumber:    in.SerialNumber,
		Location:        in.Location,
		Shelf:           in.Shelf,
		Bin:             in.Bin,
		Section:         in.Section,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		MfgDate:         in.MfgDate,
		ExpiryDate:      in.ExpiryDate,
		ReceivedDate:    in.ReceivedDate,
		Condition:       in.Condition,
		ConditionNotes:  in.Notes,
		OriginalMRP:     in.OriginalMRP,
		CurrentPrice:    in.CurrentPrice,
		DiscountApplied: in.Discount,
		ActionDeadline:  in.Deadline,
		Photos:          in.Photos,
		CountedBy:       in.CountedBy,
		CountedAt:       now,
		Verified:        in.Verified,
		VerifiedBy:      in.VerifiedBy,
	}

	if b.BatchID == "" {
		b.BatchID = "BATCH-" + now.Format("20060102150405")
	}
	if b.Unit == "" {
		b.Unit = "PCS"
	}
	if b.Condition == "" {
		b.Condition = ConditionGood
	}
	if b.Photos == nil {
		b.Photos = []string{}
	}

	Analyze(&b)
	return b
}
