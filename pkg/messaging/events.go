package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Stock count events
	EventBatchRecorded = "stockcount.batch.recorded"
	EventBatchPriority = "stockcount.batch.priority"
	EventBatchVerified = "stockcount.batch.verified"

	// Auth events
	EventStaffLoggedIn  = "auth.staff.logged_in"
	EventStaffPINChange = "auth.staff.pin_changed"
)

// Exchange names
const (
	ExchangeStockCountEvents = "stockcount.events"
	ExchangeAuthEvents       = "auth.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Stock Count Events

// BatchRecordedEvent is published when a counted batch is recorded
type BatchRecordedEvent struct {
	ItemCode          string   `json:"item_code"`
	BatchID           string   `json:"batch_id"`
	Quantity          float64  `json:"quantity"`
	Condition         string   `json:"condition"`
	RecommendedAction string   `json:"recommended_action"`
	ActionPriority    string   `json:"action_priority"`
	Flags             []string `json:"flags,omitempty"`
	CountedBy         string   `json:"counted_by,omitempty"`
}

// BatchPriorityEvent is published when a recorded batch needs urgent handling
type BatchPriorityEvent struct {
	ItemCode          string  `json:"item_code"`
	BatchID           string  `json:"batch_id"`
	Quantity          float64 `json:"quantity"`
	Condition         string  `json:"condition"`
	RecommendedAction string  `json:"recommended_action"`
	ActionPriority    string  `json:"action_priority"`
	Recommendation    string  `json:"recommendation,omitempty"`
}

// BatchVerifiedEvent is published when a supervisor verifies a batch count
type BatchVerifiedEvent struct {
	ItemCode   string `json:"item_code"`
	BatchID    string `json:"batch_id"`
	VerifiedBy string `json:"verified_by"`
}

// Auth Events

// StaffLoggedInEvent is published when a staff member logs in
type StaffLoggedInEvent struct {
	StaffID  string `json:"staff_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// StaffPINChangedEvent is published when a staff member changes their PIN
type StaffPINChangedEvent struct {
	StaffID string `json:"staff_id"`
}
