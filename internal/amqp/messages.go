package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record-change actions carried on the wire.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordChangeMessage is a lightweight notification that a record changed.
// It carries only the domain, id and the affected local day; the worker
// fetches whatever it needs from the database when rebuilding summaries.
type RecordChangeMessage struct {
	Domain    string    `json:"domain"`
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Day       string    `json:"day"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChangeMessage creates a change notification stamped with the
// current time. Day is the local calendar day of the affected record,
// formatted as YYYY-MM-DD.
func NewRecordChangeMessage(domain string, id int64, action, day string) *RecordChangeMessage {
	return &RecordChangeMessage{
		Domain:    domain,
		ID:        id,
		Action:    action,
		Day:       day,
		Timestamp: time.Now(),
	}
}

func (m *RecordChangeMessage) Validate() error {
	if m.Domain == "" {
		return fmt.Errorf("record change message missing domain")
	}
	switch m.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
	default:
		return fmt.Errorf("unknown record change action %q", m.Action)
	}
	if _, err := time.Parse("2006-01-02", m.Day); err != nil {
		return fmt.Errorf("invalid day %q: %w", m.Day, err)
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeMessageFromJSON creates a message from JSON bytes
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
