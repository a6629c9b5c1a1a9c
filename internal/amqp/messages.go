package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// TransactionEventMessage is the lightweight change notification published
// after a local write. It carries only the identifier and the action; the
// consumer fetches the current record from the store when it needs one.
type TransactionEventMessage struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewTransactionEvent(id int64, action string) *TransactionEventMessage {
	return &TransactionEventMessage{
		ID:         id,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
}

func (m *TransactionEventMessage) Validate() error {
	if m.ID == 0 {
		return fmt.Errorf("event missing transaction id")
	}
	switch m.Action {
	case ActionCreate, ActionUpdate, ActionDelete:
		return nil
	default:
		return fmt.Errorf("unknown event action %q", m.Action)
	}
}

func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionEventFromJSON(data []byte) (*TransactionEventMessage, error) {
	var m TransactionEventMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal transaction event: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
