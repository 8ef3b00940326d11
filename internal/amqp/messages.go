package amqp

import (
	"encoding/json"
	"time"
)

// ChangeMessage announces that a budget record changed. It carries only
// the identity of the record, consumers fetch the current state from
// the store themselves.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity, entityID, action string) *ChangeMessage {
	return &ChangeMessage{
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
