package amqp

import (
	"encoding/json"
	"time"
)

// ChangeMessage announces that a store key was written or removed.
// Origin identifies the publishing process so consumers can ignore their
// own writes; subscribers re-read the store, so the message carries no
// payload.
type ChangeMessage struct {
	Key       string    `json:"key"`
	Origin    string    `json:"origin"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(key, origin string) *ChangeMessage {
	return &ChangeMessage{
		Key:       key,
		Origin:    origin,
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
