package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotSavedMessage tells the worker a new snapshot revision was
// persisted. It carries only the key and revision; the worker fetches
// the snapshot body from the store itself.
type SnapshotSavedMessage struct {
	Key       string    `json:"key"`
	Revision  int64     `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSnapshotSavedMessage creates a message for the given key and revision
func NewSnapshotSavedMessage(key string, revision int64) *SnapshotSavedMessage {
	return &SnapshotSavedMessage{
		Key:       key,
		Revision:  revision,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SnapshotSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotSavedMessageFromJSON creates a message from JSON bytes
func SnapshotSavedMessageFromJSON(data []byte) (*SnapshotSavedMessage, error) {
	var msg SnapshotSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
