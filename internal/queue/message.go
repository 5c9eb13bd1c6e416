package queue

import (
	"encoding/json"
	"time"
)

// MessageVersion is bumped when the payload shape changes.
const MessageVersion = 1

// Message asks a worker to generate the coaching document of a task.
type Message struct {
	TaskID     string `json:"taskId"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// NewMessage stamps a coaching job for taskID.
func NewMessage(taskID, requestID string, now time.Time) Message {
	return Message{
		TaskID:     taskID,
		RequestID:  requestID,
		EnqueuedAt: now.UTC().Format(time.RFC3339),
		Version:    MessageVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
