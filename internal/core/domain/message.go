// Package domain defines the core domain models for WireMesh.
package domain

import (
	"crypto/rand"
	"encoding/json"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Message constraints.
const (
	// MaxPayloadSize is the maximum payload size in bytes (256 KB).
	MaxPayloadSize = 256 * 1024

	// MessageIDPrefix is the prefix for message IDs.
	MessageIDPrefix = "wmsg-"
)

// MessageKind discriminates application messages from liveness probes.
type MessageKind string

const (
	// KindData is an application message delivered to listeners.
	KindData MessageKind = "data"

	// KindHeartbeat is a liveness probe; replies are logged, not delivered.
	KindHeartbeat MessageKind = "heartbeat"
)

// Message is the unit the connection manager queues and transmits.
// The payload is an opaque structured value; the manager serializes
// and deserializes the message as a whole and never inspects it.
type Message struct {
	// ID is the unique identifier.
	// Format: wmsg-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// Kind is the message kind (data or heartbeat).
	Kind MessageKind `json:"kind"`

	// Payload is the opaque structured payload.
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the submission timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// NewMessage creates a data message with a generated ID.
func NewMessage(payload json.RawMessage) (Message, error) {
	id, err := GenerateMessageID()
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        id,
		Kind:      KindData,
		Payload:   payload,
		CreatedAt: time.Now().UnixMilli(),
	}, nil
}

// NewHeartbeat creates a heartbeat probe message.
func NewHeartbeat() (Message, error) {
	id, err := GenerateMessageID()
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        id,
		Kind:      KindHeartbeat,
		CreatedAt: time.Now().UnixMilli(),
	}, nil
}

// GenerateMessageID generates a new message ID using ULID.
// Format: wmsg-{ulid_lowercase}, 31 characters total.
func GenerateMessageID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternal.WithCause(err)
	}
	return MessageIDPrefix + strings.ToLower(id.String()), nil
}

// Validate validates the message against constraints.
func (m Message) Validate() error {
	if m.Kind != KindData && m.Kind != KindHeartbeat {
		return ErrMessageMalformed.WithDetails("unknown kind " + string(m.Kind))
	}
	if len(m.Payload) > MaxPayloadSize {
		return ErrPayloadTooLarge
	}
	return nil
}

// Encode serializes the message for transmission.
func (m Message) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, ErrMessageMalformed.WithCause(err)
	}
	return data, nil
}

// DecodeMessage deserializes a message received from the transport.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, ErrMessageMalformed.WithCause(err)
	}
	if m.Kind == "" {
		m.Kind = KindData
	}
	return m, nil
}

// CreatedAtTime returns CreatedAt as time.Time.
func (m Message) CreatedAtTime() time.Time {
	return time.UnixMilli(m.CreatedAt)
}

// IsValidMessageID checks if a string is a valid message ID format.
func IsValidMessageID(id string) bool {
	id = strings.ToLower(id)
	if !strings.HasPrefix(id, MessageIDPrefix) {
		return false
	}
	// wmsg- (5) + ULID (26) = 31 characters
	if len(id) != 31 {
		return false
	}
	_, err := ulid.Parse(strings.ToUpper(id[len(MessageIDPrefix):]))
	return err == nil
}
