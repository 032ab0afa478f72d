package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewMessage(t *testing.T) {
	payload := json.RawMessage(`{"op":"hello"}`)
	msg, err := NewMessage(payload)
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}

	if !IsValidMessageID(msg.ID) {
		t.Errorf("ID %q is not a valid message ID", msg.ID)
	}
	if msg.Kind != KindData {
		t.Errorf("Kind = %q, want %q", msg.Kind, KindData)
	}
	if !bytes.Equal(msg.Payload, payload) {
		t.Errorf("Payload = %s, want %s", msg.Payload, payload)
	}
	if msg.CreatedAt == 0 {
		t.Error("CreatedAt should be set")
	}
}

func TestNewHeartbeat(t *testing.T) {
	hb, err := NewHeartbeat()
	if err != nil {
		t.Fatalf("NewHeartbeat() error = %v", err)
	}
	if hb.Kind != KindHeartbeat {
		t.Errorf("Kind = %q, want %q", hb.Kind, KindHeartbeat)
	}
	if len(hb.Payload) != 0 {
		t.Error("heartbeat should carry no payload")
	}
}

func TestGenerateMessageID(t *testing.T) {
	id, err := GenerateMessageID()
	if err != nil {
		t.Fatalf("GenerateMessageID() error = %v", err)
	}

	if !strings.HasPrefix(id, MessageIDPrefix) {
		t.Errorf("ID %q missing prefix %q", id, MessageIDPrefix)
	}
	if len(id) != 31 {
		t.Errorf("len(ID) = %d, want 31", len(id))
	}
	if id != strings.ToLower(id) {
		t.Error("ID should be lowercase")
	}
}

func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr *DomainError
	}{
		{"valid data", Message{Kind: KindData, Payload: json.RawMessage(`{}`)}, nil},
		{"valid heartbeat", Message{Kind: KindHeartbeat}, nil},
		{"unknown kind", Message{Kind: "bogus"}, ErrMessageMalformed},
		{"oversized payload", Message{Kind: KindData, Payload: bytes.Repeat([]byte("x"), MaxPayloadSize+1)}, ErrPayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !IsDomainError(err, tt.wantErr.Code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.wantErr.Code)
			}
		})
	}
}

func TestMessage_EncodeDecode(t *testing.T) {
	msg, err := NewMessage(json.RawMessage(`{"seq":1}`))
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}

	data, err := msg.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}

	if decoded.ID != msg.ID {
		t.Errorf("ID = %q, want %q", decoded.ID, msg.ID)
	}
	if decoded.Kind != KindData {
		t.Errorf("Kind = %q, want %q", decoded.Kind, KindData)
	}
	if !bytes.Equal(decoded.Payload, msg.Payload) {
		t.Errorf("Payload = %s, want %s", decoded.Payload, msg.Payload)
	}
}

func TestDecodeMessage_Invalid(t *testing.T) {
	if _, err := DecodeMessage([]byte("not json")); !IsDomainError(err, "WM-MSG-4000") {
		t.Errorf("DecodeMessage() error = %v, want WM-MSG-4000", err)
	}
}

func TestDecodeMessage_DefaultsKind(t *testing.T) {
	decoded, err := DecodeMessage([]byte(`{"id":"wmsg-0","payload":{"a":1}}`))
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if decoded.Kind != KindData {
		t.Errorf("Kind = %q, want default %q", decoded.Kind, KindData)
	}
}

func TestIsValidMessageID(t *testing.T) {
	valid, _ := GenerateMessageID()

	tests := []struct {
		id   string
		want bool
	}{
		{valid, true},
		{strings.ToUpper(valid), true}, // normalized before validation
		{"wmsg-short", false},
		{"tmss-01hgw2bbg0000000000000000x", false}, // wrong prefix
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidMessageID(tt.id); got != tt.want {
			t.Errorf("IsValidMessageID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
