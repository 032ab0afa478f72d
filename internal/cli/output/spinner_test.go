package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNewSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "connecting to ws://gateway.local:9443/stream")

	if s == nil {
		t.Fatal("NewSpinner returned nil")
	}
	if s.w != &buf {
		t.Error("writer not set")
	}
	if !strings.Contains(s.message, "gateway.local") {
		t.Errorf("message = %q, want the endpoint", s.message)
	}
	if len(s.frames) == 0 {
		t.Error("frames should not be empty")
	}
	if s.done == nil {
		t.Error("done channel should be initialized")
	}
}

func TestSpinner_StartStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "connecting to ws://gateway.local:9443/stream")

	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.Stop()
	time.Sleep(50 * time.Millisecond)

	// The spinner redraws in place with carriage returns.
	if !strings.Contains(buf.String(), "\r") {
		t.Error("output should contain carriage returns")
	}
}

func TestSpinner_Success(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "connecting to ws://gateway.local:9443/stream")

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Success("connected")
	time.Sleep(50 * time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "✓") {
		t.Error("Success output should contain a checkmark")
	}
	if !strings.Contains(out, "connected") {
		t.Error("Success output should contain the message")
	}
}

func TestSpinner_Fail(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "connecting to ws://gateway.local:9443/stream")

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Fail("dial timeout after 10s")
	time.Sleep(50 * time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "✗") {
		t.Error("Fail output should contain an X mark")
	}
	if !strings.Contains(out, "dial timeout after 10s") {
		t.Error("Fail output should contain the failure reason")
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "connecting")

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Stop without Start panicked: %v", r)
		}
	}()
	s.Stop()
}
