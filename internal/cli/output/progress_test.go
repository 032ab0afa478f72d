package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewProgressBar(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "sending")

	if bar == nil {
		t.Fatal("NewProgressBar returned nil")
	}
	if bar.title != "sending" {
		t.Errorf("title = %q, want %q", bar.title, "sending")
	}
	if bar.width != 40 {
		t.Errorf("width = %d, want %d", bar.width, 40)
	}
}

func TestProgressBar_Update(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "sending")

	// Halfway through a 2 KB payload file.
	bar.Update(1024, 2048)

	out := buf.String()
	if !strings.Contains(out, "sending") {
		t.Error("output should contain the title")
	}
	if !strings.Contains(out, "50%") {
		t.Errorf("output = %q, want 50%% marker", out)
	}
}

func TestProgressBar_Increment(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "sending")

	bar.SetTotal(2048)
	if bar.total != 2048 {
		t.Fatalf("total = %d, want %d", bar.total, 2048)
	}

	// One increment per message written to the stream.
	bar.Increment(512)
	bar.Increment(512)
	if bar.current != 1024 {
		t.Errorf("current = %d, want %d", bar.current, 1024)
	}
}

func TestProgressBar_Finish(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "sending")

	bar.SetTotal(2048)
	bar.Update(2048, 2048)
	bar.Finish()

	if !strings.Contains(buf.String(), "100%") {
		t.Error("finished bar should show 100%")
	}
}

func TestProgressBar_UnknownTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "sending")

	// Streaming from stdin: total is unknown, show bytes written so far.
	bar.Update(1024, 0)

	out := buf.String()
	if !strings.Contains(out, "sending") {
		t.Error("output should contain the title")
	}
	if !strings.Contains(out, "1.0 KB") {
		t.Errorf("output = %q, want running byte count", out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5242880, "5.0 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.input); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
