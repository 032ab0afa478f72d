package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

// sessionRow mirrors the shape `wiremesh-cli session list` renders.
type sessionRow struct {
	Endpoint  string    `json:"endpoint"`
	State     string    `json:"state"`
	Pending   int       `json:"pending"`
	Healthy   bool      `json:"healthy"`
	LastEvent time.Time `json:"last_event" table:"wide"`
}

func sampleSessions() []sessionRow {
	return []sessionRow{
		{
			Endpoint:  "ws://gateway.local:9443/stream",
			State:     "connected",
			Pending:   0,
			Healthy:   true,
			LastEvent: time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC),
		},
		{
			Endpoint: "ws://backup.local:9443/stream",
			State:    "reconnect_wait",
			Pending:  12,
			Healthy:  false,
		},
	}
}

func TestTableFormatter_Table(t *testing.T) {
	table := &Table{}
	table.SetHeaders("ENDPOINT", "STATE", "PENDING")
	table.AddRow("ws://gateway.local:9443/stream", "connected", "0")
	table.AddRow("ws://backup.local:9443/stream", "reconnect_wait", "12")

	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ENDPOINT", "connected", "reconnect_wait", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestTableFormatter_Nil(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, nil); err != nil {
		t.Fatalf("Format(nil) error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Format(nil) wrote %q, want nothing", buf.String())
	}
}

func TestTableFormatter_StructSlice(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, sampleSessions()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ENDPOINT", "STATE", "PENDING", "HEALTHY", "connected", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	// LastEvent is wide-only.
	if strings.Contains(out, "LAST_EVENT") {
		t.Error("wide column rendered without Wide mode")
	}
}

func TestTableFormatter_Wide(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{Wide: true}
	if err := f.Format(&buf, sampleSessions()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "LAST_EVENT") {
		t.Error("Wide mode should render the LAST_EVENT column")
	}
	if !strings.Contains(out, "2026-03-14 09:26") {
		t.Errorf("timestamp not rendered\n%s", out)
	}
	// Zero time renders as a dash.
	if !strings.Contains(out, "-") {
		t.Error("zero LastEvent should render as -")
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{NoHeaders: true}
	if err := f.Format(&buf, sampleSessions()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "ENDPOINT") {
		t.Error("NoHeaders output should not contain headers")
	}
	if !strings.Contains(out, "connected") {
		t.Error("NoHeaders output should still contain rows")
	}
}

func TestTableFormatter_EmptySlice(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, []sessionRow{}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
}

func TestTableFormatter_PointerSlice(t *testing.T) {
	rows := []*sessionRow{
		{Endpoint: "ws://gateway.local:9443/stream", State: "connected"},
	}

	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "connected") {
		t.Errorf("output missing row data\n%s", buf.String())
	}
}

func TestTableFormatter_Map(t *testing.T) {
	stats := map[string]any{
		"sent":    128,
		"dropped": 2,
	}

	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, stats); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"KEY", "VALUE", "sent", "128", "dropped"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestTableFormatter_SingleStruct(t *testing.T) {
	// `wiremesh-cli session stats` renders one stats struct as
	// field/value pairs.
	stats := struct {
		Sent       uint64 `json:"sent"`
		Received   uint64 `json:"received"`
		Dropped    uint64 `json:"dropped"`
		Reconnects uint64 `json:"reconnects"`
	}{Sent: 128, Received: 97, Dropped: 2, Reconnects: 3}

	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, stats); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"FIELD", "VALUE", "sent", "128", "reconnects", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestTableFormatter_SkipAndUnexported(t *testing.T) {
	rows := []struct {
		Endpoint string `json:"endpoint"`
		Token    string `json:"token" table:"-"`
		internal string //nolint:unused
	}{
		{Endpoint: "ws://gateway.local:9443/stream", Token: "wmtk_c8f2a1b9d7e3"},
	}

	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "wmtk_") {
		t.Error("table:\"-\" column should not be rendered")
	}
	if strings.Contains(out, "INTERNAL") {
		t.Error("unexported field should not be rendered")
	}
	if !strings.Contains(out, "ws://gateway.local:9443/stream") {
		t.Error("exported column missing")
	}
}

func TestTableFormatter_JSONFallback(t *testing.T) {
	// Scalars cannot be tabulated; the formatter falls back to JSON.
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, 42); err != nil {
		t.Fatalf("Format(42) error = %v", err)
	}
	if !strings.Contains(buf.String(), "42") {
		t.Errorf("fallback output = %q, want 42", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	lastEvent := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	endpoint := "ws://gateway.local:9443/stream"

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"string", "connected", "connected"},
		{"empty string", "", "-"},
		{"int", 12, "12"},
		{"uint", uint64(128), "128"},
		{"float", 0.875, "0.88"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"time", lastEvent, "2026-03-14 09:26"},
		{"zero time", time.Time{}, "-"},
		{"string pointer", &endpoint, endpoint},
		{"nil pointer", (*string)(nil), ""},
		{"empty slice", []string{}, "-"},
		{"slice", []int{1, 2, 3}, "[3 items]"},
		{"empty map", map[string]int{}, "-"},
		{"map", map[string]int{"sent": 1, "dropped": 0}, "{2 keys}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatValue(reflect.ValueOf(tt.input))
			if got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Endpoint", "Endpoint"},
		{"LastEvent", "Last_Event"},
		{"QueueDepth", "Queue_Depth"},
		{"pending", "pending"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := toSnakeCase(tt.input); got != tt.want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTable_Render(t *testing.T) {
	table := &Table{}
	table.SetHeaders("FIELD", "VALUE")
	table.AddRow("state", "connected")
	table.AddRow("pending", "0")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("rendered %d lines, want 3\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "FIELD") {
		t.Errorf("first line = %q, want header row", lines[0])
	}
}
