package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func captureSlog(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("parse slog output %q: %v", buf.String(), err)
	}
	return record
}

func TestSlogAdapterFrame(t *testing.T) {
	rec := captureSlog(t, Event{
		Timestamp: time.Now(),
		SessionID: "sess-1",
		Direction: DirectionOut,
		Layer:     LayerTransport,
		Category:  CategoryControl,
		Port:      "/dev/ttyUSB0",
		Frame:     &FrameEvent{Size: 6, Command: 0x01},
	})

	if rec["msg"] != "protocol" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["level"] != "DEBUG" {
		t.Errorf("level = %v", rec["level"])
	}
	if rec["direction"] != "OUT" {
		t.Errorf("direction = %v", rec["direction"])
	}
	if rec["command"] != "0x01" {
		t.Errorf("command = %v", rec["command"])
	}
	if rec["port"] != "/dev/ttyUSB0" {
		t.Errorf("port = %v", rec["port"])
	}
}

func TestSlogAdapterMessage(t *testing.T) {
	handled := true
	rec := captureSlog(t, Event{
		Direction: DirectionIn,
		Layer:     LayerWire,
		Category:  CategoryMessage,
		Message:   &MessageEvent{Opcode: 0x8037, InstanceIndex: 2, Parameters: []byte{0x04}, Handled: &handled},
	})

	if rec["opcode"] != "0x8037" {
		t.Errorf("opcode = %v", rec["opcode"])
	}
	if rec["instance"] != float64(2) {
		t.Errorf("instance = %v", rec["instance"])
	}
	if rec["handled"] != true {
		t.Errorf("handled = %v", rec["handled"])
	}
}

func TestSlogAdapterError(t *testing.T) {
	code := 3
	rec := captureSlog(t, Event{
		Layer:    LayerService,
		Category: CategoryError,
		Error:    &ErrorEventData{Layer: LayerService, Message: "modem error", Code: &code, Context: "start node"},
	})

	if rec["error_msg"] != "modem error" {
		t.Errorf("error_msg = %v", rec["error_msg"])
	}
	if rec["error_code"] != float64(3) {
		t.Errorf("error_code = %v", rec["error_code"])
	}
}
