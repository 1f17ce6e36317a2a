// Package commands implements the health-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meshhealth/health-client-go/pkg/health"
	"github.com/meshhealth/health-client-go/pkg/log"
	"github.com/meshhealth/health-client-go/pkg/uart"
)

// RunView prints every event of the capture at path that matches filter.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	var label string
	switch {
	case event.Frame != nil:
		label = uart.Command(event.Frame.Command).String()
	case event.Message != nil:
		label = OpcodeName(event.Message.Opcode)
	case event.StateChange != nil:
		label = "State"
	case event.Error != nil:
		label = "Error"
	default:
		label = "Unknown"
	}

	fmt.Fprintf(w, "%s [session:%s] %-3s %s %s\n",
		ts, shortenSessionID(event.SessionID), event.Direction, event.Layer, label)

	switch {
	case event.Frame != nil:
		fmt.Fprintf(w, "  Size: %d bytes\n", event.Frame.Size)
		if len(event.Frame.Data) > 0 {
			fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(event.Frame.Data))
		}
	case event.Message != nil:
		formatMessageDetails(w, event.Message)
	case event.StateChange != nil:
		sc := event.StateChange
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
		if sc.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  Layer: %s\n", event.Error.Layer)
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Code != nil {
			fmt.Fprintf(w, "  Code: %d\n", *event.Error.Code)
		}
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

func formatMessageDetails(w io.Writer, msg *log.MessageEvent) {
	fmt.Fprintf(w, "  Instance: %d/%d\n", msg.InstanceIndex, msg.SubIndex)
	if len(msg.Parameters) > 0 {
		fmt.Fprintf(w, "  Parameters: %s\n", hex.EncodeToString(msg.Parameters))
	}
	if msg.Handled != nil && !*msg.Handled {
		fmt.Fprintln(w, "  Unhandled")
	}
	if status, ok := renderStatus(health.Opcode(msg.Opcode), msg.Parameters); ok {
		for _, line := range strings.Split(strings.TrimRight(status, "\n"), "\n") {
			fmt.Fprintf(w, "  | %s\n", line)
		}
	}
}

var statusRenderer = health.NewDispatcher(io.Discard, nil)

// renderStatus decodes Health statuses the same way the client prints them.
func renderStatus(op health.Opcode, params []byte) (string, bool) {
	text, ok, err := statusRenderer.Render(op, params)
	if !ok || err != nil {
		return "", false
	}
	return text, true
}

// OpcodeName names Health opcodes and prints others in hex.
func OpcodeName(op uint32) string {
	if o := health.Opcode(op); o.IsValid() {
		return o.String()
	}
	return fmt.Sprintf("0x%04X", op)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseLayerFlag parses a layer name (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "wire":
		return log.LayerWire, nil
	case "service":
		return log.LayerService, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, wire, or service)", s)
	}
}

// ParseDirectionFlag parses a direction name (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "control":
		return log.CategoryControl, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, control, state, or error)", s)
	}
}

// ParseOpcodeFlag accepts a Health opcode name or a hexadecimal value.
func ParseOpcodeFlag(s string) (uint32, error) {
	if op, ok := health.ParseOpcode(strings.ToUpper(s)); ok {
		return uint32(op), nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid opcode: %s", s)
	}
	return uint32(v), nil
}
