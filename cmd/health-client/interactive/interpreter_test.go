package interactive

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshhealth/health-client-go/pkg/health"
)

type recordingSender struct {
	sent []health.OutboundRequest
	err  error
}

func (s *recordingSender) Send(_ context.Context, req health.OutboundRequest) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, req)
	return nil
}

func newTestInterpreter() (*Interpreter, *recordingSender, *bytes.Buffer) {
	sender := &recordingSender{}
	var out bytes.Buffer
	return NewInterpreter(health.NewClient(sender, 2), &out), sender, &out
}

func TestProcessLineSendsRequests(t *testing.T) {
	tests := []struct {
		line    string
		opcode  health.Opcode
		payload []byte
	}{
		{"fault test 0x5959 3", health.OpFaultTest, []byte{0x03, 0x59, 0x59}},
		{"fault testu 0x5959 3", health.OpFaultTestUnacknowledged, []byte{0x03, 0x59, 0x59}},
		{"attention set 10", health.OpAttentionSet, []byte{0x0A}},
		{"attention setu 10", health.OpAttentionSetUnacknowledged, []byte{0x0A}},
		{"a get", health.OpAttentionGet, []byte{}},
		{"  attention \t  get  ", health.OpAttentionGet, []byte{}},
		{"fault get 0x0136", health.OpFaultGet, []byte{0x36, 0x01}},
		{"f clear 5959", health.OpFaultClear, []byte{0x59, 0x59}},
		{"fault clearu 0X00ff", health.OpFaultClearUnacknowledged, []byte{0xFF, 0x00}},
		{"period get", health.OpPeriodGet, []byte{}},
		{"p set 4", health.OpPeriodSet, []byte{0x04}},
		{"period setu 15", health.OpPeriodSetUnacknowledged, []byte{0x0F}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			interp, sender, out := newTestInterpreter()

			quit := interp.ProcessLine(context.Background(), tt.line)

			assert.False(t, quit)
			assert.Empty(t, out.String())
			require.Len(t, sender.sent, 1)
			assert.Equal(t, uint16(2), sender.sent[0].InstanceIndex)
			assert.Equal(t, tt.opcode, sender.sent[0].Opcode)
			assert.Equal(t, tt.payload, sender.sent[0].Payload)
		})
	}
}

func TestProcessLineFeedback(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"period set", "Usage: period set <fast_period_divider>\n"},
		{"period setu", "Usage: period setu <fast_period_divider>\n"},
		{"attention set", "Usage: attention set <attention_s>\n"},
		{"fault get", "Usage: fault get 0x<company_id>\n"},
		{"fault clearu", "Usage: fault clearu 0x<company_id>\n"},
		{"fault test 0x5959", "Usage: fault test 0x<company_id> <test_id>\n"},
		{"attention", "Draw attention on the devices in network.\nUsage: attention [get|set|setu] <args>\n"},
		{"f", "Clear, get registered faults or perform test.\nUsage: fault [get|clear|clearu|test|testu] <args>\n"},
		{"period", "Set or get Fast Period Divisor.\nUsage: period [get|set|setu] <args>\n"},
		{"reboot now", "Command reboot not supported!\n"},
		{"fault frob 0x01", "Command frob not supported!\n"},
		{"attention set 256", "Error: Invalid value!\n"},
		{"attention set -1", "Error: Invalid value!\n"},
		{"attention set ten", "Error: Invalid value!\n"},
		{"fault get zzzz", "Error: Invalid value!\n"},
		{"fault get 0x10000", "Error: Invalid value!\n"},
		{"fault test 0x5959 300", "Error: Invalid value!\n"},
		{"period set 99999999999999999999", "Error: Invalid value!\n"},
		{"help", HelpText + "\n"},
		{"h", HelpText + "\n"},
		{"", ""},
		{"   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			interp, sender, out := newTestInterpreter()

			quit := interp.ProcessLine(context.Background(), tt.line)

			assert.False(t, quit)
			assert.Equal(t, tt.want, out.String())
			assert.Empty(t, sender.sent, "nothing may be sent")
		})
	}
}

func TestProcessLineQuit(t *testing.T) {
	for _, line := range []string{"quit", "q", "  q  "} {
		interp, sender, out := newTestInterpreter()
		assert.True(t, interp.ProcessLine(context.Background(), line), line)
		assert.Empty(t, out.String())
		assert.Empty(t, sender.sent)
	}
}

func TestProcessLineSendFailure(t *testing.T) {
	interp, sender, out := newTestInterpreter()
	sender.err = errors.New("link down")

	quit := interp.ProcessLine(context.Background(), "attention get")

	assert.False(t, quit)
	assert.Equal(t, "Error: send ATTENTION_GET: link down\n", out.String())
}

func TestTokenize(t *testing.T) {
	inv, ok := Tokenize("  F   TEST 0x5959\t3 ")
	require.True(t, ok)
	assert.Equal(t, Invocation{Feature: FeatureFault, SubCommand: "test", Args: []string{"0x5959", "3"}}, inv)

	inv, ok = Tokenize("period")
	require.True(t, ok)
	assert.Equal(t, FeaturePeriod, inv.Feature)
	assert.Empty(t, inv.SubCommand)
	assert.Empty(t, inv.Args)

	_, ok = Tokenize(" \t")
	assert.False(t, ok)
}
