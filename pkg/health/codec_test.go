package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRequests(t *testing.T) {
	tests := []struct {
		name    string
		encode  func() (OutboundRequest, error)
		opcode  Opcode
		payload []byte
	}{
		{
			name:    "attention get",
			encode:  func() (OutboundRequest, error) { return EncodeAttentionGet(7) },
			opcode:  OpAttentionGet,
			payload: []byte{},
		},
		{
			name:    "attention set",
			encode:  func() (OutboundRequest, error) { return EncodeAttentionSet(7, 10, false) },
			opcode:  OpAttentionSet,
			payload: []byte{0x0a},
		},
		{
			name:    "attention set unacknowledged",
			encode:  func() (OutboundRequest, error) { return EncodeAttentionSet(7, 10, true) },
			opcode:  OpAttentionSetUnacknowledged,
			payload: []byte{0x0a},
		},
		{
			name:    "fault get",
			encode:  func() (OutboundRequest, error) { return EncodeFaultGet(7, "0x1234") },
			opcode:  OpFaultGet,
			payload: []byte{0x34, 0x12},
		},
		{
			name:    "fault clear",
			encode:  func() (OutboundRequest, error) { return EncodeFaultClear(7, "0x1234", false) },
			opcode:  OpFaultClear,
			payload: []byte{0x34, 0x12},
		},
		{
			name:    "fault clear unacknowledged without prefix",
			encode:  func() (OutboundRequest, error) { return EncodeFaultClear(7, "1234", true) },
			opcode:  OpFaultClearUnacknowledged,
			payload: []byte{0x34, 0x12},
		},
		{
			name:    "fault test",
			encode:  func() (OutboundRequest, error) { return EncodeFaultTest(7, "0x5959", 3, false) },
			opcode:  OpFaultTest,
			payload: []byte{0x03, 0x59, 0x59},
		},
		{
			name:    "fault test unacknowledged",
			encode:  func() (OutboundRequest, error) { return EncodeFaultTest(7, "0X00ff", 255, true) },
			opcode:  OpFaultTestUnacknowledged,
			payload: []byte{0xff, 0xff, 0x00},
		},
		{
			name:    "period get",
			encode:  func() (OutboundRequest, error) { return EncodePeriodGet(7) },
			opcode:  OpPeriodGet,
			payload: []byte{},
		},
		{
			name:    "period set",
			encode:  func() (OutboundRequest, error) { return EncodePeriodSet(7, 4, false) },
			opcode:  OpPeriodSet,
			payload: []byte{0x04},
		},
		{
			name:    "period set unacknowledged",
			encode:  func() (OutboundRequest, error) { return EncodePeriodSet(7, 15, true) },
			opcode:  OpPeriodSetUnacknowledged,
			payload: []byte{0x0f},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.encode()
			require.NoError(t, err)
			assert.Equal(t, uint16(7), req.InstanceIndex)
			assert.Equal(t, tt.opcode, req.Opcode)
			assert.Equal(t, tt.payload, req.Payload)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		encode func() (OutboundRequest, error)
		want   error
	}{
		{"attention 256", func() (OutboundRequest, error) { return EncodeAttentionSet(1, 256, false) }, ErrRange},
		{"attention negative", func() (OutboundRequest, error) { return EncodeAttentionSet(1, -1, true) }, ErrRange},
		{"period 256", func() (OutboundRequest, error) { return EncodePeriodSet(1, 256, false) }, ErrRange},
		{"fault get not hex", func() (OutboundRequest, error) { return EncodeFaultGet(1, "zzzz") }, ErrFormat},
		{"fault get empty", func() (OutboundRequest, error) { return EncodeFaultGet(1, "0x") }, ErrFormat},
		{"fault get too wide", func() (OutboundRequest, error) { return EncodeFaultGet(1, "0x10000") }, ErrRange},
		{"fault clear not hex", func() (OutboundRequest, error) { return EncodeFaultClear(1, "0xgg", false) }, ErrFormat},
		{"fault test bad company", func() (OutboundRequest, error) { return EncodeFaultTest(1, "hello", 1, false) }, ErrFormat},
		{"fault test wide company", func() (OutboundRequest, error) { return EncodeFaultTest(1, "123456", 1, false) }, ErrRange},
		{"fault test id 300", func() (OutboundRequest, error) { return EncodeFaultTest(1, "0x5959", 300, false) }, ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.encode()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAttentionRoundTrip(t *testing.T) {
	for seconds := 0; seconds <= 0xFF; seconds++ {
		req, err := EncodeAttentionSet(1, seconds, false)
		require.NoError(t, err)

		status, err := DecodeAttentionStatus(req.Payload)
		require.NoError(t, err)
		require.Equal(t, uint8(seconds), status.Seconds)
	}
}

func TestFaultTestFieldOrder(t *testing.T) {
	companies := []uint16{0x0000, 0x0001, 0x00ff, 0x0100, 0x5959, 0xabcd, 0xffff}
	testIDs := []int{0, 1, 0x7f, 0x80, 0xff}

	for _, cid := range companies {
		for _, tid := range testIDs {
			req, err := EncodeFaultTest(1, "0x"+hex16(cid), tid, false)
			require.NoError(t, err)
			require.Len(t, req.Payload, 3)

			// Reuse the generic status header layout: test_id then company_id.
			status, err := DecodeGenericStatus(append(append([]byte{}, req.Payload...), 0x00, 0x00))
			require.NoError(t, err)
			assert.Equal(t, uint8(tid), status.TestID)
			assert.Equal(t, cid, status.CompanyID)
			assert.Empty(t, status.Faults)
		}
	}
}

func hex16(v uint16) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>12&0xf], digits[v>>8&0xf], digits[v>>4&0xf], digits[v&0xf]})
}

func TestParseDecimal(t *testing.T) {
	v, err := ParseDecimal("42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = ParseDecimal("-3")
	require.NoError(t, err)
	assert.Equal(t, -3, v)

	_, err = ParseDecimal("ten")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ParseDecimal("99999999999999999999999")
	assert.ErrorIs(t, err, ErrRange)

	v, err = ParseDecimal("+1_000")
	require.NoError(t, err)
	assert.Equal(t, 1000, v)

	for _, in := range []string{"_1", "1_", "1__0", "-_1", "++1"} {
		_, err = ParseDecimal(in)
		assert.ErrorIs(t, err, ErrFormat, "input %q", in)
	}
}

func TestParseCompanyID(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
		err  error
	}{
		{"0x5959", 0x5959, nil},
		{"5959", 0x5959, nil},
		{"0XABCD", 0xabcd, nil},
		{"ffff", 0xffff, nil},
		{"-1", 0, ErrRange},
		{"0x-1", 0, ErrRange},
		{"", 0, ErrFormat},
		{"0x12 ", 0, ErrFormat},
		{"+5959", 0x5959, nil},
		{"59_59", 0x5959, nil},
		{"+0x59_59", 0x5959, nil},
		{"0x_5959", 0x5959, nil},
		{"-0x10", 0, ErrRange},
		{"_5959", 0, ErrFormat},
		{"5959_", 0, ErrFormat},
		{"59__59", 0, ErrFormat},
		{"0x__59", 0, ErrFormat},
		{"++5959", 0, ErrFormat},
		{"0x", 0, ErrFormat},
	}

	for _, tt := range tests {
		got, err := ParseCompanyID(tt.in)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

type recordingSender struct {
	sent []OutboundRequest
	err  error
}

func (s *recordingSender) Send(_ context.Context, req OutboundRequest) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, req)
	return nil
}

func TestClientSendsEncodedRequests(t *testing.T) {
	sender := &recordingSender{}
	client := NewClient(sender, 3)
	ctx := context.Background()

	require.NoError(t, client.AttentionGet(ctx))
	require.NoError(t, client.AttentionSet(ctx, 5, true))
	require.NoError(t, client.FaultGet(ctx, "0x0001"))
	require.NoError(t, client.FaultClear(ctx, "0x0001", false))
	require.NoError(t, client.FaultTest(ctx, "0x0001", 2, true))
	require.NoError(t, client.PeriodGet(ctx))
	require.NoError(t, client.PeriodSet(ctx, 3, false))

	require.Len(t, sender.sent, 7)
	want := []Opcode{
		OpAttentionGet, OpAttentionSetUnacknowledged, OpFaultGet, OpFaultClear,
		OpFaultTestUnacknowledged, OpPeriodGet, OpPeriodSet,
	}
	for i, req := range sender.sent {
		assert.Equal(t, uint16(3), req.InstanceIndex)
		assert.Equal(t, want[i], req.Opcode)
	}
}

func TestClientDoesNotSendInvalidValues(t *testing.T) {
	sender := &recordingSender{}
	client := NewClient(sender, 1)

	err := client.AttentionSet(context.Background(), 1000, false)
	assert.ErrorIs(t, err, ErrRange)

	err = client.FaultGet(context.Background(), "zzzz")
	assert.ErrorIs(t, err, ErrFormat)

	assert.Empty(t, sender.sent)
}

func TestClientWrapsSendError(t *testing.T) {
	linkDown := errors.New("link down")
	client := NewClient(&recordingSender{err: linkDown}, 1)

	err := client.PeriodGet(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, linkDown)
	assert.Contains(t, err.Error(), "PERIOD_GET")
}
