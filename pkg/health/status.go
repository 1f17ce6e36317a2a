package health

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"
)

// Minimum status payload sizes.
const (
	attentionStatusSize = 1
	periodStatusSize    = 1

	// genericStatusHeaderSize covers test_id and company_id.
	genericStatusHeaderSize = 3
	// genericStatusTrailerSize covers src_addr.
	genericStatusTrailerSize = 2
	genericStatusMinSize     = genericStatusHeaderSize + genericStatusTrailerSize
)

// AttentionStatus is the decoded Attention Status message.
type AttentionStatus struct {
	// Seconds is the remaining Attention Timer value.
	Seconds uint8
}

// String renders the status for display.
func (s AttentionStatus) String() string {
	return fmt.Sprintf("Attention: %d [s]", s.Seconds)
}

// PeriodStatus is the decoded Health Period Status message.
type PeriodStatus struct {
	// Divider is the Fast Period Divisor exponent. The publish period is
	// divided by 2^Divider while faults are present.
	Divider uint8
}

// Factor returns 2^Divider. The wire format does not bound the exponent,
// so the result may exceed 64 bits.
func (s PeriodStatus) Factor() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(s.Divider))
}

// String renders the status for display.
func (s PeriodStatus) String() string {
	return fmt.Sprintf("Fast Period Divider: %d (value 2^n: %s)", s.Divider, s.Factor())
}

// GenericStatus is the shared body of Current Status and Fault Status.
type GenericStatus struct {
	TestID    uint8
	CompanyID uint16
	Faults    []FaultCode
	SrcAddr   uint16
}

// FaultNames returns the display name of every fault in order.
func (s GenericStatus) FaultNames() []string {
	names := make([]string, len(s.Faults))
	for i, f := range s.Faults {
		names[i] = f.Name()
	}
	return names
}

func (s GenericStatus) body() string {
	return strings.Join([]string{
		fmt.Sprintf("src_addr: 0x%04x", s.SrcAddr),
		fmt.Sprintf("test_id: %d", s.TestID),
		fmt.Sprintf("company_id: 0x%04x", s.CompanyID),
		fmt.Sprintf("faults: [%s]", strings.Join(s.FaultNames(), ", ")),
	}, ",\n\t")
}

// RenderCurrentStatus renders a Current Status message for display.
func RenderCurrentStatus(s GenericStatus) string {
	return "Current Status:\n\t" + s.body() + "\n"
}

// RenderFaultStatus renders a Fault Status message for display.
func RenderFaultStatus(s GenericStatus) string {
	return "Fault Status:\n\t" + s.body() + "\n"
}

// DecodeAttentionStatus decodes an Attention Status payload.
func DecodeAttentionStatus(payload []byte) (AttentionStatus, error) {
	if len(payload) < attentionStatusSize {
		return AttentionStatus{}, malformed("attention status", len(payload), attentionStatusSize)
	}
	return AttentionStatus{Seconds: payload[0]}, nil
}

// DecodePeriodStatus decodes a Health Period Status payload.
func DecodePeriodStatus(payload []byte) (PeriodStatus, error) {
	if len(payload) < periodStatusSize {
		return PeriodStatus{}, malformed("period status", len(payload), periodStatusSize)
	}
	return PeriodStatus{Divider: payload[0]}, nil
}

// DecodeGenericStatus decodes a Current Status or Fault Status payload.
// Every byte between the header and the trailing source address is one fault code.
func DecodeGenericStatus(payload []byte) (GenericStatus, error) {
	if len(payload) < genericStatusMinSize {
		return GenericStatus{}, malformed("generic status", len(payload), genericStatusMinSize)
	}

	trailer := len(payload) - genericStatusTrailerSize
	raw := payload[genericStatusHeaderSize:trailer]
	faults := make([]FaultCode, len(raw))
	for i, b := range raw {
		faults[i] = FaultCode(b)
	}

	return GenericStatus{
		TestID:    payload[0],
		CompanyID: binary.LittleEndian.Uint16(payload[1:3]),
		Faults:    faults,
		SrcAddr:   binary.LittleEndian.Uint16(payload[trailer:]),
	}, nil
}

func malformed(what string, got, want int) error {
	return fmt.Errorf("%w: %s needs at least %d bytes, got %d", ErrMalformedPayload, what, want, got)
}
