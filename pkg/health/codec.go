package health

import (
	"encoding/binary"
	"fmt"
)

// OutboundRequest is one encoded Health Client request.
// It is built per command and must not be modified after it is handed to a Sender.
type OutboundRequest struct {
	// InstanceIndex selects the Health Client model instance on the modem.
	InstanceIndex uint16

	// Opcode is the mesh opcode of the request.
	Opcode Opcode

	// Payload holds the message parameters without the opcode.
	Payload []byte
}

// String returns a compact description for logs.
func (r OutboundRequest) String() string {
	return fmt.Sprintf("%s ii=%d payload=%x", r.Opcode, r.InstanceIndex, r.Payload)
}

// EncodeAttentionGet builds an Attention Get request.
func EncodeAttentionGet(instanceIndex uint16) (OutboundRequest, error) {
	return OutboundRequest{
		InstanceIndex: instanceIndex,
		Opcode:        OpAttentionGet,
		Payload:       []byte{},
	}, nil
}

// EncodeAttentionSet builds an Attention Set request. seconds must fit in one octet.
func EncodeAttentionSet(instanceIndex uint16, seconds int, unacknowledged bool) (OutboundRequest, error) {
	s, err := checkUint8("attention", seconds)
	if err != nil {
		return OutboundRequest{}, err
	}
	return OutboundRequest{
		InstanceIndex: instanceIndex,
		Opcode:        ackVariant(OpAttentionSet, OpAttentionSetUnacknowledged, unacknowledged),
		Payload:       []byte{s},
	}, nil
}

// EncodeFaultClear builds a Fault Clear request for the hexadecimal company id.
func EncodeFaultClear(instanceIndex uint16, companyID string, unacknowledged bool) (OutboundRequest, error) {
	cid, err := ParseCompanyID(companyID)
	if err != nil {
		return OutboundRequest{}, err
	}
	return OutboundRequest{
		InstanceIndex: instanceIndex,
		Opcode:        ackVariant(OpFaultClear, OpFaultClearUnacknowledged, unacknowledged),
		Payload:       binary.LittleEndian.AppendUint16(nil, cid),
	}, nil
}

// EncodeFaultGet builds a Fault Get request for the hexadecimal company id.
func EncodeFaultGet(instanceIndex uint16, companyID string) (OutboundRequest, error) {
	cid, err := ParseCompanyID(companyID)
	if err != nil {
		return OutboundRequest{}, err
	}
	return OutboundRequest{
		InstanceIndex: instanceIndex,
		Opcode:        OpFaultGet,
		Payload:       binary.LittleEndian.AppendUint16(nil, cid),
	}, nil
}

// EncodeFaultTest builds a Fault Test request.
// The test id precedes the company id on the wire.
func EncodeFaultTest(instanceIndex uint16, companyID string, testID int, unacknowledged bool) (OutboundRequest, error) {
	cid, err := ParseCompanyID(companyID)
	if err != nil {
		return OutboundRequest{}, err
	}
	tid, err := checkUint8("test id", testID)
	if err != nil {
		return OutboundRequest{}, err
	}

	payload := make([]byte, 0, 3)
	payload = append(payload, tid)
	payload = binary.LittleEndian.AppendUint16(payload, cid)

	return OutboundRequest{
		InstanceIndex: instanceIndex,
		Opcode:        ackVariant(OpFaultTest, OpFaultTestUnacknowledged, unacknowledged),
		Payload:       payload,
	}, nil
}

// EncodePeriodGet builds a Health Period Get request.
func EncodePeriodGet(instanceIndex uint16) (OutboundRequest, error) {
	return OutboundRequest{
		InstanceIndex: instanceIndex,
		Opcode:        OpPeriodGet,
		Payload:       []byte{},
	}, nil
}

// EncodePeriodSet builds a Health Period Set request.
// divider is the Fast Period Divisor exponent and must fit in one octet.
func EncodePeriodSet(instanceIndex uint16, divider int, unacknowledged bool) (OutboundRequest, error) {
	d, err := checkUint8("fast period divider", divider)
	if err != nil {
		return OutboundRequest{}, err
	}
	return OutboundRequest{
		InstanceIndex: instanceIndex,
		Opcode:        ackVariant(OpPeriodSet, OpPeriodSetUnacknowledged, unacknowledged),
		Payload:       []byte{d},
	}, nil
}
