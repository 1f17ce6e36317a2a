package uart

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Mesh payload errors.
var (
	// ErrInvalidOpcode indicates a value outside the Mesh opcode format.
	ErrInvalidOpcode = errors.New("uart: invalid mesh opcode")

	// ErrShortMessage indicates a mesh payload too short to decode.
	ErrShortMessage = errors.New("uart: short mesh message")

	// ErrOddModelList indicates a model ID list with a trailing byte.
	ErrOddModelList = errors.New("uart: odd model id list length")
)

// rfuOpcode is the one single-octet value reserved by the Mesh opcode format.
const rfuOpcode = 0x7F

// MeshMessage is the payload of a MeshMessageRequest or MeshMessageResponse.
type MeshMessage struct {
	InstanceIndex uint8
	SubIndex      uint8
	Opcode        uint32
	Parameters    []byte
}

// OpcodeSize returns how many octets op occupies on the wire.
func OpcodeSize(op uint32) (int, error) {
	switch {
	case op < rfuOpcode:
		return 1, nil
	case op >= 0x8000 && op <= 0xBFFF:
		return 2, nil
	case op >= 0xC00000 && op <= 0xFFFFFF:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: 0x%X", ErrInvalidOpcode, op)
	}
}

// EncodeMeshOpcode appends op to dst in big-endian Mesh format.
func EncodeMeshOpcode(dst []byte, op uint32) ([]byte, error) {
	size, err := OpcodeSize(op)
	if err != nil {
		return dst, err
	}
	for i := size - 1; i >= 0; i-- {
		dst = append(dst, byte(op>>(8*i)))
	}
	return dst, nil
}

// DecodeMeshOpcode reads an opcode from the start of p and returns it with
// the number of octets consumed. The two high bits of the first octet
// select the size.
func DecodeMeshOpcode(p []byte) (uint32, int, error) {
	if len(p) == 0 {
		return 0, 0, fmt.Errorf("%w: no opcode", ErrShortMessage)
	}

	size := 1
	switch {
	case p[0] == rfuOpcode:
		return 0, 0, fmt.Errorf("%w: 0x7F", ErrInvalidOpcode)
	case p[0]&0xC0 == 0xC0:
		size = 3
	case p[0]&0x80 != 0:
		size = 2
	}
	if len(p) < size {
		return 0, 0, fmt.Errorf("%w: opcode needs %d bytes, got %d", ErrShortMessage, size, len(p))
	}

	var op uint32
	for _, b := range p[:size] {
		op = op<<8 | uint32(b)
	}
	return op, size, nil
}

// EncodeMeshMessage builds a mesh message payload.
func EncodeMeshMessage(m MeshMessage) ([]byte, error) {
	buf := make([]byte, 0, 2+3+len(m.Parameters))
	buf = append(buf, m.InstanceIndex, m.SubIndex)
	buf, err := EncodeMeshOpcode(buf, m.Opcode)
	if err != nil {
		return nil, err
	}
	buf = append(buf, m.Parameters...)
	if len(buf) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: mesh message of %d bytes", ErrPayloadTooLarge, len(buf))
	}
	return buf, nil
}

// DecodeMeshMessage parses a mesh message payload. Parameters alias p.
func DecodeMeshMessage(p []byte) (MeshMessage, error) {
	if len(p) < 3 {
		return MeshMessage{}, fmt.Errorf("%w: %d bytes", ErrShortMessage, len(p))
	}
	op, n, err := DecodeMeshOpcode(p[2:])
	if err != nil {
		return MeshMessage{}, err
	}
	return MeshMessage{
		InstanceIndex: p[0],
		SubIndex:      p[1],
		Opcode:        op,
		Parameters:    p[2+n:],
	}, nil
}

// EncodeModelIDs packs model IDs as little-endian u16 values.
func EncodeModelIDs(ids []uint16) []byte {
	buf := make([]byte, 0, 2*len(ids))
	for _, id := range ids {
		buf = binary.LittleEndian.AppendUint16(buf, id)
	}
	return buf
}

// DecodeModelIDs unpacks a little-endian u16 model ID list.
func DecodeModelIDs(p []byte) ([]uint16, error) {
	if len(p)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddModelList, len(p))
	}
	ids := make([]uint16, 0, len(p)/2)
	for i := 0; i < len(p); i += 2 {
		ids = append(ids, binary.LittleEndian.Uint16(p[i:]))
	}
	return ids, nil
}
