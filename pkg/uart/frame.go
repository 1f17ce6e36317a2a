package uart

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Framing constants.
const (
	Preamble1 = 0xAA
	Preamble2 = 0x55

	// MaxPayloadSize is the largest payload a frame can carry.
	MaxPayloadSize = 127

	// HeaderSize covers preamble, length and command.
	HeaderSize = 4

	// CRCSize is the size of the trailing checksum.
	CRCSize = 2

	// MaxFrameSize is the largest encoded frame.
	MaxFrameSize = HeaderSize + MaxPayloadSize + CRCSize
)

// Framing errors.
var (
	// ErrPayloadTooLarge indicates a payload over MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("uart: payload too large")
)

// Frame is one modem frame.
type Frame struct {
	Command Command
	Payload []byte
}

// Size returns the encoded size of f.
func (f Frame) Size() int {
	return HeaderSize + len(f.Payload) + CRCSize
}

// String summarizes the frame for logs.
func (f Frame) String() string {
	return fmt.Sprintf("%s[% x]", f.Command, f.Payload)
}

// Encode serializes f into a complete frame.
func Encode(f Frame) ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(f.Payload), MaxPayloadSize)
	}

	buf := make([]byte, 0, f.Size())
	buf = append(buf, Preamble1, Preamble2, byte(len(f.Payload)), byte(f.Command))
	buf = append(buf, f.Payload...)
	buf = binary.LittleEndian.AppendUint16(buf, CRC16(buf[2:]))
	return buf, nil
}

// Decoder states.
const (
	stateIdle = iota
	statePreamble
	stateLength
	stateCommand
	statePayload
	stateCRC1
	stateCRC2
)

// DecoderStats counts bytes and frames the decoder had to discard.
type DecoderStats struct {
	Frames    int
	CRCErrors int
	Overruns  int
	Skipped   int
}

// Decoder reassembles frames from a byte stream. It resynchronizes on the
// preamble after garbage, oversize lengths and checksum failures. Bytes
// consumed by a rejected frame are scanned again, so a genuine frame
// hidden behind a spurious preamble is still recovered.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	state   int
	length  int
	command Command
	payload []byte
	crcLow  byte
	raw     []byte // bytes after the preamble of the frame in progress
	ready   []Frame
	stats   DecoderStats
}

// NewDecoder returns a decoder waiting for a preamble.
func NewDecoder() *Decoder {
	return &Decoder{
		payload: make([]byte, 0, MaxPayloadSize),
		raw:     make([]byte, 0, MaxPayloadSize+4),
	}
}

// Stats returns the running counters.
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}

// Reset drops any partial frame and any frame not yet returned.
func (d *Decoder) Reset() {
	d.state = stateIdle
	d.payload = d.payload[:0]
	d.raw = d.raw[:0]
	d.ready = nil
}

// Feed consumes one byte and returns the next completed frame.
// A rescan after a checksum failure can complete more than one frame;
// the extra frames are returned by following calls, or all at once by Decode.
func (d *Decoder) Feed(b byte) (Frame, bool) {
	d.step(b)
	return d.next()
}

// Decode feeds p and returns every frame completed by it.
func (d *Decoder) Decode(p []byte) []Frame {
	for _, b := range p {
		d.step(b)
	}
	frames := d.ready
	d.ready = nil
	return frames
}

func (d *Decoder) next() (Frame, bool) {
	if len(d.ready) == 0 {
		return Frame{}, false
	}
	f := d.ready[0]
	d.ready = d.ready[1:]
	return f, true
}

func (d *Decoder) step(b byte) {
	switch d.state {
	case stateIdle:
		if b == Preamble1 {
			d.state = statePreamble
		} else {
			d.stats.Skipped++
		}

	case statePreamble:
		switch b {
		case Preamble2:
			d.raw = d.raw[:0]
			d.state = stateLength
		case Preamble1:
			d.stats.Skipped++
		default:
			d.stats.Skipped += 2
			d.state = stateIdle
		}

	case stateLength:
		if int(b) > MaxPayloadSize {
			// The length byte may open the next preamble.
			d.stats.Overruns++
			d.state = stateIdle
			d.step(b)
			return
		}
		d.raw = append(d.raw, b)
		d.length = int(b)
		d.state = stateCommand

	case stateCommand:
		d.raw = append(d.raw, b)
		d.command = Command(b)
		d.payload = d.payload[:0]
		if d.length == 0 {
			d.state = stateCRC1
		} else {
			d.state = statePayload
		}

	case statePayload:
		d.raw = append(d.raw, b)
		d.payload = append(d.payload, b)
		if len(d.payload) == d.length {
			d.state = stateCRC1
		}

	case stateCRC1:
		d.raw = append(d.raw, b)
		d.crcLow = b
		d.state = stateCRC2

	case stateCRC2:
		d.raw = append(d.raw, b)
		d.state = stateIdle
		got := uint16(d.crcLow) | uint16(b)<<8
		crc := crcUpdate(crcInitial, []byte{byte(d.length), byte(d.command)})
		crc = crcUpdate(crc, d.payload)
		if got != crc {
			d.stats.CRCErrors++
			d.rescan()
			return
		}
		d.stats.Frames++
		payload := make([]byte, len(d.payload))
		copy(payload, d.payload)
		d.ready = append(d.ready, Frame{Command: d.command, Payload: payload})
	}
}

// rescan feeds the bytes of a rejected frame back through the state machine.
// Each pass is shorter than the one before, so nested rescans terminate.
func (d *Decoder) rescan() {
	replay := make([]byte, len(d.raw))
	copy(replay, d.raw)
	d.raw = d.raw[:0]
	for _, b := range replay {
		d.step(b)
	}
}
