package uart

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/meshhealth/health-client-go/pkg/log"
)

const readChunkSize = 64

// FrameWriter writes encoded frames to an underlying writer.
type FrameWriter struct {
	w  io.Writer
	mu sync.Mutex

	logger    log.Logger
	sessionID string
}

// NewFrameWriter creates a frame writer.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// SetLogger enables protocol capture. Pass nil to disable it.
func (fw *FrameWriter) SetLogger(logger log.Logger, sessionID string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.logger = logger
	fw.sessionID = sessionID
}

// WriteFrame encodes and writes f in a single Write call.
// Safe for concurrent use.
func (fw *FrameWriter) WriteFrame(f Frame) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, err := fw.w.Write(data); err != nil {
		return fmt.Errorf("write %s frame: %w", f.Command, err)
	}
	if fw.logger != nil {
		fw.logger.Log(frameEvent(f, log.DirectionOut, fw.sessionID))
	}
	return nil
}

// FrameReader reads frames from an underlying reader, skipping noise and
// frames with a bad checksum.
type FrameReader struct {
	r       io.Reader
	decoder *Decoder
	pending []Frame
	buf     [readChunkSize]byte

	logger    log.Logger
	sessionID string
}

// NewFrameReader creates a frame reader.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{
		r:       r,
		decoder: NewDecoder(),
	}
}

// SetLogger enables protocol capture. Pass nil to disable it.
func (fr *FrameReader) SetLogger(logger log.Logger, sessionID string) {
	fr.logger = logger
	fr.sessionID = sessionID
}

// Stats returns the decoder counters.
func (fr *FrameReader) Stats() DecoderStats {
	return fr.decoder.Stats()
}

// ReadFrame blocks until a complete frame arrives. Errors from the
// underlying reader are returned unchanged, so callers can tell io.EOF and
// read timeouts apart.
func (fr *FrameReader) ReadFrame() (Frame, error) {
	for len(fr.pending) == 0 {
		n, err := fr.r.Read(fr.buf[:])
		if n > 0 {
			fr.pending = append(fr.pending, fr.decoder.Decode(fr.buf[:n])...)
		}
		if err != nil && len(fr.pending) == 0 {
			return Frame{}, err
		}
	}

	f := fr.pending[0]
	fr.pending = fr.pending[1:]
	if fr.logger != nil {
		fr.logger.Log(frameEvent(f, log.DirectionIn, fr.sessionID))
	}
	return f, nil
}

func frameEvent(f Frame, direction log.Direction, sessionID string) log.Event {
	category := log.CategoryControl
	if f.Command.CarriesMeshMessage() {
		category = log.CategoryMessage
	}
	return log.Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Direction: direction,
		Layer:     log.LayerTransport,
		Category:  category,
		Frame: &log.FrameEvent{
			Size:    f.Size(),
			Command: uint8(f.Command),
			Data:    f.Payload,
		},
	}
}
