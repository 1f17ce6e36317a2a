package modem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meshhealth/health-client-go/pkg/health"
	"github.com/meshhealth/health-client-go/pkg/log"
	"github.com/meshhealth/health-client-go/pkg/uart"
)

// HealthClientModelID is the SIG model ID of the Health Client.
const HealthClientModelID uint16 = 0x0003

// Link errors.
var (
	// ErrClosed indicates the link was closed.
	ErrClosed = errors.New("modem: link closed")

	// ErrInstanceIndex indicates an instance index the UART payload cannot carry.
	ErrInstanceIndex = errors.New("modem: instance index out of range")
)

// MeshHandler consumes inbound mesh messages. Dispatch reports whether the
// opcode belonged to it.
type MeshHandler interface {
	Dispatch(opcode health.Opcode, payload []byte) bool
}

// Options configures a Link.
type Options struct {
	// Models are registered with the modem when it asks for them.
	// Defaults to the Health Client model alone.
	Models []uint16

	// Handler receives inbound mesh messages. May be nil.
	Handler MeshHandler

	// Mapper is updated on every InitNodeEvent. One is created when nil.
	Mapper *Mapper

	// Logger receives operational logs. Defaults to discarding.
	Logger *slog.Logger

	// Capture receives protocol capture events. May be nil.
	Capture log.Logger

	// Port names the serial device in capture events.
	Port string
}

// Link is a session with one modem.
type Link struct {
	rwc    io.ReadWriteCloser
	reader *uart.FrameReader
	writer *uart.FrameWriter

	models    []uint16
	handler   MeshHandler
	mapper    *Mapper
	logger    *slog.Logger
	capture   log.Logger
	sessionID string
	port      string

	mu    sync.Mutex
	state State

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
	closed    chan struct{}
}

// NewLink wraps rwc. Nothing is read until Start.
func NewLink(rwc io.ReadWriteCloser, opts Options) *Link {
	l := &Link{
		rwc:       rwc,
		reader:    uart.NewFrameReader(rwc),
		writer:    uart.NewFrameWriter(rwc),
		models:    opts.Models,
		handler:   opts.Handler,
		mapper:    opts.Mapper,
		logger:    opts.Logger,
		capture:   opts.Capture,
		sessionID: uuid.NewString(),
		port:      opts.Port,
		done:      make(chan struct{}),
		closed:    make(chan struct{}),
	}
	if len(l.models) == 0 {
		l.models = []uint16{HealthClientModelID}
	}
	if l.mapper == nil {
		l.mapper = NewMapper(nil)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l.logger = l.logger.With("session", l.sessionID)
	if l.capture != nil {
		l.reader.SetLogger(l.capture, l.sessionID)
		l.writer.SetLogger(l.capture, l.sessionID)
	}
	return l
}

// SessionID identifies this link in logs and captures.
func (l *Link) SessionID() string { return l.sessionID }

// Mapper returns the model ID mapping kept by the link.
func (l *Link) Mapper() *Mapper { return l.mapper }

// State returns the last observed modem state.
func (l *Link) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Done is closed when the receive loop exits.
func (l *Link) Done() <-chan struct{} { return l.done }

// Start launches the receive loop. The link closes when ctx ends.
func (l *Link) Start(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			l.Close()
		case <-l.closed:
		}
	}()
	go l.receive(ctx)
}

// Close stops the link and closes the port. Safe to call more than once.
func (l *Link) Close() error {
	l.closeOnce.Do(func() {
		close(l.closed)
		l.closeErr = l.rwc.Close()
	})
	return l.closeErr
}

// Send delivers one Health request to the modem as a MeshMessageRequest.
func (l *Link) Send(ctx context.Context, req health.OutboundRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-l.closed:
		return ErrClosed
	default:
	}
	if req.InstanceIndex > 0xFF {
		return fmt.Errorf("%w: %d", ErrInstanceIndex, req.InstanceIndex)
	}

	msg := uart.MeshMessage{
		InstanceIndex: uint8(req.InstanceIndex),
		Opcode:        uint32(req.Opcode),
		Parameters:    req.Payload,
	}
	payload, err := uart.EncodeMeshMessage(msg)
	if err != nil {
		return err
	}
	if err := l.writer.WriteFrame(uart.Frame{Command: uart.CmdMeshMessageRequest, Payload: payload}); err != nil {
		return err
	}
	l.logMessage(msg, log.DirectionOut, nil)
	l.logger.Debug("mesh request sent", "opcode", req.Opcode, "instance", req.InstanceIndex)
	return nil
}

func (l *Link) receive(ctx context.Context) {
	defer close(l.done)

	for {
		f, err := l.reader.ReadFrame()
		if err != nil {
			select {
			case <-l.closed:
				return
			default:
			}
			if isReadTimeout(err) && ctx.Err() == nil {
				continue
			}
			if !errors.Is(err, io.EOF) {
				l.logger.Error("modem read failed", "error", err)
				l.logError(err.Error(), "read frame", nil)
			}
			l.Close()
			return
		}
		l.handleFrame(f)
	}
}

func (l *Link) handleFrame(f uart.Frame) {
	switch f.Command {
	case uart.CmdInitDeviceEvent:
		l.setState(StateDevice, "init device event")
		l.reply(uart.Frame{Command: uart.CmdCreateInstancesRequest, Payload: uart.EncodeModelIDs(l.models)})

	case uart.CmdInitNodeEvent:
		ids, err := uart.DecodeModelIDs(f.Payload)
		if err != nil {
			l.logger.Warn("bad init node event", "error", err)
			l.logError(err.Error(), "init node event", nil)
			return
		}
		l.setState(StateNode, "init node event")
		l.mapper.Map(ids)
		l.reply(uart.Frame{Command: uart.CmdStartNodeRequest})

	case uart.CmdPingRequest:
		l.reply(uart.Frame{Command: uart.CmdPongResponse, Payload: f.Payload})

	case uart.CmdMeshMessageRequest, uart.CmdMeshMessageResponse:
		l.handleMesh(f.Payload)

	case uart.CmdFactoryResetEvent:
		l.setState(StateUnknown, "factory reset")

	case uart.CmdError:
		var code *int
		if len(f.Payload) > 0 {
			c := int(f.Payload[0])
			code = &c
		}
		l.logger.Warn("modem reported error", "payload", fmt.Sprintf("% x", f.Payload))
		l.logError("modem error", "error frame", code)

	case uart.CmdCreateInstancesResponse, uart.CmdStartNodeResponse, uart.CmdCurrentStateResponse,
		uart.CmdFactoryResetResponse, uart.CmdModemFirmwareVersionResponse, uart.CmdPongResponse:
		l.logger.Debug("modem response", "command", f.Command, "len", len(f.Payload))

	default:
		l.logger.Debug("ignoring frame", "command", f.Command, "len", len(f.Payload))
	}
}

func (l *Link) handleMesh(payload []byte) {
	msg, err := uart.DecodeMeshMessage(payload)
	if err != nil {
		l.logger.Warn("dropping mesh message", "error", err)
		l.logError(err.Error(), "decode mesh message", nil)
		return
	}

	handled := false
	if l.handler != nil {
		handled = l.handler.Dispatch(health.Opcode(msg.Opcode), msg.Parameters)
	}
	l.logMessage(msg, log.DirectionIn, &handled)
	if !handled {
		l.logger.Debug("unhandled mesh message",
			"opcode", fmt.Sprintf("0x%04X", msg.Opcode),
			"instance", msg.InstanceIndex,
			"params", fmt.Sprintf("% x", msg.Parameters))
	}
}

func (l *Link) reply(f uart.Frame) {
	if err := l.writer.WriteFrame(f); err != nil {
		l.logger.Warn("modem reply failed", "command", f.Command, "error", err)
	}
}

func (l *Link) setState(s State, reason string) {
	l.mu.Lock()
	old := l.state
	l.state = s
	l.mu.Unlock()

	l.logger.Debug("modem state", "old", old, "new", s)
	if l.capture != nil {
		l.capture.Log(log.Event{
			Timestamp:   time.Now(),
			SessionID:   l.sessionID,
			Direction:   log.DirectionIn,
			Layer:       log.LayerService,
			Category:    log.CategoryState,
			Port:        l.port,
			StateChange: &log.StateChangeEvent{OldState: old.String(), NewState: s.String(), Reason: reason},
		})
	}
}

func (l *Link) logMessage(msg uart.MeshMessage, dir log.Direction, handled *bool) {
	if l.capture == nil {
		return
	}
	l.capture.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: l.sessionID,
		Direction: dir,
		Layer:     log.LayerWire,
		Category:  log.CategoryMessage,
		Port:      l.port,
		Message: &log.MessageEvent{
			Opcode:        msg.Opcode,
			InstanceIndex: msg.InstanceIndex,
			SubIndex:      msg.SubIndex,
			Parameters:    msg.Parameters,
			Handled:       handled,
		},
	})
}

func (l *Link) logError(msg, op string, code *int) {
	if l.capture == nil {
		return
	}
	l.capture.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: l.sessionID,
		Direction: log.DirectionIn,
		Layer:     log.LayerService,
		Category:  log.CategoryError,
		Port:      l.port,
		Error:     &log.ErrorEventData{Layer: log.LayerService, Message: msg, Code: code, Context: op},
	})
}

var _ health.Sender = (*Link)(nil)
