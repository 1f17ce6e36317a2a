package log

import "time"

// Event is one protocol capture record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one run of the modem link (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates host-to-modem or modem-to-host flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Port is the serial device the link runs on.
	Port string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"`
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn is modem to host.
	DirectionIn Direction = 0
	// DirectionOut is host to modem.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the UART framing layer (raw bytes).
	LayerTransport Layer = 0
	// LayerWire is the mesh message layer.
	LayerWire Layer = 1
	// LayerService is the modem link and handshake layer.
	LayerService Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage is a mesh message or the frame carrying it.
	CategoryMessage Category = 0
	// CategoryControl is modem housekeeping (ping, handshake, reset).
	CategoryControl Category = 1
	// CategoryState is a link state change.
	CategoryState Category = 2
	// CategoryError is an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryControl:
		return "CONTROL"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures one UART frame.
type FrameEvent struct {
	// Size is the full frame size in bytes, preamble and CRC included.
	Size int `cbor:"1,keyasint"`

	// Command is the UART command byte.
	Command uint8 `cbor:"2,keyasint"`

	// Data is the frame payload.
	Data []byte `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a decoded mesh message.
type MessageEvent struct {
	// Opcode is the mesh opcode.
	Opcode uint32 `cbor:"1,keyasint"`

	// InstanceIndex is the model instance on the modem.
	InstanceIndex uint8 `cbor:"2,keyasint"`

	// SubIndex is the model instance sub-index.
	SubIndex uint8 `cbor:"3,keyasint,omitempty"`

	// Parameters are the message parameters without the opcode.
	Parameters []byte `cbor:"4,keyasint,omitempty"`

	// Handled reports whether an inbound message found a handler.
	Handled *bool `cbor:"5,keyasint,omitempty"`
}

// StateChangeEvent captures modem link lifecycle changes.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the modem error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
