package modem

// State is the modem's lifecycle as observed by the host.
type State uint8

const (
	// StateUnknown means no init event has arrived yet.
	StateUnknown State = iota

	// StateDevice means the modem is unprovisioned and asked for models.
	StateDevice

	// StateNode means the modem is provisioned and has instance indexes.
	StateNode
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnknown:
		return "UNKNOWN"
	case StateDevice:
		return "DEVICE"
	case StateNode:
		return "NODE"
	default:
		return "INVALID"
	}
}
