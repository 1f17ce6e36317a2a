package log

// Logger receives protocol capture events.
// Implementations must be safe for concurrent use: the modem reader
// goroutine and the command loop both emit events.
type Logger interface {
	// Log records one event. It must not block for long; the caller is the
	// UART receive path.
	Log(event Event)
}

// NoopLogger discards all events. Its zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
