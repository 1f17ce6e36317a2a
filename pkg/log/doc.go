// Package log provides protocol capture for the health client.
//
// It records what crossed the UART link (raw modem frames), what those
// frames meant at the mesh layer (opcode, model instance, parameters) and
// how the modem link changed state. It is separate from operational logging
// (slog): a capture is a machine-readable trace that can be replayed with
// the health-log tool.
//
// # Basic Usage
//
//	// Print captured events through slog at debug level
//	link.SetLogger(log.NewSlogAdapter(slog.Default()))
//
//	// Keep a capture file
//	fl, _ := log.NewFileLogger("/tmp/session.hlog")
//	link.SetLogger(log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl))
//
// # Event Layers
//
//   - Transport: raw UART frames (FrameEvent)
//   - Wire: decoded mesh messages (MessageEvent)
//   - Service: link state and modem handshake (StateChangeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Capture files are a plain sequence of CBOR-encoded events with integer
// keys, conventionally using the .hlog extension.
package log
