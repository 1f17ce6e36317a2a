// Package modem drives a mesh UART modem over a serial link.
//
// A Link owns the byte stream to the modem. It answers the modem's
// start-up handshake (registering the host's models and starting the
// node), keeps the model ID to instance index mapping current, and hands
// inbound mesh messages to a MeshHandler. Outbound Health requests go
// through Link.Send, which satisfies health.Sender.
package modem
