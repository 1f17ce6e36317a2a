package health

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// statusHandler decodes one status payload and renders it for display.
type statusHandler func(payload []byte) (string, error)

// Dispatcher routes inbound status messages to their decoder and writes
// the rendered result to an output.
//
// The opcode table is fixed at construction. Dispatch is safe for
// concurrent use.
type Dispatcher struct {
	handlers map[Opcode]statusHandler
	logger   *slog.Logger

	mu  sync.Mutex
	out io.Writer
}

// NewDispatcher creates a dispatcher that renders status messages to out.
// Decode failures are reported through logger (slog.Default when nil).
func NewDispatcher(out io.Writer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: map[Opcode]statusHandler{
			OpAttentionStatus: renderAttention,
			OpCurrentStatus:   renderGeneric(RenderCurrentStatus),
			OpFaultStatus:     renderGeneric(RenderFaultStatus),
			OpPeriodStatus:    renderPeriod,
		},
		logger: logger,
		out:    out,
	}
}

// Dispatch handles one inbound message. It returns false, without output,
// when the opcode is not a Health status so the caller can route it
// elsewhere. A recognized message with a malformed payload is logged and
// still counts as handled.
func (d *Dispatcher) Dispatch(opcode Opcode, payload []byte) bool {
	text, ok, err := d.Render(opcode, payload)
	if !ok {
		return false
	}
	if err != nil {
		d.logger.Warn("dropping health status",
			slog.String("opcode", opcode.String()),
			slog.Int("len", len(payload)),
			slog.Any("error", err))
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.out, text)
	return true
}

// Render decodes and renders a status without writing it. ok is false when
// the opcode is not in the table.
func (d *Dispatcher) Render(opcode Opcode, payload []byte) (text string, ok bool, err error) {
	handle, ok := d.handlers[opcode]
	if !ok {
		return "", false, nil
	}
	text, err = handle(payload)
	return text, true, err
}

// Opcodes returns the handled opcodes in ascending order.
func (d *Dispatcher) Opcodes() []Opcode {
	ops := make([]Opcode, 0, len(d.handlers))
	for op := range d.handlers {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

func renderAttention(payload []byte) (string, error) {
	s, err := DecodeAttentionStatus(payload)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

func renderPeriod(payload []byte) (string, error) {
	s, err := DecodePeriodStatus(payload)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

func renderGeneric(render func(GenericStatus) string) statusHandler {
	return func(payload []byte) (string, error) {
		s, err := DecodeGenericStatus(payload)
		if err != nil {
			return "", err
		}
		return render(s), nil
	}
}
