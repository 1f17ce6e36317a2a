package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"github.com/meshhealth/health-client-go/pkg/health"
)

// ErrInterrupted is returned by Run when Ctrl-C is pressed at the prompt.
var ErrInterrupted = errors.New("interrupted")

type lineReader interface {
	Readline() (string, error)
}

// Shell runs the interpreter on a readline prompt.
type Shell struct {
	rl     *readline.Instance
	lines  lineReader
	interp *Interpreter
}

// NewShell creates the prompt. The interpreter is attached with Bind once
// the Health Client instance is known, so the shell's writers can be used
// for output during startup.
func NewShell(prompt string) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{rl: rl, lines: rl}, nil
}

// Bind attaches a client. Interpreter output goes to the shell's Stdout.
func (s *Shell) Bind(client *health.Client) {
	s.interp = NewInterpreter(client, s.Stdout())
}

// Stdout returns a writer that keeps asynchronous output clear of the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that keeps asynchronous output clear of the prompt.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Close releases the terminal.
func (s *Shell) Close() error {
	return s.rl.Close()
}

// Run reads lines until quit, EOF or ctx ends, and then returns nil.
// Ctrl-C ends the session with ErrInterrupted.
func (s *Shell) Run(ctx context.Context) error {
	if s.interp == nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := s.lines.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				return ErrInterrupted
			}
			return nil
		}
		if s.interp.ProcessLine(ctx, line) {
			return nil
		}
	}
}
