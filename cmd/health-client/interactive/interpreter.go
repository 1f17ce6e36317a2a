// Package interactive provides the command line of the health client.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/meshhealth/health-client-go/pkg/health"
)

// HelpText is printed by the help command.
const HelpText = `Help:
	[a]ttention - commands for set and get attention
	[f]ault - commands for get, clear and run tests
	[p]eriod - commands for set and get Fast Period Divider
	[q]uit - exit from CLI

Note: parameters that ends with 'u' e.g. 'setu', 'clearu', ...
      are unacknowledged.`

// Feature names.
const (
	FeatureAttention = "attention"
	FeatureFault     = "fault"
	FeaturePeriod    = "period"
	FeatureHelp      = "help"
	FeatureQuit      = "quit"
)

// Invocation is one parsed command line.
type Invocation struct {
	Feature    string
	SubCommand string
	Args       []string
}

// Tokenize splits a line on runs of whitespace. The keyword is resolved to
// its feature name; unknown keywords are kept as typed. ok is false for a
// blank line.
func Tokenize(line string) (inv Invocation, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Invocation{}, false
	}

	inv.Feature = strings.ToLower(fields[0])
	if name, found := aliases[inv.Feature]; found {
		inv.Feature = name
	}
	if len(fields) > 1 {
		inv.SubCommand = strings.ToLower(fields[1])
		inv.Args = fields[2:]
	}
	return inv, true
}

var aliases = map[string]string{
	"a": FeatureAttention,
	"f": FeatureFault,
	"p": FeaturePeriod,
	"h": FeatureHelp,
	"q": FeatureQuit,
}

type subCommand struct {
	minArgs int
	usage   string
	run     func(ctx context.Context, c *health.Client, args []string) error
}

type feature struct {
	summary string
	subs    map[string]subCommand
}

func attentionSet(unack bool) func(context.Context, *health.Client, []string) error {
	return func(ctx context.Context, c *health.Client, args []string) error {
		seconds, err := health.ParseDecimal(args[0])
		if err != nil {
			return err
		}
		return c.AttentionSet(ctx, seconds, unack)
	}
}

func faultClear(unack bool) func(context.Context, *health.Client, []string) error {
	return func(ctx context.Context, c *health.Client, args []string) error {
		return c.FaultClear(ctx, args[0], unack)
	}
}

func faultTest(unack bool) func(context.Context, *health.Client, []string) error {
	return func(ctx context.Context, c *health.Client, args []string) error {
		testID, err := health.ParseDecimal(args[1])
		if err != nil {
			return err
		}
		return c.FaultTest(ctx, args[0], testID, unack)
	}
}

func periodSet(unack bool) func(context.Context, *health.Client, []string) error {
	return func(ctx context.Context, c *health.Client, args []string) error {
		divider, err := health.ParseDecimal(args[0])
		if err != nil {
			return err
		}
		return c.PeriodSet(ctx, divider, unack)
	}
}

var features = map[string]feature{
	FeatureAttention: {
		summary: "Draw attention on the devices in network.\nUsage: attention [get|set|setu] <args>",
		subs: map[string]subCommand{
			"get": {run: func(ctx context.Context, c *health.Client, _ []string) error {
				return c.AttentionGet(ctx)
			}},
			"set":  {minArgs: 1, usage: "Usage: attention set <attention_s>", run: attentionSet(false)},
			"setu": {minArgs: 1, usage: "Usage: attention setu <attention_s>", run: attentionSet(true)},
		},
	},
	FeatureFault: {
		summary: "Clear, get registered faults or perform test.\nUsage: fault [get|clear|clearu|test|testu] <args>",
		subs: map[string]subCommand{
			"get": {minArgs: 1, usage: "Usage: fault get 0x<company_id>", run: func(ctx context.Context, c *health.Client, args []string) error {
				return c.FaultGet(ctx, args[0])
			}},
			"clear":  {minArgs: 1, usage: "Usage: fault clear 0x<company_id>", run: faultClear(false)},
			"clearu": {minArgs: 1, usage: "Usage: fault clearu 0x<company_id>", run: faultClear(true)},
			"test":   {minArgs: 2, usage: "Usage: fault test 0x<company_id> <test_id>", run: faultTest(false)},
			"testu":  {minArgs: 2, usage: "Usage: fault testu 0x<company_id> <test_id>", run: faultTest(true)},
		},
	},
	FeaturePeriod: {
		summary: "Set or get Fast Period Divisor.\nUsage: period [get|set|setu] <args>",
		subs: map[string]subCommand{
			"get": {run: func(ctx context.Context, c *health.Client, _ []string) error {
				return c.PeriodGet(ctx)
			}},
			"set":  {minArgs: 1, usage: "Usage: period set <fast_period_divider>", run: periodSet(false)},
			"setu": {minArgs: 1, usage: "Usage: period setu <fast_period_divider>", run: periodSet(true)},
		},
	},
}

// Interpreter turns command lines into Health Client requests.
// It is driven by a single goroutine.
type Interpreter struct {
	client *health.Client
	out    io.Writer
}

// NewInterpreter creates an interpreter that sends through client and
// prints feedback to out.
func NewInterpreter(client *health.Client, out io.Writer) *Interpreter {
	return &Interpreter{client: client, out: out}
}

// ProcessLine executes one command line. It returns true when the user asked
// to quit. No input makes it fail: problems are printed and the loop goes on.
func (i *Interpreter) ProcessLine(ctx context.Context, line string) (quit bool) {
	inv, ok := Tokenize(line)
	if !ok {
		return false
	}

	switch inv.Feature {
	case FeatureQuit:
		return true
	case FeatureHelp:
		fmt.Fprintln(i.out, HelpText)
		return false
	}

	f, found := features[inv.Feature]
	if !found {
		fmt.Fprintf(i.out, "Command %s not supported!\n", inv.Feature)
		return false
	}
	if inv.SubCommand == "" {
		fmt.Fprintln(i.out, f.summary)
		return false
	}
	sub, found := f.subs[inv.SubCommand]
	if !found {
		fmt.Fprintf(i.out, "Command %s not supported!\n", inv.SubCommand)
		return false
	}
	if len(inv.Args) < sub.minArgs {
		fmt.Fprintln(i.out, sub.usage)
		return false
	}

	if err := sub.run(ctx, i.client, inv.Args); err != nil {
		i.report(err)
	}
	return false
}

func (i *Interpreter) report(err error) {
	if errors.Is(err, health.ErrRange) || errors.Is(err, health.ErrFormat) {
		fmt.Fprintln(i.out, "Error: Invalid value!")
		return
	}
	fmt.Fprintf(i.out, "Error: %v\n", err)
}
