// Command health-log views and analyzes health-client protocol captures.
//
// Captures are written by health-client with the -protocol-log flag.
//
// Usage:
//
//	health-log <command> [flags] <file.hlog>
//
// Commands:
//
//	view     View capture in human-readable format
//	export   Export capture as JSON lines
//	stats    Show statistics about the capture
//
// Examples:
//
//	# View only mesh messages
//	health-log view -layer wire session.hlog
//
//	# View incoming Fault Status messages
//	health-log view -direction in -opcode FAULT_STATUS session.hlog
//
//	# Show statistics
//	health-log stats session.hlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/meshhealth/health-client-go/cmd/health-log/commands"
	"github.com/meshhealth/health-client-go/pkg/log"
)

const usage = `health-log - Health Client Capture Analyzer

Usage:
  health-log <command> [flags] <file.hlog>

Commands:
  view     View capture in human-readable format
  export   Export capture as JSON lines
  stats    Show statistics about the capture

Use "health-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// capturePath returns the single positional argument or exits.
func capturePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func newFlagSet(name, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "health-log %s - %s\n\nUsage:\n  health-log %s [flags] <file.hlog>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}
	return fs
}

func runView(args []string) {
	fs := newFlagSet("view", "View capture in human-readable format")
	layer := fs.String("layer", "", "Filter by layer (transport, wire, service)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, control, state, error)")
	opcode := fs.String("opcode", "", "Filter by mesh opcode (name or hex)")
	session := fs.String("session", "", "Filter by session ID")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := capturePath(fs)

	filter := log.Filter{SessionID: *session}
	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		filter.Layer = &l
	}
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fail(err)
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}
	if *opcode != "" {
		op, err := commands.ParseOpcodeFlag(*opcode)
		if err != nil {
			fail(err)
		}
		filter.Opcode = &op
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export capture as JSON lines")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if err := commands.RunExport(capturePath(fs), *output, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the capture")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if err := commands.RunStats(capturePath(fs), os.Stdout); err != nil {
		fail(err)
	}
}
