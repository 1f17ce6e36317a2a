// Command health-client talks to Bluetooth Mesh Health Servers through a
// UART modem.
//
// The modem must be attached to a serial port. Once it registers the Health
// Client model, commands typed at the prompt are sent to the mesh and the
// statuses that come back are printed.
//
// Usage:
//
//	health-client [flags]
//
// Flags:
//
//	-config string        YAML configuration file
//	-port string          Serial port with the UART modem (e.g. /dev/ttyACM0)
//	-baud int             Serial baud rate (default 57600)
//	-timeout duration     How long to wait for the modem to map models (default 10s)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  File path for protocol capture (CBOR format)
//
// Examples:
//
//	# Connect to a modem
//	health-client -port /dev/ttyACM0
//
//	# Capture the session for health-log
//	health-client -port /dev/ttyACM0 -protocol-log session.hlog
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meshhealth/health-client-go/cmd/health-client/interactive"
	"github.com/meshhealth/health-client-go/internal/config"
	"github.com/meshhealth/health-client-go/pkg/health"
	protolog "github.com/meshhealth/health-client-go/pkg/log"
	"github.com/meshhealth/health-client-go/pkg/modem"
)

const welcome = `[ Go Health Client ]

This tool gets Health information from the nodes in the mesh network.

How it works?
    - The tool sends MeshMessageRequest to the UART Modem which forwards it to the mesh network.
    - Responses from the mesh network are printed out directly on the screen.

Communication process:
    Sending request message:
        [ Tool ]  == (UART) ==> [ UART Modem ] ))) (Bluetooth Mesh) ))) [ Mesh Network ]

    Receiving status message:
        [ Mesh Network ] ))) (Bluetooth Mesh) ))) [ UART Modem ] == (UART) ==> [ Tool ]

How to use?
    - Get UART Modem in unprovisioned state.
    - Run this tool.
    - Add UART Modem to the network (the tool must be running).
    - You're ready to go.
`

var (
	configFile  = flag.String("config", "", "YAML configuration file")
	port        = flag.String("port", "", "Serial port with the UART modem")
	baud        = flag.Int("baud", 0, "Serial baud rate (default 57600)")
	timeout     = flag.Duration("timeout", 0, "How long to wait for the modem to map models (default 10s)")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	protocolLog = flag.String("protocol-log", "", "File path for protocol capture (CBOR format)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	shell, err := interactive.NewShell(cfg.Prompt)
	if err != nil {
		log.Fatalf("Failed to start shell: %v", err)
	}
	defer shell.Close()

	out := shell.Stdout()
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(shell.Stderr(), &slog.HandlerOptions{Level: level}))

	fmt.Fprint(out, welcome)

	var capture protolog.Logger
	loggers := []protolog.Logger{protolog.NewSlogAdapter(logger)}
	if cfg.ProtocolLog != "" {
		fl, err := protolog.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			log.Fatalf("Failed to create protocol logger: %v", err)
		}
		defer fl.Close()
		loggers = append(loggers, fl)
		logger.Info("protocol capture enabled", "path", cfg.ProtocolLog)
	}
	if level <= slog.LevelDebug || len(loggers) > 1 {
		capture = protolog.NewMultiLogger(loggers...)
	}

	rwc, err := modem.OpenSerial(modem.SerialConfig{
		Port:        cfg.Serial.Port,
		BaudRate:    cfg.Serial.BaudRate,
		ReadTimeout: cfg.ReadTimeout(),
	})
	if err != nil {
		log.Fatalf("Failed to open modem: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	link := modem.NewLink(rwc, modem.Options{
		Models:  []uint16{modem.HealthClientModelID},
		Handler: health.NewDispatcher(out, logger),
		Mapper:  modem.NewMapper(out),
		Logger:  logger,
		Capture: capture,
		Port:    cfg.Serial.Port,
	})
	link.Start(ctx)
	defer link.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(out, "Interrupt caught. Closing application...")
			cancel()
			link.Close()
			shell.Close()
		case <-ctx.Done():
		}
	}()

	index, err := waitForHealthClient(ctx, link, out, cfg.DiscoveryTimeout())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "Could not get response from device within %s.\n", cfg.DiscoveryTimeout())
		shell.Close()
		os.Exit(1)
	}
	logger.Debug("health client mapped", "instance_index", index, "session", link.SessionID())

	fmt.Fprintln(out, "Ready...")
	shell.Bind(health.NewClient(link, uint16(index)))
	if err := shell.Run(ctx); errors.Is(err, interactive.ErrInterrupted) {
		fmt.Fprintln(out, "Interrupt caught. Closing application...")
	}
}

// waitForHealthClient blocks until the modem maps the Health Client model
// and returns its first instance index.
func waitForHealthClient(ctx context.Context, link *modem.Link, out io.Writer, limit time.Duration) (int, error) {
	fmt.Fprintln(out, "Please reset device to map models into instance indexes.")
	fmt.Fprintln(out, "Waiting for response from device...")

	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	index, err := link.Mapper().WaitFor(ctx, modem.HealthClientModelID, modem.DefaultPollInterval)
	if errors.Is(err, context.DeadlineExceeded) {
		return 0, fmt.Errorf("no health client model after %s: %w", limit, err)
	}
	return index, err
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}

	if *port != "" {
		cfg.Serial.Port = *port
	}
	if *baud != 0 {
		cfg.Serial.BaudRate = *baud
	}
	if *timeout != 0 {
		cfg.DiscoveryTimeoutMs = int(timeout.Milliseconds())
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *protocolLog != "" {
		cfg.ProtocolLog = *protocolLog
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
