package modem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goburrow/serial"
)

// SerialConfig selects and configures the modem's serial port.
type SerialConfig struct {
	Port     string
	BaudRate int

	// ReadTimeout bounds each read so the receive loop can observe
	// cancellation.
	ReadTimeout time.Duration
}

// OpenSerial opens the modem port as 8N1.
func OpenSerial(cfg SerialConfig) (io.ReadWriteCloser, error) {
	if cfg.Port == "" {
		return nil, errors.New("modem: no serial port configured")
	}
	port, err := serial.Open(&serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}
	return port, nil
}

// isReadTimeout reports whether err only means no byte arrived in time.
func isReadTimeout(err error) bool {
	return errors.Is(err, serial.ErrTimeout) || errors.Is(err, os.ErrDeadlineExceeded)
}
