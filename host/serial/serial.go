// Package serial opens the telemetry link to the firmware.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// readTimeout bounds each read so a quiet link hands control back to
// the reader loop instead of blocking it forever.
const readTimeout = 100 * time.Millisecond

// Port is an open telemetry link. Hardware links come from Open; tests
// feed the reader loop any io.Reader instead.
type Port interface {
	io.ReadWriteCloser

	// Flush discards bytes buffered in the OS driver, useful before
	// resynchronizing on a fresh record boundary.
	Flush() error
}

type nativePort struct {
	port *serial.Port
}

// Open opens the serial device the firmware streams records on. The
// baud rate is a formality on USB CDC links but must match the UART
// configuration when going through a plain serial adapter.
func Open(device string, baud int) (Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	return &nativePort{port: p}, nil
}

func (p *nativePort) Read(b []byte) (int, error)  { return p.port.Read(b) }
func (p *nativePort) Write(b []byte) (int, error) { return p.port.Write(b) }
func (p *nativePort) Close() error                { return p.port.Close() }
func (p *nativePort) Flush() error                { return p.port.Flush() }
