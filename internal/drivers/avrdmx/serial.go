package avrdmx

import (
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// Conn is the byte stream the driver talks over. The interface exists so
// the protocol logic can be exercised against a scripted connection
// without serial hardware.
type Conn interface {
	io.ReadWriteCloser
	// SetBaud reconfigures the baud rate of the open connection.
	SetBaud(baud int) error
}

// serialConn is the real serial port, backed by tarm/serial.
type serialConn struct {
	device string
	port   *serial.Port
}

func dialSerial(device string, baud int) (Conn, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, err
	}
	return &serialConn{device: device, port: port}, nil
}

func (c *serialConn) Read(p []byte) (int, error) {
	return c.port.Read(p)
}

func (c *serialConn) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

// SetBaud reopens the port at the new rate. The library cannot rebaud an
// open port; the device pauses after a baud-change control packet, which
// leaves a window for the reopen.
func (c *serialConn) SetBaud(baud int) error {
	if err := c.port.Close(); err != nil {
		return fmt.Errorf("closing %s for rebaud: %w", c.device, err)
	}
	port, err := serial.OpenPort(&serial.Config{Name: c.device, Baud: baud})
	if err != nil {
		return fmt.Errorf("reopening %s at %d baud: %w", c.device, baud, err)
	}
	c.port = port
	return nil
}

func (c *serialConn) Close() error {
	return c.port.Close()
}
