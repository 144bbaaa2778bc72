// Package avrdmx drives an Arduino based DMX interface over a serial
// connection. The device speaks a framed protocol: a byte handshake at a
// fixed startup rate, an optional baud renegotiation, then length-prefixed
// packets carrying either control codes or frame data in one of several
// payload encodings.
package avrdmx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"runtime"
	"time"

	"dmxlink/internal/drivers"
	"dmxlink/internal/logger"
)

// Baud rate presets.
const (
	BaudStartUp  = 9600 // rate the device always listens at after connect
	BaudLow      = 9600
	BaudNormal   = 115200
	BaudSafeHigh = 230400
	BaudHigh     = 460800
)

// Protocol key bytes.
const (
	keyPrompt         = 0x12
	keyPrompt2        = 0x78
	keyResponse       = 0x33
	keyReadyForPacket = 0x44
	keySending        = 0x55
	keyError          = 0x66
	keySent           = 0x99

	promptRepeat = 7
)

// Packet types.
const (
	packetRaw     = 0x00
	packetRLE     = 0x01
	packetSRE     = 0x02
	packetBP1     = 0x03
	packetBP2     = 0x04
	packetBP4     = 0x05
	packetSUM     = 0x06
	packetControl = 0xff
)

// Control codes.
const (
	controlNone        = 0x00
	controlBlankingOff = 0x10
	controlBlankingOn  = 0x11
	controlResetBaud   = 0x20
	controlSetBaud     = 0x21
	controlSetBaudSlow = 0x22
)

// rebaudSettle is how long the device pauses before confirming a baud
// change at the new rate.
const rebaudSettle = 100 * time.Millisecond

func init() {
	drivers.Register("AVRDMX", func(opts drivers.Options) (drivers.Driver, error) {
		return New(Config{
			Device:   opts.Device,
			Baudrate: opts.Baudrate,
			Encoding: opts.Encoding,
			Log:      opts.Log,
		})
	})
}

// Config holds construction parameters for the driver.
type Config struct {
	Device   string // serial device path; platform default when empty
	Baudrate int    // rate to renegotiate to; platform default when 0
	Encoding string // payload encoding; EncodingRaw when empty

	// SlowRebaud selects the slow-settle baud-change control code for
	// hosts that need a longer reconfiguration window. Forced on Windows.
	SlowRebaud bool

	Log logger.Logger
}

// DefaultDevice returns the conventional device path for the platform.
func DefaultDevice() string {
	if runtime.GOOS == "windows" {
		return "COM3"
	}
	return "/dev/ttyACM0"
}

// DefaultBaud returns the highest rate known to be reliable on the
// platform.
func DefaultBaud() int {
	if runtime.GOOS == "windows" {
		return BaudSafeHigh
	}
	return BaudHigh
}

// Driver implements the drivers.Driver contract over a serial connection.
type Driver struct {
	device     string
	baudrate   int
	encoding   string
	slowRebaud bool

	// dial and sleep are swapped out by tests.
	dial  func(device string, baud int) (Conn, error)
	sleep func(time.Duration)

	conn   Conn
	closed bool
	log    logger.Logger
}

// New validates the configuration and returns a closed driver. No I/O
// happens until Open.
func New(cfg Config) (*Driver, error) {
	if cfg.Device == "" {
		cfg.Device = DefaultDevice()
	}
	if cfg.Baudrate == 0 {
		cfg.Baudrate = DefaultBaud()
	}
	if cfg.Encoding == "" {
		cfg.Encoding = EncodingRaw
	}
	if _, ok := encodings[cfg.Encoding]; !ok {
		return nil, &EncodingError{Encoding: cfg.Encoding}
	}
	if cfg.Log == nil {
		cfg.Log = logger.Discard()
	}
	return &Driver{
		device:     cfg.Device,
		baudrate:   cfg.Baudrate,
		encoding:   cfg.Encoding,
		slowRebaud: cfg.SlowRebaud || runtime.GOOS == "windows",
		dial:       dialSerial,
		sleep:      time.Sleep,
		closed:     true,
		log:        cfg.Log,
	}, nil
}

// Open connects at the startup rate, performs the handshake, renegotiates
// the baud rate when a different one is configured and selects the
// blanking mode for the encoding. It blocks until the device confirms the
// configuration.
func (d *Driver) Open() error {
	conn, err := d.dial(d.device, BaudStartUp)
	if err != nil {
		return fmt.Errorf("opening %s: %w", d.device, err)
	}
	d.conn = conn

	// Wait for ping.
	if err := d.expect(keyResponse, "handshake"); err != nil {
		return err
	}

	// Start handshake.
	if err := d.send(bytes.Repeat([]byte{keyPrompt}, promptRepeat), "handshake"); err != nil {
		return err
	}
	if err := d.expect(keyResponse, "handshake"); err != nil {
		return err
	}
	if err := d.send(bytes.Repeat([]byte{keyPrompt2}, promptRepeat), "handshake"); err != nil {
		return err
	}

	// Handshake done, moving on to settings. The device always comes up
	// at the startup rate.
	if d.baudrate != BaudStartUp {
		if err := d.changeBaudrate(d.baudrate); err != nil {
			return err
		}
	}

	// Truncate-zeros is a software mode; blanking would alias the slots
	// past the truncation point. Every other encoding runs faster with
	// blanking on.
	blanking := byte(controlBlankingOn)
	if d.encoding == EncodingTruncateZeros {
		blanking = controlBlankingOff
	}
	if err := d.writeControl(nil, blanking); err != nil {
		return err
	}

	d.closed = false
	d.log.With(logger.Fields{"driver": "AVRDMX"}).
		Infof("device %s configured: %d baud, %s encoding", d.device, d.baudrate, d.encoding)
	return nil
}

// Write encodes one frame of up to 512 bytes and transmits it as a data
// packet.
func (d *Driver) Write(frame []byte) error {
	if d.closed {
		return drivers.ErrClosed
	}
	switch d.encoding {
	case EncodingRaw:
		return d.writePacket(frame, packetRaw, controlNone)
	case EncodingOneBit:
		return d.writePacket(packBits(frame, 1), packetBP1, controlNone)
	case EncodingTwoBit:
		return d.writePacket(packBits(frame, 2), packetBP2, controlNone)
	case EncodingFourBit:
		return d.writePacket(packBits(frame, 4), packetBP4, controlNone)
	case EncodingTruncateZeros:
		return d.writePacket(trimTrailingZeros(frame), packetRaw, controlNone)
	default:
		// Reserved encodings have a name and a packet type but no wire
		// support in the device firmware yet.
		return &EncodingError{Encoding: d.encoding}
	}
}

// Close releases the connection. Safe to call repeatedly.
func (d *Driver) Close() error {
	d.closed = true
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// Closed reports whether the driver is closed.
func (d *Driver) Closed() bool { return d.closed }

// Name returns the registered driver name.
func (d *Driver) Name() string { return "AVRDMX" }

// changeBaudrate renegotiates the connection rate. The device acknowledges
// the control packet at the old rate, switches, then confirms at the new
// rate after pausing to let the host reconfigure; the whole exchange takes
// at least 100ms and must complete before any further packet.
func (d *Driver) changeBaudrate(baud int) error {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, uint32(baud))

	code := byte(controlSetBaud)
	if d.slowRebaud {
		code = controlSetBaudSlow
	}
	if err := d.writeControl(payload, code); err != nil {
		return err
	}

	if err := d.conn.SetBaud(baud); err != nil {
		d.teardown()
		return fmt.Errorf("rebaud: %w", err)
	}
	if d.slowRebaud {
		d.sleep(rebaudSettle)
	}

	// Confirmation byte arrives at the new rate.
	return d.expect(keyResponse, "baud change")
}

// writeControl sends a control packet carrying code and up to 512 bytes of
// configuration data.
func (d *Driver) writeControl(data []byte, code byte) error {
	return d.writePacket(data, packetControl, code)
}

// writePacket frames and sends one packet:
//
//	[type][length lo][length hi][control code][payload]
//
// where length counts the control code plus the payload. The device gates
// every packet on a ready byte; control packets are acknowledged with a
// single response byte, data packets with a sending/sent pair.
func (d *Driver) writePacket(data []byte, packetType byte, code byte) error {
	if err := d.expect(keyReadyForPacket, "packet"); err != nil {
		return err
	}

	length := (1 + len(data)) & 0xffff
	packet := make([]byte, 0, 4+len(data))
	packet = append(packet, packetType, byte(length&0xff), byte(length>>8), code)
	packet = append(packet, data...)
	if err := d.send(packet, "packet"); err != nil {
		return err
	}

	if packetType == packetControl {
		return d.expect(keyResponse, "packet")
	}
	if err := d.expect(keySending, "packet"); err != nil {
		return err
	}
	return d.expect(keySent, "packet")
}

// expect reads one byte and requires it to equal want. Anything else is
// routed through error decoding and closes the connection.
func (d *Driver) expect(want byte, stage string) error {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(d.conn, buf); err != nil {
		d.teardown()
		return fmt.Errorf("%s: read: %w", stage, err)
	}
	if buf[0] != want {
		return d.decodeError(buf[0], stage)
	}
	return nil
}

func (d *Driver) send(p []byte, stage string) error {
	if _, err := d.conn.Write(p); err != nil {
		d.teardown()
		return fmt.Errorf("%s: write: %w", stage, err)
	}
	return nil
}

// decodeError inspects an unexpected byte. The error marker is followed by
// a one-byte code naming the failure; any other byte is simply out of
// sequence. Both cases leave the driver closed.
func (d *Driver) decodeError(first byte, stage string) error {
	if first != keyError {
		d.teardown()
		return &ProtocolError{Stage: stage, Err: &UnexpectedByteError{Byte: first}}
	}
	buf := make([]byte, 1)
	_, err := io.ReadFull(d.conn, buf)
	d.teardown()
	if err != nil {
		return &ProtocolError{Stage: stage, Err: fmt.Errorf("reading error code: %w", err)}
	}
	return &ProtocolError{Stage: stage, Err: decodeCode(buf[0])}
}

// teardown closes the connection after a failure.
func (d *Driver) teardown() {
	d.closed = true
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
}
